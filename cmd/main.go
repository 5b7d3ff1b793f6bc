package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/noblex1/moviex/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "moviex",
		Usage:    "Search OMDb and keep a movie watchlist",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   runner.Configure,
		Commands: runner.register(),
	}

	err := app.Run(ctx, os.Args)
	runner.Close()
	if err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
