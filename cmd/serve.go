package main

import (
	"context"
	"net"
	"strconv"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the JSON API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	store, err := r.watchlistStore(ctx, nil)
	if err != nil {
		return err
	}

	host := r.config.Server.Host
	if h := cmd.String("host"); h != "" {
		host = h
	}
	port := r.config.Server.Port
	if p := cmd.Int("port"); p > 0 {
		port = int(p)
	}

	api := server.NewAPI(server.APIOpts{
		Client:  r.metadataClient(),
		Store:   store,
		Storage: r.storage,
		Theme:   models.ParseTheme(r.config.UI.Theme),
		Logger:  r.logger,
	})

	srv := server.NewServer(net.JoinHostPort(host, strconv.Itoa(port)), api, r.logger)
	r.writePlain("Serving on http://%s\n", srv.Addr())
	return srv.ListenAndServe(ctx)
}
