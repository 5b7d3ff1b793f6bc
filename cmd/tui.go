package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
	"github.com/noblex1/moviex/internal/tasks"
	"github.com/noblex1/moviex/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for search and the watchlist.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(shared.WithLogger(fileLogger, "session", shared.GenerateID()))

	client := r.metadataClient()
	renderer := ui.NewRenderer()
	store, err := r.watchlistStore(ctx, renderer)
	if err != nil {
		return err
	}

	theme, err := tasks.LoadTheme(ctx, r.storage, models.ParseTheme(r.config.UI.Theme))
	if err != nil {
		r.logger.Warn("theme unreadable, using default", "error", err)
	}

	model := ui.NewModel(ctx, renderer, ui.Options{
		Client:        client,
		Store:         store,
		Storage:       r.storage,
		Theme:         theme,
		Logger:        r.logger,
		APIKeyMissing: errors.Is(r.config.Validate(), shared.ErrMissingAPIKey),
		Open:          r.open,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	renderer.SetSender(p.Send)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
