package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
	"github.com/noblex1/moviex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// WatchlistList prints the saved movies in the order they were added.
func (r *Runner) WatchlistList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.watchlistStore(ctx, nil)
	if err != nil {
		return err
	}

	entries := store.List()
	if cmd.Bool("json") {
		records := make([]models.WatchlistRecord, 0, len(entries))
		for _, e := range entries {
			records = append(records, models.NewWatchlistRecord(e))
		}
		return r.writeJSON(records, true)
	}

	if len(entries) == 0 {
		return r.writePlain("Watchlist is empty.\n")
	}
	r.writePlain("%d movies\n", len(entries))
	return r.writePlain("%s\n", watchlistTable(entries))
}

// WatchlistAdd looks up every id and adds the found movies.
func (r *Runner) WatchlistAdd(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one IMDb id is required", shared.ErrMissingArgument)
	}

	store, err := r.watchlistStore(ctx, nil)
	if err != nil {
		return err
	}

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchMovies:
				if update.Step == 0 {
					r.writePlain("🔍 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			case tasks.AddMovies:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := tasks.BulkAdd(ctx, progressCh, r.metadataClient(), store, ids, tasks.BulkAddOpts{
		NumWorkers: int(cmd.Int("workers")),
	})
	close(progressCh)
	<-done

	if result == nil {
		return err
	}

	r.writePlainln("Added: %d, already saved: %d, failed: %d", len(result.Added), len(result.Skipped), len(result.Failed))
	if err != nil {
		return fmt.Errorf("watchlist changed but was not saved: %w", err)
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%w: %d of %d lookups failed", shared.ErrDetailUnavailable, len(result.Failed), result.Total)
	}
	return nil
}

// WatchlistRemove removes every id given as argument.
func (r *Runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one IMDb id is required", shared.ErrMissingArgument)
	}

	store, err := r.watchlistStore(ctx, nil)
	if err != nil {
		return err
	}

	var writeErrs []error
	for _, id := range ids {
		outcome, err := store.Remove(ctx, id)
		if err != nil {
			writeErrs = append(writeErrs, err)
		}
		r.writePlain("%s: %s\n", id, outcome.Notice())
	}
	return errors.Join(writeErrs...)
}

// WatchlistExport writes the watchlist to a file in the requested format.
func (r *Runner) WatchlistExport(ctx context.Context, cmd *cli.Command) error {
	store, err := r.watchlistStore(ctx, nil)
	if err != nil {
		return err
	}

	var posters *http.Client
	if cmd.Bool("posters") {
		posters = r.httpClient
	}

	progressCh := make(chan tasks.ProgressUpdate, 4)
	result, err := tasks.ExportWatchlist(ctx, progressCh, r.fs, store.List(), tasks.ExportOpts{
		Format:  cmd.String("format"),
		Output:  cmd.String("output"),
		Posters: posters,
	})
	close(progressCh)
	if err != nil {
		return fmt.Errorf("failed to export watchlist: %w", err)
	}

	for update := range progressCh {
		r.writePlain("%s\n", update.Message)
	}
	for _, w := range result.Warnings {
		r.logger.Warn(w)
	}
	r.logger.Debug("export complete", "format", result.Format, "files", len(result.Files))
	return nil
}
