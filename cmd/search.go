package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
	"github.com/noblex1/moviex/internal/tasks"
	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v3"
)

// logRenderer reports session progress to the debug log; the command prints the final status.
type logRenderer struct{ r *Runner }

func (l logRenderer) RenderStatus(s tasks.Status) {
	l.r.logger.Debug("search status", "status", s)
}

func (l logRenderer) RenderResults(m []models.Movie) {
	l.r.logger.Debug("search results", "count", len(m))
}

func (l logRenderer) SetControlsEnabled(bool) {}

// Search runs one search session for the words given as arguments.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.Join(cmd.Args().Slice(), " ")

	session := tasks.NewSession(r.metadataClient(), logRenderer{r}, tasks.WithSessionLogger(r.logger))
	st := session.Run(ctx, query)

	switch st.Kind {
	case tasks.Success:
	case tasks.EmptyResult:
		if cmd.Bool("json") {
			return r.writeJSON([]models.MovieRecord{}, cmd.Bool("pretty"))
		}
		return r.writePlain("%s\n", st.Text())
	case tasks.ValidatingEmpty:
		return fmt.Errorf("%w: %s", shared.ErrMissingArgument, st.Text())
	default:
		return fmt.Errorf("%s: %w", st.Text(), st.Err)
	}

	movies := session.Results()
	if cmd.Bool("json") {
		records := make([]models.MovieRecord, 0, len(movies))
		for _, m := range movies {
			records = append(records, models.NewMovieRecord(m))
		}
		return r.writeJSON(records, cmd.Bool("pretty"))
	}

	var saved func(string) bool
	if store, err := r.watchlistStore(ctx, nil); err == nil {
		saved = store.Contains
	} else {
		r.logger.Debug("watchlist unavailable, results not marked", "error", err)
	}

	r.writePlain("%s\n", st.Text())
	return r.writePlain("%s\n", moviesTable(movies, saved))
}

type detailLookup struct {
	index  int
	id     string
	record *models.DetailRecord
	err    error
}

// Details fetches the detail record of every id concurrently and prints them in argument order.
//
// A failed lookup prints the detail fallback for that id only.
func (r *Runner) Details(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one IMDb id is required", shared.ErrMissingArgument)
	}

	client := r.metadataClient()
	p := pool.NewWithResults[detailLookup]().WithMaxGoroutines(4)
	for i, id := range ids {
		p.Go(func() detailLookup {
			toggle := tasks.NewDetailToggle(id)
			toggle.Toggle(ctx, client)
			return detailLookup{index: i, id: id, record: toggle.Record(), err: toggle.Err()}
		})
	}
	lookups := p.Wait()
	sort.Slice(lookups, func(a, b int) bool { return lookups[a].index < lookups[b].index })

	failed := 0
	records := make([]*models.DetailRecord, 0, len(lookups))
	for _, l := range lookups {
		if l.err != nil {
			failed++
			r.logger.Warn("detail lookup failed", "id", l.id, "error", l.err)
			continue
		}
		records = append(records, l.record)
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(records, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		for i, l := range lookups {
			if i > 0 {
				r.writePlain("\n")
			}
			if l.err != nil {
				r.writePlain("%s: %s\n", l.id, tasks.DetailUnavailableText)
				continue
			}
			r.writePlain("%s\n", detailBlock(l.record))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d lookups failed", shared.ErrDetailUnavailable, failed, len(lookups))
	}
	return nil
}

// Open opens the IMDb page of a title in the system browser.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("%w: an IMDb id is required", shared.ErrMissingArgument)
	}

	url, err := shared.IMDbURL(id)
	if err != nil {
		return err
	}

	r.logger.Debug("opening browser", "url", url)
	if err := r.open(url); err != nil {
		return err
	}
	return r.writePlain("Opening %s\n", url)
}
