package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
	"github.com/noblex1/moviex/internal/watchlist"
)

// BulkAddOpts contains configuration for adding many movies by id.
type BulkAddOpts struct {
	NumWorkers int // Concurrent lookups (default: 4, max: 8)
}

// BulkAddResult summarizes a [BulkAdd] run.
type BulkAddResult struct {
	Added   []models.Movie   // Newly saved movies, in input order
	Skipped []models.Movie   // Movies that were already saved
	Failed  map[string]error // Lookup failures by id
	Total   int              // Distinct ids processed
}

type lookupResult struct {
	index int
	id    string
	movie models.Movie
	err   error
}

// BulkAdd looks up every id concurrently and adds the found movies to store in input order.
//
// Each id is looked up once, with no retries. Lookup failures are collected in the result and do
// not stop the run. A snapshot write failure is returned after all movies were processed.
func BulkAdd(ctx context.Context, prog chan<- ProgressUpdate, fetcher DetailFetcher, store *watchlist.Store, ids []string, opts BulkAddOpts) (*BulkAddResult, error) {
	if fetcher == nil || store == nil {
		return nil, fmt.Errorf("%w: metadata client or watchlist not initialized", shared.ErrServiceUnavailable)
	}

	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no movie ids given", shared.ErrMissingArgument)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	total := len(ids)
	result := &BulkAddResult{Failed: make(map[string]error), Total: total}

	sendProgress(prog, fetchingMoviesUpdate(total))

	p := pool.NewWithResults[lookupResult]().WithMaxGoroutines(opts.NumWorkers)
	for i, id := range ids {
		p.Go(func() lookupResult {
			record, err := fetcher.FetchDetail(ctx, id)
			if err != nil {
				return lookupResult{index: i, id: id, err: err}
			}
			movie := record.Movie()
			if movie.ID == "" {
				movie.ID = id
			}
			return lookupResult{index: i, id: id, movie: movie}
		})
	}
	lookups := p.Wait()
	sort.Slice(lookups, func(a, b int) bool { return lookups[a].index < lookups[b].index })

	var writeErrs []error
	for step, l := range lookups {
		if l.err != nil {
			result.Failed[l.id] = l.err
			sendProgress(prog, fetchFailedUpdate(step+1, total, l.id, l.err))
			continue
		}
		sendProgress(prog, fetchedMovieUpdate(step+1, total, l.movie))

		outcome, err := store.Add(ctx, l.movie)
		if err != nil {
			writeErrs = append(writeErrs, err)
		}
		switch outcome {
		case watchlist.Added:
			result.Added = append(result.Added, l.movie)
		case watchlist.AlreadyPresent:
			result.Skipped = append(result.Skipped, l.movie)
		}
		sendProgress(prog, addedMovieUpdate(step+1, total, l.movie, outcome.Notice()))
	}

	return result, errors.Join(writeErrs...)
}

// dedupeIDs trims ids and drops blanks and repeats, keeping first occurrences.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
