package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
)

// DetailState is the state of a card's detail region.
type DetailState int

const (
	Collapsed DetailState = iota
	DetailLoading
	Expanded
	ExpandedError
)

func (d DetailState) String() string {
	switch d {
	case Collapsed:
		return "collapsed"
	case DetailLoading:
		return "loading"
	case Expanded:
		return "expanded"
	case ExpandedError:
		return "expanded-error"
	default:
		return ""
	}
}

// DetailUnavailableText is shown in place of the details after a failed fetch.
const DetailUnavailableText = "Details not available."

// DetailFetcher fetches the detail record of one movie.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, id string) (*models.DetailRecord, error)
}

// DetailToggle is the expand/collapse state machine of one result card.
//
// Only successful fetches are cached; after an error the next expand fetches again.
type DetailToggle struct {
	mu      sync.Mutex
	movieID string
	state   DetailState
	record  *models.DetailRecord
	err     error
	fetches int
}

// NewDetailToggle creates a collapsed toggle for movieID.
func NewDetailToggle(movieID string) *DetailToggle {
	return &DetailToggle{movieID: movieID}
}

// Request handles a click on the details button. It reports whether the caller must fetch the
// record and then call [DetailToggle.Resolve].
//
// From an expanded state the request collapses the card. While loading it is ignored.
func (d *DetailToggle) Request() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case Collapsed:
		if d.record != nil {
			d.state = Expanded
			return false
		}
		d.state = DetailLoading
		d.err = nil
		d.fetches++
		return true
	case Expanded, ExpandedError:
		d.state = Collapsed
		return false
	default:
		return false
	}
}

// Resolve completes a fetch started by [DetailToggle.Request]. Outside the loading state it
// does nothing.
func (d *DetailToggle) Resolve(record *models.DetailRecord, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != DetailLoading {
		return
	}
	if err == nil && record == nil {
		err = shared.ErrDetailUnavailable
	}
	if err != nil {
		d.state = ExpandedError
		d.err = err
		return
	}
	d.state = Expanded
	d.record = record
}

// Collapse hides the details. Only the expanded states collapse.
func (d *DetailToggle) Collapse() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == Expanded || d.state == ExpandedError {
		d.state = Collapsed
	}
}

// Toggle runs a full click synchronously: request, fetch when needed, resolve.
func (d *DetailToggle) Toggle(ctx context.Context, fetcher DetailFetcher) DetailState {
	if d.Request() {
		record, err := fetcher.FetchDetail(ctx, d.movieID)
		if err != nil && !errors.Is(err, shared.ErrDetailUnavailable) {
			err = fmt.Errorf("%w: %w", shared.ErrDetailUnavailable, err)
		}
		d.Resolve(record, err)
	}
	return d.State()
}

// State returns the current state.
func (d *DetailToggle) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Record returns the cached record, or nil when none was fetched successfully.
func (d *DetailToggle) Record() *models.DetailRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record
}

// Err returns the error of the last failed fetch.
func (d *DetailToggle) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// MovieID returns the id of the card's movie.
func (d *DetailToggle) MovieID() string {
	return d.movieID
}

// Fetches returns the number of fetches requested so far.
func (d *DetailToggle) Fetches() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fetches
}
