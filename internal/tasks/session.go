package tasks

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/services"
	"github.com/noblex1/moviex/internal/shared"
)

// Renderer receives the visible effects of a search session.
type Renderer interface {
	RenderStatus(status Status)
	RenderResults(movies []models.Movie)
	SetControlsEnabled(enabled bool)
}

// SessionOption configures a [Session].
type SessionOption func(*Session)

// WithSessionLogger sets the logger of a [Session].
func WithSessionLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session runs searches and keeps the single active status.
//
// Searches may overlap. Every run takes the next sequence number and a completion whose number
// is not the latest is dropped without touching status or results. Controls stay disabled while
// any run is in flight.
type Session struct {
	client   services.MetadataClient
	renderer Renderer
	logger   *log.Logger

	mu       sync.Mutex
	seq      uint64
	inFlight int
	status   Status
	results  []models.Movie
}

// NewSession creates a [Session] searching with client and reporting to renderer.
func NewSession(client services.MetadataClient, renderer Renderer, opts ...SessionOption) *Session {
	s := &Session{
		client:   client,
		renderer: renderer,
		logger:   shared.NewLogger(io.Discard),
		status:   Status{Kind: Idle},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = shared.WithLogger(s.logger, "component", "search")
	return s
}

// Run validates query, searches, and renders the outcome. It returns the resulting status, or
// the status of a newer run when this one was superseded.
func (s *Session) Run(ctx context.Context, query string) Status {
	query = shared.NormalizeQuery(query)
	if query == "" {
		s.mu.Lock()
		s.seq++
		s.status = Status{Kind: ValidatingEmpty, Err: shared.ErrEmptyQuery}
		st := s.status
		s.mu.Unlock()

		s.renderer.RenderStatus(st)
		return st
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.inFlight++
	s.status = Status{Kind: Loading}
	s.mu.Unlock()

	s.renderer.RenderStatus(Status{Kind: Loading})
	s.renderer.SetControlsEnabled(false)
	defer s.finish()

	s.logger.Debug("search started", "query", query, "seq", seq)
	movies, err := s.client.Search(ctx, query)
	st := statusFor(movies, err)

	s.mu.Lock()
	if seq != s.seq {
		latest := s.status
		s.mu.Unlock()
		s.logger.Debug("discarding stale search response", "query", query, "seq", seq, "latest", latest.Kind)
		return latest
	}
	s.status = st
	if st.Kind == Success {
		s.results = movies
	} else {
		s.results = nil
	}
	s.mu.Unlock()

	if st.Kind == Success {
		s.renderer.RenderResults(movies)
	} else {
		s.renderer.RenderResults([]models.Movie{})
	}
	s.renderer.RenderStatus(st)
	s.logger.Debug("search finished", "query", query, "seq", seq, "status", st.Kind, "count", st.Count)
	return st
}

// finish re-enables controls once no run is in flight.
func (s *Session) finish() {
	s.mu.Lock()
	s.inFlight--
	idle := s.inFlight == 0
	s.mu.Unlock()

	if idle {
		s.renderer.SetControlsEnabled(true)
	}
}

// Clear drops the current results. Any in-flight run is superseded.
func (s *Session) Clear() {
	s.mu.Lock()
	s.seq++
	s.results = nil
	s.status = Status{Kind: Cleared}
	s.mu.Unlock()

	s.renderer.RenderResults([]models.Movie{})
	s.renderer.RenderStatus(Status{Kind: Cleared})
}

// Status returns the active status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Results returns the movies of the last successful search.
func (s *Session) Results() []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Movie, len(s.results))
	copy(out, s.results)
	return out
}

// statusFor maps a search outcome to a [Status].
func statusFor(movies []models.Movie, err error) Status {
	if err == nil {
		if len(movies) == 0 {
			return Status{Kind: EmptyResult}
		}
		return Status{Kind: Success, Count: len(movies)}
	}

	var serr *services.SearchError
	if !errors.As(err, &serr) {
		return Status{Kind: NetworkError, Err: err}
	}

	switch serr.Kind {
	case services.KindNotFound:
		return Status{Kind: EmptyResult, Err: err}
	case services.KindNetwork:
		return Status{Kind: NetworkError, Err: err}
	default:
		return Status{Kind: APIError, Message: serr.Message, Err: err}
	}
}
