package watchlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
)

// DefaultKey is the storage key of the snapshot.
const DefaultKey = "watchlist"

// Renderer is notified with the full ordered list after every effective mutation.
type Renderer interface {
	RenderWatchlist(entries []models.WatchlistEntry)
}

// AddOutcome is the result of [Store.Add].
type AddOutcome int

const (
	Added AddOutcome = iota
	AlreadyPresent
)

func (o AddOutcome) String() string {
	if o == AlreadyPresent {
		return "already-present"
	}
	return "added"
}

// Notice returns the status notice shown to the user.
func (o AddOutcome) Notice() string {
	if o == AlreadyPresent {
		return "Already in watchlist"
	}
	return "Added to watchlist"
}

// RemoveOutcome is the result of [Store.Remove].
type RemoveOutcome int

const (
	Removed RemoveOutcome = iota
	NotPresent
)

func (o RemoveOutcome) String() string {
	if o == NotPresent {
		return "not-present"
	}
	return "removed"
}

// Notice returns the status notice shown to the user.
func (o RemoveOutcome) Notice() string {
	if o == NotPresent {
		return "Not in watchlist"
	}
	return "Removed from watchlist"
}

// Opts configures a [Store]. Every field is optional.
type Opts struct {
	Storage  models.Storage
	Renderer Renderer
	Logger   *log.Logger
	Key      string
	Now      func() time.Time
}

// Store is an ordered collection of watchlist entries, unique by movie id.
type Store struct {
	mu       sync.Mutex
	entries  []models.WatchlistEntry
	index    map[string]int
	storage  models.Storage
	renderer Renderer
	logger   *log.Logger
	key      string
	now      func() time.Time
}

// New creates a [Store] and loads the persisted snapshot, if any.
//
// Load failures are logged and yield an empty store; they are never returned.
func New(ctx context.Context, opts Opts) *Store {
	s := &Store{
		index:    make(map[string]int),
		storage:  opts.Storage,
		renderer: opts.Renderer,
		logger:   opts.Logger,
		key:      opts.Key,
		now:      opts.Now,
	}
	if s.logger == nil {
		s.logger = shared.NewLogger(io.Discard)
	}
	s.logger = shared.WithLogger(s.logger, "component", "watchlist")
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if s.storage == nil {
		return
	}

	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("watchlist snapshot unreadable, starting empty", "key", s.key, "error", fmt.Errorf("%w: %w", shared.ErrStorageRead, err))
		return
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}

	entries, err := Restore([]byte(raw))
	if err != nil {
		s.logger.Warn("watchlist snapshot malformed, starting empty", "key", s.key, "error", err)
		return
	}

	for _, e := range entries {
		s.index[e.Movie.ID] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	s.logger.Debug("watchlist loaded", "entries", len(s.entries))
}

// List returns a copy of the entries in insertion order.
func (s *Store) List() []models.WatchlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Contains reports whether a movie with id is saved.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[strings.TrimSpace(id)]
	return ok
}

// Len returns the number of saved movies.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Add appends movie unless a movie with the same id is already saved.
//
// On [Added] the snapshot is written and the renderer notified. A write failure keeps the new
// entry and is returned wrapped in [shared.ErrSnapshotWrite].
func (s *Store) Add(ctx context.Context, movie models.Movie) (AddOutcome, error) {
	movie.ID = strings.TrimSpace(movie.ID)
	if movie.ID == "" {
		return AlreadyPresent, fmt.Errorf("%w: movie has no id", shared.ErrInvalidInput)
	}

	s.mu.Lock()
	if _, ok := s.index[movie.ID]; ok {
		s.mu.Unlock()
		return AlreadyPresent, nil
	}

	s.index[movie.ID] = len(s.entries)
	s.entries = append(s.entries, models.WatchlistEntry{Movie: movie, AddedAt: s.now().UTC().Truncate(time.Second)})
	err := s.persistLocked(ctx)
	view := s.copyLocked()
	s.mu.Unlock()

	s.logger.Debug("movie added", "id", movie.ID, "title", movie.Title)
	s.render(view)
	return Added, err
}

// Remove deletes the movie with id if it is saved.
//
// On [Removed] the snapshot is written and the renderer notified. A write failure keeps the
// removal and is returned wrapped in [shared.ErrSnapshotWrite].
func (s *Store) Remove(ctx context.Context, id string) (RemoveOutcome, error) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return NotPresent, nil
	}

	s.entries = append(s.entries[:pos], s.entries[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.entries); i++ {
		s.index[s.entries[i].Movie.ID] = i
	}
	err := s.persistLocked(ctx)
	view := s.copyLocked()
	s.mu.Unlock()

	s.logger.Debug("movie removed", "id", id)
	s.render(view)
	return Removed, err
}

// Snapshot serializes the current collection.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Encode(s.entries)
}

func (s *Store) persistLocked(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}

	data, err := Encode(s.entries)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrSnapshotWrite, err)
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("failed to write watchlist snapshot", "key", s.key, "error", err)
		return fmt.Errorf("%w: %w", shared.ErrSnapshotWrite, err)
	}
	return nil
}

func (s *Store) copyLocked() []models.WatchlistEntry {
	out := make([]models.WatchlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) render(entries []models.WatchlistEntry) {
	if s.renderer != nil {
		s.renderer.RenderWatchlist(entries)
	}
}

// Encode serializes entries to the snapshot format.
func Encode(entries []models.WatchlistEntry) ([]byte, error) {
	records := make([]models.WatchlistRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, models.NewWatchlistRecord(e))
	}
	return json.Marshal(records)
}

// Restore parses a snapshot.
//
// Records without an id are rejected as malformed. Later duplicates of an id are dropped.
func Restore(data []byte) ([]models.WatchlistEntry, error) {
	var records []models.WatchlistRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrStorageRead, err)
	}

	seen := make(map[string]struct{}, len(records))
	entries := make([]models.WatchlistEntry, 0, len(records))
	for i, rec := range records {
		e := rec.ToEntry()
		if e.Movie.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no imdbID", shared.ErrStorageRead, i)
		}
		if _, dup := seen[e.Movie.ID]; dup {
			continue
		}
		seen[e.Movie.ID] = struct{}{}
		entries = append(entries, e)
	}
	return entries, nil
}
