// package models defines the data model for the movie search and watchlist service
package models

import (
	"context"
	"strings"
	"time"
)

// notAvailable is the literal OMDb uses for a missing value.
const notAvailable = "N/A"

// Storage defines the key/value capability used to persist snapshots and preferences.
// Implementations include the SQLite kv repository and an in-memory map in tests.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error) // Get returns the value stored at key, ok is false when the key is absent
	Set(ctx context.Context, key, value string) error                     // Set stores value at key, replacing any previous value
}

// Movie is a single search result.
type Movie struct {
	ID     string // IMDb id, e.g. "tt0111161"
	Title  string
	Year   string // as delivered, e.g. "1994" or "2008–2012"
	Type   string // movie, series, episode or game
	Poster string // empty when absent
}

// HasPoster reports whether the movie has a poster URL.
func (m Movie) HasPoster() bool {
	return m.Poster != ""
}

// WatchlistEntry is a movie saved to the watchlist.
type WatchlistEntry struct {
	Movie   Movie
	AddedAt time.Time
}

// DetailRecord holds the details shown when a card is expanded.
//
// Empty fields mean the API had no value; renderers print "N/A" for them.
type DetailRecord struct {
	ID     string `json:"imdbID,omitempty"`
	Title  string `json:"Title,omitempty"`
	Year   string `json:"Year,omitempty"`
	Type   string `json:"Type,omitempty"`
	Poster string `json:"Poster,omitempty"`
	Plot   string `json:"Plot"`
	Actors string `json:"Actors"`
	Rating string `json:"imdbRating"`
	Genre  string `json:"Genre"`
}

// Normalize replaces every "N/A" field with an empty string.
func (d *DetailRecord) Normalize() {
	for _, f := range []*string{&d.ID, &d.Title, &d.Year, &d.Type, &d.Poster, &d.Plot, &d.Actors, &d.Rating, &d.Genre} {
		*f = clean(*f)
	}
}

// Movie returns the movie part of a detail record.
func (d DetailRecord) Movie() Movie {
	return Movie{ID: d.ID, Title: d.Title, Year: d.Year, Type: d.Type, Poster: d.Poster}
}

// MovieRecord is the OMDb JSON form of a [Movie].
type MovieRecord struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ID     string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// NewMovieRecord converts m to its wire form, writing "N/A" for an absent poster.
func NewMovieRecord(m Movie) MovieRecord {
	poster := m.Poster
	if poster == "" {
		poster = notAvailable
	}
	return MovieRecord{Title: m.Title, Year: m.Year, ID: m.ID, Type: m.Type, Poster: poster}
}

// ToMovie converts a wire record to a [Movie], normalizing "N/A" to empty.
func (r MovieRecord) ToMovie() Movie {
	return Movie{
		ID:     strings.TrimSpace(r.ID),
		Title:  clean(r.Title),
		Year:   clean(r.Year),
		Type:   clean(r.Type),
		Poster: clean(r.Poster),
	}
}

// WatchlistRecord is one element of the persisted watchlist snapshot.
type WatchlistRecord struct {
	MovieRecord
	AddedAt *time.Time `json:"addedAt,omitempty"`
}

// NewWatchlistRecord converts e to its snapshot form.
func NewWatchlistRecord(e WatchlistEntry) WatchlistRecord {
	rec := WatchlistRecord{MovieRecord: NewMovieRecord(e.Movie)}
	if !e.AddedAt.IsZero() {
		t := e.AddedAt.UTC()
		rec.AddedAt = &t
	}
	return rec
}

// ToEntry converts a snapshot record to a [WatchlistEntry]. A missing addedAt yields a zero time.
func (r WatchlistRecord) ToEntry() WatchlistEntry {
	e := WatchlistEntry{Movie: r.MovieRecord.ToMovie()}
	if r.AddedAt != nil {
		e.AddedAt = r.AddedAt.UTC()
	}
	return e
}

// Theme is the presentation preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme named by s, defaulting to [ThemeLight].
func ParseTheme(s string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(s))) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string {
	return string(t)
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}
