package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMovieRecord(t *testing.T) {
	t.Run("ToMovie normalizes N/A poster", func(t *testing.T) {
		rec := MovieRecord{Title: "The Shawshank Redemption", Year: "1994", ID: "tt0111161", Type: "movie", Poster: "N/A"}
		m := rec.ToMovie()
		if m.HasPoster() {
			t.Errorf("expected no poster, got %q", m.Poster)
		}
		if m.ID != "tt0111161" {
			t.Errorf("expected id tt0111161, got %s", m.ID)
		}
	})

	t.Run("NewMovieRecord writes N/A for absent poster", func(t *testing.T) {
		rec := NewMovieRecord(Movie{ID: "tt0468569", Title: "The Dark Knight"})
		if rec.Poster != "N/A" {
			t.Errorf("expected N/A poster, got %q", rec.Poster)
		}
	})

	t.Run("JSON uses OMDb field names", func(t *testing.T) {
		data := []byte(`{"Title":"Batman Begins","Year":"2005","imdbID":"tt0372784","Type":"movie","Poster":"https://example.com/p.jpg"}`)
		var rec MovieRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m := rec.ToMovie()
		if m.ID != "tt0372784" || !m.HasPoster() || m.Year != "2005" {
			t.Errorf("unexpected movie: %+v", m)
		}
	})
}

func TestWatchlistRecord(t *testing.T) {
	t.Run("round trip keeps addedAt", func(t *testing.T) {
		added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		entry := WatchlistEntry{Movie: Movie{ID: "tt0111161", Title: "The Shawshank Redemption"}, AddedAt: added}

		data, err := json.Marshal(NewWatchlistRecord(entry))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var rec WatchlistRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := rec.ToEntry(); got != entry {
			t.Errorf("expected %+v, got %+v", entry, got)
		}
	})

	t.Run("missing addedAt yields zero time", func(t *testing.T) {
		var rec WatchlistRecord
		if err := json.Unmarshal([]byte(`{"imdbID":"tt1","Title":"X","Poster":"N/A"}`), &rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !rec.ToEntry().AddedAt.IsZero() {
			t.Error("expected zero AddedAt")
		}
	})
}

func TestDetailRecord(t *testing.T) {
	d := DetailRecord{Plot: "N/A", Actors: "Tim Robbins", Rating: "9.3", Genre: " N/A "}
	d.Normalize()
	if d.Plot != "" || d.Genre != "" {
		t.Errorf("expected N/A fields to be empty, got %+v", d)
	}
	if d.Actors != "Tim Robbins" || d.Rating != "9.3" {
		t.Errorf("expected values to be kept, got %+v", d)
	}
}

func TestTheme(t *testing.T) {
	tests := []struct {
		in   string
		want Theme
	}{
		{"dark", ThemeDark},
		{" DARK ", ThemeDark},
		{"light", ThemeLight},
		{"", ThemeLight},
		{"solarized", ThemeLight},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseTheme(tt.in); got != tt.want {
				t.Errorf("ParseTheme(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}

	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("Toggle should flip the theme")
	}
}
