package formatter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
	tu "github.com/noblex1/moviex/internal/testing"
)

func sampleEntries() []models.WatchlistEntry {
	added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.WatchlistEntry{
		{Movie: models.Movie{ID: "tt0111161", Title: "The Shawshank Redemption", Year: "1994", Type: "movie"}, AddedAt: added},
		{Movie: models.Movie{ID: "tt0468569", Title: "The Dark Knight", Year: "2008", Type: "movie", Poster: "https://example.com/dk.jpg"}},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleEntries())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,Title,Year,Type,Poster,Added") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "tt0111161,The Shawshank Redemption,1994,movie,,2024-03-01T12:00:00Z") {
			t.Errorf("CSV missing first row, got: %s", output)
		}
		if !strings.Contains(output, "https://example.com/dk.jpg") {
			t.Errorf("CSV missing poster URL")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleEntries(), map[string]string{"tt0468569": "posters/tt0468569.jpg"})
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "# Watchlist") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Movies**: 2") {
			t.Errorf("Markdown missing count")
		}
		if !strings.Contains(output, "1. **The Shawshank Redemption** (1994) [movie] [tt0111161](https://www.imdb.com/title/tt0111161/)") {
			t.Errorf("Markdown missing first item, got: %s", output)
		}
		if !strings.Contains(output, "![The Dark Knight](posters/tt0468569.jpg)") {
			t.Errorf("Markdown missing poster image")
		}
	})

	t.Run("ExportToMarkdown Empty", func(t *testing.T) {
		data, err := ExportToMarkdown(nil, nil)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "empty") {
			t.Errorf("expected empty notice, got: %s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleEntries())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Watchlist: 2 movies") {
			t.Errorf("Text missing header, got: %s", output)
		}
		if !strings.Contains(output, "2. The Dark Knight (2008) - tt0468569") {
			t.Errorf("Text missing second item, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleEntries())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var records []models.WatchlistRecord
		if err := json.Unmarshal(data, &records); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].Poster != "N/A" {
			t.Errorf("expected N/A poster, got %q", records[0].Poster)
		}
		if records[1].AddedAt != nil {
			t.Errorf("expected missing addedAt for zero time")
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ext  string
	}{
		{"csv", FormatCSV, "csv"},
		{"MD", FormatMarkdown, "md"},
		{"markdown", FormatMarkdown, "md"},
		{"text", FormatText, "txt"},
		{"", FormatJSON, "json"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
			}
			if got.Extension() != tt.ext {
				t.Errorf("expected extension %s, got %s", tt.ext, got.Extension())
			}
		})
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("Creates Directories", func(t *testing.T) {
		fs := afero.NewMemMapFs()

		if err := WriteExport(fs, "out/nested/watchlist.csv", []byte("x")); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}

		data, err := afero.ReadFile(fs, "out/nested/watchlist.csv")
		if err != nil {
			t.Fatalf("file not written: %v", err)
		}
		if string(data) != "x" {
			t.Errorf("unexpected content %q", data)
		}
	})

	t.Run("Empty Path", func(t *testing.T) {
		if err := WriteExport(afero.NewMemMapFs(), "", nil); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Read Only Filesystem", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		if err := WriteExport(fs, "watchlist.csv", []byte("x")); err == nil {
			t.Error("expected error on read-only filesystem")
		}
	})
}

func TestWriteMarkdownExport(t *testing.T) {
	t.Run("Without Posters", func(t *testing.T) {
		fs := afero.NewMemMapFs()

		result, err := WriteMarkdownExport(context.Background(), fs, nil, sampleEntries(), "export")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}
		if len(result.Files) != 1 {
			t.Fatalf("expected 1 file, got %v", result.Files)
		}
		if ok, _ := afero.Exists(fs, "export/README.md"); !ok {
			t.Error("README.md not written")
		}
	})

	t.Run("With Posters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("jpeg-bytes"))
		}))
		defer server.Close()

		entries := sampleEntries()
		entries[1].Movie.Poster = server.URL + "/dk.jpg"

		fs := afero.NewMemMapFs()
		result, err := WriteMarkdownExport(context.Background(), fs, server.Client(), entries, "export")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}
		if len(result.Warnings) != 0 {
			t.Errorf("unexpected warnings: %v", result.Warnings)
		}

		data, err := afero.ReadFile(fs, "export/posters/tt0468569.jpg")
		if err != nil || string(data) != "jpeg-bytes" {
			t.Errorf("poster not written: %v", err)
		}

		readme, _ := afero.ReadFile(fs, "export/README.md")
		if !strings.Contains(string(readme), "posters/tt0468569.jpg") {
			t.Errorf("README missing poster reference: %s", readme)
		}
	})

	t.Run("Poster Download Failure", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

		fs := afero.NewMemMapFs()
		result, err := WriteMarkdownExport(context.Background(), fs, client, sampleEntries(), "export")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}
		if len(result.Warnings) != 1 {
			t.Errorf("expected 1 warning, got %v", result.Warnings)
		}
		if ok, _ := afero.Exists(fs, "export/posters/tt0468569.jpg"); ok {
			t.Error("poster should not be written")
		}
	})
}

func TestDownloadImage(t *testing.T) {
	t.Run("Empty URL", func(t *testing.T) {
		if _, err := DownloadImage(context.Background(), nil, ""); err == nil {
			t.Error("expected error for empty URL")
		}
	})

	t.Run("Non-OK Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		if _, err := DownloadImage(context.Background(), server.Client(), server.URL); err == nil {
			t.Error("expected error for 404")
		}
	})
}
