// package formatter provides functions to export watchlist data to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
)

// Format is an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat maps a format name or common alias to a [Format].
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json", "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q (use csv, markdown, txt or json)", shared.ErrInvalidArgument, name)
	}
}

// Extension returns the file extension of the format, without the dot.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// DefaultFilename returns the file name used when no output path is given.
func (f Format) DefaultFilename() string {
	return "watchlist." + f.Extension()
}

// Export renders entries in format f.
func Export(entries []models.WatchlistEntry, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(entries)
	case FormatMarkdown:
		return ExportToMarkdown(entries, nil)
	case FormatText:
		return ExportToText(entries)
	case FormatJSON:
		return ExportToJSON(entries)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, f)
	}
}

// ExportToCSV converts watchlist entries to CSV format with columns: ID, Title, Year, Type, Poster, Added
func ExportToCSV(entries []models.WatchlistEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Type", "Poster", "Added"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.Movie.ID,
			e.Movie.Title,
			e.Movie.Year,
			e.Movie.Type,
			e.Movie.Poster,
			formatAdded(e.AddedAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts watchlist entries to Markdown. posters maps movie ids to local image
// paths; entries without one are listed without an image.
func ExportToMarkdown(entries []models.WatchlistEntry, posters map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Watchlist\n\n")
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(entries)))

	if len(entries) == 0 {
		buf.WriteString("_Your watchlist is empty._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Movies\n\n")
	for i, e := range entries {
		link := e.Movie.ID
		if u, err := shared.IMDbURL(e.Movie.ID); err == nil {
			link = fmt.Sprintf("[%s](%s)", e.Movie.ID, u)
		}
		buf.WriteString(fmt.Sprintf("%d. **%s** (%s) [%s] %s\n", i+1, e.Movie.Title, shared.ValueOrNA(e.Movie.Year), shared.ValueOrNA(e.Movie.Type), link))
		if img, ok := posters[e.Movie.ID]; ok {
			buf.WriteString(fmt.Sprintf("   ![%s](%s)\n", e.Movie.Title, img))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts watchlist entries to plain text format
func ExportToText(entries []models.WatchlistEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Watchlist: %d movies\n\n", len(entries)))
	for i, e := range entries {
		buf.WriteString(fmt.Sprintf("%d. %s (%s) - %s\n", i+1, e.Movie.Title, shared.ValueOrNA(e.Movie.Year), e.Movie.ID))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts watchlist entries to the indented snapshot form.
func ExportToJSON(entries []models.WatchlistEntry) ([]byte, error) {
	records := make([]models.WatchlistRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, models.NewWatchlistRecord(e))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// WriteExport writes data to path on fs, creating parent directories as needed.
func WriteExport(fs afero.Fs, target string, data []byte) error {
	if target == "" {
		return fmt.Errorf("%w: empty output path", shared.ErrMissingArgument)
	}
	if dir := filepath.Dir(target); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, target, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Warnings  []string
}

// WriteMarkdownExport exports the watchlist to Markdown in a dedicated directory.
//
// Creates {dir}/README.md and, when client is not nil, downloads posters to {dir}/posters/{id}.jpg.
// A poster that fails to download is reported in Warnings and left out of the document.
func WriteMarkdownExport(ctx context.Context, fs afero.Fs, client *http.Client, entries []models.WatchlistEntry, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "watchlist"
	}

	if err := fs.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{Directory: outputDir, Files: []string{}}
	posters := make(map[string]string)

	if client != nil {
		for _, e := range entries {
			if !e.Movie.HasPoster() {
				continue
			}
			imageData, err := DownloadImage(ctx, client, e.Movie.Poster)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", e.Movie.ID, err))
				continue
			}

			rel := path.Join("posters", e.Movie.ID+".jpg")
			full := filepath.Join(outputDir, "posters", e.Movie.ID+".jpg")
			if err := WriteExport(fs, full, imageData); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", e.Movie.ID, err))
				continue
			}
			posters[e.Movie.ID] = rel
			result.Files = append(result.Files, full)
		}
	}

	mdData, err := ExportToMarkdown(entries, posters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := WriteExport(fs, mdFile, mdData); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, mdFile)

	return result, nil
}

func formatAdded(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
