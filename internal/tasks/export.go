package tasks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/afero"

	"github.com/noblex1/moviex/internal/formatter"
	"github.com/noblex1/moviex/internal/models"
)

// ExportOpts contains configuration for a watchlist export.
type ExportOpts struct {
	Format  string       // Export format: json, csv, markdown, txt
	Output  string       // Output file, or directory for markdown (default: watchlist.<ext>)
	Posters *http.Client // Downloads posters for markdown exports when set
}

// ExportResult lists the files written by [ExportWatchlist].
type ExportResult struct {
	Format   formatter.Format
	Files    []string
	Warnings []string
}

// ExportWatchlist writes entries to fs in the requested format.
func ExportWatchlist(ctx context.Context, prog chan<- ProgressUpdate, fs afero.Fs, entries []models.WatchlistEntry, opts ExportOpts) (*ExportResult, error) {
	format, err := formatter.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	result := &ExportResult{Format: format}

	if format == formatter.FormatMarkdown {
		dir := opts.Output
		if dir == "" {
			dir = "watchlist"
		}
		md, err := formatter.WriteMarkdownExport(ctx, fs, opts.Posters, entries, dir)
		if err != nil {
			return nil, err
		}
		result.Files = md.Files
		result.Warnings = md.Warnings
		sendProgress(prog, exportedUpdate(len(entries), dir))
		return result, nil
	}

	data, err := formatter.Export(entries, format)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s export: %w", format, err)
	}

	target := opts.Output
	if target == "" {
		target = format.DefaultFilename()
	}
	if err := formatter.WriteExport(fs, target, data); err != nil {
		return nil, err
	}
	result.Files = []string{target}
	sendProgress(prog, exportedUpdate(len(entries), target))
	return result, nil
}
