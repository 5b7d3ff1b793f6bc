package tasks

import (
	"fmt"

	"github.com/noblex1/moviex/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchMovies Phase = iota
	AddMovies
	ExportMovies
)

func (p Phase) String() string {
	switch p {
	case FetchMovies:
		return "fetch_movies"
	case AddMovies:
		return "add_movies"
	case ExportMovies:
		return "export_movies"
	default:
		return ""
	}
}

// sendProgress delivers u without blocking; updates are dropped when nobody is listening.
func sendProgress(progress chan<- ProgressUpdate, u ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- u:
	default:
	}
}

func fetchingMoviesUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMovies,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Looking up %d movies...", total),
	}
}

func fetchedMovieUpdate(step, total int, m models.Movie) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Found: %s (%s)", step, total, m.Title, m.Year),
		Data:    m,
	}
}

func fetchFailedUpdate(step, total int, id string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, id, err),
	}
}

func addedMovieUpdate(step, total int, m models.Movie, notice string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %s", step, total, notice, m.Title),
		Data:    m,
	}
}

func exportedUpdate(total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportMovies,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("✓ Exported %d movies to %s", total, path),
	}
}
