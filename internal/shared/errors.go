package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("missing OMDb API key")

	// Search and metadata errors
	ErrEmptyQuery        = fmt.Errorf("empty search query")
	ErrInvalidAPIKey     = fmt.Errorf("invalid API key")
	ErrNotFound          = fmt.Errorf("movie not found")
	ErrAPIRequest        = fmt.Errorf("API request failed")
	ErrNetwork           = fmt.Errorf("network error")
	ErrDetailUnavailable = fmt.Errorf("details not available")

	// Persistence errors
	ErrStorageRead   = fmt.Errorf("failed to read snapshot")
	ErrSnapshotWrite = fmt.Errorf("failed to write snapshot")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
