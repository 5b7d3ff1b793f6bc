// package services defines interface MetadataClient for looking up movies over HTTP
//
// OMDb
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
)

//go:generate mockgen -source=services.go -destination=../testing/mocks/metadata_client.go -package=mocks

// MetadataClient defines the interface for movie metadata providers.
type MetadataClient interface {
	// Search looks up movies whose title matches query.
	//
	// A provider failure is returned as a [*SearchError]. Zero matches reported as success
	// yields an empty slice and a nil error.
	Search(ctx context.Context, query string) ([]models.Movie, error)

	// FetchDetail retrieves the detail record of a single movie by its IMDb id.
	// Any failure wraps [shared.ErrDetailUnavailable].
	FetchDetail(ctx context.Context, id string) (*models.DetailRecord, error)
}

// ErrorKind classifies a failed search.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindInvalidKey
	KindNotFound
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidKey:
		return "invalid-key"
	case KindNotFound:
		return "not-found"
	case KindNetwork:
		return "network"
	default:
		return "other"
	}
}

// SearchError is a classified search failure.
//
// Message is the text shown to the user. Err wraps the matching sentinel from [shared] and, for
// network failures, the underlying cause.
type SearchError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

func (e *SearchError) Unwrap() error { return e.Err }

// User-facing messages of the search failure kinds.
const (
	MsgInvalidKey = "Invalid API key. Check your configuration."
	MsgNotFound   = "No movies found. Try different keyword."
	MsgNoResults  = "No results."
	MsgNetwork    = "Network error. Check your connection."
)

// ClassifyAPIError maps the error text of a failed OMDb response to a [*SearchError].
//
// Matching is case-insensitive on substrings, so "Invalid API key!" and "Movie not found!" are
// recognized with or without their punctuation.
func ClassifyAPIError(message string) *SearchError {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "invalid api key"):
		return &SearchError{Kind: KindInvalidKey, Message: MsgInvalidKey, Err: fmt.Errorf("%w: %s", shared.ErrInvalidAPIKey, message)}
	case strings.Contains(lower, "movie not found"):
		return &SearchError{Kind: KindNotFound, Message: MsgNotFound, Err: fmt.Errorf("%w: %s", shared.ErrNotFound, message)}
	}

	text := strings.TrimSpace(message)
	if text == "" {
		text = MsgNoResults
	}
	return &SearchError{Kind: KindOther, Message: text, Err: fmt.Errorf("%w: %s", shared.ErrAPIRequest, text)}
}

// NetworkError wraps a transport or decoding failure.
func NetworkError(cause error) *SearchError {
	return &SearchError{Kind: KindNetwork, Message: MsgNetwork, Err: fmt.Errorf("%w: %w", shared.ErrNetwork, cause)}
}
