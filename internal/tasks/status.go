package tasks

import (
	"fmt"
	"strings"
)

// StatusKind enumerates the states of a search session.
type StatusKind int

const (
	Idle StatusKind = iota
	ValidatingEmpty
	Loading
	Success
	EmptyResult
	APIError
	NetworkError
	Cleared
)

func (k StatusKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case ValidatingEmpty:
		return "validating-empty"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case EmptyResult:
		return "empty-result"
	case APIError:
		return "api-error"
	case NetworkError:
		return "network-error"
	case Cleared:
		return "cleared"
	default:
		return ""
	}
}

// Status is the single active status of a search session.
type Status struct {
	Kind    StatusKind
	Count   int    // Number of results, set for Success
	Message string // API error text, set for APIError
	Err     error  // Underlying error for APIError and NetworkError
}

// Text returns the status line shown to the user.
func (s Status) Text() string {
	switch s.Kind {
	case ValidatingEmpty:
		return "Please enter a search term."
	case Loading:
		return "Searching..."
	case Success:
		return fmt.Sprintf("%d results", s.Count)
	case EmptyResult:
		return "No movies found. Try different keyword."
	case APIError:
		if strings.TrimSpace(s.Message) == "" {
			return "No results."
		}
		return s.Message
	case NetworkError:
		return "Network error. Check your connection."
	case Cleared:
		return "Results cleared"
	default:
		return ""
	}
}

// IsError reports whether the status should be styled as an error.
func (s Status) IsError() bool {
	switch s.Kind {
	case ValidatingEmpty, EmptyResult, APIError, NetworkError:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	if t := s.Text(); t != "" {
		return s.Kind.String() + ": " + t
	}
	return s.Kind.String()
}
