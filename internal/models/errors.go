package models

import "fmt"

// ValidationError represents invalid input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamErrorKind distinguishes transport failures from upstream rejections
type UpstreamErrorKind string

const (
	UpstreamUnavailable UpstreamErrorKind = "unavailable"
	UpstreamRejected    UpstreamErrorKind = "rejected"
)

// UpstreamError is returned when the GitHub API cannot be reached or rejects a request
// (StatusCode is 0 when no HTTP response was received)
type UpstreamError struct {
	Kind       UpstreamErrorKind
	StatusCode int
	Message    string
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github %s: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
