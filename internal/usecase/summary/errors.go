// Package summary provides the length-conditioned summarization use case.
// It owns the preset-to-instruction policy and the prompt sent to the
// summarization service, and depends on the service only through Generator.
package summary

import (
	"errors"
	"fmt"
)

// Sentinel errors for summary use case operations.
var (
	// ErrEmptyText indicates that there is no source text to summarize.
	ErrEmptyText = errors.New("source text is required")

	// ErrUnknownPreset indicates that a length preset name is not one of the supported presets.
	ErrUnknownPreset = errors.New("invalid summary length")
)

// RemoteServiceError reports a failed call to the summarization service.
type RemoteServiceError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%s summarization failed: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying transport or API error.
func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}
