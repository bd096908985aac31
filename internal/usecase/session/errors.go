// Package session holds the per-visitor state of the interactive summarizer
// and the operations that move it forward: choosing an input mode, supplying
// text, generating a summary and exporting it as a PDF.
package session

import "errors"

// Sentinel errors for session operations.
var (
	// ErrSessionNotFound indicates that a store holds no state for the id.
	// Service methods treat it as a fresh session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidSessionID indicates an empty session id.
	ErrInvalidSessionID = errors.New("invalid session ID")

	// ErrInvalidMode indicates a mode other than upload or manual.
	ErrInvalidMode = errors.New("invalid input mode")

	// ErrWrongMode indicates an input action that does not match the
	// session's current mode, such as an upload in manual mode.
	ErrWrongMode = errors.New("action not available in current input mode")

	// ErrExtraction indicates that an uploaded file could not be read.
	ErrExtraction = errors.New("failed to read the file")

	// ErrNoSourceText indicates a generation request without source text.
	ErrNoSourceText = errors.New("no source text to summarize")

	// ErrNoSummary indicates a download request before any summary exists.
	ErrNoSummary = errors.New("no summary to download")
)
