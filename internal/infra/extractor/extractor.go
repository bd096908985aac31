// Package extractor provides text extraction from uploaded documents.
// Each supported format has its own Extractor; Registry dispatches on the
// file extension.
package extractor

import (
	"context"
	"errors"
	"io"
	"strings"
)

// Sentinel errors for extraction.
var (
	// ErrUnsupportedFormat indicates that no extractor handles the file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailed indicates that a file could not be read as its declared format.
	ErrExtractionFailed = errors.New("text extraction failed")
)

// Extractor extracts text content from documents.
type Extractor interface {
	// Extract reads a document and returns its text content.
	// Paragraphs are separated by a blank line.
	Extract(ctx context.Context, r io.Reader) (string, error)

	// SupportedFormats returns the lower-case file extensions (without dot)
	// this extractor handles.
	SupportedFormats() []string
}

// joinParagraphs right-trims each paragraph, drops empty ones and joins the
// rest with a blank line.
func joinParagraphs(paragraphs []string) string {
	kept := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimRight(p, " \t\r\n\v\f")
		if strings.TrimSpace(p) == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.TrimSpace(strings.Join(kept, "\n\n"))
}
