package summarizer

import (
	"context"

	"docsummarizer/internal/utils/text"
)

// noopMaxLength is the number of characters NoOp keeps from its input.
const noopMaxLength = 500

// NoOp is a summarizer that echoes the beginning of the source text.
// It is meant for local development without provider credentials.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Generate returns the source text truncated to 500 characters. The
// instruction is ignored.
func (n *NoOp) Generate(_ context.Context, inputText, _ string) (string, error) {
	return text.Truncate(inputText, noopMaxLength, "..."), nil
}

// Provider implements Generator.
func (n *NoOp) Provider() string {
	return ProviderNoOp
}

// CircuitOpen implements Generator. NoOp never rejects calls.
func (n *NoOp) CircuitOpen() bool {
	return false
}
