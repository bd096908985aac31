// Package summarizer provides the hosted-model adapters behind summary.Generator.
//
// Gemini is the default provider; Claude and OpenAI are selectable
// alternatives and NoOp serves local development. Every adapter makes
// exactly one remote attempt per call, fails fast through a circuit breaker
// when the provider keeps failing, and falls back to a JSON rendering of the
// whole response when the provider returns no text.
package summarizer

import (
	"context"

	"docsummarizer/internal/usecase/summary"
)

// Generator is a summary.Generator that also reports provider health.
type Generator interface {
	summary.Generator

	// Provider returns the provider name.
	Provider() string

	// CircuitOpen reports whether calls are currently rejected.
	CircuitOpen() bool
}

// New builds the adapter selected by cfg.Provider.
func New(ctx context.Context, cfg Config, opts ...Option) (Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderGemini:
		return NewGemini(ctx, cfg, opts...)
	case ProviderClaude:
		return NewClaude(cfg, opts...)
	case ProviderOpenAI:
		return NewOpenAI(cfg, opts...)
	default:
		return NewNoOp(), nil
	}
}
