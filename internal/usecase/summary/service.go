package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"docsummarizer/internal/observability/tracing"
	"docsummarizer/internal/utils/text"
)

// Generator is the summarization capability. Implementations send text and
// instruction to a generative model and always return a string on success,
// falling back to a rendering of the raw response when it carries no text.
// Failures are reported as *RemoteServiceError.
type Generator interface {
	Generate(ctx context.Context, text, instruction string) (string, error)
}

// Service produces length-conditioned summaries.
type Service struct {
	Generator Generator
}

// Summarize asks the generator for a summary of text at the given preset.
// The call is attempted exactly once.
func (s *Service) Summarize(ctx context.Context, sourceText string, preset Preset) (string, error) {
	if strings.TrimSpace(sourceText) == "" {
		return "", ErrEmptyText
	}
	instruction, err := preset.Instruction()
	if err != nil {
		return "", err
	}

	ctx, span := tracing.GetTracer().Start(ctx, "summary.Summarize")
	defer span.End()
	span.SetAttributes(
		attribute.String("summary.preset", preset.String()),
		attribute.Int("summary.input_length", text.CountRunes(sourceText)),
	)

	start := time.Now()
	out, err := s.Generator.Generate(ctx, sourceText, instruction)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "summarization failed")
		return "", fmt.Errorf("summarize: %w", err)
	}

	slog.InfoContext(ctx, "summary generated",
		slog.String("preset", preset.String()),
		slog.Int("input_length", text.CountRunes(sourceText)),
		slog.Int("summary_length", text.CountRunes(out)),
		slog.Duration("duration", time.Since(start)))

	return out, nil
}
