package extractor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"docsummarizer/internal/observability/tracing"
)

// Registry dispatches extraction to the Extractor registered for a file extension.
type Registry struct {
	byFormat        map[string]Extractor
	metricsRecorder ExtractionMetricsRecorder
}

// NewRegistry creates a Registry with the given extractors.
// Later extractors override earlier ones for the same extension.
func NewRegistry(extractors ...Extractor) *Registry {
	reg := &Registry{
		byFormat:        make(map[string]Extractor),
		metricsRecorder: NewPrometheusExtractionMetrics(),
	}
	for _, e := range extractors {
		for _, format := range e.SupportedFormats() {
			reg.byFormat[strings.ToLower(format)] = e
		}
	}
	return reg
}

// NewDefaultRegistry creates a Registry for PDF, DOCX and plain text files.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewPDF(), NewDOCX(), NewPlainText())
}

// WithMetricsRecorder replaces the metrics recorder. It is intended for tests.
func (r *Registry) WithMetricsRecorder(m ExtractionMetricsRecorder) *Registry {
	r.metricsRecorder = m
	return r
}

// SupportedFormats returns the registered extensions in sorted order.
func (r *Registry) SupportedFormats() []string {
	formats := make([]string, 0, len(r.byFormat))
	for f := range r.byFormat {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// Format returns the lower-case extension of filename without the dot.
func Format(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// Extract selects an extractor by the extension of filename and returns the
// document text. Failures wrap ErrUnsupportedFormat or ErrExtractionFailed.
func (r *Registry) Extract(ctx context.Context, filename string, rd io.Reader) (string, error) {
	format := Format(filename)

	ctx, span := tracing.GetTracer().Start(ctx, "extractor.Extract")
	defer span.End()
	span.SetAttributes(attribute.String("document.format", format))

	e, ok := r.byFormat[format]
	if !ok {
		// Arbitrary user extensions would explode label cardinality.
		r.metricsRecorder.RecordOutcome("other", "unsupported")
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	start := time.Now()
	text, err := e.Extract(ctx, rd)
	duration := time.Since(start)

	if err != nil {
		r.metricsRecorder.RecordOutcome(format, "failure")
		slog.WarnContext(ctx, "text extraction failed",
			slog.String("format", format),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	r.metricsRecorder.RecordOutcome(format, "success")
	r.metricsRecorder.RecordDuration(format, duration)
	slog.InfoContext(ctx, "text extracted",
		slog.String("format", format),
		slog.Int("characters", len([]rune(text))),
		slog.Duration("duration", duration))

	return text, nil
}
