package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.opentelemetry.io/otel/attribute"

	"docsummarizer/internal/observability/tracing"
)

// fixedTimestamp pins the document info dates so identical input produces
// byte-identical output.
var fixedTimestamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Composer renders text into a paginated PDF using gofpdf core fonts.
// A Composer holds no per-document state and is safe for concurrent use.
type Composer struct {
	geometry        Geometry
	metricsRecorder ComposeMetricsRecorder
}

// NewComposer creates a Composer for the given geometry.
func NewComposer(g Geometry) (*Composer, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Composer{
		geometry:        g,
		metricsRecorder: NewPrometheusComposeMetrics(),
	}, nil
}

// WithMetricsRecorder replaces the metrics recorder. It is intended for tests.
func (c *Composer) WithMetricsRecorder(r ComposeMetricsRecorder) *Composer {
	c.metricsRecorder = r
	return c
}

// Geometry returns the page geometry used by the composer.
func (c *Composer) Geometry() Geometry {
	return c.geometry
}

// newPDF creates a gofpdf document with the font selected, ready for
// measurement and drawing.
func (c *Composer) newPDF() *gofpdf.Fpdf {
	g := c.geometry
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(g.LeftMargin, g.TopMargin, g.RightMargin)
	pdf.SetAutoPageBreak(false, g.BottomMargin)
	pdf.SetCreationDate(fixedTimestamp)
	pdf.SetModificationDate(fixedTimestamp)
	pdf.SetCatalogSort(true)
	pdf.SetFont(g.FontFamily, g.FontStyle, g.FontSize)
	return pdf
}

// fontMeasurer measures strings with the exact font and size used for drawing.
// Text is translated to the core font encoding before measuring, the same way
// it is translated before drawing.
type fontMeasurer struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
}

func (m fontMeasurer) StringWidth(s string) float64 {
	return m.pdf.GetStringWidth(m.translate(s))
}

// Layout computes the pages and lines Compose would draw for text.
func (c *Composer) Layout(text string) ([]Page, error) {
	pdf := c.newPDF()
	return Layout(text, c.geometry, fontMeasurer{pdf: pdf, translate: pdf.UnicodeTranslatorFromDescriptor("")})
}

// Compose lays text out and serializes it to PDF bytes.
// It never fails for well-formed input: empty text yields one blank page and
// overlong words are drawn on their own lines.
func (c *Composer) Compose(ctx context.Context, text string) ([]byte, error) {
	_, span := tracing.GetTracer().Start(ctx, "document.Compose")
	defer span.End()

	start := time.Now()

	pdf := c.newPDF()
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	pages, err := Layout(text, c.geometry, fontMeasurer{pdf: pdf, translate: translate})
	if err != nil {
		return nil, fmt.Errorf("layout summary: %w", err)
	}

	lineCount := 0
	for _, page := range pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			pdf.Text(line.X, line.Y, translate(line.Text))
		}
		lineCount += len(page.Lines)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	duration := time.Since(start)
	span.SetAttributes(
		attribute.Int("document.pages", len(pages)),
		attribute.Int("document.lines", lineCount),
		attribute.Int("document.bytes", buf.Len()),
	)

	slog.DebugContext(ctx, "summary document composed",
		slog.Int("pages", len(pages)),
		slog.Int("lines", lineCount),
		slog.Int("bytes", buf.Len()),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordPages(len(pages))
	c.metricsRecorder.RecordDuration(duration)

	return buf.Bytes(), nil
}
