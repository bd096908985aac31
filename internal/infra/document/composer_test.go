package document_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsummarizer/internal/infra/document"
)

type mockComposeMetrics struct {
	mu        sync.Mutex
	pages     []int
	durations []time.Duration
}

func (m *mockComposeMetrics) RecordPages(pages int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = append(m.pages, pages)
}

func (m *mockComposeMetrics) RecordDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, d)
}

func newTestComposer(t *testing.T) (*document.Composer, *mockComposeMetrics) {
	t.Helper()
	c, err := document.NewComposer(document.LetterGeometry())
	require.NoError(t, err)
	metrics := &mockComposeMetrics{}
	return c.WithMetricsRecorder(metrics), metrics
}

func pageCount(t *testing.T, b []byte) int {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	return r.NumPage()
}

func TestNewComposer_InvalidGeometry(t *testing.T) {
	g := document.LetterGeometry()
	g.LineHeight = -1

	_, err := document.NewComposer(g)
	assert.ErrorIs(t, err, document.ErrInvalidGeometry)
}

func TestComposer_Compose_Empty(t *testing.T) {
	c, metrics := newTestComposer(t)

	out, err := c.Compose(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, 1, pageCount(t, out))
	assert.Equal(t, []int{1}, metrics.pages)
	assert.Len(t, metrics.durations, 1)
}

func TestComposer_Compose_Idempotent(t *testing.T) {
	c, _ := newTestComposer(t)
	text := strings.Repeat("Summaries should be reproducible byte for byte. ", 200)

	first, err := c.Compose(context.Background(), text)
	require.NoError(t, err)
	second, err := c.Compose(context.Background(), text)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "composing the same text twice must give identical bytes")
}

func TestComposer_Compose_Overflow(t *testing.T) {
	c, metrics := newTestComposer(t)
	text := strings.Repeat("lorem ipsum dolor sit amet consectetur adipiscing elit ", 400)

	pages, err := c.Layout(text)
	require.NoError(t, err)
	require.Greater(t, len(pages), 1)

	out, err := c.Compose(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, len(pages), pageCount(t, out))
	assert.Equal(t, []int{len(pages)}, metrics.pages)
}

func TestComposer_Layout_MeasuresWithDrawingFont(t *testing.T) {
	c, _ := newTestComposer(t)
	g := c.Geometry()
	text := strings.Repeat("Width measurement must match the Times-Roman font used for drawing. ", 30)

	pages, err := c.Layout(text)
	require.NoError(t, err)

	ref := gofpdf.New("P", "pt", "Letter", "")
	ref.SetFont("Times", "", 12)

	lines := allLines(pages)
	require.Greater(t, len(lines), 1)
	for i, l := range lines {
		assert.LessOrEqual(t, ref.GetStringWidth(l.Text), g.UsableWidth(), "line %q too wide", l.Text)
		if i+1 < len(lines) {
			next := strings.Fields(lines[i+1].Text)[0]
			assert.Greater(t, ref.GetStringWidth(l.Text+" "+next), g.UsableWidth(),
				"line %q could have held %q", l.Text, next)
		}
	}
}

func TestComposer_Compose_OverlongAndUnicode(t *testing.T) {
	c, _ := newTestComposer(t)
	text := "naïve café – “quoted” " + strings.Repeat("W", 200) + " fin"

	out, err := c.Compose(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, 1, pageCount(t, out))

	pages, err := c.Layout(text)
	require.NoError(t, err)
	var got []string
	for _, l := range allLines(pages) {
		got = append(got, l.Text)
	}
	assert.Contains(t, got, strings.Repeat("W", 200))
}
