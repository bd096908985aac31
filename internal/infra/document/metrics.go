package document

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ComposeMetricsRecorder records document composition metrics.
type ComposeMetricsRecorder interface {
	// RecordPages records the number of pages in a composed document.
	RecordPages(pages int)

	// RecordDuration records the time taken to lay out and serialize a document.
	RecordDuration(duration time.Duration)
}

// PrometheusComposeMetrics implements ComposeMetricsRecorder using Prometheus.
type PrometheusComposeMetrics struct {
	pagesHistogram    prometheus.Histogram
	durationHistogram prometheus.Histogram
}

var (
	composeMetricsInstance *PrometheusComposeMetrics
	composeMetricsOnce     sync.Once
)

// NewPrometheusComposeMetrics returns the process-wide composition metrics.
// Uses a singleton to avoid duplicate registration when several composers exist.
func NewPrometheusComposeMetrics() *PrometheusComposeMetrics {
	composeMetricsOnce.Do(func() {
		composeMetricsInstance = &PrometheusComposeMetrics{
			pagesHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "summary_document_pages",
				Help:    "Number of pages in composed summary documents",
				Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
			}),
			durationHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "summary_document_compose_duration_seconds",
				Help:    "Time taken to lay out and serialize a summary document",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			}),
		}
	})
	return composeMetricsInstance
}

// RecordPages implements ComposeMetricsRecorder.RecordPages
func (p *PrometheusComposeMetrics) RecordPages(pages int) {
	p.pagesHistogram.Observe(float64(pages))
}

// RecordDuration implements ComposeMetricsRecorder.RecordDuration
func (p *PrometheusComposeMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}
