package extractor

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ExtractionMetricsRecorder records text extraction metrics.
type ExtractionMetricsRecorder interface {
	// RecordOutcome counts an extraction attempt by format and status
	// ("success", "failure", "unsupported").
	RecordOutcome(format, status string)

	// RecordDuration records the time a successful extraction took.
	RecordDuration(format string, duration time.Duration)
}

// PrometheusExtractionMetrics implements ExtractionMetricsRecorder using Prometheus.
type PrometheusExtractionMetrics struct {
	outcomes  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

var (
	extractionMetricsInstance *PrometheusExtractionMetrics
	extractionMetricsOnce     sync.Once
)

// NewPrometheusExtractionMetrics returns the process-wide extraction metrics.
func NewPrometheusExtractionMetrics() *PrometheusExtractionMetrics {
	extractionMetricsOnce.Do(func() {
		extractionMetricsInstance = &PrometheusExtractionMetrics{
			outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "document_extractions_total",
				Help: "Total number of document text extractions by format and status",
			}, []string{"format", "status"}),
			durations: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "document_extraction_duration_seconds",
				Help:    "Time taken to extract text from an uploaded document",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			}, []string{"format"}),
		}
	})
	return extractionMetricsInstance
}

// RecordOutcome implements ExtractionMetricsRecorder.RecordOutcome
func (p *PrometheusExtractionMetrics) RecordOutcome(format, status string) {
	p.outcomes.WithLabelValues(format, status).Inc()
}

// RecordDuration implements ExtractionMetricsRecorder.RecordDuration
func (p *PrometheusExtractionMetrics) RecordDuration(format string, duration time.Duration) {
	p.durations.WithLabelValues(format).Observe(duration.Seconds())
}
