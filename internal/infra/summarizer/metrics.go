package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels recorded by RecordOutcome.
const (
	outcomeSuccess  = "success"
	outcomeFailure  = "failure"
	outcomeRejected = "rejected"
)

// SummaryMetricsRecorder defines the interface for recording summary-related metrics.
// It lets tests inject a mock instead of the Prometheus registry.
type SummaryMetricsRecorder interface {
	// RecordLength records the length of a generated summary in characters.
	RecordLength(length int)

	// RecordDuration records the time taken by one remote call.
	RecordDuration(duration time.Duration)

	// RecordOutcome counts a finished call by provider and status
	// (success, failure, rejected).
	RecordOutcome(provider, status string)

	// RecordFallback counts responses without text that were returned as a
	// rendering of the whole response object.
	RecordFallback(provider string)
}

// PrometheusSummaryMetrics implements SummaryMetricsRecorder using Prometheus metrics.
type PrometheusSummaryMetrics struct {
	lengthHistogram   prometheus.Histogram
	durationHistogram prometheus.Histogram
	outcomeCounter    *prometheus.CounterVec
	fallbackCounter   *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateHistogram gets an existing histogram or creates a new one if it doesn't exist
func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		return promauto.NewHistogram(opts)
	}
	return h
}

// getOrCreateCounterVec gets an existing counter vector or creates a new one if it doesn't exist
func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

// NewPrometheusSummaryMetrics creates a new Prometheus-based metrics recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			lengthHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "summary_length_characters",
				Help:    "Distribution of summary lengths in characters (Unicode runes)",
				Buckets: []float64{100, 300, 500, 1000, 2000, 4000, 8000},
			}),
			durationHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "summarization_duration_seconds",
				Help:    "Time taken by one summarization API call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
			outcomeCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "summarization_requests_total",
				Help: "Total number of summarization calls by provider and outcome",
			}, []string{"provider", "status"}),
			fallbackCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "summarization_fallback_total",
				Help: "Total number of provider responses without text",
			}, []string{"provider"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements SummaryMetricsRecorder.RecordLength
func (p *PrometheusSummaryMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

// RecordDuration implements SummaryMetricsRecorder.RecordDuration
func (p *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}

// RecordOutcome implements SummaryMetricsRecorder.RecordOutcome
func (p *PrometheusSummaryMetrics) RecordOutcome(provider, status string) {
	p.outcomeCounter.WithLabelValues(provider, status).Inc()
}

// RecordFallback implements SummaryMetricsRecorder.RecordFallback
func (p *PrometheusSummaryMetrics) RecordFallback(provider string) {
	p.fallbackCounter.WithLabelValues(provider).Inc()
}
