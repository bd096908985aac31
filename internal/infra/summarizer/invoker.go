package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"docsummarizer/internal/resilience/circuitbreaker"
	"docsummarizer/internal/usecase/summary"
	"docsummarizer/internal/utils/text"
)

// Option customizes an adapter built by one of the constructors.
type Option func(*invoker)

// WithMetricsRecorder replaces the Prometheus recorder.
func WithMetricsRecorder(r SummaryMetricsRecorder) Option {
	return func(i *invoker) {
		i.metricsRecorder = r
	}
}

// WithCircuitBreaker replaces the provider's default circuit breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(i *invoker) {
		i.circuitBreaker = cb
	}
}

// reply is the outcome of one successful provider call. Fallback is set when
// the provider returned no text and Text holds a rendering of the response.
type reply struct {
	Text     string
	Fallback bool
}

// invoker runs a single provider call through the circuit breaker and records
// logs and metrics for it. It never retries.
type invoker struct {
	provider        string
	timeout         time.Duration
	circuitBreaker  *circuitbreaker.CircuitBreaker
	metricsRecorder SummaryMetricsRecorder
}

func newInvoker(provider string, timeout time.Duration, opts []Option) *invoker {
	i := &invoker{
		provider:        provider,
		timeout:         timeout,
		circuitBreaker:  circuitbreaker.New(circuitbreaker.SummarizerConfig(provider)),
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Provider returns the provider name used in logs, metrics and errors.
func (i *invoker) Provider() string {
	return i.provider
}

// CircuitOpen reports whether calls to the provider are currently rejected.
func (i *invoker) CircuitOpen() bool {
	return i.circuitBreaker.IsOpen()
}

func (i *invoker) run(ctx context.Context, inputText string, call func(ctx context.Context) (reply, error)) (string, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	callID := uuid.New().String()
	slog.InfoContext(ctx, "Starting summarization",
		slog.String("call_id", callID),
		slog.String("provider", i.provider),
		slog.Int("input_length", text.CountRunes(inputText)))

	start := time.Now()
	result, err := i.circuitBreaker.Execute(func() (interface{}, error) {
		return call(ctx)
	})
	duration := time.Since(start)

	if err != nil {
		if circuitbreaker.Rejected(err) {
			slog.WarnContext(ctx, "circuit breaker open, request rejected",
				slog.String("call_id", callID),
				slog.String("service", i.circuitBreaker.Name()),
				slog.String("state", i.circuitBreaker.State().String()))
			i.metricsRecorder.RecordOutcome(i.provider, outcomeRejected)
		} else {
			slog.ErrorContext(ctx, "Summarization failed",
				slog.String("call_id", callID),
				slog.String("provider", i.provider),
				slog.Duration("duration", duration),
				slog.String("error", err.Error()))
			i.metricsRecorder.RecordOutcome(i.provider, outcomeFailure)
			i.metricsRecorder.RecordDuration(duration)
		}
		return "", &summary.RemoteServiceError{Provider: i.provider, Err: err}
	}

	r := result.(reply)
	summaryLength := text.CountRunes(r.Text)
	if r.Fallback {
		slog.WarnContext(ctx, "provider returned no text, using raw response",
			slog.String("call_id", callID),
			slog.String("provider", i.provider))
		i.metricsRecorder.RecordFallback(i.provider)
	}

	slog.InfoContext(ctx, "Summarization completed",
		slog.String("call_id", callID),
		slog.String("provider", i.provider),
		slog.Int("summary_length", summaryLength),
		slog.Bool("fallback", r.Fallback),
		slog.Duration("duration", duration))

	i.metricsRecorder.RecordOutcome(i.provider, outcomeSuccess)
	i.metricsRecorder.RecordLength(summaryLength)
	i.metricsRecorder.RecordDuration(duration)
	return r.Text, nil
}

// stringify renders a whole provider response for the no-text fallback.
func stringify(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
