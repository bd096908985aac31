// Package circuitbreaker wraps github.com/sony/gobreaker so that calls to a
// failing summarization provider fail fast instead of piling up.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config describes when a breaker opens and how it recovers.
type Config struct {
	// Name identifies the breaker in logs.
	Name string

	// MinRequests is the number of calls in a window before the failure
	// ratio is considered.
	MinRequests uint32

	// FailureRatio trips the breaker once failures/requests reaches it.
	FailureRatio float64

	// Window clears the closed-state counts periodically. Zero never clears.
	Window time.Duration

	// Cooldown is how long the breaker stays open before letting probes through.
	Cooldown time.Duration

	// HalfOpenProbes is the number of calls allowed while half-open.
	HalfOpenProbes uint32
}

// SummarizerConfig returns the breaker settings for a hosted summarization
// API. A provider failing 60% of at least three calls is cut off for 30s,
// then one call decides whether it recovered.
func SummarizerConfig(provider string) Config {
	return Config{
		Name:           provider + "-api",
		MinRequests:    3,
		FailureRatio:   0.6,
		Window:         time.Minute,
		Cooldown:       30 * time.Second,
		HalfOpenProbes: 1,
	}
}

// readyToTrip reports whether counts should open a breaker configured by cfg.
func readyToTrip(cfg Config, counts gobreaker.Counts) bool {
	if counts.Requests == 0 || counts.Requests < cfg.MinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
}

// CircuitBreaker guards calls to one provider.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// New creates a breaker from cfg. State changes are logged.
func New(cfg Config) *CircuitBreaker {
	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        cfg.Name,
			MaxRequests: cfg.HalfOpenProbes,
			Interval:    cfg.Window,
			Timeout:     cfg.Cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return readyToTrip(cfg, counts)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("circuit breaker state changed",
					slog.String("circuit", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		}),
	}
}

// Execute runs fn unless the breaker rejects it. A rejected call returns an
// error for which Rejected is true and fn is not invoked.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// Name returns the breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.breaker.Name()
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// IsOpen reports whether calls are currently rejected outright.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// Rejected reports whether err came from the breaker refusing a call rather
// than from the guarded function.
func Rejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
