// Package observability groups the structured logging and tracing setup.
//
// Subpackages:
//   - logging: slog construction and context-aware request/trace fields
//   - tracing: OpenTelemetry provider setup, HTTP server spans
//
// Prometheus metrics live next to the code they measure, each behind a
// small recorder interface.
package observability
