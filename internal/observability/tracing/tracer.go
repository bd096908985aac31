// Package tracing wires OpenTelemetry into the HTTP server and the
// summarization pipeline.
//
// Spans are always created through the global tracer. Without Setup the
// global provider is a no-op, so instrumented code costs almost nothing;
// with Setup every request gets a sampled span whose trace ID is returned in
// the X-Trace-Id header and attached to log lines.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName is the instrumentation scope of every span.
const ServiceName = "docsummarizer"

// GetTracer returns a tracer from the current global provider. It is looked
// up on every call so a provider installed later is always honoured.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "summary.Summarize")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(ServiceName)
}

// Setup installs a sampling tracer provider and the W3C trace-context
// propagator. Extra span processors (exporters) can be passed in opts.
// The returned function flushes and shuts the provider down.
func Setup(opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	opts = append([]sdktrace.TracerProviderOption{sdktrace.WithSampler(sdktrace.AlwaysSample())}, opts...)
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
