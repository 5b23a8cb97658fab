// Package trace wires OpenTelemetry tracing. Spans go to a stdout exporter
// when enabled; otherwise StartSpan is a no-op that returns ctx unchanged.
package trace

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const serviceName = "stockreport"

var (
	mu       sync.RWMutex
	tracer   oteltrace.Tracer
	provider *sdktrace.TracerProvider
)

// Init enables tracing and writes finished spans to w (stderr when nil).
func Init(version string, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return err
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	mu.Lock()
	defer mu.Unlock()
	provider = tp
	tracer = tp.Tracer(serviceName)
	return nil
}

// Shutdown flushes pending spans.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	tp := provider
	provider, tracer = nil, nil
	mu.Unlock()

	if tp == nil {
		return nil
	}
	return tp.Shutdown(ctx)
}

// Enabled reports whether Init has been called.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tracer != nil
}

func StartSpan(ctx context.Context, name string, opts ...oteltrace.SpanStartOption) (context.Context, oteltrace.Span) {
	mu.RLock()
	t := tracer
	mu.RUnlock()

	if t == nil {
		return ctx, oteltrace.SpanFromContext(ctx)
	}
	return t.Start(ctx, name, opts...)
}

// Fields returns the trace and span IDs of the span in ctx.
func Fields(ctx context.Context) (traceID, spanID string, ok bool) {
	sc := oteltrace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
