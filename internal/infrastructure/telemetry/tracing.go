package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/crmsuite/backend"

// StartSpan starts a span on the global tracer. Works against the no-op
// provider when tracing is disabled.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, opts...)
}

// RecordError marks the span failed and records the error event
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes attaches string attributes to the span
func SetAttributes(span trace.Span, kv map[string]string) {
	attrs := make([]attribute.KeyValue, 0, len(kv))
	for key, value := range kv {
		attrs = append(attrs, attribute.String(key, value))
	}
	span.SetAttributes(attrs...)
}

// TraceID returns the hex trace ID of the current span, or "" when the
// context carries no sampled span
func TraceID(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return ""
	}
	return spanCtx.TraceID().String()
}
