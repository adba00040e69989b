package reqctx

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// TraceIDFromContext returns the active OpenTelemetry trace id, or "" when
// the request is not being traced.
func TraceIDFromContext(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

// Logger returns the default logger annotated with whatever request
// metadata ctx carries.
func Logger(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if meta, ok := RequestMetaFromContext(ctx); ok && meta != nil {
		l = l.With("request_id", meta.RequestID, "client_ip", meta.ClientIP)
	}
	if tid := TraceIDFromContext(ctx); tid != "" {
		l = l.With("trace_id", tid)
	}
	return l
}
