package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("weekly-pickem/internal/interfaces/httpapi")

// Handlers and the auth guards are worth a span each. Response writers and
// the remaining middleware run on every request and only add depth.
var spanPrefixes = []string{"httpapi.Handler.", "httpapi.Require"}

// Probes are excluded at the otelhttp layer too; this covers direct calls.
var untracedSpans = map[string]struct{}{
	"httpapi.Handler.Healthz": {},
}

// startSpan opens a child span only when the request is already traced and
// name passes tracedSpan. Otherwise the parent span is returned unchanged so
// callers can End and annotate it without checks.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !tracedSpan(name) {
		return ctx, noopSpan{parent}
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func tracedSpan(name string) bool {
	if _, skip := untracedSpans[name]; skip {
		return false
	}
	for _, prefix := range spanPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// noopSpan keeps the parent reachable but ignores End so helpers never close
// the span otelhttp owns.
type noopSpan struct{ trace.Span }

func (noopSpan) End(...trace.SpanEndOption) {}
