package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestTracedSpan(t *testing.T) {
	tests := map[string]bool{
		"httpapi.Handler.SubmitPicks":  true,
		"httpapi.Handler.GetTitleOdds": true,
		"httpapi.RequireAdmin":         true,
		"httpapi.RequireCronSecret":    true,
		"httpapi.Handler.Healthz":      false,
		"httpapi.RequestLogging":       false,
		"httpapi.CORS":                 false,
		"httpapi.writeError":           false,
	}

	for name, want := range tests {
		if got := tracedSpan(name); got != want {
			t.Fatalf("tracedSpan(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestStartSpanWithoutParentLeavesContext(t *testing.T) {
	ctx := context.Background()

	got, span := startSpan(ctx, "httpapi.Handler.SubmitPicks")
	if got != ctx {
		t.Fatalf("expected the same context for an untraced request")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected an invalid span context")
	}
	span.End()
}

func TestStartSpanSkippedNameKeepsParent(t *testing.T) {
	parentCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parentCtx)

	_, span := startSpan(ctx, "httpapi.writeJSON")
	if span.SpanContext().SpanID() != parentCtx.SpanID() {
		t.Fatalf("expected the parent span to be returned")
	}
	span.End()
}
