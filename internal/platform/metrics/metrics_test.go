package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if handler != nil {
		t.Fatalf("expected nil handler when disabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}

	rec.RecordPickSubmission(context.Background(), ResultOK)
	rec.RecordScoringRun(context.Background(), 1, 1, nil)
	rec.RecordScheduleFetch(context.Background(), 16, time.Millisecond, nil)
}

func TestSetupEnabledExposesCounters(t *testing.T) {
	ctx := context.Background()
	rec, handler, shutdown, err := Setup(ctx, Config{Enabled: true, ServiceName: "pickem-test"})
	if err != nil {
		t.Fatalf("setup metrics: %v", err)
	}
	defer func() { _ = shutdown(ctx) }()

	rec.RecordPickSubmission(ctx, ResultOK)
	rec.RecordPickSubmission(ctx, ResultRejected)
	rec.RecordScoringRun(ctx, 4, 2, nil)
	rec.RecordScheduleFetch(ctx, 16, 20*time.Millisecond, errors.New("boom"))

	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rw.Result().Body)
	text := string(body)

	for _, name := range []string{
		"pickem_pick_submissions",
		"pickem_scoring_runs",
		"pickem_weekly_scores_written",
		"pickem_schedule_fetches",
		"pickem_games_ingested",
	} {
		if !strings.Contains(text, name) {
			t.Fatalf("expected %s in exposition:\n%s", name, text)
		}
	}
}
