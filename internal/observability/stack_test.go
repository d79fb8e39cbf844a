package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/config"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

func TestStartWithEverythingDisabled(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "   "}

	stack, err := Start(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := stack.Running(); len(got) != 0 {
		t.Fatalf("expected nothing running, got %v", got)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNilStackShutdown(t *testing.T) {
	var stack *Stack
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil stack shutdown: %v", err)
	}
	if stack.Running() != nil {
		t.Fatalf("nil stack should report nothing running")
	}
}

func TestDebugServerServesPprofAndStops(t *testing.T) {
	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}

	stack, err := Start(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := stack.Running(); len(got) != 1 || got[0] != "debug server" {
		t.Fatalf("unexpected running parts: %v", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := stack.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := stack.Running(); len(got) != 0 {
		t.Fatalf("expected stoppers cleared, got %v", got)
	}
}

func TestDebugServerBindFailureFailsStart(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer ln.Close()

	cfg := config.Config{PprofEnabled: true, PprofAddr: ln.Addr().String()}
	_, err = Start(context.Background(), cfg, logging.NewNop())
	if err == nil {
		t.Fatalf("expected bind error")
	}
	if !strings.Contains(err.Error(), "start debug server") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDebugMuxOnlyServesPprof(t *testing.T) {
	mux := newDebugMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("pprof index status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scoreboard", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-debug path, got %d", rec.Code)
	}
}

func TestShutdownJoinsErrorsInReverseOrder(t *testing.T) {
	var order []string
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	stack := &Stack{
		logger: logging.NewNop(),
		stoppers: []stopper{
			{name: "a", stop: func(context.Context) error { order = append(order, "a"); return errFirst }},
			{name: "b", stop: func(context.Context) error { order = append(order, "b"); return nil }},
			{name: "c", stop: func(context.Context) error { order = append(order, "c"); return errSecond }},
		},
	}

	err := stack.Shutdown(context.Background())
	if !errors.Is(err, errFirst) || !errors.Is(err, errSecond) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
	if strings.Join(order, ",") != "c,b,a" {
		t.Fatalf("unexpected stop order: %v", order)
	}
}

func TestLeagueAttributes(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cfg := config.Config{LeagueTimezone: loc, LeagueSeasonWeeks: 18, StorageDriver: config.StorageMemory}

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range leagueAttributes(cfg) {
		got[kv.Key] = kv.Value
	}
	if got["pickem.season_weeks"].AsInt64() != 18 {
		t.Fatalf("season weeks = %v", got["pickem.season_weeks"])
	}
	if got["pickem.timezone"].AsString() != "America/New_York" {
		t.Fatalf("timezone = %v", got["pickem.timezone"])
	}
	if got["pickem.storage"].AsString() != "memory" {
		t.Fatalf("storage = %v", got["pickem.storage"])
	}
}
