package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultRejected = "rejected"
)

type Config struct {
	Enabled     bool
	ServiceName string
}

// Recorder counts domain events. A nil Recorder, or one built with
// NewRecorder, drops everything.
type Recorder struct {
	pickSubmissions metric.Int64Counter
	scoringRuns     metric.Int64Counter
	scoresWritten   metric.Int64Counter
	scoringPending  metric.Int64Counter
	scheduleFetches metric.Int64Counter
	gamesIngested   metric.Int64Counter
	scheduleLatency metric.Float64Histogram
}

func NewRecorder() *Recorder {
	return nil
}

// Setup builds a meter provider backed by a private Prometheus registry.
// When disabled it returns a no-op recorder and a nil handler.
func Setup(ctx context.Context, cfg Config) (*Recorder, http.Handler, func(context.Context) error, error) {
	noShutdown := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return NewRecorder(), nil, noShutdown, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "weekly-pickem"
	}

	reg := prometheus.NewRegistry()
	exporter, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, noShutdown, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", cfg.ServiceName)))
	if err != nil {
		return nil, nil, noShutdown, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	rec, err := newRecorder(provider.Meter("weekly-pickem"))
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, noShutdown, err
	}
	return rec, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), provider.Shutdown, nil
}

func newRecorder(meter metric.Meter) (*Recorder, error) {
	var (
		r   Recorder
		err error
	)
	if r.pickSubmissions, err = meter.Int64Counter("pickem_pick_submissions", metric.WithDescription("Pick submissions by result")); err != nil {
		return nil, err
	}
	if r.scoringRuns, err = meter.Int64Counter("pickem_scoring_runs", metric.WithDescription("Weekly score recomputations by result")); err != nil {
		return nil, err
	}
	if r.scoresWritten, err = meter.Int64Counter("pickem_weekly_scores_written", metric.WithDescription("Weekly score rows upserted")); err != nil {
		return nil, err
	}
	if r.scoringPending, err = meter.Int64Counter("pickem_weekly_scores_pending", metric.WithDescription("Users skipped because picked games are not final")); err != nil {
		return nil, err
	}
	if r.scheduleFetches, err = meter.Int64Counter("pickem_schedule_fetches", metric.WithDescription("Schedule source fetches by result")); err != nil {
		return nil, err
	}
	if r.gamesIngested, err = meter.Int64Counter("pickem_games_ingested", metric.WithDescription("Games upserted from the schedule source")); err != nil {
		return nil, err
	}
	if r.scheduleLatency, err = meter.Float64Histogram("pickem_schedule_fetch_duration_ms", metric.WithDescription("Schedule source fetch latency"), metric.WithUnit("ms")); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Recorder) RecordPickSubmission(ctx context.Context, result string) {
	if r == nil {
		return
	}
	r.pickSubmissions.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (r *Recorder) RecordScoringRun(ctx context.Context, scored, pending int, err error) {
	if r == nil {
		return
	}
	r.scoringRuns.Add(ctx, 1, metric.WithAttributes(attribute.String("result", resultOf(err))))
	if scored > 0 {
		r.scoresWritten.Add(ctx, int64(scored))
	}
	if pending > 0 {
		r.scoringPending.Add(ctx, int64(pending))
	}
}

func (r *Recorder) RecordScheduleFetch(ctx context.Context, games int, duration time.Duration, err error) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("result", resultOf(err)))
	r.scheduleFetches.Add(ctx, 1, attrs)
	r.scheduleLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if games > 0 {
		r.gamesIngested.Add(ctx, int64(games))
	}
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
