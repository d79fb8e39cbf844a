package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/weekly-pickem/internal/config"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// startTracing installs the Uptrace exporter as the global tracer provider.
// Until it runs, request and usecase spans are never sampled.
func startTracing(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	dsn := strings.TrimSpace(cfg.UptraceDSN)
	if !cfg.UptraceEnabled || dsn == "" {
		logger.Info("tracing disabled", "uptrace_enabled", cfg.UptraceEnabled, "dsn_set", dsn != "")
		return nil, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(dsn),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(leagueAttributes(cfg)...),
	)

	logger.Info("tracing enabled", "exporter", "uptrace", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)
	return uptrace.Shutdown, nil
}

func leagueAttributes(cfg config.Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int("pickem.season_weeks", cfg.LeagueSeasonWeeks),
		attribute.String("pickem.storage", cfg.StorageDriver),
	}
	if cfg.LeagueTimezone != nil {
		attrs = append(attrs, attribute.String("pickem.timezone", cfg.LeagueTimezone.String()))
	}
	return attrs
}
