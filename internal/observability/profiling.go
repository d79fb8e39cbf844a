package observability

import (
	"context"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/weekly-pickem/internal/config"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
)

// Scoring and schedule fetches are CPU and allocation bound; block and mutex
// profiles add overhead without telling us much here.
var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

func startProfiling(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("profiling disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil, nil
	}

	tags := map[string]string{
		"env":     cfg.AppEnv,
		"service": cfg.ServiceName,
		"storage": cfg.StorageDriver,
	}
	if cfg.LeagueTimezone != nil {
		tags["league_tz"] = cfg.LeagueTimezone.String()
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              tags,
		ProfileTypes:      profileTypes,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("profiling enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return func(context.Context) error { return profiler.Stop() }, nil
}
