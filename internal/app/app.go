package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/weekly-pickem/external/espn"
	"github.com/riskibarqy/weekly-pickem/internal/config"
	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
	"github.com/riskibarqy/weekly-pickem/internal/domain/scoring"
	"github.com/riskibarqy/weekly-pickem/internal/domain/season"
	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
	"github.com/riskibarqy/weekly-pickem/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/weekly-pickem/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/weekly-pickem/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/weekly-pickem/internal/infrastructure/roster"
	"github.com/riskibarqy/weekly-pickem/internal/infrastructure/session"
	"github.com/riskibarqy/weekly-pickem/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/weekly-pickem/internal/platform/cache"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
	"github.com/riskibarqy/weekly-pickem/internal/platform/metrics"
	"github.com/riskibarqy/weekly-pickem/internal/platform/resilience"
	"github.com/riskibarqy/weekly-pickem/internal/usecase"
)

type repositories struct {
	users   user.Repository
	games   game.Repository
	picks   pick.Repository
	scoring scoring.Repository
	close   func() error
}

// NewHTTPServer wires storage, services and the router. The returned cleanup
// releases the database and the metrics provider.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	names, err := roster.Load(cfg.RosterFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load roster: %w", err)
	}

	repos, err := openRepositories(ctx, cfg, names, logger)
	if err != nil {
		return nil, nil, err
	}

	recorder, metricsHandler, shutdownMetrics, err := metrics.Setup(ctx, metrics.Config{
		Enabled:     cfg.MetricsEnabled,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		_ = repos.close()
		return nil, nil, fmt.Errorf("setup metrics: %w", err)
	}

	sessions, err := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		_ = repos.close()
		_ = shutdownMetrics(ctx)
		return nil, nil, fmt.Errorf("build session manager: %w", err)
	}

	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     logger.Named("espn"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})

	calendar := season.NewCalendar(cfg.LeagueTimezone, cfg.LeagueSeasonWeeks)
	weekSvc := usecase.NewWeekService(repos.games, calendar, cfg.PicksLockDisabled, logger)
	authSvc := usecase.NewAuthService(repos.users)
	pickSvc := usecase.NewPickService(repos.picks, repos.users, weekSvc, recorder, logger)
	scoringSvc := usecase.NewScoringService(
		repos.users,
		repos.games,
		repos.picks,
		repos.scoring,
		calendar.Weeks(),
		cfg.ScoringRecomputeWorkers,
		recorder,
		logger,
	)
	manualPickSvc := usecase.NewManualPickService(repos.users, repos.games, repos.picks, calendar.Weeks(), logger)
	oddsSvc := usecase.NewOddsService(repos.users, repos.picks, repos.scoring, weekSvc)
	scheduleSvc := usecase.NewScheduleService(espnClient, repos.games, weekSvc, scoringSvc, cfg.ScheduleFetchWorkers, recorder, logger)

	if cfg.PicksLockDisabled {
		logger.Warn("pick lock window disabled", "reason", "PICKS_LOCK_DISABLED=true")
	}

	handler := httpapi.NewHandler(
		authSvc,
		weekSvc,
		pickSvc,
		manualPickSvc,
		scoringSvc,
		oddsSvc,
		scheduleSvc,
		sessions,
		httpapi.SessionCookie{Name: cfg.SessionCookieName, Secure: cfg.SessionCookieSecure},
		logger,
	)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		AdminPasscode:      cfg.AdminPasscode,
		CronSecret:         cfg.CronSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsPath:        cfg.MetricsPath,
		MetricsHandler:     metricsHandler,
	}, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := func(ctx context.Context) error {
		return errors.Join(shutdownMetrics(ctx), repos.close())
	}
	return server, cleanup, nil
}

func openRepositories(ctx context.Context, cfg config.Config, names []string, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StorageMemory:
		scores := memory.NewScoringRepository()
		repos = repositories{
			users:   memory.NewUserRepository(names...),
			games:   memory.NewGameRepository(),
			picks:   memory.NewPickRepository(scores),
			scoring: scores,
			close:   func() error { return nil },
		}
		logger.Warn("using in-memory storage", "reason", "STORAGE_DRIVER=memory")
	default:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		repos = repositories{
			users:   postgres.NewUserRepository(db),
			games:   postgres.NewGameRepository(db),
			picks:   postgres.NewPickRepository(db),
			scoring: postgres.NewScoringRepository(db),
			close:   db.Close,
		}
		if err := repos.users.EnsureNames(ctx, names); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("seed roster: %w", err)
		}
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.users = cache.NewUserRepository(repos.users, store)
		repos.games = cache.NewGameRepository(repos.games, store)
	}

	logger.Info("storage ready",
		"driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"roster_size", len(names),
	)
	return repos, nil
}
