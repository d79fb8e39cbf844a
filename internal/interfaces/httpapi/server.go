package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/weekly-pickem/internal/platform/id"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
)

// RouterConfig carries the credentials and optional endpoints of the router.
type RouterConfig struct {
	AdminPasscode      string
	CronSecret         string
	CORSAllowedOrigins []string
	MetricsPath        string
	MetricsHandler     http.Handler
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.MetricsPath, cfg.MetricsHandler)
	registerPublicRoutes(mux, handler)
	registerSessionRoutes(mux, handler)
	registerAdminRoutes(mux, handler, cfg.AdminPasscode)
	registerInternalJobRoutes(mux, handler, cfg.CronSecret)

	ids := id.NewRandomGenerator(0)
	return RequestTracing(RequestID(ids, RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func metricsRoute(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/metrics"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
