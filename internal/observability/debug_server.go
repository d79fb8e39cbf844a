package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/config"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
)

// newDebugMux exposes pprof only. It is served on its own listener and never
// mounted on the public router.
func newDebugMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	return mux
}

// startDebugServer binds before returning so a taken port fails startup
// instead of surfacing later in a log line.
func startDebugServer(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if !cfg.PprofEnabled {
		logger.Info("debug server disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.PprofAddr, err)
	}

	srv := &http.Server{
		Handler:           newDebugMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("debug server failed", "error", err)
		}
	}()

	logger.Info("debug server listening", "addr", ln.Addr().String())
	return srv.Shutdown, nil
}
