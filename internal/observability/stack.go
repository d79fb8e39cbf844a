// Package observability starts the process-wide tracing, profiling and debug
// endpoints of the API. Every part is optional and off unless configured.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/weekly-pickem/internal/config"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
)

// Stack holds whatever Start enabled. Shutdown stops it in reverse order.
type Stack struct {
	logger   *logging.Logger
	stoppers []stopper
}

type stopper struct {
	name string
	stop func(context.Context) error
}

// Start brings up tracing, then profiling, then the debug listener. If one
// part fails, the parts already running are stopped before returning.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger.Named("observability")}

	steps := []struct {
		name  string
		start func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{name: "tracing", start: startTracing},
		{name: "profiling", start: startProfiling},
		{name: "debug server", start: startDebugServer},
	}
	for _, step := range steps {
		stop, err := step.start(cfg, s.logger)
		if err != nil {
			_ = s.Shutdown(ctx)
			return nil, fmt.Errorf("start %s: %w", step.name, err)
		}
		if stop != nil {
			s.stoppers = append(s.stoppers, stopper{name: step.name, stop: stop})
		}
	}
	return s, nil
}

// Running lists the enabled parts in start order.
func (s *Stack) Running() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.stoppers))
	for _, st := range s.stoppers {
		out = append(out, st.name)
	}
	return out
}

func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var errs []error
	for i := len(s.stoppers) - 1; i >= 0; i-- {
		st := s.stoppers[i]
		if err := st.stop(ctx); err != nil {
			s.logger.Warn("observability shutdown failed", "part", st.name, "error", err)
			errs = append(errs, fmt.Errorf("stop %s: %w", st.name, err))
		}
	}
	s.stoppers = nil
	return errors.Join(errs...)
}
