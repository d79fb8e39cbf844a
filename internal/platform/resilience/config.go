package resilience

import "time"

// The schedule feed tends to fail in short bursts; four straight failures
// open the breaker for thirty seconds and a single probe closes it again.
const (
	defaultFailureThreshold = 4
	defaultOpenTimeout      = 30 * time.Second
	defaultHalfOpenProbes   = 1
)

// CircuitBreakerConfig fields left at zero take the package defaults. A
// breaker built with Enabled false never rejects a call.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{Enabled: true}.withDefaults()
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	return cfg.withDefaults()
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	c.FailureThreshold = atLeast(c.FailureThreshold, 1, defaultFailureThreshold)
	c.OpenTimeout = atLeast(c.OpenTimeout, time.Nanosecond, defaultOpenTimeout)
	c.HalfOpenMaxReq = atLeast(c.HalfOpenMaxReq, 1, defaultHalfOpenProbes)
	return c
}

func atLeast[T int | time.Duration](v, floor, fallback T) T {
	if v < floor {
		return fallback
	}
	return v
}
