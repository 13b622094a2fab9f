package event

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a Bus.
type Option func(*busConfig)

// busConfig contains configuration for the bus.
type busConfig struct {
	// queueCapacity is the bounded ingestion queue capacity.
	queueCapacity int

	// logger receives drain diagnostics and queue-full warnings.
	logger *zap.Logger

	// registerer, when set, receives the bus's Prometheus collectors.
	registerer prometheus.Registerer

	// releaseHook is called exactly once per event when the last
	// processor reference to its batch drops.
	releaseHook func(Event)
}

// defaultBusConfig returns sensible default configuration.
func defaultBusConfig() busConfig {
	return busConfig{
		queueCapacity: 1 << 16,
		logger:        zap.NewNop(),
	}
}

// WithQueueCapacity sets the ingestion queue capacity.
func WithQueueCapacity(capacity int) Option {
	return func(c *busConfig) {
		if capacity > 0 {
			c.queueCapacity = capacity
		}
	}
}

// WithLogger sets the bus logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *busConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetricsRegisterer registers the bus's Prometheus collectors with
// the given registerer. Without this option no collectors are created;
// the cheap atomic Stats counters are always maintained.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(c *busConfig) {
		c.registerer = reg
	}
}

// WithReleaseHook sets a function observing every event exactly once,
// after the last processor holding its batch has finished dispatching.
// Useful for pooled event storage and for verifying release behavior in
// tests.
func WithReleaseHook(hook func(Event)) Option {
	return func(c *busConfig) {
		c.releaseHook = hook
	}
}
