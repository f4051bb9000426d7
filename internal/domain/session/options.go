package session

import (
	"time"

	"github.com/okian/lectio/pkg/logger"
)

// Option applies a configuration option to the Collector.
type Option func(*Collector)

// WithNow injects the time source. Used by tests and simulations.
func WithNow(now func() time.Time) Option {
	return func(c *Collector) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets a custom logger for the collector.
func WithLogger(log logger.Logger) Option {
	return func(c *Collector) {
		if log != nil {
			c.log = log
		}
	}
}
