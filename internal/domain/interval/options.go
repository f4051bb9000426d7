package interval

import (
	"time"

	"github.com/okian/lectio/pkg/logger"
)

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithInterval sets the flush cadence. Non-positive values keep the
// default so a missing or zero configuration never disables flushing.
func WithInterval(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithIntervalSeconds sets the flush cadence from the configuration's
// second-denominated field.
func WithIntervalSeconds(seconds int) Option {
	return WithInterval(time.Duration(seconds) * time.Second)
}

// WithLogger sets a custom logger for the aggregator.
func WithLogger(log logger.Logger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}
