// Package clock provides the monotonic elapsed-time source driving a
// recording session.
package clock

import (
	"fmt"
	"time"
)

// Timer measures elapsed time between Start and Stop. It holds no
// resources and is driven entirely by its caller; the zero-interaction
// state reports zero elapsed time.
//
// Elapsed after Stop returns the frozen duration, not zero. Reset clears
// both the reference instant and the frozen duration.
type Timer struct {
	now     func() time.Time
	started time.Time
	frozen  time.Duration
	running bool
}

// Option applies a configuration option to the Timer.
type Option func(*Timer)

// WithNow injects the time source. Used by tests and simulations.
func WithNow(now func() time.Time) Option {
	return func(t *Timer) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates a stopped Timer.
func New(opts ...Option) *Timer {
	t := &Timer{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start records the reference instant. Starting a running timer returns
// ErrAlreadyRunning and leaves the reference instant untouched.
func (t *Timer) Start() error {
	if t.running {
		return ErrAlreadyRunning
	}
	t.started = t.now()
	t.frozen = 0
	t.running = true
	return nil
}

// Stop freezes the elapsed duration. Stopping a stopped timer is a no-op.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.frozen = t.now().Sub(t.started)
	t.running = false
}

// Reset clears the reference instant and any frozen duration.
func (t *Timer) Reset() {
	t.started = time.Time{}
	t.frozen = 0
	t.running = false
}

// Running reports whether the timer is currently measuring.
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns seconds since Start while running, the frozen duration
// after Stop, and 0 when never started or after Reset.
func (t *Timer) Elapsed() float64 {
	if t.running {
		return t.now().Sub(t.started).Seconds()
	}
	return t.frozen.Seconds()
}

// Format renders the elapsed time as M:SS.
func (t *Timer) Format() string {
	total := int(t.Elapsed())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
