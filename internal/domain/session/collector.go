// Package session provides the in-memory observation collector: an
// append-only event log keyed to a session start instant.
//
// The collector is intentionally storage-only. Recording-mode policy
// (click-per-event vs. toggle-and-flush) belongs to its callers, so the
// same collector serves both modes.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okian/lectio/internal/domain/model"
	"github.com/okian/lectio/pkg/logger"
	"github.com/okian/lectio/pkg/metrics"
)

// RecordResult names the outcome of a Record call. Recording without an
// active session is a deliberate no-op, not an error, so stray clicks
// after stop are harmless.
type RecordResult int

const (
	// Recorded means the event was appended to the session log.
	Recorded RecordResult = iota
	// IgnoredInactive means no session was active and the call was dropped.
	IgnoredInactive
)

// Collector accumulates timestamped events for at most one active
// session at a time. It is driven by a single caller and performs no
// locking of its own.
type Collector struct {
	now     func() time.Time
	log     logger.Logger
	session model.Session
	events  []model.Event
	active  bool
}

// New creates an inert Collector; no session is active until Start.
func New(opts ...Option) *Collector {
	c := &Collector{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get().Named("collector")
	}
	return c
}

// Start begins a new session: assigns a fresh session id, records the
// start instant, and discards any events from a previous session.
func (c *Collector) Start(ctx context.Context) model.Session {
	c.session = model.Session{
		ID:    uuid.NewString(),
		Start: c.now(),
	}
	c.events = nil
	c.active = true
	metrics.RecordSessionStart()
	c.log.Info(ctx, "observation started", logger.String("session", c.session.ID))
	return c.session
}

// Record appends an event stamped with the elapsed time since the
// session started. Without an active session the call is dropped and
// IgnoredInactive is returned.
func (c *Collector) Record(ctx context.Context, category model.Category, response string, value model.Value) RecordResult {
	if !c.active {
		metrics.RecordIgnored()
		return IgnoredInactive
	}
	elapsed := c.now().Sub(c.session.Start).Seconds()
	c.events = append(c.events, model.Event{
		Elapsed:  elapsed,
		Category: category,
		Response: response,
		Value:    value,
	})
	metrics.RecordEvent(string(category))
	c.log.Debug(ctx, "recorded response",
		logger.String("category", string(category)),
		logger.String("response", response),
		logger.String("value", value.String()),
		logger.Float64("elapsed", elapsed),
	)
	return Recorded
}

// Responses returns a snapshot of the current event log. The live
// container is never exposed.
func (c *Collector) Responses() []model.Event {
	out := make([]model.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Elapsed returns seconds since the session started, or 0 when inactive.
func (c *Collector) Elapsed() float64 {
	if !c.active {
		return 0
	}
	return c.now().Sub(c.session.Start).Seconds()
}

// Active reports whether a session is currently recording.
func (c *Collector) Active() bool {
	return c.active
}

// Session returns the current session identity. Valid between Start and
// the next Start; Stop deactivates recording but keeps the identity so
// metadata can still be built.
func (c *Collector) Session() model.Session {
	return c.session
}

// Stop deactivates the session and returns the final event snapshot.
// The log itself survives until the next Start, so late Responses calls
// still see the data.
func (c *Collector) Stop(ctx context.Context) []model.Event {
	out := c.Responses()
	if c.active {
		c.active = false
		metrics.RecordSessionStop()
		c.log.Info(ctx, "observation stopped",
			logger.String("session", c.session.ID),
			logger.Int("events", len(out)),
		)
	}
	return out
}

// Clear empties the event log without touching the active state.
func (c *Collector) Clear() {
	c.events = nil
}
