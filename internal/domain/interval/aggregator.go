// Package interval implements the interval recording mode: toggled
// button state is snapshotted into the collector on a fixed cadence and
// reset at every boundary.
//
// The aggregator owns no goroutine and no timer. The host drives it by
// calling Tick at each interval boundary (a UI event loop tick or a
// time.Ticker in a command host), so the core stays single-threaded.
package interval

import (
	"context"
	"sort"
	"time"

	"github.com/okian/lectio/internal/domain/model"
	"github.com/okian/lectio/internal/domain/session"
	"github.com/okian/lectio/pkg/logger"
	"github.com/okian/lectio/pkg/metrics"
)

// DefaultInterval is the flush cadence used when the configuration does
// not provide a positive one.
const DefaultInterval = 120 * time.Second

// engagementValues maps engagement labels to their recorded weight.
// Unmapped labels, and every non-engagement toggle, record as 1.
var engagementValues = map[string]float64{
	"Low":    1,
	"Medium": 2,
	"High":   3,
}

// toggleKey identifies one toggle button by category and label. A
// structured key avoids re-parsing composite strings at flush time.
type toggleKey struct {
	Category model.Category
	Label    string
}

// state is the aggregator's position in its lifecycle.
type state int

const (
	stateIdle state = iota
	stateArmed
)

// Aggregator tracks which toggle buttons are currently pressed and
// converts them into collector records at each interval boundary.
type Aggregator struct {
	collector *session.Collector
	log       logger.Logger
	interval  time.Duration
	toggles   map[toggleKey]bool
	state     state
}

// New creates an idle Aggregator writing into collector.
func New(collector *session.Collector, opts ...Option) *Aggregator {
	a := &Aggregator{
		collector: collector,
		interval:  DefaultInterval,
		toggles:   make(map[toggleKey]bool),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Get().Named("interval")
	}
	return a
}

// Interval returns the configured flush cadence.
func (a *Aggregator) Interval() time.Duration {
	return a.interval
}

// Armed reports whether a session is active and toggles are being tracked.
func (a *Aggregator) Armed() bool {
	return a.state == stateArmed
}

// ActiveToggles returns how many toggles are currently pressed.
func (a *Aggregator) ActiveToggles() int {
	n := 0
	for _, on := range a.toggles {
		if on {
			n++
		}
	}
	return n
}

// Start begins a session on the underlying collector, clears the toggle
// state, and arms the aggregator. The host should (re)start its periodic
// tick with Interval().
func (a *Aggregator) Start(ctx context.Context) model.Session {
	s := a.collector.Start(ctx)
	a.toggles = make(map[toggleKey]bool)
	a.state = stateArmed
	metrics.SetActiveToggles(0)
	a.log.Info(ctx, "interval recording armed",
		logger.String("session", s.ID),
		logger.Duration("interval", a.interval),
	)
	return s
}

// Toggle updates the pressed state of one button. Engagement is
// radio-exclusive: pressing one engagement label releases every other.
// Toggling while idle is dropped, matching the collector's policy for
// stray input.
func (a *Aggregator) Toggle(ctx context.Context, category model.Category, label string, pressed bool) {
	if a.state != stateArmed {
		return
	}
	if pressed && category == model.CategoryEngagement {
		for key := range a.toggles {
			if key.Category == model.CategoryEngagement {
				delete(a.toggles, key)
			}
		}
	}
	key := toggleKey{Category: category, Label: label}
	if pressed {
		a.toggles[key] = true
	} else {
		delete(a.toggles, key)
	}
	metrics.SetActiveToggles(a.ActiveToggles())
	a.log.Debug(ctx, "toggle updated",
		logger.String("category", string(category)),
		logger.String("label", label),
		logger.Any("pressed", pressed),
	)
}

// Tick flushes every pressed toggle into the collector and resets the
// toggle state in full. An empty toggle state writes nothing. Returns
// the number of events recorded.
func (a *Aggregator) Tick(ctx context.Context) int {
	if a.state != stateArmed {
		return 0
	}
	n := a.flush(ctx)
	metrics.RecordFlush(n)
	return n
}

// flush converts the pressed toggles into records and clears the map.
// Keys are walked in a deterministic order so records land in a stable
// sequence within the shared timestamp.
func (a *Aggregator) flush(ctx context.Context) int {
	if len(a.toggles) == 0 {
		return 0
	}
	keys := make([]toggleKey, 0, len(a.toggles))
	for key, on := range a.toggles {
		if on {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Category != keys[j].Category {
			return keys[i].Category < keys[j].Category
		}
		return keys[i].Label < keys[j].Label
	})

	for _, key := range keys {
		a.collector.Record(ctx, key.Category, key.Label, model.NumberValue(ValueFor(key.Category, key.Label)))
	}

	// Buttons reset every boundary whether or not they were captured.
	a.toggles = make(map[toggleKey]bool)
	metrics.SetActiveToggles(0)
	return len(keys)
}

// ValueFor returns the recorded weight for one button: the engagement
// level weight for Engagement, 1 for everything else and for unmapped
// engagement labels.
func ValueFor(category model.Category, label string) float64 {
	if category == model.CategoryEngagement {
		if v, ok := engagementValues[label]; ok {
			return v
		}
	}
	return 1
}

// Comment records free text immediately, bypassing the toggle state.
// Comments are timepoint events in every recording mode.
func (a *Aggregator) Comment(ctx context.Context, text string) session.RecordResult {
	return a.collector.Record(ctx, model.CategoryComment, text, model.NoValue())
}

// Stop flushes any still-pressed toggles so the last partial interval is
// not lost, stops the collector session, and disarms. The host should
// stop its periodic tick. Returns the final event snapshot.
func (a *Aggregator) Stop(ctx context.Context) []model.Event {
	if a.state == stateArmed {
		n := a.flush(ctx)
		if n > 0 {
			metrics.RecordFlush(n)
		}
		a.state = stateIdle
	}
	return a.collector.Stop(ctx)
}
