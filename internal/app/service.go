// Package app wires the recording and analysis components into one
// service consumed by command hosts and rendering collaborators.
package app

import (
	"context"
	"time"

	"github.com/okian/lectio/internal/adapters/dataset"
	"github.com/okian/lectio/internal/adapters/export"
	"github.com/okian/lectio/internal/analysis"
	"github.com/okian/lectio/internal/config"
	"github.com/okian/lectio/internal/domain/clock"
	"github.com/okian/lectio/internal/domain/interval"
	"github.com/okian/lectio/internal/domain/model"
	"github.com/okian/lectio/internal/domain/session"
	"github.com/okian/lectio/pkg/logger"
)

// Service owns one recording pipeline (timer, collector, aggregator,
// exporter) and one analysis pipeline (loader, statistics, insights).
// Each Service carries its own immutable configuration reference; there
// is no shared registry between instances.
type Service struct {
	cfg *config.Config
	log logger.Logger
	now func() time.Time

	timer      *clock.Timer
	collector  *session.Collector
	aggregator *interval.Aggregator
	exporter   *export.Exporter
	loader     *dataset.Loader
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the protocol configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithNow injects the time source for the whole pipeline. Used by tests
// and simulations.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service from the configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: config.New(context.Background()),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("app")
	}

	s.timer = clock.New(clock.WithNow(s.now))
	s.collector = session.New(
		session.WithNow(s.now),
		session.WithLogger(s.log.Named("collector")),
	)
	s.aggregator = interval.New(s.collector,
		interval.WithIntervalSeconds(s.cfg.TimerInterval),
		interval.WithLogger(s.log.Named("interval")),
	)
	s.exporter = export.New(export.WithLogger(s.log.Named("export")))
	s.loader = dataset.NewLoader(s.cfg, dataset.WithLogger(s.log.Named("dataset")))
	return s
}

// IntervalMode reports whether the configuration selects interval
// recording.
func (s *Service) IntervalMode() bool {
	return s.cfg.TimerMethod == config.TimerMethodInterval
}

// Interval returns the flush cadence the host should drive Tick with.
func (s *Service) Interval() time.Duration {
	return s.aggregator.Interval()
}

// Active reports whether an observation is being recorded.
func (s *Service) Active() bool {
	return s.collector.Active()
}

// Elapsed returns seconds since the observation started, 0 when idle.
func (s *Service) Elapsed() float64 {
	return s.collector.Elapsed()
}

// FormatElapsed renders the display timer as M:SS.
func (s *Service) FormatElapsed() string {
	return s.timer.Format()
}

// StartObservation begins a new session in the configured mode.
func (s *Service) StartObservation(ctx context.Context) model.Session {
	s.timer.Reset()
	_ = s.timer.Start()
	if s.IntervalMode() {
		return s.aggregator.Start(ctx)
	}
	return s.collector.Start(ctx)
}

// RecordClick records one timepoint event for a button press, using the
// same value mapping as interval flushes. Dropped when idle.
func (s *Service) RecordClick(ctx context.Context, category model.Category, label string) session.RecordResult {
	return s.collector.Record(ctx, category, label, model.NumberValue(interval.ValueFor(category, label)))
}

// Toggle updates interval-mode toggle state. Dropped when idle or in
// timepoint mode.
func (s *Service) Toggle(ctx context.Context, category model.Category, label string, pressed bool) {
	s.aggregator.Toggle(ctx, category, label, pressed)
}

// TickInterval flushes the toggle state at an interval boundary; the
// host calls this from its periodic tick. Returns the number of events
// written.
func (s *Service) TickInterval(ctx context.Context) int {
	return s.aggregator.Tick(ctx)
}

// SaveComment records free text immediately in either mode.
func (s *Service) SaveComment(ctx context.Context, text string) session.RecordResult {
	return s.collector.Record(ctx, model.CategoryComment, text, model.NoValue())
}

// StopObservation ends the session (flushing the last partial interval
// in interval mode) and returns the final event snapshot.
func (s *Service) StopObservation(ctx context.Context) []model.Event {
	s.timer.Stop()
	if s.IntervalMode() {
		return s.aggregator.Stop(ctx)
	}
	return s.collector.Stop(ctx)
}

// StopAndExport ends the session and writes the observation file.
// Returns the number of exported events.
func (s *Service) StopAndExport(ctx context.Context, path string) (int, error) {
	duration := s.collector.Elapsed()
	events := s.StopObservation(ctx)
	meta := export.NewMetadata(s.cfg, s.collector.Session(), duration)
	if err := s.exporter.Export(ctx, events, path, meta); err != nil {
		return 0, err
	}
	return len(events), nil
}

// Report bundles everything the analysis surfaces render.
type Report struct {
	Table       *dataset.Table
	Summary     analysis.Summary
	PerCategory []analysis.CategoryStats
	Insights    []string
	Comments    []analysis.Comment
	Counts      []analysis.CategoryCount
}

// Analyze loads an observation file and computes every analysis feed
// over the canonical table.
func (s *Service) Analyze(ctx context.Context, path string) (*Report, error) {
	table, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Report{
		Table:       table,
		Summary:     analysis.Summarize(table),
		PerCategory: analysis.PerCategory(table),
		Insights:    analysis.Insights(table),
		Comments:    analysis.Comments(table),
		Counts:      analysis.CategoryCounts(table),
	}, nil
}
