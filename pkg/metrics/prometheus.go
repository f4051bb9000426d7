// Package metrics provides Prometheus metrics for the lectio observation core.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the observation core.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Recording metrics
	sessionsStarted prometheus.Counter
	sessionActive   prometheus.Gauge
	eventsRecorded  *prometheus.CounterVec
	eventsIgnored   prometheus.Counter

	// Interval mode metrics
	intervalFlushes prometheus.Counter
	flushedEvents   prometheus.Counter
	togglesActive   prometheus.Gauge

	// File round-trip metrics
	exportsTotal   prometheus.Counter
	exportErrors   prometheus.Counter
	exportDuration prometheus.Histogram
	loadsTotal     prometheus.Counter
	loadErrors     prometheus.Counter
	loadDuration   prometheus.Histogram
	rowsLoaded     prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lectio",
		subsystem:        "observer",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.sessionsStarted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_started_total",
		Help:      "Number of observation sessions started.",
	})
	m.sessionActive = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_active",
		Help:      "Whether an observation session is currently active (0 or 1).",
	})
	m.eventsRecorded = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_recorded_total",
		Help:      "Number of events appended to the session log.",
	}, []string{"category"})
	m.eventsIgnored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_ignored_total",
		Help:      "Number of record calls dropped because no session was active.",
	})

	m.intervalFlushes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "interval_flushes_total",
		Help:      "Number of interval boundary flushes performed.",
	})
	m.flushedEvents = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "interval_flushed_events_total",
		Help:      "Number of events written by interval flushes.",
	})
	m.togglesActive = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "interval_toggles_active",
		Help:      "Number of toggle buttons currently pressed between flushes.",
	})

	m.exportsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Number of observation file exports attempted.",
	})
	m.exportErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_errors_total",
		Help:      "Number of observation file exports that failed.",
	})
	m.exportDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_duration_seconds",
		Help:      "Duration of observation file exports.",
		Buckets:   m.histogramBuckets,
	})
	m.loadsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "loads_total",
		Help:      "Number of observation file loads attempted.",
	})
	m.loadErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_errors_total",
		Help:      "Number of observation file loads that failed.",
	})
	m.loadDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_duration_seconds",
		Help:      "Duration of observation file loads.",
		Buckets:   m.histogramBuckets,
	})
	m.rowsLoaded = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_loaded",
		Help:      "Row count of the most recently loaded observation file.",
	})
}

// Registry returns the registry backing the global manager so hosts can
// expose it however they choose.
func Registry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

// RecordSessionStart notes a new observation session.
func RecordSessionStart() {
	if !globalManager.enabled {
		return
	}
	globalManager.sessionsStarted.Inc()
	globalManager.sessionActive.Set(1)
}

// RecordSessionStop notes the end of an observation session.
func RecordSessionStop() {
	if !globalManager.enabled {
		return
	}
	globalManager.sessionActive.Set(0)
}

// RecordEvent notes one event appended to the session log.
func RecordEvent(category string) {
	if !globalManager.enabled {
		return
	}
	globalManager.eventsRecorded.WithLabelValues(category).Inc()
}

// RecordIgnored notes a record call dropped for lack of an active session.
func RecordIgnored() {
	if !globalManager.enabled {
		return
	}
	globalManager.eventsIgnored.Inc()
}

// RecordFlush notes one interval flush that wrote n events.
func RecordFlush(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.intervalFlushes.Inc()
	globalManager.flushedEvents.Add(float64(n))
}

// SetActiveToggles tracks the number of currently pressed toggles.
func SetActiveToggles(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.togglesActive.Set(float64(n))
}

// RecordExport notes one export attempt and its outcome.
func RecordExport(d time.Duration, err error) {
	if !globalManager.enabled {
		return
	}
	globalManager.exportsTotal.Inc()
	globalManager.exportDuration.Observe(d.Seconds())
	if err != nil {
		globalManager.exportErrors.Inc()
	}
}

// RecordLoad notes one load attempt, its row count, and its outcome.
func RecordLoad(d time.Duration, rows int, err error) {
	if !globalManager.enabled {
		return
	}
	globalManager.loadsTotal.Inc()
	globalManager.loadDuration.Observe(d.Seconds())
	if err != nil {
		globalManager.loadErrors.Inc()
		return
	}
	globalManager.rowsLoaded.Set(float64(rows))
}
