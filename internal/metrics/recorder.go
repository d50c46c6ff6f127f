// Package metrics owns Prometheus registration and the observability
// primitives backing it: the TTL cache, the batch collector, and the lazy
// collector. Everything hangs off an explicitly constructed Recorder; no
// package-level state.
package metrics

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heartmarshall/worklog-backend/internal/config"
)

// Event is one discrete session lifecycle occurrence, collected in batches
// off the critical path.
type Event struct {
	Kind            string
	At              time.Time
	DurationMinutes int
}

// Recorder registers and feeds all worklog metrics.
type Recorder struct {
	registry *prometheus.Registry
	log      *slog.Logger

	sessionsStarted prometheus.Counter
	sessionsEnded   prometheus.Counter
	sessionMinutes  prometheus.Histogram
	reflections     *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	toolCalls       *prometheus.HistogramVec

	events       *Batch[Event]
	endedMinutes atomic.Int64
	minutesTotal *Lazy[float64]
	snapshot     *Cache[Snapshot]
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder(log *slog.Logger, cfg config.MetricsConfig) *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	r := &Recorder{
		registry: registry,
		log:      log.With("component", "metrics"),

		sessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "worklog_sessions_started_total",
			Help: "Work sessions started.",
		}),
		sessionsEnded: factory.NewCounter(prometheus.CounterOpts{
			Name: "worklog_sessions_ended_total",
			Help: "Work sessions ended.",
		}),
		sessionMinutes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "worklog_session_duration_minutes",
			Help:    "Duration of ended work sessions in minutes.",
			Buckets: []float64{5, 15, 30, 60, 120, 240, 480},
		}),
		reflections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worklog_reflections_total",
			Help: "Reflection pipeline outcomes.",
		}, []string{"outcome"}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worklog_active_sessions",
			Help: "Currently active work sessions (0 or 1).",
		}),
		toolCalls: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worklog_tool_call_duration_seconds",
			Help:    "MCP tool call durations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool", "outcome"}),
	}

	r.events = NewBatch(cfg.BatchSize, r.processEvents)
	r.snapshot = NewCache[Snapshot](cfg.CacheTTL)
	r.minutesTotal = NewLazy(func() float64 {
		return float64(r.endedMinutes.Load())
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "worklog_ended_session_minutes_total",
		Help: "Accumulated minutes of ended sessions since process start.",
	}, r.minutesTotal.Get)

	return r
}

// Registry exposes the gatherable registry for an exporter surface.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// SessionStarted records a session start.
func (r *Recorder) SessionStarted() {
	r.sessionsStarted.Inc()
	r.activeSessions.Set(1)
	r.events.Add(Event{Kind: "started", At: time.Now()})
}

// SessionEnded records a session end with its duration.
func (r *Recorder) SessionEnded(durationMinutes int) {
	r.sessionsEnded.Inc()
	r.sessionMinutes.Observe(float64(durationMinutes))
	r.activeSessions.Set(0)
	r.endedMinutes.Add(int64(durationMinutes))
	r.minutesTotal.MarkDirty()
	r.events.Add(Event{Kind: "ended", At: time.Now(), DurationMinutes: durationMinutes})
}

// ReflectionOutcome records one reflection pipeline outcome
// (generated, fallback, skipped).
func (r *Recorder) ReflectionOutcome(outcome string) {
	r.reflections.WithLabelValues(outcome).Inc()
}

// ObserveToolCall records one tool invocation.
func (r *Recorder) ObserveToolCall(tool, outcome string, d time.Duration) {
	r.toolCalls.WithLabelValues(tool, outcome).Observe(d.Seconds())
}

// Close drains the event batch. Call on shutdown.
func (r *Recorder) Close() {
	r.events.Flush()
}

// processEvents logs a digest of a flushed batch.
func (r *Recorder) processEvents(batch []Event) {
	started, ended, minutes := 0, 0, 0
	for _, ev := range batch {
		switch ev.Kind {
		case "started":
			started++
		case "ended":
			ended++
			minutes += ev.DurationMinutes
		}
	}
	r.log.Info("session event batch",
		slog.Int("events", len(batch)),
		slog.Int("started", started),
		slog.Int("ended", ended),
		slog.Int("minutes", minutes),
	)
}
