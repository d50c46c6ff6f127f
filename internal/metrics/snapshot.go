package metrics

import (
	"context"
	"fmt"
	"time"

	dto "github.com/prometheus/client_model/go"
)

// Snapshot is an aggregate view over the registry, served to readers through
// the TTL cache so concurrent requests right after expiry gather the registry
// once, not once per caller.
type Snapshot struct {
	SessionsStarted   int64            `json:"sessions_started"`
	SessionsEnded     int64            `json:"sessions_ended"`
	ActiveSessions    int64            `json:"active_sessions"`
	EndedMinutesTotal int64            `json:"ended_minutes_total"`
	Reflections       map[string]int64 `json:"reflections"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// Snapshot returns the current aggregate counters, recomputed at most once
// per configured TTL.
func (r *Recorder) Snapshot(ctx context.Context) (Snapshot, error) {
	return r.snapshot.GetOrCompute(ctx, r.computeSnapshot)
}

func (r *Recorder) computeSnapshot(_ context.Context) (Snapshot, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return Snapshot{}, fmt.Errorf("gather metrics: %w", err)
	}

	snap := Snapshot{
		Reflections: map[string]int64{},
		GeneratedAt: time.Now().UTC(),
	}

	for _, family := range families {
		switch family.GetName() {
		case "worklog_sessions_started_total":
			snap.SessionsStarted = int64(counterValue(family))
		case "worklog_sessions_ended_total":
			snap.SessionsEnded = int64(counterValue(family))
		case "worklog_active_sessions":
			for _, m := range family.GetMetric() {
				snap.ActiveSessions = int64(m.GetGauge().GetValue())
			}
		case "worklog_ended_session_minutes_total":
			for _, m := range family.GetMetric() {
				snap.EndedMinutesTotal = int64(m.GetGauge().GetValue())
			}
		case "worklog_reflections_total":
			for _, m := range family.GetMetric() {
				for _, label := range m.GetLabel() {
					if label.GetName() == "outcome" {
						snap.Reflections[label.GetValue()] = int64(m.GetCounter().GetValue())
					}
				}
			}
		}
	}

	return snap, nil
}

func counterValue(family *dto.MetricFamily) float64 {
	var total float64
	for _, m := range family.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}
