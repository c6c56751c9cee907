// Package metrics exposes Prometheus counters for the habit tracker.
//
// Metrics live on their own registry rather than the global default so a
// process (or a test) can create as many independent sets as it needs.
// The CLI is short-lived, so instead of serving /metrics it writes the
// registry to a node_exporter textfile-collector file on exit.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot results.
const (
	ResultOK       = "ok"
	ResultDegraded = "degraded"
)

// Metrics holds every collector the engine and store report to.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	DatesDropped        prometheus.Counter
	Snapshots           *prometheus.CounterVec
	CompletionsRecorded prometheus.Counter
	HabitsTracked       prometheus.Gauge
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DatesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "habits_dates_dropped_total",
			Help: "Completion dates discarded because they were not valid YYYY-MM-DD dates",
		}),
		Snapshots: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "habits_snapshots_total",
				Help: "Statistics snapshots computed, by result",
			},
			[]string{"result"}, // ok | degraded
		),
		CompletionsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "habits_completions_recorded_total",
			Help: "Completions written to the habit store",
		}),
		HabitsTracked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "habits_habits_tracked",
			Help: "Number of habits in the most recent snapshot",
		}),
	}
}

// RecordDroppedDate counts one discarded completion date.
func (m *Metrics) RecordDroppedDate() {
	if m == nil {
		return
	}
	m.DatesDropped.Inc()
}

// RecordSnapshot counts a snapshot with the given result and habit count.
func (m *Metrics) RecordSnapshot(result string, habits int) {
	if m == nil {
		return
	}
	m.Snapshots.WithLabelValues(result).Inc()
	m.HabitsTracked.Set(float64(habits))
}

// RecordCompletion counts one completion written to the store.
func (m *Metrics) RecordCompletion() {
	if m == nil {
		return
	}
	m.CompletionsRecorded.Inc()
}

// WriteTextfile writes the registry in the text exposition format to path,
// atomically, for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
