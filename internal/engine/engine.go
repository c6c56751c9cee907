package engine

import (
	"log/slog"

	"github.com/roach88/habits/internal/habit"
	"github.com/roach88/habits/internal/metrics"
)

// Engine computes habit statistics.
//
// Thread-safety: the read methods are safe for concurrent use as long as the
// habits passed in are not mutated concurrently. Normalize and Snapshot
// mutate habits and require exclusive access to them.
type Engine struct {
	clock   habit.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for warnings about dropped dates and degraded
// snapshots. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMetrics enables metric recording.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:  habit.SystemClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
