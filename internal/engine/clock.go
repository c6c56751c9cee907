package engine

import "github.com/roach88/habits/internal/habit"

// WithClock sets the source of "today". Defaults to habit.SystemClock.
//
// All methods of one call read the clock independently, so a clock that
// moves mid-call (midnight) can split a Snapshot across two days. Pin the
// clock with habit.FixedClock when that matters.
func WithClock(c habit.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// Today returns the date the engine treats as today.
func (e *Engine) Today() habit.Date {
	return e.clock.Today()
}
