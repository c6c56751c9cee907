package engine

import (
	"fmt"
	"slices"

	"github.com/roach88/habits/internal/habit"
	"github.com/roach88/habits/internal/metrics"
)

// Stats are the derived metrics for one habit.
type Stats struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	Missed        int `json:"missed"`

	// CompletedDates is newest first.
	CompletedDates []habit.Date `json:"completed_dates"`
}

// Compute returns Stats keyed by habit name for habits that are already
// normalized. It does not modify the habits; Pending entries are ignored.
//
// Fails with a *StatsError on nil entries or unknown frequencies.
func (e *Engine) Compute(habits []*habit.Habit) (map[string]Stats, error) {
	if err := validate(habits); err != nil {
		return nil, err
	}

	stats := make(map[string]Stats, len(habits))
	for _, h := range habits {
		dates := slices.Clone(h.Completed)
		slices.SortFunc(dates, func(a, b habit.Date) int { return b.Compare(a) })
		dates = slices.CompactFunc(dates, habit.Date.Equal)

		stats[h.Name] = Stats{
			CurrentStreak:  e.CurrentStreak(h),
			LongestStreak:  e.LongestStreak(h),
			Missed:         e.MissedPeriods(h),
			CompletedDates: dates,
		}
	}
	return stats, nil
}

// Snapshot normalizes habits and computes their Stats.
//
// Snapshot never fails. If anything goes wrong for any habit (a nil entry,
// an unknown frequency, a panic) the failure is logged and the whole
// result is an empty map. Callers must read an empty map as "statistics
// unavailable", not "no habits".
//
// Habits are validated before any of them is normalized, so a rejected
// collection is left untouched. Running Snapshot twice with the same clock
// yields the same result.
func (e *Engine) Snapshot(habits []*habit.Habit) (stats map[string]Stats) {
	defer func() {
		if r := recover(); r != nil {
			stats = e.degrade(&StatsError{
				Code:    ErrCodePanic,
				Message: fmt.Sprintf("panic during snapshot: %v", r),
			})
		}
	}()

	if err := validate(habits); err != nil {
		return e.degrade(err)
	}

	e.NormalizeAll(habits)

	stats, err := e.Compute(habits)
	if err != nil {
		return e.degrade(err)
	}
	e.metrics.RecordSnapshot(metrics.ResultOK, len(stats))
	return stats
}

func (e *Engine) degrade(err error) map[string]Stats {
	e.logger.Error("statistics snapshot unavailable", "code", statsErrorCode(err), "error", err)
	e.metrics.RecordSnapshot(metrics.ResultDegraded, 0)
	return map[string]Stats{}
}

func validate(habits []*habit.Habit) error {
	for i, h := range habits {
		if h == nil {
			return &StatsError{
				Code:    ErrCodeNilHabit,
				Message: fmt.Sprintf("habit at index %d is nil", i),
			}
		}
		if !h.Frequency.Valid() {
			return &StatsError{
				Code:    ErrCodeInvalidFrequency,
				Habit:   h.Name,
				Message: fmt.Sprintf("frequency %q is not daily, weekly or monthly", h.Frequency),
				Err:     ErrUnknownFrequency,
			}
		}
	}
	return nil
}
