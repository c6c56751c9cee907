package engine

import (
	"github.com/roach88/habits/internal/habit"
)

// MissedPeriods counts periods from the start date through today that have
// no completion.
//
// The period containing today is only part of the count when it is already
// completed; an open current period is left out rather than counted as
// missed. Weekly and monthly periods are indexed from the start date and
// compared by distinct index, so several completions in one period count
// once. The result is never negative.
func (e *Engine) MissedPeriods(h *habit.Habit) int {
	if !h.Frequency.Valid() {
		return 0
	}
	today := e.Today()

	if h.Frequency == habit.Daily {
		elapsed := today.DaysSince(h.StartDate) + 1
		done := len(completionDates(h))
		if !h.HasCompletion(today) {
			elapsed--
		}
		return max(0, elapsed-done)
	}

	current := startRelativeIndex(h.Frequency, h.StartDate, today)
	done := make(map[int]struct{}, len(h.Completed))
	for _, d := range h.Completed {
		done[startRelativeIndex(h.Frequency, h.StartDate, d)] = struct{}{}
	}

	counted := current + 1
	if _, ok := done[current]; !ok {
		counted--
	}
	return max(0, counted-len(done))
}

// TotalMissedAcrossAll sums MissedPeriods over habits. Nil entries are skipped.
func (e *Engine) TotalMissedAcrossAll(habits []*habit.Habit) int {
	total := 0
	for _, h := range habits {
		if h == nil {
			continue
		}
		total += e.MissedPeriods(h)
	}
	return total
}
