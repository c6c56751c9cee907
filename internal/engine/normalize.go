package engine

import (
	"slices"

	"github.com/roach88/habits/internal/habit"
)

// Normalize folds the habit's Pending date strings into Completed.
//
// Each pending entry is parsed as YYYY-MM-DD; entries that fail are dropped
// with a warning and counted in metrics. Completed ends up sorted ascending
// without duplicates and Pending is cleared, so a second call changes
// nothing. Returns the number of dropped entries.
func (e *Engine) Normalize(h *habit.Habit) int {
	dropped := 0
	for _, raw := range h.Pending {
		d, err := habit.ParseDate(raw)
		if err != nil {
			e.logger.Warn("dropping invalid completion date",
				"habit", h.Name,
				"value", raw,
			)
			e.metrics.RecordDroppedDate()
			dropped++
			continue
		}
		h.Completed = append(h.Completed, d)
	}
	h.Pending = nil

	slices.SortFunc(h.Completed, habit.Date.Compare)
	h.Completed = slices.CompactFunc(h.Completed, habit.Date.Equal)
	return dropped
}

// NormalizeAll runs Normalize on every non-nil habit and returns the total
// number of dropped entries.
func (e *Engine) NormalizeAll(habits []*habit.Habit) int {
	dropped := 0
	for _, h := range habits {
		if h == nil {
			continue
		}
		dropped += e.Normalize(h)
	}
	return dropped
}
