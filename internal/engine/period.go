package engine

import (
	"slices"

	"github.com/roach88/habits/internal/habit"
)

// periodDays returns the fixed width of one period in days.
func periodDays(f habit.Frequency) int {
	switch f {
	case habit.Weekly:
		return 7
	case habit.Monthly:
		return 30
	default:
		return 1
	}
}

// calendarPeriodStart aligns d to the start of its calendar period.
// Used for streaks only.
func calendarPeriodStart(f habit.Frequency, d habit.Date) habit.Date {
	switch f {
	case habit.Weekly:
		return d.WeekStart()
	case habit.Monthly:
		return d.MonthStart()
	default:
		return d
	}
}

// startRelativeIndex numbers the period containing d counting from start.
// Used for missed counts only. Dates before start get negative indexes.
func startRelativeIndex(f habit.Frequency, start, d habit.Date) int {
	return floorDiv(d.DaysSince(start), periodDays(f))
}

// completionDates returns h's completion dates in ascending order with
// identical dates collapsed. Dates sharing a period stay separate entries.
func completionDates(h *habit.Habit) []habit.Date {
	dates := slices.Clone(h.Completed)
	slices.SortFunc(dates, habit.Date.Compare)
	return slices.CompactFunc(dates, habit.Date.Equal)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
