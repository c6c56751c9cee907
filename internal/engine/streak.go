package engine

import (
	"github.com/roach88/habits/internal/habit"
)

// CurrentStreak returns the number of consecutive completed periods ending
// at the period containing today.
//
// Daily: the scan walks back from the newest date and counts while the n-th
// newest date is exactly n days before today (n starting at 0). A day
// without a completion stops the scan, including today itself.
//
// Weekly and monthly: each date, newest first, is aligned to its calendar
// week/month. A date in the current period resets the streak to 1; a date
// whose period starts exactly width*n days before the current one (width 7
// or 30) extends it. Anything else stops the scan, so a second date in an
// earlier period ends the streak there.
//
// Returns 0 for habits without completions or with an unknown frequency.
func (e *Engine) CurrentStreak(h *habit.Habit) int {
	if !h.Frequency.Valid() {
		return 0
	}
	dates := completionDates(h)
	if len(dates) == 0 {
		return 0
	}
	today := e.Today()

	streak := 0
	if h.Frequency == habit.Daily {
		for i := len(dates) - 1; i >= 0; i-- {
			if today.DaysSince(dates[i]) != streak {
				break
			}
			streak++
		}
		return streak
	}

	current := calendarPeriodStart(h.Frequency, today)
	width := periodDays(h.Frequency)
	for i := len(dates) - 1; i >= 0; i-- {
		start := calendarPeriodStart(h.Frequency, dates[i])
		switch {
		case start.Equal(current):
			streak = 1
		case start.Equal(current.AddDays(-width * streak)):
			streak++
		default:
			return streak
		}
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed periods in
// the habit's history. Adjacent completion dates continue the run when their
// calendar period starts are exactly 1, 7 or 30 days apart for daily, weekly
// and monthly habits. Two dates in the same week or month break the run.
//
// A single completion is a streak of 1; no completions is 0.
func (e *Engine) LongestStreak(h *habit.Habit) int {
	if !h.Frequency.Valid() {
		return 0
	}
	dates := completionDates(h)
	if len(dates) == 0 {
		return 0
	}

	width := periodDays(h.Frequency)
	longest, run := 1, 1
	prev := calendarPeriodStart(h.Frequency, dates[0])
	for i := 1; i < len(dates); i++ {
		start := calendarPeriodStart(h.Frequency, dates[i])
		gap := start.DaysSince(prev)
		prev = start
		if gap == width {
			run++
			continue
		}
		longest = max(longest, run)
		run = 1
	}
	return max(longest, run)
}
