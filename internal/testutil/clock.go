// Package testutil holds fixtures shared by tests across packages.
package testutil

import (
	"time"

	"github.com/roach88/habits/internal/habit"
)

// Today is the date tests pin "today" to. It is a Wednesday, so the current
// week started two days earlier on Monday 2024-06-10.
var Today = habit.NewDate(2024, time.June, 12)

// NewClock returns a fixed clock set to Today.
func NewClock() *habit.FixedClock {
	return habit.NewFixedClock(Today)
}

// Offset returns Today shifted by n days (negative for the past).
func Offset(n int) habit.Date {
	return Today.AddDays(n)
}

// Offsets maps day offsets relative to Today to dates.
func Offsets(offsets ...int) []habit.Date {
	dates := make([]habit.Date, 0, len(offsets))
	for _, n := range offsets {
		dates = append(dates, Offset(n))
	}
	return dates
}
