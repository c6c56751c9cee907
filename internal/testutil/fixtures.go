package testutil

import (
	"bytes"
	"log/slog"

	"github.com/roach88/habits/internal/habit"
)

// NewHabit builds a habit that started startOffset days from Today and was
// completed on the given day offsets.
func NewHabit(name string, freq habit.Frequency, startOffset int, completed ...int) *habit.Habit {
	return &habit.Habit{
		Name:      name,
		Frequency: freq,
		StartDate: Offset(startOffset),
		Completed: Offsets(completed...),
	}
}

// Clone returns a deep copy of h for before/after comparisons.
func Clone(h *habit.Habit) *habit.Habit {
	c := *h
	c.Completed = append([]habit.Date(nil), h.Completed...)
	c.Pending = append([]string(nil), h.Pending...)
	return &c
}

// NewLogger returns a text logger writing into the returned buffer, for
// asserting on warnings.
func NewLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}
