package engine

import (
	"github.com/roach88/habits/internal/habit"
)

// LongestStreakAcrossAll returns the habit with the highest LongestStreak
// and that streak. Ties go to the habit that comes first. Returns (nil, 0)
// when habits is empty or nothing has been completed.
func (e *Engine) LongestStreakAcrossAll(habits []*habit.Habit) (*habit.Habit, int) {
	var best *habit.Habit
	longest := 0
	for _, h := range habits {
		if h == nil {
			continue
		}
		if s := e.LongestStreak(h); s > longest {
			best, longest = h, s
		}
	}
	return best, longest
}

// LongestStreakFor returns the longest streak of the habit called name.
// The second result is false if no such habit exists.
func (e *Engine) LongestStreakFor(habits []*habit.Habit, name string) (int, bool) {
	name = habit.NormalizeName(name)
	for _, h := range habits {
		if h != nil && h.Name == name {
			return e.LongestStreak(h), true
		}
	}
	return 0, false
}
