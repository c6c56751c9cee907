package habit

import (
	"errors"
	"fmt"
)

// ErrDuplicateName is returned when adding a habit whose name is taken.
var ErrDuplicateName = errors.New("habit already exists")

// List is an ordered collection of habits with unique names.
// The zero value is an empty list ready to use.
type List struct {
	habits []*Habit
}

// NewList builds a list from habits in the given order.
// Later duplicates of a name are rejected.
func NewList(habits ...*Habit) (*List, error) {
	l := &List{}
	for _, h := range habits {
		if err := l.Add(h); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add appends h. Fails if a habit with the same name exists.
func (l *List) Add(h *Habit) error {
	if _, ok := l.Find(h.Name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, h.Name)
	}
	l.habits = append(l.habits, h)
	return nil
}

// Find returns the habit with the given name.
func (l *List) Find(name string) (*Habit, bool) {
	name = NormalizeName(name)
	for _, h := range l.habits {
		if h.Name == name {
			return h, true
		}
	}
	return nil, false
}

// Len returns the number of habits.
func (l *List) Len() int {
	return len(l.habits)
}

// All returns the habits in insertion order. The slice is a copy; the
// habits are shared.
func (l *List) All() []*Habit {
	return append([]*Habit(nil), l.habits...)
}

// Names returns every habit name in insertion order.
func (l *List) Names() []string {
	names := make([]string, 0, len(l.habits))
	for _, h := range l.habits {
		names = append(names, h.Name)
	}
	return names
}

// NamesByFrequency returns the names of habits with frequency f.
func (l *List) NamesByFrequency(f Frequency) []string {
	var names []string
	for _, h := range l.habits {
		if h.Frequency == f {
			names = append(names, h.Name)
		}
	}
	return names
}
