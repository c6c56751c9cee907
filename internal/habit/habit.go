package habit

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyName is returned when a habit name is blank after normalization.
var ErrEmptyName = errors.New("habit name cannot be empty")

// Habit is a recurring activity tracked at a fixed frequency.
//
// Completed is a logical set: order is irrelevant and a date appears at most
// once. Pending holds raw completion strings that have not been normalized yet.
type Habit struct {
	// ID is assigned by the store. Empty for habits that were never saved.
	ID string

	Name      string
	Frequency Frequency
	StartDate Date

	Completed []Date
	Pending   []string
}

// New creates a habit with no completions. A zero start date defaults to
// today according to clock.
func New(name string, freq Frequency, start Date, clock Clock) (*Habit, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !freq.Valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidFrequency, freq)
	}
	if start.IsZero() {
		start = clock.Today()
	}
	return &Habit{
		Name:      name,
		Frequency: freq,
		StartDate: start,
	}, nil
}

// NormalizeName trims surrounding space and converts the name to Unicode NFC
// so visually identical names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// MarkDone records a completion on date. Returns false if the date was
// already recorded.
func (h *Habit) MarkDone(date Date) bool {
	if h.HasCompletion(date) {
		return false
	}
	h.Completed = append(h.Completed, date)
	return true
}

// HasCompletion reports whether date is among the parsed completions.
func (h *Habit) HasCompletion(date Date) bool {
	for _, d := range h.Completed {
		if d.Equal(date) {
			return true
		}
	}
	return false
}

