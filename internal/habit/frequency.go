package habit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFrequency is returned for anything other than daily, weekly or monthly.
var ErrInvalidFrequency = errors.New("invalid frequency")

// Frequency is the period a habit is measured against.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// Frequencies lists every valid frequency in display order.
var Frequencies = []Frequency{Daily, Weekly, Monthly}

// ParseFrequency accepts a frequency name, ignoring case and surrounding space.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w %q: must be one of %v", ErrInvalidFrequency, s, Frequencies)
	}
	return f, nil
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

func (f Frequency) String() string {
	return string(f)
}

// Unit returns the period label for a count: "1 day", "2 weeks" and so on.
// Only the label is returned. Unknown frequencies yield "periods".
func (f Frequency) Unit(n int) string {
	var singular string
	switch f {
	case Daily:
		singular = "day"
	case Weekly:
		singular = "week"
	case Monthly:
		singular = "month"
	default:
		if n == 1 {
			return "period"
		}
		return "periods"
	}
	if n == 1 {
		return singular
	}
	return singular + "s"
}
