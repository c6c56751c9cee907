package habit

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for dates in storage, files and output.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ErrInvalidDate is returned when a string is not a valid YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date. The zero value is not a valid date; use IsZero.
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate returns the date for the given year, month and day.
// Out-of-range values are normalized the way time.Date does.
func NewDate(year int, month time.Month, dayOfMonth int) Date {
	return Date{t: time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid. Panics otherwise.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// AddDays returns d shifted by n days (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of days from other to d.
// Negative when d is before other. Computed from Unix seconds so spans
// beyond time.Duration's ~292 year range stay exact.
func (d Date) DaysSince(other Date) int {
	return int((d.t.Unix() - other.t.Unix()) / secondsPerDay)
}

// WeekStart returns the Monday of the week containing d.
func (d Date) WeekStart() Date {
	offset := (int(d.t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDays(-offset)
}

// MonthStart returns the first day of the calendar month containing d.
func (d Date) MonthStart() Date {
	y, m, _ := d.t.Date()
	return NewDate(y, m, 1)
}

// Equal reports whether d and other are the same date.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Compare returns -1, 0 or +1. Suitable for slices.SortFunc.
func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }
