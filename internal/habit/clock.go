package habit

import (
	"sync"
	"time"
)

// Clock supplies the current calendar date.
//
// Everything that depends on "today" takes a Clock so tests can pin the date
// instead of depending on when they run.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock in the local time zone.
type SystemClock struct{}

// Today returns the current local date.
func (SystemClock) Today() Date {
	return DateOf(time.Now())
}

// FixedClock always reports the same date until it is moved.
//
// Thread-safety: all methods are safe for concurrent use.
type FixedClock struct {
	mu    sync.Mutex
	today Date
}

// NewFixedClock returns a clock pinned to today.
func NewFixedClock(today Date) *FixedClock {
	return &FixedClock{today: today}
}

// Today returns the pinned date.
func (c *FixedClock) Today() Date {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.today
}

// Set moves the clock to d.
func (c *FixedClock) Set(d Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = d
}

// Advance moves the clock n days forward (backward when n is negative).
func (c *FixedClock) Advance(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = c.today.AddDays(n)
}
