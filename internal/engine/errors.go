package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownFrequency indicates a habit whose frequency is not daily,
// weekly or monthly.
var ErrUnknownFrequency = errors.New("unknown frequency")

// StatsError describes why a statistics snapshot could not be computed.
//
// Snapshot never returns it; it logs it and degrades to an empty result.
// Compute returns it directly.
type StatsError struct {
	// Code identifies the error category.
	Code StatsErrorCode

	// Habit names the habit that caused the failure, if known.
	Habit string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// StatsErrorCode categorizes snapshot failures.
type StatsErrorCode string

const (
	// ErrCodeInvalidFrequency indicates a habit with an unknown frequency.
	ErrCodeInvalidFrequency StatsErrorCode = "INVALID_FREQUENCY"

	// ErrCodeNilHabit indicates a nil entry in the habit collection.
	ErrCodeNilHabit StatsErrorCode = "NIL_HABIT"

	// ErrCodePanic indicates a panic recovered during the snapshot.
	ErrCodePanic StatsErrorCode = "PANIC"
)

// Error implements the error interface.
func (e *StatsError) Error() string {
	if e.Habit != "" {
		return fmt.Sprintf("%s: %s (habit=%s)", e.Code, e.Message, e.Habit)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *StatsError) Unwrap() error {
	return e.Err
}

// statsErrorCode returns the code of the StatsError in err's chain, or ""
// when there is none.
func statsErrorCode(err error) StatsErrorCode {
	var se *StatsError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
