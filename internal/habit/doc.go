// Package habit defines the habit entity and the values it is built from.
//
// A Habit has a name, a fixed Frequency, a start date and a set of completion
// dates. Dates are calendar dates with no time-of-day or zone: every Date is
// stored as midnight UTC so day arithmetic is exact.
//
// Completion dates may arrive in two shapes:
//   - Completed: parsed Date values
//   - Pending: raw "YYYY-MM-DD" strings as read from storage or a file
//
// Pending entries are folded into Completed by engine.Normalize. Nothing in
// this package parses them implicitly.
//
// List is the ordered habit collection a user works with. It keeps insertion
// order and enforces name uniqueness; the analytics engine only iterates it.
package habit
