// Package store provides SQLite-backed persistence for habits and their
// completions.
//
// # Tables
//
//   - habits: one row per habit (id, unique name, frequency, start date)
//   - completions: one row per (habit, date), deleted with the habit
//
// # Ordering
//
// LoadAll returns habits in insertion order (rowid) so numbered listings stay
// stable between runs.
//
// # Dates
//
// Dates are stored as YYYY-MM-DD text. Completion dates are handed back as
// raw strings in habit.Habit.Pending; parsing and discarding bad values is the
// engine's job (engine.Normalize). Start dates are parsed on load and fall
// back to today, with a warning, when unreadable.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Needed for ON DELETE CASCADE
package store
