// Package engine computes streak and adherence statistics for habits.
//
// The engine is stateless apart from its configuration: every method reads
// the habits it is given and returns derived numbers. It never stores habits
// and never talks to the store.
//
// PERIODS:
//
// A frequency partitions time into periods:
//   - daily: one calendar day
//   - weekly: a Monday-aligned 7-day window
//   - monthly: a fixed 30-day window
//
// Two anchoring schemes exist and both are intentional:
//   - Streaks align completions to calendar boundaries (the Monday of the
//     week, the 1st of the month) and call two periods consecutive when their
//     starts are exactly 1, 7 or 30 days apart.
//   - Missed counts index periods from the habit's start date:
//     index = floor(days since start / width).
//
// So a monthly streak only continues across a 30-day calendar month, while
// missed months are counted in 30-day steps from the start date. Changing
// either scheme changes results for existing data.
//
// TODAY:
//
// "Today" comes from the habit.Clock the engine was built with (the system
// clock by default). The period containing today is never counted as missed
// unless it is completed, in which case it counts as a completed period.
//
// NORMALIZATION:
//
// Habits read from storage or files carry raw date strings in Pending.
// Normalize folds them into Completed and drops unparsable entries with a
// warning. All read methods ignore Pending; Snapshot normalizes first.
package engine
