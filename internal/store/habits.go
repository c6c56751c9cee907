package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/roach88/habits/internal/habit"
)

// ErrDuplicateHabit is returned by Save when the name or ID is already stored.
var ErrDuplicateHabit = errors.New("habit already stored")

// LoadAll returns every stored habit in insertion order.
//
// Completion dates are returned unparsed in Pending, exactly as stored.
// Run engine.Normalize before computing statistics.
func (s *Store) LoadAll(ctx context.Context) ([]*habit.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, frequency, start_date
		FROM habits
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load habits: %w", err)
	}

	var habits []*habit.Habit
	byID := make(map[string]*habit.Habit)
	for rows.Next() {
		var id, name, freq, start string
		if err := rows.Scan(&id, &name, &freq, &start); err != nil {
			rows.Close()
			return nil, fmt.Errorf("load habits: scan: %w", err)
		}
		h := &habit.Habit{
			ID:        id,
			Name:      name,
			Frequency: habit.Frequency(freq),
			StartDate: s.parseStartDate(name, start),
		}
		habits = append(habits, h)
		byID[id] = h
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("load habits: %w", err)
	}
	// Release the single connection before the next query.
	rows.Close()

	if err := s.loadCompletions(ctx, byID); err != nil {
		return nil, err
	}
	return habits, nil
}

func (s *Store) loadCompletions(ctx context.Context, byID map[string]*habit.Habit) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT habit_id, completion_date
		FROM completions
		ORDER BY rowid ASC
	`)
	if err != nil {
		return fmt.Errorf("load completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var habitID, date string
		if err := rows.Scan(&habitID, &date); err != nil {
			return fmt.Errorf("load completions: scan: %w", err)
		}
		if h, ok := byID[habitID]; ok {
			h.Pending = append(h.Pending, date)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load completions: %w", err)
	}
	return nil
}

func (s *Store) parseStartDate(name, raw string) habit.Date {
	d, err := habit.ParseDate(raw)
	if err != nil {
		today := s.clock.Today()
		s.logger.Warn("invalid start date, using today",
			"habit", name,
			"value", raw,
			"today", today.String(),
		)
		return today
	}
	return d
}

// Save inserts a new habit together with its completions, Completed and
// Pending alike. A habit without an ID is assigned a UUIDv7, written back to
// h.ID.
//
// Returns ErrDuplicateHabit if the name or ID is already stored.
func (s *Store) Save(ctx context.Context, h *habit.Habit) error {
	id := h.ID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save habit: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO habits (id, name, frequency, start_date)
		VALUES (?, ?, ?, ?)
	`, id, habit.NormalizeName(h.Name), string(h.Frequency), h.StartDate.String())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("save habit %q: %w", h.Name, ErrDuplicateHabit)
		}
		return fmt.Errorf("save habit %q: %w", h.Name, err)
	}

	dates := make([]string, 0, len(h.Completed)+len(h.Pending))
	for _, d := range h.Completed {
		dates = append(dates, d.String())
	}
	dates = append(dates, h.Pending...)

	for _, date := range dates {
		if _, err := insertCompletion(ctx, tx, id, date); err != nil {
			return fmt.Errorf("save habit %q: %w", h.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save habit %q: commit: %w", h.Name, err)
	}
	h.ID = id
	return nil
}

// RecordCompletion stores a completion of the named habit on date.
// Returns false if no habit has that name. Recording the same date twice
// is a no-op that still reports success.
func (s *Store) RecordCompletion(ctx context.Context, name string, date habit.Date) (bool, error) {
	id, err := s.habitID(ctx, name)
	if err != nil {
		return false, fmt.Errorf("record completion: %w", err)
	}
	if id == "" {
		s.logger.Debug("completion for unknown habit", "habit", name)
		return false, nil
	}

	inserted, err := insertCompletion(ctx, s.db, id, date.String())
	if err != nil {
		return false, fmt.Errorf("record completion: %w", err)
	}
	if inserted {
		s.metrics.RecordCompletion()
	}
	return true, nil
}

// Delete removes the named habit and its completions.
// Returns false if no habit has that name.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM habits WHERE name = ?
	`, habit.NormalizeName(name))
	if err != nil {
		return false, fmt.Errorf("delete habit: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete habit: rows affected: %w", err)
	}
	return n > 0, nil
}

// habitID returns the ID of the named habit, or "" if there is none.
func (s *Store) habitID(ctx context.Context, name string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM habits WHERE name = ?
	`, habit.NormalizeName(name)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertCompletion writes one completion row, ignoring duplicates.
// Reports whether a row was inserted.
func insertCompletion(ctx context.Context, ex execer, habitID, date string) (bool, error) {
	result, err := ex.ExecContext(ctx, `
		INSERT INTO completions (habit_id, completion_date)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, habitID, date)
	if err != nil {
		return false, fmt.Errorf("insert completion: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert completion: rows affected: %w", err)
	}
	return n > 0, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
