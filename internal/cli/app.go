package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/habits/internal/engine"
	"github.com/roach88/habits/internal/habit"
	"github.com/roach88/habits/internal/store"
)

// app is the per-command environment: an open store and an engine sharing
// the root clock, logger and metrics.
type app struct {
	opts   *RootOptions
	out    *OutputFormatter
	store  *store.Store
	engine *engine.Engine
}

// openApp opens the database, creating its directory if needed.
// Callers must defer close.
func (o *RootOptions) openApp(cmd *cobra.Command) (*app, error) {
	out := o.formatter(cmd)

	if err := os.MkdirAll(filepath.Dir(o.Database), 0755); err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeStorage, "failed to create database directory", err)
	}

	st, err := store.Open(o.Database,
		store.WithClock(o.clock),
		store.WithLogger(o.logger),
		store.WithMetrics(o.metrics),
	)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	o.logger.Debug("database ready", "path", o.Database)

	eng := engine.New(
		engine.WithClock(o.clock),
		engine.WithLogger(o.logger),
		engine.WithMetrics(o.metrics),
	)

	return &app{opts: o, out: out, store: st, engine: eng}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.opts.logger.Error("error closing database", "error", err)
	}
}

// loadHabits reads every habit from the store. Completion dates are left
// raw; commands that compute statistics normalize them first.
func (a *app) loadHabits(ctx context.Context) ([]*habit.Habit, error) {
	habits, err := a.store.LoadAll(ctx)
	if err != nil {
		return nil, a.out.Fail(ExitCommandError, ErrCodeStorage, "failed to load habits", err)
	}
	a.opts.logger.Debug("habits loaded", "count", len(habits))
	return habits, nil
}

// loadNormalized is loadHabits followed by engine normalization.
func (a *app) loadNormalized(ctx context.Context) ([]*habit.Habit, error) {
	habits, err := a.loadHabits(ctx)
	if err != nil {
		return nil, err
	}
	a.engine.NormalizeAll(habits)
	return habits, nil
}

func (a *app) notFound(name string) error {
	return a.out.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("habit %q not found", habit.NormalizeName(name)), nil)
}

// habitView is the JSON shape of a habit in command output.
type habitView struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	StartDate string `json:"start_date"`
}

func newHabitView(h *habit.Habit) habitView {
	return habitView{
		Name:      h.Name,
		Frequency: h.Frequency.String(),
		StartDate: h.StartDate.String(),
	}
}

// displayFrequency renders a frequency for humans: "Daily", "Weekly".
func displayFrequency(f habit.Frequency) string {
	return cases.Title(language.English).String(f.String())
}

// countWithUnit renders n with the frequency's unit: "1 day", "3 weeks".
func countWithUnit(f habit.Frequency, n int) string {
	return fmt.Sprintf("%d %s", n, f.Unit(n))
}
