package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/habits/internal/engine"
	"github.com/roach88/habits/internal/habit"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show streaks and missed periods for every habit",
		Long: `Show an overview of every habit: current streak, longest streak,
missed periods since the start date and the most recent completions.

The number of completions listed is set by output.recent_completions in the
config file. JSON output lists all of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}

	return cmd
}

// statsView is the JSON shape of one habit's statistics.
type statsView struct {
	habitView
	CurrentStreak  int      `json:"current_streak"`
	LongestStreak  int      `json:"longest_streak"`
	Missed         int      `json:"missed"`
	CompletedDates []string `json:"completed_dates"`

	frequency habit.Frequency
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	a, err := opts.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	habits, err := a.loadHabits(cmd.Context())
	if err != nil {
		return err
	}

	views := buildStatsViews(habits, a.engine.Snapshot(habits))

	var b strings.Builder
	renderStats(&b, views, opts.config.Output.RecentCompletions)
	return a.out.Success(views, b.String())
}

// buildStatsViews orders the snapshot like habits. Habits missing from the
// snapshot are skipped, so a degraded snapshot yields no views.
func buildStatsViews(habits []*habit.Habit, snapshot map[string]engine.Stats) []statsView {
	views := make([]statsView, 0, len(snapshot))
	for _, h := range habits {
		s, ok := snapshot[h.Name]
		if !ok {
			continue
		}
		dates := make([]string, 0, len(s.CompletedDates))
		for _, d := range s.CompletedDates {
			dates = append(dates, d.String())
		}
		views = append(views, statsView{
			habitView:      newHabitView(h),
			CurrentStreak:  s.CurrentStreak,
			LongestStreak:  s.LongestStreak,
			Missed:         s.Missed,
			CompletedDates: dates,
			frequency:      h.Frequency,
		})
	}
	return views
}

// renderStats writes the text overview, listing at most recent completion
// dates per habit.
func renderStats(w io.Writer, views []statsView, recent int) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No habits to show statistics for.")
		return
	}

	for i, v := range views {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s, since %s)\n", v.Name, displayFrequency(v.frequency), v.StartDate)
		fmt.Fprintf(w, "  Current streak: %s\n", countWithUnit(v.frequency, v.CurrentStreak))
		fmt.Fprintf(w, "  Longest streak: %s\n", countWithUnit(v.frequency, v.LongestStreak))
		fmt.Fprintf(w, "  Missed:         %s\n", countWithUnit(v.frequency, v.Missed))

		dates := v.CompletedDates
		if len(dates) > recent {
			dates = dates[:recent]
		}
		if len(dates) == 0 {
			fmt.Fprintln(w, "  Recent:         none")
			continue
		}
		fmt.Fprintf(w, "  Recent:         %s", strings.Join(dates, ", "))
		if more := len(v.CompletedDates) - len(dates); more > 0 {
			fmt.Fprintf(w, " (+%d more)", more)
		}
		fmt.Fprintln(w)
	}
}
