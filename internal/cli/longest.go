package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/habits/internal/habit"
)

// NewLongestCommand creates the longest command.
func NewLongestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "longest [name]",
		Short: "Show the longest streak of one habit or of all habits",
		Long: `Show the longest run of consecutive completed periods.

Without a name, reports the habit with the longest streak overall. Ties go
to the habit added first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLongest(rootOpts, args, cmd)
		},
	}

	return cmd
}

type longestView struct {
	Name          string `json:"name,omitempty"`
	LongestStreak int    `json:"longest_streak"`
}

func runLongest(opts *RootOptions, args []string, cmd *cobra.Command) error {
	a, err := opts.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	habits, err := a.loadNormalized(cmd.Context())
	if err != nil {
		return err
	}

	if len(args) == 1 {
		name := habit.NormalizeName(args[0])
		streak, ok := a.engine.LongestStreakFor(habits, name)
		if !ok {
			return a.notFound(name)
		}
		freq := frequencyOf(habits, name)
		return a.out.Success(longestView{Name: name, LongestStreak: streak},
			fmt.Sprintf("Longest streak of %q: %s.\n", name, countWithUnit(freq, streak)))
	}

	best, streak := a.engine.LongestStreakAcrossAll(habits)
	if best == nil {
		return a.out.Success(longestView{}, "No streaks yet.\n")
	}
	return a.out.Success(longestView{Name: best.Name, LongestStreak: streak},
		fmt.Sprintf("Longest streak overall: %q with %s.\n", best.Name, countWithUnit(best.Frequency, streak)))
}

func frequencyOf(habits []*habit.Habit, name string) habit.Frequency {
	for _, h := range habits {
		if h.Name == name {
			return h.Frequency
		}
	}
	return ""
}
