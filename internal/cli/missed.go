package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewMissedCommand creates the missed command.
func NewMissedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missed",
		Short: "Show missed periods per habit and in total",
		Long: `Show how many periods each habit was missed since it started, and the
total across all habits. The current period only counts once it is over.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMissed(rootOpts, cmd)
		},
	}

	return cmd
}

type missedView struct {
	Habits []missedEntry `json:"habits"`
	Total  int           `json:"total"`
}

type missedEntry struct {
	Name   string `json:"name"`
	Missed int    `json:"missed"`
}

func runMissed(opts *RootOptions, cmd *cobra.Command) error {
	a, err := opts.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	habits, err := a.loadNormalized(cmd.Context())
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		return a.out.Success(missedView{Habits: []missedEntry{}}, "No habits tracked.\n")
	}

	view := missedView{Total: a.engine.TotalMissedAcrossAll(habits)}
	var b strings.Builder
	for _, h := range habits {
		n := a.engine.MissedPeriods(h)
		view.Habits = append(view.Habits, missedEntry{Name: h.Name, Missed: n})
		fmt.Fprintf(&b, "%s: %s\n", h.Name, countWithUnit(h.Frequency, n))
	}
	fmt.Fprintf(&b, "Total missed periods: %d\n", view.Total)

	return a.out.Success(view, b.String())
}
