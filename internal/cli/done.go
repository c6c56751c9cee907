package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/habits/internal/habit"
)

// DoneOptions holds flags for the done command.
type DoneOptions struct {
	*RootOptions
	Date string
}

// NewDoneCommand creates the done command.
func NewDoneCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DoneOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "done <name>",
		Short: "Mark a habit as completed",
		Long: `Mark a habit as completed today, or on --date.

Marking the same date twice has no further effect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDone(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "completion date YYYY-MM-DD (default today)")

	return cmd
}

func runDone(opts *DoneOptions, name string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	name = habit.NormalizeName(name)

	date := opts.clock.Today()
	if opts.Date != "" {
		d, err := habit.ParseDate(opts.Date)
		if err != nil {
			return out.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid --date", err)
		}
		date = d
	}

	a, err := opts.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	found, err := a.store.RecordCompletion(cmd.Context(), name, date)
	if err != nil {
		return a.out.Fail(ExitCommandError, ErrCodeStorage, "failed to record completion", err)
	}
	if !found {
		return a.notFound(name)
	}
	a.opts.logger.Info("completion recorded", "habit", name, "date", date)

	return a.out.Success(map[string]string{"name": name, "date": date.String()},
		fmt.Sprintf("Marked %q done on %s.\n", name, date))
}
