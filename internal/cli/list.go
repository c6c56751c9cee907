package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/habits/internal/habit"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Frequency string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked habits",
		Long: `List tracked habits in the order they were added.

With --frequency only habits of that periodicity are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Frequency, "frequency", "f", "", "only list daily, weekly or monthly habits")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	var filter habit.Frequency
	if opts.Frequency != "" {
		f, err := habit.ParseFrequency(opts.Frequency)
		if err != nil {
			return out.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
		}
		filter = f
	}

	a, err := opts.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	habits, err := a.loadHabits(cmd.Context())
	if err != nil {
		return err
	}
	list, err := habit.NewList(habits...)
	if err != nil {
		return a.out.Fail(ExitCommandError, ErrCodeStorage, "inconsistent habit store", err)
	}

	names := list.Names()
	if filter != "" {
		names = list.NamesByFrequency(filter)
	}

	views := make([]habitView, 0, len(names))
	var b strings.Builder
	for i, name := range names {
		h, _ := list.Find(name)
		views = append(views, newHabitView(h))
		fmt.Fprintf(&b, "%d. %s (%s, since %s)\n", i+1, h.Name, h.Frequency, h.StartDate)
	}
	if len(names) == 0 {
		if filter != "" {
			fmt.Fprintf(&b, "No %s habits tracked.\n", filter)
		} else {
			b.WriteString("No habits tracked.\n")
		}
	}

	return a.out.Success(views, b.String())
}
