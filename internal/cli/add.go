package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/habits/internal/habit"
	"github.com/roach88/habits/internal/store"
)

// Preset is a predefined habit offered by add --preset.
type Preset struct {
	Name      string
	Frequency habit.Frequency
}

// Presets are numbered from 1 in this order.
var Presets = []Preset{
	{"Exercise", habit.Daily},
	{"Chores", habit.Daily},
	{"Plan the week", habit.Weekly},
	{"Time for your hobby", habit.Weekly},
	{"Paying the bills", habit.Monthly},
}

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Frequency string
	Start     string
	Preset    int
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Start tracking a habit",
		Long: `Start tracking a new habit.

Either give a name and --frequency, or pick a predefined habit with --preset:
` + presetHelp() + `
Example:
  habits add "Read 20 pages" --frequency daily
  habits add "Deep clean" --frequency monthly --start 2024-06-01
  habits add --preset 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Frequency, "frequency", "f", "", "daily, weekly or monthly")
	cmd.Flags().StringVar(&opts.Start, "start", "", "start date YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&opts.Preset, "preset", 0, "add predefined habit N instead of a named one")

	return cmd
}

func presetHelp() string {
	var b strings.Builder
	for i, p := range Presets {
		fmt.Fprintf(&b, "  %d. %s (%s)\n", i+1, p.Name, p.Frequency)
	}
	return b.String()
}

func runAdd(opts *AddOptions, args []string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	name, freq, err := opts.resolve(args)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}

	var start habit.Date
	if opts.Start != "" {
		start, err = habit.ParseDate(opts.Start)
		if err != nil {
			return out.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid --start", err)
		}
	}

	h, err := habit.New(name, freq, start, opts.clock)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}

	a, err := opts.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Save(cmd.Context(), h); err != nil {
		if errors.Is(err, store.ErrDuplicateHabit) {
			return out.Fail(ExitFailure, ErrCodeDuplicate, fmt.Sprintf("habit %q already exists", h.Name), nil)
		}
		return out.Fail(ExitCommandError, ErrCodeStorage, "failed to save habit", err)
	}
	a.opts.logger.Info("habit added", "habit", h.Name, "frequency", h.Frequency, "id", h.ID)

	return out.Success(newHabitView(h), fmt.Sprintf("Added %s habit %q starting %s.\n",
		h.Frequency, h.Name, h.StartDate))
}

// resolve picks name and frequency from either the preset or the arguments.
func (o *AddOptions) resolve(args []string) (string, habit.Frequency, error) {
	if o.Preset != 0 {
		if len(args) > 0 || o.Frequency != "" {
			return "", "", fmt.Errorf("--preset cannot be combined with a name or --frequency")
		}
		if o.Preset < 1 || o.Preset > len(Presets) {
			return "", "", fmt.Errorf("--preset must be between 1 and %d", len(Presets))
		}
		p := Presets[o.Preset-1]
		return p.Name, p.Frequency, nil
	}

	if len(args) == 0 {
		return "", "", fmt.Errorf("habit name required (or use --preset)")
	}
	if o.Frequency == "" {
		return "", "", fmt.Errorf("--frequency is required")
	}
	freq, err := habit.ParseFrequency(o.Frequency)
	if err != nil {
		return "", "", err
	}
	return args[0], freq, nil
}

