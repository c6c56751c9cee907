package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/habits/internal/habitfile"
	"github.com/roach88/habits/internal/store"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add habits from a YAML habit file",
		Long: `Add the habits in a YAML habit file, with their completions.

Habits whose name is already tracked are skipped. Completion dates that are
not valid YYYY-MM-DD dates are kept as written and ignored, with a warning,
whenever statistics are computed.

Example file:
  habits:
    - name: Exercise
      frequency: daily
      start_date: "2024-06-01"
      completed: ["2024-06-01", "2024-06-02"]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

type importView struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	habits, err := habitfile.Load(path, opts.clock)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("habit file not found: %s", path), err)
		}
		return out.Fail(ExitFailure, ErrCodeFile, "invalid habit file", err)
	}

	a, err := opts.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	view := importView{Imported: []string{}, Skipped: []string{}}
	for _, h := range habits {
		if err := a.store.Save(cmd.Context(), h); err != nil {
			if errors.Is(err, store.ErrDuplicateHabit) {
				a.opts.logger.Warn("skipping habit that is already tracked", "habit", h.Name)
				view.Skipped = append(view.Skipped, h.Name)
				continue
			}
			return a.out.Fail(ExitCommandError, ErrCodeStorage, "failed to save habit", err)
		}
		view.Imported = append(view.Imported, h.Name)
	}

	text := fmt.Sprintf("Imported %d habit(s) from %s.\n", len(view.Imported), path)
	if len(view.Skipped) > 0 {
		text += fmt.Sprintf("Skipped %d already tracked: %v\n", len(view.Skipped), view.Skipped)
	}
	return a.out.Success(view, text)
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write all habits to a YAML habit file",
		Long: `Write every habit and its valid completion dates to a YAML habit file
that import accepts. An existing file is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runExport(opts *RootOptions, path string, cmd *cobra.Command) error {
	a, err := opts.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	habits, err := a.loadNormalized(cmd.Context())
	if err != nil {
		return err
	}

	if err := habitfile.Save(path, habits); err != nil {
		return a.out.Fail(ExitCommandError, ErrCodeFile, "failed to write habit file", err)
	}

	return a.out.Success(map[string]any{"path": path, "exported": len(habits)},
		fmt.Sprintf("Exported %d habit(s) to %s.\n", len(habits), path))
}
