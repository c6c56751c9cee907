package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/habits/internal/habit"
)

// RemoveOptions holds flags for the remove command.
type RemoveOptions struct {
	*RootOptions
	Yes bool
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RemoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Stop tracking a habit and delete its completions",
		Long: `Stop tracking a habit and delete all of its completions.

Asks for confirmation on stdin unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func runRemove(opts *RemoveOptions, name string, cmd *cobra.Command) error {
	name = habit.NormalizeName(name)

	a, err := opts.openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if !opts.Yes {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Remove habit %q and all its completions?", name))
		if err != nil {
			return a.out.Fail(ExitCommandError, ErrCodeInvalidInput, "failed to read confirmation", err)
		}
		if !ok {
			return a.out.Success(map[string]any{"name": name, "removed": false}, "Cancelled.\n")
		}
	}

	removed, err := a.store.Delete(cmd.Context(), name)
	if err != nil {
		return a.out.Fail(ExitCommandError, ErrCodeStorage, "failed to remove habit", err)
	}
	if !removed {
		return a.notFound(name)
	}
	a.opts.logger.Info("habit removed", "habit", name)

	return a.out.Success(map[string]any{"name": name, "removed": true},
		fmt.Sprintf("Removed habit %q.\n", name))
}

// confirm asks a y/n question until it gets an answer. End of input counts
// as no.
func confirm(in io.Reader, prompt io.Writer, question string) (bool, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(prompt, "%s [y/n]: ", question)
		if !scanner.Scan() {
			return false, scanner.Err()
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(prompt, "Please answer y or n.")
	}
}
