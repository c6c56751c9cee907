package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/habits/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a default config file",
		Long: `Write a config file with default values to path, or to
$HOME/.habits/config.yaml. Refuses to overwrite an existing file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}
			out := rootOpts.formatter(cmd)
			if err := config.SaveDefault(path); err != nil {
				return out.Fail(ExitCommandError, ErrCodeConfig, "failed to write config", err)
			}
			return out.Success(map[string]string{"path": path}, fmt.Sprintf("Wrote %s.\n", path))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			data, err := yaml.Marshal(rootOpts.config)
			if err != nil {
				return out.Fail(ExitCommandError, ErrCodeConfig, "failed to render config", err)
			}
			return out.Success(rootOpts.config, string(data))
		},
	})

	return cmd
}
