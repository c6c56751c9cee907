package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/habits/internal/config"
	"github.com/roach88/habits/internal/habit"
	"github.com/roach88/habits/internal/metrics"
)

// RootOptions holds global flags for all commands, plus the environment
// built from them before a subcommand runs.
type RootOptions struct {
	Verbose         bool
	Format          string // "json" | "text"
	Database        string
	ConfigPath      string
	Today           string // YYYY-MM-DD; pins the clock when set
	MetricsTextfile string

	config  *config.Config
	logger  *slog.Logger
	clock   habit.Clock
	metrics *metrics.Metrics
}

// ValidFormats defines the allowed output formats.
var ValidFormats = config.ValidFormats

// NewRootCommand creates the root command for the habits CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "habits",
		Short: "Track recurring habits and their streaks",
		Long: `Track daily, weekly and monthly habits.

Reports the current and longest streak of consecutive periods with a
completion, and how many periods were missed since each habit started.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default: $HOME/.habits/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Today, "today", "", "treat this date (YYYY-MM-DD) as today")
	cmd.PersistentFlags().StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the command")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewDoneCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewLongestCommand(opts))
	cmd.AddCommand(NewMissedCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	// Cobra skips post-run hooks after a RunE error, so the flush is wrapped
	// around each RunE instead.
	opts.flushAfterRun(cmd)

	return cmd
}

// flushAfterRun wraps the RunE of cmd and all its subcommands so the metrics
// textfile is written once the command returns, failed or not.
func (o *RootOptions) flushAfterRun(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		o.flushAfterRun(sub)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return o.flushMetrics(cmd, run(cmd, args))
	}
}

// setup loads config, resolves flag defaults from it and builds the logger,
// clock and metrics shared by subcommands. Explicit flags win over config.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	errOut := &OutputFormatter{Format: "text", Writer: cmd.ErrOrStderr()}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return errOut.Fail(ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}

	if f := cmd.Flag("format"); f == nil || !f.Changed {
		o.Format = cfg.Output.Format
	}
	if !isValidFormat(o.Format) {
		msg := fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats)
		return errOut.Fail(ExitCommandError, ErrCodeInvalidInput, msg, nil)
	}
	if o.Database == "" {
		o.Database = cfg.Database
	}
	if o.MetricsTextfile == "" {
		o.MetricsTextfile = cfg.Metrics.Textfile
	}

	// Logs go to stderr to avoid corrupting JSON output
	level := cfg.SlogLevel()
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))

	o.clock = habit.SystemClock{}
	if o.Today != "" {
		today, err := habit.ParseDate(o.Today)
		if err != nil {
			return errOut.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid --today", err)
		}
		o.clock = habit.NewFixedClock(today)
	}

	o.config = cfg
	o.metrics = metrics.New()
	return nil
}

// flushMetrics writes the metrics textfile when one is configured and
// returns runErr. A write failure after a failed command is only logged so
// the command's own error is the one reported.
func (o *RootOptions) flushMetrics(cmd *cobra.Command, runErr error) error {
	if o.MetricsTextfile == "" {
		return runErr
	}
	if err := o.metrics.WriteTextfile(o.MetricsTextfile); err != nil {
		if runErr != nil {
			o.logger.Warn("failed to write metrics", "path", o.MetricsTextfile, "error", err)
			return runErr
		}
		return o.formatter(cmd).Fail(ExitCommandError, ErrCodeGeneric, "failed to write metrics", err)
	}
	o.logger.Debug("metrics written", "path", o.MetricsTextfile)
	return runErr
}

// formatter returns an OutputFormatter bound to the command's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
