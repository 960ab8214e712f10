package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/calcbench/internal/config"
)

// RootOptions holds global flags for all commands, and the state resolved
// from them before any subcommand runs.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is the effective configuration, loaded in PersistentPreRunE.
	Config *config.Config

	// ConfigSource is the file Config was read from, "" for defaults only.
	ConfigSource string

	// Logger writes diagnostics to stderr.
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the calcbench CLI.
// Without a subcommand it starts the interactive loop.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "calcbench",
		Short: "calcbench - time small calculations from the command line",
		Long: `calcbench dispatches lines of the form "name,arg1,arg2,..." to a catalog
of registered calculations and reports each result with its execution time.

An integer argument written as "start-end" runs the calculation once for
every value in the range.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: $XDG_CONFIG_HOME/calcbench/config.cue)")

	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewInvokeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// resolve loads configuration and builds the logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, source, err := config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: o.ConfigPath})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	o.Config = cfg
	o.ConfigSource = source
	o.Logger = NewLogger(cmd.ErrOrStderr(), o.Verbose || cfg.UI.Verbose)

	o.Logger.Debug("configuration loaded", "source", source, "threshold", cfg.Report.Threshold)
	return nil
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
