package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calcbench/internal/bench"
	"github.com/roach88/calcbench/internal/catalog"
	"github.com/roach88/calcbench/internal/engine"
	"github.com/roach88/calcbench/internal/repl"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	NoWarmup bool
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read calculations from stdin interactively",
		Long: `Start the interactive loop (the default when no command is given).

Each line names a calculation followed by its arguments, all separated by
",". Type "exit" to quit.

Example session:
  Enter calculation: add,2,3
  The answer is: 5
  Execution time: 0.412 microseconds`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.NoWarmup {
				opts.Config.Warmup.Enabled = false
			}
			return runRepl(cmd, opts.RootOptions)
		},
	}

	cmd.Flags().BoolVar(&opts.NoWarmup, "no-warmup", false, "skip the warm-up loop and CPU pinning")

	return cmd
}

// newEngine builds an engine over the default catalog.
func newEngine(opts *RootOptions) *engine.Engine {
	return engine.New(catalog.Default(),
		engine.WithLogger(opts.Logger),
		engine.WithMaxBatch(opts.Config.Engine.MaxBatch),
	)
}

func runRepl(cmd *cobra.Command, opts *RootOptions) error {
	cfg := opts.Config
	w := cmd.OutOrStdout()

	if cfg.Warmup.Enabled {
		seed := bench.Prepare(cmd.Context(), bench.Options{
			Duration: cfg.Warmup.Duration,
			CPU:      cfg.Warmup.PinCPU,
			Logger:   opts.Logger,
		})
		fmt.Fprintf(w, "Stopwatch seed: %d\n", seed)
	}

	session := repl.New(newEngine(opts), cmd.InOrStdin(), w,
		repl.WithPrompt(cfg.UI.Prompt),
		repl.WithColor(cfg.UI.Color),
		repl.WithThreshold(cfg.Report.Threshold),
		repl.WithLogger(opts.Logger),
	)
	session.Banner()

	if err := session.Run(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "input failed", err)
	}
	return nil
}
