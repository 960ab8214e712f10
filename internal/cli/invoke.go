package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calcbench/internal/engine"
	"github.com/roach88/calcbench/internal/repl"
	"github.com/roach88/calcbench/internal/report"
)

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoke <line>",
		Short: "Run a single calculation line and exit",
		Long: `Run one input line exactly as the interactive loop would, then exit.

The line is passed as a single argument, so quote it if it contains spaces.

Exit codes:
  0 - The calculation ran
  1 - The calculation failed
  2 - The line was rejected (unknown name, malformed input, bad literal)

Examples:
  calcbench invoke add,2,3
  calcbench invoke fib,1-40
  calcbench invoke simplify,6/8 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Format == "json" {
				return invokeJSON(rootOpts, args[0], cmd)
			}
			return invokeText(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func invokeText(opts *RootOptions, line string, cmd *cobra.Command) error {
	session := repl.New(newEngine(opts), nil, cmd.OutOrStdout(),
		repl.WithThreshold(opts.Config.Report.Threshold),
		repl.WithLogger(opts.Logger),
	)

	if err := session.Handle(line); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), repl.InvalidInputNotice)
		return lineExitError(err)
	}
	return nil
}

func invokeJSON(opts *RootOptions, line string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    "json",
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	plan, records, err := newEngine(opts).Dispatch(line)
	if err != nil {
		formatter.VerboseLog("line %q failed: %v", line, err)
		details := map[string]any{"line": line}
		if plan != nil {
			details["trace_id"] = plan.LineID
		}
		if ferr := formatter.Error(string(engine.CodeOf(err)), err.Error(), details); ferr != nil {
			return ferr
		}
		return lineExitError(err)
	}

	formatter.VerboseLog("line %s: %s ran %d executions", plan.LineID, plan.Entry.Name, len(records))
	summary := report.Summarize(plan.Entry.Name, records, opts.Config.Report.Threshold)
	return formatter.SuccessWithTrace(summary, plan.LineID)
}

// lineExitError maps an engine error to an exit code: a failed calculation
// is a failure, anything rejected before execution is a command error.
func lineExitError(err error) error {
	if engine.IsCalculationFailed(err) {
		return WrapExitError(ExitFailure, "calculation failed", err)
	}
	return WrapExitError(ExitCommandError, "invalid input", err)
}
