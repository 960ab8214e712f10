package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calcbench/internal/catalog"
)

// CalculationInfo describes one registered calculation.
type CalculationInfo struct {
	Name        string `json:"name"`
	Signature   string `json:"signature"`
	Description string `json:"description,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered calculations and their signatures",
		Long: `List every registered calculation with its parameter kinds.

Kinds: int32, int64, float32, fraction ("n/d"), decimal ("x.y"), and
...int32 for a trailing list of any number of int32 values.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCalculations(rootOpts, cmd)
		},
	}

	return cmd
}

func listCalculations(opts *RootOptions, cmd *cobra.Command) error {
	entries := catalog.Default().Entries()

	infos := make([]CalculationInfo, len(entries))
	width := 0
	for i, e := range entries {
		infos[i] = CalculationInfo{
			Name:        e.Name,
			Signature:   e.Signature().String(),
			Description: e.Description,
		}
		if n := len(e.Name) + len(infos[i].Signature); n > width {
			width = n
		}
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
		return formatter.Success(infos)
	}

	w := cmd.OutOrStdout()
	for _, info := range infos {
		fmt.Fprintf(w, "%-*s  %s\n", width, info.Name+info.Signature, info.Description)
	}
	return nil
}
