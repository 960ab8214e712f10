package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calcbench/internal/config"
)

// ConfigView is the JSON form of `config show`.
type ConfigView struct {
	Source string         `json:"source,omitempty"`
	Config *config.Config `json:"config"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration after defaults, the config file and
CALCBENCH_* environment variables have been merged.

Text output is valid CUE and can be saved as a starting config file:
  calcbench config show > ~/.config/calcbench/config.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(rootOpts, cmd)
		},
	})

	return cmd
}

func showConfig(opts *RootOptions, cmd *cobra.Command) error {
	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
		return formatter.Success(ConfigView{Source: opts.ConfigSource, Config: opts.Config})
	}

	w := cmd.OutOrStdout()
	if opts.ConfigSource != "" {
		fmt.Fprintf(w, "// loaded from %s\n", opts.ConfigSource)
	} else {
		fmt.Fprintln(w, "// defaults (no config file found)")
	}
	fmt.Fprint(w, config.GenerateCUE(opts.Config))
	return nil
}
