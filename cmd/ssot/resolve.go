package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/ssot/config"
	"github.com/kbukum/ssot/validation"
)

func newResolveCmd(state *rootState) *cobra.Command {
	out := outputFlags{Format: formatJSON}

	cmd := &cobra.Command{
		Use:   "resolve [flags] [-- app flags]",
		Short: "Print the resolved configuration",
		Long: `Print every resolved key. Arguments after -- are parsed as the
command-line source, exactly as the application would receive them.`,
		Example: `  ssot resolve --env production -- --port 8080
  ssot resolve --format table --show-source --mask`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.Validate(out); err != nil {
				return err
			}
			_, appArgs, err := expectPositional(cmd, args, 0)
			if err != nil {
				return err
			}
			return state.run(cmd.Context(), appArgs, func(_ context.Context, r *config.Resolved) error {
				return render(cmd.OutOrStdout(), r, out)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out.Format, "format", "f", formatJSON, "Output format: json, yaml, toml, env or table")
	f.BoolVar(&out.ShowSource, "show-source", false, "Show which source supplied each value")
	f.BoolVar(&out.Mask, "mask", false, "Hide values of keys that look like secrets")
	return cmd
}
