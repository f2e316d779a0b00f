package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/ssot/config"
	"github.com/kbukum/ssot/errors"
)

func newGetCmd(state *rootState) *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "get KEY [flags] [-- app flags]",
		Short: "Print one resolved value",
		Long:  `Print the value of KEY (case-insensitive). Fails when KEY is not set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, appArgs, err := expectPositional(cmd, args, 1)
			if err != nil {
				return err
			}
			key := positional[0]

			return state.run(cmd.Context(), appArgs, func(_ context.Context, r *config.Resolved) error {
				v, ok := r.Get(key)
				if !ok {
					return errors.KeyNotFound(strings.ToUpper(key))
				}
				line := displayValue(v)
				if showSource {
					origin, _ := r.Origin(key)
					line += "\t" + origin.String()
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), line)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&showSource, "show-source", false, "Also print which source supplied the value")
	return cmd
}
