package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pcomb/grammars"
)

func newGrammarsCmd(gs *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "grammars",
		Short: "List the built-in grammars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, g := range grammars.All() {
				fmt.Fprintf(w, "%s\t%s\n", g.Name, g.Description)
			}
			return w.Flush()
		},
	}
}
