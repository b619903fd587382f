package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/pcomb/lsp"
)

func newLSPCmd(gs *globalState) *cobra.Command {
	var grammarName string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server reporting parse failures of open documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if grammarName == "" {
				grammarName = gs.settings.Grammar
			}
			server, err := lsp.NewServer(version, grammarName)
			if err != nil {
				return err
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVarP(&grammarName, "grammar", "g", "", "grammar documents are parsed with")

	return cmd
}
