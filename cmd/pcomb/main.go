package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newRootCmd(gs *globalState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pcomb",
		Short:         "Run and inspect parser-combinator grammars",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return gs.init()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&gs.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.BoolVar(&gs.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&gs.dir, "dir", ".", "directory to read pcomb.toml or pcomb.yaml from")
	flags.StringVar(&gs.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(gs))
	rootCmd.AddCommand(newGrammarsCmd(gs))
	rootCmd.AddCommand(newEbnfCmd(gs))
	rootCmd.AddCommand(newLSPCmd(gs))
	rootCmd.AddCommand(newUICmd(gs))

	return rootCmd
}

func main() {
	rootCmd := newRootCmd(newGlobalState())
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errParseFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
