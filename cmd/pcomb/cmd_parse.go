package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/pcomb/combinator"
	"github.com/dhamidi/pcomb/format"
	"github.com/dhamidi/pcomb/grammars"
)

// errParseFailed is returned after a failed parse has been reported, so
// that the process exits with status 1 without printing it twice.
var errParseFailed = errors.New("parse failed")

func newParseCmd(gs *globalState) *cobra.Command {
	var grammarName string
	var outputFormat string
	var input string
	var all bool
	var requireEOF bool
	var trace bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a file, --input or stdin with a grammar and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if grammarName == "" {
				grammarName = gs.settings.Grammar
			}
			if grammarName == "" {
				return fmt.Errorf("no grammar given: use --grammar or set grammar in pcomb.toml (available: %v)", grammars.Names())
			}
			g, ok := grammars.Lookup(grammarName)
			if !ok {
				return fmt.Errorf("unknown grammar %q (available: %v)", grammarName, grammars.Names())
			}

			if !cmd.Flags().Changed("format") {
				outputFormat = gs.settings.Format
			}
			if !cmd.Flags().Changed("eof") {
				requireEOF = gs.settings.RequireEOF
			}
			prune := gs.settings.Prune && !all

			encoder, err := format.New(outputFormat, cmd.OutOrStdout(), gs.colored())
			if err != nil {
				return err
			}

			text, err := readInput(cmd, args, input)
			if err != nil {
				return err
			}

			var opts []combinator.RunOption
			if requireEOF {
				opts = append(opts, combinator.RequireEOF())
			}
			if trace {
				opts = append(opts, combinator.WithLogger(commonlog.GetLogger("pcomb.run")))
			}

			out := combinator.Run(g.Root, text, opts...)
			if prune && out.Node != nil {
				out.Node = out.Node.Prune()
			}

			if err := encoder.Encode(out); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if !out.OK() {
				return errParseFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarName, "grammar", "g", "", "grammar to parse with (see pcomb grammars)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, yaml, tree)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "parse this text instead of a file")
	cmd.Flags().BoolVar(&all, "all", false, "keep nodes of excluded combinators")
	cmd.Flags().BoolVar(&requireEOF, "eof", true, "fail unless the whole input is consumed")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every combinator attempt (needs -vv)")

	return cmd
}

func readInput(cmd *cobra.Command, args []string, input string) (string, error) {
	if cmd.Flags().Changed("input") {
		return input, nil
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}
	return string(data), nil
}
