package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pcomb/ebnf"
	"github.com/dhamidi/pcomb/grammars"
)

func newEbnfCmd(gs *globalState) *cobra.Command {
	var check bool
	var startProduction string

	cmd := &cobra.Command{
		Use:   "ebnf <grammar>",
		Short: "Print a built-in grammar as EBNF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ok := grammars.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown grammar %q (available: %v)", args[0], grammars.Names())
			}

			if check {
				if err := ebnf.Verify(g.Root, startProduction); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", g.Name)
				return nil
			}

			text, err := ebnf.Describe(g.Root, startProduction)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "verify the rendered grammar instead of printing it")
	cmd.Flags().StringVar(&startProduction, "start", "", "name of the start production (default: the root's name)")

	return cmd
}

// printErrors prints one line per error when err wraps an error list.
func printErrors(w io.Writer, err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(w, err)
}
