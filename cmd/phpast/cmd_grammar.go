package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/phpast/php/parser"
)

func newGrammarCmd() *cobra.Command {
	var entry string
	var verify bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the PHP grammar as EBNF",
		Long: `Print the rules reachable from an entry rule in the EBNF notation of
golang.org/x/exp/ebnf. With --verify the rendered grammar is checked
instead of printed.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := parser.Grammar()
			if verify {
				if err := g.VerifyEBNF(entry); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules ok\n", entry, len(g.Rules()))
				return nil
			}

			text, err := g.EBNF(entry)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&entry, "entry", string(parser.EntryCompilationUnit), "entry rule")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the rendered grammar with ebnf.Verify")

	return cmd
}
