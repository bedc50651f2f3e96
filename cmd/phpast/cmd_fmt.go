package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/phpast/format"
	"github.com/dhamidi/phpast/php/parser"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool
	var trim bool
	var maxBlank int

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Clean up whitespace in a PHP file",
		Long: `Print a PHP file with trailing blanks removed and long runs of empty
lines collapsed. Only whitespace and comments between tokens change;
string contents, heredocs and inline HTML are left as they are. The file
must parse.

If no file is provided, reads PHP source from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && fmtOverwrite {
				return fmt.Errorf("-w requires a file argument")
			}

			filename, source, err := readSource(args)
			if err != nil {
				return err
			}

			node, err := parser.Parse(source, parser.WithFile(filename))
			if err != nil {
				return err
			}

			enc := format.NewSourceEncoder(nil)
			enc.TrimTrailingSpace = trim
			enc.MaxBlankLines = maxBlank
			output, err := enc.MarshalText(node)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(filename, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&trim, "trim", true, "remove blanks at the end of lines")
	cmd.Flags().IntVar(&maxBlank, "max-blank-lines", 2, "collapse longer runs of empty lines (0 keeps them)")

	return cmd
}
