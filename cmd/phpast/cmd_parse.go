package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/phpast/format"
	"github.com/dhamidi/phpast/php/parser"
	"github.com/dhamidi/phpast/project"
)

var entries = map[string]parser.Entry{
	"file":       parser.EntryCompilationUnit,
	"statement":  parser.EntryStatement,
	"expression": parser.EntryExpression,
	"member":     parser.EntryClassMember,
}

func newParseCmd() *cobra.Command {
	var outputFormat string
	var entry string
	var includePositions bool
	var startLine int

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a PHP file and dump the tree",
		Long: `Parse a PHP file and dump the tree to stdout.

If no file is provided, reads PHP source from stdin. The default format
comes from phpast.toml ("output"), or "tree" without one.

Formats: ` + strings.Join(format.Names(), ", ") + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat == "" {
				proj, err := project.Load()
				if err != nil {
					return err
				}
				outputFormat = proj.Config.Output
			}

			e, ok := entries[entry]
			if !ok {
				return fmt.Errorf("unknown entry %q (expected file, statement, expression or member)", entry)
			}

			filename, data, err := readSource(args)
			if err != nil {
				return err
			}

			node, err := parser.Parse(data,
				parser.WithFile(filename),
				parser.WithEntry(e),
				parser.WithStartLine(startLine),
			)
			if err != nil {
				return err
			}

			encoder, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}
			if tree, ok := encoder.(*format.TreeEncoder); ok {
				tree.Positions = includePositions
			}
			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().StringVarP(&entry, "entry", "e", "file", "parse a fragment: file, statement, expression or member")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include positions in tree output")
	cmd.Flags().IntVar(&startLine, "line", 1, "line number of the first line of input")

	return cmd
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "List the tokens and trivia of a PHP file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, data, err := readSource(args)
			if err != nil {
				return err
			}
			node, err := parser.Parse(data, parser.WithFile(filename))
			if err != nil {
				return err
			}
			return format.NewTokenEncoder(os.Stdout).Encode(node)
		},
	}
}
