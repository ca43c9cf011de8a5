package main

import (
	"fmt"
	"os"

	"github.com/pycst/pycst/python/cst"
	"github.com/pycst/pycst/python/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var backendName string
	var outputFormat string
	var expression bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a Python file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			backend, err := backendByName(backendName)
			if err != nil {
				return err
			}
			opts := []parser.Option{
				parser.WithFile(filename),
				parser.WithBackend(backend),
			}

			var node cst.Node
			if expression {
				expr, err := parser.ParseExpression(data, opts...)
				if err != nil {
					return fmt.Errorf("parse expression: %w", err)
				}
				node = expr
			} else {
				module, err := parser.Parse(data, opts...)
				if err != nil {
					return fmt.Errorf("parse: %w", err)
				}
				node = module
			}

			switch outputFormat {
			case "tree":
				fmt.Print(cst.Dump(node))
			case "code":
				fmt.Print(cst.Render(node))
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "Output format: tree or code")
	cmd.Flags().StringVarP(&backendName, "backend", "b", "fast", "Parser backend: fast or reference")
	cmd.Flags().BoolVarP(&expression, "expression", "e", false, "Parse the input as a single expression")
	return cmd
}

func backendByName(name string) (parser.Backend, error) {
	switch name {
	case "fast":
		return parser.BackendFast, nil
	case "reference":
		return parser.BackendReference, nil
	}
	return 0, fmt.Errorf("unknown backend: %s", name)
}
