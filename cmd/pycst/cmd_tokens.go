package main

import (
	"fmt"
	"os"

	"github.com/pycst/pycst/python/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var showTrivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a Python file and print the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			toks, err := parser.Tokenize(data, parser.Py3)
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}

			for _, tok := range toks {
				fmt.Printf("%-12s %-10s %q", tok.Span.Start, tok.Kind, tok.Text)
				if showTrivia && (tok.Leading != "" || tok.Trailing != "") {
					fmt.Printf("  leading=%q trailing=%q", tok.Leading, tok.Trailing)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showTrivia, "trivia", "t", false, "Show leading and trailing trivia per token")
	return cmd
}
