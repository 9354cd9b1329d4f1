package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/pkg/compiler"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Dump a source file's parsed AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		input := string(content)

		capsules, err := compiler.Discover(".")
		if err != nil {
			return fmt.Errorf("capsule discovery failed: %w", err)
		}
		comp := compiler.New(capsules)
		src := comp.Parse(input)
		fmt.Print(ast.Dump(src))

		if !comp.Sink.Empty() {
			fmt.Fprint(os.Stderr, diagnostics.FormatAll(comp.Sink.Diagnostics(), input, !noColor))
			return fmt.Errorf("parsing produced %d error(s)", len(comp.Sink.Diagnostics()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(astCmd)
}
