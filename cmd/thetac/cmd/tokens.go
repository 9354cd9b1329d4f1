package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theta-lang/thetac/pkg/compiler"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Dump a source file's token stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		comp := compiler.New(nil)
		for _, t := range comp.Tokens(string(content)) {
			fmt.Println(t)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
