package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theta-lang/thetac/pkg/compiler"
)

var historyPath string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Theta session",
	Long: `Read Theta expressions from standard input, compile each buffer as
soon as its brackets balance, and print the result.

A multi-line buffer accumulates while any of { ( [ remains unclosed.
Input ends at EOF (ctrl-d). Accepted buffers are persisted to a local
SQLite history file so a session can be inspected or replayed later.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&historyPath, "history", defaultHistoryPath(), "REPL history database path (empty disables history)")
}

func runRepl(_ *cobra.Command, _ []string) error {
	capsules, err := compiler.Discover(".")
	if err != nil {
		return fmt.Errorf("capsule discovery failed: %w", err)
	}

	var history *compiler.History
	if historyPath != "" {
		history, err = compiler.OpenHistory(historyPath)
		if err != nil {
			// A broken history file degrades the session, it does not end it.
			fmt.Fprintf(os.Stderr, "warning: REPL history disabled: %v\n", err)
		} else {
			defer history.Close()
		}
	}

	repl := &compiler.REPL{
		Comp:    compiler.New(capsules),
		In:      os.Stdin,
		Out:     os.Stdout,
		History: history,
		Color:   !noColor,
	}
	return repl.Run()
}

func defaultHistoryPath() string {
	if v := os.Getenv("THETA_HISTORY"); v != "" {
		return v
	}
	return ".theta_history.db"
}
