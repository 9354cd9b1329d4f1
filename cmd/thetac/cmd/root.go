package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "thetac",
	Short: "Theta compiler",
	Long: `thetac compiles the Theta language to WebAssembly.

Theta is a small, strongly typed, expression-oriented functional language
whose top-level organizational unit is a capsule: a named namespace
bundling functions, constants, structs, and enums. Source files compile
to WebAssembly modules executable by any host runtime with the stringref
feature enabled.

Running thetac with no arguments launches a REPL.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// `thetac file.th` compiles the file; no arguments launches the
		// REPL.
		if len(args) == 1 {
			return compileFile(cmd, args)
		}
		return runRepl(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	// Optional defaults (history path, color, watch debounce) come from a
	// .thetarc env file in the working directory when present.
	_ = godotenv.Load(".thetarc")
	// The flag defaults below were read from the environment at package
	// init, before .thetarc was loaded; refresh them so its values apply.
	// Flags given on the command line still override them.
	noColor = envBool("THETA_NO_COLOR")
	historyPath = defaultHistoryPath()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", envBool("THETA_NO_COLOR"), "disable colorized diagnostics")
}

func envBool(key string) bool {
	v := os.Getenv(key)
	return v == "1" || v == "true"
}
