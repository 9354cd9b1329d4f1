package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/pkg/compiler"
)

var (
	outputFile string
	emitTokens bool
	emitAST    bool
	emitWAT    bool
	watchMode  bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a Theta source file to WebAssembly",
	Long: `Compile a Theta program to a WebAssembly module.

The output path defaults to the source path with its extension replaced
by .wasm. Capsules linked by the source are discovered by walking the
working directory for .th files.

Examples:
  # Compile a source file
  thetac compile program.th

  # Compile with a custom output path
  thetac compile program.th -o build/program.wasm

  # Dump intermediate forms
  thetac compile program.th --emitTokens --emitAST --emitWAT

  # Recompile on every change to a .th file in the source's directory
  thetac compile program.th --watch`,
	Args: cobra.ExactArgs(1),
	RunE: compileFile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input>.wasm)")
	rootCmd.PersistentFlags().BoolVar(&emitTokens, "emitTokens", false, "dump the token stream")
	rootCmd.PersistentFlags().BoolVar(&emitAST, "emitAST", false, "dump the parsed AST")
	rootCmd.PersistentFlags().BoolVar(&emitWAT, "emitWAT", false, "dump the generated module as WebAssembly text")
	rootCmd.PersistentFlags().BoolVarP(&watchMode, "watch", "w", false, "recompile whenever a .th file in the source's directory changes")
}

func compileFile(_ *cobra.Command, args []string) error {
	filename := args[0]

	if err := compileOnce(filename); err != nil && !watchMode {
		return err
	}
	if !watchMode {
		return nil
	}

	w, err := compiler.Watch(filename, watchDebounce(), func() {
		fmt.Fprintf(os.Stderr, "-- change detected, recompiling %s\n", filename)
		if err := compileOnce(filename); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", filename, err)
	}
	defer w.Stop()
	select {} // watch until interrupted
}

func compileOnce(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	capsules, err := compiler.Discover(".")
	if err != nil {
		return fmt.Errorf("capsule discovery failed: %w", err)
	}
	comp := compiler.New(capsules)

	if emitTokens {
		for _, t := range comp.Tokens(input) {
			fmt.Println(t)
		}
	}

	res, ok := comp.Compile(input)

	if emitAST && res.Source != nil {
		fmt.Print(ast.Dump(res.Source))
	}

	if !ok {
		fmt.Fprint(os.Stderr, diagnostics.FormatAll(comp.Sink.Diagnostics(), input, !noColor))
		return fmt.Errorf("compilation failed with %d error(s)", len(comp.Sink.Diagnostics()))
	}

	if emitWAT {
		fmt.Print(res.Module.WAT())
	}

	outFile := outputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		outFile = strings.TrimSuffix(filename, ext) + ".wasm"
	}
	if err := os.WriteFile(outFile, res.Wasm, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	fmt.Printf("Compiled %s -> %s (%d bytes)\n", filename, outFile, len(res.Wasm))
	return nil
}

func watchDebounce() time.Duration {
	if v := os.Getenv("THETA_WATCH_DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 200 * time.Millisecond
}
