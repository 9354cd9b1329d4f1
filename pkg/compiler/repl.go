package compiler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tetratelabs/wazero"

	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/lexer"
)

// REPL reads lines from In, accumulating a multi-line buffer while any of
// `{`, `(`, `[` remains unclosed, then compiles the buffer directly and
// prints the result. Input is terminated by EOF. One REPL
// holds one long-lived Compilation; the sink is drained between inputs.
type REPL struct {
	Comp    *Compilation
	In      io.Reader
	Out     io.Writer
	History *History // optional
	Color   bool
}

// Run is the REPL main loop.
func (r *REPL) Run() error {
	scanner := bufio.NewScanner(r.In)
	var buffer strings.Builder

	fmt.Fprint(r.Out, "> ")
	for scanner.Scan() {
		buffer.WriteString(scanner.Text())
		buffer.WriteString("\n")

		if openBrackets(buffer.String()) > 0 {
			fmt.Fprint(r.Out, ". ")
			continue
		}

		input := buffer.String()
		buffer.Reset()
		if strings.TrimSpace(input) != "" {
			r.eval(input)
		}
		fmt.Fprint(r.Out, "> ")
	}
	return scanner.Err()
}

func (r *REPL) eval(input string) {
	r.Comp.Reset()
	res, ok := r.Comp.Compile(input)
	diags := r.Comp.Sink.Diagnostics()
	if r.History != nil {
		_ = r.History.Append(input, len(diags))
	}
	if !ok {
		fmt.Fprint(r.Out, diagnostics.FormatAll(diags, input, r.Color))
		return
	}
	r.execute(res.Wasm)
}

// execute instantiates the emitted module and calls its zero-argument
// entry point, printing the value it leaves on the stack. A module with no
// zero-argument main/main0 export prints its export list instead of a
// value; a module the host cannot instantiate (such as one using
// stringref, which the host does not enable) prints the host's error.
func (r *REPL) execute(wasm []byte) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := rt.Instantiate(ctx, wasm)
	if err != nil {
		fmt.Fprintf(r.Out, "(module not runnable by this host: %v)\n", err)
		return
	}
	defer mod.Close(ctx)

	for _, name := range []string{"main", "main0"} {
		fn := mod.ExportedFunction(name)
		if fn == nil || len(fn.Definition().ParamTypes()) != 0 {
			continue
		}
		out, err := fn.Call(ctx)
		if err != nil {
			fmt.Fprintf(r.Out, "(call failed: %v)\n", err)
			return
		}
		if len(out) > 0 {
			fmt.Fprintf(r.Out, "%d\n", int64(out[0]))
		}
		return
	}

	var names []string
	for name := range mod.ExportedFunctionDefinitions() {
		names = append(names, name)
	}
	fmt.Fprintf(r.Out, "(compiled %d bytes; exports: %s)\n", len(wasm), strings.Join(names, ", "))
}

// openBrackets reports how many brace/paren/bracket tokens remain
// unclosed in source. It lexes rather than counting characters so
// brackets inside string literals and comments do not affect the depth.
func openBrackets(source string) int {
	depth := 0
	for _, t := range lexer.New(source).Tokenize() {
		switch t.Kind {
		case lexer.BRACE_OPEN, lexer.PAREN_OPEN, lexer.BRACKET_OPEN:
			depth++
		case lexer.BRACE_CLOSE, lexer.PAREN_CLOSE, lexer.BRACKET_CLOSE:
			depth--
		}
	}
	return depth
}
