package optimizer

import (
	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
)

// Run executes passes in order over src. After each pass it
// consults sink and aborts the remaining passes if that pass produced any
// diagnostic, returning false; it returns true if every pass completed
// clean.
func Run(passes []Pass, src *ast.Source, sink *diagnostics.Sink) bool {
	for _, pass := range passes {
		before := len(sink.Diagnostics())
		state := NewState()
		src.Value = traverse(src.Value, pass, state)
		if len(sink.Diagnostics()) > before {
			return false
		}
	}
	return true
}
