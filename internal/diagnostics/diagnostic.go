// Package diagnostics implements the compiler's error taxonomy and the
// process-wide (per-Compilation) sink that collects them.
package diagnostics

import (
	"fmt"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/lexer"
)

// Kind is the closed diagnostic taxonomy.
type Kind int

const (
	SyntaxError Kind = iota
	ParseError
	LinkageError
	TypeError
	IllegalReassignmentError
	ReferenceError
	IntegrityError
)

var kindNames = [...]string{
	"SyntaxError", "ParseError", "LinkageError", "TypeError",
	"IllegalReassignmentError", "ReferenceError", "IntegrityError",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is a single compiler error: a kind, a human message, and
// optionally the offending token or a pair of offending type-declaration
// subtrees for type errors.
type Diagnostic struct {
	Kind       Kind
	Message    string
	Token      *lexer.Token
	TypeA      *ast.TypeDeclaration
	TypeB      *ast.TypeDeclaration
	Suggestion string // optional "did you mean <name>?" text, see Suggest
}

func (d Diagnostic) Error() string { return d.Message }

// Pos returns the diagnostic's anchor position, or the zero position if
// none is attached (e.g. a whole-program IntegrityError).
func (d Diagnostic) Pos() lexer.Position {
	if d.Token != nil {
		return d.Token.Pos
	}
	return lexer.Position{}
}
