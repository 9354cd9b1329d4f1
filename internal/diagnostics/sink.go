package diagnostics

import (
	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/lexer"
)

// Sink collects diagnostics as they are produced across a compilation's
// phases. A Sink is a value owned by a single Compilation rather than
// package-level state, so two Compilations never race on each other's
// errors.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink { return &Sink{} }

// Add appends a diagnostic of the given kind and message, optionally
// anchored to a token.
func (s *Sink) Add(kind Kind, message string, tok *lexer.Token) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Kind: kind, Message: message, Token: tok})
}

// AddTypeError appends a TypeError diagnostic carrying both offending type
// subtrees.
func (s *Sink) AddTypeError(message string, tok *lexer.Token, want, got *ast.TypeDeclaration) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Kind: TypeError, Message: message, Token: tok, TypeA: want, TypeB: got,
	})
}

// AddSuggested appends a diagnostic with an attached "did you mean"
// suggestion (see Suggest).
func (s *Sink) AddSuggested(kind Kind, message string, tok *lexer.Token, suggestion string) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Kind: kind, Message: message, Token: tok, Suggestion: suggestion})
}

// Diagnostics returns every diagnostic collected so far, in emission order.
func (s *Sink) Diagnostics() []Diagnostic { return s.diagnostics }

// Empty reports whether no diagnostic has been collected.
func (s *Sink) Empty() bool { return len(s.diagnostics) == 0 }

// Count returns how many diagnostics of a given kind have been collected.
func (s *Sink) Count(kind Kind) int {
	n := 0
	for _, d := range s.diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Clear drains the sink. Invoked between REPL inputs so one buffer's
// diagnostics never bleed into the next.
func (s *Sink) Clear() {
	s.diagnostics = s.diagnostics[:0]
}
