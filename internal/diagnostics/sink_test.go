package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/lexer"
)

func TestSinkCollectsInOrder(t *testing.T) {
	s := diagnostics.NewSink()
	tok := lexer.Token{Pos: lexer.Position{Line: 2, Column: 3}}
	s.Add(diagnostics.SyntaxError, "bad identifier", &tok)
	s.AddTypeError("mismatch", &tok, ast.NewNumberType(), ast.NewStringType())

	assert.False(t, s.Empty())
	assert.Equal(t, 1, s.Count(diagnostics.SyntaxError))
	assert.Equal(t, 1, s.Count(diagnostics.TypeError))
	assert.Len(t, s.Diagnostics(), 2)
}

func TestSinkClearDrains(t *testing.T) {
	s := diagnostics.NewSink()
	s.Add(diagnostics.ReferenceError, "undefined", nil)
	s.Clear()
	assert.True(t, s.Empty())
}

func TestFormatIncludesCaretAndContext(t *testing.T) {
	tok := lexer.Token{Pos: lexer.Position{Line: 2, Column: 3}}
	d := diagnostics.Diagnostic{Kind: diagnostics.ReferenceError, Message: "undefined: x", Token: &tok}
	out := diagnostics.Format(d, "capsule T {\n  x + 1\n}\n", false)
	assert.Contains(t, out, "ReferenceError")
	assert.Contains(t, out, "undefined: x")
	assert.Contains(t, out, "^")
}

func TestSuggestFindsCloseName(t *testing.T) {
	got := diagnostics.Suggest("fibonaci", []string{"fibonacci", "factorial", "main"})
	assert.Equal(t, "fibonacci", got)
}

func TestSuggestReturnsEmptyWhenNothingClose(t *testing.T) {
	got := diagnostics.Suggest("zzz", []string{"fibonacci", "factorial"})
	assert.Equal(t, "", got)
}
