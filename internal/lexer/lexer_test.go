package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theta-lang/thetac/internal/lexer"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	ks := make([]lexer.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestMultiCharOperatorsNeverSplit(t *testing.T) {
	toks := lexer.New("a == b").Tokenize()
	require.Len(t, toks, 3)
	assert.Equal(t, lexer.OPERATOR, toks[1].Kind)
	assert.Equal(t, "==", toks[1].Lexeme)
}

func TestFuncDeclarationArrow(t *testing.T) {
	toks := lexer.New("() -> 10").Tokenize()
	var found bool
	for _, tok := range toks {
		if tok.Kind == lexer.FUNC_DECLARATION {
			found = true
			assert.Equal(t, "->", tok.Lexeme)
		}
	}
	assert.True(t, found, "expected a FUNC_DECLARATION token")
}

func TestKeywordsAndBooleans(t *testing.T) {
	toks := lexer.New("link capsule if else struct enum return true false").Tokenize()
	for i := 0; i < 7; i++ {
		assert.Equal(t, lexer.KEYWORD, toks[i].Kind, toks[i].Lexeme)
	}
	assert.Equal(t, lexer.BOOLEAN, toks[7].Kind)
	assert.Equal(t, lexer.BOOLEAN, toks[8].Kind)
}

func TestStringLiteralAcrossNewline(t *testing.T) {
	toks := lexer.New("'hello\nworld'").Tokenize()
	require.Len(t, toks, 1)
	assert.Equal(t, lexer.STRING, toks[0].Kind)
	assert.Equal(t, "'hello\nworld'", toks[0].Lexeme)
}

func TestLineAndBlockComments(t *testing.T) {
	toks := lexer.New("x // a comment\n/- block\ncomment -/\ny").Tokenize()
	require.Len(t, toks, 2)
	assert.Equal(t, "x", toks[0].Lexeme)
	assert.Equal(t, "y", toks[1].Lexeme)
}

func TestNumericEdgeCaseSecondDot(t *testing.T) {
	toks := lexer.New("1.4.").Tokenize()
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.NUMBER, toks[0].Kind)
	assert.Equal(t, "1.4", toks[0].Lexeme)
	assert.Equal(t, lexer.IDENTIFIER, toks[1].Kind)
	assert.Equal(t, ".", toks[1].Lexeme)
}

func TestUnhandledCharacterDoesNotPanic(t *testing.T) {
	toks := lexer.New("a ` b").Tokenize()
	assert.Equal(t, []lexer.Kind{lexer.IDENTIFIER, lexer.UNHANDLED, lexer.IDENTIFIER}, kinds(toks))
}

func TestPositionsMonotonic(t *testing.T) {
	toks := lexer.New("abc\ndef ghi").Tokenize()
	prevLine, prevCol := 0, 0
	for _, tok := range toks {
		if tok.Pos.Line < prevLine || (tok.Pos.Line == prevLine && tok.Pos.Column < prevCol) {
			t.Fatalf("non-monotonic position at %v", tok)
		}
		prevLine, prevCol = tok.Pos.Line, tok.Pos.Column
	}
	assert.Equal(t, 2, toks[len(toks)-1].Pos.Line)
}

func TestPrecedenceOperatorsLexedWhole(t *testing.T) {
	for _, op := range []string{"==", "!=", "<=", ">=", "**", "+=", "-=", "*=", "=>", "->", "&&", "||"} {
		toks := lexer.New("a " + op + " b").Tokenize()
		require.Len(t, toks, 3, op)
		assert.Equal(t, op, toks[1].Lexeme, op)
	}
}
