package parser

import "github.com/theta-lang/thetac/internal/lexer"

// cursor is an index into a pre-lexed token slice. Theta programs are
// small enough that the whole token stream is produced up front by the
// lexer; cursor only needs to supply lookahead and backtracking over that
// fixed slice.
type cursor struct {
	tokens []lexer.Token
	pos    int
}

func newCursor(tokens []lexer.Token) *cursor {
	return &cursor{tokens: tokens}
}

// current returns the token at the cursor, or a synthetic EOF-ish token
// past the end of input.
func (c *cursor) current() lexer.Token {
	if c.pos >= len(c.tokens) {
		return lexer.Token{Kind: lexer.UNHANDLED}
	}
	return c.tokens[c.pos]
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.tokens)
}

func (c *cursor) peek(offset int) lexer.Token {
	idx := c.pos + offset
	if idx >= len(c.tokens) || idx < 0 {
		return lexer.Token{Kind: lexer.UNHANDLED}
	}
	return c.tokens[idx]
}

func (c *cursor) advance() lexer.Token {
	tok := c.current()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return tok
}

func (c *cursor) is(k lexer.Kind) bool {
	return c.current().Kind == k
}

func (c *cursor) isKeyword(word string) bool {
	t := c.current()
	return t.Kind == lexer.KEYWORD && t.Lexeme == word
}

func (c *cursor) isOperator(lexeme string) bool {
	t := c.current()
	return (t.Kind == lexer.OPERATOR || t.Kind == lexer.ASSIGNMENT) && t.Lexeme == lexeme
}

// mark/reset implement the backtracking needed to speculatively try a type
// annotation after an identifier before committing to it (see
// tryTypeAnnotation in types.go).
func (c *cursor) mark() int      { return c.pos }
func (c *cursor) reset(mark int) { c.pos = mark }
