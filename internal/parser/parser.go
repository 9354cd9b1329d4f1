// Package parser implements the Theta recursive-descent parser: it
// consumes a token stream and produces a Source AST, recovering from
// malformed input by emitting a diagnostic and resynchronizing rather than
// aborting.
package parser

import (
	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/lexer"
)

// Parser holds the token cursor and the diagnostic sink it reports into.
type Parser struct {
	c    *cursor
	sink *diagnostics.Sink
}

// New creates a Parser over source text, tokenizing it immediately.
func New(source string, sink *diagnostics.Sink) *Parser {
	toks := lexer.New(source).Tokenize()
	return &Parser{c: newCursor(toks), sink: sink}
}

// Parse runs the grammar's entry production, `source := link* capsule?`,
// and reports a ParseError for any token left over once it is satisfied.
func (p *Parser) Parse() *ast.Source {
	pos := p.startPos()
	src := ast.NewSource(pos)

	for p.c.isKeyword("link") {
		src.Links = append(src.Links, p.parseLink())
	}

	if !p.c.atEnd() {
		src.Value = p.parseCapsuleOrReturn()
	}

	for !p.c.atEnd() {
		tok := p.c.advance()
		p.sink.Add(diagnostics.ParseError, "unexpected leftover token "+tokenDesc(tok), &tok)
	}

	return src
}

func (p *Parser) startPos() lexer.Position {
	if p.c.atEnd() {
		return lexer.Position{Line: 1, Column: 1}
	}
	return p.c.current().Pos
}

func tokenDesc(t lexer.Token) string {
	if t.Lexeme == "" {
		return t.Kind.String()
	}
	return "'" + t.Lexeme + "'"
}

// parseLink handles `link := 'link' Ident`.
func (p *Parser) parseLink() *ast.Link {
	pos := p.c.current().Pos
	p.c.advance() // 'link'
	if !p.c.is(lexer.IDENTIFIER) {
		tok := p.c.current()
		p.sink.Add(diagnostics.SyntaxError, "expected capsule name after 'link'", &tok)
		return ast.NewLink(pos, "")
	}
	name := p.c.advance().Lexeme
	return ast.NewLink(pos, name)
}
