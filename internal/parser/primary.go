package parser

import (
	"strings"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/lexer"
)

// parsePrimary handles
// `primary := literal | identifier funcInvocation? | ':' symbol |
//             '[' list ']' | '{' dict-or-tuple '}' | '(' exprList ')'`.
func (p *Parser) parsePrimary() ast.Node {
	tok := p.c.current()
	switch tok.Kind {
	case lexer.NUMBER:
		p.c.advance()
		return ast.NewNumberLiteral(tok.Pos, tok.Lexeme)
	case lexer.STRING:
		p.c.advance()
		return ast.NewStringLiteral(tok.Pos, tok.Lexeme)
	case lexer.BOOLEAN:
		p.c.advance()
		return ast.NewBooleanLiteral(tok.Pos, tok.Lexeme)
	case lexer.COLON:
		p.c.advance()
		return p.parseSymbol(tok.Pos)
	case lexer.BRACKET_OPEN:
		return p.parseListLiteral()
	case lexer.BRACE_OPEN:
		return p.parseBraceExpression()
	case lexer.PAREN_OPEN:
		return p.parseParenExpression()
	case lexer.IDENTIFIER:
		return p.parseIdentifierOrCall()
	}

	p.sink.Add(diagnostics.SyntaxError, "unexpected token "+tokenDesc(tok), &tok)
	p.c.advance()
	return ast.NewNumberLiteral(tok.Pos, "0")
}

func (p *Parser) parseSymbol(pos lexer.Position) *ast.Symbol {
	if !p.c.is(lexer.IDENTIFIER) {
		tok := p.c.current()
		p.sink.Add(diagnostics.SyntaxError, "expected symbol name after ':'", &tok)
		return ast.NewSymbol(pos, "")
	}
	name := p.c.advance().Lexeme
	return ast.NewSymbol(pos, name)
}

func (p *Parser) parseIdentifierOrCall() ast.Node {
	tok := p.c.advance()
	p.validateIdentifierName(tok.Lexeme, tok.Pos)
	ident := ast.NewIdentifier(tok.Pos, tok.Lexeme)

	if t, ok := p.tryTypeAnnotation(); ok {
		ident.Type = t
	}

	if p.c.is(lexer.PAREN_OPEN) {
		args := p.parseArgList()
		return ast.NewFunctionInvocation(tok.Pos, ident, args)
	}
	return ident
}

// parseIdentifierWithType parses a bare identifier that must carry a type
// annotation (struct fields, function parameters).
func (p *Parser) parseIdentifierWithType() *ast.Identifier {
	tok := p.c.current()
	if !p.c.is(lexer.IDENTIFIER) {
		p.sink.Add(diagnostics.SyntaxError, "expected identifier", &tok)
		p.c.advance()
		return ast.NewIdentifier(tok.Pos, "")
	}
	p.c.advance()
	p.validateIdentifierName(tok.Lexeme, tok.Pos)
	ident := ast.NewIdentifier(tok.Pos, tok.Lexeme)
	if t, ok := p.tryTypeAnnotation(); ok {
		ident.Type = t
	}
	if p.c.is(lexer.COMMA) {
		p.c.advance()
	}
	return ident
}

func (p *Parser) parseArgList() *ast.AstNodeList {
	pos := p.c.current().Pos
	p.c.advance() // '('
	list := ast.NewAstNodeList(pos)
	for !p.c.is(lexer.PAREN_CLOSE) && !p.c.atEnd() {
		list.Elements = append(list.Elements, p.parseAssignment())
		if p.c.is(lexer.COMMA) {
			p.c.advance()
		} else {
			break
		}
	}
	p.expect(lexer.PAREN_CLOSE, "expected ')' to close argument list")
	return list
}

// parseParenExpression handles the parenthesized expression list:
// zero elements or more than one produce an AstNodeList; exactly one
// produces that single inner expression.
func (p *Parser) parseParenExpression() ast.Node {
	pos := p.c.current().Pos
	p.c.advance() // '('
	var elems []ast.Node
	for !p.c.is(lexer.PAREN_CLOSE) && !p.c.atEnd() {
		elems = append(elems, p.parseAssignment())
		if p.c.is(lexer.COMMA) {
			p.c.advance()
		} else {
			break
		}
	}
	p.expect(lexer.PAREN_CLOSE, "expected ')'")
	if len(elems) == 1 {
		return elems[0]
	}
	list := ast.NewAstNodeList(pos)
	list.Elements = elems
	return list
}

func (p *Parser) parseListLiteral() ast.Node {
	pos := p.c.current().Pos
	p.c.advance() // '['
	list := ast.NewList(pos)
	for !p.c.is(lexer.BRACKET_CLOSE) && !p.c.atEnd() {
		list.Elements = append(list.Elements, p.parseAssignment())
		if p.c.is(lexer.COMMA) {
			p.c.advance()
		} else {
			break
		}
	}
	p.expect(lexer.BRACKET_CLOSE, "expected ']' to close list literal")
	return list
}

// parseBraceExpression disambiguates `{ k: v, ... }` (Dictionary),
// `{ a, b }` (Tuple) and `{ stmts... }` (Block) by lookahead.
func (p *Parser) parseBraceExpression() ast.Node {
	pos := p.c.current().Pos

	if p.looksLikeDictionary() {
		return p.parseDictionary(pos)
	}
	if p.looksLikeTuple() {
		return p.parseTuple(pos)
	}
	return p.parseBlockRaw()
}

// looksLikeDictionary reports whether the brace body begins with a symbol
// key immediately followed by ':' — distinguishing `{:ok: 'x'}` (dict)
// from `{:ok, 'x'}` (tuple) and `{1 + 2}` (block).
func (p *Parser) looksLikeDictionary() bool {
	if !p.c.is(lexer.BRACE_OPEN) {
		return false
	}
	return p.c.peek(1).Kind == lexer.COLON &&
		p.c.peek(2).Kind == lexer.IDENTIFIER &&
		p.c.peek(3).Kind == lexer.COLON
}

// looksLikeTuple reports whether the brace body is a comma-separated
// expression list with no top-level statement/assignment shape.
func (p *Parser) looksLikeTuple() bool {
	if !p.c.is(lexer.BRACE_OPEN) {
		return false
	}
	depth := 0
	for i := 1; ; i++ {
		tok := p.c.peek(i)
		switch tok.Kind {
		case lexer.UNHANDLED:
			return false
		case lexer.BRACE_OPEN, lexer.PAREN_OPEN, lexer.BRACKET_OPEN:
			depth++
		case lexer.BRACE_CLOSE:
			if depth == 0 {
				return false // reached the end without a top-level comma
			}
			depth--
		case lexer.PAREN_CLOSE, lexer.BRACKET_CLOSE:
			depth--
		case lexer.COMMA:
			if depth == 0 {
				return true
			}
		case lexer.ASSIGNMENT:
			if depth == 0 {
				return false // an '=' at top level means this is a block of statements
			}
		}
		if i > 4096 {
			return false
		}
	}
}

func (p *Parser) parseDictionary(pos lexer.Position) ast.Node {
	p.c.advance() // '{'
	dict := ast.NewDictionary(pos)
	for !p.c.is(lexer.BRACE_CLOSE) && !p.c.atEnd() {
		p.expect(lexer.COLON, "expected ':' before dictionary key")
		keyTok := p.c.current()
		key := p.parseSymbol(keyTok.Pos)
		p.expect(lexer.COLON, "expected ':' between dictionary key and value")
		value := p.parseAssignment()
		tuple := ast.NewTuple(keyTok.Pos)
		tuple.Elements = []ast.Node{key, value}
		dict.Elements = append(dict.Elements, tuple)
		if p.c.is(lexer.COMMA) {
			p.c.advance()
		} else {
			break
		}
	}
	p.expect(lexer.BRACE_CLOSE, "expected '}' to close dictionary")
	return dict
}

func (p *Parser) parseTuple(pos lexer.Position) ast.Node {
	p.c.advance() // '{'
	tuple := ast.NewTuple(pos)
	for !p.c.is(lexer.BRACE_CLOSE) && !p.c.atEnd() {
		tuple.Elements = append(tuple.Elements, p.parseAssignment())
		if p.c.is(lexer.COMMA) {
			p.c.advance()
		} else {
			break
		}
	}
	p.expect(lexer.BRACE_CLOSE, "expected '}' to close tuple")
	return tuple
}

func (p *Parser) expect(k lexer.Kind, msg string) {
	if p.c.is(k) {
		p.c.advance()
		return
	}
	tok := p.c.current()
	p.sink.Add(diagnostics.SyntaxError, msg, &tok)
}

// invalidIdentSymbols lists the characters validateIdentifierName rejects
// in a name; it also rejects a name starting with a digit.
const invalidIdentSymbols = "!@#$%^&*()-=+/<>{}[]|?,`~"

func (p *Parser) validateIdentifierName(name string, pos lexer.Position) {
	if name == "" {
		return
	}
	if name[0] >= '0' && name[0] <= '9' {
		tok := lexer.Token{Pos: pos, Lexeme: name}
		p.sink.Add(diagnostics.SyntaxError, "identifier cannot start with a digit: "+name, &tok)
		return
	}
	if strings.ContainsAny(name, invalidIdentSymbols) {
		tok := lexer.Token{Pos: pos, Lexeme: name}
		p.sink.Add(diagnostics.SyntaxError, "identifier contains an illegal character: "+name, &tok)
	}
}
