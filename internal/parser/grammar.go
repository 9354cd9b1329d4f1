package parser

import (
	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/lexer"
)

// parseCapsuleOrReturn handles `capsule := 'capsule' Ident block | return`.
func (p *Parser) parseCapsuleOrReturn() ast.Node {
	if p.c.isKeyword("capsule") {
		pos := p.c.current().Pos
		p.c.advance()
		name := ""
		if p.c.is(lexer.IDENTIFIER) {
			name = p.c.advance().Lexeme
			p.validateIdentifierName(name, pos)
		} else {
			tok := p.c.current()
			p.sink.Add(diagnostics.SyntaxError, "expected capsule name", &tok)
		}
		cap := ast.NewCapsule(pos, name)
		block := p.parseBlockRaw()
		cap.Elements = block.Statements
		return cap
	}
	return p.parseReturn()
}

// parseReturn handles `return := 'return' assignment | structDef`.
func (p *Parser) parseReturn() ast.Node {
	if p.c.isKeyword("return") {
		pos := p.c.current().Pos
		p.c.advance()
		value := p.parseAssignment()
		return ast.NewReturn(pos, value)
	}
	return p.parseStructDef()
}

// parseStructDef handles `structDef := 'struct' Ident '{' identifier* '}' | assignment`.
func (p *Parser) parseStructDef() ast.Node {
	if p.c.isKeyword("struct") {
		pos := p.c.current().Pos
		p.c.advance()
		name := ""
		if p.c.is(lexer.IDENTIFIER) {
			name = p.c.advance().Lexeme
			p.validateIdentifierName(name, pos)
		} else {
			tok := p.c.current()
			p.sink.Add(diagnostics.SyntaxError, "expected struct name", &tok)
		}
		def := ast.NewStructDefinition(pos, name)
		p.expect(lexer.BRACE_OPEN, "expected '{' to open struct body")
		for p.c.is(lexer.IDENTIFIER) {
			field := p.parseIdentifierWithType()
			def.Fields = append(def.Fields, field)
		}
		p.expect(lexer.BRACE_CLOSE, "expected '}' to close struct body")
		return def
	}
	return p.parseAssignment()
}

// parseAssignment handles `assignment := expression ('=' funcDecl)?`.
func (p *Parser) parseAssignment() ast.Node {
	left := p.parseExpression()
	if p.c.is(lexer.ASSIGNMENT) {
		pos := p.c.current().Pos
		p.c.advance()
		ident, ok := left.(*ast.Identifier)
		if !ok {
			tok := p.c.current()
			p.sink.Add(diagnostics.SyntaxError, "left-hand side of '=' must be an identifier", &tok)
			ident = ast.NewIdentifier(pos, "")
		}
		right := p.parseFuncDecl()
		return ast.NewAssignment(pos, ident, right)
	}
	return left
}

// parseBlock handles `block := '{' return* '}' | funcDecl`, wrapping a
// funcDecl fallback that isn't itself a block into a singleton block.
func (p *Parser) parseBlock() *ast.Block {
	if p.c.is(lexer.BRACE_OPEN) {
		return p.parseBlockRaw()
	}
	pos := p.c.current().Pos
	stmt := p.parseFuncDecl()
	block := ast.NewBlock(pos)
	block.Statements = []ast.Node{stmt}
	return block
}

func (p *Parser) parseBlockRaw() *ast.Block {
	pos := p.c.current().Pos
	block := ast.NewBlock(pos)
	p.expect(lexer.BRACE_OPEN, "expected '{'")
	for !p.c.is(lexer.BRACE_CLOSE) && !p.c.atEnd() {
		before := p.c.mark()
		stmt := p.parseReturn()
		block.Statements = append(block.Statements, stmt)
		if p.c.mark() == before {
			// No progress: resynchronize by consuming the offending token.
			tok := p.c.advance()
			p.sink.Add(diagnostics.ParseError, "unable to parse statement at "+tokenDesc(tok), &tok)
		}
	}
	p.expect(lexer.BRACE_CLOSE, "expected '}' to close block")
	return block
}

// parseFuncDecl handles `funcDecl := assignment ('->' block)?`, including
// the shorthand where an empty parameter list is written as a bare '->'
// and a single unparenthesized parameter.
func (p *Parser) parseFuncDecl() ast.Node {
	if p.c.is(lexer.FUNC_DECLARATION) {
		pos := p.c.current().Pos
		p.c.advance()
		params := ast.NewAstNodeList(pos)
		body := p.parseBlock()
		return ast.NewFunctionDeclaration(pos, params, body)
	}

	pos := p.c.current().Pos
	left := p.parseAssignment()
	if p.c.is(lexer.FUNC_DECLARATION) {
		p.c.advance()
		params := toParamList(pos, left)
		body := p.parseBlock()
		return ast.NewFunctionDeclaration(pos, params, body)
	}
	return left
}

// toParamList normalizes the already-parsed left-hand expression of a
// funcDecl into its parameter AstNodeList.
func toParamList(pos lexer.Position, n ast.Node) *ast.AstNodeList {
	list := ast.NewAstNodeList(pos)
	switch v := n.(type) {
	case *ast.AstNodeList:
		return v
	case *ast.Identifier:
		list.Elements = []ast.Node{v}
	default:
		if n != nil {
			list.Elements = []ast.Node{n}
		}
	}
	return list
}

// parseExpression handles `expression := structDecl`.
func (p *Parser) parseExpression() ast.Node {
	return p.parseStructDecl()
}

// parseStructDecl handles `structDecl := '@' Ident dict | enum`.
func (p *Parser) parseStructDecl() ast.Node {
	if p.c.is(lexer.AT) {
		pos := p.c.current().Pos
		p.c.advance()
		typeName := ""
		if p.c.is(lexer.IDENTIFIER) {
			typeName = p.c.advance().Lexeme
		} else {
			tok := p.c.current()
			p.sink.Add(diagnostics.SyntaxError, "expected struct type name after '@'", &tok)
		}
		fields := p.parseBraceExpression()
		dict, ok := fields.(*ast.Dictionary)
		if !ok {
			dict = ast.NewDictionary(pos)
		}
		return ast.NewStructDeclaration(pos, typeName, dict)
	}
	return p.parseEnum()
}

// parseEnum handles `enum := 'enum' Ident '{' (':' symbol)* '}' | controlFlow`.
func (p *Parser) parseEnum() ast.Node {
	if p.c.isKeyword("enum") {
		pos := p.c.current().Pos
		p.c.advance()
		name := ""
		if p.c.is(lexer.IDENTIFIER) {
			name = p.c.advance().Lexeme
		} else {
			tok := p.c.current()
			p.sink.Add(diagnostics.SyntaxError, "expected enum name", &tok)
		}
		e := ast.NewEnum(pos, name)
		p.expect(lexer.BRACE_OPEN, "expected '{' to open enum body")
		for p.c.is(lexer.COLON) {
			p.c.advance()
			if p.c.is(lexer.IDENTIFIER) {
				e.Symbols = append(e.Symbols, p.c.advance().Lexeme)
			} else {
				tok := p.c.current()
				p.sink.Add(diagnostics.SyntaxError, "expected symbol name after ':' in enum", &tok)
			}
			if p.c.is(lexer.COMMA) {
				p.c.advance()
			}
		}
		p.expect(lexer.BRACE_CLOSE, "expected '}' to close enum body")
		return e
	}
	return p.parseControlFlow()
}

// parseControlFlow handles the if/else-if/else chain.
func (p *Parser) parseControlFlow() ast.Node {
	if !p.c.isKeyword("if") {
		return p.parsePipeline()
	}
	pos := p.c.current().Pos
	cf := ast.NewControlFlow(pos)

	p.c.advance() // 'if'
	cond := p.parseExpression()
	body := p.parseBlock()
	cf.Branches = append(cf.Branches, ast.Branch{Condition: cond, Body: body})

	for p.c.isKeyword("else") {
		p.c.advance()
		if p.c.isKeyword("if") {
			p.c.advance()
			cond := p.parseExpression()
			body := p.parseBlock()
			cf.Branches = append(cf.Branches, ast.Branch{Condition: cond, Body: body})
			continue
		}
		elseBody := p.parseBlock()
		cf.Branches = append(cf.Branches, ast.Branch{Condition: nil, Body: elseBody})
		break
	}
	return cf
}

// binaryLevel is one level of the left-associative binary-operator
// precedence chain.
type binaryLevel struct {
	ops  []string
	next func(*Parser) ast.Node
}

var precedenceChain []binaryLevel

func init() {
	precedenceChain = []binaryLevel{
		{ops: []string{"=>"}, next: (*Parser).parseBooleanComp},
		{ops: []string{"&&", "||"}, next: (*Parser).parseEquality},
		{ops: []string{"==", "!="}, next: (*Parser).parseComparison},
		{ops: []string{"<", ">", "<=", ">="}, next: (*Parser).parseTerm},
		{ops: []string{"+", "-"}, next: (*Parser).parseFactor},
		{ops: []string{"*", "/"}, next: (*Parser).parseExponent},
		{ops: []string{"**"}, next: (*Parser).parseUnary},
	}
}

func (p *Parser) parsePipeline() ast.Node       { return p.parseLevel(0) }
func (p *Parser) parseBooleanComp() ast.Node    { return p.parseLevel(1) }
func (p *Parser) parseEquality() ast.Node       { return p.parseLevel(2) }
func (p *Parser) parseComparison() ast.Node     { return p.parseLevel(3) }
func (p *Parser) parseTerm() ast.Node           { return p.parseLevel(4) }
func (p *Parser) parseFactor() ast.Node         { return p.parseLevel(5) }
func (p *Parser) parseExponent() ast.Node       { return p.parseLevel(6) }

func (p *Parser) parseLevel(i int) ast.Node {
	level := precedenceChain[i]
	left := level.next(p)
	for {
		tok := p.c.current()
		matched := false
		for _, op := range level.ops {
			if (tok.Kind == lexer.OPERATOR || tok.Kind == lexer.ASSIGNMENT) && tok.Lexeme == op {
				matched = true
				break
			}
		}
		if !matched {
			return left
		}
		opTok := p.c.advance()
		right := level.next(p)
		left = ast.NewBinaryOperation(opTok.Pos, opTok.Lexeme, left, right)
	}
}

// parseUnary handles `unary := ('!'|'-') unary | primary`.
func (p *Parser) parseUnary() ast.Node {
	if p.c.isOperator("!") || p.c.isOperator("-") {
		tok := p.c.advance()
		value := p.parseUnary()
		return ast.NewUnaryOperation(tok.Pos, tok.Lexeme, value)
	}
	return p.parsePrimary()
}
