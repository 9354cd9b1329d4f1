package parser

import (
	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/lexer"
)

// tryTypeAnnotation speculatively parses a `<TypeExpr>` suffix after an
// identifier, backtracking via the cursor's mark/reset if what follows
// isn't a well-formed type expression — the mechanism that disambiguates
// `count<Number>` (a type annotation) from `a < b` (a comparison), per
// cursor.go's doc comment.
func (p *Parser) tryTypeAnnotation() (*ast.TypeDeclaration, bool) {
	if !p.c.isOperator("<") {
		return nil, false
	}
	mark := p.c.mark()
	p.c.advance() // '<'
	t, ok := p.parseTypeExpr()
	if !ok || !p.c.isOperator(">") {
		p.c.reset(mark)
		return nil, false
	}
	p.c.advance() // '>'
	return t, true
}

// parseTypeExpr parses one type-expression head from the closed set of
// type names, with optional `<...>` type-parameter children.
func (p *Parser) parseTypeExpr() (*ast.TypeDeclaration, bool) {
	if !p.c.is(lexer.IDENTIFIER) && !p.c.is(lexer.KEYWORD) {
		return nil, false
	}
	name := p.c.advance().Lexeme

	switch name {
	case "Number":
		return ast.NewNumberType(), true
	case "String":
		return ast.NewStringType(), true
	case "Boolean":
		return ast.NewBooleanType(), true
	case "Symbol":
		return ast.NewSymbolType(), true
	case "Capsule":
		return ast.NewCapsuleType(), true
	case "List":
		args, ok := p.parseTypeArgs()
		if !ok || len(args) != 1 {
			return nil, false
		}
		return ast.NewListType(args[0]), true
	case "Tuple":
		args, ok := p.parseTypeArgs()
		if !ok || len(args) != 2 {
			return nil, false
		}
		return ast.NewTupleType(args[0], args[1]), true
	case "Dict":
		args, ok := p.parseTypeArgs()
		if !ok || len(args) != 2 {
			return nil, false
		}
		return ast.NewDictType(args[0], args[1]), true
	case "Function":
		args, ok := p.parseTypeArgs()
		if !ok || len(args) == 0 {
			return nil, false
		}
		return buildFunctionType(args), true
	case "Variadic":
		args, ok := p.parseTypeArgs()
		if !ok || len(args) == 0 {
			return nil, false
		}
		return ast.NewVariadicType(args...), true
	default:
		// Anything else is a struct type name.
		return ast.NewStructType(name), true
	}
}

// parseTypeArgs parses a comma-separated `<T1,T2,...>` list.
func (p *Parser) parseTypeArgs() ([]*ast.TypeDeclaration, bool) {
	if !p.c.isOperator("<") {
		return nil, false
	}
	p.c.advance()
	var args []*ast.TypeDeclaration
	for {
		t, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		args = append(args, t)
		if p.c.is(lexer.COMMA) {
			p.c.advance()
			continue
		}
		break
	}
	if !p.c.isOperator(">") {
		return nil, false
	}
	p.c.advance()
	return args, true
}

// buildFunctionType folds a `Function<P1,...,Pn,R>` argument list into the
// TypeDeclaration's two-child (arg, ret) shape: zero params leaves arg nil,
// one param uses it directly, and more than one is left-folded into nested
// Tuple types so the existing binary Left/Right shape can still represent
// arbitrary arity without a dedicated params slot.
func buildFunctionType(args []*ast.TypeDeclaration) *ast.TypeDeclaration {
	ret := args[len(args)-1]
	params := args[:len(args)-1]

	var arg *ast.TypeDeclaration
	switch len(params) {
	case 0:
		arg = nil
	case 1:
		arg = params[0]
	default:
		arg = params[0]
		for _, next := range params[1:] {
			arg = ast.NewTupleType(arg, next)
		}
	}
	return ast.NewFunctionType(arg, ret)
}
