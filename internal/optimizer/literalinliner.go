package optimizer

import (
	"fmt"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/lexer"
	"github.com/theta-lang/thetac/internal/symbols"
)

// LiteralInliner is the literal-inliner / enum-unpacker pass:
// it pre-computes identifier-to-literal substitutions so the type checker
// and code generator never need a runtime lookup for a compile-time
// constant, and unpacks enum symbols into NumberLiteral indices.
type LiteralInliner struct {
	Sink *diagnostics.Sink
}

// Hoist walks a Capsule's top-level elements: an Enum definition unpacks
// each symbol into the hoisted scope as "EnumName.:symbol" -> NumberLiteral
// index, and an Assignment whose right-hand side is a literal binds
// name -> literal into the hoisted scope. Both kinds are marked for
// removal from the capsule's element list, except a literal assignment
// whose literal does not match its declared type: that one stays in the
// list, and OptimizeNode reports the TypeError when the traversal reaches
// it.
func (p *LiteralInliner) Hoist(cap *ast.Capsule, state *State) {
	for i, elem := range cap.Elements {
		if elem == nil {
			continue
		}
		switch v := elem.(type) {
		case *ast.Enum:
			p.unpackEnum(v, state.Hoisted)
			cap.Elements[i] = nil
		case *ast.Assignment:
			if lit, ok := literalValue(v.Right); ok {
				if declared, got := v.Left.Type, literalType(lit); declared != nil && got != nil && declared.Name != got.Name {
					continue
				}
				p.define(state.Hoisted, v.Left.Name, lit, v.Pos())
				cap.Elements[i] = nil
			}
		}
	}
}

// OptimizeNode implements the per-node hook.
func (p *LiteralInliner) OptimizeNode(n ast.Node, state *State) ast.Node {
	switch v := n.(type) {
	case *ast.Identifier:
		if bound, ok := state.Lookup(v.Name); ok {
			if lit, ok := literalValue(bound); ok {
				return copyLiteral(lit, v.Pos())
			}
		}
		return v
	case *ast.Assignment:
		if lit, ok := literalValue(v.Right); ok {
			if !p.checkDeclared(v, lit) {
				return v
			}
			p.define(state.Locals.Top(), v.Left.Name, lit, v.Pos())
			return nil
		}
		return v
	case *ast.Enum:
		p.unpackEnum(v, state.Locals.Top())
		return nil
	default:
		return n
	}
}

// checkDeclared verifies a literal assignment against its declared type
// before the assignment is absorbed into a scope. Absorption erases the
// node, so a mismatch caught any later would never be caught at all; the
// TypeError is emitted here and the assignment left in place (the
// orchestrator aborts the pipeline after this pass).
func (p *LiteralInliner) checkDeclared(a *ast.Assignment, lit ast.Node) bool {
	declared := a.Left.Type
	if declared == nil {
		return true
	}
	got := literalType(lit)
	if got == nil || declared.Name == got.Name {
		return true
	}
	p.Sink.AddTypeError("cannot assign "+string(got.Name)+" literal to "+a.Left.Name+
		" declared as "+ast.TypeDisplayString(declared), &lexer.Token{Pos: a.Pos(), Lexeme: a.Left.Name}, declared, got)
	return false
}

func literalType(n ast.Node) *ast.TypeDeclaration {
	switch n.(type) {
	case *ast.NumberLiteral:
		return ast.NewNumberType()
	case *ast.StringLiteral:
		return ast.NewStringType()
	case *ast.BooleanLiteral:
		return ast.NewBooleanType()
	}
	return nil
}

func (p *LiteralInliner) unpackEnum(e *ast.Enum, into *symbols.Scope) {
	for i, symbol := range e.Symbols {
		key := e.Name + ".:" + symbol
		p.define(into, key, ast.NewNumberLiteral(e.Pos(), fmt.Sprintf("%d", i)), e.Pos())
	}
}

func (p *LiteralInliner) define(into *symbols.Scope, name string, value ast.Node, pos lexer.Position) {
	if into == nil {
		return
	}
	if !into.Define(name, value) {
		tok := lexer.Token{Pos: pos, Lexeme: name}
		p.Sink.Add(diagnostics.IllegalReassignmentError, "identifier already bound: "+name, &tok)
	}
}

// literalValue reports whether n is a Boolean, Number, or String literal,
// returning it unchanged so callers can both test and use it.
func literalValue(n ast.Node) (ast.Node, bool) {
	switch n.(type) {
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral:
		return n, true
	default:
		return nil, false
	}
}

func copyLiteral(n ast.Node, pos lexer.Position) ast.Node {
	switch v := n.(type) {
	case *ast.NumberLiteral:
		return ast.NewNumberLiteral(pos, v.Value)
	case *ast.StringLiteral:
		return ast.NewStringLiteral(pos, v.Value)
	case *ast.BooleanLiteral:
		return ast.NewBooleanLiteral(pos, v.Value)
	default:
		return n
	}
}
