// Package typecheck implements the bottom-up type checker:
// every node is checked after its children, and on success carries a
// resolved TypeDeclaration subtree. Dispatch is per node kind; type
// comparison is the structural equality and Variadic collapsing of
// internal/ast/types.go.
package typecheck

import (
	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/lexer"
	"github.com/theta-lang/thetac/internal/symbols"
)

// comparisonOps yield a Boolean result regardless of operand type; every other binary operator yields its
// (homogeneous) operand type.
var comparisonOps = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true,
}

// Checker holds the scope stack used to resolve Identifier references
// against their declared or inferred types, and the sink it reports into.
type Checker struct {
	Sink   *diagnostics.Sink
	scopes *symbols.Stack
}

// New creates a Checker reporting into sink.
func New(sink *diagnostics.Sink) *Checker {
	return &Checker{Sink: sink, scopes: symbols.NewStack()}
}

// Check type-checks n and its children bottom-up, attaching a resolved
// type to n on success. It returns false if n or any descendant failed to
// check; a true result does not guarantee the sink is empty, since other
// phases may have already appended diagnostics.
func (c *Checker) Check(n ast.Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *ast.Source:
		return c.checkSource(v)
	case *ast.Capsule:
		return c.checkCapsule(v)
	case *ast.Assignment:
		return c.checkAssignment(v)
	case *ast.Identifier:
		return c.checkIdentifier(v)
	case *ast.BinaryOperation:
		return c.checkBinaryOperation(v)
	case *ast.UnaryOperation:
		return c.checkUnaryOperation(v)
	case *ast.Block:
		return c.checkBlock(v)
	case *ast.Return:
		return c.checkReturn(v)
	case *ast.FunctionDeclaration:
		return c.checkFunctionDeclaration(v)
	case *ast.FunctionInvocation:
		return c.checkFunctionInvocation(v)
	case *ast.ControlFlow:
		return c.checkControlFlow(v)
	case *ast.NumberLiteral:
		v.SetResolvedType(ast.NewNumberType())
		return true
	case *ast.StringLiteral:
		v.SetResolvedType(ast.NewStringType())
		return true
	case *ast.BooleanLiteral:
		v.SetResolvedType(ast.NewBooleanType())
		return true
	case *ast.Symbol:
		v.SetResolvedType(ast.NewSymbolType())
		return true
	default:
		return true
	}
}

func (c *Checker) checkSource(v *ast.Source) bool {
	if v.Value == nil {
		return true
	}
	ok := c.Check(v.Value)
	if ok {
		v.SetResolvedType(v.Value.ResolvedType())
	}
	return ok
}

// checkCapsule binds every top-level assignment's declared type into a
// fresh scope before checking any element, so forward and mutually
// recursive references between capsule-level functions resolve.
func (c *Checker) checkCapsule(v *ast.Capsule) bool {
	c.scopes.Push()
	defer c.scopes.Pop()

	for _, e := range v.Elements {
		if a, isAssign := e.(*ast.Assignment); isAssign && a.Left.Type != nil {
			c.define(a.Left.Name, a.Left.Type, a.Pos())
		}
	}

	ok := true
	for _, e := range v.Elements {
		if !c.Check(e) {
			ok = false
		}
	}
	v.SetResolvedType(ast.NewCapsuleType())
	return ok
}

func (c *Checker) checkAssignment(v *ast.Assignment) bool {
	if !c.Check(v.Right) {
		return false
	}
	want := v.Left.Type
	got := v.Right.ResolvedType()
	// The grammar permits omitting the annotation; there is nothing to
	// compare against, so the identifier's type is inferred from the
	// right-hand side instead of rejecting the assignment.
	if want == nil {
		inferred := got
		if fd, isFn := v.Right.(*ast.FunctionDeclaration); isFn {
			inferred = inferredFunctionType(fd)
		}
		v.Left.Type = inferred
		v.Left.SetResolvedType(inferred)
		v.SetResolvedType(inferred)
		if inferred != nil {
			if top := c.scopes.Top(); top != nil {
				top.Define(v.Left.Name, inferred)
			}
		}
		return true
	}
	// A FunctionDeclaration's resolved type is its definition block's type,
	// i.e. the return type alone — so a
	// Function<...,Ret>-declared identifier checks its body against Ret,
	// not against the whole Function shape its params already satisfy.
	// The identifier itself still resolves to the full Function<...> shape.
	compareWant := want
	if want.Name == ast.TypeFunction {
		if _, isFn := v.Right.(*ast.FunctionDeclaration); isFn {
			compareWant = want.Right
		}
	}
	if !ast.TypesEqual(compareWant, got) && !ast.VariadicSatisfies(compareWant, got) {
		c.Sink.AddTypeError("cannot assign "+ast.TypeDisplayString(got)+" to "+v.Left.Name+" declared as "+ast.TypeDisplayString(compareWant),
			tokenAt(v.Pos()), compareWant, got)
		return false
	}
	v.Left.SetResolvedType(want)
	v.SetResolvedType(want)
	// Bind the name for later references in this scope. Capsule-level
	// names are already pre-bound by checkCapsule, so a false return
	// here is not a reassignment.
	if top := c.scopes.Top(); top != nil {
		top.Define(v.Left.Name, want)
	}
	return true
}

// inferredFunctionType reconstructs the full Function<...> shape of an
// unannotated function-valued assignment from the declaration itself:
// parameter types left-folded into nested Tuples (the same encoding the
// parser uses for multi-parameter Function annotations) and the
// definition block's resolved type as the return component.
func inferredFunctionType(fd *ast.FunctionDeclaration) *ast.TypeDeclaration {
	var arg *ast.TypeDeclaration
	for _, p := range fd.Params.Elements {
		ident, ok := p.(*ast.Identifier)
		if !ok || ident.Type == nil {
			continue
		}
		if arg == nil {
			arg = ident.Type
		} else {
			arg = ast.NewTupleType(arg, ident.Type)
		}
	}
	return ast.NewFunctionType(arg, fd.ResolvedType())
}

func (c *Checker) checkIdentifier(v *ast.Identifier) bool {
	if v.Type != nil {
		v.SetResolvedType(v.Type)
		return true
	}
	if bound, ok := c.scopes.Lookup(v.Name); ok {
		if t, ok := bound.(*ast.TypeDeclaration); ok {
			v.SetResolvedType(t)
			return true
		}
	}
	c.Sink.AddSuggested(diagnostics.ReferenceError, "undefined reference: "+v.Name,
		tokenAt(v.Pos()), diagnostics.Suggest(v.Name, c.scopes.AllNames()))
	return false
}

func (c *Checker) checkBinaryOperation(v *ast.BinaryOperation) bool {
	okL := c.Check(v.Left)
	okR := c.Check(v.Right)
	if !okL || !okR {
		return false
	}
	lt, rt := v.Left.ResolvedType(), v.Right.ResolvedType()
	if !ast.TypesEqual(lt, rt) {
		c.Sink.AddTypeError("mismatched operand types for '"+v.Op+"'", tokenAt(v.Pos()), lt, rt)
		return false
	}
	if comparisonOps[v.Op] {
		v.SetResolvedType(ast.NewBooleanType())
	} else {
		v.SetResolvedType(lt)
	}
	return true
}

func (c *Checker) checkUnaryOperation(v *ast.UnaryOperation) bool {
	if !c.Check(v.Value) {
		return false
	}
	v.SetResolvedType(v.Value.ResolvedType())
	return true
}

// checkBlock collects the resolved types of every Return reachable without
// descending into a nested function body, plus the final statement's type
// if it is not itself a Return (the implicit-return case), then collapses
// them.
func (c *Checker) checkBlock(v *ast.Block) bool {
	c.scopes.Push()
	defer c.scopes.Pop()

	ok := true
	for _, stmt := range v.Statements {
		if !c.Check(stmt) {
			ok = false
		}
	}
	if !ok {
		return false
	}

	var types []*ast.TypeDeclaration
	for _, stmt := range v.Statements {
		collectReturns(stmt, &types)
	}
	if n := len(v.Statements); n > 0 {
		if _, isReturn := v.Statements[n-1].(*ast.Return); !isReturn {
			types = append(types, v.Statements[n-1].ResolvedType())
		}
	}
	v.SetResolvedType(collapse(types))
	return true
}

// collectReturns gathers the resolved type of every Return node reachable
// from n without descending into a nested function body.
func collectReturns(n ast.Node, out *[]*ast.TypeDeclaration) {
	switch v := n.(type) {
	case nil, *ast.FunctionDeclaration:
		return
	case *ast.Return:
		*out = append(*out, v.ResolvedType())
	case *ast.Block:
		for _, s := range v.Statements {
			collectReturns(s, out)
		}
	case *ast.ControlFlow:
		for _, br := range v.Branches {
			collectReturns(br.Body, out)
		}
	}
}

func (c *Checker) checkReturn(v *ast.Return) bool {
	if !c.Check(v.Value) {
		return false
	}
	v.SetResolvedType(v.Value.ResolvedType())
	return true
}

func (c *Checker) checkFunctionDeclaration(v *ast.FunctionDeclaration) bool {
	c.scopes.Push()
	defer c.scopes.Pop()

	for i, p := range v.Params.Elements {
		param := p.(*ast.Identifier)
		param.SetLocalIndex(i)
		if param.Type != nil {
			c.define(param.Name, param.Type, param.Pos())
		}
	}

	if !c.Check(v.Definition) {
		return false
	}
	v.SetResolvedType(v.Definition.ResolvedType())
	return true
}

func (c *Checker) checkFunctionInvocation(v *ast.FunctionInvocation) bool {
	ok := c.Check(v.Callee)
	for _, a := range v.Args.Elements {
		if !c.Check(a) {
			ok = false
		}
	}
	if !ok {
		return false
	}
	ft := v.Callee.ResolvedType()
	if ft == nil || ft.Name != ast.TypeFunction {
		c.Sink.Add(diagnostics.TypeError, "callee is not a function", tokenAt(v.Pos()))
		return false
	}
	v.SetResolvedType(ft.Right)
	return true
}

func (c *Checker) checkControlFlow(v *ast.ControlFlow) bool {
	ok := true
	var types []*ast.TypeDeclaration
	for _, br := range v.Branches {
		if br.Condition != nil {
			if !c.Check(br.Condition) {
				ok = false
			} else if br.Condition.ResolvedType() == nil || br.Condition.ResolvedType().Name != ast.TypeBoolean {
				c.Sink.AddTypeError("if condition must be Boolean", tokenAt(br.Condition.Pos()),
					ast.NewBooleanType(), br.Condition.ResolvedType())
				ok = false
			}
		}
		if !c.Check(br.Body) {
			ok = false
			continue
		}
		types = append(types, br.Body.ResolvedType())
	}
	if ok {
		v.SetResolvedType(collapse(types))
	}
	return ok
}

// collapse implements the Block/ControlFlow type-collapsing rule:
// a single structurally-unique type wins outright, otherwise the result is
// a Variadic of the distinct types in first-seen order.
func collapse(types []*ast.TypeDeclaration) *ast.TypeDeclaration {
	if len(types) == 0 {
		return nil
	}
	return ast.NewVariadicType(types...)
}

func (c *Checker) define(name string, t *ast.TypeDeclaration, pos lexer.Position) {
	if !c.scopes.Top().Define(name, t) {
		c.Sink.Add(diagnostics.IllegalReassignmentError, "identifier already bound: "+name, tokenAt(pos))
	}
}

func tokenAt(pos lexer.Position) *lexer.Token {
	return &lexer.Token{Pos: pos}
}
