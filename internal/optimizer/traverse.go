package optimizer

import "github.com/theta-lang/thetac/internal/ast"

// traverse descends n with scope management,
// then invokes pass.OptimizeNode on the (possibly rewritten) node. It
// returns nil when the node itself should be dropped from its parent.
func traverse(n ast.Node, pass Pass, state *State) ast.Node {
	if n == nil {
		return nil
	}

	switch v := n.(type) {
	case *ast.Source:
		v.Value = traverse(v.Value, pass, state)
	case *ast.Capsule:
		pass.Hoist(v, state)
		v.Elements = traverseList(v.Elements, pass, state)
	case *ast.Block:
		state.Locals.Push()
		v.Statements = traverseList(v.Statements, pass, state)
		state.Locals.Pop()
	case *ast.AstNodeList:
		v.Elements = traverseList(v.Elements, pass, state)
	case *ast.Assignment:
		v.Right = traverse(v.Right, pass, state)
	case *ast.FunctionDeclaration:
		// Params are declarations, not references; descending into them
		// would let a hoisted constant replace a same-named parameter.
		// Binding each param to its own (non-literal) Identifier makes
		// lookups from the body stop at the parameter instead of falling
		// through to a same-named hoisted constant.
		state.Locals.Push()
		for _, p := range v.Params.Elements {
			if ident, ok := p.(*ast.Identifier); ok {
				state.Locals.Top().Define(ident.Name, ident)
			}
		}
		traverse(v.Definition, pass, state)
		state.Locals.Pop()
	case *ast.FunctionInvocation:
		v.Callee = traverse(v.Callee, pass, state)
		traverse(v.Args, pass, state)
	case *ast.Return:
		v.Value = traverse(v.Value, pass, state)
	case *ast.ControlFlow:
		for i := range v.Branches {
			v.Branches[i].Condition = traverse(v.Branches[i].Condition, pass, state)
			traverse(v.Branches[i].Body, pass, state)
		}
	case *ast.BinaryOperation:
		v.Left = traverse(v.Left, pass, state)
		v.Right = traverse(v.Right, pass, state)
	case *ast.UnaryOperation:
		v.Value = traverse(v.Value, pass, state)
	case *ast.List:
		v.Elements = traverseList(v.Elements, pass, state)
	case *ast.Tuple:
		v.Elements = traverseList(v.Elements, pass, state)
	case *ast.Dictionary:
		for _, t := range v.Elements {
			traverse(t, pass, state)
		}
	case *ast.StructDeclaration:
		traverse(v.Fields, pass, state)
	// Identifier, Link, the literal kinds, Symbol, Enum, and
	// StructDefinition have no child AST nodes to recurse into.
	default:
	}

	return pass.OptimizeNode(n, state)
}

// traverseList recurses into each element of an AstNodeList-shaped slice,
// dropping any element a child rewrite nulled while preserving the order
// of the rest.
func traverseList(elements []ast.Node, pass Pass, state *State) []ast.Node {
	kept := elements[:0]
	for _, e := range elements {
		if rewritten := traverse(e, pass, state); rewritten != nil {
			kept = append(kept, rewritten)
		}
	}
	return kept
}
