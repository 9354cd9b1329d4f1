// Package optimizer implements the AST-rewriting optimizer: a
// fixed-order sequence of passes, each given the shared scope-managed
// traversal skeleton, that may rewrite a node in place or null it out to
// signal removal from its parent. A pass hook returns the replacement
// node (possibly the same one) or nil to signal "drop me", so the
// traversal skeleton stays purely structural and pass state is isolated.
package optimizer

import (
	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/symbols"
)

// Pass is one optimizer pass. Hoist runs once per Capsule, before
// its elements are otherwise visited, and may remove elements from the
// capsule by nulling entries in place (the traversal drops nulled
// elements). OptimizeNode runs on every node after its children have been
// visited; returning nil signals that the node should be dropped from its
// parent.
type Pass interface {
	Hoist(cap *ast.Capsule, state *State)
	OptimizeNode(n ast.Node, state *State) ast.Node
}

// State carries the scope stack and the capsule-wide hoisted scope shared
// by a pass's Hoist and OptimizeNode hooks across one traversal.
type State struct {
	Locals  *symbols.Stack
	Hoisted *symbols.Scope
}

// NewState returns a fresh State with an empty local scope stack and
// hoisted scope.
func NewState() *State {
	return &State{Locals: symbols.NewStack(), Hoisted: symbols.NewScope()}
}

// Lookup resolves name against the local scope stack first, falling
// through to the hoisted scope.
func (s *State) Lookup(name string) (ast.Node, bool) {
	if n, ok := s.Locals.Lookup(name); ok {
		return n, true
	}
	return s.Hoisted.Get(name)
}
