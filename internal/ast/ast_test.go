package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/lexer"
)

func TestStructuralEqualitySymmetricAndReflexive(t *testing.T) {
	a := ast.NewFunctionType(ast.NewNumberType(), ast.NewNumberType())
	b := ast.NewFunctionType(ast.NewNumberType(), ast.NewNumberType())
	assert.True(t, ast.TypesEqual(a, a))
	assert.True(t, ast.TypesEqual(a, b))
	assert.True(t, ast.TypesEqual(b, a))

	c := ast.NewFunctionType(ast.NewStringType(), ast.NewNumberType())
	assert.False(t, ast.TypesEqual(a, c))
}

func TestVariadicDedupePreservesFirstSeenOrder(t *testing.T) {
	v := ast.NewVariadicType(ast.NewNumberType(), ast.NewStringType(), ast.NewNumberType())
	assert.Equal(t, "Variadic<Number,String>", ast.TypeDisplayString(v))
}

func TestVariadicCollapsesToSingleType(t *testing.T) {
	v := ast.NewVariadicType(ast.NewNumberType(), ast.NewNumberType())
	assert.Equal(t, ast.TypeNumber, v.Name)
}

func TestVariadicSatisfiesRequiresSubsetOfAlternatives(t *testing.T) {
	want := ast.NewVariadicType(ast.NewNumberType(), ast.NewStringType())
	have := ast.NewVariadicType(ast.NewNumberType())
	assert.True(t, ast.VariadicSatisfies(want, have))

	haveExtra := ast.NewVariadicType(ast.NewNumberType(), ast.NewBooleanType())
	assert.False(t, ast.VariadicSatisfies(want, haveExtra))
}

func TestNodeIDsAreUnique(t *testing.T) {
	a := ast.NewNumberLiteral(lexer.Position{Line: 1, Column: 1}, "1")
	b := ast.NewNumberLiteral(lexer.Position{Line: 1, Column: 2}, "2")
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestPrintParenthesizesBinaryOperation(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	expr := ast.NewBinaryOperation(pos, "+",
		ast.NewNumberLiteral(pos, "1"),
		ast.NewBinaryOperation(pos, "*", ast.NewNumberLiteral(pos, "2"), ast.NewNumberLiteral(pos, "3")))
	out := ast.Print(expr)
	assert.Equal(t, "(1 + (2 * 3))", out)
}
