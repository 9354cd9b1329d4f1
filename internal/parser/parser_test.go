package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
)

func parse(t *testing.T, src string) (*ast.Source, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	p := New(src, sink)
	return p.Parse(), sink
}

func TestAdditionBindsLooserThanMultiplication(t *testing.T) {
	src, sink := parse(t, "capsule T { return 1 + 2 * 3 }")
	require.True(t, sink.Empty(), sink.Diagnostics())

	cap, ok := src.Value.(*ast.Capsule)
	require.True(t, ok)
	require.Len(t, cap.Elements, 1)
	ret := cap.Elements[0].(*ast.Return)
	bin := ret.Value.(*ast.BinaryOperation)
	assert.Equal(t, "+", bin.Op)
	assert.Equal(t, ast.Print(ast.NewNumberLiteral(bin.Pos(), "1")), ast.Print(bin.Left))
	rhs := bin.Right.(*ast.BinaryOperation)
	assert.Equal(t, "*", rhs.Op)
}

func TestExponentIsLeftAssociative(t *testing.T) {
	src, sink := parse(t, "capsule T { return 2 ** 3 ** 2 }")
	require.True(t, sink.Empty(), sink.Diagnostics())

	cap := src.Value.(*ast.Capsule)
	ret := cap.Elements[0].(*ast.Return)
	outer := ret.Value.(*ast.BinaryOperation)
	assert.Equal(t, "**", outer.Op)
	inner, ok := outer.Left.(*ast.BinaryOperation)
	require.True(t, ok, "exponent should associate left, nesting on the left operand")
	assert.Equal(t, "**", inner.Op)
}

func TestBraceDisambiguation(t *testing.T) {
	tupleSrc, sink := parse(t, "capsule T { return { :ok, 'x' } }")
	require.True(t, sink.Empty(), sink.Diagnostics())
	ret := tupleSrc.Value.(*ast.Capsule).Elements[0].(*ast.Return)
	_, isTuple := ret.Value.(*ast.Tuple)
	assert.True(t, isTuple, "expected a Tuple, got %T", ret.Value)

	dictSrc, sink := parse(t, "capsule T { return { :ok: 'x' } }")
	require.True(t, sink.Empty(), sink.Diagnostics())
	ret2 := dictSrc.Value.(*ast.Capsule).Elements[0].(*ast.Return)
	dict, isDict := ret2.Value.(*ast.Dictionary)
	require.True(t, isDict, "expected a Dictionary, got %T", ret2.Value)
	require.Len(t, dict.Elements, 1)

	blockSrc, sink := parse(t, "capsule T { return { 1 + 2 } }")
	require.True(t, sink.Empty(), sink.Diagnostics())
	ret3 := blockSrc.Value.(*ast.Capsule).Elements[0].(*ast.Return)
	_, isBlock := ret3.Value.(*ast.Block)
	assert.True(t, isBlock, "expected a Block, got %T", ret3.Value)
}

func TestTypeAnnotationDisambiguatedFromComparison(t *testing.T) {
	src, sink := parse(t, "capsule T { count<Number> = 11 }")
	require.True(t, sink.Empty(), sink.Diagnostics())
	cap := src.Value.(*ast.Capsule)
	assign := cap.Elements[0].(*ast.Assignment)
	require.NotNil(t, assign.Left.Type)
	assert.Equal(t, ast.TypeNumber, assign.Left.Type.Name)
}

func TestComparisonNotMistakenForTypeAnnotation(t *testing.T) {
	src, sink := parse(t, "capsule T { return a < b }")
	require.True(t, sink.Empty(), sink.Diagnostics())
	ret := src.Value.(*ast.Capsule).Elements[0].(*ast.Return)
	bin, ok := ret.Value.(*ast.BinaryOperation)
	require.True(t, ok, "expected a comparison BinaryOperation, got %T", ret.Value)
	assert.Equal(t, "<", bin.Op)
}

func TestFunctionDeclarationParamsAndArrowShorthand(t *testing.T) {
	src, sink := parse(t, "capsule T { double<Function<Number,Number>> = (x<Number>) -> x * 2 }")
	require.True(t, sink.Empty(), sink.Diagnostics())
	cap := src.Value.(*ast.Capsule)
	assign := cap.Elements[0].(*ast.Assignment)
	fn, ok := assign.Right.(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.Len(t, fn.Params.Elements, 1)
	param := fn.Params.Elements[0].(*ast.Identifier)
	assert.Equal(t, "x", param.Name)
	require.NotNil(t, param.Type)
	assert.Equal(t, ast.TypeNumber, param.Type.Name)
}

func TestUnhandledTokenResynchronizesWithoutPanicking(t *testing.T) {
	assert.NotPanics(t, func() {
		_, sink := parse(t, "capsule T { return \\ return 1 }")
		assert.Greater(t, sink.Count(diagnostics.SyntaxError), 0)
	})
}

func TestControlFlowChain(t *testing.T) {
	src, sink := parse(t, "capsule T { return if (a == b) { return 1 } else if (c) { return 2 } else { return 3 } }")
	require.True(t, sink.Empty(), sink.Diagnostics())
	ret := src.Value.(*ast.Capsule).Elements[0].(*ast.Return)
	cf, ok := ret.Value.(*ast.ControlFlow)
	require.True(t, ok)
	require.Len(t, cf.Branches, 3)
	assert.Nil(t, cf.Branches[2].Condition)
}

func TestLeftoverTokensProduceParseError(t *testing.T) {
	_, sink := parse(t, "capsule T { return 1 } )")
	assert.Greater(t, sink.Count(diagnostics.ParseError), 0)
}
