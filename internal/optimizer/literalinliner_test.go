package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/parser"
)

func runInliner(t *testing.T, src string) (*ast.Source, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	tree := parser.New(src, sink).Parse()
	require.True(t, sink.Empty(), sink.Diagnostics())
	ok := Run([]Pass{&LiteralInliner{Sink: sink}}, tree, sink)
	require.True(t, ok, sink.Diagnostics())
	return tree, sink
}

func TestLiteralInlinerInlinesHoistedConstant(t *testing.T) {
	tree, _ := runInliner(t, "capsule T { count<Number> = 11; main<Function<Number>> = () -> { return count + 1 } }")
	cap := tree.Value.(*ast.Capsule)
	require.Len(t, cap.Elements, 1, "the literal assignment should have been removed")

	assign := cap.Elements[0].(*ast.Assignment)
	fn := assign.Right.(*ast.FunctionDeclaration)
	ret := fn.Definition.Statements[0].(*ast.Return)
	bin := ret.Value.(*ast.BinaryOperation)
	lit, ok := bin.Left.(*ast.NumberLiteral)
	require.True(t, ok, "count should have been replaced with its literal value")
	assert.Equal(t, "11", lit.Value)
}

func TestLiteralInlinerDropsLocalLiteralAssignment(t *testing.T) {
	tree, _ := runInliner(t, "capsule T { main<Function<Number>> = () -> { y<Number> = 5; return y } }")
	cap := tree.Value.(*ast.Capsule)
	assign := cap.Elements[0].(*ast.Assignment)
	fn := assign.Right.(*ast.FunctionDeclaration)
	require.Len(t, fn.Definition.Statements, 1, "the local literal assignment should have been dropped")
	ret := fn.Definition.Statements[0].(*ast.Return)
	lit, ok := ret.Value.(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, "5", lit.Value)
}

func TestLiteralInlinerUnpacksEnum(t *testing.T) {
	tree, _ := runInliner(t, "capsule T { enum Color { :red, :green, :blue } main<Function<Number>> = () -> 1 }")
	cap := tree.Value.(*ast.Capsule)
	require.Len(t, cap.Elements, 1, "the enum definition should have been absorbed into the hoisted scope")
	_, isAssign := cap.Elements[0].(*ast.Assignment)
	assert.True(t, isAssign)
}

func TestLiteralInlinerTypeMismatchIsCaughtBeforeAbsorption(t *testing.T) {
	sink := diagnostics.NewSink()
	tree := parser.New("capsule T { x<String> = 5 }", sink).Parse()
	require.True(t, sink.Empty())
	ok := Run([]Pass{&LiteralInliner{Sink: sink}}, tree, sink)
	assert.False(t, ok)
	assert.Equal(t, 1, sink.Count(diagnostics.TypeError))
	// The mismatched assignment stays in the tree rather than vanishing.
	cap := tree.Value.(*ast.Capsule)
	require.Len(t, cap.Elements, 1)
}

func TestLiteralInlinerReassignmentIsIllegal(t *testing.T) {
	sink := diagnostics.NewSink()
	tree := parser.New("capsule T { x<Number> = 0; x<Number> = 1 }", sink).Parse()
	require.True(t, sink.Empty())
	Run([]Pass{&LiteralInliner{Sink: sink}}, tree, sink)
	assert.Equal(t, 1, sink.Count(diagnostics.IllegalReassignmentError))
}
