package codegen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theta-lang/thetac/internal/ast"
)

func TestMangleIsDeterministic(t *testing.T) {
	params := []*ast.TypeDeclaration{ast.NewNumberType(), ast.NewStringType()}
	assert.Equal(t, mangle("f", params), mangle("f", params))
	assert.Equal(t, "f2NumberString", mangle("f", params))
	assert.Equal(t, "main0", mangle("main", nil))
}

func TestMangleDistinguishesOverloads(t *testing.T) {
	byNumber := mangle("f", []*ast.TypeDeclaration{ast.NewNumberType()})
	byString := mangle("f", []*ast.TypeDeclaration{ast.NewStringType()})
	byArity := mangle("f", []*ast.TypeDeclaration{ast.NewNumberType(), ast.NewNumberType()})
	assert.NotEqual(t, byNumber, byString)
	assert.NotEqual(t, byNumber, byArity)
}

func TestValTypeMapping(t *testing.T) {
	vt, err := valType(ast.NewNumberType())
	require.NoError(t, err)
	assert.Equal(t, ValI64, vt)

	vt, err = valType(ast.NewBooleanType())
	require.NoError(t, err)
	assert.Equal(t, ValI32, vt)

	vt, err = valType(ast.NewStringType())
	require.NoError(t, err)
	assert.Equal(t, ValStringRef, vt)

	_, err = valType(ast.NewListType(ast.NewNumberType()))
	assert.Error(t, err)

	_, err = valType(nil)
	assert.Error(t, err)
}

func TestDeclareRejectsDuplicateMangledName(t *testing.T) {
	m := NewModule()
	_, err := m.Declare("f1Number", []ValType{ValI64}, []ValType{ValI64})
	require.NoError(t, err)
	_, err = m.Declare("f1Number", []ValType{ValI64}, []ValType{ValI64})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "f1Number")
}

func TestUserPowDoesNotCollideWithBuiltin(t *testing.T) {
	m := NewModule()
	registerPow(m)
	// A user function literally named pow mangles without the builtin's
	// Theta.Math. prefix, so both entries coexist.
	idx, err := m.Declare(mangle("pow", []*ast.TypeDeclaration{ast.NewNumberType(), ast.NewNumberType()}),
		[]ValType{ValI64, ValI64}, []ValType{ValI64})
	require.NoError(t, err)

	userIdx, ok := m.FuncIndex("pow2NumberNumber")
	require.True(t, ok)
	assert.Equal(t, idx, userIdx)
	builtinIdx, ok := m.FuncIndex(powFuncName)
	require.True(t, ok)
	assert.NotEqual(t, userIdx, builtinIdx)
}

func TestEncodeEmitsWasmHeader(t *testing.T) {
	m := NewModule()
	registerPow(m)
	out := m.Encode()
	require.True(t, bytes.HasPrefix(out, []byte("\x00asm\x01\x00\x00\x00")))
}

func TestLEB128RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1} {
		var buf bytes.Buffer
		writeULEB128(&buf, v)
		got, n := readULEB128(buf.Bytes())
		assert.Equal(t, v, got)
		assert.Equal(t, buf.Len(), n)
	}
	for _, v := range []int64{0, 1, -1, 63, 64, -64, -65, 1 << 40, -(1 << 40)} {
		var buf bytes.Buffer
		writeSLEB128(&buf, v)
		got, n := readSLEB128(buf.Bytes())
		assert.Equal(t, v, got, "value %d", v)
		assert.Equal(t, buf.Len(), n)
	}
}

func TestWATListsFunctionsAndExports(t *testing.T) {
	m := NewModule()
	idx := registerPow(m)
	m.Export(idx)
	wat := m.WAT()

	assert.Contains(t, wat, "(module")
	assert.Contains(t, wat, "(func $Theta.Math.pow2NumberNumber")
	assert.Contains(t, wat, "(param i64 i64)")
	assert.Contains(t, wat, "(result i64)")
	assert.Contains(t, wat, "loop")
	assert.Contains(t, wat, "i64.mul")
	assert.Contains(t, wat, `(export "Theta.Math.pow2NumberNumber" (func 0))`)
}

func TestLocalDeclGrouping(t *testing.T) {
	var b bytes.Buffer
	writeLocalDecls(&b, []ValType{ValI64, ValI64, ValI32})
	// Two runs: 2 x i64, 1 x i32.
	assert.Equal(t, []byte{2, 2, byte(ValI64), 1, byte(ValI32)}, b.Bytes())
}
