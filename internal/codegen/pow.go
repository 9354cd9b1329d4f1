package codegen

import "bytes"

// powFuncName is the mangled name of the built-in the `**` operator
// lowers to: a simple iterative multiply loop over the exponent (integer,
// non-negative; negative bases and negative/fractional exponents are
// known gaps). The `Theta.Math.` prefix keeps the builtin in its own
// namespace — user symbols never mangle to a dotted name, so a user
// function literally named pow lands on "pow2NumberNumber" and cannot
// collide with this key.
const powFuncName = "Theta.Math.pow2NumberNumber"

// registerPow declares and bodies the Theta.Math.pow builtin and returns
// its function index. GenerateModule calls it for every module it emits,
// regardless of whether the source program actually uses `**`, and
// exports it there; registerPow itself does not export it.
func registerPow(m *Module) int {
	// First declaration into an empty module; the name cannot collide.
	idx, _ := m.Declare(powFuncName, []ValType{ValI64, ValI64}, []ValType{ValI64})

	// Parameters: 0 = base, 1 = exp. Locals: 2 = result, 3 = i.
	var code bytes.Buffer

	code.WriteByte(opI64Const)
	writeSLEB128(&code, 1)
	code.WriteByte(opLocalSet)
	writeULEB128(&code, 2)

	code.WriteByte(opI64Const)
	writeSLEB128(&code, 0)
	code.WriteByte(opLocalSet)
	writeULEB128(&code, 3)

	code.WriteByte(opBlock)
	code.WriteByte(blockTypeVoid)
	code.WriteByte(opLoop)
	code.WriteByte(blockTypeVoid)

	// i >= exp -> exit the block (depth 1 relative to the loop).
	code.WriteByte(opLocalGet)
	writeULEB128(&code, 3)
	code.WriteByte(opLocalGet)
	writeULEB128(&code, 1)
	code.WriteByte(opI64GeS)
	code.WriteByte(opBrIf)
	writeULEB128(&code, 1)

	// result = result * base
	code.WriteByte(opLocalGet)
	writeULEB128(&code, 2)
	code.WriteByte(opLocalGet)
	writeULEB128(&code, 0)
	code.WriteByte(opI64Mul)
	code.WriteByte(opLocalSet)
	writeULEB128(&code, 2)

	// i = i + 1
	code.WriteByte(opLocalGet)
	writeULEB128(&code, 3)
	code.WriteByte(opI64Const)
	writeSLEB128(&code, 1)
	code.WriteByte(opI64Add)
	code.WriteByte(opLocalSet)
	writeULEB128(&code, 3)

	code.WriteByte(opBr)
	writeULEB128(&code, 0) // back to loop start
	code.WriteByte(opEnd)  // end loop
	code.WriteByte(opEnd)  // end block

	code.WriteByte(opLocalGet)
	writeULEB128(&code, 2)

	m.SetBody(idx, []ValType{ValI64, ValI64}, code.Bytes())
	return idx
}
