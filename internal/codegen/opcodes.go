package codegen

// WebAssembly instruction opcodes used by the generator, one named
// constant per emitted instruction rather than a generic numeric table.
const (
	opUnreachable byte = 0x00
	opBlock       byte = 0x02
	opLoop        byte = 0x03
	opIf          byte = 0x04
	opElse        byte = 0x05
	opEnd         byte = 0x0b
	opBr          byte = 0x0c
	opBrIf        byte = 0x0d
	opReturn      byte = 0x0f
	opCall        byte = 0x10
	opDrop        byte = 0x1a

	opLocalGet byte = 0x20
	opLocalSet byte = 0x21

	opI32Const byte = 0x41
	opI64Const byte = 0x42

	opI32Eqz byte = 0x45
	opI32Eq  byte = 0x46
	opI32Ne  byte = 0x47

	opI64Eqz byte = 0x50
	opI64Eq  byte = 0x51
	opI64Ne  byte = 0x52
	opI64LtS byte = 0x53
	opI64GtS byte = 0x55
	opI64LeS byte = 0x57
	opI64GeS byte = 0x59

	opI64Add  byte = 0x7c
	opI64Sub  byte = 0x7d
	opI64Mul  byte = 0x7e
	opI64DivS byte = 0x7f

	opI32And byte = 0x71
	opI32Or  byte = 0x72

	// gcPrefix introduces a multi-byte instruction from the stringref
	// proposal; the sub-opcode numbers below follow the proposal's shape
	// and are not verified against a specific host, since no supported
	// end-to-end path executes String-typed code yet.
	opGCPrefix        byte   = 0xfb
	subStringConcat   uint64 = 0x80
	subStringEq       uint64 = 0x81

	// blockTypeVoid marks a block/loop/if with no result type.
	blockTypeVoid byte = 0x40
)

// blockResultType encodes a block/loop/if's single-result block type,
// using the MVP's value-type shorthand: a block producing exactly
// one value encodes its type directly rather than as an index into the
// type section.
func blockResultType(t ValType) byte {
	return byte(t)
}
