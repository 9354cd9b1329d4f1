package codegen

import (
	"fmt"
	"strings"
)

// WAT renders the module as WebAssembly text. It prints straight from the
// in-memory representation (functions, signatures, exports, instruction
// bytes) rather than re-decoding the binary encoding, so the dump stays
// readable even if Encode would produce something a disassembler rejects
// (e.g. the stringref opcodes no mainstream tool decodes yet).
func (m *Module) WAT() string {
	var sb strings.Builder
	sb.WriteString("(module\n")
	for i, f := range m.funcs {
		ft := m.types[f.typeIdx]
		fmt.Fprintf(&sb, "  (func $%s (;%d;)", f.name, i)
		if len(ft.Params) > 0 {
			sb.WriteString(" (param")
			for _, p := range ft.Params {
				sb.WriteString(" " + valTypeName(p))
			}
			sb.WriteString(")")
		}
		if len(ft.Results) > 0 {
			sb.WriteString(" (result")
			for _, r := range ft.Results {
				sb.WriteString(" " + valTypeName(r))
			}
			sb.WriteString(")")
		}
		sb.WriteString("\n")
		if len(f.locals) > 0 {
			sb.WriteString("    (local")
			for _, l := range f.locals {
				sb.WriteString(" " + valTypeName(l))
			}
			sb.WriteString(")\n")
		}
		disasm(&sb, f.code, "    ")
		sb.WriteString("  )\n")
	}
	for _, f := range m.funcs {
		if !f.exported {
			continue
		}
		idx, _ := m.FuncIndex(f.name)
		fmt.Fprintf(&sb, "  (export %q (func %d))\n", f.name, idx)
	}
	sb.WriteString(")\n")
	return sb.String()
}

func valTypeName(t ValType) string {
	switch t {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValStringRef:
		return "stringref"
	}
	return fmt.Sprintf("0x%02x", byte(t))
}

// opInfo describes how one opcode's immediates decode: "u" a ULEB index,
// "s" a SLEB constant, "b" a raw block-type byte.
var opInfo = map[byte]struct {
	name string
	imm  string
}{
	opUnreachable: {"unreachable", ""},
	opBlock:       {"block", "b"},
	opLoop:        {"loop", "b"},
	opIf:          {"if", "b"},
	opBr:          {"br", "u"},
	opBrIf:        {"br_if", "u"},
	opReturn:      {"return", ""},
	opCall:        {"call", "u"},
	opDrop:        {"drop", ""},
	opLocalGet:    {"local.get", "u"},
	opLocalSet:    {"local.set", "u"},
	opI32Const:    {"i32.const", "s"},
	opI64Const:    {"i64.const", "s"},
	opI32Eqz:      {"i32.eqz", ""},
	opI32Eq:       {"i32.eq", ""},
	opI32Ne:       {"i32.ne", ""},
	opI64Eqz:      {"i64.eqz", ""},
	opI64Eq:       {"i64.eq", ""},
	opI64Ne:       {"i64.ne", ""},
	opI64LtS:      {"i64.lt_s", ""},
	opI64GtS:      {"i64.gt_s", ""},
	opI64LeS:      {"i64.le_s", ""},
	opI64GeS:      {"i64.ge_s", ""},
	opI64Add:      {"i64.add", ""},
	opI64Sub:      {"i64.sub", ""},
	opI64Mul:      {"i64.mul", ""},
	opI64DivS:     {"i64.div_s", ""},
	opI32And:      {"i32.and", ""},
	opI32Or:       {"i32.or", ""},
}

var gcSubNames = map[uint64]string{
	subStringConcat: "string.concat",
	subStringEq:     "string.eq",
}

// disasm decodes the generator's own instruction subset, indenting nested
// block/loop/if structure the way wasm-tools prints folded-less WAT.
func disasm(sb *strings.Builder, code []byte, indent string) {
	depth := 0
	pos := 0
	line := func(s string) {
		sb.WriteString(indent)
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	for pos < len(code) {
		op := code[pos]
		pos++
		switch op {
		case opEnd:
			if depth > 0 {
				depth--
			}
			line("end")
			continue
		case opElse:
			if depth > 0 {
				depth--
			}
			line("else")
			depth++
			continue
		case opGCPrefix:
			sub, n := readULEB128(code[pos:])
			pos += n
			name, ok := gcSubNames[sub]
			if !ok {
				name = fmt.Sprintf("gc.0x%x", sub)
			}
			line(name)
			continue
		}
		info, ok := opInfo[op]
		if !ok {
			line(fmt.Sprintf("0x%02x", op))
			continue
		}
		switch info.imm {
		case "u":
			v, n := readULEB128(code[pos:])
			pos += n
			line(fmt.Sprintf("%s %d", info.name, v))
		case "s":
			v, n := readSLEB128(code[pos:])
			pos += n
			line(fmt.Sprintf("%s %d", info.name, v))
		case "b":
			bt := code[pos]
			pos++
			if bt == blockTypeVoid {
				line(info.name)
			} else {
				line(fmt.Sprintf("%s (result %s)", info.name, valTypeName(ValType(bt))))
			}
			depth++
		default:
			line(info.name)
		}
	}
}
