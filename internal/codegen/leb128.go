package codegen

import "bytes"

// writeULEB128 appends an unsigned LEB128 encoding of v.
func writeULEB128(buf *bytes.Buffer, v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

// writeSLEB128 appends a signed LEB128 encoding of v, used for i32.const
// and i64.const immediates.
func writeSLEB128(buf *bytes.Buffer, v int64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			buf.WriteByte(b)
			return
		}
		b |= 0x80
		buf.WriteByte(b)
	}
}

// readULEB128 decodes an unsigned LEB128 value from the front of b,
// returning the value and how many bytes it occupied.
func readULEB128(b []byte) (uint64, int) {
	var v uint64
	var shift uint
	for i, c := range b {
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, i + 1
		}
		shift += 7
	}
	return v, len(b)
}

// readSLEB128 decodes a signed LEB128 value from the front of b.
func readSLEB128(b []byte) (int64, int) {
	var v int64
	var shift uint
	for i, c := range b {
		v |= int64(c&0x7f) << shift
		shift += 7
		if c&0x80 == 0 {
			if shift < 64 && c&0x40 != 0 {
				v |= -1 << shift
			}
			return v, i + 1
		}
	}
	return v, len(b)
}

// withLengthPrefix encodes fn's output with its byte length prepended as
// a ULEB128, the shape every WebAssembly section and every vector-valued
// field uses.
func withLengthPrefix(fn func(*bytes.Buffer)) []byte {
	var body bytes.Buffer
	fn(&body)
	var out bytes.Buffer
	writeULEB128(&out, uint64(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// section appends a section of the given id to buf, its payload built by
// fn, length-prefixed per the module binary format.
func section(buf *bytes.Buffer, id byte, fn func(*bytes.Buffer)) {
	buf.WriteByte(id)
	buf.Write(withLengthPrefix(fn))
}
