package elf

import "encoding/binary"

// ByteOrder returns the binary.ByteOrder matching the data encoding.
// ELFDATANONE defaults to little-endian; the header decoder rejects it
// before any multi-byte field is read.
func (d Data) ByteOrder() binary.ByteOrder {
	if d == ELFDATA2MSB {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// fieldReader decodes fixed-width unsigned fields from a window that the
// caller has already bounds-checked. It never fails: slicing the exact
// window up front is the precondition.
type fieldReader struct {
	buf []byte
	off int
	bo  binary.ByteOrder
}

func newFieldReader(buf []byte, bo binary.ByteOrder) fieldReader {
	return fieldReader{buf: buf, bo: bo}
}

func (r *fieldReader) u8() uint8 {
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *fieldReader) u16() uint16 {
	v := r.bo.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *fieldReader) u32() uint32 {
	v := r.bo.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *fieldReader) u64() uint64 {
	v := r.bo.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

// word reads an address-width field: 4 bytes for ELFCLASS32 widened to
// uint64, 8 bytes for ELFCLASS64.
func (r *fieldReader) word(c Class) uint64 {
	if c == ELFCLASS32 {
		return uint64(r.u32())
	}
	return r.u64()
}
