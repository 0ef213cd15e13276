// Package symtab reads ELF symbol table sections (.symtab, .dynsym) on top
// of the elf package. It decodes entries structurally and resolves names
// through the linked string table; symbol binding and visibility semantics
// are left to the caller.
package symtab

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/binspect/binspect/elf"
)

// Sym is one decoded symbol table entry.
type Sym struct {
	NameOff uint32
	Info    byte
	Other   byte
	Shndx   uint16
	Value   uint64
	Size    uint64
}

// SymType is the low nibble of Info.
type SymType byte

const (
	STT_NOTYPE  SymType = 0
	STT_OBJECT  SymType = 1
	STT_FUNC    SymType = 2
	STT_SECTION SymType = 3
	STT_FILE    SymType = 4
	STT_COMMON  SymType = 5
	STT_TLS     SymType = 6
)

func (t SymType) String() string {
	switch t {
	case STT_NOTYPE:
		return "NOTYPE"
	case STT_OBJECT:
		return "OBJECT"
	case STT_FUNC:
		return "FUNC"
	case STT_SECTION:
		return "SECTION"
	case STT_FILE:
		return "FILE"
	case STT_COMMON:
		return "COMMON"
	case STT_TLS:
		return "TLS"
	}
	return "OTHER"
}

// SymBind is the high nibble of Info.
type SymBind byte

const (
	STB_LOCAL  SymBind = 0
	STB_GLOBAL SymBind = 1
	STB_WEAK   SymBind = 2
)

func (b SymBind) String() string {
	switch b {
	case STB_LOCAL:
		return "LOCAL"
	case STB_GLOBAL:
		return "GLOBAL"
	case STB_WEAK:
		return "WEAK"
	}
	return "OTHER"
}

func (s Sym) Type() SymType { return SymType(s.Info & 0xf) }
func (s Sym) Bind() SymBind { return SymBind(s.Info >> 4) }

// Entry strides fixed by the standard per class.
const (
	symSize32 = 16
	symSize64 = 24
)

var ErrNotSymTab = errors.New("not a symbol table section")

// Iterator yields Sym values from one symbol table section, lazily, in
// table order. Same contract as the elf package iterators: the section
// extent is validated up front and a decode failure aborts the rest of the
// table.
type Iterator struct {
	data  []byte
	bo    binary.ByteOrder
	class elf.Class

	next  int
	count int
	cur   Sym
	err   error
}

// NewIterator validates the section against the file and returns a fresh
// iterator over its entries.
func NewIterator(f *elf.File, sec *elf.Section) (*Iterator, error) {
	hdr, err := f.Header()
	if err != nil {
		return nil, err
	}
	if sec.Type != elf.SHT_SYMTAB && sec.Type != elf.SHT_DYNSYM {
		return nil, errors.Wrapf(ErrNotSymTab, "section %d type %s", sec.Index, sec.Type)
	}
	want := uint64(symSize64)
	if hdr.Class == elf.ELFCLASS32 {
		want = symSize32
	}
	if sec.Entsize != want {
		return nil, errors.Wrapf(elf.ErrUnexpectedEntrySize, "symbol entry size %d, class %s needs %d", sec.Entsize, hdr.Class, want)
	}
	data, err := f.SectionData(sec)
	if err != nil {
		return nil, err
	}
	return &Iterator{
		data:  data,
		bo:    hdr.Data.ByteOrder(),
		class: hdr.Class,
		count: len(data) / int(want),
	}, nil
}

func (it *Iterator) Next() bool {
	if it.err != nil || it.next >= it.count {
		return false
	}
	it.cur = it.sym(it.next)
	it.next++
	return true
}

// Sym returns the entry decoded by the last successful Next.
func (it *Iterator) Sym() Sym { return it.cur }

func (it *Iterator) Err() error { return it.err }

func (it *Iterator) sym(i int) Sym {
	var s Sym
	if it.class == elf.ELFCLASS32 {
		b := it.data[i*symSize32:]
		s.NameOff = it.bo.Uint32(b)
		s.Value = uint64(it.bo.Uint32(b[4:]))
		s.Size = uint64(it.bo.Uint32(b[8:]))
		s.Info = b[12]
		s.Other = b[13]
		s.Shndx = it.bo.Uint16(b[14:])
		return s
	}
	b := it.data[i*symSize64:]
	s.NameOff = it.bo.Uint32(b)
	s.Info = b[4]
	s.Other = b[5]
	s.Shndx = it.bo.Uint16(b[6:])
	s.Value = it.bo.Uint64(b[8:])
	s.Size = it.bo.Uint64(b[16:])
	return s
}
