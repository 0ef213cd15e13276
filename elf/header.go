package elf

import (
	"bytes"

	"github.com/pkg/errors"
)

// FileHeader is the decoded ELF header. Immutable after a successful parse.
type FileHeader struct {
	Class      Class
	Data       Data
	Version    uint8
	OSABI      OSABI
	ABIVersion uint8
	Type       Type
	Machine    Machine
	Entry      uint64

	Phoff     uint64
	Shoff     uint64
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// Identification block byte offsets.
const (
	eiClass      = 4
	eiData       = 5
	eiVersion    = 6
	eiOSABI      = 7
	eiABIVersion = 8
	eiNident     = 16
)

// Header and table entry sizes fixed by the standard per class.
const (
	ehsize32 = 52
	ehsize64 = 64

	phentsize32 = 32
	phentsize64 = 56

	shentsize32 = 40
	shentsize64 = 64
)

func (c Class) ehsize() uint16 {
	if c == ELFCLASS32 {
		return ehsize32
	}
	return ehsize64
}

func (c Class) phentsize() uint16 {
	if c == ELFCLASS32 {
		return phentsize32
	}
	return phentsize64
}

func (c Class) shentsize() uint16 {
	if c == ELFCLASS32 {
		return shentsize32
	}
	return shentsize64
}

// decodeFileHeader parses the identification block and the class-dependent
// remainder of the ELF header. It validates before it reads: magic first,
// then class and encoding, and only then the multi-byte fields using the
// detected byte order. The buffer is never mutated.
func decodeFileHeader(data []byte) (FileHeader, error) {
	var hdr FileHeader

	if len(data) < len(elfMagic) || !bytes.Equal(data[:len(elfMagic)], elfMagic) {
		return FileHeader{}, ErrInvalidMagic
	}
	if len(data) < eiNident {
		return FileHeader{}, errors.Wrap(ErrTruncatedHeader, "identification block")
	}

	hdr.Class = Class(data[eiClass])
	if hdr.Class != ELFCLASS32 && hdr.Class != ELFCLASS64 {
		return FileHeader{}, errors.Wrapf(ErrUnsupportedClass, "class %d", data[eiClass])
	}
	hdr.Data = Data(data[eiData])
	if hdr.Data != ELFDATA2LSB && hdr.Data != ELFDATA2MSB {
		return FileHeader{}, errors.Wrapf(ErrUnsupportedEncoding, "encoding %d", data[eiData])
	}
	hdr.Version = data[eiVersion]
	if hdr.Version != EV_CURRENT {
		return FileHeader{}, errors.Wrapf(ErrInvalidMagic, "ident version %d", hdr.Version)
	}
	hdr.OSABI = OSABI(data[eiOSABI])
	hdr.ABIVersion = data[eiABIVersion]

	want := int(hdr.Class.ehsize())
	if len(data) < want {
		return FileHeader{}, errors.Wrapf(ErrTruncatedHeader, "%d bytes, header needs %d", len(data), want)
	}

	r := newFieldReader(data[eiNident:want], hdr.Data.ByteOrder())
	hdr.Type = Type(r.u16())
	hdr.Machine = Machine(r.u16())
	if v := r.u32(); v != EV_CURRENT {
		return FileHeader{}, errors.Wrapf(ErrInvalidMagic, "header version %d", v)
	}
	hdr.Entry = r.word(hdr.Class)
	hdr.Phoff = r.word(hdr.Class)
	hdr.Shoff = r.word(hdr.Class)
	hdr.Flags = r.u32()
	hdr.Ehsize = r.u16()
	hdr.Phentsize = r.u16()
	hdr.Phnum = r.u16()
	hdr.Shentsize = r.u16()
	hdr.Shnum = r.u16()
	hdr.Shstrndx = r.u16()

	if hdr.Ehsize != hdr.Class.ehsize() {
		return FileHeader{}, errors.Wrapf(ErrTruncatedHeader, "declared header size %d, class needs %d", hdr.Ehsize, hdr.Class.ehsize())
	}

	return hdr, nil
}
