package elf

import "fmt"

// Class is the file's address width, from the identification block.
type Class uint8

const (
	ELFCLASSNONE Class = 0
	ELFCLASS32   Class = 1
	ELFCLASS64   Class = 2
)

func (c Class) String() string {
	switch c {
	case ELFCLASS32:
		return "ELF32"
	case ELFCLASS64:
		return "ELF64"
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// Data is the byte order of all multi-byte fields.
type Data uint8

const (
	ELFDATANONE Data = 0
	ELFDATA2LSB Data = 1
	ELFDATA2MSB Data = 2
)

func (d Data) String() string {
	switch d {
	case ELFDATA2LSB:
		return "little-endian"
	case ELFDATA2MSB:
		return "big-endian"
	}
	return fmt.Sprintf("Data(%d)", uint8(d))
}

// OSABI is the declared operating system ABI.
type OSABI uint8

const (
	OSABI_SYSV       OSABI = 0
	OSABI_HPUX       OSABI = 1
	OSABI_NETBSD     OSABI = 2
	OSABI_GNU        OSABI = 3
	OSABI_SOLARIS    OSABI = 6
	OSABI_AIX        OSABI = 8
	OSABI_IRIX       OSABI = 9
	OSABI_FREEBSD    OSABI = 10
	OSABI_TRU64      OSABI = 11
	OSABI_MODESTO    OSABI = 12
	OSABI_OPENBSD    OSABI = 13
	OSABI_ARM_AEABI  OSABI = 64
	OSABI_ARM        OSABI = 97
	OSABI_STANDALONE OSABI = 255
)

func (a OSABI) String() string {
	switch a {
	case OSABI_SYSV:
		return "UNIX System V"
	case OSABI_HPUX:
		return "HP-UX"
	case OSABI_NETBSD:
		return "NetBSD"
	case OSABI_GNU:
		return "GNU/Linux"
	case OSABI_SOLARIS:
		return "Solaris"
	case OSABI_AIX:
		return "AIX"
	case OSABI_IRIX:
		return "IRIX"
	case OSABI_FREEBSD:
		return "FreeBSD"
	case OSABI_TRU64:
		return "Tru64"
	case OSABI_MODESTO:
		return "Novell Modesto"
	case OSABI_OPENBSD:
		return "OpenBSD"
	case OSABI_ARM_AEABI:
		return "ARM EABI"
	case OSABI_ARM:
		return "ARM"
	case OSABI_STANDALONE:
		return "standalone"
	}
	return fmt.Sprintf("OSABI(%d)", uint8(a))
}

// Type is the object file type.
type Type uint16

const (
	ET_NONE   Type = 0
	ET_REL    Type = 1
	ET_EXEC   Type = 2
	ET_DYN    Type = 3
	ET_CORE   Type = 4
	ET_LOOS   Type = 0xfe00
	ET_HIOS   Type = 0xfeff
	ET_LOPROC Type = 0xff00
	ET_HIPROC Type = 0xffff
)

func (t Type) String() string {
	switch t {
	case ET_NONE:
		return "NONE"
	case ET_REL:
		return "REL"
	case ET_EXEC:
		return "EXEC"
	case ET_DYN:
		return "DYN"
	case ET_CORE:
		return "CORE"
	}
	if t >= ET_LOOS && t <= ET_HIOS {
		return fmt.Sprintf("OS(%#x)", uint16(t))
	}
	if t >= ET_LOPROC {
		return fmt.Sprintf("PROC(%#x)", uint16(t))
	}
	return fmt.Sprintf("Type(%d)", uint16(t))
}

// Machine is the target instruction set architecture.
type Machine uint16

const (
	EM_NONE    Machine = 0
	EM_386     Machine = 3
	EM_ARM     Machine = 0x28
	EM_X86_64  Machine = 0x3e
	EM_AARCH64 Machine = 0xb7
	EM_RISCV   Machine = 0xf3
	EM_BPF     Machine = 0xf7
)

func (m Machine) String() string {
	switch m {
	case EM_NONE:
		return "none"
	case EM_386:
		return "i386"
	case EM_ARM:
		return "arm"
	case EM_X86_64:
		return "x86-64"
	case EM_AARCH64:
		return "aarch64"
	case EM_RISCV:
		return "riscv"
	case EM_BPF:
		return "bpf"
	}
	return fmt.Sprintf("Machine(%d)", uint16(m))
}

// ProgType identifies a program header (segment) type.
type ProgType uint32

const (
	PT_NULL    ProgType = 0
	PT_LOAD    ProgType = 1
	PT_DYNAMIC ProgType = 2
	PT_INTERP  ProgType = 3
	PT_NOTE    ProgType = 4
	PT_SHLIB   ProgType = 5
	PT_PHDR    ProgType = 6
	PT_TLS     ProgType = 7

	PT_GNU_EH_FRAME ProgType = 0x6474e550
	PT_GNU_STACK    ProgType = 0x6474e551
	PT_GNU_RELRO    ProgType = 0x6474e552
	PT_GNU_PROPERTY ProgType = 0x6474e553

	PT_LOOS   ProgType = 0x60000000
	PT_HIOS   ProgType = 0x6fffffff
	PT_LOPROC ProgType = 0x70000000
	PT_HIPROC ProgType = 0x7fffffff
)

func (t ProgType) String() string {
	switch t {
	case PT_NULL:
		return "NULL"
	case PT_LOAD:
		return "LOAD"
	case PT_DYNAMIC:
		return "DYNAMIC"
	case PT_INTERP:
		return "INTERP"
	case PT_NOTE:
		return "NOTE"
	case PT_SHLIB:
		return "SHLIB"
	case PT_PHDR:
		return "PHDR"
	case PT_TLS:
		return "TLS"
	case PT_GNU_EH_FRAME:
		return "GNU_EH_FRAME"
	case PT_GNU_STACK:
		return "GNU_STACK"
	case PT_GNU_RELRO:
		return "GNU_RELRO"
	case PT_GNU_PROPERTY:
		return "GNU_PROPERTY"
	}
	if t >= PT_LOOS && t <= PT_HIOS {
		return fmt.Sprintf("OS(%#x)", uint32(t))
	}
	if t >= PT_LOPROC {
		return fmt.Sprintf("PROC(%#x)", uint32(t))
	}
	return fmt.Sprintf("ProgType(%d)", uint32(t))
}

// ProgFlag is the segment permission mask.
type ProgFlag uint32

const (
	PF_X ProgFlag = 1 << 0
	PF_W ProgFlag = 1 << 1
	PF_R ProgFlag = 1 << 2
)

func (f ProgFlag) Read() bool  { return f&PF_R != 0 }
func (f ProgFlag) Write() bool { return f&PF_W != 0 }
func (f ProgFlag) Exec() bool  { return f&PF_X != 0 }

func (f ProgFlag) String() string {
	b := [3]byte{'-', '-', '-'}
	if f.Read() {
		b[0] = 'r'
	}
	if f.Write() {
		b[1] = 'w'
	}
	if f.Exec() {
		b[2] = 'x'
	}
	return string(b[:])
}

// SectionType identifies a section header type.
type SectionType uint32

const (
	SHT_NULL          SectionType = 0
	SHT_PROGBITS      SectionType = 1
	SHT_SYMTAB        SectionType = 2
	SHT_STRTAB        SectionType = 3
	SHT_RELA          SectionType = 4
	SHT_HASH          SectionType = 5
	SHT_DYNAMIC       SectionType = 6
	SHT_NOTE          SectionType = 7
	SHT_NOBITS        SectionType = 8
	SHT_REL           SectionType = 9
	SHT_SHLIB         SectionType = 10
	SHT_DYNSYM        SectionType = 11
	SHT_INIT_ARRAY    SectionType = 14
	SHT_FINI_ARRAY    SectionType = 15
	SHT_PREINIT_ARRAY SectionType = 16
	SHT_GROUP         SectionType = 17
	SHT_SYMTAB_SHNDX  SectionType = 18
	SHT_RELR          SectionType = 19

	SHT_GNU_ATTRIBUTES SectionType = 0x6ffffff5
	SHT_GNU_HASH       SectionType = 0x6ffffff6
	SHT_GNU_LIBLIST    SectionType = 0x6ffffff7

	SHT_LOOS   SectionType = 0x60000000
	SHT_HIOS   SectionType = 0x6fffffff
	SHT_LOPROC SectionType = 0x70000000
	SHT_HIPROC SectionType = 0x7fffffff
	SHT_LOUSER SectionType = 0x80000000
	SHT_HIUSER SectionType = 0x8fffffff
)

func (t SectionType) String() string {
	switch t {
	case SHT_NULL:
		return "NULL"
	case SHT_PROGBITS:
		return "PROGBITS"
	case SHT_SYMTAB:
		return "SYMTAB"
	case SHT_STRTAB:
		return "STRTAB"
	case SHT_RELA:
		return "RELA"
	case SHT_HASH:
		return "HASH"
	case SHT_DYNAMIC:
		return "DYNAMIC"
	case SHT_NOTE:
		return "NOTE"
	case SHT_NOBITS:
		return "NOBITS"
	case SHT_REL:
		return "REL"
	case SHT_SHLIB:
		return "SHLIB"
	case SHT_DYNSYM:
		return "DYNSYM"
	case SHT_INIT_ARRAY:
		return "INIT_ARRAY"
	case SHT_FINI_ARRAY:
		return "FINI_ARRAY"
	case SHT_PREINIT_ARRAY:
		return "PREINIT_ARRAY"
	case SHT_GROUP:
		return "GROUP"
	case SHT_SYMTAB_SHNDX:
		return "SYMTAB_SHNDX"
	case SHT_RELR:
		return "RELR"
	case SHT_GNU_ATTRIBUTES:
		return "GNU_ATTRIBUTES"
	case SHT_GNU_HASH:
		return "GNU_HASH"
	case SHT_GNU_LIBLIST:
		return "GNU_LIBLIST"
	}
	if t >= SHT_LOOS && t <= SHT_HIOS {
		return fmt.Sprintf("OS(%#x)", uint32(t))
	}
	if t >= SHT_LOPROC && t <= SHT_HIPROC {
		return fmt.Sprintf("PROC(%#x)", uint32(t))
	}
	if t >= SHT_LOUSER {
		return fmt.Sprintf("USER(%#x)", uint32(t))
	}
	return fmt.Sprintf("SectionType(%d)", uint32(t))
}

// SectionFlag is the section attribute mask.
type SectionFlag uint64

const (
	SHF_WRITE            SectionFlag = 1 << 0
	SHF_ALLOC            SectionFlag = 1 << 1
	SHF_EXECINSTR        SectionFlag = 1 << 2
	SHF_MERGE            SectionFlag = 1 << 4
	SHF_STRINGS          SectionFlag = 1 << 5
	SHF_INFO_LINK        SectionFlag = 1 << 6
	SHF_LINK_ORDER       SectionFlag = 1 << 7
	SHF_OS_NONCONFORMING SectionFlag = 1 << 8
	SHF_GROUP            SectionFlag = 1 << 9
	SHF_TLS              SectionFlag = 1 << 10
	SHF_COMPRESSED       SectionFlag = 1 << 11
)

func (f SectionFlag) Write() bool      { return f&SHF_WRITE != 0 }
func (f SectionFlag) Alloc() bool      { return f&SHF_ALLOC != 0 }
func (f SectionFlag) Exec() bool       { return f&SHF_EXECINSTR != 0 }
func (f SectionFlag) Merge() bool      { return f&SHF_MERGE != 0 }
func (f SectionFlag) Strings() bool    { return f&SHF_STRINGS != 0 }
func (f SectionFlag) TLS() bool        { return f&SHF_TLS != 0 }
func (f SectionFlag) Compressed() bool { return f&SHF_COMPRESSED != 0 }

// SHN_UNDEF marks an undefined or missing section reference.
const SHN_UNDEF = 0

// EV_CURRENT is the only defined ELF version.
const EV_CURRENT = 1
