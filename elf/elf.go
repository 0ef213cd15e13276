// Package elf decodes ELF headers, program header tables and section header
// tables from an in-memory buffer. It performs no I/O: callers own the
// buffer, the package only borrows it and copies out fixed-width fields.
// Malformed or truncated input produces a decode error, never an
// out-of-bounds access or a partially populated structure.
package elf

import (
	"github.com/pkg/errors"
)

// File is a view over a raw ELF buffer. It starts unparsed; Parse either
// publishes the header or fails and leaves the file unparsed. The buffer is
// treated as read-only, so a parsed File is safe for concurrent readers.
type File struct {
	data   []byte
	hdr    FileHeader
	parsed bool

	strCache map[int]string
}

// New attaches a buffer without decoding anything.
func New(data []byte) *File {
	return &File{data: data}
}

// Parse decodes and validates the ELF header and the extents of both header
// tables. Calling Parse on an already parsed file is a no-op: the buffer is
// immutable, so the result cannot change.
func (f *File) Parse() error {
	if f.parsed {
		return nil
	}
	hdr, err := decodeFileHeader(f.data)
	if err != nil {
		return err
	}
	if err := validateTable(hdr.Class, hdr.Phoff, hdr.Phnum, hdr.Phentsize, hdr.Class.phentsize(), len(f.data)); err != nil {
		return errors.Wrap(err, "program header table")
	}
	if err := validateTable(hdr.Class, hdr.Shoff, hdr.Shnum, hdr.Shentsize, hdr.Class.shentsize(), len(f.data)); err != nil {
		return errors.Wrap(err, "section header table")
	}
	if err := validateShstrndx(hdr); err != nil {
		return err
	}
	f.hdr = hdr
	f.parsed = true
	return nil
}

// Header returns the decoded header, or ErrNotParsed before a successful
// Parse.
func (f *File) Header() (FileHeader, error) {
	if !f.parsed {
		return FileHeader{}, ErrNotParsed
	}
	return f.hdr, nil
}

// Shstrndx returns the section header string table index, guaranteed to be
// SHN_UNDEF or within [0, Shnum).
func (f *File) Shstrndx() (uint16, error) {
	if !f.parsed {
		return 0, ErrNotParsed
	}
	return f.hdr.Shstrndx, nil
}

// validateTable checks a header table extent against the buffer. A declared
// entry size that does not match the class stride is rejected before any
// arithmetic; count and size are 16 bit so their product cannot overflow,
// and the offset is compared before being added so a huge Phoff/Shoff
// cannot wrap either. An absent table (count 0, offset 0) is always valid.
func validateTable(c Class, off uint64, count, entsize, want uint16, buflen int) error {
	if count == 0 {
		return nil
	}
	if entsize != want {
		return errors.Wrapf(ErrUnexpectedEntrySize, "entry size %d, class %s needs %d", entsize, c, want)
	}
	need := uint64(count) * uint64(entsize)
	if off > uint64(buflen) || need > uint64(buflen)-off {
		return errors.Wrapf(ErrTruncatedTable, "offset %d count %d entry size %d exceeds %d bytes", off, count, entsize, buflen)
	}
	return nil
}

// validateShstrndx allows SHN_UNDEF (no string table) and otherwise
// requires the index to address an existing section header.
func validateShstrndx(hdr FileHeader) error {
	if hdr.Shstrndx == SHN_UNDEF {
		return nil
	}
	if hdr.Shstrndx >= hdr.Shnum {
		return errors.Wrapf(ErrInvalidStringTableIndex, "shstrndx %d, %d sections", hdr.Shstrndx, hdr.Shnum)
	}
	return nil
}
