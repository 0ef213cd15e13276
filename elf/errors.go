package elf

import "errors"

// Decode failures are deterministic functions of the input buffer. Every
// error returned by this package wraps exactly one of these sentinels, so
// callers classify with errors.Is.
var (
	ErrInvalidMagic            = errors.New("invalid ELF magic")
	ErrUnsupportedClass        = errors.New("unsupported ELF class")
	ErrUnsupportedEncoding     = errors.New("unsupported ELF data encoding")
	ErrTruncatedHeader         = errors.New("truncated ELF header")
	ErrTruncatedTable          = errors.New("truncated header table")
	ErrUnexpectedEntrySize     = errors.New("unexpected table entry size")
	ErrInvalidStringTableIndex = errors.New("section string table index out of range")
	ErrNotParsed               = errors.New("ELF file not parsed")
)
