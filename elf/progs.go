package elf

import (
	"github.com/pkg/errors"
)

// Prog is one decoded program header table entry.
type Prog struct {
	Type   ProgType
	Flags  ProgFlag
	Off    uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

// ProgIterator walks the program header table one entry per Next call.
// Iterators are cheap and carry no shared state: request a fresh one to
// restart. A decode failure sticks; Err reports it after Next returns false.
type ProgIterator struct {
	f    *File
	next int
	cur  Prog
	err  error
}

// ProgIterator validates the whole table extent before yielding anything,
// so a truncated or misdeclared table fails here rather than part way
// through iteration.
func (f *File) ProgIterator() (*ProgIterator, error) {
	if !f.parsed {
		return nil, ErrNotParsed
	}
	hdr := f.hdr
	if err := validateTable(hdr.Class, hdr.Phoff, hdr.Phnum, hdr.Phentsize, hdr.Class.phentsize(), len(f.data)); err != nil {
		return nil, errors.Wrap(err, "program header table")
	}
	return &ProgIterator{f: f}, nil
}

// Next decodes the next entry. It returns false when the table is exhausted
// or a decode error occurred.
func (it *ProgIterator) Next() bool {
	if it.err != nil || it.next >= int(it.f.hdr.Phnum) {
		return false
	}
	p, err := it.f.prog(it.next)
	if err != nil {
		it.err = err
		return false
	}
	it.cur = p
	it.next++
	return true
}

// Prog returns the entry decoded by the last successful Next.
func (it *ProgIterator) Prog() Prog { return it.cur }

func (it *ProgIterator) Err() error { return it.err }

// Progs collects the whole program header table.
func (f *File) Progs() ([]Prog, error) {
	it, err := f.ProgIterator()
	if err != nil {
		return nil, err
	}
	progs := make([]Prog, 0, f.hdr.Phnum)
	for it.Next() {
		progs = append(progs, it.Prog())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return progs, nil
}

// prog decodes entry i. The entry window is re-checked against the buffer
// even though the iterator validated the table: entry size and offset come
// from untrusted input.
func (f *File) prog(i int) (Prog, error) {
	hdr := f.hdr
	entsize := uint64(hdr.Phentsize)
	start := hdr.Phoff + uint64(i)*entsize
	if start > uint64(len(f.data)) || entsize > uint64(len(f.data))-start {
		return Prog{}, errors.Wrapf(ErrTruncatedTable, "program header %d", i)
	}
	r := newFieldReader(f.data[start:start+entsize], hdr.Data.ByteOrder())

	var p Prog
	p.Type = ProgType(r.u32())
	if hdr.Class == ELFCLASS32 {
		p.Off = uint64(r.u32())
		p.Vaddr = uint64(r.u32())
		p.Paddr = uint64(r.u32())
		p.Filesz = uint64(r.u32())
		p.Memsz = uint64(r.u32())
		p.Flags = ProgFlag(r.u32())
		p.Align = uint64(r.u32())
		return p, nil
	}
	p.Flags = ProgFlag(r.u32())
	p.Off = r.u64()
	p.Vaddr = r.u64()
	p.Paddr = r.u64()
	p.Filesz = r.u64()
	p.Memsz = r.u64()
	p.Align = r.u64()
	return p, nil
}
