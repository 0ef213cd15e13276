package elf

import (
	"github.com/pkg/errors"
)

// Section is one decoded section header table entry. NameOff is an offset
// into the section header string table; resolving it to a string is
// layered on top of the decoder, see File.SectionName.
type Section struct {
	NameOff   uint32
	Type      SectionType
	Flags     SectionFlag
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	Addralign uint64
	Entsize   uint64

	// Index is the entry's position in the section header table.
	Index int
}

// SectionIterator walks the section header table, same contract as
// ProgIterator.
type SectionIterator struct {
	f    *File
	next int
	cur  Section
	err  error
}

func (f *File) SectionIterator() (*SectionIterator, error) {
	if !f.parsed {
		return nil, ErrNotParsed
	}
	hdr := f.hdr
	if err := validateTable(hdr.Class, hdr.Shoff, hdr.Shnum, hdr.Shentsize, hdr.Class.shentsize(), len(f.data)); err != nil {
		return nil, errors.Wrap(err, "section header table")
	}
	return &SectionIterator{f: f}, nil
}

func (it *SectionIterator) Next() bool {
	if it.err != nil || it.next >= int(it.f.hdr.Shnum) {
		return false
	}
	s, err := it.f.section(it.next)
	if err != nil {
		it.err = err
		return false
	}
	it.cur = s
	it.next++
	return true
}

// Section returns the entry decoded by the last successful Next.
func (it *SectionIterator) Section() Section { return it.cur }

func (it *SectionIterator) Err() error { return it.err }

// Sections collects the whole section header table.
func (f *File) Sections() ([]Section, error) {
	it, err := f.SectionIterator()
	if err != nil {
		return nil, err
	}
	sections := make([]Section, 0, f.hdr.Shnum)
	for it.Next() {
		sections = append(sections, it.Section())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

func (f *File) section(i int) (Section, error) {
	hdr := f.hdr
	entsize := uint64(hdr.Shentsize)
	start := hdr.Shoff + uint64(i)*entsize
	if start > uint64(len(f.data)) || entsize > uint64(len(f.data))-start {
		return Section{}, errors.Wrapf(ErrTruncatedTable, "section header %d", i)
	}
	r := newFieldReader(f.data[start:start+entsize], hdr.Data.ByteOrder())

	s := Section{Index: i}
	s.NameOff = r.u32()
	s.Type = SectionType(r.u32())
	if hdr.Class == ELFCLASS32 {
		s.Flags = SectionFlag(r.u32())
		s.Addr = uint64(r.u32())
		s.Offset = uint64(r.u32())
		s.Size = uint64(r.u32())
		s.Link = r.u32()
		s.Info = r.u32()
		s.Addralign = uint64(r.u32())
		s.Entsize = uint64(r.u32())
		return s, nil
	}
	s.Flags = SectionFlag(r.u64())
	s.Addr = r.u64()
	s.Offset = r.u64()
	s.Size = r.u64()
	s.Link = r.u32()
	s.Info = r.u32()
	s.Addralign = r.u64()
	s.Entsize = r.u64()
	return s, nil
}

// SectionData copies out the bytes a section points at. SHT_NOBITS sections
// occupy no file space and yield an empty slice.
func (f *File) SectionData(s *Section) ([]byte, error) {
	if !f.parsed {
		return nil, ErrNotParsed
	}
	if s.Type == SHT_NOBITS {
		return nil, nil
	}
	if s.Offset > uint64(len(f.data)) || s.Size > uint64(len(f.data))-s.Offset {
		return nil, errors.Wrapf(ErrTruncatedTable, "section %d data [%d:+%d]", s.Index, s.Offset, s.Size)
	}
	res := make([]byte, s.Size)
	copy(res, f.data[s.Offset:s.Offset+s.Size])
	return res, nil
}
