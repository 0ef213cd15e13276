package elf

import (
	"bytes"

	"github.com/pkg/errors"
)

// Shstrtab returns the section holding section names, or
// ErrInvalidStringTableIndex / ErrTruncatedTable when the header points
// nowhere useful.
func (f *File) Shstrtab() (Section, error) {
	if !f.parsed {
		return Section{}, ErrNotParsed
	}
	if f.hdr.Shstrndx == SHN_UNDEF {
		return Section{}, errors.Wrap(ErrInvalidStringTableIndex, "no section string table")
	}
	if err := validateShstrndx(f.hdr); err != nil {
		return Section{}, err
	}
	return f.section(int(f.hdr.Shstrndx))
}

// StringAt reads the NUL-terminated string at off inside the given string
// table section. The second return is false when the offset is out of
// range or the string runs off the section end.
func (f *File) StringAt(strtab *Section, off uint32) (string, bool) {
	if !f.parsed {
		return "", false
	}
	if uint64(off) >= strtab.Size {
		return "", false
	}
	if strtab.Offset > uint64(len(f.data)) || strtab.Size > uint64(len(f.data))-strtab.Offset {
		return "", false
	}
	return f.stringAt(int(strtab.Offset)+int(off), int(strtab.Offset+strtab.Size))
}

// stringAt extracts a string from the buffer, caching by absolute offset.
// Decoded names repeat a lot across section and symbol walks; the cache
// belongs to the File and dies with it.
func (f *File) stringAt(start, end int) (string, bool) {
	if s, ok := f.strCache[start]; ok {
		return s, true
	}
	i := bytes.IndexByte(f.data[start:end], 0)
	if i < 0 {
		return "", false
	}
	s := string(f.data[start : start+i])
	if f.strCache == nil {
		f.strCache = make(map[int]string)
	}
	f.strCache[start] = s
	return s, true
}

// SectionName resolves a section's name through the section header string
// table.
func (f *File) SectionName(s *Section) (string, bool) {
	strtab, err := f.Shstrtab()
	if err != nil {
		return "", false
	}
	return f.StringAt(&strtab, s.NameOff)
}

// SectionByName scans the section header table for the first section with
// the given name.
func (f *File) SectionByName(name string) (*Section, error) {
	it, err := f.SectionIterator()
	if err != nil {
		return nil, err
	}
	for it.Next() {
		s := it.Section()
		if n, ok := f.SectionName(&s); ok && n == name {
			return &s, nil
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

// SectionByType returns the first section of the given type.
func (f *File) SectionByType(typ SectionType) (*Section, error) {
	it, err := f.SectionIterator()
	if err != nil {
		return nil, err
	}
	for it.Next() {
		s := it.Section()
		if s.Type == typ {
			return &s, nil
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}
