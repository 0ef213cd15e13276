package elf

import (
	"bytes"
	"encoding/binary"
)

// testFile assembles synthetic ELF buffers for tests: header, program
// header table, section data blobs, .shstrtab, section header table, in
// that order. Error cases patch the produced bytes at known offsets.
type testFile struct {
	class   Class
	enc     Data
	typ     Type
	machine Machine
	entry   uint64
	progs   []Prog
	secs    []testSection
}

type testSection struct {
	name      string
	typ       SectionType
	flags     SectionFlag
	addr      uint64
	data      []byte
	link      uint32
	info      uint32
	addralign uint64
	entsize   uint64
}

func newTestFile64LE() *testFile {
	return &testFile{
		class:   ELFCLASS64,
		enc:     ELFDATA2LSB,
		typ:     ET_DYN,
		machine: EM_X86_64,
	}
}

func newTestFile(class Class, enc Data) *testFile {
	tf := newTestFile64LE()
	tf.class = class
	tf.enc = enc
	return tf
}

func (tf *testFile) addProg(p Prog) *testFile {
	tf.progs = append(tf.progs, p)
	return tf
}

func (tf *testFile) addSection(s testSection) *testFile {
	tf.secs = append(tf.secs, s)
	return tf
}

type elfWriter struct {
	buf   bytes.Buffer
	bo    binary.ByteOrder
	class Class
}

func (w *elfWriter) u8(v uint8)   { w.buf.WriteByte(v) }
func (w *elfWriter) u16(v uint16) { _ = binary.Write(&w.buf, w.bo, v) }
func (w *elfWriter) u32(v uint32) { _ = binary.Write(&w.buf, w.bo, v) }
func (w *elfWriter) u64(v uint64) { _ = binary.Write(&w.buf, w.bo, v) }

func (w *elfWriter) word(v uint64) {
	if w.class == ELFCLASS32 {
		w.u32(uint32(v))
	} else {
		w.u64(v)
	}
}

// build lays the file out and returns the raw buffer. When the file has
// sections, a NULL section and a trailing .shstrtab are added and
// e_shstrndx points at the latter.
func (tf *testFile) build() []byte {
	ehsize := uint64(tf.class.ehsize())
	phentsize := tf.class.phentsize()
	shentsize := tf.class.shentsize()

	var phoff uint64
	off := ehsize
	if len(tf.progs) > 0 {
		phoff = off
		off += uint64(len(tf.progs)) * uint64(phentsize)
	}

	// Full section list: NULL + declared + .shstrtab.
	var secs []testSection
	var shoff uint64
	var shstrtab []byte
	nameOffs := map[int]uint32{}
	if len(tf.secs) > 0 {
		secs = append(secs, testSection{typ: SHT_NULL})
		secs = append(secs, tf.secs...)
		secs = append(secs, testSection{name: ".shstrtab", typ: SHT_STRTAB, addralign: 1})

		shstrtab = []byte{0}
		for i := range secs {
			if secs[i].name == "" {
				nameOffs[i] = 0
				continue
			}
			nameOffs[i] = uint32(len(shstrtab))
			shstrtab = append(shstrtab, secs[i].name...)
			shstrtab = append(shstrtab, 0)
		}
	}

	secOffs := map[int]uint64{}
	for i := range secs {
		if len(secs[i].data) == 0 || secs[i].typ == SHT_NOBITS {
			continue
		}
		secOffs[i] = off
		off += uint64(len(secs[i].data))
	}
	if len(secs) > 0 {
		// .shstrtab blob is the last section's data.
		secOffs[len(secs)-1] = off
		secs[len(secs)-1].data = shstrtab
		off += uint64(len(shstrtab))
		shoff = off
	}

	w := &elfWriter{bo: tf.enc.ByteOrder(), class: tf.class}
	w.buf.Write(elfMagic)
	w.u8(uint8(tf.class))
	w.u8(uint8(tf.enc))
	w.u8(EV_CURRENT)
	w.u8(uint8(OSABI_SYSV))
	w.u8(0)
	w.buf.Write(make([]byte, 7))

	w.u16(uint16(tf.typ))
	w.u16(uint16(tf.machine))
	w.u32(EV_CURRENT)
	w.word(tf.entry)
	w.word(phoff)
	w.word(shoff)
	w.u32(0)
	w.u16(uint16(ehsize))
	w.u16(phentsize)
	w.u16(uint16(len(tf.progs)))
	w.u16(shentsize)
	w.u16(uint16(len(secs)))
	if len(secs) > 0 {
		w.u16(uint16(len(secs) - 1))
	} else {
		w.u16(SHN_UNDEF)
	}

	for _, p := range tf.progs {
		w.u32(uint32(p.Type))
		if tf.class == ELFCLASS32 {
			w.u32(uint32(p.Off))
			w.u32(uint32(p.Vaddr))
			w.u32(uint32(p.Paddr))
			w.u32(uint32(p.Filesz))
			w.u32(uint32(p.Memsz))
			w.u32(uint32(p.Flags))
			w.u32(uint32(p.Align))
		} else {
			w.u32(uint32(p.Flags))
			w.u64(p.Off)
			w.u64(p.Vaddr)
			w.u64(p.Paddr)
			w.u64(p.Filesz)
			w.u64(p.Memsz)
			w.u64(p.Align)
		}
	}

	for i := range secs {
		if _, ok := secOffs[i]; ok {
			w.buf.Write(secs[i].data)
		}
	}

	for i := range secs {
		s := secs[i]
		size := uint64(len(s.data))
		w.u32(nameOffs[i])
		w.u32(uint32(s.typ))
		w.word(uint64(s.flags))
		w.word(s.addr)
		w.word(secOffs[i])
		w.word(size)
		w.u32(s.link)
		w.u32(s.info)
		w.word(s.addralign)
		w.word(s.entsize)
	}

	return w.buf.Bytes()
}
