package elf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// The minimal interesting file: ELF64 little-endian, header size 64, one
// LOAD entry of 56 bytes at offset 64 with every other field zero.
func TestProgIterMinimal(t *testing.T) {
	f := New(newTestFile64LE().addProg(Prog{Type: PT_LOAD}).build())
	require.NoError(t, f.Parse())

	it, err := f.ProgIterator()
	require.NoError(t, err)

	require.True(t, it.Next())
	p := it.Prog()
	require.Equal(t, PT_LOAD, p.Type)
	require.Equal(t, Prog{Type: PT_LOAD}, p)

	require.False(t, it.Next())
	require.NoError(t, it.Err())
}

func TestProgFieldRoundTrip(t *testing.T) {
	want := []Prog{
		{Type: PT_PHDR, Flags: PF_R, Off: 0x40, Vaddr: 0x400040, Paddr: 0x400040, Filesz: 0x1f8, Memsz: 0x1f8, Align: 8},
		{Type: PT_LOAD, Flags: PF_R | PF_X, Off: 0x1000, Vaddr: 0x401000, Paddr: 0x401000, Filesz: 0x2000, Memsz: 0x2000, Align: 0x1000},
		{Type: PT_GNU_STACK, Flags: PF_R | PF_W, Align: 0x10},
	}
	for _, tc := range []struct {
		class Class
		enc   Data
	}{
		{ELFCLASS64, ELFDATA2LSB},
		{ELFCLASS64, ELFDATA2MSB},
		{ELFCLASS32, ELFDATA2LSB},
		{ELFCLASS32, ELFDATA2MSB},
	} {
		tf := newTestFile(tc.class, tc.enc)
		for _, p := range want {
			tf.addProg(p)
		}
		f := New(tf.build())
		require.NoError(t, f.Parse())
		progs, err := f.Progs()
		require.NoError(t, err)
		require.Equal(t, want, progs)
	}
}

func TestProgFlags(t *testing.T) {
	p := Prog{Flags: PF_R | PF_X}
	require.True(t, p.Flags.Read())
	require.False(t, p.Flags.Write())
	require.True(t, p.Flags.Exec())
	require.Equal(t, "r-x", p.Flags.String())
}

func TestProgTableTruncated(t *testing.T) {
	data := newTestFile64LE().addProg(Prog{Type: PT_LOAD}).build()
	// Point e_phoff past the end of the buffer.
	binary.LittleEndian.PutUint64(data[32:], uint64(len(data)))
	require.ErrorIs(t, New(data).Parse(), ErrTruncatedTable)
}

func TestProgTableOffsetOverflow(t *testing.T) {
	data := newTestFile64LE().addProg(Prog{Type: PT_LOAD}).build()
	// offset + count*entsize would wrap naive arithmetic.
	binary.LittleEndian.PutUint64(data[32:], ^uint64(0)-8)
	require.ErrorIs(t, New(data).Parse(), ErrTruncatedTable)
}

func TestProgUnexpectedEntrySize(t *testing.T) {
	tf := newTestFile(ELFCLASS32, ELFDATA2LSB)
	tf.addProg(Prog{Type: PT_LOAD})
	data := tf.build()
	// Declare ELF64-sized program header entries on an ELF32 file.
	binary.LittleEndian.PutUint16(data[42:], phentsize64)
	require.ErrorIs(t, New(data).Parse(), ErrUnexpectedEntrySize)
}

// The iterator re-validates the table itself, so a File whose header went
// bad after parse (impossible through the public API, forced here) still
// cannot read out of bounds.
func TestProgIteratorRevalidates(t *testing.T) {
	f := New(newTestFile64LE().addProg(Prog{Type: PT_LOAD}).build())
	require.NoError(t, f.Parse())

	f.hdr.Phoff = uint64(len(f.data)) + 1
	_, err := f.ProgIterator()
	require.ErrorIs(t, err, ErrTruncatedTable)

	f.hdr.Phentsize = phentsize32
	_, err = f.ProgIterator()
	require.ErrorIs(t, err, ErrUnexpectedEntrySize)
}

func TestProgIteratorRestartable(t *testing.T) {
	f := New(newTestFile64LE().
		addProg(Prog{Type: PT_PHDR, Off: 0x40}).
		addProg(Prog{Type: PT_LOAD, Off: 0x1000}).
		build())
	require.NoError(t, f.Parse())

	first, err := f.Progs()
	require.NoError(t, err)

	it, err := f.ProgIterator()
	require.NoError(t, err)
	var second []Prog
	for it.Next() {
		second = append(second, it.Prog())
	}
	require.NoError(t, it.Err())
	require.Equal(t, first, second)
}

func TestProgsEmptyTable(t *testing.T) {
	f := New(newTestFile64LE().build())
	require.NoError(t, f.Parse())
	progs, err := f.Progs()
	require.NoError(t, err)
	require.Empty(t, progs)
}
