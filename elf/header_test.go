package elf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInvalidMagic(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{},
		{0x7f},
		{0x7f, 'E', 'L'},
		{'M', 'Z', 0, 0},
		{0x7f, 'E', 'L', 'G', 2, 1, 1, 0},
	} {
		f := New(data)
		err := f.Parse()
		require.ErrorIs(t, err, ErrInvalidMagic)
		_, err = f.Header()
		require.ErrorIs(t, err, ErrNotParsed)
	}
}

func TestParseTruncatedIdent(t *testing.T) {
	f := New([]byte{0x7f, 'E', 'L', 'F', 2, 1, 1})
	require.ErrorIs(t, f.Parse(), ErrTruncatedHeader)
}

func TestParseUnsupportedClass(t *testing.T) {
	data := newTestFile64LE().build()
	data[eiClass] = 3
	require.ErrorIs(t, New(data).Parse(), ErrUnsupportedClass)

	data[eiClass] = 0
	require.ErrorIs(t, New(data).Parse(), ErrUnsupportedClass)
}

func TestParseUnsupportedEncoding(t *testing.T) {
	data := newTestFile64LE().build()
	data[eiData] = 3
	require.ErrorIs(t, New(data).Parse(), ErrUnsupportedEncoding)

	data[eiData] = 0
	require.ErrorIs(t, New(data).Parse(), ErrUnsupportedEncoding)
}

func TestParseBadVersion(t *testing.T) {
	data := newTestFile64LE().build()
	data[eiVersion] = 2
	require.ErrorIs(t, New(data).Parse(), ErrInvalidMagic)
}

func TestParseTruncatedHeader(t *testing.T) {
	data := newTestFile64LE().build()
	require.ErrorIs(t, New(data[:40]).Parse(), ErrTruncatedHeader)
	require.ErrorIs(t, New(data[:ehsize64-1]).Parse(), ErrTruncatedHeader)
}

func TestParseDeclaredSizeMismatch(t *testing.T) {
	data := newTestFile64LE().build()
	// e_ehsize for ELF64 sits at offset 52.
	data[52] = 60
	require.ErrorIs(t, New(data).Parse(), ErrTruncatedHeader)
}

func TestClassEncodingRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		class Class
		enc   Data
	}{
		{ELFCLASS32, ELFDATA2LSB},
		{ELFCLASS32, ELFDATA2MSB},
		{ELFCLASS64, ELFDATA2LSB},
		{ELFCLASS64, ELFDATA2MSB},
	} {
		tf := newTestFile(tc.class, tc.enc)
		tf.entry = 0x401000
		f := New(tf.build())
		require.NoError(t, f.Parse())
		hdr, err := f.Header()
		require.NoError(t, err)
		require.Equal(t, tc.class, hdr.Class)
		require.Equal(t, tc.enc, hdr.Data)
		require.Equal(t, ET_DYN, hdr.Type)
		require.Equal(t, EM_X86_64, hdr.Machine)
		require.Equal(t, uint64(0x401000), hdr.Entry)
		require.Equal(t, tc.class.ehsize(), hdr.Ehsize)
	}
}

func TestParseIdempotent(t *testing.T) {
	f := New(newTestFile64LE().addProg(Prog{Type: PT_LOAD}).build())
	require.NoError(t, f.Parse())
	first, err := f.Header()
	require.NoError(t, err)

	require.NoError(t, f.Parse())
	second, err := f.Header()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestNotParsedBeforeParse(t *testing.T) {
	f := New(newTestFile64LE().build())

	_, err := f.Header()
	require.ErrorIs(t, err, ErrNotParsed)
	_, err = f.Shstrndx()
	require.ErrorIs(t, err, ErrNotParsed)
	_, err = f.ProgIterator()
	require.ErrorIs(t, err, ErrNotParsed)
	_, err = f.SectionIterator()
	require.ErrorIs(t, err, ErrNotParsed)

	require.NoError(t, f.Parse())
	_, err = f.Header()
	require.NoError(t, err)
}

func TestParseFailureLeavesUnparsed(t *testing.T) {
	data := newTestFile64LE().build()
	data[eiClass] = 9
	f := New(data)
	require.Error(t, f.Parse())
	_, err := f.ProgIterator()
	require.ErrorIs(t, err, ErrNotParsed)
}
