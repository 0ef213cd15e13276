package elf

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// BuildID identifies the binary for caching. Typ records where it came
// from: a GNU build-id note, a Go build id note, or a hash of the buffer
// when neither note is present.
type BuildID struct {
	ID  string
	Typ string
}

func GNUBuildID(s string) BuildID  { return BuildID{ID: s, Typ: "gnu"} }
func GoBuildID(s string) BuildID   { return BuildID{ID: s, Typ: "go"} }
func HashBuildID(s string) BuildID { return BuildID{ID: s, Typ: "hash"} }

func (b *BuildID) Empty() bool { return b.ID == "" || b.Typ == "" }
func (b *BuildID) GNU() bool   { return b.Typ == "gnu" }

var ErrNoBuildIDSection = errors.New("build ID section not found")

// BuildID prefers the GNU note, then the Go note, and finally falls back
// to an xxhash of the whole buffer so the result is always usable as a
// cache key.
func (f *File) BuildID() (BuildID, error) {
	id, err := f.GNUBuildID()
	if err != nil && !errors.Is(err, ErrNoBuildIDSection) {
		return BuildID{}, err
	}
	if !id.Empty() {
		return id, nil
	}
	id, err = f.GoBuildID()
	if err != nil && !errors.Is(err, ErrNoBuildIDSection) {
		return BuildID{}, err
	}
	if !id.Empty() {
		return id, nil
	}
	if !f.parsed {
		return BuildID{}, ErrNotParsed
	}
	return HashBuildID(fmt.Sprintf("%016x", xxhash.Sum64(f.data))), nil
}

var goBuildIDSep = []byte("/")

// GoBuildID reads the .note.go.buildid section written by the Go linker.
func (f *File) GoBuildID() (BuildID, error) {
	sec, err := f.SectionByName(".note.go.buildid")
	if err != nil {
		return BuildID{}, err
	}
	if sec == nil {
		return BuildID{}, ErrNoBuildIDSection
	}
	data, err := f.SectionData(sec)
	if err != nil {
		return BuildID{}, errors.Wrap(err, "reading .note.go.buildid")
	}
	if len(data) < 17 {
		return BuildID{}, errors.New(".note.go.buildid is too small")
	}
	data = data[16 : len(data)-1]
	if len(data) < 40 || bytes.Count(data, goBuildIDSep) < 2 {
		return BuildID{}, errors.New("wrong .note.go.buildid")
	}
	id := string(data)
	if id == "redacted" {
		return BuildID{}, errors.New("blacklisted .note.go.buildid")
	}
	return GoBuildID(id), nil
}

// GNUBuildID reads the .note.gnu.build-id section.
func (f *File) GNUBuildID() (BuildID, error) {
	sec, err := f.SectionByName(".note.gnu.build-id")
	if err != nil {
		return BuildID{}, err
	}
	if sec == nil {
		return BuildID{}, ErrNoBuildIDSection
	}
	data, err := f.SectionData(sec)
	if err != nil {
		return BuildID{}, errors.Wrap(err, "reading .note.gnu.build-id")
	}
	if len(data) < 16 {
		return BuildID{}, errors.New(".note.gnu.build-id is too small")
	}
	if !bytes.Equal([]byte("GNU"), data[12:15]) {
		return BuildID{}, errors.New(".note.gnu.build-id is not a GNU build-id")
	}
	rawBuildID := data[16:]
	if len(rawBuildID) != 20 && len(rawBuildID) != 8 { // 8 is xxhash, for example in Container-Optimized OS
		return BuildID{}, errors.Errorf(".note.gnu.build-id has wrong size %d", len(rawBuildID))
	}
	return GNUBuildID(hex.EncodeToString(rawBuildID)), nil
}
