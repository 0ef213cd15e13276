package symtab

import (
	"sort"

	"github.com/ianlancetaylor/demangle"
	"github.com/pkg/errors"

	"github.com/binspect/binspect/elf"
)

// Symbol is a named address collected from .symtab or .dynsym.
type Symbol struct {
	Value uint64
	Name  string
}

// SymbolOptions controls table construction.
type SymbolOptions struct {
	DemangleOptions []demangle.Option
}

// SymbolTable is a sorted flat index of symbols for address resolution.
type SymbolTable struct {
	symbols []Symbol
}

var ErrNoSymbols = errors.New("no symbol sections")

// NewSymbolTable collects symbols from every .symtab and .dynsym section,
// resolves names through each section's linked string table and returns
// them sorted by value. Unnamed entries and entries with value zero carry
// no address information and are dropped.
func NewSymbolTable(f *elf.File, opt *SymbolOptions) (*SymbolTable, error) {
	if opt == nil {
		opt = &SymbolOptions{}
	}
	sections, err := f.Sections()
	if err != nil {
		return nil, err
	}

	var symbols []Symbol
	found := false
	for i := range sections {
		sec := sections[i]
		if sec.Type != elf.SHT_SYMTAB && sec.Type != elf.SHT_DYNSYM {
			continue
		}
		if int(sec.Link) >= len(sections) {
			return nil, errors.Wrapf(elf.ErrInvalidStringTableIndex, "section %d links to %d", sec.Index, sec.Link)
		}
		strtab := sections[sec.Link]
		it, err := NewIterator(f, &sec)
		if err != nil {
			return nil, err
		}
		found = true
		for it.Next() {
			s := it.Sym()
			if s.Value == 0 || s.NameOff == 0 {
				continue
			}
			name, ok := f.StringAt(&strtab, s.NameOff)
			if !ok || name == "" {
				continue
			}
			if len(opt.DemangleOptions) > 0 {
				name = demangle.Filter(name, opt.DemangleOptions...)
			}
			symbols = append(symbols, Symbol{Value: s.Value, Name: name})
		}
		if err := it.Err(); err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, ErrNoSymbols
	}

	sort.Slice(symbols, func(i, j int) bool {
		if symbols[i].Value == symbols[j].Value {
			return symbols[i].Name < symbols[j].Name
		}
		return symbols[i].Value < symbols[j].Value
	})
	return &SymbolTable{symbols: symbols}, nil
}

// Resolve returns the name of the last symbol at or below addr, or "".
func (t *SymbolTable) Resolve(addr uint64) string {
	if len(t.symbols) == 0 || addr < t.symbols[0].Value {
		return ""
	}
	i := sort.Search(len(t.symbols), func(i int) bool {
		return addr < t.symbols[i].Value
	})
	return t.symbols[i-1].Name
}

func (t *SymbolTable) Size() int { return len(t.symbols) }

// Symbols returns the sorted entries.
func (t *SymbolTable) Symbols() []Symbol { return t.symbols }
