package symtab

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/binspect/binspect/elf"
)

// TableCache keeps built symbol tables keyed by build ID so repeated
// lookups against the same binary skip the decode and sort work. The elf
// package always produces some build ID (hashing the buffer when no note
// section exists), so every parsed file is cacheable.
type TableCache struct {
	tables  *lru.Cache[string, *SymbolTable]
	metrics *Metrics // may be nil for tests
}

func NewTableCache(size int, metrics *Metrics) (*TableCache, error) {
	tables, err := lru.New[string, *SymbolTable](size)
	if err != nil {
		return nil, err
	}
	return &TableCache{tables: tables, metrics: metrics}, nil
}

// GetOrBuild returns the cached table for the file's build ID, building
// and caching it on a miss.
func (c *TableCache) GetOrBuild(f *elf.File, opt *SymbolOptions) (*SymbolTable, error) {
	id, err := f.BuildID()
	if err != nil {
		return nil, err
	}
	key := id.Typ + ":" + id.ID
	if t, ok := c.tables.Get(key); ok {
		if c.metrics != nil {
			c.metrics.CacheHits.Inc()
		}
		return t, nil
	}
	t, err := NewSymbolTable(f, opt)
	if err != nil {
		if c.metrics != nil {
			c.metrics.ObserveError(err)
		}
		return nil, err
	}
	c.tables.Add(key, t)
	if c.metrics != nil {
		c.metrics.CacheMisses.Inc()
	}
	return t, nil
}
