package symtab

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/binspect/binspect/elf"
)

type Metrics struct {
	DecodeErrors *prometheus.CounterVec
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "binspect_elf_decode_errors_total",
			Help: "Total number of ELF decode failures by error kind",
		}, []string{"error"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "binspect_symtab_cache_hits_total",
			Help: "Total number of symbol tables served from the build ID cache",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "binspect_symtab_cache_misses_total",
			Help: "Total number of symbol tables built because the cache had no entry",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.DecodeErrors,
			m.CacheHits,
			m.CacheMisses,
		)
	}

	return m
}

// ObserveError counts a decode failure under its taxonomy kind.
func (m *Metrics) ObserveError(err error) {
	m.DecodeErrors.WithLabelValues(errorKind(err)).Inc()
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, elf.ErrInvalidMagic):
		return "InvalidMagic"
	case errors.Is(err, elf.ErrUnsupportedClass):
		return "UnsupportedClass"
	case errors.Is(err, elf.ErrUnsupportedEncoding):
		return "UnsupportedEncoding"
	case errors.Is(err, elf.ErrTruncatedHeader):
		return "TruncatedHeader"
	case errors.Is(err, elf.ErrTruncatedTable):
		return "TruncatedTable"
	case errors.Is(err, elf.ErrUnexpectedEntrySize):
		return "UnexpectedEntrySize"
	case errors.Is(err, elf.ErrInvalidStringTableIndex):
		return "InvalidStringTableIndex"
	case errors.Is(err, elf.ErrNotParsed):
		return "NotParsed"
	case errors.Is(err, ErrNoSymbols):
		return "NoSymbols"
	}
	return "Other"
}
