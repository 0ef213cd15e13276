// elfinspect prints the structure of ELF binaries: header, program
// headers, section headers and, on request, symbols. It is the file
// reading and presentation layer over the elf and symtab packages, which
// themselves only ever see an in-memory buffer.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ianlancetaylor/demangle"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/binspect/binspect/elf"
	"github.com/binspect/binspect/symtab"
)

var (
	showProgs    = flag.Bool("programs", false, "print the program header table")
	showSections = flag.Bool("sections", false, "print the section header table")
	showSymbols  = flag.Bool("symbols", false, "print symbols from .symtab and .dynsym")
	showAll      = flag.Bool("all", false, "print everything")
	demangleSyms = flag.Bool("demangle", false, "demangle symbol names")
)

var logger log.Logger

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: elfinspect [flags] file...\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *showAll {
		*showProgs = true
		*showSections = true
		*showSymbols = true
	}

	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	metrics := symtab.NewMetrics(prometheus.NewRegistry())

	failed := false
	for _, path := range flag.Args() {
		if err := inspect(path, metrics); err != nil {
			level.Error(logger).Log("msg", "inspect failed", "f", path, "err", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(path string, metrics *symtab.Metrics) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f := elf.New(data)
	if err := f.Parse(); err != nil {
		metrics.ObserveError(err)
		return err
	}
	hdr, err := f.Header()
	if err != nil {
		return err
	}

	printHeader(path, hdr, f)
	if *showProgs {
		if err := printProgs(f); err != nil {
			metrics.ObserveError(err)
			return err
		}
	}
	if *showSections {
		if err := printSections(f); err != nil {
			metrics.ObserveError(err)
			return err
		}
	}
	if *showSymbols {
		if err := printSymbols(f); err != nil {
			metrics.ObserveError(err)
			return err
		}
	}
	return nil
}

func printHeader(path string, hdr elf.FileHeader, f *elf.File) {
	fmt.Printf("%s:\n", path)
	fmt.Printf("  class:    %s\n", hdr.Class)
	fmt.Printf("  data:     %s\n", hdr.Data)
	fmt.Printf("  os/abi:   %s\n", hdr.OSABI)
	fmt.Printf("  type:     %s\n", hdr.Type)
	fmt.Printf("  machine:  %s\n", hdr.Machine)
	fmt.Printf("  entry:    %#x\n", hdr.Entry)
	fmt.Printf("  phoff:    %#x (%d x %d bytes)\n", hdr.Phoff, hdr.Phnum, hdr.Phentsize)
	fmt.Printf("  shoff:    %#x (%d x %d bytes)\n", hdr.Shoff, hdr.Shnum, hdr.Shentsize)
	if id, err := f.BuildID(); err == nil {
		fmt.Printf("  build id: %s (%s)\n", id.ID, id.Typ)
	}
}

func printProgs(f *elf.File) error {
	it, err := f.ProgIterator()
	if err != nil {
		return err
	}
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"TYPE", "FLAGS", "OFFSET", "VADDR", "PADDR", "FILESZ", "MEMSZ", "ALIGN"})
	for it.Next() {
		p := it.Prog()
		tw.Append([]string{
			p.Type.String(),
			p.Flags.String(),
			hex(p.Off),
			hex(p.Vaddr),
			hex(p.Paddr),
			hex(p.Filesz),
			hex(p.Memsz),
			hex(p.Align),
		})
	}
	if err := it.Err(); err != nil {
		return err
	}
	tw.Render()
	return nil
}

func printSections(f *elf.File) error {
	it, err := f.SectionIterator()
	if err != nil {
		return err
	}
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"IDX", "NAME", "TYPE", "FLAGS", "ADDR", "OFFSET", "SIZE", "LINK", "ENTSIZE"})
	for it.Next() {
		s := it.Section()
		name, _ := f.SectionName(&s)
		tw.Append([]string{
			strconv.Itoa(s.Index),
			name,
			s.Type.String(),
			sectionFlags(s.Flags),
			hex(s.Addr),
			hex(s.Offset),
			hex(s.Size),
			strconv.Itoa(int(s.Link)),
			hex(s.Entsize),
		})
	}
	if err := it.Err(); err != nil {
		return err
	}
	tw.Render()
	return nil
}

func printSymbols(f *elf.File) error {
	sections, err := f.Sections()
	if err != nil {
		return err
	}
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"VALUE", "SIZE", "TYPE", "BIND", "NAME"})
	found := false
	for i := range sections {
		sec := sections[i]
		if sec.Type != elf.SHT_SYMTAB && sec.Type != elf.SHT_DYNSYM {
			continue
		}
		found = true
		if int(sec.Link) >= len(sections) {
			return fmt.Errorf("section %d links to missing string table %d", sec.Index, sec.Link)
		}
		strtab := sections[sec.Link]
		it, err := symtab.NewIterator(f, &sec)
		if err != nil {
			return err
		}
		for it.Next() {
			s := it.Sym()
			name, _ := f.StringAt(&strtab, s.NameOff)
			if *demangleSyms {
				name = demangle.Filter(name)
			}
			tw.Append([]string{
				hex(s.Value),
				strconv.FormatUint(s.Size, 10),
				s.Type().String(),
				s.Bind().String(),
				name,
			})
		}
		if err := it.Err(); err != nil {
			return err
		}
	}
	if !found {
		level.Info(logger).Log("msg", "no symbol sections")
		return nil
	}
	tw.Render()
	return nil
}

func hex(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}

func sectionFlags(f elf.SectionFlag) string {
	var s string
	if f.Write() {
		s += "W"
	}
	if f.Alloc() {
		s += "A"
	}
	if f.Exec() {
		s += "X"
	}
	if f.Merge() {
		s += "M"
	}
	if f.Strings() {
		s += "S"
	}
	if f.TLS() {
		s += "T"
	}
	return s
}
