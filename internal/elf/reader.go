// Package elf implements a from-scratch ELF64 little-endian reader:
// header, program headers, section headers (with resolved names), and
// the symbol table (with Bind/Type classification and demangled
// names). It does not use the standard library's debug/elf package —
// the point of this component is to parse the format directly, the
// way spec.md §4.D requires.
package elf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ianlancetaylor/demangle"

	"github.com/tkyk0317/godbg/internal/dwarf"
)

// ErrNotFound is returned when a required section is missing.
type ErrNotFound struct {
	Section string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("elf: section not found: %s", e.Section)
}

// File holds the parsed contents of one ELF64 executable, plus its
// DWARF debug information.
type File struct {
	path    string
	header  Header
	phdrs   []ProgramHeader
	shdrs   []SectionHeader
	symbols []Symbol
	dwarf   *dwarf.Data
}

// New returns a File bound to path. Nothing is read until Load is called.
func New(path string) *File {
	return &File{path: path}
}

// Load reads the ELF header, program headers, section headers
// (resolving names from the section-header string table), and the
// symbol table, then parses DWARF debug information. A missing
// .debug_info, .debug_abbrev or .debug_str section makes Load fail.
func (f *File) Load() error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("elf: open %s: %w", f.path, err)
	}
	defer file.Close()

	if err := f.loadHeader(file); err != nil {
		return err
	}
	if err := f.loadProgramHeaders(file); err != nil {
		return err
	}
	if err := f.loadSectionHeaders(file); err != nil {
		return err
	}
	if err := f.loadSymbols(file); err != nil {
		return err
	}

	f.dwarf = dwarf.New()
	if err := f.dwarf.Load(f.path, f.sectionsForDwarf()); err != nil {
		return fmt.Errorf("elf: dwarf load: %w", err)
	}

	return nil
}

// Header returns the parsed ELF header.
func (f *File) Header() Header { return f.header }

// Sections returns the parsed section headers, in file order.
func (f *File) Sections() []SectionHeader { return f.shdrs }

// FindFunc returns the first Func symbol whose demangled name equals name.
func (f *File) FindFunc(name string) (Symbol, bool) {
	return f.findSym(name, SymFunc)
}

// FindVar returns the first Object symbol whose demangled name equals name.
func (f *File) FindVar(name string) (Symbol, bool) {
	return f.findSym(name, SymObject)
}

func (f *File) findSym(name string, want SymType) (Symbol, bool) {
	for _, sym := range f.symbols {
		if sym.SymType == want && sym.Demangle == name {
			return sym, true
		}
	}
	return Symbol{}, false
}

// ShowDebug dumps the parsed DWARF compilation units.
func (f *File) ShowDebug() string {
	if f.dwarf == nil {
		return ""
	}
	return f.dwarf.String()
}

func (f *File) loadHeader(r io.Reader) error {
	h := &f.header
	if _, err := io.ReadFull(r, h.Ident[:]); err != nil {
		return fmt.Errorf("elf: read e_ident: %w", err)
	}

	fields := []struct {
		dst  interface{}
		name string
	}{
		{&h.Type, "e_type"},
		{&h.Machine, "e_machine"},
		{&h.Version, "e_version"},
		{&h.Entry, "e_entry"},
		{&h.ProgOff, "e_phoff"},
		{&h.SecOff, "e_shoff"},
		{&h.Flags, "e_flags"},
		{&h.EhSize, "e_ehsize"},
		{&h.PhEntSize, "e_phentsize"},
		{&h.PhNum, "e_phnum"},
		{&h.ShEntSize, "e_shentsize"},
		{&h.ShNum, "e_shnum"},
		{&h.ShStrNdx, "e_shstrndx"},
	}
	for _, fl := range fields {
		if err := binary.Read(r, binary.LittleEndian, fl.dst); err != nil {
			return fmt.Errorf("elf: read %s: %w", fl.name, err)
		}
	}

	f.phdrs = make([]ProgramHeader, h.PhNum)
	f.shdrs = make([]SectionHeader, h.ShNum)
	return nil
}

func (f *File) loadProgramHeaders(file *os.File) error {
	if _, err := file.Seek(int64(f.header.ProgOff), io.SeekStart); err != nil {
		return fmt.Errorf("elf: seek program headers: %w", err)
	}

	for i := range f.phdrs {
		ph := &f.phdrs[i]
		for _, dst := range []interface{}{
			&ph.Type, &ph.Flags, &ph.Offset, &ph.VAddr, &ph.PAddr, &ph.FileSz, &ph.MemSz, &ph.Align,
		} {
			if err := binary.Read(file, binary.LittleEndian, dst); err != nil {
				return fmt.Errorf("elf: read program header %d: %w", i, err)
			}
		}
	}
	return nil
}

func (f *File) loadSectionHeaders(file *os.File) error {
	if _, err := file.Seek(int64(f.header.SecOff), io.SeekStart); err != nil {
		return fmt.Errorf("elf: seek section headers: %w", err)
	}

	for i := range f.shdrs {
		sh := &f.shdrs[i]
		for _, dst := range []interface{}{
			&sh.NameOff, &sh.RawType, &sh.Flags, &sh.Addr, &sh.Offset,
			&sh.Size, &sh.Link, &sh.Info, &sh.AddrAlign, &sh.EntSize,
		} {
			if err := binary.Read(file, binary.LittleEndian, dst); err != nil {
				return fmt.Errorf("elf: read section header %d: %w", i, err)
			}
		}
		sh.Index = uint16(i)
	}

	strtab, err := f.readStrtabAt(file, f.header.ShStrNdx)
	if err != nil {
		return fmt.Errorf("elf: read shstrtab: %w", err)
	}
	for i := range f.shdrs {
		f.shdrs[i].ResolvedName = nullTerminated(strtab, int(f.shdrs[i].NameOff))
	}

	return nil
}

func (f *File) loadSymbols(file *os.File) error {
	symtab := f.sectionOfType(SecSymTab)
	if symtab == nil {
		return ErrNotFound{Section: "SymTab"}
	}

	strtabSec := f.primaryStrtab()
	if strtabSec == nil {
		return ErrNotFound{Section: "StrTab"}
	}
	strtab, err := f.readSection(file, *strtabSec)
	if err != nil {
		return fmt.Errorf("elf: read strtab: %w", err)
	}

	if _, err := file.Seek(int64(symtab.Offset), io.SeekStart); err != nil {
		return fmt.Errorf("elf: seek symtab: %w", err)
	}

	count := int(symtab.Size / symtab.EntSize)
	f.symbols = make([]Symbol, count)
	for i := range f.symbols {
		sym := &f.symbols[i]

		if err := binary.Read(file, binary.LittleEndian, &sym.NameOff); err != nil {
			return fmt.Errorf("elf: read symbol %d name offset: %w", i, err)
		}
		sym.Name = nullTerminated(strtab, int(sym.NameOff))

		if err := binary.Read(file, binary.LittleEndian, &sym.Info); err != nil {
			return fmt.Errorf("elf: read symbol %d info: %w", i, err)
		}
		sym.Bind = classifyBind(sym.Info)
		sym.SymType = classifySymType(sym.Info)

		if err := binary.Read(file, binary.LittleEndian, &sym.Other); err != nil {
			return fmt.Errorf("elf: read symbol %d other: %w", i, err)
		}
		if err := binary.Read(file, binary.LittleEndian, &sym.Shndx); err != nil {
			return fmt.Errorf("elf: read symbol %d shndx: %w", i, err)
		}
		if err := binary.Read(file, binary.LittleEndian, &sym.Value); err != nil {
			return fmt.Errorf("elf: read symbol %d value: %w", i, err)
		}
		if err := binary.Read(file, binary.LittleEndian, &sym.Size); err != nil {
			return fmt.Errorf("elf: read symbol %d size: %w", i, err)
		}

		sym.Demangle = demangle.Filter(sym.Name)
	}

	return nil
}

// sectionOfType returns the first section of the classified type.
func (f *File) sectionOfType(t SecType) *SectionHeader {
	for i := range f.shdrs {
		if f.shdrs[i].Type() == t {
			return &f.shdrs[i]
		}
	}
	return nil
}

// primaryStrtab is the first StrTab section that is not the
// section-header string table itself.
func (f *File) primaryStrtab() *SectionHeader {
	for i := range f.shdrs {
		if f.shdrs[i].Type() == SecStrTab && f.shdrs[i].Index != f.header.ShStrNdx {
			return &f.shdrs[i]
		}
	}
	return nil
}

func (f *File) readSection(file *os.File, sh SectionHeader) ([]byte, error) {
	if _, err := file.Seek(int64(sh.Offset), io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, sh.Size)
	if _, err := io.ReadFull(file, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readStrtabAt reads the StrTab section at the given section index
// (used for the section-header string table, which is addressed by
// index rather than by "not-the-shstrndx" exclusion).
func (f *File) readStrtabAt(file *os.File, index uint16) ([]byte, error) {
	if int(index) >= len(f.shdrs) {
		return nil, errors.New("elf: shstrndx out of range")
	}
	return f.readSection(file, f.shdrs[index])
}

func nullTerminated(buf []byte, offset int) string {
	if offset < 0 || offset >= len(buf) {
		return ""
	}
	end := offset
	for end < len(buf) && buf[end] != 0 {
		end++
	}
	return string(buf[offset:end])
}

// sectionsForDwarf adapts this package's SectionHeader into the shape
// internal/dwarf needs (name + file offset + size), without handing
// the DWARF reader the whole ELF file type.
func (f *File) sectionsForDwarf() []dwarf.SectionRef {
	out := make([]dwarf.SectionRef, 0, len(f.shdrs))
	for _, sh := range f.shdrs {
		out = append(out, dwarf.SectionRef{
			Name:   sh.ResolvedName,
			Offset: sh.Offset,
			Size:   sh.Size,
		})
	}
	return out
}
