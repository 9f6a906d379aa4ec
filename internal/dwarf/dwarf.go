package dwarf

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// SectionRef is the minimal description internal/elf hands this
// package for each ELF section: its resolved name and its location in
// the file. internal/dwarf never needs the rest of the section header.
type SectionRef struct {
	Name   string
	Offset uint64
	Size   uint64
}

// Data holds the parsed contents of every DWARF section this reader
// understands: compilation units (flattened DIEs) and, where a unit's
// root DIE carries a StmtList attribute, that unit's .debug_line
// prologue.
type Data struct {
	units []CompilationUnit
	lines map[uint64]LineHeader // keyed by .debug_line offset
}

// New returns an empty Data. Nothing is parsed until Load is called.
func New() *Data {
	return &Data{lines: make(map[uint64]LineHeader)}
}

// Load locates .debug_info, .debug_abbrev, .debug_str (required) and
// .debug_line (optional — its absence is not an error, since stripped
// or line-table-free binaries are still valid debug targets for every
// other operation this system performs) among sections, and parses
// them.
func (d *Data) Load(path string, sections []SectionRef) error {
	info := findSection(sections, ".debug_info")
	if info == nil {
		return ErrSectionNotFound{Section: ".debug_info"}
	}
	abbrev := findSection(sections, ".debug_abbrev")
	if abbrev == nil {
		return ErrSectionNotFound{Section: ".debug_abbrev"}
	}
	str := findSection(sections, ".debug_str")
	if str == nil {
		return ErrSectionNotFound{Section: ".debug_str"}
	}
	line := findSection(sections, ".debug_line")

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dwarf: open %s: %w", path, err)
	}
	defer file.Close()

	debugStr, err := readSectionBytes(file, *str)
	if err != nil {
		return fmt.Errorf("dwarf: read .debug_str: %w", err)
	}

	// The abbreviation table is read through its own section reader so
	// that file's offset stays inside .debug_info while CUs are parsed.
	loadAbbrev := func(offset uint32) ([]AbbrevRecord, error) {
		start := int64(abbrev.Offset) + int64(offset)
		sr := io.NewSectionReader(file, start, int64(abbrev.Size)-int64(offset))
		return loadAbbrevTable(sr)
	}

	if _, err := file.Seek(int64(info.Offset), io.SeekStart); err != nil {
		return fmt.Errorf("dwarf: seek .debug_info: %w", err)
	}
	units, err := readCompilationUnits(file, info.Size, debugStr, loadAbbrev)
	if err != nil {
		return fmt.Errorf("dwarf: read .debug_info: %w", err)
	}
	d.units = units

	if line != nil {
		if err := d.loadLineTables(file, *line); err != nil {
			return fmt.Errorf("dwarf: read .debug_line: %w", err)
		}
	}

	return nil
}

// loadLineTables reads the .debug_line prologue for every compilation
// unit whose root DIE carries a StmtList attribute, keyed by that
// attribute's value (the section-relative offset of the unit's line
// program).
func (d *Data) loadLineTables(file *os.File, line SectionRef) error {
	for _, cu := range d.units {
		for _, die := range cu.DIEs {
			if die.Attr != AtStmtList {
				continue
			}

			var off uint64
			if _, err := fmt.Sscanf(die.ValueText, "%d", &off); err != nil {
				continue
			}
			if _, ok := d.lines[off]; ok {
				continue
			}

			if _, err := file.Seek(int64(line.Offset)+int64(off), io.SeekStart); err != nil {
				return err
			}
			hdr, err := readLineHeader(file, cu.Version)
			if err != nil {
				return err
			}
			d.lines[off] = hdr
		}
	}
	return nil
}

// Units returns every parsed compilation unit.
func (d *Data) Units() []CompilationUnit { return d.units }

// LineHeaderAt returns the parsed .debug_line prologue at the given
// section-relative offset, as recorded by a StmtList attribute.
func (d *Data) LineHeaderAt(offset uint64) (LineHeader, bool) {
	h, ok := d.lines[offset]
	return h, ok
}

// String renders every compilation unit's DIEs, one line per
// attribute occurrence, for the "info debugsec" shell command.
func (d *Data) String() string {
	var b strings.Builder
	for i, cu := range d.units {
		fmt.Fprintf(&b, "CU[%d] version=%d abbrev_offset=%d address_size=%d\n",
			i, cu.Version, cu.AbbrevOffset, cu.AddressSize)
		for _, die := range cu.DIEs {
			fmt.Fprintf(&b, "  abbrev=%d attr=%d form=%d value=%s\n",
				die.AbbrevNo, die.Attr, die.Form, die.ValueText)
		}
	}
	return b.String()
}

// ErrSectionNotFound is returned when a section this reader requires
// is absent from the binary.
type ErrSectionNotFound struct {
	Section string
}

func (e ErrSectionNotFound) Error() string {
	return fmt.Sprintf("dwarf: section not found: %s", e.Section)
}

func findSection(sections []SectionRef, name string) *SectionRef {
	for i := range sections {
		if sections[i].Name == name {
			return &sections[i]
		}
	}
	return nil
}

func readSectionBytes(file *os.File, sec SectionRef) ([]byte, error) {
	if _, err := file.Seek(int64(sec.Offset), io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, sec.Size)
	if _, err := io.ReadFull(file, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
