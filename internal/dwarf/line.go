package dwarf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tkyk0317/godbg/internal/uleb128"
)

// FileEntry is one entry from a .debug_line prologue's file-name list.
type FileEntry struct {
	Name     string
	DirIndex uint64
	LastMod  uint64
	Size     uint64
}

// LineHeader is the prologue of a .debug_line program — the only part
// of the line-number program this reader evaluates. Full line-program
// opcode evaluation is out of scope (spec Non-goals).
type LineHeader struct {
	Length             uint32
	Version            uint16
	HeaderLength       uint32
	MinInstLength      uint8
	MaxOpsPerInst      uint8
	DefaultIsStmt      bool
	LineBase           int8
	LineRange          uint8
	OpcodeBase         uint8
	StandardOpcodeLens []uint8
	IncludeDirectories []string
	FileEntries        []FileEntry
}

// readLineHeader parses a .debug_line prologue starting at the given
// section-relative offset in r (r must already be positioned there).
//
// The DWARF v3+ field order after the fixed header_length is
// min_inst_length, max_ops_per_inst (DWARF4+ only), default_is_stmt,
// line_base, line_range, opcode_base. The source this system was
// distilled from re-reads the is_stmt byte into max_ops_per_inst,
// clobbering is_stmt; this reader keeps both fields distinct, per
// spec.md's Open Question resolution.
func readLineHeader(r io.Reader, version uint16) (LineHeader, error) {
	h := LineHeader{Version: version}

	if err := binary.Read(r, binary.LittleEndian, &h.Length); err != nil {
		return h, fmt.Errorf("dwarf: line length: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.HeaderLength); err != nil {
		return h, fmt.Errorf("dwarf: line header_length: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.MinInstLength); err != nil {
		return h, fmt.Errorf("dwarf: line min_inst_length: %w", err)
	}
	if version >= 4 {
		if err := binary.Read(r, binary.LittleEndian, &h.MaxOpsPerInst); err != nil {
			return h, fmt.Errorf("dwarf: line max_ops_per_inst: %w", err)
		}
	} else {
		h.MaxOpsPerInst = 1
	}

	var isStmt uint8
	if err := binary.Read(r, binary.LittleEndian, &isStmt); err != nil {
		return h, fmt.Errorf("dwarf: line default_is_stmt: %w", err)
	}
	h.DefaultIsStmt = isStmt != 0

	if err := binary.Read(r, binary.LittleEndian, &h.LineBase); err != nil {
		return h, fmt.Errorf("dwarf: line line_base: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.LineRange); err != nil {
		return h, fmt.Errorf("dwarf: line line_range: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.OpcodeBase); err != nil {
		return h, fmt.Errorf("dwarf: line opcode_base: %w", err)
	}

	h.StandardOpcodeLens = make([]uint8, h.OpcodeBase-1)
	for i := range h.StandardOpcodeLens {
		if err := binary.Read(r, binary.LittleEndian, &h.StandardOpcodeLens[i]); err != nil {
			return h, fmt.Errorf("dwarf: line standard_opcode_lengths[%d]: %w", i, err)
		}
	}

	for {
		dir, err := readNulTerminated(r)
		if err != nil {
			return h, fmt.Errorf("dwarf: line include_directories: %w", err)
		}
		if dir == "" {
			break
		}
		h.IncludeDirectories = append(h.IncludeDirectories, dir)
	}

	for {
		name, err := readNulTerminated(r)
		if err != nil {
			return h, fmt.Errorf("dwarf: line file name: %w", err)
		}
		if name == "" {
			break
		}

		_, dirIndex, err := uleb128.Decode(r)
		if err != nil {
			return h, fmt.Errorf("dwarf: line file dir_index: %w", err)
		}
		_, lastMod, err := uleb128.Decode(r)
		if err != nil {
			return h, fmt.Errorf("dwarf: line file last_mod: %w", err)
		}
		_, size, err := uleb128.Decode(r)
		if err != nil {
			return h, fmt.Errorf("dwarf: line file size: %w", err)
		}

		h.FileEntries = append(h.FileEntries, FileEntry{
			Name:     name,
			DirIndex: dirIndex,
			LastMod:  lastMod,
			Size:     size,
		})
	}

	return h, nil
}

func readNulTerminated(r io.Reader) (string, error) {
	var out []byte
	for {
		var c [1]byte
		if _, err := io.ReadFull(r, c[:]); err != nil {
			return "", err
		}
		if c[0] == 0 {
			break
		}
		out = append(out, c[0])
	}
	return string(out), nil
}
