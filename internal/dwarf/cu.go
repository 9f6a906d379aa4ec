package dwarf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tkyk0317/godbg/internal/uleb128"
)

// ErrUnsupportedForm is returned when a DIE attribute uses a DW_FORM
// this reader does not decode.
type ErrUnsupportedForm struct {
	Form Form
}

func (e ErrUnsupportedForm) Error() string {
	return fmt.Sprintf("dwarf: unsupported form: %d", e.Form)
}

// DIE is one decoded (abbrev_no, attribute, form, value) occurrence.
// A single physical debugging-information-entry produces one DIE value
// per attribute it carries; they share AbbrevNo.
type DIE struct {
	AbbrevNo  uint64
	Attr      At
	Form      Form
	ValueText string
}

// CompilationUnit is one parsed .debug_info compilation unit.
type CompilationUnit struct {
	Length32     uint32
	Length64     uint64
	Version      uint16
	AbbrevOffset uint32
	AddressSize  uint8
	DIEs         []DIE
}

// countingReader wraps an io.Reader and tracks total bytes read,
// so CU-end arithmetic never has to be threaded through every call site.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

// readCompilationUnits parses every CU in the .debug_info byte stream,
// using r (already positioned at the .debug_info section start) and the
// loadAbbrev callback to load the abbreviation table for each
// CU's abbrev_offset. It stops once totalSize bytes have been consumed.
// debugStr is the fully-read .debug_str section contents, used to
// resolve Strp-form attribute values.
func readCompilationUnits(r io.Reader, totalSize uint64, debugStr []byte, loadAbbrev func(offset uint32) ([]AbbrevRecord, error)) ([]CompilationUnit, error) {
	cr := &countingReader{r: r}

	var cus []CompilationUnit
	for uint64(cr.n) < totalSize {
		cu, err := readOneCompilationUnit(cr, debugStr, loadAbbrev)
		if err != nil {
			return nil, err
		}
		cus = append(cus, cu)
	}

	return cus, nil
}

func readOneCompilationUnit(cr *countingReader, debugStr []byte, loadAbbrev func(offset uint32) ([]AbbrevRecord, error)) (CompilationUnit, error) {
	cu := CompilationUnit{}

	var length32 uint32
	if err := binary.Read(cr, binary.LittleEndian, &length32); err != nil {
		return cu, fmt.Errorf("dwarf: cu length: %w", err)
	}
	cu.Length32 = length32

	is64 := length32 == 0xFFFFFFFF
	if is64 {
		if err := binary.Read(cr, binary.LittleEndian, &cu.Length64); err != nil {
			return cu, fmt.Errorf("dwarf: cu length64: %w", err)
		}
	}

	// Bytes consumed in this CU, counted from immediately after the
	// length field(s) — the DWARF unit_length value measures bytes
	// following itself, for both the 32-bit and 64-bit formats. This
	// is the parameterization spec.md's Open Question on CU-end
	// arithmetic asks for: the prologue-size constant used by the
	// original source (a fixed "+7") only happens to be correct for
	// 32-bit DWARF; counting from after the length field is correct
	// for both.
	startMark := cr.n

	if err := binary.Read(cr, binary.LittleEndian, &cu.Version); err != nil {
		return cu, fmt.Errorf("dwarf: cu version: %w", err)
	}
	if err := binary.Read(cr, binary.LittleEndian, &cu.AbbrevOffset); err != nil {
		return cu, fmt.Errorf("dwarf: cu abbrev offset: %w", err)
	}
	if err := binary.Read(cr, binary.LittleEndian, &cu.AddressSize); err != nil {
		return cu, fmt.Errorf("dwarf: cu address size: %w", err)
	}

	abbrevTable, err := loadAbbrev(cu.AbbrevOffset)
	if err != nil {
		return cu, err
	}

	unitLen := uint64(cu.Length32)
	if is64 {
		unitLen = cu.Length64
	}

	for uint64(cr.n-startMark) < unitLen {
		_, abbrevNo, err := uleb128.Decode(cr)
		if err != nil {
			return cu, fmt.Errorf("dwarf: die abbrev_no: %w", err)
		}
		if abbrevNo == 0 {
			continue
		}

		rec, ok := findAbbrev(abbrevTable, abbrevNo)
		if !ok {
			return cu, fmt.Errorf("dwarf: die references unknown abbrev %d", abbrevNo)
		}

		for i, form := range rec.AttrForms {
			valueText, err := decodeFormValue(cr, form, debugStr)
			if err != nil {
				return cu, err
			}
			cu.DIEs = append(cu.DIEs, DIE{
				AbbrevNo:  abbrevNo,
				Attr:      rec.AttrNames[i],
				Form:      form,
				ValueText: valueText,
			})
		}
	}

	return cu, nil
}

func decodeFormValue(r io.Reader, form Form, debugStr []byte) (string, error) {
	switch form {
	case FormAddr:
		var v uint64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", fmt.Errorf("dwarf: form Addr: %w", err)
		}
		return fmt.Sprintf("%d", v), nil

	case FormData1, FormRef1:
		var v uint8
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", fmt.Errorf("dwarf: form Data1/Ref1: %w", err)
		}
		return fmt.Sprintf("%d", v), nil

	case FormData2, FormRef2:
		var v uint16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", fmt.Errorf("dwarf: form Data2/Ref2: %w", err)
		}
		return fmt.Sprintf("%d", v), nil

	case FormData4, FormRef4, FormSecOffset:
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", fmt.Errorf("dwarf: form Data4/Ref4/SecOffset: %w", err)
		}
		return fmt.Sprintf("%d", v), nil

	case FormData8, FormRef8:
		var v uint64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", fmt.Errorf("dwarf: form Data8/Ref8: %w", err)
		}
		return fmt.Sprintf("%d", v), nil

	case FormSdata, FormUdata:
		_, v, err := uleb128.Decode(r)
		if err != nil {
			return "", fmt.Errorf("dwarf: form Sdata/Udata: %w", err)
		}
		return fmt.Sprintf("%d", v), nil

	case FormStrp:
		var off uint32
		if err := binary.Read(r, binary.LittleEndian, &off); err != nil {
			return "", fmt.Errorf("dwarf: form Strp: %w", err)
		}
		return nullTerminatedAt(debugStr, int(off)), nil

	case FormString:
		var b []byte
		for {
			var c [1]byte
			if _, err := io.ReadFull(r, c[:]); err != nil {
				return "", fmt.Errorf("dwarf: form String: %w", err)
			}
			if c[0] == 0 {
				break
			}
			b = append(b, c[0])
		}
		return string(b), nil

	case FormExprloc:
		_, length, err := uleb128.Decode(r)
		if err != nil {
			return "", fmt.Errorf("dwarf: form Exprloc length: %w", err)
		}
		if _, err := io.CopyN(io.Discard, r, int64(length)); err != nil {
			return "", fmt.Errorf("dwarf: form Exprloc bytes: %w", err)
		}
		return fmt.Sprintf("%d", length), nil

	case FormFlagPresent:
		return "flag is present", nil

	case FormEnd:
		return "value: 0", nil

	default:
		return "", ErrUnsupportedForm{Form: form}
	}
}

func nullTerminatedAt(buf []byte, offset int) string {
	if offset < 0 || offset >= len(buf) {
		return ""
	}
	end := offset
	for end < len(buf) && buf[end] != 0 {
		end++
	}
	return string(buf[offset:end])
}
