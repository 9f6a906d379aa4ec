package dwarf

import (
	"fmt"
	"io"

	"github.com/tkyk0317/godbg/internal/uleb128"
)

// AbbrevRecord is one reusable (tag + ordered attribute/form pairs)
// shape that DIEs reference by number.
type AbbrevRecord struct {
	AbbrevNo  uint64
	Tag       Tag
	HasChild  bool
	AttrNames []At
	AttrForms []Form
}

// loadAbbrevTable reads abbreviation records from r until a record
// with abbrev_no == 0 (the sentinel) is read.
func loadAbbrevTable(r io.Reader) ([]AbbrevRecord, error) {
	var table []AbbrevRecord

	for {
		rec := AbbrevRecord{}

		_, no, err := uleb128.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("dwarf: abbrev number: %w", err)
		}
		rec.AbbrevNo = no
		if no == 0 {
			break
		}

		_, tag, err := uleb128.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("dwarf: abbrev tag: %w", err)
		}
		rec.Tag = ClassifyTag(tag)

		var hasChild [1]byte
		if _, err := io.ReadFull(r, hasChild[:]); err != nil {
			return nil, fmt.Errorf("dwarf: abbrev has_child: %w", err)
		}
		rec.HasChild = hasChild[0] == 1

		for {
			_, attrName, err := uleb128.Decode(r)
			if err != nil {
				return nil, fmt.Errorf("dwarf: abbrev attr name: %w", err)
			}
			_, attrForm, err := uleb128.Decode(r)
			if err != nil {
				return nil, fmt.Errorf("dwarf: abbrev attr form: %w", err)
			}

			if attrName == 0 && attrForm == 0 {
				break
			}

			rec.AttrNames = append(rec.AttrNames, ClassifyAt(attrName))
			rec.AttrForms = append(rec.AttrForms, ClassifyForm(attrForm))
		}

		table = append(table, rec)
	}

	return table, nil
}

func findAbbrev(table []AbbrevRecord, no uint64) (AbbrevRecord, bool) {
	for _, rec := range table {
		if rec.AbbrevNo == no {
			return rec, true
		}
	}
	return AbbrevRecord{}, false
}
