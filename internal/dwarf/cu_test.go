package dwarf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nameOnlyAbbrevTable is a single compile-unit abbrev record with one Strp-form
// DW_AT_name attribute, matching the bytes fixtures below use.
func nameOnlyAbbrevTable() []AbbrevRecord {
	return []AbbrevRecord{
		{
			AbbrevNo:  1,
			Tag:       TagCompileUnit,
			HasChild:  false,
			AttrNames: []At{AtName},
			AttrForms: []Form{FormStrp},
		},
	}
}

func TestReadCompilationUnitsSingleUnit32Bit(t *testing.T) {
	// unit_length=12 (bytes following the length field): version(2) +
	// abbrev_offset(4) + address_size(1) + DIE(abbrev_no=1, strp=offset 1).
	var buf bytes.Buffer
	buf.Write([]byte{0x0C, 0x00, 0x00, 0x00}) // length32 = 12
	buf.Write([]byte{0x02, 0x00})             // version = 2
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00}) // abbrev_offset = 0
	buf.WriteByte(0x08)                       // address_size = 8
	buf.WriteByte(0x01)                       // DIE abbrev_no = 1
	buf.Write([]byte{0x01, 0x00, 0x00, 0x00}) // strp offset = 1

	debugStr := []byte("\x00hello.c\x00")

	loadAbbrev := func(offset uint32) ([]AbbrevRecord, error) {
		assert.Equal(t, uint32(0), offset)
		return nameOnlyAbbrevTable(), nil
	}

	units, err := readCompilationUnits(&buf, uint64(buf.Len()), debugStr, loadAbbrev)
	require.NoError(t, err)
	require.Len(t, units, 1)

	cu := units[0]
	assert.Equal(t, uint16(2), cu.Version)
	assert.Equal(t, uint8(8), cu.AddressSize)
	require.Len(t, cu.DIEs, 1)
	assert.Equal(t, AtName, cu.DIEs[0].Attr)
	assert.Equal(t, FormStrp, cu.DIEs[0].Form)
	assert.Equal(t, "hello.c", cu.DIEs[0].ValueText)
}

func TestReadCompilationUnits64Bit(t *testing.T) {
	// 0xFFFFFFFF sentinel selects 64-bit DWARF; length64 follows,
	// counted the same way as the 32-bit case (from right after the
	// length field(s), not the buggy fixed "+7" the original source
	// used).
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})                         // 64-bit marker
	buf.Write([]byte{0x0C, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}) // length64 = 12
	buf.Write([]byte{0x03, 0x00})                                     // version = 3
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00})                         // abbrev_offset = 0
	buf.WriteByte(0x08)                                                // address_size
	buf.WriteByte(0x01)                                                // DIE abbrev_no = 1
	buf.Write([]byte{0x01, 0x00, 0x00, 0x00})                         // strp offset = 1

	debugStr := []byte("\x00hello.c\x00")
	loadAbbrev := func(offset uint32) ([]AbbrevRecord, error) {
		return nameOnlyAbbrevTable(), nil
	}

	units, err := readCompilationUnits(&buf, uint64(buf.Len()), debugStr, loadAbbrev)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, uint64(12), units[0].Length64)
	assert.Equal(t, "hello.c", units[0].DIEs[0].ValueText)
}

func TestDecodeFormValueTable(t *testing.T) {
	debugStr := []byte("\x00world\x00")

	cases := []struct {
		name  string
		form  Form
		bytes []byte
		want  string
	}{
		{"Addr", FormAddr, []byte{0x01, 0, 0, 0, 0, 0, 0, 0}, "1"},
		{"Data1", FormData1, []byte{0x7F}, "127"},
		{"Data2", FormData2, []byte{0x34, 0x12}, "4660"},
		{"Data4", FormData4, []byte{0x78, 0x56, 0x34, 0x12}, "305419896"},
		{"Sdata", FormSdata, []byte{0xE5, 0x8E, 0x26}, "624485"},
		{"Strp", FormStrp, []byte{0x01, 0, 0, 0}, "world"},
		{"String", FormString, []byte("abc\x00"), "abc"},
		{"FlagPresent", FormFlagPresent, nil, "flag is present"},
		{"End", FormEnd, nil, "value: 0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeFormValue(bytes.NewReader(tc.bytes), tc.form, debugStr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeFormValueExprlocSkipsBytes(t *testing.T) {
	// ULEB128 length=3, then 3 raw bytes to discard.
	buf := bytes.NewReader([]byte{0x03, 0xAA, 0xBB, 0xCC})
	got, err := decodeFormValue(buf, FormExprloc, nil)
	require.NoError(t, err)
	assert.Equal(t, "3", got)
	assert.Equal(t, 0, buf.Len())
}

func TestDecodeFormValueUnsupportedForm(t *testing.T) {
	_, err := decodeFormValue(bytes.NewReader(nil), FormBlock2, nil)
	var unsupported ErrUnsupportedForm
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, FormBlock2, unsupported.Form)
}

func TestNullTerminatedAt(t *testing.T) {
	buf := []byte("\x00hello\x00world\x00")
	assert.Equal(t, "hello", nullTerminatedAt(buf, 1))
	assert.Equal(t, "world", nullTerminatedAt(buf, 7))
	assert.Equal(t, "", nullTerminatedAt(buf, 100))
}
