package dwarf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLineHeaderDwarf4KeepsIsStmtAndMaxOpsDistinct(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00}) // length (unused by this reader)
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00}) // header_length
	buf.WriteByte(1)                          // min_inst_length
	buf.WriteByte(1)                          // max_ops_per_inst (DWARF4+)
	buf.WriteByte(1)                          // default_is_stmt = true
	buf.WriteByte(0xFB)                       // line_base = -5 (signed)
	buf.WriteByte(14)                         // line_range
	buf.WriteByte(13)                         // opcode_base
	buf.Write(make([]byte, 12))               // opcode_base - 1 standard opcode lengths
	buf.WriteByte(0x00)                       // include_directories terminator (none)
	buf.WriteString("main.c\x00")              // file entry name
	buf.WriteByte(0x00)                        // dir_index = 0
	buf.WriteByte(0x00)                        // last_mod = 0
	buf.WriteByte(0x00)                        // size = 0
	buf.WriteByte(0x00)                        // file list terminator

	hdr, err := readLineHeader(&buf, 4)
	require.NoError(t, err)

	assert.True(t, hdr.DefaultIsStmt)
	assert.Equal(t, uint8(1), hdr.MaxOpsPerInst)
	assert.Equal(t, int8(-5), hdr.LineBase)
	assert.Equal(t, uint8(13), hdr.OpcodeBase)
	assert.Len(t, hdr.StandardOpcodeLens, 12)
	assert.Empty(t, hdr.IncludeDirectories)
	require.Len(t, hdr.FileEntries, 1)
	assert.Equal(t, "main.c", hdr.FileEntries[0].Name)
}

func TestReadLineHeaderDwarf2HasNoMaxOpsField(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00}) // length
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00}) // header_length
	buf.WriteByte(1)                          // min_inst_length
	// no max_ops_per_inst byte in DWARF < 4
	buf.WriteByte(0)    // default_is_stmt = false
	buf.WriteByte(0x00) // line_base = 0
	buf.WriteByte(14)   // line_range
	buf.WriteByte(1)    // opcode_base (0 standard opcode length entries)
	buf.WriteByte(0x00) // include_directories terminator
	buf.WriteByte(0x00) // file list terminator

	hdr, err := readLineHeader(&buf, 2)
	require.NoError(t, err)

	assert.Equal(t, uint8(1), hdr.MaxOpsPerInst)
	assert.False(t, hdr.DefaultIsStmt)
	assert.Empty(t, hdr.StandardOpcodeLens)
	assert.Empty(t, hdr.FileEntries)
}

func TestReadLineHeaderIncludeDirectories(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00})
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00})
	buf.WriteByte(1)
	buf.WriteByte(1)
	buf.WriteByte(1)
	buf.WriteByte(0x00)
	buf.WriteByte(14)
	buf.WriteByte(1) // opcode_base=1 -> zero standard opcode length entries
	buf.WriteString("/usr/include\x00")
	buf.WriteByte(0x00) // include_directories terminator
	buf.WriteByte(0x00) // file list terminator

	hdr, err := readLineHeader(&buf, 4)
	require.NoError(t, err)
	require.Len(t, hdr.IncludeDirectories, 1)
	assert.Equal(t, "/usr/include", hdr.IncludeDirectories[0])
}
