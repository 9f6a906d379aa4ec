package breakpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkyk0317/godbg/internal/addr"
)

func TestRegisterRejectsDuplicateAddress(t *testing.T) {
	var tbl Table

	ok := tbl.Register("main", addr.Absolute(0x1000), 0xdeadbeef)
	require.True(t, ok)

	ok = tbl.Register("other", addr.Absolute(0x1000), 0xcafebabe)
	assert.False(t, ok)
	assert.Len(t, tbl.List(), 1)
}

func TestRegisterOrderPreserved(t *testing.T) {
	var tbl Table

	require.True(t, tbl.Register("a", addr.Absolute(1), 0))
	require.True(t, tbl.Register("b", addr.Absolute(2), 0))
	require.True(t, tbl.Register("c", addr.Absolute(3), 0))

	list := tbl.List()
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Symbol)
	assert.Equal(t, "b", list[1].Symbol)
	assert.Equal(t, "c", list[2].Symbol)
}

func TestContainsAndFind(t *testing.T) {
	var tbl Table
	tbl.Register("main", addr.Absolute(0x4010), 0x12345678)

	assert.True(t, tbl.Contains(addr.Absolute(0x4010)))
	assert.False(t, tbl.Contains(addr.Absolute(0x4011)))

	bp, ok := tbl.Find(addr.Absolute(0x4010))
	require.True(t, ok)
	assert.Equal(t, "main", bp.Symbol)
	assert.Equal(t, uint64(0x12345678), bp.SavedWord)
}

func TestDeleteShiftsSubsequentIndicesDown(t *testing.T) {
	var tbl Table
	tbl.Register("a", addr.Absolute(1), 0)
	tbl.Register("b", addr.Absolute(2), 0)
	tbl.Register("c", addr.Absolute(3), 0)

	deleted, ok := tbl.Delete(0)
	require.True(t, ok)
	assert.Equal(t, "a", deleted.Symbol)

	list := tbl.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Symbol)
	assert.Equal(t, "c", list[1].Symbol)
}

func TestDeleteOutOfRangeIsNoOp(t *testing.T) {
	var tbl Table

	_, ok := tbl.Delete(0)
	assert.False(t, ok)

	tbl.Register("a", addr.Absolute(1), 0)
	_, ok = tbl.Delete(5)
	assert.False(t, ok)
	assert.Len(t, tbl.List(), 1)
}
