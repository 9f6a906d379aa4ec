package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexAcceptsOptionalPrefix(t *testing.T) {
	v, err := parseHex("0xdead")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xdead), v)

	v, err = parseHex("dead")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xdead), v)

	v, err = parseHex("0X1000")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1000), v)
}

func TestParseHexRejectsGarbage(t *testing.T) {
	_, err := parseHex("not-hex")
	assert.Error(t, err)
}
