package addr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tkyk0317/godbg/internal/addr"
)

func TestAbsoluteIdentity(t *testing.T) {
	require.Equal(t, uint64(0x1234), addr.Absolute(0x1234).Get())
	require.Equal(t, uint64(0), addr.Absolute(0).Get())
}

func TestRelativeAddsBaseAndOffset(t *testing.T) {
	require.Equal(t, uint64(0x555555555139), addr.Relative(0x555555554000, 0x1139).Get())
	require.Equal(t, uint64(0), addr.Relative(0, 0).Get())
}
