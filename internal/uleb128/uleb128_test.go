package uleb128_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tkyk0317/godbg/internal/uleb128"
)

func TestDecodeVectors(t *testing.T) {
	cases := []struct {
		name    string
		in      []byte
		size    int
		val     uint64
	}{
		{"zero", []byte{0x00}, 1, 0},
		{"one", []byte{0x01}, 1, 1},
		{"one-byte-max", []byte{0x7F}, 1, 127},
		{"three-byte-a", []byte{0xE5, 0x8E, 0x26}, 3, 624485},
		{"three-byte-b", []byte{0xEA, 0x93, 0x21}, 3, 543210},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, v, err := uleb128.Decode(bytes.NewReader(tc.in))
			require.NoError(t, err)
			require.Equal(t, tc.size, n)
			require.Equal(t, tc.val, v)
		})
	}
}

func TestDecodeConsumesStreamExactly(t *testing.T) {
	r := bytes.NewReader([]byte{0x7F, 0x00, 0x01})

	n, v, err := uleb128.Decode(r)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, uint64(127), v)

	n, v, err = uleb128.Decode(r)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, uint64(0), v)

	n, v, err = uleb128.Decode(r)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, uint64(1), v)

	require.Equal(t, 0, r.Len())
}

func TestDecodeShortRead(t *testing.T) {
	r := bytes.NewReader([]byte{0x80})
	_, _, err := uleb128.Decode(r)
	require.ErrorIs(t, err, uleb128.ErrDecode)
}

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 624485, 543210, 1 << 40, ^uint64(0)}
	for _, v := range values {
		enc := encode(v)
		n, got, err := uleb128.Decode(bytes.NewReader(enc))
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, v, got)
	}
}

// encode is the test-local mirror encoder; production code never needs
// to emit ULEB128, only decode it, since this system only reads DWARF.
func encode(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			break
		}
	}
	return out
}
