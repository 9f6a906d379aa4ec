// Package uleb128 decodes unsigned little-endian base-128 integers,
// the variable-length integer encoding used throughout DWARF.
package uleb128

import (
	"errors"
	"io"
)

// ErrDecode is returned when the byte source is exhausted mid-value.
var ErrDecode = errors.New("uleb128: decode error")

// Decode reads one ULEB128-encoded value from r, one byte at a time,
// accumulating the low 7 bits of each byte until a byte with its top
// bit clear is seen. It returns the number of bytes consumed and the
// decoded value.
func Decode(r io.Reader) (int, uint64, error) {
	var (
		val uint64
		b   [1]byte
		n   int
		s   uint
	)

	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return n, 0, ErrDecode
		}
		n++

		val |= (uint64(b[0]) & 0x7F) << s
		if b[0]&0x80 == 0 {
			break
		}
		s += 7
	}

	return n, val, nil
}
