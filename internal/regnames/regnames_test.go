package regnames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestGetSetRoundTrip(t *testing.T) {
	var regs unix.PtraceRegs

	for _, name := range Names {
		ok := Set(&regs, name, 0x1000)
		assert.Truef(t, ok, "Set(%s) should be recognized", name)

		got, ok := Get(&regs, name)
		assert.Truef(t, ok, "Get(%s) should be recognized", name)
		assert.Equal(t, uint64(0x1000), got)
	}
}

func TestUnknownRegisterRejected(t *testing.T) {
	var regs unix.PtraceRegs

	_, ok := Get(&regs, "not_a_register")
	assert.False(t, ok)

	ok = Set(&regs, "not_a_register", 1)
	assert.False(t, ok)
}
