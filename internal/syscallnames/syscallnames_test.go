package syscallnames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestNameKnownSyscalls(t *testing.T) {
	assert.Equal(t, "write", Name(unix.SYS_WRITE))
	assert.Equal(t, "read", Name(unix.SYS_READ))
	assert.Equal(t, "openat", Name(unix.SYS_OPENAT))
}

func TestNameUnknownSyscall(t *testing.T) {
	assert.Equal(t, "unknown system call", Name(-1))
}
