// Package syscallnames maps x86-64 syscall numbers to the closed set
// of names the syscall tracer recognizes. Anything outside the table
// prints as "unknown system call".
package syscallnames

import "golang.org/x/sys/unix"

var names = map[int64]string{
	unix.SYS_READ:            "read",
	unix.SYS_WRITE:           "write",
	unix.SYS_OPEN:            "open",
	unix.SYS_CLOSE:           "close",
	unix.SYS_STAT:            "stat",
	unix.SYS_FSTAT:           "fstat",
	unix.SYS_MMAP:            "mmap",
	unix.SYS_MUNMAP:          "munmap",
	unix.SYS_BRK:             "brk",
	unix.SYS_PREAD64:         "pread64",
	unix.SYS_PWRITE64:        "pwrite64",
	unix.SYS_READV:           "readv",
	unix.SYS_WRITEV:          "writev",
	unix.SYS_ACCESS:          "access",
	unix.SYS_PREADV:          "preadv",
	unix.SYS_PWRITEV:         "pwritev",
	unix.SYS_MPROTECT:        "mprotect",
	unix.SYS_ARCH_PRCTL:      "arch_prctl",
	unix.SYS_EXIT:            "exit",
	unix.SYS_EXIT_GROUP:      "exit_group",
	unix.SYS_OPENAT:          "openat",
	unix.SYS_CLOCK_NANOSLEEP: "clock_nanosleep",
	unix.SYS_NANOSLEEP:       "nanosleep",
}

// Name returns the symbolic name of syscall number no, or "unknown
// system call" if no is outside the closed table.
func Name(no int64) string {
	if name, ok := names[no]; ok {
		return name
	}
	return "unknown system call"
}
