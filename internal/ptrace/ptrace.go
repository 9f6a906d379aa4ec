// Package ptrace wraps golang.org/x/sys/unix's Ptrace family and
// decodes wait status into the event taxonomy the controller's state
// machine dispatches on.
package ptrace

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// TraceMe requests that the calling process be traced by its parent.
// It must be called from the child after fork, before exec.
func TraceMe() error {
	return unix.PtraceTraceme()
}

// GetRegs reads the tracee's general-purpose register set.
func GetRegs(pid int) (*unix.PtraceRegs, error) {
	var regs unix.PtraceRegs
	if err := unix.PtraceGetRegs(pid, &regs); err != nil {
		return nil, fmt.Errorf("ptrace: getregs: %w", err)
	}
	return &regs, nil
}

// SetRegs writes back the tracee's general-purpose register set.
func SetRegs(pid int, regs *unix.PtraceRegs) error {
	if err := unix.PtraceSetRegs(pid, regs); err != nil {
		return fmt.Errorf("ptrace: setregs: %w", err)
	}
	return nil
}

// PeekWord reads one 8-byte machine word from the tracee's address
// space at addr.
func PeekWord(pid int, addr uint64) (uint64, error) {
	var buf [8]byte
	if _, err := unix.PtracePeekData(pid, uintptr(addr), buf[:]); err != nil {
		return 0, fmt.Errorf("ptrace: peekdata: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// PokeWord writes one 8-byte machine word to the tracee's address
// space at addr.
func PokeWord(pid int, addr uint64, word uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], word)
	if _, err := unix.PtracePokeData(pid, uintptr(addr), buf[:]); err != nil {
		return fmt.Errorf("ptrace: pokedata: %w", err)
	}
	return nil
}

// Cont resumes the tracee until the next signal-delivery-stop.
func Cont(pid int) error {
	if err := unix.PtraceCont(pid, 0); err != nil {
		return fmt.Errorf("ptrace: cont: %w", err)
	}
	return nil
}

// SingleStep resumes the tracee for exactly one instruction.
func SingleStep(pid int) error {
	if err := unix.PtraceSingleStep(pid); err != nil {
		return fmt.Errorf("ptrace: singlestep: %w", err)
	}
	return nil
}

// SetOptions sets tracing options — the controller uses this to
// request PTRACE_O_TRACESYSGOOD before syscall-tracing.
func SetOptions(pid int, options int) error {
	if err := unix.PtraceSetOptions(pid, options); err != nil {
		return fmt.Errorf("ptrace: setoptions: %w", err)
	}
	return nil
}

// Syscall resumes the tracee until the next syscall-entry-or-exit stop.
func Syscall(pid int) error {
	if err := unix.PtraceSyscall(pid, 0); err != nil {
		return fmt.Errorf("ptrace: syscall: %w", err)
	}
	return nil
}

// Kill sends SIGKILL to the tracee.
func Kill(pid int) error {
	if err := unix.Kill(pid, unix.SIGKILL); err != nil {
		return fmt.Errorf("ptrace: kill: %w", err)
	}
	return nil
}

// EventKind classifies a decoded wait status into the taxonomy the
// controller's state machine dispatches on.
type EventKind int

const (
	EventExited EventKind = iota
	EventStopped
	EventSignaled
	EventPtraceEvent
	EventPtraceSyscall
	EventContinued
	EventStillAlive
)

// Event is a decoded wait status.
type Event struct {
	Kind       EventKind
	Pid        int
	ExitCode   int
	Signal     unix.Signal
	TrapCause  uint32 // PTRACE_EVENT_* code, when Kind == EventPtraceEvent
}

// Wait blocks until the tracee's state changes and returns the
// decoded event. PTRACE_O_TRACESYSGOOD must already be set on the
// tracee for syscall-stops to be distinguishable from SIGTRAP stops
// (reported as EventPtraceSyscall vs EventStopped).
func Wait(pid int) (Event, error) {
	var status unix.WaitStatus
	wpid, err := unix.Wait4(pid, &status, 0, nil)
	if err != nil {
		return Event{}, fmt.Errorf("ptrace: wait4: %w", err)
	}

	ev := Event{Pid: wpid}

	switch {
	case status.Exited():
		ev.Kind = EventExited
		ev.ExitCode = status.ExitStatus()
	case status.Signaled():
		ev.Kind = EventSignaled
		ev.Signal = status.Signal()
	case status.Stopped():
		sig := status.StopSignal()
		if sig == unix.SIGTRAP|0x80 {
			ev.Kind = EventPtraceSyscall
		} else if trapCause := status.TrapCause(); sig == unix.SIGTRAP && trapCause > 0 {
			ev.Kind = EventPtraceEvent
			ev.TrapCause = uint32(trapCause)
		} else {
			ev.Kind = EventStopped
			ev.Signal = sig
		}
	case status.Continued():
		ev.Kind = EventContinued
	default:
		ev.Kind = EventStillAlive
	}

	return ev, nil
}
