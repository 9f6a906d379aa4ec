// Package stracer implements the syscall tracer: an alternate
// top-level mode that prints a register snapshot on every syscall-stop
// instead of driving an interactive breakpoint shell.
package stracer

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/tkyk0317/godbg/internal/ptrace"
	"github.com/tkyk0317/godbg/internal/syscallnames"
)

// Tracer drives one traced child through PTRACE_O_TRACESYSGOOD-based
// syscall tracing, printing one line per syscall-stop.
type Tracer struct {
	pid    int
	logger *slog.Logger
	out    io.Writer
}

// New returns a Tracer for a child already attached via
// ptrace.TraceMe before exec.
func New(pid int, logger *slog.Logger, out io.Writer) *Tracer {
	return &Tracer{pid: pid, logger: logger, out: out}
}

// Start blocks until the tracee exits, printing one line per
// syscall-stop of the form "[0x<rip>] NAME (rsp=... rax=... rcx=...)".
func (t *Tracer) Start() error {
	optionsSet := false

	for {
		ev, err := ptrace.Wait(t.pid)
		if err != nil {
			return fmt.Errorf("stracer: wait: %w", err)
		}

		switch ev.Kind {
		case ptrace.EventExited:
			fmt.Fprintf(t.out, "exit child process: pid=%d status=%d\n", ev.Pid, ev.ExitCode)
			return nil

		case ptrace.EventPtraceSyscall:
			if err := t.printSyscall(); err != nil {
				return fmt.Errorf("stracer: %w", err)
			}
			if err := ptrace.Syscall(t.pid); err != nil {
				return fmt.Errorf("stracer: resume: %w", err)
			}

		case ptrace.EventStopped:
			if !optionsSet {
				if err := ptrace.SetOptions(t.pid, unix.PTRACE_O_TRACESYSGOOD); err != nil {
					return fmt.Errorf("stracer: setoptions: %w", err)
				}
				optionsSet = true
			}
			if err := ptrace.Syscall(t.pid); err != nil {
				return fmt.Errorf("stracer: resume: %w", err)
			}

		case ptrace.EventSignaled:
			t.logger.Info("tracee signaled", "pid", ev.Pid, "signal", ev.Signal)
		case ptrace.EventPtraceEvent:
			t.logger.Info("ptrace event", "pid", ev.Pid, "cause", ev.TrapCause)
		case ptrace.EventContinued:
			t.logger.Info("tracee continued", "pid", ev.Pid)
		case ptrace.EventStillAlive:
			t.logger.Info("still alive")
		}
	}
}

func (t *Tracer) printSyscall() error {
	regs, err := ptrace.GetRegs(t.pid)
	if err != nil {
		return err
	}
	name := syscallnames.Name(int64(regs.Orig_rax))
	fmt.Fprintf(t.out, "[0x%x] %s (rsp=0x%x rax=0x%x rcx=0x%x)\n",
		regs.Rip, name, regs.Rsp, regs.Rax, regs.Rcx)
	return nil
}
