// Package tracer implements the tracee controller: the wait loop,
// breakpoint hit/recovery state machine, and the interactive shell
// that drives a traced child process over the ptrace primitive.
package tracer

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/tkyk0317/godbg/internal/addr"
	"github.com/tkyk0317/godbg/internal/breakpoint"
	"github.com/tkyk0317/godbg/internal/elf"
	"github.com/tkyk0317/godbg/internal/procmap"
	"github.com/tkyk0317/godbg/internal/ptrace"
)

// State is one position in the controller's wait-event state machine.
type State int

const (
	StateFresh State = iota
	StateRunning
	StateStopped
	StateRecovering
	StateExited
)

// Controller drives one traced child process through fork-and-trace,
// fan-out on wait events, breakpoint installation and recovery, and
// the interactive shell.
type Controller struct {
	pid   int
	path  string
	state State
	entry uint64

	elfFile *elf.File
	bps     breakpoint.Table

	logger *slog.Logger
	in     *bufio.Reader
	out    io.Writer
}

// New returns a Controller for a child already attached via
// ptrace.TraceMe before exec. path is the canonicalized path to the
// tracee's executable, used both to load its ELF/DWARF and to find
// its load base in the process memory map.
func New(pid int, path string, logger *slog.Logger, in io.Reader, out io.Writer) *Controller {
	return &Controller{
		pid:    pid,
		path:   path,
		state:  StateFresh,
		logger: logger,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// Run blocks until the tracee exits or the shell issues quit. It
// returns nil on a clean exit and a non-nil error on any fatal
// condition — an unexpected event during recovery, a tracing-primitive
// failure, or a failed ELF/DWARF load.
func (c *Controller) Run() error {
	for {
		ev, err := ptrace.Wait(c.pid)
		if err != nil {
			return fmt.Errorf("tracer: wait: %w", err)
		}

		switch ev.Kind {
		case ptrace.EventExited:
			c.state = StateExited
			fmt.Fprintf(c.out, "child exited: pid=%d code=%d\n", ev.Pid, ev.ExitCode)
			return nil

		case ptrace.EventStopped:
			if c.state == StateFresh {
				if err := c.loadTarget(); err != nil {
					return fmt.Errorf("tracer: fatal: %w", err)
				}
			}
			c.state = StateStopped

			if ev.Signal == unix.SIGTRAP {
				regs, err := ptrace.GetRegs(c.pid)
				if err != nil {
					return fmt.Errorf("tracer: fatal: %w", err)
				}
				candidate := addr.Absolute(regs.Rip - 1)
				if bp, ok := c.bps.Find(candidate); ok {
					if err := c.recoverBreakpoint(bp); err != nil {
						return fmt.Errorf("tracer: fatal: %w", err)
					}
				}
			}

			exit, err := c.shellLoop()
			if err != nil {
				return err
			}
			if exit {
				return nil
			}

		case ptrace.EventSignaled:
			c.logger.Info("tracee signaled", "pid", ev.Pid, "signal", ev.Signal)
		case ptrace.EventPtraceEvent:
			c.logger.Info("ptrace event", "pid", ev.Pid, "cause", ev.TrapCause)
		case ptrace.EventContinued:
			c.logger.Info("tracee continued", "pid", ev.Pid)
		case ptrace.EventPtraceSyscall:
			c.logger.Info("unexpected syscall-stop in debugger mode", "pid", ev.Pid)
		case ptrace.EventStillAlive:
			c.logger.Info("still alive")
		}
	}
}

// loadTarget reads the tracee's memory map to find its load base, then
// parses its on-disk ELF (and DWARF) image. It runs exactly once, on
// the first Stopped event (the exec-entry stop).
func (c *Controller) loadTarget() error {
	regions, err := procmap.Load(c.pid)
	if err != nil {
		return fmt.Errorf("load base: %w", err)
	}

	region, ok := findRegion(regions, c.path)
	if !ok {
		return fmt.Errorf("load base: no mapped region found for %s", c.path)
	}
	entry, err := procmap.StartAddress(region)
	if err != nil {
		return fmt.Errorf("load base: %w", err)
	}
	c.entry = entry

	c.elfFile = elf.New(c.path)
	if err := c.elfFile.Load(); err != nil {
		return fmt.Errorf("elf/dwarf load: %w", err)
	}

	return nil
}

func findRegion(regions map[string][]procmap.Region, path string) (procmap.Region, bool) {
	if rs, ok := regions[path]; ok && len(rs) > 0 {
		return rs[0], true
	}
	base := filepath.Base(path)
	for key, rs := range regions {
		if filepath.Base(key) == base && len(rs) > 0 {
			return rs[0], true
		}
	}
	return procmap.Region{}, false
}

// installBreakpoint patches the tracee's text at entry+relAddr with
// the 0xCC trap opcode and registers the breakpoint.
func (c *Controller) installBreakpoint(symbol string, relAddr uint64) error {
	a := addr.Relative(c.entry, relAddr)

	word, err := ptrace.PeekWord(c.pid, a.Get())
	if err != nil {
		return err
	}
	patched := (word &^ 0xFF) | 0xCC
	if err := ptrace.PokeWord(c.pid, a.Get(), patched); err != nil {
		return err
	}

	c.bps.Register(symbol, a, word)
	return nil
}

// recoverBreakpoint runs the restore/rewind/step/re-patch dance after
// a breakpoint hit. Any unexpected wait result here is fatal — the
// tracee's state can no longer be trusted.
func (c *Controller) recoverBreakpoint(bp breakpoint.Breakpoint) error {
	c.state = StateRecovering

	if err := ptrace.PokeWord(c.pid, bp.Address.Get(), bp.SavedWord); err != nil {
		return err
	}

	regs, err := ptrace.GetRegs(c.pid)
	if err != nil {
		return err
	}
	regs.Rip = bp.Address.Get()
	if err := ptrace.SetRegs(c.pid, regs); err != nil {
		return err
	}

	if err := ptrace.SingleStep(c.pid); err != nil {
		return err
	}
	ev, err := ptrace.Wait(c.pid)
	if err != nil {
		return err
	}
	if ev.Kind != ptrace.EventStopped {
		return fmt.Errorf("unexpected event during breakpoint recovery: %v", ev.Kind)
	}

	word, err := ptrace.PeekWord(c.pid, bp.Address.Get())
	if err != nil {
		return err
	}
	patched := (word &^ 0xFF) | 0xCC
	if err := ptrace.PokeWord(c.pid, bp.Address.Get(), patched); err != nil {
		return err
	}
	c.bps.Register(bp.Symbol, bp.Address, word)

	c.state = StateStopped
	return nil
}
