package tracer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/tkyk0317/godbg/internal/addr"
	"github.com/tkyk0317/godbg/internal/ptrace"
	"github.com/tkyk0317/godbg/internal/regnames"
)

var (
	promptColor  = color.New(color.FgGreen, color.Bold)
	errColor     = color.New(color.FgRed)
	bpColor      = color.New(color.FgYellow)
	headingColor = color.New(color.FgCyan, color.Bold)
)

const helpText = `b SYM              set a breakpoint on function SYM
d N                delete breakpoint N
bl                 list breakpoints
c                  continue
s                  single-step
p SYM              print variable SYM
set var SYM HEX    write HEX to variable SYM
set regs REG HEX   write HEX to register REG
info regs          dump general registers
info debugsec      dump parsed DWARF
h                  this help text
quit               kill tracee and exit
`

// shellLoop reads and dispatches shell commands until one resumes the
// tracee (c, s) or terminates the process (quit). exit is true only
// when the input stream is exhausted.
func (c *Controller) shellLoop() (exit bool, err error) {
	for {
		promptColor.Fprint(c.out, "dbg> ")

		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return true, nil
			}
			return false, fmt.Errorf("tracer: shell read: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "b":
			if len(fields) != 2 {
				errColor.Fprintf(c.out, "not support command: %s\n", line)
				continue
			}
			c.cmdBreak(fields[1])

		case "d":
			if len(fields) != 2 {
				errColor.Fprintf(c.out, "not support command: %s\n", line)
				continue
			}
			c.cmdDelete(fields[1])

		case "bl":
			if len(fields) != 1 {
				errColor.Fprintf(c.out, "not support command: %s\n", line)
				continue
			}
			c.cmdList()

		case "c":
			if len(fields) != 1 {
				errColor.Fprintf(c.out, "not support command: %s\n", line)
				continue
			}
			if err := ptrace.Cont(c.pid); err != nil {
				return false, err
			}
			c.state = StateRunning
			return false, nil

		case "s":
			if len(fields) != 1 {
				errColor.Fprintf(c.out, "not support command: %s\n", line)
				continue
			}
			if err := ptrace.SingleStep(c.pid); err != nil {
				return false, err
			}
			c.state = StateRunning
			return false, nil

		case "p":
			if len(fields) != 2 {
				errColor.Fprintf(c.out, "not support command: %s\n", line)
				continue
			}
			c.cmdPrint(fields[1])

		case "set":
			if len(fields) != 4 {
				errColor.Fprintf(c.out, "not support command: %s\n", line)
				continue
			}
			switch fields[1] {
			case "var":
				c.cmdSetVar(fields[2], fields[3])
			case "regs":
				c.cmdSetRegs(fields[2], fields[3])
			default:
				errColor.Fprintf(c.out, "not support command: %s\n", line)
			}

		case "info":
			if len(fields) != 2 {
				errColor.Fprintf(c.out, "not support command: %s\n", line)
				continue
			}
			switch fields[1] {
			case "regs":
				c.cmdInfoRegs()
			case "debugsec":
				c.cmdInfoDebugSec()
			default:
				errColor.Fprintf(c.out, "not support command: %s\n", line)
			}

		case "h":
			fmt.Fprint(c.out, helpText)

		case "quit":
			if err := ptrace.Kill(c.pid); err != nil {
				c.logger.Error("kill on quit failed", "error", err)
			}
			os.Exit(0)

		default:
			errColor.Fprintf(c.out, "not support command: %s\n", line)
		}
	}
}

func (c *Controller) cmdBreak(sym string) {
	s, ok := c.elfFile.FindFunc(sym)
	if !ok {
		errColor.Fprintf(c.out, "not found symbol: %s\n", sym)
		return
	}
	if err := c.installBreakpoint(sym, s.Value); err != nil {
		c.logger.Error("install breakpoint failed", "symbol", sym, "error", err)
		errColor.Fprintf(c.out, "not found symbol: %s\n", sym)
	}
}

func (c *Controller) cmdDelete(idxStr string) {
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		errColor.Fprintf(c.out, "not support command: d %s\n", idxStr)
		return
	}

	bp, ok := c.bps.Delete(idx)
	if !ok {
		errColor.Fprintln(c.out, "not entried breakpoint")
		return
	}

	if err := ptrace.PokeWord(c.pid, bp.Address.Get(), bp.SavedWord); err != nil {
		c.logger.Error("restore word on delete failed", "error", err)
	}
}

func (c *Controller) cmdList() {
	for i, bp := range c.bps.List() {
		bpColor.Fprintf(c.out, "%d: %s (0x%016x)\n", i, bp.Symbol, bp.Address.Get()-c.entry)
	}
}

func (c *Controller) cmdPrint(sym string) {
	s, ok := c.elfFile.FindVar(sym)
	if !ok {
		errColor.Fprintf(c.out, "not found symbol: %s\n", sym)
		return
	}
	a := addr.Relative(c.entry, s.Value)
	word, err := ptrace.PeekWord(c.pid, a.Get())
	if err != nil {
		c.logger.Error("read variable failed", "symbol", sym, "error", err)
		errColor.Fprintf(c.out, "not found symbol: %s\n", sym)
		return
	}
	fmt.Fprintf(c.out, "0x%x\n", word)
}

func (c *Controller) cmdSetVar(sym, hexVal string) {
	s, ok := c.elfFile.FindVar(sym)
	if !ok {
		errColor.Fprintf(c.out, "not found symbol: %s\n", sym)
		return
	}
	val, err := parseHex(hexVal)
	if err != nil {
		errColor.Fprintf(c.out, "not support command: set var %s %s\n", sym, hexVal)
		return
	}
	a := addr.Relative(c.entry, s.Value)
	if err := ptrace.PokeWord(c.pid, a.Get(), val); err != nil {
		c.logger.Error("write variable failed", "symbol", sym, "error", err)
	}
}

func (c *Controller) cmdSetRegs(reg, hexVal string) {
	val, err := parseHex(hexVal)
	if err != nil {
		errColor.Fprintf(c.out, "not support command: set regs %s %s\n", reg, hexVal)
		return
	}

	regs, err := ptrace.GetRegs(c.pid)
	if err != nil {
		c.logger.Error("getregs failed", "error", err)
		return
	}
	if ok := regnames.Set(regs, reg, val); !ok {
		errColor.Fprintf(c.out, "not support command: set regs %s %s\n", reg, hexVal)
		return
	}
	if err := ptrace.SetRegs(c.pid, regs); err != nil {
		c.logger.Error("setregs failed", "error", err)
	}
}

func (c *Controller) cmdInfoRegs() {
	regs, err := ptrace.GetRegs(c.pid)
	if err != nil {
		c.logger.Error("getregs failed", "error", err)
		return
	}
	headingColor.Fprintln(c.out, "registers:")
	for _, name := range regnames.Names {
		val, _ := regnames.Get(regs, name)
		fmt.Fprintf(c.out, "%-8s: 0x%016x\n", name, val)
	}
}

func (c *Controller) cmdInfoDebugSec() {
	headingColor.Fprintln(c.out, "debug sections:")
	fmt.Fprint(c.out, c.elfFile.ShowDebug())
}

func parseHex(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return strconv.ParseUint(s, 16, 64)
}
