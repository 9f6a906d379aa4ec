// Package regnames maps the closed set of register names the shell's
// "set regs"/"info regs" commands recognize onto the fields of a
// golang.org/x/sys/unix.PtraceRegs snapshot.
package regnames

import "golang.org/x/sys/unix"

// Names is the closed, ordered list of register names "info regs"
// prints and "set regs" accepts.
var Names = []string{
	"orig_rax", "rip", "rsp",
	"r15", "r14", "r13", "r12", "r11", "r10", "r9", "r8",
	"rax", "rcx", "rdx", "rsi", "rdi",
	"cs", "eflags", "ss", "fs_base", "gs_base", "ds", "es", "fs", "gs",
}

// Get reads the named register out of regs. ok is false for an
// unrecognized name.
func Get(regs *unix.PtraceRegs, name string) (uint64, bool) {
	switch name {
	case "orig_rax":
		return regs.Orig_rax, true
	case "rip":
		return regs.Rip, true
	case "rsp":
		return regs.Rsp, true
	case "r15":
		return regs.R15, true
	case "r14":
		return regs.R14, true
	case "r13":
		return regs.R13, true
	case "r12":
		return regs.R12, true
	case "r11":
		return regs.R11, true
	case "r10":
		return regs.R10, true
	case "r9":
		return regs.R9, true
	case "r8":
		return regs.R8, true
	case "rax":
		return regs.Rax, true
	case "rcx":
		return regs.Rcx, true
	case "rdx":
		return regs.Rdx, true
	case "rsi":
		return regs.Rsi, true
	case "rdi":
		return regs.Rdi, true
	case "cs":
		return regs.Cs, true
	case "eflags":
		return regs.Eflags, true
	case "ss":
		return regs.Ss, true
	case "fs_base":
		return regs.Fs_base, true
	case "gs_base":
		return regs.Gs_base, true
	case "ds":
		return regs.Ds, true
	case "es":
		return regs.Es, true
	case "fs":
		return regs.Fs, true
	case "gs":
		return regs.Gs, true
	default:
		return 0, false
	}
}

// Set writes value into the named register field of regs. ok is false
// for an unrecognized name; regs is left unmodified in that case.
func Set(regs *unix.PtraceRegs, name string, value uint64) bool {
	switch name {
	case "orig_rax":
		regs.Orig_rax = value
	case "rip":
		regs.Rip = value
	case "rsp":
		regs.Rsp = value
	case "r15":
		regs.R15 = value
	case "r14":
		regs.R14 = value
	case "r13":
		regs.R13 = value
	case "r12":
		regs.R12 = value
	case "r11":
		regs.R11 = value
	case "r10":
		regs.R10 = value
	case "r9":
		regs.R9 = value
	case "r8":
		regs.R8 = value
	case "rax":
		regs.Rax = value
	case "rcx":
		regs.Rcx = value
	case "rdx":
		regs.Rdx = value
	case "rsi":
		regs.Rsi = value
	case "rdi":
		regs.Rdi = value
	case "cs":
		regs.Cs = value
	case "eflags":
		regs.Eflags = value
	case "ss":
		regs.Ss = value
	case "fs_base":
		regs.Fs_base = value
	case "gs_base":
		regs.Gs_base = value
	case "ds":
		regs.Ds = value
	case "es":
		regs.Es = value
	case "fs":
		regs.Fs = value
	case "gs":
		regs.Gs = value
	default:
		return false
	}
	return true
}
