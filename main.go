package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"syscall"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"

	"github.com/tkyk0317/godbg/internal/stracer"
	"github.com/tkyk0317/godbg/internal/tracer"
)

func main() {
	// ptrace(2) requires every subsequent call for a given tracee to
	// come from the same thread that issued PTRACE_TRACEME.
	runtime.LockOSThread()

	root := &cobra.Command{
		Use:   "godbg MODE PATH",
		Short: "a source-level debugger and syscall tracer for x86-64 executables",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1])
		},
		SilenceUsage: true,
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	handler := slogmulti.Fanout(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	return slog.New(handler)
}

func run(mode, path string) error {
	logger := newLogger()

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not exist: %s: %w", path, err)
	}

	if mode == "trace" {
		pid, err := startTracee(path)
		if err != nil {
			return err
		}
		return stracer.New(pid, logger, os.Stdout).Start()
	}

	absPath, err := canonicalize(path)
	if err != nil {
		return fmt.Errorf("canonicalize %s: %w", path, err)
	}

	pid, err := startTracee(absPath)
	if err != nil {
		return err
	}
	return tracer.New(pid, absPath, logger, os.Stdin, os.Stdout).Run()
}

// canonicalize resolves path to an absolute, symlink-free form — the
// debugger needs this to match the path recorded against its own
// executable in /proc/<pid>/maps.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// startTracee forks and execs path with PTRACE_TRACEME armed in the
// child, the idiomatic Go equivalent of a raw fork()+traceme()+execv()
// sequence: os/exec already does fork+exec under the hood, and
// SysProcAttr.Ptrace arranges PTRACE_TRACEME between them.
func startTracee(path string) (int, error) {
	cmd := exec.Command(path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Ptrace: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start tracee: %w", err)
	}

	return cmd.Process.Pid, nil
}
