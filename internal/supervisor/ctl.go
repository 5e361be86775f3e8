package supervisor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// runtimeDir and overridePath mirror lockPath's XDG_RUNTIME_DIR
// resolution. The lockfile (holding the daemon's PID) and the override
// file are the small well-known files the CLI and the running daemon
// use to talk to each other across processes, since signals alone
// cannot carry the (temp, gamma) pair a `--test` override needs.

func runtimeDir() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = filepath.Join("/run/user", strconv.Itoa(os.Getuid()))
	}
	return dir
}

func overridePath() string {
	return filepath.Join(runtimeDir(), "sunsetr.override")
}

// RunningPID reads the PID of the currently running instance from the
// lockfile, if any.
func RunningPID() (int, error) {
	data, err := os.ReadFile(lockPath())
	if err != nil {
		return 0, fmt.Errorf("no running instance found: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("lockfile does not contain a valid pid: %w", err)
	}
	return pid, nil
}

// SignalReload sends the running daemon a reload signal (CLI-side
// helper for `--reload`).
func SignalReload() error {
	pid, err := RunningPID()
	if err != nil {
		return err
	}
	return syscall.Kill(pid, syscall.SIGHUP)
}

// SignalTestOverride writes the requested (temp, gamma) pair to the
// well-known override file, then signals the daemon to toggle its
// transient override (the `--test <K> <pct>` CLI invocation).
func SignalTestOverride(tempK, gammaPct int) error {
	pid, err := RunningPID()
	if err != nil {
		return err
	}
	line := fmt.Sprintf("%d %d", tempK, gammaPct)
	if err := os.WriteFile(overridePath(), []byte(line), 0o644); err != nil {
		return fmt.Errorf("writing override file: %w", err)
	}
	return syscall.Kill(pid, syscall.SIGUSR2)
}

// readOverrideFile parses the (temp, gamma) pair written by
// SignalTestOverride.
func readOverrideFile() (tempK, gammaPct int, err error) {
	data, err := os.ReadFile(overridePath())
	if err != nil {
		return 0, 0, err
	}
	_, err = fmt.Sscanf(strings.TrimSpace(string(data)), "%d %d", &tempK, &gammaPct)
	return tempK, gammaPct, err
}

// ToggleOverride implements the "second distinct signal" semantics:
// activating the override if idle (reading the target from the
// override file), or clearing it if already active.
func (s *Supervisor) ToggleOverride() {
	if s.OverrideActive() {
		s.ClearOverride()
		return
	}
	tempK, gammaPct, err := readOverrideFile()
	if err != nil {
		s.logger.Warn("test override signal received but no override file found", "err", err)
		return
	}
	s.SetOverride(tempK, gammaPct)
}
