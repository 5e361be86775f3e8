package supervisor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

// InstanceLock is the single-instance advisory lock held for the
// process lifetime.
type InstanceLock struct {
	file *os.File
	path string
}

func lockPath() string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = filepath.Join("/run/user", strconv.Itoa(os.Getuid()))
	}
	return filepath.Join(runtimeDir, "sunsetr.lock")
}

// AlreadyRunningError reports the PID found in a contended lockfile,
// when recoverable.
type AlreadyRunningError struct {
	PID int
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("sunsetr is already running (pid %d)", e.PID)
}

// AcquireLock opens (creating if needed) the well-known lockfile and
// takes an exclusive, non-blocking advisory lock on it. On contention
// it reads the incumbent's PID out of the file for diagnostics.
func AcquireLock() (*InstanceLock, error) {
	path := lockPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating runtime directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening lockfile: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		defer f.Close()
		var pid int
		buf := make([]byte, 32)
		if n, rerr := f.Read(buf); rerr == nil {
			fmt.Sscanf(string(buf[:n]), "%d", &pid)
		}
		return nil, &AlreadyRunningError{PID: pid}
	}

	if err := f.Truncate(0); err != nil {
		f.Close()
		return nil, fmt.Errorf("truncating lockfile: %w", err)
	}
	if _, err := f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing pid to lockfile: %w", err)
	}

	return &InstanceLock{file: f, path: path}, nil
}

// Release drops the advisory lock and closes the lockfile.
func (l *InstanceLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		l.file.Close()
		return fmt.Errorf("unlocking: %w", err)
	}
	return l.file.Close()
}
