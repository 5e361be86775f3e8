// Package logging configures the daemon's structured logger: a
// charmbracelet/log.Logger writing pretty-printed, leveled output to a
// file in the XDG state directory (and additionally to stderr under
// --debug).
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// LogPath returns the daemon's log file path under XDG_STATE_HOME (or
// its ~/.local/state fallback).
func LogPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "sunsetr", "sunsetr.log")
}

// New opens (creating as needed) the daemon's log file and returns a
// logger writing to it. When debug is true, diagnostics are mirrored
// to stderr at Debug level; otherwise the file alone receives Info
// and above.
func New(debug bool) (*log.Logger, func(), error) {
	path := LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	var logger *log.Logger
	if debug {
		logger = log.NewWithOptions(io.MultiWriter(f, os.Stderr), log.Options{
			ReportTimestamp: true,
			ReportCaller:    true,
			Level:           log.DebugLevel,
		})
	} else {
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Level:           log.InfoLevel,
		})
	}

	return logger, func() { f.Close() }, nil
}
