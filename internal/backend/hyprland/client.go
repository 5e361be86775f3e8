// Package hyprland implements the companion-daemon backend: a client
// for hyprsunset's line-based Unix-socket control protocol, with
// optional supervision of the companion process itself.
package hyprland

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sunsetr-dev/sunsetr/internal/backend"
)

const (
	initialBackoff = 100 * time.Millisecond
	maxBackoff     = 2 * time.Second
	maxRetries     = 6
)

// Client speaks hyprsunset's `set temperature <K>` / `set gamma
// <percent>` line protocol over its instance-scoped Unix socket, and
// optionally owns the companion process's lifecycle.
type Client struct {
	logger     *log.Logger
	socketPath string
	conn       net.Conn
	reader     *bufio.Reader
	cmd        *exec.Cmd
	supervised bool
	backoff    time.Duration
}

// socketPath derives `{runtime_dir}/hypr/{instance}/.hyprsunset.sock`
// from the Hyprland instance signature environment variable.
func socketPath() (string, error) {
	instance := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if instance == "" {
		return "", backend.ErrNoHyprlandInstance
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = filepath.Join("/run/user", fmt.Sprint(os.Getuid()))
	}
	return filepath.Join(runtimeDir, "hypr", instance, ".hyprsunset.sock"), nil
}

// Connect resolves the companion socket path, optionally spawns the
// companion if it isn't already running and start_companion is true,
// then establishes the control connection.
func Connect(logger *log.Logger, startCompanion bool, initialTempK, initialGammaPct int) (*Client, error) {
	path, err := socketPath()
	if err != nil {
		return nil, err
	}

	c := &Client{logger: logger, socketPath: path, backoff: initialBackoff}

	if _, statErr := os.Stat(path); statErr != nil {
		if !startCompanion {
			return nil, backend.NewFatal(fmt.Errorf("companion socket %s not found and start_hyprsunset is false", path))
		}
		if err := c.spawnCompanion(initialTempK, initialGammaPct); err != nil {
			return nil, backend.NewFatal(err)
		}
	} else if startCompanion {
		logger.Debug("companion socket already exists, acting as client only", "path", path)
	}

	if err := c.dial(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) spawnCompanion(tempK, gammaPct int) error {
	cmd := exec.Command("hyprsunset",
		"--temperature", fmt.Sprint(tempK),
		"--gamma", fmt.Sprint(gammaPct),
	)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting hyprsunset: %w", err)
	}
	c.cmd = cmd
	c.supervised = true

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(c.socketPath); err == nil {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("hyprsunset did not create its socket within 2s")
}

func (c *Client) dial() error {
	var lastErr error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		conn, err := net.Dial("unix", c.socketPath)
		if err == nil {
			c.conn = conn
			c.reader = bufio.NewReader(conn)
			c.backoff = initialBackoff
			return nil
		}
		lastErr = err
		c.logger.Debug("dialing companion, retrying", "attempt", attempt, "err", err)
		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return backend.NewFatal(fmt.Errorf("connecting to companion socket %s: %w", c.socketPath, lastErr))
}

func (c *Client) send(line string) error {
	if c.conn == nil {
		if err := c.dial(); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(c.conn, "%s\n", line); err != nil {
		c.conn = nil
		c.reader = nil
		return backend.NewProtocol(fmt.Errorf("writing %q: %w", line, err))
	}
	reply, err := c.reader.ReadString('\n')
	if err != nil {
		c.conn = nil
		c.reader = nil
		return backend.NewProtocol(fmt.Errorf("reading reply to %q: %w", line, err))
	}
	c.logger.Debug("companion reply", "command", line, "reply", reply)
	return nil
}

// Apply sends the two companion commands needed to match a rendered
// state. A failed write or read is surfaced as a Protocol error and
// drops the connection; the next call redials, and a redial that
// exhausts its retries is surfaced as a Fatal error.
func (c *Client) Apply(tempK, gammaPct int) error {
	if err := c.send(fmt.Sprintf("set temperature %d", tempK)); err != nil {
		return err
	}
	return c.send(fmt.Sprintf("set gamma %d", gammaPct))
}

// Probe reports whether the control socket is still dialable.
func (c *Client) Probe() error {
	if c.conn != nil {
		return nil
	}
	return c.dial()
}

// OwnsStartupAnimation is true: hyprsunset performs its own internal
// ramp, so the local StartupAnimator must stay disabled.
func (c *Client) OwnsStartupAnimation() bool { return true }

// Close terminates the companion if this client started it, and
// releases the control connection.
func (c *Client) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	if c.supervised && c.cmd != nil && c.cmd.Process != nil {
		if err := c.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("terminating companion: %w", err)
		}
		_ = c.cmd.Wait()
	}
	return nil
}
