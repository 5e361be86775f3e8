// Package wayland implements the Wayland gamma-control backend: it
// binds wlr-gamma-control-unstable-v1, tracks one gamma-control handle
// per output, and on each Apply builds a fresh memfd-backed gamma
// ramp per output and hands its descriptor to the compositor.
//
// Unlike a typical Wayland client, this backend does not run its own
// event-loop goroutine: dispatch happens cooperatively, once per
// supervisor wake, per the single-threaded model of this daemon.
package wayland

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	wlclient "github.com/yaslama/go-wayland/wayland/client"
	"golang.org/x/sys/unix"

	"github.com/sunsetr-dev/sunsetr/internal/backend"
	"github.com/sunsetr-dev/sunsetr/internal/backend/wayland/wlrgamma"
	"github.com/sunsetr-dev/sunsetr/internal/domain"
)

type outputStatus int

const (
	statusBinding outputStatus = iota
	statusReady
	statusLost
)

type output struct {
	id       uint32
	wlOutput *wlclient.Output
	control  *wlrgamma.GammaControlV1
	rampSize uint32
	status   outputStatus
}

// Client is the Wayland backend's Backend implementation.
type Client struct {
	logger  *log.Logger
	display *wlclient.Display
	manager *wlrgamma.ManagerV1
	outputs map[uint32]*output
	lastErr error
}

// Connect opens the Wayland display, binds the gamma-control manager
// global and every currently advertised output, and blocks (via two
// protocol roundtrips) until ramp sizes for all of them are known —
// mirroring the Disconnected -> Binding -> Operational state machine.
func Connect(logger *log.Logger) (*Client, error) {
	if os.Getenv("WAYLAND_DISPLAY") == "" {
		return nil, backend.ErrNoWaylandDisplay
	}

	display, err := wlclient.Connect("")
	if err != nil {
		return nil, backend.NewFatal(fmt.Errorf("connecting to compositor: %w", err))
	}

	c := &Client{logger: logger, display: display, outputs: make(map[uint32]*output)}
	if err := c.bindRegistry(); err != nil {
		display.Context().Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) bindRegistry() error {
	ctx := c.display.Context()
	registry, err := c.display.GetRegistry()
	if err != nil {
		return backend.NewFatal(fmt.Errorf("getting registry: %w", err))
	}

	pendingOutputs := make([]*wlclient.Output, 0)

	registry.SetGlobalHandler(func(e wlclient.RegistryGlobalEvent) {
		switch e.Interface {
		case wlrgamma.ZwlrGammaControlManagerV1InterfaceName:
			mgr := wlrgamma.NewManagerV1(ctx)
			if err := registry.Bind(e.Name, e.Interface, 1, mgr.Proxy()); err == nil {
				c.manager = mgr
			} else {
				c.logger.Error("binding gamma control manager", "err", err)
			}
		case "wl_output":
			out := wlclient.NewOutput(ctx)
			version := e.Version
			if version > 4 {
				version = 4
			}
			if err := registry.Bind(e.Name, e.Interface, version, out); err == nil {
				pendingOutputs = append(pendingOutputs, out)
			} else {
				c.logger.Error("binding wl_output", "err", err)
			}
		}
	})

	registry.SetGlobalRemoveHandler(func(e wlclient.RegistryGlobalRemoveEvent) {
		for id, out := range c.outputs {
			if out.id == e.Name {
				c.logger.Info("output removed", "output", id)
				if out.control != nil {
					out.control.Destroy()
				}
				delete(c.outputs, id)
			}
		}
	})

	if err := c.display.Roundtrip(); err != nil {
		return backend.NewFatal(fmt.Errorf("registry roundtrip: %w", err))
	}
	if c.manager == nil {
		return backend.NewFatal(fmt.Errorf("compositor does not advertise %s", wlrgamma.ZwlrGammaControlManagerV1InterfaceName))
	}
	if len(pendingOutputs) == 0 {
		return backend.NewFatal(fmt.Errorf("compositor advertises no outputs"))
	}

	for _, wlOut := range pendingOutputs {
		if err := c.addOutput(wlOut); err != nil {
			c.logger.Warn("binding gamma control for output", "err", err)
		}
	}
	if err := c.display.Roundtrip(); err != nil {
		return backend.NewFatal(fmt.Errorf("gamma control roundtrip: %w", err))
	}
	return nil
}

func (c *Client) addOutput(wlOut *wlclient.Output) error {
	ctrl, err := c.manager.GetGammaControl(wlOut)
	if err != nil {
		return err
	}
	id := wlOut.ID()
	o := &output{id: id, wlOutput: wlOut, control: ctrl, status: statusBinding}

	ctrl.SetGammaSizeHandler(func(e wlrgamma.GammaSizeEvent) {
		o.rampSize = e.Size
		o.status = statusReady
		c.logger.Debug("output ready", "output", id, "ramp_size", e.Size)
	})
	ctrl.SetFailedHandler(func(wlrgamma.FailedEvent) {
		o.status = statusLost
		c.logger.Warn("gamma control failed", "output", id)
	})

	c.outputs[id] = o
	return nil
}

// dispatch drains one round of pending compositor events. Apply calls
// this before pushing ramps, so events are drained once per Apply.
func (c *Client) dispatch() error {
	if err := c.display.Context().Dispatch(); err != nil {
		return backend.NewFatal(fmt.Errorf("dispatching wayland events: %w", err))
	}
	return nil
}

// Apply pushes a freshly built gamma ramp to every Ready output.
func (c *Client) Apply(tempK, gammaPct int) error {
	if err := c.dispatch(); err != nil {
		return err
	}

	allLost := true
	for _, o := range c.outputs {
		if o.status != statusReady {
			continue
		}
		allLost = false
		ramp := domain.BuildRamp(int(o.rampSize), tempK, gammaPct)
		if err := c.applyOne(o, ramp); err != nil {
			c.logger.Warn("applying gamma ramp", "output", o.id, "err", err)
			o.status = statusLost
		}
	}
	if allLost && len(c.outputs) > 0 {
		return backend.NewProtocol(fmt.Errorf("all outputs lost"))
	}
	return nil
}

func (c *Client) applyOne(o *output, ramp domain.GammaRamp) error {
	data := packRamp(ramp)
	fd, err := unix.MemfdCreate("sunsetr-gamma", 0)
	if err != nil {
		return fmt.Errorf("memfd_create: %w", err)
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, int64(len(data))); err != nil {
		return fmt.Errorf("ftruncate: %w", err)
	}
	mapped, err := unix.Mmap(fd, 0, len(data), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap: %w", err)
	}
	copy(mapped, data)
	if err := unix.Munmap(mapped); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}

	if err := o.control.SetGamma(fd); err != nil {
		return fmt.Errorf("set_gamma: %w", err)
	}
	return nil
}

// packRamp serializes a GammaRamp into channel-major little-endian
// u16 samples, per the wire layout set_gamma expects.
func packRamp(r domain.GammaRamp) []byte {
	n := len(r.R)
	buf := make([]byte, n*6)
	put := func(off int, v uint16) {
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
	}
	for i, v := range r.R {
		put(i*2, v)
	}
	for i, v := range r.G {
		put(n*2+i*2, v)
	}
	for i, v := range r.B {
		put(n*4+i*2, v)
	}
	return buf
}

// Probe reports whether at least one output is Ready.
func (c *Client) Probe() error {
	for _, o := range c.outputs {
		if o.status == statusReady {
			return nil
		}
	}
	return backend.NewProtocol(fmt.Errorf("no ready outputs"))
}

// OwnsStartupAnimation is always false: the Wayland backend has no
// animation of its own, so the supervisor's StartupAnimator runs.
func (c *Client) OwnsStartupAnimation() bool { return false }

// Close destroys every gamma-control object, the manager, and the
// display connection.
func (c *Client) Close() error {
	for _, o := range c.outputs {
		if o.control != nil {
			o.control.Destroy()
		}
	}
	if c.manager != nil {
		c.manager.Destroy()
	}
	c.display.Context().Close()
	return nil
}
