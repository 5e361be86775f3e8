// Package wlrgamma is a thin, hand-written binding for the
// wlr-gamma-control-unstable-v1 Wayland protocol, built on the
// low-level object/marshaling primitives exposed by
// github.com/yaslama/go-wayland/wayland/client. It exposes exactly
// the two protocol objects the backend needs: the global manager and
// the per-output gamma-control object, including their events.
package wlrgamma

import (
	wlclient "github.com/yaslama/go-wayland/wayland/client"
)

// ZwlrGammaControlManagerV1InterfaceName is the wire name advertised
// by the compositor's global registry for this protocol's manager
// singleton.
const ZwlrGammaControlManagerV1InterfaceName = "zwlr_gamma_control_manager_v1"

// ManagerV1 is the bound global; it hands out a GammaControlV1 object
// per output via GetGammaControl.
type ManagerV1 struct {
	proxy *wlclient.Proxy
}

// NewManagerV1 constructs an unbound manager proxy on ctx, ready to be
// passed to Registry.Bind.
func NewManagerV1(ctx *wlclient.Context) *ManagerV1 {
	return &ManagerV1{proxy: wlclient.NewProxy(ctx)}
}

// Proxy exposes the underlying wayland object for Registry.Bind.
func (m *ManagerV1) Proxy() *wlclient.Proxy { return m.proxy }

// GetGammaControl requests a gamma-control object for the given
// output. The GammaSizeEvent/FailedEvent handlers must be attached to
// the returned object before the next display roundtrip.
func (m *ManagerV1) GetGammaControl(output *wlclient.Output) (*GammaControlV1, error) {
	ctrl := &GammaControlV1{proxy: wlclient.NewProxy(m.proxy.Context())}
	if err := m.proxy.Marshal(opcodeGetGammaControl, ctrl.proxy, output.Proxy()); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// Destroy releases the manager global. The compositor does not
// require this before disconnecting, but an orderly close does it
// anyway.
func (m *ManagerV1) Destroy() error {
	return m.proxy.Marshal(opcodeManagerDestroy)
}

// GammaSizeEvent reports the ramp length the compositor expects for
// this output's gamma table.
type GammaSizeEvent struct {
	Size uint32
}

// FailedEvent indicates the compositor revoked this gamma-control
// object; its output's resources must be released.
type FailedEvent struct{}

// GammaControlV1 is a single output's gamma-control handle.
type GammaControlV1 struct {
	proxy       *wlclient.Proxy
	onGammaSize func(GammaSizeEvent)
	onFailed    func(FailedEvent)
}

// SetGammaSizeHandler registers the callback invoked when the
// compositor announces this output's ramp size.
func (c *GammaControlV1) SetGammaSizeHandler(fn func(GammaSizeEvent)) {
	c.onGammaSize = fn
	c.proxy.SetEventHandler(eventGammaSize, func(args []byte) {
		fn(GammaSizeEvent{Size: wlclient.DecodeUint32(args)})
	})
}

// SetFailedHandler registers the callback invoked when the compositor
// revokes this gamma-control object.
func (c *GammaControlV1) SetFailedHandler(fn func(FailedEvent)) {
	c.onFailed = fn
	c.proxy.SetEventHandler(eventFailed, func([]byte) { fn(FailedEvent{}) })
}

// SetGamma hands the compositor a file descriptor holding
// 3*ramp_size*2 bytes of channel-major little-endian gamma samples.
func (c *GammaControlV1) SetGamma(fd int) error {
	return c.proxy.MarshalFD(opcodeSetGamma, fd)
}

// Destroy releases this gamma-control object.
func (c *GammaControlV1) Destroy() error {
	return c.proxy.Marshal(opcodeControlDestroy)
}

const (
	opcodeGetGammaControl = 0
	opcodeManagerDestroy  = 1

	opcodeSetGamma       = 0
	opcodeControlDestroy = 1

	eventGammaSize = 0
	eventFailed    = 1
)
