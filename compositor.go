// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dualview

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/dualview/editor"
	"github.com/gogpu/dualview/layout"
	"github.com/gogpu/dualview/resources"
)

// Compositor sits between a host application and the display driver. While
// the host is in the foreground it captures the handheld and TV frames and
// replaces the TV frame with a composite of both.
//
// Compositor implements driver.PresentSink. Install it where the host
// presents and route the host's context changes through SetContextState.
type Compositor struct {
	mu sync.Mutex

	drv    driver.Driver
	sink   driver.PresentSink
	layout *layout.State
	editor *editor.Editor
	opts   options

	status atomic.Uint32
	host   hostContext

	private      driver.ContextState
	privateReady bool

	composite    driver.ColorBuffer
	drcTex       driver.Texture
	tvTex        driver.Texture
	sampler      driver.Sampler
	samplerReady bool

	overlay      *driver.Texture
	overlayTried bool
}

var _ driver.PresentSink = (*Compositor)(nil)

// New creates a compositor in the Background state. Nothing is allocated
// until the first present in the foreground.
func New(drv driver.Driver, opts ...Option) *Compositor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.sink == nil {
		o.sink = drv
	}
	if o.layout == nil {
		o.layout = layout.NewState(layout.Defaults())
	}
	if o.resources == nil {
		o.resources = resources.Default()
	}

	propagateLogger(drv, Logger())

	return &Compositor{
		drv:    drv,
		sink:   o.sink,
		layout: o.layout,
		editor: editor.New(o.layout, o.editorOpts...),
		opts:   o,
	}
}

// Layout returns the layout state the compositor draws from.
func (c *Compositor) Layout() *layout.State { return c.layout }

// Editor returns the layout editor.
func (c *Compositor) Editor() *editor.Editor { return c.editor }

// Status returns the current host status.
func (c *Compositor) Status() HostStatus {
	return HostStatus(c.status.Load())
}

// SetHostStatus records a host status change. Entering the foreground
// drops the composite buffer so the next TV present allocates a fresh one.
// Leaving it makes the saved host context untrustworthy.
func (c *Compositor) SetHostStatus(s HostStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.Store(uint32(s))
	switch s {
	case Foreground:
		c.releaseComposite()
	case Background:
		c.host.invalidate()
	}
	Logger().Info("host status changed", "status", s)
}

// SetContextState forwards a host context change to the driver. In the
// foreground the context is remembered so it can be restored after
// compositing. Background changes are only noted as the last forwarded
// context.
func (c *Compositor) SetContextState(ctx *driver.ContextState) {
	c.mu.Lock()
	if c.Status() == Foreground {
		c.host.set(ctx)
	} else {
		c.host.forwarded(ctx)
	}
	c.mu.Unlock()

	c.drv.SetContextState(ctx)
}

// Present implements driver.PresentSink. Every call is forwarded to the
// sink exactly once. In the foreground a TV present carries the composite
// buffer instead of cb when compositing succeeded.
func (c *Compositor) Present(cb *driver.ColorBuffer, target driver.ScanTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := cb
	if c.Status() == Foreground {
		out = c.intercept(cb, target)
	}
	c.sink.Present(out, target)
}

// intercept captures cb and returns the buffer to forward.
func (c *Compositor) intercept(cb *driver.ColorBuffer, target driver.ScanTarget) *driver.ColorBuffer {
	switch target {
	case driver.ScanTargetDRC:
		if c.ensureAllocated() {
			c.captureInto(cb, &c.drcTex)
		}
	case driver.ScanTargetTV:
		if !c.ensureAllocated() {
			return cb
		}
		if !c.captureInto(cb, &c.tvTex) {
			return cb
		}
		c.loadOverlay()
		c.drawComposite()
		if c.composite.Allocated() {
			return &c.composite
		}
	}
	return cb
}

// ApplicationStart is called when a host application starts.
func (c *Compositor) ApplicationStart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.editor.Reset()
	Logger().Info("application started", "status", c.Status())
}

// ApplicationEnding is called when the host application is about to exit.
// Capture storage and the private context are released. The overlay
// texture is kept for the next application.
func (c *Compositor) ApplicationEnding() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.release()
	c.private = driver.ContextState{}
	c.privateReady = false
	c.host.forget()
	c.editor.Reset()
	Logger().Info("application ending")
}
