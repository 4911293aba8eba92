// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dualview

import (
	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/dualview/layout"
)

// QuadTransform converts a top-left pixel rectangle in 1280x720 composite
// space to the offset and scale of a unit quad in normalized device space.
// Device y points up.
func QuadTransform(x, y, w, h float32) (offset, scale [2]float32) {
	const (
		halfW = layout.SpaceWidth / 2
		halfH = layout.SpaceHeight / 2
	)
	offset[0] = (x - halfW + w/2) / halfW
	offset[1] = -(y - halfH + h/2) / halfH
	scale[0] = w / layout.SpaceWidth
	scale[1] = h / layout.SpaceHeight
	return offset, scale
}

// drawComposite draws both captured screens and the overlay into the
// composite buffer using the private context, then gives the host its
// context back. It never allocates.
func (c *Compositor) drawComposite() {
	if !c.composite.Allocated() {
		return
	}
	d := c.drv

	if !c.privateReady {
		d.SetupContextState(&c.private)
		c.private.Label = "dualview"
		c.privateReady = true
	}

	d.SetContextState(&c.private)
	d.SetColorBuffer(&c.composite, driver.RenderTarget0)
	d.ClearColor(&c.composite, c.opts.clearColor)

	// Clearing disturbs bound state.
	d.SetContextState(&c.private)
	d.SetColorBuffer(&c.composite, driver.RenderTarget0)

	w, h := c.composite.Width, c.composite.Height
	d.SetViewport(driver.Viewport{Width: float32(w), Height: float32(h), Far: 1})
	d.SetScissor(driver.Scissor{Width: w, Height: h})

	set := c.layout.Load()
	c.drawScreen(&set, set.Foreground.Other())
	c.drawScreen(&set, set.Foreground)

	if c.overlay != nil {
		c.drawTexture(c.overlay, 0, 0, float32(c.overlay.Width), float32(c.overlay.Height), layout.Opaque)
	}

	d.DrawDone()
	d.Invalidate(driver.InvalidateColorBuffer|driver.InvalidateCPUTexture, c.composite.Image)
	d.Flush()

	// The private context must not stay bound. Without a context confirmed
	// since the last foreground switch, the last one the host bound is used.
	if ctx, ok := c.host.get(); ok {
		d.SetContextState(ctx)
	} else if ctx := c.host.lastForwarded(); ctx != nil {
		Logger().Warn("restoring host context not confirmed since foreground")
		d.SetContextState(ctx)
	} else {
		Logger().Warn("no host context to restore")
	}
}

func (c *Compositor) drawScreen(set *layout.Settings, screen layout.Screen) {
	tex := &c.tvTex
	if screen == layout.ScreenDRC {
		tex = &c.drcTex
	}
	r := set.Region(screen)
	c.drawTexture(tex, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), set.Opacity(screen))
}

func (c *Compositor) drawTexture(tex *driver.Texture, x, y, w, h, alpha float32) {
	offset, scale := QuadTransform(x, y, w, h)
	c.drv.DrawQuad(driver.Quad{
		Texture: tex,
		Sampler: &c.sampler,
		Offset:  offset,
		Scale:   scale,
		Alpha:   alpha,
	})
}
