// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dualview

import (
	"fmt"

	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/gputypes"
)

// captureFormat is the pixel format of the composite buffer and the capture
// textures.
const captureFormat = gputypes.TextureFormatRGBA8Unorm

// allocated reports whether the composite buffer and both capture textures
// have storage.
func (c *Compositor) allocated() bool {
	return c.composite.Allocated() && c.drcTex.Allocated() && c.tvTex.Allocated()
}

// ensureAllocated allocates the composite buffer and the capture textures
// unless all three already have storage. It reports whether they do on
// return; false only happens when the fatal handler returned.
func (c *Compositor) ensureAllocated() bool {
	if c.allocated() {
		return true
	}
	d := c.drv

	// Anything left over is stale.
	c.release()

	d.InitColorBuffer(&c.composite, driver.TVWidth, driver.TVHeight, captureFormat, driver.AAMode1X)

	d.InitTexture(&c.drcTex, driver.DRCWidth, driver.DRCHeight, captureFormat, driver.TileModeLinearAligned)
	c.drcTex.Use |= driver.SurfaceUseColorBuffer

	d.InitTexture(&c.tvTex, driver.TVWidth, driver.TVHeight, captureFormat, driver.TileModeLinearAligned)
	c.tvTex.Use |= driver.SurfaceUseColorBuffer

	if !c.samplerReady {
		d.InitSampler(&c.sampler, gputypes.AddressModeClampToEdge, gputypes.FilterModeLinear)
		c.samplerReady = true
	}

	for _, s := range []struct {
		name    string
		surface *driver.Surface
	}{
		{"composite", &c.composite.Surface},
		{"drc texture", &c.drcTex.Surface},
		{"tv texture", &c.tvTex.Surface},
	} {
		d.CalcSurfaceSizeAndAlignment(s.surface)
		s.surface.Image = d.Alloc(s.surface.ImageSize, s.surface.Alignment)
		if s.surface.Image == nil {
			err := fmt.Errorf("%w: %s (%d bytes, align %d)", ErrAllocation, s.name, s.surface.ImageSize, s.surface.Alignment)
			c.release()
			c.opts.fatal(err)
			return false
		}
		d.Invalidate(driver.InvalidateCPU, s.surface.Image)
		Logger().Debug("allocated surface", "surface", s.name,
			"width", s.surface.Width, "height", s.surface.Height, "size", s.surface.ImageSize)
	}
	return true
}

// release frees the composite buffer and both capture textures. Safe to
// call repeatedly.
func (c *Compositor) release() {
	c.releaseComposite()
	c.free(&c.drcTex.Surface)
	c.free(&c.tvTex.Surface)
}

// releaseComposite frees only the composite buffer.
func (c *Compositor) releaseComposite() {
	c.free(&c.composite.Surface)
}

func (c *Compositor) free(s *driver.Surface) {
	if s.Image != nil {
		c.drv.Free(s.Image)
		s.Image = nil
	}
}
