// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dualview

import "github.com/gogpu/dualview/driver"

// captureInto copies the presented buffer src into target. It reports
// whether target now holds the frame.
//
// A nil or unallocated argument is ignored: such calls come from presents
// racing a release, not from real errors. A multisampled source is resolved
// through a temporary surface first; if that surface cannot be allocated,
// target's storage is freed so that the next present reallocates, and the
// frame is dropped.
func (c *Compositor) captureInto(src *driver.ColorBuffer, target *driver.Texture) bool {
	if src == nil || target == nil || !src.Allocated() || !target.Allocated() {
		return false
	}
	d := c.drv

	if src.AA == driver.AAMode1X {
		d.CopySurface(&src.Surface, src.ViewMip, src.ViewFirstSlice, &target.Surface, 0, 0)
		// The copy must land before the texture is sampled this frame.
		d.DrawDone()
	} else {
		tmp := src.Surface
		tmp.AA = driver.AAMode1X
		tmp.Image = nil
		d.CalcSurfaceSizeAndAlignment(&tmp)

		tmp.Image = d.Alloc(tmp.ImageSize, tmp.Alignment)
		if tmp.Image == nil {
			Logger().Warn("dropping capture: no memory to resolve",
				"samples", src.AA.Samples(), "size", tmp.ImageSize)
			c.free(&target.Surface)
			return false
		}

		Logger().Debug("resolving multisampled buffer", "samples", src.AA.Samples())
		d.ResolveAAColorBuffer(src, &tmp, 0, 0)
		d.CopySurface(&tmp, 0, 0, &target.Surface, 0, 0)
		d.DrawDone()
		d.Free(tmp.Image)
	}

	d.Invalidate(driver.InvalidateCPU, target.Image)
	return true
}
