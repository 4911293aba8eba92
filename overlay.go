// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dualview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // overlay decoder

	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/dualview/internal/pixbuf"
	_ "golang.org/x/image/bmp" // overlay decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // overlay decoder
)

// loadOverlay decodes the overlay resource into a texture. It runs once per
// process; failure is logged and the composite is drawn without overlay.
func (c *Compositor) loadOverlay() {
	if c.overlayTried {
		return
	}
	c.overlayTried = true

	if c.opts.overlayName == "" {
		return
	}
	tex, err := c.uploadOverlay(c.opts.resources.GetFile(c.opts.overlayName))
	if err != nil {
		Logger().Warn("overlay disabled", "name", c.opts.overlayName, "error", err)
		return
	}
	c.overlay = tex
	Logger().Info("overlay loaded", "name", c.opts.overlayName, "width", tex.Width, "height", tex.Height)
}

func (c *Compositor) uploadOverlay(b []byte) (*driver.Texture, error) {
	if b == nil {
		return nil, ErrOverlayMissing
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOverlayDecode, err)
	}
	bounds := img.Bounds()

	tex := &driver.Texture{}
	c.drv.InitTexture(tex, uint32(bounds.Dx()), uint32(bounds.Dy()), captureFormat, driver.TileModeLinearAligned)
	c.drv.CalcSurfaceSizeAndAlignment(&tex.Surface)
	tex.Image = c.drv.Alloc(tex.ImageSize, tex.Alignment)
	if tex.Image == nil {
		return nil, fmt.Errorf("%w: no memory for %dx%d %s", ErrOverlayDecode, bounds.Dx(), bounds.Dy(), format)
	}

	buf, err := pixbuf.FromSurface(&tex.Surface)
	if err == nil {
		var dst *image.RGBA
		if dst, err = buf.RGBA(); err == nil {
			draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		}
	}
	if err != nil {
		c.drv.Free(tex.Image)
		return nil, fmt.Errorf("%w: %w", ErrOverlayDecode, err)
	}

	c.drv.Invalidate(driver.InvalidateCPU, tex.Image)
	return tex, nil
}
