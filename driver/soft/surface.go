// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/dualview/internal/pixbuf"
	"github.com/gogpu/gputypes"
)

const (
	pitchAlign       = 64
	linearAlignment  = 256
	defaultAlignment = 2048
)

// InitColorBuffer implements driver.Surfaces.
func (d *Driver) InitColorBuffer(cb *driver.ColorBuffer, width, height uint32, format gputypes.TextureFormat, aa driver.AAMode) {
	*cb = driver.ColorBuffer{
		Surface: driver.Surface{
			Width:     width,
			Height:    height,
			Depth:     1,
			MipLevels: 1,
			Format:    format,
			AA:        aa,
			Use:       driver.SurfaceUseColorBuffer,
			TileMode:  driver.TileModeDefault,
		},
		ViewNumSlices: 1,
	}
	d.CalcSurfaceSizeAndAlignment(&cb.Surface)
}

// InitTexture implements driver.Surfaces.
func (d *Driver) InitTexture(tex *driver.Texture, width, height uint32, format gputypes.TextureFormat, tile driver.TileMode) {
	*tex = driver.Texture{
		Surface: driver.Surface{
			Width:     width,
			Height:    height,
			Depth:     1,
			MipLevels: 1,
			Format:    format,
			AA:        driver.AAMode1X,
			Use:       driver.SurfaceUseTexture,
			TileMode:  tile,
		},
		ViewNumMips:   1,
		ViewNumSlices: 1,
	}
	d.CalcSurfaceSizeAndAlignment(&tex.Surface)
}

// InitSampler implements driver.Surfaces.
func (d *Driver) InitSampler(s *driver.Sampler, mode gputypes.AddressMode, filter gputypes.FilterMode) {
	s.AddressMode = mode
	s.Filter = filter
}

// CalcSurfaceSizeAndAlignment implements driver.Surfaces. Unsupported
// formats get a zero ImageSize, which Alloc refuses.
func (d *Driver) CalcSurfaceSizeAndAlignment(s *driver.Surface) {
	bpp := uint32(pixbuf.BytesPerPixel(s.Format))
	depth := max(s.Depth, 1)

	s.Pitch = (s.Width + pitchAlign - 1) / pitchAlign * pitchAlign
	s.ImageSize = s.Pitch * s.Height * bpp * uint32(s.AA.Samples()) * depth
	if s.TileMode == driver.TileModeLinearAligned {
		s.Alignment = linearAlignment
	} else {
		s.Alignment = defaultAlignment
	}
}
