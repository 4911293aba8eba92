// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pixbuf provides pixel views over driver surface storage.
//
// A surface stores rows of Pitch pixels; each pixel holds one entry per
// multisample, each entry BytesPerPixel bytes wide. Views never copy: they
// read and write the surface's Image slice in place.
package pixbuf

import (
	"errors"
	"image"

	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/gputypes"
)

// Common errors for pixel views.
var (
	// ErrInvalidDimensions is returned when width or height is zero.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrInvalidFormat is returned when the surface format is not a supported color format.
	ErrInvalidFormat = errors.New("pixbuf: invalid format")

	// ErrInvalidPitch is returned when the pitch is less than the width.
	ErrInvalidPitch = errors.New("pixbuf: pitch smaller than width")

	// ErrDataTooSmall is returned when the storage is smaller than required.
	ErrDataTooSmall = errors.New("pixbuf: data buffer too small")

	// ErrMultisampled is returned when a single-sample view is requested of a multisampled surface.
	ErrMultisampled = errors.New("pixbuf: surface is multisampled")
)

// Buf is a view over the storage of a driver surface.
type Buf struct {
	data    []byte
	width   int
	height  int
	pitch   int
	samples int
	bpp     int
	format  gputypes.TextureFormat
}

// BytesPerPixel returns the size of one sample for a color format, or 0 if
// the format is not supported.
func BytesPerPixel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 4
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		return 0
	}
}

// FromSurface creates a view over s. The surface must be allocated and its
// size computed.
func FromSurface(s *driver.Surface) (*Buf, error) {
	if s.Width == 0 || s.Height == 0 {
		return nil, ErrInvalidDimensions
	}
	bpp := BytesPerPixel(s.Format)
	if bpp == 0 {
		return nil, ErrInvalidFormat
	}
	if s.Pitch < s.Width {
		return nil, ErrInvalidPitch
	}

	b := &Buf{
		width:   int(s.Width),
		height:  int(s.Height),
		pitch:   int(s.Pitch),
		samples: s.AA.Samples(),
		bpp:     bpp,
		format:  s.Format,
	}
	need := b.Stride() * b.height
	if len(s.Image) < need {
		return nil, ErrDataTooSmall
	}
	b.data = s.Image[:need]
	return b, nil
}

// Width returns the width in pixels.
func (b *Buf) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Buf) Height() int { return b.height }

// Samples returns the number of samples per pixel.
func (b *Buf) Samples() int { return b.samples }

// Stride returns the number of bytes per row, including padding.
func (b *Buf) Stride() int {
	return b.pitch * b.samples * b.bpp
}

// Data returns the viewed bytes.
func (b *Buf) Data() []byte { return b.data }

// RowBytes returns the visible bytes of row y, or nil when y is out of
// bounds.
func (b *Buf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.Stride()
	return b.data[start : start+b.width*b.samples*b.bpp]
}

// SampleOffset returns the byte offset of sample s of pixel (x, y), or -1
// when out of bounds.
func (b *Buf) SampleOffset(x, y, s int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || s < 0 || s >= b.samples {
		return -1
	}
	return y*b.Stride() + (x*b.samples+s)*b.bpp
}

// GetRGBA returns sample 0 of pixel (x, y) in RGBA order. Out of bounds
// reads return zero.
func (b *Buf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	return b.sampleRGBA(b.SampleOffset(x, y, 0))
}

func (b *Buf) sampleRGBA(off int) (r, g, bl, a uint8) {
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[off : off+b.bpp]
	switch b.format {
	case gputypes.TextureFormatBGRA8Unorm:
		return p[2], p[1], p[0], p[3]
	case gputypes.TextureFormatR8Unorm:
		return p[0], p[0], p[0], 255
	default:
		return p[0], p[1], p[2], p[3]
	}
}

// SetRGBA writes every sample of pixel (x, y). Out of bounds writes are
// ignored.
func (b *Buf) SetRGBA(x, y int, r, g, bl, a uint8) {
	for s := 0; s < b.samples; s++ {
		b.setSample(b.SampleOffset(x, y, s), r, g, bl, a)
	}
}

func (b *Buf) setSample(off int, r, g, bl, a uint8) {
	if off < 0 {
		return
	}
	p := b.data[off : off+b.bpp]
	switch b.format {
	case gputypes.TextureFormatBGRA8Unorm:
		p[0], p[1], p[2], p[3] = bl, g, r, a
	case gputypes.TextureFormatR8Unorm:
		p[0] = r
	default:
		p[0], p[1], p[2], p[3] = r, g, bl, a
	}
}

// Fill sets every sample of every visible pixel.
func (b *Buf) Fill(r, g, bl, a uint8) {
	if b.height == 0 {
		return
	}
	// Fill the first row, then replicate it.
	first := b.RowBytes(0)
	for off := 0; off < len(first); off += b.bpp {
		b.setSample(off, r, g, bl, a)
	}
	for y := 1; y < b.height; y++ {
		copy(b.RowBytes(y), first)
	}
}

// RGBA returns an *image.RGBA that aliases the storage. Only single-sample
// RGBA8 surfaces can be viewed this way.
func (b *Buf) RGBA() (*image.RGBA, error) {
	if b.samples != 1 {
		return nil, ErrMultisampled
	}
	if b.format != gputypes.TextureFormatRGBA8Unorm {
		return nil, ErrInvalidFormat
	}
	return &image.RGBA{
		Pix:    b.data,
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, b.width, b.height),
	}, nil
}

// CopyTo copies the region both views share from b into dst, converting
// between formats when they differ. A multisampled source contributes its
// first sample.
func (b *Buf) CopyTo(dst *Buf) error {
	return b.CopyRowsTo(dst, 0, b.height)
}

// CopyRowsTo is CopyTo restricted to rows [y0, y1). Disjoint row ranges may
// be copied concurrently.
func (b *Buf) CopyRowsTo(dst *Buf, y0, y1 int) error {
	w := min(b.width, dst.width)
	y0, y1 = max(y0, 0), min(y1, b.height, dst.height)

	if b.format == dst.format && b.samples == 1 && dst.samples == 1 {
		for y := y0; y < y1; y++ {
			copy(dst.RowBytes(y)[:w*b.bpp], b.RowBytes(y)[:w*b.bpp])
		}
		return nil
	}
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := b.sampleRGBA(b.SampleOffset(x, y, 0))
			dst.SetRGBA(x, y, r, g, bl, a)
		}
	}
	return nil
}

// ResolveTo averages the samples of each pixel of b into dst, which must be
// single-sample. The shared region is resolved and converted to dst's
// format.
func (b *Buf) ResolveTo(dst *Buf) error {
	return b.ResolveRowsTo(dst, 0, b.height)
}

// ResolveRowsTo is ResolveTo restricted to rows [y0, y1).
func (b *Buf) ResolveRowsTo(dst *Buf, y0, y1 int) error {
	if dst.samples != 1 {
		return ErrMultisampled
	}
	w := min(b.width, dst.width)
	y0, y1 = max(y0, 0), min(y1, b.height, dst.height)
	n := uint32(b.samples)

	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb, sa uint32
			for s := 0; s < b.samples; s++ {
				r, g, bl, a := b.sampleRGBA(b.SampleOffset(x, y, s))
				sr += uint32(r)
				sg += uint32(g)
				sb += uint32(bl)
				sa += uint32(a)
			}
			dst.setSample(dst.SampleOffset(x, y, 0),
				uint8((sr+n/2)/n), uint8((sg+n/2)/n), uint8((sb+n/2)/n), uint8((sa+n/2)/n))
		}
	}
	return nil
}
