// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// ScanTarget identifies a physical display output.
type ScanTarget uint8

const (
	// ScanTargetTV is the primary external display.
	ScanTargetTV ScanTarget = iota + 1

	// ScanTargetDRC is the handheld companion display.
	ScanTargetDRC
)

// String implements fmt.Stringer.
func (t ScanTarget) String() string {
	switch t {
	case ScanTargetTV:
		return "tv"
	case ScanTargetDRC:
		return "drc"
	default:
		return fmt.Sprintf("ScanTarget(%d)", uint8(t))
	}
}

// Physical output resolutions.
const (
	TVWidth   = 1280
	TVHeight  = 720
	DRCWidth  = 854
	DRCHeight = 480
)

// AAMode is the multisample mode of a surface.
type AAMode uint8

const (
	AAMode1X AAMode = iota
	AAMode2X
	AAMode4X
	AAMode8X
)

// Samples returns the number of samples per pixel.
func (m AAMode) Samples() int {
	switch m {
	case AAMode2X:
		return 2
	case AAMode4X:
		return 4
	case AAMode8X:
		return 8
	default:
		return 1
	}
}

// String implements fmt.Stringer.
func (m AAMode) String() string {
	if m > AAMode8X {
		return fmt.Sprintf("AAMode(%d)", uint8(m))
	}
	return fmt.Sprintf("%dx", m.Samples())
}

// SurfaceUse describes how a surface may be bound.
type SurfaceUse uint32

const (
	SurfaceUseTexture     SurfaceUse = 1 << 0
	SurfaceUseColorBuffer SurfaceUse = 1 << 1
	SurfaceUseScanBuffer  SurfaceUse = 1 << 2
)

// TileMode selects the memory layout of a surface.
type TileMode uint8

const (
	// TileModeDefault lets the driver pick.
	TileModeDefault TileMode = iota
	// TileModeLinearAligned stores rows linearly with a padded pitch.
	TileModeLinearAligned
)

// InvalidateMode selects which caches an Invalidate call affects.
type InvalidateMode uint32

const (
	InvalidateCPU         InvalidateMode = 1 << 0
	InvalidateTexture     InvalidateMode = 1 << 1
	InvalidateColorBuffer InvalidateMode = 1 << 2
	InvalidateCPUTexture  InvalidateMode = InvalidateCPU | InvalidateTexture
)

// RenderTarget is a color attachment slot.
type RenderTarget uint8

// RenderTarget0 is the first color attachment.
const RenderTarget0 RenderTarget = 0

// Surface describes a 2D pixel surface and owns its storage.
//
// Width through TileMode are inputs; Pitch, ImageSize and Alignment are filled
// by Surfaces.CalcSurfaceSizeAndAlignment. Image is nil until allocated.
type Surface struct {
	Width     uint32
	Height    uint32
	Depth     uint32
	MipLevels uint32
	Format    gputypes.TextureFormat
	AA        AAMode
	Use       SurfaceUse
	TileMode  TileMode

	// Pitch is the row length in pixels, padded for alignment.
	Pitch     uint32
	ImageSize uint32
	Alignment uint32

	Image []byte
}

// Allocated reports whether the surface has pixel storage.
func (s *Surface) Allocated() bool {
	return s != nil && s.Image != nil
}

// ColorBuffer is a surface usable as a render target.
type ColorBuffer struct {
	Surface
	ViewMip        uint32
	ViewFirstSlice uint32
	ViewNumSlices  uint32
}

// Texture is a surface usable as a sampled texture.
type Texture struct {
	Surface
	ViewFirstMip   uint32
	ViewNumMips    uint32
	ViewFirstSlice uint32
	ViewNumSlices  uint32
}

// Sampler is the filtering and addressing configuration used when sampling a
// texture.
type Sampler struct {
	AddressMode gputypes.AddressMode
	Filter      gputypes.FilterMode
}

// ContextState is a render context: the bound render target, viewport and
// scissor. The zero value is not usable until set up by the driver.
type ContextState struct {
	Label string

	Ready       bool
	ColorBuffer *ColorBuffer
	Viewport    Viewport
	Scissor     Scissor
}

// Viewport maps normalized device coordinates to pixels.
type Viewport struct {
	X, Y, Width, Height float32
	Near, Far           float32
}

// Scissor clips draws to a pixel rectangle.
type Scissor struct {
	X, Y, Width, Height uint32
}

// Quad is a textured unit-square draw, placed in normalized device space.
// A vertex at (±1, ±1) lands at Offset ± Scale.
type Quad struct {
	Texture *Texture
	Sampler *Sampler
	Offset  [2]float32
	Scale   [2]float32
	// Alpha multiplies the sampled color.
	Alpha float32
}
