// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import "github.com/gogpu/gputypes"

// Memory allocates aligned storage for surfaces.
type Memory interface {
	// Alloc returns size bytes aligned to align, or nil when the heap is
	// exhausted.
	Alloc(size, align uint32) []byte

	// Free releases storage returned by Alloc. Freeing nil is a no-op.
	Free(buf []byte)
}

// Surfaces initialises surface descriptions.
type Surfaces interface {
	InitColorBuffer(cb *ColorBuffer, width, height uint32, format gputypes.TextureFormat, aa AAMode)
	InitTexture(tex *Texture, width, height uint32, format gputypes.TextureFormat, tile TileMode)
	InitSampler(s *Sampler, mode gputypes.AddressMode, filter gputypes.FilterMode)

	// CalcSurfaceSizeAndAlignment fills Pitch, ImageSize and Alignment.
	CalcSurfaceSizeAndAlignment(s *Surface)
}

// Commands issues GPU work. Copies and draws are asynchronous with respect
// to the caller until DrawDone returns.
type Commands interface {
	CopySurface(src *Surface, srcMip, srcSlice uint32, dst *Surface, dstMip, dstSlice uint32)
	ResolveAAColorBuffer(src *ColorBuffer, dst *Surface, mip, slice uint32)
	ClearColor(cb *ColorBuffer, c gputypes.Color)

	SetupContextState(ctx *ContextState)
	SetContextState(ctx *ContextState)
	SetColorBuffer(cb *ColorBuffer, target RenderTarget)
	SetViewport(v Viewport)
	SetScissor(s Scissor)
	DrawQuad(q Quad)

	// Invalidate makes buf coherent for the caches selected by mode.
	Invalidate(mode InvalidateMode, buf []byte)

	// DrawDone blocks until all issued work has completed.
	DrawDone()

	// Flush submits issued work without waiting.
	Flush()
}

// PresentSink hands a finished color buffer to a scan-out target.
type PresentSink interface {
	Present(cb *ColorBuffer, target ScanTarget)
}

// Driver is the complete display driver boundary.
type Driver interface {
	Memory
	Surfaces
	Commands
	PresentSink
}
