// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/dualview/internal/pixbuf"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// CopySurface implements driver.Commands. Only the first mip and slice
// exist in this driver, so the level arguments are ignored.
func (d *Driver) CopySurface(src *driver.Surface, _, _ uint32, dst *driver.Surface, _, _ uint32) {
	d.mu.Lock()
	d.stats.Copies++
	d.mu.Unlock()

	sb, err := pixbuf.FromSurface(src)
	if err != nil {
		d.log().Warn("copy: bad source", "error", err)
		return
	}
	db, err := pixbuf.FromSurface(dst)
	if err != nil {
		d.log().Warn("copy: bad destination", "error", err)
		return
	}
	d.rows(sb.Height(), "copy", func(y0, y1 int) error {
		return sb.CopyRowsTo(db, y0, y1)
	})
}

// ResolveAAColorBuffer implements driver.Commands.
func (d *Driver) ResolveAAColorBuffer(src *driver.ColorBuffer, dst *driver.Surface, _, _ uint32) {
	d.mu.Lock()
	d.stats.Resolves++
	d.mu.Unlock()

	sb, err := pixbuf.FromSurface(&src.Surface)
	if err != nil {
		d.log().Warn("resolve: bad source", "error", err)
		return
	}
	db, err := pixbuf.FromSurface(dst)
	if err != nil {
		d.log().Warn("resolve: bad destination", "error", err)
		return
	}
	d.rows(sb.Height(), "resolve", func(y0, y1 int) error {
		return sb.ResolveRowsTo(db, y0, y1)
	})
}

// rows runs fn over [0, height) in bands and logs the first failure.
func (d *Driver) rows(height int, op string, fn func(y0, y1 int) error) {
	var once sync.Once
	d.pool.Rows(height, func(y0, y1 int) {
		if err := fn(y0, y1); err != nil {
			once.Do(func() { d.log().Warn(op+" failed", "error", err) })
		}
	})
}

// ClearColor implements driver.Commands. Like the hardware clear, it
// leaves no context state bound; callers must set their context again
// before drawing.
func (d *Driver) ClearColor(cb *driver.ColorBuffer, c gputypes.Color) {
	d.mu.Lock()
	d.stats.Clears++
	d.current = nil
	d.mu.Unlock()

	b, err := pixbuf.FromSurface(&cb.Surface)
	if err != nil {
		d.log().Debug("clear: bad color buffer", "error", err)
		return
	}
	b.Fill(unorm8(c.R), unorm8(c.G), unorm8(c.B), unorm8(c.A))
}

func unorm8(v float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}

// SetupContextState implements driver.Commands.
func (d *Driver) SetupContextState(ctx *driver.ContextState) {
	ctx.Ready = true
	ctx.ColorBuffer = nil
	ctx.Viewport = driver.Viewport{}
	ctx.Scissor = driver.Scissor{}
}

// SetContextState implements driver.Commands. A nil context unbinds.
func (d *Driver) SetContextState(ctx *driver.ContextState) {
	d.mu.Lock()
	d.current = ctx
	d.stats.ContextSwitches++
	d.mu.Unlock()
}

// SetColorBuffer implements driver.Commands.
func (d *Driver) SetColorBuffer(cb *driver.ColorBuffer, _ driver.RenderTarget) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		d.log().Debug("set color buffer without context state")
		return
	}
	d.current.ColorBuffer = cb
}

// SetViewport implements driver.Commands.
func (d *Driver) SetViewport(v driver.Viewport) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current != nil {
		d.current.Viewport = v
	}
}

// SetScissor implements driver.Commands.
func (d *Driver) SetScissor(s driver.Scissor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current != nil {
		d.current.Scissor = s
	}
}

// DrawQuad implements driver.Commands. The quad is rasterized into the
// bound color buffer through the viewport, clipped to the scissor, and
// blended source-over with q.Alpha applied.
func (d *Driver) DrawQuad(q driver.Quad) {
	d.mu.Lock()
	ctx := d.current
	if ctx == nil || !ctx.Ready || ctx.ColorBuffer == nil || !ctx.ColorBuffer.Allocated() ||
		q.Texture == nil || !q.Texture.Allocated() {
		d.stats.DroppedDraws++
		d.mu.Unlock()
		d.log().Debug("draw dropped: incomplete state")
		return
	}
	target := ctx.ColorBuffer
	vp, sc := ctx.Viewport, ctx.Scissor
	d.mu.Unlock()

	dst, err := rgbaView(&target.Surface)
	if err != nil {
		d.drop("target", err)
		return
	}
	src, err := rgbaView(&q.Texture.Surface)
	if err != nil {
		d.drop("texture", err)
		return
	}

	dr := quadRect(vp, q.Offset, q.Scale)
	clip := image.Rect(int(sc.X), int(sc.Y), int(sc.X+sc.Width), int(sc.Y+sc.Height))
	clipped, ok := dst.SubImage(clip).(*image.RGBA)
	if !ok {
		d.drop("target", nil)
		return
	}

	if q.Alpha > 0 {
		var opts *draw.Options
		if q.Alpha < 1 {
			opts = &draw.Options{
				SrcMask: image.NewUniform(color.Alpha16{A: uint16(q.Alpha * 0xffff)}),
			}
		}
		scaler(q.Sampler).Scale(clipped, dr, src, src.Bounds(), draw.Over, opts)
	}

	d.mu.Lock()
	d.stats.Draws++
	d.draws = append(d.draws, DrawRecord{
		Texture: q.Texture,
		Target:  target,
		Rect:    dr,
		Alpha:   q.Alpha,
	})
	d.mu.Unlock()
}

func (d *Driver) drop(what string, err error) {
	d.mu.Lock()
	d.stats.DroppedDraws++
	d.mu.Unlock()
	d.log().Debug("draw dropped", "surface", what, "error", err)
}

func rgbaView(s *driver.Surface) (*image.RGBA, error) {
	b, err := pixbuf.FromSurface(s)
	if err != nil {
		return nil, err
	}
	return b.RGBA()
}

// quadRect maps the unit quad, scaled and offset in normalized device
// space, to a pixel rectangle through the viewport. NDC y points up.
func quadRect(vp driver.Viewport, offset, scale [2]float32) image.Rectangle {
	toX := func(ndc float32) int {
		return int(math.Round(float64(vp.X + (ndc+1)/2*vp.Width)))
	}
	toY := func(ndc float32) int {
		return int(math.Round(float64(vp.Y + (1-ndc)/2*vp.Height)))
	}
	return image.Rect(
		toX(offset[0]-scale[0]), toY(offset[1]+scale[1]),
		toX(offset[0]+scale[0]), toY(offset[1]-scale[1]),
	)
}

func scaler(s *driver.Sampler) draw.Scaler {
	if s != nil && s.Filter == gputypes.FilterModeNearest {
		return draw.NearestNeighbor
	}
	return draw.BiLinear
}

// Invalidate implements driver.Commands. CPU storage is always coherent
// here; the call is only counted.
func (d *Driver) Invalidate(_ driver.InvalidateMode, _ []byte) {
	d.mu.Lock()
	d.stats.Invalidates++
	d.mu.Unlock()
}

// DrawDone implements driver.Commands.
func (d *Driver) DrawDone() {
	d.mu.Lock()
	d.stats.DrawDones++
	d.mu.Unlock()
}

// Flush implements driver.Commands.
func (d *Driver) Flush() {
	d.mu.Lock()
	d.stats.Flushes++
	d.mu.Unlock()
}
