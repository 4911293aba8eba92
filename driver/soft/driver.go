// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package soft implements driver.Driver on the CPU.
//
// Every command completes synchronously, so DrawDone and Flush only count
// calls. Surfaces are RGBA8/BGRA8 byte slices laid out the way the hardware
// lays out linear-aligned surfaces: rows padded to a 64-pixel pitch,
// multisampled pixels storing their samples contiguously.
//
// The heap can be capped and allocations can be made to fail on demand,
// which makes the allocation-failure paths of callers testable:
//
//	d := soft.New(soft.WithHeapLimit(8 << 20))
//	d.FailNextAllocs(1)
package soft

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/dualview/internal/bands"
)

// Stats counts driver calls.
type Stats struct {
	Allocs          int
	FailedAllocs    int
	Frees           int
	HeapInUse       int
	Invalidates     int
	Copies          int
	Resolves        int
	Clears          int
	Draws           int
	DroppedDraws    int
	DrawDones       int
	Flushes         int
	ContextSwitches int
	Presents        map[driver.ScanTarget]int
}

// DrawRecord describes one executed quad draw.
type DrawRecord struct {
	Texture *driver.Texture
	Target  *driver.ColorBuffer
	Rect    image.Rectangle
	Alpha   float32
}

// Option configures a Driver.
type Option func(*Driver)

// WithHeapLimit caps the total bytes that may be allocated at once.
// Zero means unlimited.
func WithHeapLimit(n int) Option {
	return func(d *Driver) {
		d.heapLimit = n
	}
}

// WithWorkers splits copies and resolves into row bands processed by n
// goroutines. n <= 0 uses GOMAXPROCS. Without this option all work runs on
// the calling goroutine. Call Close to stop the workers.
func WithWorkers(n int) Option {
	return func(d *Driver) {
		d.pool = bands.New(n)
	}
}

// Driver is a software display driver. It is safe for concurrent use,
// although the display pipeline it models issues calls from one thread.
type Driver struct {
	mu sync.Mutex

	logger atomic.Pointer[slog.Logger]

	pool *bands.Pool

	heapLimit  int
	failAllocs int
	live       map[*byte]int

	current *driver.ContextState

	stats    Stats
	draws    []DrawRecord
	scanout  map[driver.ScanTarget]*image.RGBA
	lastScan map[driver.ScanTarget]*driver.ColorBuffer
}

var _ driver.Driver = (*Driver)(nil)

// New creates a software driver.
func New(opts ...Option) *Driver {
	d := &Driver{
		live:     make(map[*byte]int),
		scanout:  make(map[driver.ScanTarget]*image.RGBA),
		lastScan: make(map[driver.ScanTarget]*driver.ColorBuffer),
	}
	d.stats.Presents = make(map[driver.ScanTarget]int)
	d.SetLogger(nil)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Close stops the band workers, if any.
func (d *Driver) Close() {
	d.pool.Close()
}

// Stats returns a copy of the call counters.
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.stats
	s.Presents = make(map[driver.ScanTarget]int, len(d.stats.Presents))
	for k, v := range d.stats.Presents {
		s.Presents[k] = v
	}
	return s
}

// Draws returns the quad draws executed since the last ResetDraws.
func (d *Driver) Draws() []DrawRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DrawRecord(nil), d.draws...)
}

// ResetDraws forgets recorded draws.
func (d *Driver) ResetDraws() {
	d.mu.Lock()
	d.draws = d.draws[:0]
	d.mu.Unlock()
}

// CurrentContext returns the bound context state.
func (d *Driver) CurrentContext() *driver.ContextState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}
