// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"image"

	"github.com/gogpu/dualview/driver"
	"golang.org/x/image/draw"
)

// Present implements driver.PresentSink. The presented buffer is copied
// into a scan-out image sized to the target's physical resolution.
func (d *Driver) Present(cb *driver.ColorBuffer, target driver.ScanTarget) {
	d.mu.Lock()
	d.stats.Presents[target]++
	d.lastScan[target] = cb
	d.mu.Unlock()

	if cb == nil || !cb.Allocated() {
		return
	}
	src, err := rgbaView(&cb.Surface)
	if err != nil {
		d.log().Debug("present: unviewable buffer", "target", target, "error", err)
		return
	}

	w, h := driver.TVWidth, driver.TVHeight
	if target == driver.ScanTargetDRC {
		w, h = driver.DRCWidth, driver.DRCHeight
	}
	scan := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(scan, scan.Bounds(), src, image.Point{}, draw.Src)

	d.mu.Lock()
	d.scanout[target] = scan
	d.mu.Unlock()
}

// Scanout returns the last image presented to target, or nil.
func (d *Driver) Scanout(target driver.ScanTarget) *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scanout[target]
}

// LastPresented returns the color buffer last handed to target.
func (d *Driver) LastPresented(target driver.ScanTarget) *driver.ColorBuffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastScan[target]
}
