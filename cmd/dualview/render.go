// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/gogpu/dualview"
	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/dualview/driver/soft"
	"github.com/gogpu/dualview/internal/pixbuf"
	"github.com/gogpu/dualview/layout"
	"github.com/gogpu/dualview/resources"
	"github.com/gogpu/gputypes"
	"github.com/spf13/afero"
	"golang.org/x/image/draw"
)

// render runs one foreground frame through the compositor and writes the
// TV scan-out.
func render(cfg *config) error {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	dualview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	fsys := afero.NewOsFs()

	settings := layout.Defaults()
	if cfg.Layout != "" {
		f, err := fsys.Open(cfg.Layout)
		if err != nil {
			return err
		}
		settings, err = layout.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.Layout, err)
		}
	}

	res := resources.Default()
	if cfg.OverlayDir != "" {
		if _, err := res.LoadFiles(fsys, cfg.OverlayDir); err != nil {
			return err
		}
	}

	var fatal error
	d := soft.New(soft.WithWorkers(0))
	defer d.Close()
	c := dualview.New(d,
		dualview.WithLayout(layout.NewState(settings)),
		dualview.WithResources(res),
		dualview.WithFatalHandler(func(err error) { fatal = err }),
	)

	drc, err := loadFrame(d, fsys, cfg.DRC, driver.DRCWidth, driver.DRCHeight, driver.AAMode1X)
	if err != nil {
		return err
	}
	tv, err := loadFrame(d, fsys, cfg.TV, driver.TVWidth, driver.TVHeight, aaMode(cfg.AA))
	if err != nil {
		return err
	}

	c.ApplicationStart()
	c.SetHostStatus(dualview.Foreground)
	c.Present(drc, driver.ScanTargetDRC)
	c.Present(tv, driver.ScanTargetTV)
	c.ApplicationEnding()
	if fatal != nil {
		return fatal
	}

	scan := d.Scanout(driver.ScanTargetTV)
	if scan == nil {
		return fmt.Errorf("nothing was presented to the TV")
	}
	out, err := fsys.Create(cfg.Out)
	if err != nil {
		return err
	}
	if err := png.Encode(out, scan); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// loadFrame decodes an image and scales it into a freshly allocated color
// buffer of the given size, the way the host would have rendered it.
func loadFrame(d *soft.Driver, fsys afero.Fs, name string, w, h uint32, aa driver.AAMode) (*driver.ColorBuffer, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	frame := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.BiLinear.Scale(frame, frame.Bounds(), img, img.Bounds(), draw.Src, nil)

	cb := &driver.ColorBuffer{}
	d.InitColorBuffer(cb, w, h, gputypes.TextureFormatRGBA8Unorm, aa)
	cb.Image = d.Alloc(cb.ImageSize, cb.Alignment)
	if cb.Image == nil {
		return nil, fmt.Errorf("%s: no memory for %dx%d frame", name, w, h)
	}
	buf, err := pixbuf.FromSurface(&cb.Surface)
	if err != nil {
		return nil, err
	}
	for y := range int(h) {
		for x := range int(w) {
			p := frame.RGBAAt(x, y)
			buf.SetRGBA(x, y, p.R, p.G, p.B, p.A)
		}
	}
	return cb, nil
}

func aaMode(samples int) driver.AAMode {
	switch samples {
	case 2:
		return driver.AAMode2X
	case 4:
		return driver.AAMode4X
	case 8:
		return driver.AAMode8X
	default:
		return driver.AAMode1X
	}
}
