// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dualview

import (
	"fmt"
	"os"

	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/dualview/editor"
	"github.com/gogpu/dualview/layout"
	"github.com/gogpu/dualview/resources"
	"github.com/gogpu/gputypes"
)

// Option configures a Compositor during creation.
//
// Example:
//
//	st := layout.NewState(layout.Defaults())
//	c := dualview.New(drv, dualview.WithLayout(st), dualview.WithOverlay(""))
type Option func(*options)

type options struct {
	sink        driver.PresentSink
	layout      *layout.State
	resources   *resources.Table
	overlayName string
	fatal       func(error)
	clearColor  gputypes.Color
	editorOpts  []editor.Option
}

func defaultOptions() options {
	return options{
		overlayName: resources.OverlayName,
		fatal:       exitFatal,
		clearColor:  gputypes.Color{R: 0, G: 0, B: 0, A: 1},
	}
}

// exitFatal terminates the process. A display pipeline without its
// buffers cannot present anything meaningful.
func exitFatal(err error) {
	Logger().Error("fatal", "error", err)
	fmt.Fprintf(os.Stderr, "dualview: %v\n", err)
	os.Exit(1)
}

// WithPresentSink sets the sink that receives forwarded presents.
// It defaults to the driver itself.
func WithPresentSink(s driver.PresentSink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithLayout shares an existing layout state, typically one also bound to
// a settings UI. A state with layout.Defaults is created otherwise.
func WithLayout(st *layout.State) Option {
	return func(o *options) {
		o.layout = st
	}
}

// WithResources sets the resource table the overlay is read from.
// It defaults to resources.Default().
func WithResources(t *resources.Table) Option {
	return func(o *options) {
		o.resources = t
	}
}

// WithOverlay names the overlay resource. An empty name disables the
// overlay.
func WithOverlay(name string) Option {
	return func(o *options) {
		o.overlayName = name
	}
}

// WithFatalHandler replaces the handler for unrecoverable allocation
// failures. The default logs and exits the process. If the handler
// returns, the compositor stays usable and retries on the next present.
func WithFatalHandler(fn func(error)) Option {
	return func(o *options) {
		if fn != nil {
			o.fatal = fn
		}
	}
}

// WithClearColor sets the composite background color.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithEditorOptions configures the layout editor.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(o *options) {
		o.editorOpts = append(o.editorOpts, opts...)
	}
}
