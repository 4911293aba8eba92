// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dualview

import (
	"fmt"

	"github.com/gogpu/dualview/driver"
)

// HostStatus reports whether the host application owns the display.
type HostStatus uint32

const (
	// Background means the host is suspended behind a system menu. All
	// calls pass through.
	Background HostStatus = iota
	// Foreground means the host owns the display. Presents are composited.
	Foreground
)

// String implements fmt.Stringer.
func (s HostStatus) String() string {
	switch s {
	case Background:
		return "background"
	case Foreground:
		return "foreground"
	default:
		return fmt.Sprintf("HostStatus(%d)", uint32(s))
	}
}

// hostContext is a non-owning reference to the host's render context. It
// is only trustworthy while the host is in the foreground; leaving the
// foreground invalidates it. last tracks the most recent context forwarded
// in either state.
type hostContext struct {
	ctx   *driver.ContextState
	last  *driver.ContextState
	valid bool
}

func (h *hostContext) set(ctx *driver.ContextState) {
	h.ctx = ctx
	h.last = ctx
	h.valid = ctx != nil
}

// forwarded records a context passed through while in the background.
func (h *hostContext) forwarded(ctx *driver.ContextState) {
	h.last = ctx
}

func (h *hostContext) get() (*driver.ContextState, bool) {
	return h.ctx, h.valid
}

func (h *hostContext) lastForwarded() *driver.ContextState {
	return h.last
}

func (h *hostContext) invalidate() {
	h.valid = false
}

func (h *hostContext) forget() {
	h.ctx = nil
	h.last = nil
	h.valid = false
}
