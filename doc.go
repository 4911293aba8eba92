// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dualview composites the handheld (DRC) and TV outputs of a
// two-screen console onto the TV.
//
// # Overview
//
// dualview sits between a host application and the console's display
// driver. The host keeps calling the same entry points it always did; a
// [Compositor] intercepts them:
//
//   - the DRC present is captured into a texture and forwarded unchanged;
//   - the TV present is captured into a second texture, both textures are
//     drawn into a private composite buffer according to the live layout,
//     and the composite is presented in place of the TV buffer;
//   - context switches made by the host are remembered so the host's
//     context can be restored after the composite is drawn.
//
// Interception only happens while the host owns the display
// ([Foreground]). In [Background] every call passes straight through.
//
// # Quick Start
//
//	drv := soft.New()
//	c := dualview.New(drv)
//	c.SetHostStatus(dualview.Foreground)
//
//	// host frame loop
//	c.SetContextState(hostCtx)
//	c.Present(drcBuffer, driver.ScanTargetDRC)
//	c.Present(tvBuffer, driver.ScanTargetTV)
//
// # Layout editing
//
// [Compositor.InputFilter] wraps the controller source. Holding ZL+ZR+Minus
// enters edit mode; see package editor for the bindings. Input consumed by
// the editor is cleared before the host sees it.
//
// # Errors
//
// Nothing is reported to the host. A composite buffer or capture texture
// that cannot be allocated is fatal (see [WithFatalHandler]); a failed
// temporary allocation drops one frame's capture; a missing overlay is
// logged and skipped.
package dualview
