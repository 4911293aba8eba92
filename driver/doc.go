// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package driver describes the console display driver that dualview sits in
// front of.
//
// The driver is treated as an opaque boundary. It owns the semantics of
// surfaces, render contexts, copies, resolves and draws; dualview only
// orchestrates calls into it. The types here mirror the shape of a fixed
// two-output display pipeline: a handheld ("DRC") output and a TV output,
// each fed by a color buffer that the host presents once per frame.
//
// A surface's pixel storage is a plain byte slice. A nil Image means the
// storage has not been allocated (or has been freed); allocation and release
// go through [Memory], never through make or the garbage collector directly,
// so that allocation failures and alignment are under the driver's control.
//
// The pure-Go implementation in driver/soft is the reference driver used by
// tests and by the preview harness.
package driver
