// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dualview

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/dualview/editor"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with intercepted calls.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for dualview and its sub-packages.
// By default, dualview produces no log output.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by dualview:
//   - [slog.LevelDebug]: per-frame detail (allocations, resolves)
//   - [slog.LevelInfo]: lifecycle events (foreground changes, edit mode)
//   - [slog.LevelWarn]: dropped frames, missing overlay, stale host context
//   - [slog.LevelError]: fatal allocation failures
//
// A driver receives the logger that is current when it is passed to [New].
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	editor.SetLogger(l)
}

// Logger returns the current logger used by dualview.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by drivers that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a driver if it implements
// loggerSetter.
func propagateLogger(d any, l *slog.Logger) {
	if ls, ok := d.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
