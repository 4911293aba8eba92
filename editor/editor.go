// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package editor implements the interactive layout editor.
//
// The editor is driven by polled controller samples. While inactive it only
// watches for the entry chord. Once active, it owns the controller: every
// sample is reported as consumed so the caller can hide it from the host
// application, and button input moves and resizes the selected screen.
//
//	ZL+ZR+Minus (hold)   enter edit mode
//	Plus                 leave edit mode
//	Minus                select the other screen
//	D-pad (hold)         move the selected screen
//	A / Y (hold)         wider / narrower
//	X / B (hold)         taller / shorter
//	L                    height from width at 16:9
//	R                    width from height at 16:9
//
// The screen that is not selected is dimmed while editing.
package editor

import (
	"sync"

	"github.com/gogpu/dualview/input"
	"github.com/gogpu/dualview/layout"
)

// Button bindings.
const (
	EnterChord   = input.ButtonZL | input.ButtonZR | input.ButtonMinus
	ExitButton   = input.ButtonPlus
	SelectButton = input.ButtonMinus
)

// Defaults.
const (
	DefaultStep                  = 2
	DefaultDimmedOpacity float32 = 0.5
)

// Option configures an Editor.
type Option func(*Editor)

// WithStep sets the number of pixels moved or resized per sample.
func WithStep(step int32) Option {
	return func(e *Editor) {
		if step > 0 {
			e.step = step
		}
	}
}

// WithDimmedOpacity sets the opacity of the unselected screen.
func WithDimmedOpacity(v float32) Option {
	return func(e *Editor) {
		e.dimmed = min(max(v, 0), 1)
	}
}

// Editor mutates a layout.State from controller input.
type Editor struct {
	mu sync.Mutex

	state  *layout.State
	step   int32
	dimmed float32

	active   bool
	selected layout.Screen
}

// New creates an inactive editor over state.
func New(state *layout.State, opts ...Option) *Editor {
	e := &Editor{
		state:  state,
		step:   DefaultStep,
		dimmed: DefaultDimmedOpacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Active reports whether edit mode is on.
func (e *Editor) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Selected returns the screen being edited.
func (e *Editor) Selected() layout.Screen {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Handle processes one controller sample. It returns true when the sample
// belongs to the editor and must not reach the host.
func (e *Editor) Handle(s *input.Status) bool {
	if s == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		// Enter on the sample that completes the chord.
		if s.Hold.Has(EnterChord) && s.Trigger.Any(EnterChord) {
			e.enter()
			return true
		}
		return false
	}

	if s.Trigger.Any(ExitButton) {
		e.reset()
		return true
	}

	if s.Trigger.Any(SelectButton) {
		e.selected = e.selected.Other()
		slogger().Debug("editor: selected screen", "screen", e.selected)
	}

	sel, step := e.selected, e.step
	e.state.Update(func(set *layout.Settings) {
		r := set.Region(sel)
		if s.Hold.Any(input.ButtonLeft) {
			r.X -= step
		}
		if s.Hold.Any(input.ButtonRight) {
			r.X += step
		}
		if s.Hold.Any(input.ButtonUp) {
			r.Y -= step
		}
		if s.Hold.Any(input.ButtonDown) {
			r.Y += step
		}
		if s.Hold.Any(input.ButtonA) {
			r.Width += step
		}
		if s.Hold.Any(input.ButtonY) {
			r.Width -= step
		}
		if s.Hold.Any(input.ButtonX) {
			r.Height += step
		}
		if s.Hold.Any(input.ButtonB) {
			r.Height -= step
		}
		r = r.Clamp()
		if s.Trigger.Any(input.ButtonL) {
			r = r.HeightFromWidth()
		}
		if s.Trigger.Any(input.ButtonR) {
			r = r.WidthFromHeight()
		}
		set.SetRegion(sel, r)
		e.highlight(set)
	})
	return true
}

// Reset leaves edit mode and makes both screens opaque again. It is safe to
// call when inactive.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Editor) reset() {
	wasActive := e.active
	e.active = false
	e.state.Update(func(set *layout.Settings) {
		set.Editing = false
		set.TVOpacity = layout.Opaque
		set.DRCOpacity = layout.Opaque
	})
	if wasActive {
		slogger().Info("editor: leaving edit mode")
	}
}

func (e *Editor) enter() {
	e.active = true
	e.state.Update(func(set *layout.Settings) {
		e.selected = set.Foreground
		e.highlight(set)
	})
	slogger().Info("editor: entering edit mode", "screen", e.selected)
}

// highlight marks set as being edited with the selected screen opaque and
// the other dimmed.
func (e *Editor) highlight(set *layout.Settings) {
	set.Editing = true
	set.Selected = e.selected
	set.SetOpacity(e.selected, layout.Opaque)
	set.SetOpacity(e.selected.Other(), e.dimmed)
}
