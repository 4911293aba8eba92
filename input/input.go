// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package input models the polled controller read of the handheld
// controller.
package input

import "errors"

// Buttons is a bitmask of controller buttons.
type Buttons uint32

// Controller buttons.
const (
	ButtonA Buttons = 1 << iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeft
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonL
	ButtonR
	ButtonZL
	ButtonZR
	ButtonPlus
	ButtonMinus
	ButtonHome
	ButtonStickL
	ButtonStickR
	ButtonTV
)

// Has reports whether every button in mask is set.
func (b Buttons) Has(mask Buttons) bool {
	return b&mask == mask
}

// Any reports whether at least one button in mask is set.
func (b Buttons) Any(mask Buttons) bool {
	return b&mask != 0
}

// Status is one polled sample of controller state.
type Status struct {
	// Hold is the set of buttons currently down.
	Hold Buttons
	// Trigger is the set of buttons pressed since the previous sample.
	Trigger Buttons
	// Release is the set of buttons released since the previous sample.
	Release Buttons
}

// ClearButtons removes all button state from s.
func (s *Status) ClearButtons() {
	s.Hold, s.Trigger, s.Release = 0, 0, 0
}

// ErrNoController is returned by a Source when the channel has no
// controller attached.
var ErrNoController = errors.New("input: no controller on channel")

// Source reads controller samples. Read fills buf with up to len(buf)
// samples, newest first, and returns how many were written.
type Source interface {
	Read(channel int, buf []Status) (int, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(channel int, buf []Status) (int, error)

// Read implements Source.
func (f SourceFunc) Read(channel int, buf []Status) (int, error) {
	return f(channel, buf)
}

// Tracker derives trigger and release sets from successive hold masks, for
// sources that only report which buttons are down.
type Tracker struct {
	prev Buttons
}

// Next returns the status for hold given the previous sample.
func (t *Tracker) Next(hold Buttons) Status {
	s := Status{
		Hold:    hold,
		Trigger: hold &^ t.prev,
		Release: t.prev &^ hold,
	}
	t.prev = hold
	return s
}
