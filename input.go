// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dualview

import (
	"github.com/gogpu/dualview/editor"
	"github.com/gogpu/dualview/input"
)

// InputFilter wraps a controller source. Every read is folded into one
// sample for the layout editor: buttons held in the newest sample plus every
// press and release seen across the read. When the editor claims it, all
// samples of that read are cleared before the caller sees them.
type InputFilter struct {
	src    input.Source
	editor *editor.Editor
}

var _ input.Source = (*InputFilter)(nil)

// InputFilter returns a filter that feeds src through the compositor's
// layout editor.
func (c *Compositor) InputFilter(src input.Source) *InputFilter {
	return &InputFilter{src: src, editor: c.editor}
}

// Read implements input.Source.
func (f *InputFilter) Read(channel int, buf []input.Status) (int, error) {
	n, err := f.src.Read(channel, buf)
	if err != nil || n <= 0 {
		return n, err
	}
	n = min(n, len(buf))

	merged := buf[0]
	for _, s := range buf[1:n] {
		merged.Trigger |= s.Trigger
		merged.Release |= s.Release
	}
	if f.editor.Handle(&merged) {
		for i := range buf[:n] {
			buf[i].ClearButtons()
		}
	}
	return n, nil
}
