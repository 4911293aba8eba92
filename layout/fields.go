// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layout

import "fmt"

// Field describes one numeric configuration field.
type Field struct {
	Name   string
	Bounds Bounds

	get func(*Settings) int32
	set func(*Settings, int32)
}

// Configuration field names.
const (
	FieldTVX        = "tv_x"
	FieldTVY        = "tv_y"
	FieldTVWidth    = "tv_width"
	FieldTVHeight   = "tv_height"
	FieldDRCX       = "drc_x"
	FieldDRCY       = "drc_y"
	FieldDRCWidth   = "drc_width"
	FieldDRCHeight  = "drc_height"
	FieldForeground = "foreground"
)

var fields = []Field{
	{FieldTVX, XBounds, func(s *Settings) int32 { return s.TV.X }, func(s *Settings, v int32) { s.TV.X = v }},
	{FieldTVY, YBounds, func(s *Settings) int32 { return s.TV.Y }, func(s *Settings, v int32) { s.TV.Y = v }},
	{FieldTVWidth, WidthBounds, func(s *Settings) int32 { return s.TV.Width }, func(s *Settings, v int32) { s.TV.Width = v }},
	{FieldTVHeight, HeightBounds, func(s *Settings) int32 { return s.TV.Height }, func(s *Settings, v int32) { s.TV.Height = v }},
	{FieldDRCX, XBounds, func(s *Settings) int32 { return s.DRC.X }, func(s *Settings, v int32) { s.DRC.X = v }},
	{FieldDRCY, YBounds, func(s *Settings) int32 { return s.DRC.Y }, func(s *Settings, v int32) { s.DRC.Y = v }},
	{FieldDRCWidth, WidthBounds, func(s *Settings) int32 { return s.DRC.Width }, func(s *Settings, v int32) { s.DRC.Width = v }},
	{FieldDRCHeight, HeightBounds, func(s *Settings) int32 { return s.DRC.Height }, func(s *Settings, v int32) { s.DRC.Height = v }},
}

// Fields lists the numeric configuration fields with their bounds.
func Fields() []Field {
	return append([]Field(nil), fields...)
}

func lookup(name string) (*Field, bool) {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i], true
		}
	}
	return nil, false
}

// Field returns the current value of a numeric field.
func (st *State) Field(name string) (int32, error) {
	f, ok := lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	s := st.Load()
	return f.get(&s), nil
}

// SetField stores v in the named field and publishes it. Values outside the
// field's bounds are rejected and the stored value is left unchanged.
func (st *State) SetField(name string, v int32) error {
	f, ok := lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if !f.Bounds.Contains(v) {
		return fmt.Errorf("%w: %s = %d not in [%d, %d]", ErrOutOfRange, name, v, f.Bounds.Min, f.Bounds.Max)
	}
	st.Update(func(s *Settings) { f.set(s, v) })
	return nil
}

// SetForeground selects which screen is drawn on top. Values other than
// ScreenTV and ScreenDRC are rejected.
func (st *State) SetForeground(screen Screen) error {
	if !screen.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownScreen, uint8(screen))
	}
	st.Update(func(s *Settings) { s.Foreground = screen })
	return nil
}
