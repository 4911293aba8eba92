// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package layout holds the live placement of the two captured screens on
// the composite.
//
// Layout values are written by the configuration surface and by the
// interactive editor, and read by the draw stage. Writers never touch the
// published value: State.Update applies the change to a private copy and
// publishes the result atomically, so a reader always sees a complete
// snapshot and a write is visible to the very next Load.
package layout

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// Errors returned by configuration setters.
var (
	// ErrOutOfRange is returned when a value lies outside its field's bounds.
	ErrOutOfRange = errors.New("layout: value out of range")

	// ErrUnknownField is returned for a field name that does not exist.
	ErrUnknownField = errors.New("layout: unknown field")

	// ErrUnknownScreen is returned for an invalid screen name or value.
	ErrUnknownScreen = errors.New("layout: unknown screen")
)

// Composite space dimensions. Regions are expressed in these pixels
// regardless of the composite buffer's size.
const (
	SpaceWidth  = 1280
	SpaceHeight = 720
)

// Screen selects one of the two captured outputs.
type Screen uint8

const (
	ScreenTV Screen = iota
	ScreenDRC
)

// Valid reports whether s names one of the two screens.
func (s Screen) Valid() bool {
	return s == ScreenTV || s == ScreenDRC
}

// Other returns the opposite screen.
func (s Screen) Other() Screen {
	if s == ScreenTV {
		return ScreenDRC
	}
	return ScreenTV
}

// String implements fmt.Stringer.
func (s Screen) String() string {
	if s == ScreenDRC {
		return "drc"
	}
	return "tv"
}

// ParseScreen parses "tv" or "drc", case-insensitively.
func ParseScreen(name string) (Screen, error) {
	switch strings.ToLower(name) {
	case "tv":
		return ScreenTV, nil
	case "drc":
		return ScreenDRC, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Screen) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Screen) UnmarshalText(b []byte) error {
	v, err := ParseScreen(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Bounds is an inclusive value range.
type Bounds struct {
	Min, Max int32
}

// Contains reports whether v lies in [Min, Max].
func (b Bounds) Contains(v int32) bool {
	return v >= b.Min && v <= b.Max
}

// Clamp limits v to [Min, Max].
func (b Bounds) Clamp(v int32) int32 {
	return min(max(v, b.Min), b.Max)
}

// Field bounds for every region.
var (
	WidthBounds  = Bounds{Min: 1, Max: SpaceWidth}
	HeightBounds = Bounds{Min: 1, Max: SpaceHeight}
	XBounds      = Bounds{Min: 0, Max: SpaceWidth}
	YBounds      = Bounds{Min: 0, Max: SpaceHeight}
)

// Region is a screen's placement in composite space.
type Region struct {
	X      int32 `yaml:"x"`
	Y      int32 `yaml:"y"`
	Width  int32 `yaml:"width"`
	Height int32 `yaml:"height"`
}

// Clamp returns r with every field limited to its bounds.
func (r Region) Clamp() Region {
	return Region{
		X:      XBounds.Clamp(r.X),
		Y:      YBounds.Clamp(r.Y),
		Width:  WidthBounds.Clamp(r.Width),
		Height: HeightBounds.Clamp(r.Height),
	}
}

// HeightFromWidth returns r with its height snapped to 16:9 of its width.
func (r Region) HeightFromWidth() Region {
	r.Height = HeightBounds.Clamp((r.Width*9 + 8) / 16)
	return r
}

// WidthFromHeight returns r with its width snapped to 16:9 of its height.
func (r Region) WidthFromHeight() Region {
	r.Width = WidthBounds.Clamp((r.Height*16 + 4) / 9)
	return r
}

// Opaque is the opacity of a screen that is not dimmed.
const Opaque float32 = 1

// Settings is a complete layout snapshot.
type Settings struct {
	TV         Region `yaml:"tv"`
	DRC        Region `yaml:"drc"`
	Foreground Screen `yaml:"foreground"`

	TVOpacity  float32 `yaml:"-"`
	DRCOpacity float32 `yaml:"-"`

	Editing  bool   `yaml:"-"`
	Selected Screen `yaml:"-"`
}

// Defaults returns the side-by-side layout: DRC on the left, TV on the
// right, both 640x360 and vertically centred.
func Defaults() Settings {
	return Settings{
		DRC:        Region{X: 0, Y: 180, Width: 640, Height: 360},
		TV:         Region{X: 640, Y: 180, Width: 640, Height: 360},
		Foreground: ScreenTV,
		TVOpacity:  Opaque,
		DRCOpacity: Opaque,
		Selected:   ScreenTV,
	}
}

// Region returns the placement of screen s.
func (s *Settings) Region(screen Screen) Region {
	if screen == ScreenDRC {
		return s.DRC
	}
	return s.TV
}

// SetRegion replaces the placement of screen s.
func (s *Settings) SetRegion(screen Screen, r Region) {
	if screen == ScreenDRC {
		s.DRC = r
	} else {
		s.TV = r
	}
}

// Opacity returns the opacity of screen s.
func (s *Settings) Opacity(screen Screen) float32 {
	if screen == ScreenDRC {
		return s.DRCOpacity
	}
	return s.TVOpacity
}

// SetOpacity sets the opacity of screen s.
func (s *Settings) SetOpacity(screen Screen, v float32) {
	if screen == ScreenDRC {
		s.DRCOpacity = v
	} else {
		s.TVOpacity = v
	}
}

// Validate reports the first field outside its bounds, or an invalid
// foreground screen.
func (s *Settings) Validate() error {
	if !s.Foreground.Valid() {
		return fmt.Errorf("%w: foreground = %d", ErrUnknownScreen, uint8(s.Foreground))
	}
	for _, f := range fields {
		if v := f.get(s); !f.Bounds.Contains(v) {
			return fmt.Errorf("%w: %s = %d not in [%d, %d]", ErrOutOfRange, f.Name, v, f.Bounds.Min, f.Bounds.Max)
		}
	}
	return nil
}

// State owns the live layout.
type State struct {
	mu        sync.Mutex
	published atomic.Pointer[Settings]
}

// NewState creates a State publishing initial.
func NewState(initial Settings) *State {
	st := &State{}
	st.published.Store(&initial)
	return st
}

// Load returns the published snapshot.
func (st *State) Load() Settings {
	return *st.published.Load()
}

// Update applies fn to a copy of the published settings and publishes the
// result. Updates are serialized.
func (st *State) Update(fn func(*Settings)) Settings {
	st.mu.Lock()
	defer st.mu.Unlock()

	next := *st.published.Load()
	fn(&next)
	st.published.Store(&next)
	return next
}
