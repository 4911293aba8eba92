package layout

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestSetField_Bounds(t *testing.T) {
	for _, f := range Fields() {
		t.Run(f.Name, func(t *testing.T) {
			st := NewState(Defaults())

			for _, v := range []int32{f.Bounds.Min, f.Bounds.Max} {
				if err := st.SetField(f.Name, v); err != nil {
					t.Fatalf("SetField(%d) error = %v", v, err)
				}
				if got, _ := st.Field(f.Name); got != v {
					t.Fatalf("Field() = %d, want %d", got, v)
				}
			}

			for _, v := range []int32{f.Bounds.Min - 1, f.Bounds.Max + 1} {
				if err := st.SetField(f.Name, v); !errors.Is(err, ErrOutOfRange) {
					t.Errorf("SetField(%d) error = %v, want ErrOutOfRange", v, err)
				}
				if got, _ := st.Field(f.Name); got != f.Bounds.Max {
					t.Errorf("rejected value changed field to %d", got)
				}
			}
		})
	}
}

func TestSetField_Unknown(t *testing.T) {
	st := NewState(Defaults())
	if err := st.SetField("tv_depth", 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("SetField() error = %v, want ErrUnknownField", err)
	}
	if _, err := st.Field("nope"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Field() error = %v, want ErrUnknownField", err)
	}
}

func TestSetField_PublishesImmediately(t *testing.T) {
	st := NewState(Defaults())
	before := st.Load()

	if err := st.SetField(FieldDRCX, 17); err != nil {
		t.Fatal(err)
	}
	if got := st.Load().DRC.X; got != 17 {
		t.Errorf("Load().DRC.X = %d, want 17", got)
	}
	if before.DRC.X == 17 {
		t.Error("earlier snapshot was mutated")
	}
}

func TestSetForeground(t *testing.T) {
	st := NewState(Defaults())
	if err := st.SetForeground(ScreenDRC); err != nil {
		t.Fatalf("SetForeground(drc) = %v", err)
	}
	if got := st.Load().Foreground; got != ScreenDRC {
		t.Errorf("Foreground = %v, want drc", got)
	}

	for _, bad := range []Screen{2, 7, 255} {
		if err := st.SetForeground(bad); !errors.Is(err, ErrUnknownScreen) {
			t.Errorf("SetForeground(%d) = %v, want ErrUnknownScreen", bad, err)
		}
	}
	if got := st.Load().Foreground; got != ScreenDRC {
		t.Errorf("Foreground after rejected values = %v, want drc", got)
	}
}

func TestValidate_Foreground(t *testing.T) {
	s := Defaults()
	s.Foreground = Screen(7)
	if err := s.Validate(); !errors.Is(err, ErrUnknownScreen) {
		t.Errorf("Validate() = %v, want ErrUnknownScreen", err)
	}
}

func TestAspectSnap(t *testing.T) {
	tests := []struct {
		name string
		in   Region
		want Region
	}{
		{"height from 640", Region{Width: 640, Height: 100}, Region{Width: 640, Height: 360}},
		{"height rounds up", Region{Width: 10, Height: 1}, Region{Width: 10, Height: 6}},
		{"height rounds down", Region{Width: 11, Height: 1}, Region{Width: 11, Height: 6}},
		{"height clamps", Region{Width: 1280, Height: 1}, Region{Width: 1280, Height: 720}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.HeightFromWidth(); got != tt.want {
				t.Errorf("HeightFromWidth() = %+v, want %+v", got, tt.want)
			}
		})
	}

	// round(H*16/9)
	for h, w := range map[int32]int32{360: 640, 100: 178, 10: 18, 720: 1280} {
		if got := (Region{Height: h}).WidthFromHeight().Width; got != w {
			t.Errorf("WidthFromHeight(%d) = %d, want %d", h, got, w)
		}
	}
}

func TestScreen(t *testing.T) {
	if ScreenTV.Other() != ScreenDRC || ScreenDRC.Other() != ScreenTV {
		t.Error("Other() is not an involution")
	}
	s, err := ParseScreen("DRC")
	if err != nil || s != ScreenDRC {
		t.Errorf("ParseScreen(DRC) = %v, %v", s, err)
	}
	if _, err := ParseScreen("gamepad"); !errors.Is(err, ErrUnknownScreen) {
		t.Errorf("ParseScreen(gamepad) error = %v", err)
	}
}

func TestEncodeDecode(t *testing.T) {
	s := Defaults()
	s.DRC = Region{X: 10, Y: 20, Width: 300, Height: 169}
	s.Foreground = ScreenDRC

	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "foreground: drc") {
		t.Errorf("encoded settings missing foreground:\n%s", buf.String())
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.DRC != s.DRC || got.TV != s.TV || got.Foreground != s.Foreground {
		t.Errorf("Decode() = %+v, want %+v", got, s)
	}
	if got.TVOpacity != Opaque || got.DRCOpacity != Opaque {
		t.Error("decoded settings should be fully opaque")
	}
}

func TestDecode_PartialAndInvalid(t *testing.T) {
	got, err := Decode(strings.NewReader("tv:\n  x: 5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got.TV.X != 5 || got.TV.Width != Defaults().TV.Width {
		t.Errorf("partial decode = %+v", got.TV)
	}

	if _, err := Decode(strings.NewReader("drc:\n  width: 5000\n")); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Decode(out of range) error = %v", err)
	}
	if _, err := Decode(strings.NewReader("foreground: sideways\n")); err == nil {
		t.Error("Decode(bad screen) should fail")
	}
	if _, err := Decode(strings.NewReader("")); err != nil {
		t.Errorf("Decode(empty) error = %v", err)
	}
}

func TestState_ConcurrentUpdates(t *testing.T) {
	st := NewState(Defaults())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Update(func(s *Settings) { s.TV.X++ })
			_ = st.Load()
		}()
	}
	wg.Wait()
	if got := st.Load().TV.X; got != Defaults().TV.X+50 {
		t.Errorf("TV.X = %d, want %d", got, Defaults().TV.X+50)
	}
}
