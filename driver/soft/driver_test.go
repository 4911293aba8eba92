package soft

import (
	"image"
	"testing"
	"unsafe"

	"github.com/gogpu/dualview/driver"
	"github.com/gogpu/dualview/internal/pixbuf"
	"github.com/gogpu/gputypes"
)

func allocColorBuffer(t *testing.T, d *Driver, w, h uint32, aa driver.AAMode) *driver.ColorBuffer {
	t.Helper()
	cb := &driver.ColorBuffer{}
	d.InitColorBuffer(cb, w, h, gputypes.TextureFormatRGBA8Unorm, aa)
	cb.Image = d.Alloc(cb.ImageSize, cb.Alignment)
	if cb.Image == nil {
		t.Fatal("color buffer allocation failed")
	}
	return cb
}

func allocTexture(t *testing.T, d *Driver, w, h uint32) *driver.Texture {
	t.Helper()
	tex := &driver.Texture{}
	d.InitTexture(tex, w, h, gputypes.TextureFormatRGBA8Unorm, driver.TileModeLinearAligned)
	tex.Image = d.Alloc(tex.ImageSize, tex.Alignment)
	if tex.Image == nil {
		t.Fatal("texture allocation failed")
	}
	return tex
}

func view(t *testing.T, s *driver.Surface) *pixbuf.Buf {
	t.Helper()
	b, err := pixbuf.FromSurface(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestAlloc_Alignment(t *testing.T) {
	d := New()
	for _, align := range []uint32{1, 64, 256, 2048} {
		buf := d.Alloc(100, align)
		if len(buf) != 100 {
			t.Fatalf("len = %d, want 100", len(buf))
		}
		if addr := uintptr(unsafe.Pointer(&buf[0])); addr%uintptr(align) != 0 {
			t.Errorf("Alloc(100, %d) returned address %#x", align, addr)
		}
	}
	if got := d.LiveAllocs(); got != 4 {
		t.Errorf("LiveAllocs() = %d, want 4", got)
	}
}

func TestAlloc_HeapLimit(t *testing.T) {
	d := New(WithHeapLimit(1000))
	a := d.Alloc(600, 4)
	if a == nil {
		t.Fatal("first allocation should succeed")
	}
	if b := d.Alloc(600, 4); b != nil {
		t.Fatal("allocation over the heap limit should fail")
	}
	d.Free(a)
	if b := d.Alloc(600, 4); b == nil {
		t.Fatal("allocation should succeed after free")
	}
	s := d.Stats()
	if s.Allocs != 2 || s.FailedAllocs != 1 || s.Frees != 1 || s.HeapInUse != 600 {
		t.Errorf("stats = %+v", s)
	}
}

func TestAlloc_Injection(t *testing.T) {
	d := New()
	d.FailNextAllocs(2)
	if d.Alloc(16, 4) != nil || d.Alloc(16, 4) != nil {
		t.Fatal("injected failures should return nil")
	}
	if d.Alloc(16, 4) == nil {
		t.Fatal("third allocation should succeed")
	}
	if d.Alloc(0, 4) != nil {
		t.Fatal("zero-size allocation should fail")
	}
}

func TestFree_Unknown(t *testing.T) {
	d := New()
	d.Free(nil)
	d.Free(make([]byte, 8))
	if s := d.Stats(); s.Frees != 0 {
		t.Errorf("Frees = %d, want 0", s.Frees)
	}
}

func TestCalcSurfaceSizeAndAlignment(t *testing.T) {
	d := New()
	tests := []struct {
		name      string
		w, h      uint32
		aa        driver.AAMode
		tile      driver.TileMode
		pitch     uint32
		size      uint32
		alignment uint32
	}{
		{"tv", 1280, 720, driver.AAMode1X, driver.TileModeLinearAligned, 1280, 1280 * 720 * 4, linearAlignment},
		{"drc", 854, 480, driver.AAMode1X, driver.TileModeLinearAligned, 896, 896 * 480 * 4, linearAlignment},
		{"tv 4x", 1280, 720, driver.AAMode4X, driver.TileModeDefault, 1280, 1280 * 720 * 16, defaultAlignment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := driver.Surface{Width: tt.w, Height: tt.h, AA: tt.aa, TileMode: tt.tile, Format: gputypes.TextureFormatRGBA8Unorm}
			d.CalcSurfaceSizeAndAlignment(&s)
			if s.Pitch != tt.pitch || s.ImageSize != tt.size || s.Alignment != tt.alignment {
				t.Errorf("got pitch=%d size=%d align=%d", s.Pitch, s.ImageSize, s.Alignment)
			}
		})
	}
}

func TestCopySurface(t *testing.T) {
	d := New()
	src := allocColorBuffer(t, d, 854, 480, driver.AAMode1X)
	dst := allocTexture(t, d, 854, 480)

	sb := view(t, &src.Surface)
	for y := 0; y < 480; y += 7 {
		for x := 0; x < 854; x += 5 {
			sb.SetRGBA(x, y, uint8(x), uint8(y), uint8(x^y), 255)
		}
	}
	d.CopySurface(&src.Surface, 0, 0, &dst.Surface, 0, 0)

	db := view(t, &dst.Surface)
	for y := 0; y < 480; y++ {
		if string(db.RowBytes(y)) != string(sb.RowBytes(y)) {
			t.Fatalf("row %d differs", y)
		}
	}
	if s := d.Stats(); s.Copies != 1 {
		t.Errorf("Copies = %d, want 1", s.Copies)
	}
}

func TestResolveAAColorBuffer(t *testing.T) {
	d := New()
	src := allocColorBuffer(t, d, 16, 8, driver.AAMode4X)
	view(t, &src.Surface).Fill(200, 100, 50, 255)

	tmp := src.Surface
	tmp.AA = driver.AAMode1X
	tmp.Image = nil
	d.CalcSurfaceSizeAndAlignment(&tmp)
	tmp.Image = d.Alloc(tmp.ImageSize, tmp.Alignment)

	d.ResolveAAColorBuffer(src, &tmp, 0, 0)
	if r, g, b, a := view(t, &tmp).GetRGBA(15, 7); r != 200 || g != 100 || b != 50 || a != 255 {
		t.Errorf("resolved pixel = (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestWithWorkers_MatchesInline(t *testing.T) {
	resolve := func(d *Driver) *pixbuf.Buf {
		src := allocColorBuffer(t, d, 1280, 720, driver.AAMode4X)
		sb := view(t, &src.Surface)
		for y := range 720 {
			for x := range 1280 {
				sb.SetRGBA(x, y, uint8(x), uint8(y), uint8(x+y), 255)
			}
		}
		dst := allocTexture(t, d, 1280, 720)
		d.ResolveAAColorBuffer(src, &dst.Surface, 0, 0)
		return view(t, &dst.Surface)
	}

	inline := resolve(New())
	d := New(WithWorkers(4))
	defer d.Close()
	banded := resolve(d)

	for y := range 720 {
		for x := range 1280 {
			r1, g1, b1, a1 := inline.GetRGBA(x, y)
			r2, g2, b2, a2 := banded.GetRGBA(x, y)
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestClearColor_UnbindsContext(t *testing.T) {
	d := New()
	cb := allocColorBuffer(t, d, 8, 8, driver.AAMode1X)
	ctx := &driver.ContextState{}
	d.SetupContextState(ctx)
	d.SetContextState(ctx)

	d.ClearColor(cb, gputypes.Color{R: 1, G: 0, B: 0, A: 1})
	if d.CurrentContext() != nil {
		t.Error("ClearColor should leave no context bound")
	}
	if r, g, _, a := view(t, &cb.Surface).GetRGBA(3, 3); r != 255 || g != 0 || a != 255 {
		t.Errorf("cleared pixel = (%d,%d,a=%d)", r, g, a)
	}
}

func bindTarget(d *Driver, cb *driver.ColorBuffer) *driver.ContextState {
	ctx := &driver.ContextState{}
	d.SetupContextState(ctx)
	d.SetContextState(ctx)
	d.SetColorBuffer(cb, driver.RenderTarget0)
	d.SetViewport(driver.Viewport{Width: float32(cb.Width), Height: float32(cb.Height), Far: 1})
	d.SetScissor(driver.Scissor{Width: cb.Width, Height: cb.Height})
	return ctx
}

func TestDrawQuad_Placement(t *testing.T) {
	d := New()
	cb := allocColorBuffer(t, d, 1280, 720, driver.AAMode1X)
	view(t, &cb.Surface).Fill(0, 0, 0, 255)
	tex := allocTexture(t, d, 4, 4)
	view(t, &tex.Surface).Fill(255, 0, 0, 255)
	bindTarget(d, cb)

	// Top-left quadrant: x=0, y=0, w=640, h=360.
	d.DrawQuad(driver.Quad{
		Texture: tex,
		Offset:  [2]float32{-0.5, 0.5},
		Scale:   [2]float32{0.5, 0.5},
		Alpha:   1,
	})

	draws := d.Draws()
	if len(draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(draws))
	}
	if want := image.Rect(0, 0, 640, 360); draws[0].Rect != want {
		t.Errorf("rect = %v, want %v", draws[0].Rect, want)
	}
	b := view(t, &cb.Surface)
	if r, _, _, _ := b.GetRGBA(320, 180); r != 255 {
		t.Errorf("inside pixel red = %d, want 255", r)
	}
	if r, _, _, _ := b.GetRGBA(700, 500); r != 0 {
		t.Errorf("outside pixel red = %d, want 0", r)
	}
}

func TestDrawQuad_Alpha(t *testing.T) {
	d := New()
	cb := allocColorBuffer(t, d, 64, 64, driver.AAMode1X)
	view(t, &cb.Surface).Fill(0, 0, 0, 255)
	tex := allocTexture(t, d, 2, 2)
	view(t, &tex.Surface).Fill(255, 255, 255, 255)
	bindTarget(d, cb)

	d.DrawQuad(driver.Quad{Texture: tex, Scale: [2]float32{1, 1}, Alpha: 0.5})

	r, _, _, _ := view(t, &cb.Surface).GetRGBA(32, 32)
	if r < 125 || r > 130 {
		t.Errorf("half-alpha white over black = %d, want ~128", r)
	}
}

func TestDrawQuad_Scissor(t *testing.T) {
	d := New()
	cb := allocColorBuffer(t, d, 64, 64, driver.AAMode1X)
	tex := allocTexture(t, d, 2, 2)
	view(t, &tex.Surface).Fill(255, 255, 255, 255)
	bindTarget(d, cb)
	d.SetScissor(driver.Scissor{Width: 32, Height: 64})

	d.DrawQuad(driver.Quad{Texture: tex, Scale: [2]float32{1, 1}, Alpha: 1})

	b := view(t, &cb.Surface)
	if r, _, _, _ := b.GetRGBA(10, 10); r != 255 {
		t.Errorf("pixel inside scissor = %d, want 255", r)
	}
	if r, _, _, _ := b.GetRGBA(50, 10); r != 0 {
		t.Errorf("pixel outside scissor = %d, want 0", r)
	}
}

func TestDrawQuad_Dropped(t *testing.T) {
	d := New()
	cb := allocColorBuffer(t, d, 8, 8, driver.AAMode1X)
	tex := allocTexture(t, d, 2, 2)

	// No context bound.
	d.DrawQuad(driver.Quad{Texture: tex, Scale: [2]float32{1, 1}, Alpha: 1})

	// Context bound, texture unallocated.
	bindTarget(d, cb)
	d.DrawQuad(driver.Quad{Texture: &driver.Texture{}, Scale: [2]float32{1, 1}, Alpha: 1})
	d.DrawQuad(driver.Quad{Scale: [2]float32{1, 1}, Alpha: 1})

	s := d.Stats()
	if s.Draws != 0 || s.DroppedDraws != 3 {
		t.Errorf("Draws = %d, DroppedDraws = %d, want 0, 3", s.Draws, s.DroppedDraws)
	}
}

func TestPresent_Scanout(t *testing.T) {
	d := New()
	cb := allocColorBuffer(t, d, 854, 480, driver.AAMode1X)
	view(t, &cb.Surface).Fill(9, 8, 7, 255)

	d.Present(cb, driver.ScanTargetDRC)
	d.Present(nil, driver.ScanTargetTV)

	scan := d.Scanout(driver.ScanTargetDRC)
	if scan == nil || scan.Bounds() != image.Rect(0, 0, driver.DRCWidth, driver.DRCHeight) {
		t.Fatalf("scanout = %v", scan)
	}
	if c := scan.RGBAAt(853, 479); c.R != 9 || c.G != 8 || c.B != 7 {
		t.Errorf("scanout pixel = %v", c)
	}
	if d.LastPresented(driver.ScanTargetDRC) != cb {
		t.Error("LastPresented(DRC) mismatch")
	}
	s := d.Stats()
	if s.Presents[driver.ScanTargetDRC] != 1 || s.Presents[driver.ScanTargetTV] != 1 {
		t.Errorf("presents = %v", s.Presents)
	}
}
