package sfnt

import "testing"

func TestRound(t *testing.T) {
	cases := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{1.5, 2},
		{-0.4, 0},
		{-0.5, -1},
		{-1.5, -2},
	}
	for _, c := range cases {
		if got := round(c.in); got != c.want {
			t.Errorf("round(%v): got %d, want %d", c.in, got, c.want)
		}
	}
}

func TestAscenderFallsBackToHhea(t *testing.T) {
	data := buildFont(minimalFontTables(1000, 3))
	f, err := FromSlice(data, 0)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if got, want := f.Ascender(), int16(800); got != want {
		t.Fatalf("Ascender (no OS/2): got %d, want %d", got, want)
	}
	if got, want := f.Descender(), int16(-200); got != want {
		t.Fatalf("Descender (no OS/2): got %d, want %d", got, want)
	}
	if got, want := f.LineGap(), int16(90); got != want {
		t.Fatalf("LineGap (no OS/2): got %d, want %d", got, want)
	}
	if got, want := f.Height(), int16(1000); got != want {
		t.Fatalf("Height: got %d, want %d", got, want)
	}
	if got, want := f.LineHeight(), int16(1090); got != want {
		t.Fatalf("LineHeight: got %d, want %d", got, want)
	}
}

func TestWindowsMetricsFallBackWithoutOS2(t *testing.T) {
	data := buildFont(minimalFontTables(1000, 3))
	f, err := FromSlice(data, 0)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if got, want := f.WindowsAscent(), f.Ascender(); got != want {
		t.Fatalf("WindowsAscent without OS/2: got %d, want Ascender() == %d", got, want)
	}
	if got, want := f.WindowsDescent(), -f.Descender(); got != want {
		t.Fatalf("WindowsDescent without OS/2: got %d, want -Descender() == %d", got, want)
	}
}

func TestCapitalHeightWithoutOS2(t *testing.T) {
	data := buildFont(minimalFontTables(1000, 3))
	f, err := FromSlice(data, 0)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if _, ok := f.CapitalHeight(); ok {
		t.Fatalf("CapitalHeight without OS/2: got ok=true, want false")
	}
	if _, ok := f.SubscriptMetrics(); ok {
		t.Fatalf("SubscriptMetrics without OS/2: got ok=true, want false")
	}
}

func TestHorizontalAdvanceWithoutHmtx(t *testing.T) {
	data := buildFont(minimalFontTables(1000, 3))
	f, err := FromSlice(data, 0)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if _, ok := f.HorizontalAdvance(0); ok {
		t.Fatalf("HorizontalAdvance without hmtx: got ok=true, want false")
	}
}

func TestGlyphBoundingBoxWithoutOutlineSource(t *testing.T) {
	data := buildFont(minimalFontTables(1000, 3))
	f, err := FromSlice(data, 0)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if _, ok := f.GlyphBoundingBox(0); ok {
		t.Fatalf("GlyphBoundingBox without glyf/CFF: got ok=true, want false")
	}
}

func TestGlyphIndexWithoutCmap(t *testing.T) {
	data := buildFont(minimalFontTables(1000, 3))
	f, err := FromSlice(data, 0)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if _, ok := f.GlyphIndex('A'); ok {
		t.Fatalf("GlyphIndex without cmap: got ok=true, want false")
	}
}
