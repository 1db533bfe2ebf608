package aat

import (
	"testing"

	"github.com/maxmelander/ttf-parser/parser"
)

func u16be(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

func TestParseLookupFormat0(t *testing.T) {
	data := append(u16be(0), u16be(100)...)
	data = append(data, u16be(200)...)
	data = append(data, u16be(300)...)
	lk, ok := ParseLookup(3, data)
	if !ok {
		t.Fatalf("ParseLookup(format 0): got ok=false")
	}
	if v, ok := lk.Value(1); !ok || v != 200 {
		t.Fatalf("Value(1): got (%d, %v), want (200, true)", v, ok)
	}
	if _, ok := lk.Value(5); ok {
		t.Fatalf("Value(5) out of range: got ok=true, want false")
	}
}

func TestParseLookupFormat6(t *testing.T) {
	// header: format(2) + binSearchHeader(10: unitSize,nUnits,searchRange,
	// entrySelector,rangeShift) + segments(4 bytes each: glyph,value) +
	// sentinel {0xFFFF, 0}.
	var data []byte
	data = append(data, u16be(6)...)
	data = append(data, u16be(4)...)  // unitSize
	data = append(data, u16be(3)...)  // numUnits (2 real + 1 sentinel)
	data = append(data, u16be(0)...)  // searchRange
	data = append(data, u16be(0)...)  // entrySelector
	data = append(data, u16be(0)...)  // rangeShift
	data = append(data, u16be(5)...)  // glyph 5
	data = append(data, u16be(50)...) // value
	data = append(data, u16be(9)...)  // glyph 9
	data = append(data, u16be(90)...) // value
	data = append(data, u16be(0xFFFF)...)
	data = append(data, u16be(0)...)

	lk, ok := ParseLookup(20, data)
	if !ok {
		t.Fatalf("ParseLookup(format 6): got ok=false")
	}
	if v, ok := lk.Value(9); !ok || v != 90 {
		t.Fatalf("Value(9): got (%d, %v), want (90, true)", v, ok)
	}
	if _, ok := lk.Value(7); ok {
		t.Fatalf("Value(7) (absent glyph): got ok=true, want false")
	}
	// The sentinel itself must never be reachable as a real mapping.
	if _, ok := lk.Value(0xFFFF); ok {
		t.Fatalf("Value(0xffff) (sentinel glyph): got ok=true, want false")
	}
}

func TestParseLookupFormat2Range(t *testing.T) {
	// format 2: {last, first, value} segments, 6 bytes each.
	var data []byte
	data = append(data, u16be(2)...)
	data = append(data, u16be(6)...) // unitSize
	data = append(data, u16be(2)...) // numUnits (1 real + sentinel)
	data = append(data, u16be(0)...)
	data = append(data, u16be(0)...)
	data = append(data, u16be(0)...)
	data = append(data, u16be(20)...) // last
	data = append(data, u16be(10)...) // first
	data = append(data, u16be(7)...)  // value
	data = append(data, u16be(0xFFFF)...)
	data = append(data, u16be(0xFFFF)...)
	data = append(data, u16be(0)...)

	lk, ok := ParseLookup(30, data)
	if !ok {
		t.Fatalf("ParseLookup(format 2): got ok=false")
	}
	for _, g := range []uint16{10, 15, 20} {
		if v, ok := lk.Value(parser.GlyphID(g)); !ok || v != 7 {
			t.Fatalf("Value(%d): got (%d, %v), want (7, true)", g, v, ok)
		}
	}
	if _, ok := lk.Value(21); ok {
		t.Fatalf("Value(21) outside the range: got ok=true, want false")
	}
}

func TestParseLookupFormat10ValueSize8Unsupported(t *testing.T) {
	var data []byte
	data = append(data, u16be(10)...)
	data = append(data, u16be(8)...) // valueSize 8: recognised, not implemented
	data = append(data, u16be(0)...) // firstGlyph
	data = append(data, u16be(1)...) // glyphCount
	data = append(data, make([]byte, 8)...)

	if _, ok := ParseLookup(10, data); ok {
		t.Fatalf("ParseLookup(format 10, valueSize 8): got ok=true, want false")
	}
}

func TestParseLookupFormat8(t *testing.T) {
	var data []byte
	data = append(data, u16be(8)...)
	data = append(data, u16be(100)...) // firstGlyph
	data = append(data, u16be(2)...)   // glyphCount
	data = append(data, u16be(11)...)
	data = append(data, u16be(22)...)

	lk, ok := ParseLookup(200, data)
	if !ok {
		t.Fatalf("ParseLookup(format 8): got ok=false")
	}
	if v, ok := lk.Value(101); !ok || v != 22 {
		t.Fatalf("Value(101): got (%d, %v), want (22, true)", v, ok)
	}
	if _, ok := lk.Value(99); ok {
		t.Fatalf("Value(99) below firstGlyph: got ok=true, want false")
	}
}

func TestParseLookupUnknownFormat(t *testing.T) {
	if _, ok := ParseLookup(10, u16be(99)); ok {
		t.Fatalf("ParseLookup with an unrecognised format: got ok=true, want false")
	}
}
