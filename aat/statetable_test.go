package aat

import (
	"bytes"
	"testing"

	"github.com/maxmelander/ttf-parser/parser"
)

// buildStateTable assembles a minimal ExtendedStateTable subtable with
// numberOfClasses=4, a format-0 lookup over 3 glyphs, two states and two
// entries, entrySize 4 (no owner-specific Extra payload).
func buildStateTable(t *testing.T) []byte {
	t.Helper()

	// lookup: format 0, 3 glyphs -> classes [3, 3, 1].
	lookup := append(u16be(0), u16be(3)...)
	lookup = append(lookup, u16be(3)...)
	lookup = append(lookup, u16be(1)...)

	// stateArray: 2 states x 4 classes, u16 entry indices.
	// state 0: class 3 -> entry 1, everything else -> entry 0.
	// state 1: everything -> entry 0.
	stateArray := append(u16be(0), u16be(0)...)
	stateArray = append(stateArray, u16be(0)...)
	stateArray = append(stateArray, u16be(1)...)
	stateArray = append(stateArray, u16be(0)...)
	stateArray = append(stateArray, u16be(0)...)
	stateArray = append(stateArray, u16be(0)...)
	stateArray = append(stateArray, u16be(0)...)

	// entryTable: entry 0 {newState:0, flags:0}, entry 1 {newState:1, flags:0x8000}.
	entryTable := append(u16be(0), u16be(0)...)
	entryTable = append(entryTable, u16be(1)...)
	entryTable = append(entryTable, u16be(0x8000)...)

	const headerSize = 16
	lookupOffset := uint32(headerSize)
	stateArrayOffset := lookupOffset + uint32(len(lookup))
	entryTableOffset := stateArrayOffset + uint32(len(stateArray))

	var data []byte
	data = append(data, be32(4)...)
	data = append(data, be32(lookupOffset)...)
	data = append(data, be32(stateArrayOffset)...)
	data = append(data, be32(entryTableOffset)...)
	data = append(data, lookup...)
	data = append(data, stateArray...)
	data = append(data, entryTable...)
	return data
}

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func TestExtendedStateTableClass(t *testing.T) {
	data := buildStateTable(t)
	s := parser.NewStream(data)
	st, ok := ParseExtendedStateTable(3, 0, &s)
	if !ok {
		t.Fatalf("ParseExtendedStateTable: got ok=false")
	}

	if c, ok := st.Class(0); !ok || c != 3 {
		t.Fatalf("Class(0): got (%d, %v), want (3, true)", c, ok)
	}
	if c, ok := st.Class(2); !ok || c != 1 {
		t.Fatalf("Class(2): got (%d, %v), want (1, true)", c, ok)
	}
	if c, ok := st.Class(parser.DeletedGlyphID); !ok || c != ClassDeletedGlyph {
		t.Fatalf("Class(deleted glyph): got (%d, %v), want (%d, true)", c, ok, ClassDeletedGlyph)
	}
}

func TestExtendedStateTableEntry(t *testing.T) {
	data := buildStateTable(t)
	s := parser.NewStream(data)
	st, ok := ParseExtendedStateTable(3, 0, &s)
	if !ok {
		t.Fatalf("ParseExtendedStateTable: got ok=false")
	}

	e, ok := st.Entry(0, 3)
	if !ok || e.NewState != 1 || e.Flags != 0x8000 {
		t.Fatalf("Entry(0, 3): got (%+v, %v), want (NewState=1 Flags=0x8000, true)", e, ok)
	}

	// A class past numberOfClasses coerces to ClassOutOfBounds (1), which
	// this table also maps to entry 0 for state 0.
	coerced, ok := st.Entry(0, 99)
	direct, ok2 := st.Entry(0, ClassOutOfBounds)
	if !ok || !ok2 || coerced.NewState != direct.NewState || coerced.Flags != direct.Flags || !bytes.Equal(coerced.Extra, direct.Extra) {
		t.Fatalf("Entry(0, 99) should coerce to Entry(0, ClassOutOfBounds): got %+v vs %+v", coerced, direct)
	}
}

func TestExtendedStateTableEntryOutOfBoundsState(t *testing.T) {
	data := buildStateTable(t)
	s := parser.NewStream(data)
	st, ok := ParseExtendedStateTable(3, 0, &s)
	if !ok {
		t.Fatalf("ParseExtendedStateTable: got ok=false")
	}
	if _, ok := st.Entry(50, 0); ok {
		t.Fatalf("Entry with a state past the state array: got ok=true, want false")
	}
}
