package aat

import "github.com/maxmelander/ttf-parser/parser"

// ExtendedStateEntry is one row of an ExtendedStateTable's entry table: the
// state to transition to, flags whose meaning is owner-specific (kerx vs.
// morx), and a fixed-size payload of Extra bytes private to the owner.
type ExtendedStateEntry struct {
	NewState uint16
	Flags    uint16
	Extra    []byte
}

// ExtendedStateTable is a finite-state machine ("STXHeader" in Apple's
// documentation) that consumes a stream of glyph classes and emits
// transitions. It is used by kerx (kerning) and morx (glyph morphology)
// subtables.
//
// The state array, entry table and lookup sub-regions are allowed to
// overlap on disk. Regions are resolved independently from the offsets
// in the header rather than bounded against each other, matching how
// real kerx/morx tables are laid out in practice.
type ExtendedStateTable struct {
	numberOfClasses uint32
	lookup          Lookup
	stateArray      []byte
	entryTable      []byte
	entrySize       int // 4 + len(Extra)
}

// ParseExtendedStateTable parses an ExtendedStateTable from s. numberOfGlyphs
// comes from the face's maxp table; extraSize is the fixed size in bytes of
// each entry's owner-specific payload (0 if the owner has none).
func ParseExtendedStateTable(numberOfGlyphs uint16, extraSize int, s *parser.Stream) (ExtendedStateTable, bool) {
	data, ok := s.Tail()
	if !ok {
		return ExtendedStateTable{}, false
	}

	numberOfClasses, ok := s.ReadU32()
	if !ok {
		return ExtendedStateTable{}, false
	}
	// Offsets are relative to the subtable start (the start of `data`), not
	// to the stream's current position; the header fields already consumed
	// are counted in those offsets.
	lookupOffset, ok := s.ReadU32()
	if !ok {
		return ExtendedStateTable{}, false
	}
	stateArrayOffset, ok := s.ReadU32()
	if !ok {
		return ExtendedStateTable{}, false
	}
	entryTableOffset, ok := s.ReadU32()
	if !ok {
		return ExtendedStateTable{}, false
	}

	lookupData, ok := sliceFrom(data, int(lookupOffset))
	if !ok {
		return ExtendedStateTable{}, false
	}
	lookup, ok := ParseLookup(numberOfGlyphs, lookupData)
	if !ok {
		return ExtendedStateTable{}, false
	}

	stateArray, ok := sliceFrom(data, int(stateArrayOffset))
	if !ok {
		return ExtendedStateTable{}, false
	}
	entryTable, ok := sliceFrom(data, int(entryTableOffset))
	if !ok {
		return ExtendedStateTable{}, false
	}

	return ExtendedStateTable{
		numberOfClasses: numberOfClasses,
		lookup:          lookup,
		stateArray:      stateArray,
		entryTable:      entryTable,
		entrySize:       4 + extraSize,
	}, true
}

func sliceFrom(data []byte, offset int) ([]byte, bool) {
	if offset < 0 || offset > len(data) {
		return nil, false
	}
	return data[offset:], true
}

// Class returns glyph's class. Glyph 0xFFFF always classifies as
// ClassDeletedGlyph, regardless of lookup contents; any other glyph absent
// from the lookup reports false (the caller may treat that as
// ClassOutOfBounds, depending on context).
func (t ExtendedStateTable) Class(glyph parser.GlyphID) (uint16, bool) {
	if glyph == parser.DeletedGlyphID {
		return ClassDeletedGlyph, true
	}
	return t.lookup.Value(glyph)
}

// Entry returns the state-table entry for (state, class). A class value
// >= numberOfClasses is coerced to ClassOutOfBounds before indexing, so
// Entry(s, c) for any out-of-range c equals Entry(s, ClassOutOfBounds). An
// out-of-bounds read into either the state array or the entry table
// reports false.
func (t ExtendedStateTable) Entry(state uint16, class uint16) (ExtendedStateEntry, bool) {
	if uint32(class) >= t.numberOfClasses {
		class = ClassOutOfBounds
	}

	stateIdx := uint64(state)*uint64(t.numberOfClasses) + uint64(class)
	entryIdx, ok := parser.ReadU16At(t.stateArray, int(stateIdx)*2)
	if !ok {
		return ExtendedStateEntry{}, false
	}

	off := int(entryIdx) * t.entrySize
	if off < 0 || off+t.entrySize > len(t.entryTable) {
		return ExtendedStateEntry{}, false
	}
	rec := t.entryTable[off : off+t.entrySize]
	newState, ok := parser.ReadU16At(rec, 0)
	if !ok {
		return ExtendedStateEntry{}, false
	}
	flags, ok := parser.ReadU16At(rec, 2)
	if !ok {
		return ExtendedStateEntry{}, false
	}
	return ExtendedStateEntry{NewState: newState, Flags: flags, Extra: rec[4:]}, true
}
