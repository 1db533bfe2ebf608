package tables

import "github.com/maxmelander/ttf-parser/parser"

// Hmtx is the horizontal (or, reused for `vmtx`, vertical) metrics table:
// a run of (advance, sideBearing) pairs sized by the header's metric
// count, followed by a tail of sideBearing-only entries for the remaining
// glyphs (all sharing the last pair's advance).
type Hmtx struct {
	metrics        parser.LazyArray16 // stride 4: uint16 advance, int16 sideBearing
	bearings       parser.LazyArray16 // stride 2: int16 sideBearing
	numberOfGlyphs uint16
}

// ParseHmtx parses `hmtx`/`vmtx` given the sibling `hhea`/`vhea`'s metric
// count and `maxp`'s glyph count.
func ParseHmtx(numberOfMetrics, numberOfGlyphs uint16, data []byte) (Hmtx, bool) {
	if numberOfMetrics == 0 || numberOfGlyphs == 0 || numberOfMetrics > numberOfGlyphs {
		return Hmtx{}, false
	}
	s := parser.NewStream(data)
	metrics, ok := s.ReadArray16(4, numberOfMetrics)
	if !ok {
		return Hmtx{}, false
	}
	tailCount := numberOfGlyphs - numberOfMetrics
	var bearings parser.LazyArray16
	if tailCount > 0 {
		bearings, ok = s.ReadArray16(2, tailCount)
		if !ok {
			return Hmtx{}, false
		}
	}
	return Hmtx{metrics: metrics, bearings: bearings, numberOfGlyphs: numberOfGlyphs}, true
}

// Advance returns glyph's advance width (or height, for `vmtx`).
func (t Hmtx) Advance(glyph parser.GlyphID) (uint16, bool) {
	if uint16(glyph) >= t.numberOfGlyphs {
		return 0, false
	}
	if uint16(glyph) < t.metrics.Len() {
		b, ok := t.metrics.Get(uint16(glyph))
		if !ok {
			return 0, false
		}
		v, _ := parser.ReadU16At(b, 0)
		return v, true
	}
	// Past the explicit run: share the last metric's advance.
	b, ok := t.metrics.Last()
	if !ok {
		return 0, false
	}
	v, _ := parser.ReadU16At(b, 0)
	return v, true
}

// SideBearing returns glyph's left (or top, for `vmtx`) side bearing.
func (t Hmtx) SideBearing(glyph parser.GlyphID) (int16, bool) {
	if uint16(glyph) >= t.numberOfGlyphs {
		return 0, false
	}
	if uint16(glyph) < t.metrics.Len() {
		b, ok := t.metrics.Get(uint16(glyph))
		if !ok {
			return 0, false
		}
		v, _ := parser.ReadU16At(b, 2)
		return int16(v), true
	}
	idx := uint16(glyph) - t.metrics.Len()
	b, ok := t.bearings.Get(idx)
	if !ok {
		return 0, false
	}
	v, _ := parser.ReadU16At(b, 0)
	return int16(v), true
}
