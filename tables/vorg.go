package tables

import "github.com/maxmelander/ttf-parser/parser"

// VORG is the vertical-origin table: a default origin Y plus a sorted
// list of per-glyph overrides.
type VORG struct {
	DefaultY uint16 // actually int16, stored unsigned to match wire layout; see Origin
	metrics  parser.LazyArray16 // stride 4: u16 glyphIndex, i16 vertOriginY
}

// ParseVORG parses `VORG`.
func ParseVORG(data []byte) (VORG, bool) {
	if len(data) < 8 {
		return VORG{}, false
	}
	s := parser.NewStream(data)
	s.SkipU16() // majorVersion
	s.SkipU16() // minorVersion
	defaultY, ok := s.ReadU16()
	if !ok {
		return VORG{}, false
	}
	count, ok := s.ReadU16()
	if !ok {
		return VORG{}, false
	}
	metrics, ok := s.ReadArray16(4, count)
	if !ok {
		return VORG{}, false
	}
	return VORG{DefaultY: defaultY, metrics: metrics}, true
}

// Origin returns glyph's vertical origin Y, falling back to the table's
// default when no explicit override exists.
func (t VORG) Origin(glyph parser.GlyphID) int16 {
	g := uint16(glyph)
	_, b, ok := t.metrics.BinarySearch(func(elem []byte) int {
		v, _ := parser.ReadU16At(elem, 0)
		switch {
		case g < v:
			return -1
		case g > v:
			return 1
		default:
			return 0
		}
	})
	if !ok {
		return int16(t.DefaultY)
	}
	v, _ := parser.ReadU16At(b, 2)
	return int16(v)
}
