package tables

import "github.com/maxmelander/ttf-parser/parser"

// Loca is the glyph location table: numberOfGlyphs+1 offsets into `glyf`,
// the last serving only to give the final glyph's length by subtraction.
type Loca struct {
	offsets []uint32
}

// ParseLoca parses `loca`. format comes from the sibling `head` table;
// numberOfGlyphs from `maxp`.
func ParseLoca(numberOfGlyphs uint16, format IndexToLocationFormat, data []byte) (Loca, bool) {
	count := int(numberOfGlyphs) + 1
	offsets := make([]uint32, count)
	s := parser.NewStream(data)
	if format == IndexToLocationShort {
		for i := 0; i < count; i++ {
			v, ok := s.ReadU16()
			if !ok {
				return Loca{}, false
			}
			offsets[i] = uint32(v) * 2
		}
	} else {
		for i := 0; i < count; i++ {
			v, ok := s.ReadU32()
			if !ok {
				return Loca{}, false
			}
			offsets[i] = v
		}
	}
	return Loca{offsets: offsets}, true
}

// Range returns the [start, end) byte range within `glyf` for glyph, or
// false if glyph is out of range or the range is empty (a glyph with no
// outline, e.g. space).
func (l Loca) Range(glyph parser.GlyphID) (uint32, uint32, bool) {
	i := int(glyph)
	if i < 0 || i+1 >= len(l.offsets) {
		return 0, 0, false
	}
	start, end := l.offsets[i], l.offsets[i+1]
	if end < start {
		return 0, 0, false
	}
	return start, end, end > start
}
