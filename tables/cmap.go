package tables

import "github.com/maxmelander/ttf-parser/parser"

// Cmap is the character-to-glyph mapping table: a set of encoding
// subtables, each binding a (platform, encoding) pair to a lookup format.
type Cmap struct {
	data      []byte
	encodings parser.LazyArray16 // stride 8
}

// ParseCmap parses the `cmap` header and its encoding-record array,
// without parsing any individual subtable eagerly.
func ParseCmap(data []byte) (Cmap, bool) {
	s := parser.NewStream(data)
	s.SkipU16() // version
	numTables, ok := s.ReadU16()
	if !ok {
		return Cmap{}, false
	}
	encodings, ok := s.ReadArray16(8, numTables)
	if !ok {
		return Cmap{}, false
	}
	return Cmap{data: data, encodings: encodings}, true
}

// Subtable is one (platform, encoding) binding and its parsed lookup
// format.
type Subtable struct {
	PlatformID uint16
	EncodingID uint16
	data       []byte
}

// IsUnicode reports whether this subtable's (platform, encoding) pair is
// one of the conventional Unicode bindings.
func (t Subtable) IsUnicode() bool {
	switch t.PlatformID {
	case 0: // Unicode
		return true
	case 3: // Windows
		return t.EncodingID == 1 || t.EncodingID == 10
	default:
		return false
	}
}

// GlyphIndex maps a Unicode code point to a glyph index using this
// subtable's format (0, 4, 6 or 12; other formats report false).
func (t Subtable) GlyphIndex(cp rune) (parser.GlyphID, bool) {
	s := parser.NewStream(t.data)
	format, ok := s.ReadU16()
	if !ok {
		return 0, false
	}
	switch format {
	case 0:
		return cmapFormat0(t.data, cp)
	case 4:
		return cmapFormat4(t.data, cp)
	case 6:
		return cmapFormat6(t.data, cp)
	case 12:
		return cmapFormat12(t.data, cp)
	default:
		return 0, false
	}
}

// Subtables iterates the cmap's encoding records, calling fn with each
// subtable it can locate within data. Iteration stops early if fn returns
// false.
func (c Cmap) Subtables(fn func(Subtable) bool) {
	c.encodings.Iter(func(_ uint16, rec []byte) bool {
		platformID, _ := parser.ReadU16At(rec, 0)
		encodingID, _ := parser.ReadU16At(rec, 2)
		offset, ok := parser.ReadU32At(rec, 4)
		if !ok || int(offset) >= len(c.data) {
			return true
		}
		return fn(Subtable{PlatformID: platformID, EncodingID: encodingID, data: c.data[offset:]})
	})
}

func cmapFormat0(data []byte, cp rune) (parser.GlyphID, bool) {
	if cp < 0 || cp > 255 {
		return 0, false
	}
	v, ok := parser.ReadU8At(data, 6+int(cp))
	if !ok || v == 0 {
		return 0, false
	}
	return parser.GlyphID(v), true
}

func cmapFormat4(data []byte, cp rune) (parser.GlyphID, bool) {
	if cp < 0 || cp > 0xFFFF {
		return 0, false
	}
	segCountX2, ok := parser.ReadU16At(data, 6)
	if !ok {
		return 0, false
	}
	segCount := int(segCountX2) / 2
	endCodesOff := 14
	startCodesOff := endCodesOff + int(segCountX2) + 2 // +2 skips reservedPad
	deltasOff := startCodesOff + int(segCountX2)
	rangesOff := deltasOff + int(segCountX2)

	c := uint16(cp)
	for i := 0; i < segCount; i++ {
		endCode, ok := parser.ReadU16At(data, endCodesOff+i*2)
		if !ok {
			return 0, false
		}
		if c > endCode {
			continue
		}
		startCode, ok := parser.ReadU16At(data, startCodesOff+i*2)
		if !ok || c < startCode {
			return 0, false
		}
		idDelta, ok := parser.ReadU16At(data, deltasOff+i*2)
		if !ok {
			return 0, false
		}
		idRangeOffset, ok := parser.ReadU16At(data, rangesOff+i*2)
		if !ok {
			return 0, false
		}
		if idRangeOffset == 0 {
			return parser.GlyphID(c + idDelta), true
		}
		glyphOff := rangesOff + i*2 + int(idRangeOffset) + int(c-startCode)*2
		g, ok := parser.ReadU16At(data, glyphOff)
		if !ok || g == 0 {
			return 0, false
		}
		return parser.GlyphID(g + idDelta), true
	}
	return 0, false
}

func cmapFormat6(data []byte, cp rune) (parser.GlyphID, bool) {
	firstCode, ok := parser.ReadU16At(data, 6)
	if !ok {
		return 0, false
	}
	entryCount, ok := parser.ReadU16At(data, 8)
	if !ok {
		return 0, false
	}
	if cp < rune(firstCode) || cp >= rune(firstCode)+rune(entryCount) {
		return 0, false
	}
	idx := int(cp) - int(firstCode)
	g, ok := parser.ReadU16At(data, 10+idx*2)
	if !ok || g == 0 {
		return 0, false
	}
	return parser.GlyphID(g), true
}

func cmapFormat12(data []byte, cp rune) (parser.GlyphID, bool) {
	numGroups, ok := parser.ReadU32At(data, 12)
	if !ok {
		return 0, false
	}
	lo, hi := uint32(0), numGroups
	u := uint32(cp)
	for lo < hi {
		mid := (lo + hi) / 2
		off := 16 + int(mid)*12
		startChar, ok := parser.ReadU32At(data, off)
		if !ok {
			return 0, false
		}
		endChar, ok := parser.ReadU32At(data, off+4)
		if !ok {
			return 0, false
		}
		switch {
		case u < startChar:
			hi = mid
		case u > endChar:
			lo = mid + 1
		default:
			startGlyph, ok := parser.ReadU32At(data, off+8)
			if !ok {
				return 0, false
			}
			return parser.GlyphID(startGlyph + (u - startChar)), true
		}
	}
	return 0, false
}
