package tables

import "github.com/maxmelander/ttf-parser/parser"

// BitmapLocation pinpoints one glyph's image bytes within the sibling
// `CBDT` table.
type BitmapLocation struct {
	Offset, Length uint32
	Format         uint16
	PPEM           uint8
}

// Cblc is the color-bitmap location table: a list of strike sizes, each
// indexing a set of glyph ranges via an IndexSubTable.
type Cblc struct {
	data    []byte
	strikes parser.LazyArray32 // stride 48 (BitmapSize record)
}

// ParseCblc parses `CBLC`.
func ParseCblc(data []byte) (Cblc, bool) {
	if len(data) < 8 {
		return Cblc{}, false
	}
	s := parser.NewStream(data)
	s.Advance(4) // majorVersion, minorVersion
	numSizes, ok := s.ReadU32()
	if !ok {
		return Cblc{}, false
	}
	strikes, ok := s.ReadArray32(48, numSizes)
	if !ok {
		return Cblc{}, false
	}
	return Cblc{data: data, strikes: strikes}, true
}

// Find locates glyph's bitmap for the strike closest to pixelsPerEm
// (preferring an exact or larger match), returning its location in the
// sibling `CBDT` table.
func (c Cblc) Find(glyph parser.GlyphID, pixelsPerEm uint8) (BitmapLocation, bool) {
	var best []byte
	var bestPPEM uint8
	found := false
	for i := uint32(0); i < c.strikes.Len(); i++ {
		b, ok := c.strikes.Get(i)
		if !ok {
			continue
		}
		ppemX, _ := parser.ReadU8At(b, 45)
		switch {
		case !found:
			best, bestPPEM, found = b, ppemX, true
		case ppemX >= pixelsPerEm && (bestPPEM < pixelsPerEm || ppemX < bestPPEM):
			best, bestPPEM = b, ppemX
		case bestPPEM < pixelsPerEm && ppemX > bestPPEM:
			best, bestPPEM = b, ppemX
		}
	}
	if !found {
		return BitmapLocation{}, false
	}

	indexSubTableArrayOffset, _ := parser.ReadU32At(best, 0)
	numberOfIndexSubTables, _ := parser.ReadU32At(best, 8)
	startGlyph, _ := parser.ReadU16At(best, 40)
	endGlyph, _ := parser.ReadU16At(best, 42)
	g := uint16(glyph)
	if g < startGlyph || g > endGlyph {
		return BitmapLocation{}, false
	}
	if int(indexSubTableArrayOffset) >= len(c.data) {
		return BitmapLocation{}, false
	}
	arr := c.data[indexSubTableArrayOffset:]

	for i := uint32(0); i < numberOfIndexSubTables; i++ {
		rec := arr[i*8:]
		if len(rec) < 8 {
			break
		}
		first, _ := parser.ReadU16At(rec, 0)
		last, _ := parser.ReadU16At(rec, 2)
		if g < first || g > last {
			continue
		}
		additionalOffset, _ := parser.ReadU32At(rec, 4)
		subTableOffset := int(indexSubTableArrayOffset) + int(additionalOffset)
		if subTableOffset >= len(c.data) {
			return BitmapLocation{}, false
		}
		loc, ok := parseIndexSubTable(c.data[subTableOffset:], g, first)
		if !ok {
			return BitmapLocation{}, false
		}
		loc.PPEM = bestPPEM
		return loc, true
	}
	return BitmapLocation{}, false
}

func parseIndexSubTable(data []byte, glyph, first uint16) (BitmapLocation, bool) {
	if len(data) < 8 {
		return BitmapLocation{}, false
	}
	format, _ := parser.ReadU16At(data, 0)
	imageFormat, _ := parser.ReadU16At(data, 2)
	imageDataOffset, _ := parser.ReadU32At(data, 4)

	switch format {
	case 1: // variable-size metrics, per-glyph offsets
		idx := int(glyph-first) * 4
		if idx+8 > len(data)-8 {
			return BitmapLocation{}, false
		}
		off1, _ := parser.ReadU32At(data, 8+idx)
		off2, _ := parser.ReadU32At(data, 8+idx+4)
		return BitmapLocation{Offset: imageDataOffset + off1, Length: off2 - off1, Format: imageFormat}, true
	case 2: // constant-size metrics
		imageSize, _ := parser.ReadU32At(data, 8)
		idx := uint32(glyph - first)
		return BitmapLocation{Offset: imageDataOffset + idx*imageSize, Length: imageSize, Format: imageFormat}, true
	default:
		return BitmapLocation{}, false
	}
}
