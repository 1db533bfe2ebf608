package tables

import "github.com/maxmelander/ttf-parser/parser"

// SbixGlyphData is one glyph's raster entry in a strike: its origin
// offset, the four-byte graphic type tag ("png " for this implementation's
// purposes) and the encoded image bytes.
type SbixGlyphData struct {
	OriginX, OriginY int16
	GraphicType      parser.Tag
	Data             []byte
}

// Sbix is Apple's "standard bitmap graphics" color table: strikes at
// various pixel-per-em sizes, each indexing glyph image data.
type Sbix struct {
	data            []byte
	strikeOffsets   parser.LazyArray32 // stride 4
	numberOfGlyphs  uint16
}

// ParseSbix parses `sbix`. numberOfGlyphs comes from the face's `maxp`.
func ParseSbix(numberOfGlyphs uint16, data []byte) (Sbix, bool) {
	if len(data) < 8 {
		return Sbix{}, false
	}
	s := parser.NewStream(data)
	s.SkipU16() // version
	s.SkipU16() // flags
	numStrikes, ok := s.ReadU32()
	if !ok {
		return Sbix{}, false
	}
	offsets, ok := s.ReadArray32(4, numStrikes)
	if !ok {
		return Sbix{}, false
	}
	return Sbix{data: data, strikeOffsets: offsets, numberOfGlyphs: numberOfGlyphs}, true
}

// BestStrike returns the glyph image from the strike whose ppem most
// closely matches (preferring the smallest strike >= pixelsPerEm, falling
// back to the largest available strike).
func (t Sbix) BestStrike(glyph parser.GlyphID, pixelsPerEm uint16) (SbixGlyphData, uint16, bool) {
	if uint16(glyph) >= t.numberOfGlyphs {
		return SbixGlyphData{}, 0, false
	}

	var bestOff uint32
	var bestPPEM uint16
	found := false
	for i := uint32(0); i < t.strikeOffsets.Len(); i++ {
		b, ok := t.strikeOffsets.Get(i)
		if !ok {
			continue
		}
		off, _ := parser.ReadU32At(b, 0)
		if int(off)+4 > len(t.data) {
			continue
		}
		ppem, _ := parser.ReadU16At(t.data, int(off)+2)

		switch {
		case !found:
			bestOff, bestPPEM, found = off, ppem, true
		case ppem >= pixelsPerEm && (bestPPEM < pixelsPerEm || ppem < bestPPEM):
			bestOff, bestPPEM = off, ppem
		case bestPPEM < pixelsPerEm && ppem > bestPPEM:
			bestOff, bestPPEM = off, ppem
		}
	}
	if !found {
		return SbixGlyphData{}, 0, false
	}

	strike := t.data[bestOff:]
	strikeStream := parser.NewStreamAt(strike, 4)
	glyphOffsets, ok := strikeStream.ReadArray32(4, uint32(t.numberOfGlyphs)+1)
	if !ok {
		return SbixGlyphData{}, 0, false
	}
	startB, ok1 := glyphOffsets.Get(uint32(glyph))
	endB, ok2 := glyphOffsets.Get(uint32(glyph) + 1)
	if !ok1 || !ok2 {
		return SbixGlyphData{}, 0, false
	}
	start, _ := parser.ReadU32At(startB, 0)
	end, _ := parser.ReadU32At(endB, 0)
	if end <= start || int(end) > len(strike) {
		return SbixGlyphData{}, 0, false
	}

	rec := strike[start:end]
	if len(rec) < 8 {
		return SbixGlyphData{}, 0, false
	}
	originX, _ := parser.ReadU16At(rec, 0)
	originY, _ := parser.ReadU16At(rec, 2)
	graphicType, _ := parser.ReadU32At(rec, 4)
	return SbixGlyphData{
		OriginX:     int16(originX),
		OriginY:     int16(originY),
		GraphicType: parser.Tag(graphicType),
		Data:        rec[8:],
	}, bestPPEM, true
}
