package tables

import "github.com/maxmelander/ttf-parser/parser"

// SVG is the SVG glyph-image table: a sorted list of glyph-ID ranges, each
// pointing at an embedded (possibly gzip-compressed) SVG document.
type SVG struct {
	data    []byte
	entries parser.LazyArray16 // stride 12: u16 start, u16 end, u32 offset, u32 length
}

// ParseSVG parses `SVG `.
func ParseSVG(data []byte) (SVG, bool) {
	if len(data) < 10 {
		return SVG{}, false
	}
	docListOffset, ok := parser.ReadU32At(data, 2)
	if !ok || int(docListOffset) >= len(data) {
		return SVG{}, false
	}
	docList := data[docListOffset:]
	s := parser.NewStream(docList)
	numEntries, ok := s.ReadU16()
	if !ok {
		return SVG{}, false
	}
	entries, ok := s.ReadArray16(12, numEntries)
	if !ok {
		return SVG{}, false
	}
	return SVG{data: docList, entries: entries}, true
}

// DocumentFor returns the raw (possibly gzip-compressed) SVG document
// bytes covering glyph, or false if no range contains it.
func (t SVG) DocumentFor(glyph parser.GlyphID) ([]byte, bool) {
	g := uint16(glyph)
	_, b, ok := t.entries.BinarySearch(func(elem []byte) int {
		start, _ := parser.ReadU16At(elem, 0)
		end, _ := parser.ReadU16At(elem, 2)
		switch {
		case g < start:
			return -1
		case g > end:
			return 1
		default:
			return 0
		}
	})
	if !ok {
		return nil, false
	}
	offset, _ := parser.ReadU32At(b, 4)
	length, _ := parser.ReadU32At(b, 8)
	end := int(offset) + int(length)
	if end > len(t.data) || int(offset) > end {
		return nil, false
	}
	return t.data[offset:end], true
}
