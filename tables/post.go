package tables

import "github.com/maxmelander/ttf-parser/parser"

// Post is the PostScript information table. Only its glyph-naming payload
// (format 2.0) and the scalar metrics common to every format are exposed.
type Post struct {
	ItalicAngle     int32 // 16.16 fixed, design-unit degrees
	Underline       LineMetrics
	IsMonospaced    bool
	names           []string // format 2.0 only
	glyphNameIndex  parser.LazyArray16
}

// LineMetrics mirrors the root package's type without importing it
// (avoiding an import cycle); query.go copies the values across.
type LineMetrics struct {
	Position  int16
	Thickness int16
}

// ParsePost parses `post`. Formats 1.0 and 3.0 carry no glyph names;
// format 2.5 (deprecated) is treated the same as 3.0 here.
func ParsePost(data []byte) (Post, bool) {
	if len(data) < 32 {
		return Post{}, false
	}
	s := parser.NewStream(data)
	version, ok := s.ReadU32()
	if !ok {
		return Post{}, false
	}
	italicAngle, ok := s.ReadI32()
	if !ok {
		return Post{}, false
	}
	underlinePosition, ok := s.ReadI16()
	if !ok {
		return Post{}, false
	}
	underlineThickness, ok := s.ReadI16()
	if !ok {
		return Post{}, false
	}
	isFixedPitch, ok := s.ReadU32()
	if !ok {
		return Post{}, false
	}

	p := Post{
		ItalicAngle:  italicAngle,
		Underline:    LineMetrics{Position: underlinePosition, Thickness: underlineThickness},
		IsMonospaced: isFixedPitch != 0,
	}

	if version != 0x00020000 {
		return p, true
	}

	s.Advance(16) // minMemType42..maxMemType1
	numberOfGlyphs, ok := s.ReadU16()
	if !ok {
		return p, true
	}
	idx, ok := s.ReadArray16(2, numberOfGlyphs)
	if !ok {
		return p, true
	}
	p.glyphNameIndex = idx

	var names []string
	tail, ok := s.Tail()
	if ok {
		for len(tail) > 0 {
			length := int(tail[0])
			if length+1 > len(tail) {
				break
			}
			names = append(names, string(tail[1:1+length]))
			tail = tail[1+length:]
		}
	}
	p.names = names
	return p, true
}

// macGlyphNameCount is the size of the standard Macintosh glyph-name set:
// format 2.0 glyph-name indices below it select a standard name, indices
// from it up select one of the table's own names.
const macGlyphNameCount = 258

// macGlyphNames holds the first 98 standard Macintosh glyph names
// (".notdef" through "asciitilde"); standard indices 98-257 have no entry.
var macGlyphNames = [...]string{
	".notdef", ".null", "nonmarkingreturn", "space", "exclam", "quotedbl",
	"numbersign", "dollar", "percent", "ampersand", "quotesingle",
	"parenleft", "parenright", "asterisk", "plus", "comma", "hyphen",
	"period", "slash", "zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "colon", "semicolon", "less",
	"equal", "greater", "question", "at", "A", "B", "C", "D", "E", "F",
	"G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T",
	"U", "V", "W", "X", "Y", "Z", "bracketleft", "backslash",
	"bracketright", "asciicircum", "underscore", "grave", "a", "b", "c",
	"d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q",
	"r", "s", "t", "u", "v", "w", "x", "y", "z", "braceleft", "bar",
	"braceright", "asciitilde",
}

// GlyphName returns glyph's PostScript name, for format 2.0 `post` tables
// only. A glyph mapped to a standard name past "asciitilde" (index 98-257)
// reports false.
func (p Post) GlyphName(glyph parser.GlyphID) (string, bool) {
	b, ok := p.glyphNameIndex.Get(uint16(glyph))
	if !ok {
		return "", false
	}
	idx, _ := parser.ReadU16At(b, 0)
	if idx < macGlyphNameCount {
		if int(idx) < len(macGlyphNames) {
			return macGlyphNames[idx], true
		}
		return "", false
	}
	custom := int(idx) - macGlyphNameCount
	if custom < 0 || custom >= len(p.names) {
		return "", false
	}
	return p.names[custom], true
}
