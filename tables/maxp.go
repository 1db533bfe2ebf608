package tables

import "github.com/maxmelander/ttf-parser/parser"

// Maxp is the maximum-profile table. NumberOfGlyphs is never zero for a
// well-formed font; ParseMaxp rejects zero as malformed rather than
// returning a table a caller might index with glyph 0 and believe valid.
type Maxp struct {
	NumberOfGlyphs uint16
}

// ParseMaxp parses `maxp`. Both the 6-byte (CFF-flavored, version 0.5) and
// the full 32-byte (version 1.0) forms carry numGlyphs at the same offset,
// so only the first 6 bytes are required.
func ParseMaxp(data []byte) (Maxp, bool) {
	if len(data) < 6 {
		return Maxp{}, false
	}
	s := parser.NewStream(data)
	s.Advance(4) // version
	n, ok := s.ReadU16()
	if !ok || n == 0 {
		return Maxp{}, false
	}
	return Maxp{NumberOfGlyphs: n}, true
}
