package tables

import "github.com/maxmelander/ttf-parser/parser"

// Hhea is the horizontal header table. The same binary layout serves the
// vertical header (`vhea`); callers of ParseHhea for `vhea` simply read the
// result's fields under their vertical meaning.
type Hhea struct {
	Ascender          int16
	Descender         int16
	LineGap           int16
	NumberOfHMetrics  uint16
}

// ParseHhea parses the 36-byte `hhea`/`vhea` table.
func ParseHhea(data []byte) (Hhea, bool) {
	if len(data) < 36 {
		return Hhea{}, false
	}
	s := parser.NewStream(data)
	s.Advance(4) // version
	ascender, ok := s.ReadI16()
	if !ok {
		return Hhea{}, false
	}
	descender, ok := s.ReadI16()
	if !ok {
		return Hhea{}, false
	}
	lineGap, ok := s.ReadI16()
	if !ok {
		return Hhea{}, false
	}
	s.Advance(24) // advanceWidthMax..metricDataFormat
	numberOfHMetrics, ok := s.ReadU16()
	if !ok {
		return Hhea{}, false
	}
	return Hhea{Ascender: ascender, Descender: descender, LineGap: lineGap, NumberOfHMetrics: numberOfHMetrics}, true
}
