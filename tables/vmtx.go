package tables

// Vmtx is the vertical metrics table: byte-identical layout to `hmtx`,
// carrying (advance height, top side bearing) pairs instead of (advance
// width, left side bearing).
type Vmtx = Hmtx

// ParseVmtx parses `vmtx` given the sibling `vhea`'s metric count and
// `maxp`'s glyph count.
func ParseVmtx(numberOfMetrics, numberOfGlyphs uint16, data []byte) (Vmtx, bool) {
	return ParseHmtx(numberOfMetrics, numberOfGlyphs, data)
}
