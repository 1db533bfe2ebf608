package tables

// Vhea is the vertical header table: byte-identical layout to `hhea`,
// read under its vertical meaning (Ascender/Descender become the top/
// bottom vertical extents).
type Vhea = Hhea

// ParseVhea parses `vhea`.
func ParseVhea(data []byte) (Vhea, bool) { return ParseHhea(data) }
