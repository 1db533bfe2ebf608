package tables

import "github.com/maxmelander/ttf-parser/parser"

// Cbdt is the color-bitmap data table: raw (small-metrics-prefixed) PNG
// image bytes, indexed via a Cblc location.
type Cbdt struct {
	data []byte
}

// ParseCbdt parses `CBDT`'s two-byte version header only; all real
// content is accessed through Image given a Cblc location.
func ParseCbdt(data []byte) (Cbdt, bool) {
	if len(data) < 4 {
		return Cbdt{}, false
	}
	return Cbdt{data: data}, true
}

// Image returns the glyph's raw image bytes at loc (the glyph-metrics
// header of image formats 17 and 18 is stripped; format 19 and any other
// format is returned whole), along with its 1-byte-per-axis origin.
func (c Cbdt) Image(loc BitmapLocation) ([]byte, int16, int16, bool) {
	end := loc.Offset + loc.Length
	if end < loc.Offset || int(end) > len(c.data) || loc.Length == 0 {
		return nil, 0, 0, false
	}
	rec := c.data[loc.Offset:end]

	switch loc.Format {
	case 17: // small glyph metrics (5 bytes) + u32 data length + data
		if len(rec) < 9 {
			return nil, 0, 0, false
		}
		bearingX, _ := parser.ReadU8At(rec, 1)
		bearingY, _ := parser.ReadU8At(rec, 2)
		dataLen, _ := parser.ReadU32At(rec, 5)
		if 9+int(dataLen) > len(rec) {
			return nil, 0, 0, false
		}
		return rec[9 : 9+dataLen], int16(int8(bearingX)), int16(int8(bearingY)), true
	case 18: // big glyph metrics (8 bytes) + u32 data length + data
		if len(rec) < 12 {
			return nil, 0, 0, false
		}
		bearingX, _ := parser.ReadU8At(rec, 1)
		bearingY, _ := parser.ReadU8At(rec, 2)
		dataLen, _ := parser.ReadU32At(rec, 8)
		if 12+int(dataLen) > len(rec) {
			return nil, 0, 0, false
		}
		return rec[12 : 12+dataLen], int16(int8(bearingX)), int16(int8(bearingY)), true
	case 19: // raw PNG, no metrics header
		return rec, 0, 0, true
	default:
		return rec, 0, 0, true
	}
}
