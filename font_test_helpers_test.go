package sfnt

import "sort"

// buildFont assembles a minimal, well-formed SFNT buffer (TrueType magic,
// sorted table directory) out of the given tag -> table-data map, for
// feeding to FromSlice in tests.
func buildFont(tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	numTables := uint16(len(tags))
	header := make([]byte, 12)
	putU32(header, 0, 0x00010000)
	putU16(header, 4, numTables)

	dir := make([]byte, 0, 16*len(tags))
	var body []byte
	offset := uint32(12 + 16*len(tags))
	for _, tag := range tags {
		data := tables[tag]
		rec := make([]byte, 16)
		copy(rec[0:4], []byte(tag))
		putU32(rec, 4, 0) // checksum, unused by the parser
		putU32(rec, 8, offset)
		putU32(rec, 12, uint32(len(data)))
		dir = append(dir, rec...)
		body = append(body, data...)
		offset += uint32(len(data))
	}

	out := append(header, dir...)
	out = append(out, body...)
	return out
}

func putU16(b []byte, off int, v uint16) {
	b[off] = byte(v >> 8)
	b[off+1] = byte(v)
}

func putU32(b []byte, off int, v uint32) {
	b[off] = byte(v >> 24)
	b[off+1] = byte(v >> 16)
	b[off+2] = byte(v >> 8)
	b[off+3] = byte(v)
}

func putI16(b []byte, off int, v int16) { putU16(b, off, uint16(v)) }

// buildHead returns a 54-byte `head` table with the given units-per-em and
// bounding box.
func buildHead(unitsPerEm uint16, xMin, yMin, xMax, yMax int16) []byte {
	b := make([]byte, 54)
	putU16(b, 18, unitsPerEm)
	putI16(b, 36, xMin)
	putI16(b, 38, yMin)
	putI16(b, 40, xMax)
	putI16(b, 42, yMax)
	putI16(b, 50, 0) // indexToLocFormat: short
	return b
}

// buildHhea returns a 36-byte `hhea`/`vhea` table.
func buildHhea(ascender, descender, lineGap int16, numberOfHMetrics uint16) []byte {
	b := make([]byte, 36)
	putI16(b, 4, ascender)
	putI16(b, 6, descender)
	putI16(b, 8, lineGap)
	putU16(b, 34, numberOfHMetrics)
	return b
}

// buildMaxp returns a 6-byte (version 0.5) `maxp` table.
func buildMaxp(numberOfGlyphs uint16) []byte {
	b := make([]byte, 6)
	putU16(b, 4, numberOfGlyphs)
	return b
}

// minimalFontTables returns the three mandatory tables for a face with the
// given units-per-em and glyph count, ready to feed into buildFont (merge
// in further tables as needed).
func minimalFontTables(unitsPerEm, numberOfGlyphs uint16) map[string][]byte {
	return map[string][]byte{
		"head": buildHead(unitsPerEm, -50, -200, 1000, 900),
		"hhea": buildHhea(800, -200, 90, numberOfGlyphs),
		"maxp": buildMaxp(numberOfGlyphs),
	}
}
