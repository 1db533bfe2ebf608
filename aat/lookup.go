// Package aat implements the Apple Advanced Typography lookup tables and
// extended state-table machine shared by kerx-style kerning and
// morphology-style glyph-stream classification.
//
// A Lookup is a polymorphic glyph -> uint16 map over six on-disk
// representations; an ExtendedStateTable drives a finite-state machine over
// a stream of glyph classes produced by one such Lookup.
package aat

import "github.com/maxmelander/ttf-parser/parser"

// Reserved AAT class codes.
const (
	ClassEndOfText   uint16 = 0
	ClassOutOfBounds uint16 = 1
	ClassDeletedGlyph uint16 = 2
)

// Lookup is a glyph-keyed map, used by Apple Advanced Typography tables.
// It is represented as a closed, six-variant sum type rather than dynamic
// dispatch: the set of on-disk formats is fixed and the dispatch cost
// matters on the hot glyph-classification path.
type Lookup struct {
	format  uint16
	format0 parser.LazyArray16 // format 0: dense, stride 2

	bsearch       binarySearchTable // formats 2, 4, 6
	format4Data   []byte            // format 4: subtable-relative value blocks

	format8First  uint16
	format8Values parser.LazyArray16

	format10ValueSize  uint16
	format10FirstGlyph uint16
	format10GlyphCount uint16
	format10Data       []byte
}

// ParseLookup parses a Lookup from data. numberOfGlyphs is taken from the
// face's maxp table and bounds format-0 arrays.
func ParseLookup(numberOfGlyphs uint16, data []byte) (Lookup, bool) {
	s := parser.NewStream(data)
	format, ok := s.ReadU16()
	if !ok {
		return Lookup{}, false
	}
	switch format {
	case 0:
		values, ok := s.ReadArray16(2, numberOfGlyphs)
		if !ok {
			return Lookup{}, false
		}
		return Lookup{format: 0, format0: values}, true
	case 2:
		tail, ok := s.Tail()
		if !ok {
			return Lookup{}, false
		}
		bs, ok := parseBinarySearchTable(tail, 6)
		if !ok {
			return Lookup{}, false
		}
		return Lookup{format: 2, bsearch: bs}, true
	case 4:
		tail, ok := s.Tail()
		if !ok {
			return Lookup{}, false
		}
		bs, ok := parseBinarySearchTable(tail, 6)
		if !ok {
			return Lookup{}, false
		}
		return Lookup{format: 4, bsearch: bs, format4Data: data}, true
	case 6:
		tail, ok := s.Tail()
		if !ok {
			return Lookup{}, false
		}
		bs, ok := parseBinarySearchTable(tail, 4)
		if !ok {
			return Lookup{}, false
		}
		return Lookup{format: 6, bsearch: bs}, true
	case 8:
		firstGlyph, ok := s.ReadU16()
		if !ok {
			return Lookup{}, false
		}
		glyphCount, ok := s.ReadU16()
		if !ok {
			return Lookup{}, false
		}
		values, ok := s.ReadArray16(2, glyphCount)
		if !ok {
			return Lookup{}, false
		}
		return Lookup{format: 8, format8First: firstGlyph, format8Values: values}, true
	case 10:
		valueSize, ok := s.ReadU16()
		if !ok {
			return Lookup{}, false
		}
		firstGlyph, ok := s.ReadU16()
		if !ok {
			return Lookup{}, false
		}
		glyphCount, ok := s.ReadU16()
		if !ok {
			return Lookup{}, false
		}
		tail, ok := s.Tail()
		if !ok {
			return Lookup{}, false
		}
		if valueSize != 1 && valueSize != 2 && valueSize != 4 {
			// value_size == 8 is a recognised on-disk format but is not
			// implemented; every other size is simply invalid.
			return Lookup{}, false
		}
		return Lookup{
			format:             10,
			format10ValueSize:  valueSize,
			format10FirstGlyph: firstGlyph,
			format10GlyphCount: glyphCount,
			format10Data:       tail,
		}, true
	default:
		return Lookup{}, false
	}
}

// Value returns the value associated with glyph, or false if glyph falls
// outside every range the lookup defines.
func (l Lookup) Value(glyph parser.GlyphID) (uint16, bool) {
	switch l.format {
	case 0:
		return l.format0.GetU16(uint16(glyph))
	case 2:
		seg, ok := l.bsearch.get(glyph)
		if !ok {
			return 0, false
		}
		return seg.value, true
	case 4:
		seg, ok := l.bsearch.get(glyph)
		if !ok {
			return 0, false
		}
		if uint16(glyph) < seg.firstGlyph {
			return 0, false
		}
		index := uint16(glyph) - seg.firstGlyph
		offset := int(seg.value) + 2*int(index)
		return parser.ReadU16At(l.format4Data, offset)
	case 6:
		seg, ok := l.bsearch.get(glyph)
		if !ok {
			return 0, false
		}
		return seg.value, true
	case 8:
		if uint16(glyph) < l.format8First {
			return 0, false
		}
		idx := uint16(glyph) - l.format8First
		return l.format8Values.GetU16(idx)
	case 10:
		if uint16(glyph) < l.format10FirstGlyph {
			return 0, false
		}
		idx := uint16(glyph) - l.format10FirstGlyph
		if idx >= l.format10GlyphCount {
			return 0, false
		}
		switch l.format10ValueSize {
		case 1:
			v, ok := parser.ReadU8At(l.format10Data, int(idx))
			return uint16(v), ok
		case 2:
			return parser.ReadU16At(l.format10Data, int(idx)*2)
		case 4:
			v, ok := parser.ReadU32At(l.format10Data, int(idx)*4)
			return uint16(v), ok
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}

// lookupSegment is the common shape of format-2/4's {last, first, value}
// and format-6's {glyph, value} records, normalized to one struct so a
// single binarySearchTable can serve all three formats.
type lookupSegment struct {
	firstGlyph, lastGlyph uint16
	value                 uint16
	isSingle              bool // format 6: exact-match instead of a range
}

func (s lookupSegment) isTermination() bool {
	if s.isSingle {
		return s.firstGlyph == 0xFFFF
	}
	return s.firstGlyph == 0xFFFF && s.lastGlyph == 0xFFFF
}

// compare reports -1/0/+1 analogous to a three-way comparison of glyph
// against the segment's range (or single value).
func (s lookupSegment) compare(glyph uint16) int {
	if s.isSingle {
		switch {
		case glyph < s.firstGlyph:
			return -1
		case glyph > s.firstGlyph:
			return 1
		default:
			return 0
		}
	}
	switch {
	case glyph < s.firstGlyph:
		return -1
	case glyph > s.lastGlyph:
		return 1
	default:
		return 0
	}
}

// binarySearchTable is the on-disk "binary searching table" shape shared by
// AAT lookup formats 2, 4 and 6: a header giving the segment stride and
// count, followed by that many fixed-size segments. The sentinel segment
// (key fields == 0xFFFF) is parsed but excluded from the searchable range.
type binarySearchTable struct {
	arr         parser.LazyArray16
	segmentSize int
	searchLen   uint16 // segments participating in the binary search, sentinel excluded
}

func parseBinarySearchTable(data []byte, recordSize int) (binarySearchTable, bool) {
	s := parser.NewStream(data)
	segmentSize, ok := s.ReadU16()
	if !ok {
		return binarySearchTable{}, false
	}
	numberOfSegments, ok := s.ReadU16()
	if !ok {
		return binarySearchTable{}, false
	}
	s.Advance(6) // searchRange + entrySelector + rangeShift

	if int(segmentSize) != recordSize {
		return binarySearchTable{}, false
	}
	if numberOfSegments == 0 {
		return binarySearchTable{}, false
	}

	arr, ok := s.ReadArray16(recordSize, numberOfSegments)
	if !ok {
		return binarySearchTable{}, false
	}

	last, ok := arr.Last()
	if !ok {
		return binarySearchTable{}, false
	}
	searchLen := numberOfSegments
	if isTerminationRecord(last, recordSize) {
		searchLen--
	}
	if searchLen == 0 {
		return binarySearchTable{}, false
	}
	return binarySearchTable{arr: arr, segmentSize: recordSize, searchLen: searchLen}, true
}

func isTerminationRecord(b []byte, recordSize int) bool {
	switch recordSize {
	case 6: // {last, first, value}
		last, _ := parser.ReadU16At(b, 0)
		first, _ := parser.ReadU16At(b, 2)
		return last == 0xFFFF && first == 0xFFFF
	case 4: // {glyph, value}
		glyph, _ := parser.ReadU16At(b, 0)
		return glyph == 0xFFFF
	}
	return false
}

// get performs the AAT binary search: maintain inclusive bounds over the
// searchable (sentinel-excluded) range, comparing by each record's
// range/single-value semantics.
func (bt binarySearchTable) get(glyph parser.GlyphID) (lookupSegment, bool) {
	lo, hi := 0, int(bt.searchLen)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		rec, ok := bt.arr.Get(uint16(mid))
		if !ok {
			return lookupSegment{}, false
		}
		seg := decodeSegment(rec, bt.segmentSize)
		switch seg.compare(uint16(glyph)) {
		case -1:
			hi = mid - 1
		case 1:
			lo = mid + 1
		default:
			return seg, true
		}
	}
	return lookupSegment{}, false
}

func decodeSegment(b []byte, recordSize int) lookupSegment {
	switch recordSize {
	case 6:
		last, _ := parser.ReadU16At(b, 0)
		first, _ := parser.ReadU16At(b, 2)
		value, _ := parser.ReadU16At(b, 4)
		return lookupSegment{firstGlyph: first, lastGlyph: last, value: value}
	case 4:
		glyph, _ := parser.ReadU16At(b, 0)
		value, _ := parser.ReadU16At(b, 2)
		return lookupSegment{firstGlyph: glyph, value: value, isSingle: true}
	}
	return lookupSegment{}
}
