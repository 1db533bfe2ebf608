package tables

import "github.com/maxmelander/ttf-parser/parser"

// KerningPair is one (left, right) glyph pair and its kerning adjustment,
// in font design units.
type KerningPair struct {
	Left, Right parser.GlyphID
	Value       int16
}

// KernSubtable is one classic `kern` format-0 subtable: a sorted array of
// kerning pairs, binary-searchable by (left, right).
type KernSubtable struct {
	pairs      parser.LazyArray16 // stride 6: uint16 left, uint16 right, int16 value
	Horizontal bool
}

// Kern is the legacy `kern` table (version 0 header only; the rarely-seen
// version 1 Apple header is not recognised).
type Kern struct {
	data       []byte
	count      uint16
	firstTable int // byte offset of the first subtable header
}

// ParseKern parses the `kern` table header.
func ParseKern(data []byte) (Kern, bool) {
	if len(data) < 4 {
		return Kern{}, false
	}
	s := parser.NewStream(data)
	s.SkipU16() // version
	count, ok := s.ReadU16()
	if !ok {
		return Kern{}, false
	}
	return Kern{data: data, count: count, firstTable: 4}, true
}

// Subtables iterates this table's subtables, calling fn with each one fn
// returns true for to continue.
func (k Kern) Subtables(fn func(KernSubtable) bool) {
	offset := k.firstTable
	for i := uint16(0); i < k.count; i++ {
		if offset+6 > len(k.data) {
			return
		}
		length, _ := parser.ReadU16At(k.data, offset+2)
		coverage, _ := parser.ReadU16At(k.data, offset+4)
		format := coverage >> 8
		horizontal := coverage&1 != 0

		headerEnd := offset + 6
		subtableEnd := offset + int(length)
		if subtableEnd > len(k.data) || subtableEnd < headerEnd {
			return
		}

		if format == 0 {
			if headerEnd+8 > subtableEnd {
				offset = subtableEnd
				continue
			}
			nPairs, _ := parser.ReadU16At(k.data, headerEnd)
			s := parser.NewStream(k.data[headerEnd+8 : subtableEnd])
			pairs, ok := s.ReadArray16(6, nPairs)
			if ok {
				if !fn(KernSubtable{pairs: pairs, Horizontal: horizontal}) {
					return
				}
			}
		}
		offset = subtableEnd
	}
}

// Get returns the kerning value for (left, right), or false if the pair
// is absent.
func (t KernSubtable) Get(left, right parser.GlyphID) (int16, bool) {
	key := uint32(left)<<16 | uint32(right)
	_, b, ok := t.pairs.BinarySearch(func(elem []byte) int {
		l, _ := parser.ReadU16At(elem, 0)
		r, _ := parser.ReadU16At(elem, 2)
		v := uint32(l)<<16 | uint32(r)
		switch {
		case key < v:
			return -1
		case key > v:
			return 1
		default:
			return 0
		}
	})
	if !ok {
		return 0, false
	}
	v, _ := parser.ReadU16At(b, 4)
	return int16(v), true
}
