package tables

import (
	"github.com/maxmelander/ttf-parser/aat"
	"github.com/maxmelander/ttf-parser/parser"
)

// KerxSubtable is one subtable of the AAT extended kerning table: either a
// simple sorted-pair format (0) or a state-table-driven format (1), the
// latter built directly on the aat engine shared with `morx`.
type KerxSubtable struct {
	Horizontal bool
	Variation  bool

	pairs parser.LazyArray16 // format 0, stride 6
	state aat.ExtendedStateTable
	isState bool
}

// Kerx is the `kerx` table (version 2 or 4 header).
type Kerx struct {
	data  []byte
	count uint32
}

// ParseKerx parses the `kerx` table header.
func ParseKerx(data []byte) (Kerx, bool) {
	if len(data) < 8 {
		return Kerx{}, false
	}
	s := parser.NewStream(data)
	s.SkipU16() // majorVersion
	s.SkipU16() // minorVersion
	count, ok := s.ReadU32()
	if !ok {
		return Kerx{}, false
	}
	return Kerx{data: data, count: count}, true
}

// Subtables iterates this table's subtables. numberOfGlyphs comes from
// the face's `maxp` table.
func (k Kerx) Subtables(numberOfGlyphs uint16, fn func(KerxSubtable) bool) {
	offset := 8
	for i := uint32(0); i < k.count; i++ {
		if offset+12 > len(k.data) {
			return
		}
		length, _ := parser.ReadU32At(k.data, offset)
		coverage, _ := parser.ReadU32At(k.data, offset+4)
		end := offset + int(length)
		if end > len(k.data) || end < offset+12 {
			return
		}

		format := coverage & 0xFF
		horizontal := coverage&0x80000000 == 0
		variation := coverage&0x20000000 != 0

		body := k.data[offset+12 : end]
		sub := KerxSubtable{Horizontal: horizontal, Variation: variation}
		switch format {
		case 0:
			s := parser.NewStream(body)
			nPairs, ok := s.ReadU32()
			if ok && nPairs <= 0xFFFF {
				s.Advance(12) // searchRange, entrySelector, rangeShift
				pairs, ok := s.ReadArray16(6, uint16(nPairs))
				if ok {
					sub.pairs = pairs
					if !fn(sub) {
						return
					}
				}
			}
		case 1:
			s := parser.NewStream(body)
			st, ok := aat.ParseExtendedStateTable(numberOfGlyphs, 2, &s)
			if ok {
				sub.isState = true
				sub.state = st
				if !fn(sub) {
					return
				}
			}
		}
		offset = end
	}
}

// Get returns the kerning value for (left, right) from a format-0
// subtable. It always reports false for a format-1 (state-table)
// subtable; state-table kerning is driven by State instead.
func (t KerxSubtable) Get(left, right parser.GlyphID) (int16, bool) {
	if t.isState {
		return 0, false
	}
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

// State exposes the underlying state machine for a format-1 subtable, or
// false if this subtable is format 0.
func (t KerxSubtable) State() (aat.ExtendedStateTable, bool) {
	return t.state, t.isState
}
