package sfnt

import "github.com/maxmelander/ttf-parser/parser"

// magic identifies the kind of SFNT container the first four bytes denote.
type magic int

const (
	magicTrueType magic = iota
	magicOpenType
	magicFontCollection
)

func parseMagic(s *parser.Stream) (magic, bool) {
	v, ok := s.ReadU32()
	if !ok {
		return 0, false
	}
	switch v {
	case 0x00010000, 0x74727565: // version 1.0, or "true"
		return magicTrueType, true
	case 0x4F54544F: // "OTTO"
		return magicOpenType, true
	case 0x74746366: // "ttcf"
		return magicFontCollection, true
	default:
		return 0, false
	}
}

// tableRecord is one entry of a face's table directory:
// {tag, checksum, offset from file start, length}.
type tableRecord struct {
	tag      Tag
	checksum uint32
	offset   uint32
	length   uint32
}

const tableRecordSize = 16

func parseTableRecord(b []byte) (tableRecord, bool) {
	s := parser.NewStream(b)
	tag, ok := s.ReadTag()
	if !ok {
		return tableRecord{}, false
	}
	checksum, ok := s.ReadU32()
	if !ok {
		return tableRecord{}, false
	}
	offset, ok := s.ReadU32()
	if !ok {
		return tableRecord{}, false
	}
	length, ok := s.ReadU32()
	if !ok {
		return tableRecord{}, false
	}
	return tableRecord{tag: tag, checksum: checksum, offset: offset, length: length}, true
}

// tableRecords is the face directory: an ordered sequence of table
// records, sorted by tag (per the OpenType requirement), enabling binary
// search on lookup.
type tableRecords struct {
	arr parser.LazyArray16
}

func readTableRecords(s *parser.Stream, count uint16) (tableRecords, bool) {
	arr, ok := s.ReadArray16(tableRecordSize, count)
	if !ok {
		return tableRecords{}, false
	}
	return tableRecords{arr: arr}, true
}

func (t tableRecords) get(i uint16) (tableRecord, bool) {
	b, ok := t.arr.Get(i)
	if !ok {
		return tableRecord{}, false
	}
	r, ok := parseTableRecord(b)
	return r, ok
}

// find performs a binary search for tag over the (tag-sorted) directory.
func (t tableRecords) find(tag Tag) (tableRecord, bool) {
	_, b, ok := t.arr.BinarySearch(func(elem []byte) int {
		v, _ := parser.ReadU32At(elem, 0)
		switch {
		case uint32(tag) < v:
			return -1
		case uint32(tag) > v:
			return 1
		default:
			return 0
		}
	})
	if !ok {
		return tableRecord{}, false
	}
	return parseTableRecord(b)
}

func (t tableRecords) iter(fn func(tableRecord) bool) {
	t.arr.Iter(func(_ uint16, elem []byte) bool {
		r, ok := parseTableRecord(elem)
		if !ok {
			return false
		}
		return fn(r)
	})
}

// FontsInCollection returns the number of faces stored in a "ttcf" font
// collection, or false if data isn't a font collection.
func FontsInCollection(data []byte) (uint32, bool) {
	s := parser.NewStream(data)
	m, ok := parseMagic(&s)
	if !ok || m != magicFontCollection {
		return 0, false
	}
	s.SkipU32() // version
	return s.ReadU32()
}
