package tables

import "github.com/maxmelander/ttf-parser/parser"

// mvarRecord is one `MVAR` value record: a metric tag bound to a
// (outer, inner) delta-set index pair.
type mvarRecord struct {
	tag                        parser.Tag
	outerIndex, innerIndex     uint16
}

// Mvar is the metrics-variations table: per-metric deltas layered on top
// of the scalar values `hhea`/`OS/2`/`post` otherwise supply.
type Mvar struct {
	store   itemVariationStore
	records []mvarRecord
}

// Well-known MVAR value tags (the ones the ascender/descender/line-gap
// fallback chain and a handful of OS/2-derived metrics consult).
var (
	MvarTagHasc = parser.NewTag('h', 'a', 's', 'c')
	MvarTagHdsc = parser.NewTag('h', 'd', 's', 'c')
	MvarTagHlgp = parser.NewTag('h', 'l', 'g', 'p')
	MvarTagHcla = parser.NewTag('h', 'c', 'l', 'a')
	MvarTagHcld = parser.NewTag('h', 'c', 'l', 'd')
	MvarTagXhgt = parser.NewTag('x', 'h', 'g', 't')
	MvarTagCpht = parser.NewTag('c', 'p', 'h', 't')
	MvarTagUnds = parser.NewTag('u', 'n', 'd', 's')
	MvarTagUndo = parser.NewTag('u', 'n', 'd', 'o')
	MvarTagStro = parser.NewTag('s', 't', 'r', 'o')
	MvarTagStrs = parser.NewTag('s', 't', 'r', 's')
)

// ParseMvar parses `MVAR`.
func ParseMvar(data []byte) (Mvar, bool) {
	if len(data) < 12 {
		return Mvar{}, false
	}
	s := parser.NewStream(data)
	s.Advance(4) // majorVersion, minorVersion
	s.SkipU16()  // reserved
	valueRecordSize, ok := s.ReadU16()
	if !ok || valueRecordSize < 8 {
		return Mvar{}, false
	}
	valueRecordCount, ok := s.ReadU16()
	if !ok {
		return Mvar{}, false
	}
	itemVarStoreOffset, ok := s.ReadU16()
	if !ok {
		return Mvar{}, false
	}

	records := make([]mvarRecord, 0, valueRecordCount)
	for i := 0; i < int(valueRecordCount); i++ {
		rec, ok := s.ReadBytes(int(valueRecordSize))
		if !ok {
			return Mvar{}, false
		}
		tag, _ := parser.ReadU32At(rec, 0)
		outer, _ := parser.ReadU16At(rec, 4)
		inner, _ := parser.ReadU16At(rec, 6)
		records = append(records, mvarRecord{tag: parser.Tag(tag), outerIndex: outer, innerIndex: inner})
	}

	var store itemVariationStore
	if itemVarStoreOffset != 0 && int(itemVarStoreOffset) < len(data) {
		store, _ = parseItemVariationStore(data[itemVarStoreOffset:])
	}
	return Mvar{store: store, records: records}, true
}

// Delta returns the variation delta for tag, or false if MVAR carries no
// record for it.
func (m Mvar) Delta(tag parser.Tag, coords []float32) (float32, bool) {
	lo, hi := 0, len(m.records)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case m.records[mid].tag < tag:
			lo = mid + 1
		case m.records[mid].tag > tag:
			hi = mid
		default:
			r := m.records[mid]
			return m.store.delta(r.outerIndex, r.innerIndex, coords), true
		}
	}
	return 0, false
}
