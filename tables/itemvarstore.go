package tables

import "github.com/maxmelander/ttf-parser/parser"

// itemVariationStore is the OpenType Item Variation Store: a list of
// variation regions (one F2Dot14 peak/start/end triple per axis) plus a
// set of item-variation-data subtables, each holding per-item delta
// rows keyed into a subset of those regions.
type itemVariationStore struct {
	data              []byte
	regions           []variationRegion
	dataSubtables     []itemVariationData
}

type variationRegion struct {
	axes []regionAxis
}

type regionAxis struct {
	start, peak, end float32
}

type itemVariationData struct {
	itemCount      uint16
	shortDeltaCount uint16
	regionIndexes  []uint16
	deltaSets      []byte // itemCount rows of (shortDeltaCount*2 + (regionCount-shortDeltaCount)) bytes
	regionCount    int
}

func parseItemVariationStore(data []byte) (itemVariationStore, bool) {
	if len(data) < 8 {
		return itemVariationStore{}, false
	}
	s := parser.NewStream(data)
	s.SkipU16() // format, always 1
	regionListOffset, ok := s.ReadU32()
	if !ok {
		return itemVariationStore{}, false
	}
	itemVariationDataCount, ok := s.ReadU16()
	if !ok {
		return itemVariationStore{}, false
	}
	offsets := make([]uint32, itemVariationDataCount)
	for i := range offsets {
		v, ok := s.ReadU32()
		if !ok {
			return itemVariationStore{}, false
		}
		offsets[i] = v
	}

	if int(regionListOffset) >= len(data) {
		return itemVariationStore{}, false
	}
	regions, ok := parseVariationRegionList(data[regionListOffset:])
	if !ok {
		return itemVariationStore{}, false
	}

	subtables := make([]itemVariationData, 0, len(offsets))
	for _, off := range offsets {
		if int(off) >= len(data) {
			subtables = append(subtables, itemVariationData{})
			continue
		}
		ivd, ok := parseItemVariationData(data[off:])
		if !ok {
			subtables = append(subtables, itemVariationData{})
			continue
		}
		subtables = append(subtables, ivd)
	}

	return itemVariationStore{data: data, regions: regions, dataSubtables: subtables}, true
}

func parseVariationRegionList(data []byte) ([]variationRegion, bool) {
	s := parser.NewStream(data)
	axisCount, ok := s.ReadU16()
	if !ok {
		return nil, false
	}
	regionCount, ok := s.ReadU16()
	if !ok {
		return nil, false
	}
	regions := make([]variationRegion, 0, regionCount)
	for i := 0; i < int(regionCount); i++ {
		axes := make([]regionAxis, 0, axisCount)
		for j := 0; j < int(axisCount); j++ {
			start, ok1 := s.ReadF2Dot14()
			peak, ok2 := s.ReadF2Dot14()
			end, ok3 := s.ReadF2Dot14()
			if !ok1 || !ok2 || !ok3 {
				return nil, false
			}
			axes = append(axes, regionAxis{start: start, peak: peak, end: end})
		}
		regions = append(regions, variationRegion{axes: axes})
	}
	return regions, true
}

func parseItemVariationData(data []byte) (itemVariationData, bool) {
	s := parser.NewStream(data)
	itemCount, ok := s.ReadU16()
	if !ok {
		return itemVariationData{}, false
	}
	shortDeltaCount, ok := s.ReadU16()
	if !ok {
		return itemVariationData{}, false
	}
	regionIndexCount, ok := s.ReadU16()
	if !ok {
		return itemVariationData{}, false
	}
	regionIndexes := make([]uint16, regionIndexCount)
	for i := range regionIndexes {
		v, ok := s.ReadU16()
		if !ok {
			return itemVariationData{}, false
		}
		regionIndexes[i] = v
	}
	rowSize := int(shortDeltaCount)*2 + (int(regionIndexCount) - int(shortDeltaCount))
	if rowSize < 0 {
		return itemVariationData{}, false
	}
	rows, ok := s.ReadBytes(rowSize * int(itemCount))
	if !ok {
		return itemVariationData{}, false
	}
	return itemVariationData{
		itemCount:       itemCount,
		shortDeltaCount: shortDeltaCount,
		regionIndexes:   regionIndexes,
		deltaSets:       rows,
		regionCount:     int(regionIndexCount),
	}, true
}

// scalar computes a region's contribution factor in [0, 1] for the
// given normalized coordinates (one per axis the region covers).
func (r variationRegion) scalar(coords []float32) float32 {
	scalar := float32(1)
	for i, axis := range r.axes {
		var c float32
		if i < len(coords) {
			c = coords[i]
		}
		switch {
		case axis.peak == 0:
			continue
		case c < axis.start || c > axis.end:
			return 0
		case c < axis.peak:
			if axis.peak == axis.start {
				continue
			}
			scalar *= (c - axis.start) / (axis.peak - axis.start)
		case c > axis.peak:
			if axis.peak == axis.end {
				continue
			}
			scalar *= (axis.end - c) / (axis.end - axis.peak)
		}
	}
	return scalar
}

// delta computes the variation-applied delta for (outerIndex, innerIndex)
// given normalized coordinates.
func (s itemVariationStore) delta(outerIndex, innerIndex uint16, coords []float32) float32 {
	if int(outerIndex) >= len(s.dataSubtables) {
		return 0
	}
	ivd := s.dataSubtables[outerIndex]
	if int(innerIndex) >= int(ivd.itemCount) {
		return 0
	}
	rowSize := int(ivd.shortDeltaCount)*2 + (ivd.regionCount - int(ivd.shortDeltaCount))
	off := int(innerIndex) * rowSize
	if off+rowSize > len(ivd.deltaSets) {
		return 0
	}
	row := ivd.deltaSets[off : off+rowSize]

	var total float32
	for i, regionIdx := range ivd.regionIndexes {
		var raw int32
		if i < int(ivd.shortDeltaCount) {
			v, _ := parser.ReadU16At(row, i*2)
			raw = int32(int16(v))
		} else {
			pos := int(ivd.shortDeltaCount)*2 + (i - int(ivd.shortDeltaCount))
			if pos >= len(row) {
				continue
			}
			raw = int32(int8(row[pos]))
		}
		if int(regionIdx) >= len(s.regions) {
			continue
		}
		total += float32(raw) * s.regions[regionIdx].scalar(coords)
	}
	return total
}

// deltaSetIndexMap maps a glyph or metric index to an (outer, inner)
// delta-set pair, per the OpenType DeltaSetIndexMap format.
type deltaSetIndexMap struct {
	entryFormat uint16
	mapCount    uint32
	data        []byte
	headerSize  int
}

func parseDeltaSetIndexMap(data []byte) (deltaSetIndexMap, bool) {
	if len(data) < 4 {
		return deltaSetIndexMap{}, false
	}
	format, _ := parser.ReadU8At(data, 0)
	entryFormat, _ := parser.ReadU8At(data, 1)
	var mapCount uint32
	var headerSize int
	if format == 0 {
		v, ok := parser.ReadU16At(data, 2)
		if !ok {
			return deltaSetIndexMap{}, false
		}
		mapCount = uint32(v)
		headerSize = 4
	} else {
		v, ok := parser.ReadU32At(data, 2)
		if !ok {
			return deltaSetIndexMap{}, false
		}
		mapCount = v
		headerSize = 6
	}
	return deltaSetIndexMap{entryFormat: uint16(entryFormat), mapCount: mapCount, data: data, headerSize: headerSize}, true
}

func (m deltaSetIndexMap) get(index uint32) (outer, inner uint16, ok bool) {
	if index >= m.mapCount {
		if m.mapCount == 0 {
			return 0, 0, false
		}
		index = m.mapCount - 1
	}
	entrySize := int((m.entryFormat>>4)&0x3) + 1
	bitCount := int(m.entryFormat&0xF) + 1
	off := m.headerSize + int(index)*entrySize
	if off+entrySize > len(m.data) {
		return 0, 0, false
	}
	var raw uint32
	for i := 0; i < entrySize; i++ {
		raw = raw<<8 | uint32(m.data[off+i])
	}
	inner = uint16(raw & ((1 << uint(bitCount)) - 1))
	outer = uint16(raw >> uint(bitCount))
	return outer, inner, true
}
