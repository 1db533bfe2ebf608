package tables

import "github.com/maxmelander/ttf-parser/parser"

// Hvar is the horizontal-metrics variation table (shared layout with
// `VVAR` for vertical metrics): an item variation store plus optional
// delta-set index maps for advance width, left side bearing and right
// side bearing.
type Hvar struct {
	store        itemVariationStore
	advanceMap   deltaSetIndexMap
	lsbMap       deltaSetIndexMap
	rsbMap       deltaSetIndexMap
	hasAdvanceMap, hasLsbMap, hasRsbMap bool
}

// ParseHvar parses `HVAR`/`VVAR`.
func ParseHvar(data []byte) (Hvar, bool) {
	if len(data) < 20 {
		return Hvar{}, false
	}
	s := parser.NewStream(data)
	s.Advance(4) // majorVersion, minorVersion
	itemVarStoreOffset, ok := s.ReadU32()
	if !ok {
		return Hvar{}, false
	}
	advanceMapOffset, ok := s.ReadU32()
	if !ok {
		return Hvar{}, false
	}
	lsbMapOffset, ok := s.ReadU32()
	if !ok {
		return Hvar{}, false
	}
	rsbMapOffset, ok := s.ReadU32()
	if !ok {
		return Hvar{}, false
	}

	if int(itemVarStoreOffset) >= len(data) {
		return Hvar{}, false
	}
	store, ok := parseItemVariationStore(data[itemVarStoreOffset:])
	if !ok {
		return Hvar{}, false
	}

	h := Hvar{store: store}
	if advanceMapOffset != 0 && int(advanceMapOffset) < len(data) {
		if m, ok := parseDeltaSetIndexMap(data[advanceMapOffset:]); ok {
			h.advanceMap, h.hasAdvanceMap = m, true
		}
	}
	if lsbMapOffset != 0 && int(lsbMapOffset) < len(data) {
		if m, ok := parseDeltaSetIndexMap(data[lsbMapOffset:]); ok {
			h.lsbMap, h.hasLsbMap = m, true
		}
	}
	if rsbMapOffset != 0 && int(rsbMapOffset) < len(data) {
		if m, ok := parseDeltaSetIndexMap(data[rsbMapOffset:]); ok {
			h.rsbMap, h.hasRsbMap = m, true
		}
	}
	return h, true
}

// AdvanceOffset returns the variation delta to add to glyph's base
// advance width (or height, for VVAR), in font design units.
func (h Hvar) AdvanceOffset(glyph parser.GlyphID, coords []float32) float32 {
	outer, inner := h.resolve(h.advanceMap, h.hasAdvanceMap, uint32(glyph))
	return h.store.delta(outer, inner, coords)
}

// LsbOffset returns the variation delta for glyph's left (or top) side
// bearing, or false if this table carries no such map.
func (h Hvar) LsbOffset(glyph parser.GlyphID, coords []float32) (float32, bool) {
	if !h.hasLsbMap {
		return 0, false
	}
	outer, inner := h.resolve(h.lsbMap, true, uint32(glyph))
	return h.store.delta(outer, inner, coords), true
}

func (h Hvar) resolve(m deltaSetIndexMap, has bool, index uint32) (uint16, uint16) {
	if !has {
		return 0, uint16(index)
	}
	outer, inner, ok := m.get(index)
	if !ok {
		return 0, 0
	}
	return outer, inner
}
