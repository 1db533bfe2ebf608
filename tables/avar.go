package tables

import "github.com/maxmelander/ttf-parser/parser"

// avarSegmentMap is one axis's piecewise remap: a sorted list of (from,
// to) normalized-coordinate pairs.
type avarSegmentMap struct {
	pairs []avarPair
}

type avarPair struct {
	from, to float32
}

// Avar is the axis-variations table: a per-axis remap applied to
// already-normalized fvar coordinates.
type Avar struct {
	maps []avarSegmentMap
}

// ParseAvar parses `avar`.
func ParseAvar(data []byte) (Avar, bool) {
	if len(data) < 8 {
		return Avar{}, false
	}
	s := parser.NewStream(data)
	s.Advance(4) // majorVersion, minorVersion
	s.SkipU16()  // reserved
	axisCount, ok := s.ReadU16()
	if !ok {
		return Avar{}, false
	}

	maps := make([]avarSegmentMap, 0, axisCount)
	for i := 0; i < int(axisCount); i++ {
		count, ok := s.ReadU16()
		if !ok {
			return Avar{}, false
		}
		pairs := make([]avarPair, 0, count)
		for j := 0; j < int(count); j++ {
			from, ok1 := s.ReadF2Dot14()
			to, ok2 := s.ReadF2Dot14()
			if !ok1 || !ok2 {
				return Avar{}, false
			}
			pairs = append(pairs, avarPair{from: from, to: to})
		}
		maps = append(maps, avarSegmentMap{pairs: pairs})
	}
	return Avar{maps: maps}, true
}

// Remap applies the axis-th segment map to a normalized coordinate,
// linearly interpolating between the bracketing (from, to) pairs. Axes
// past the table's axis count, or with fewer than two pairs, pass
// through unchanged.
func (a Avar) Remap(axis int, coord float32) float32 {
	if axis < 0 || axis >= len(a.maps) {
		return coord
	}
	pairs := a.maps[axis].pairs
	if len(pairs) < 2 {
		return coord
	}
	if coord <= pairs[0].from {
		return coord + (pairs[0].to - pairs[0].from)
	}
	last := pairs[len(pairs)-1]
	if coord >= last.from {
		return coord + (last.to - last.from)
	}
	for i := 0; i+1 < len(pairs); i++ {
		lo, hi := pairs[i], pairs[i+1]
		if coord >= lo.from && coord <= hi.from {
			if hi.from == lo.from {
				return lo.to
			}
			t := (coord - lo.from) / (hi.from - lo.from)
			return lo.to + t*(hi.to-lo.to)
		}
	}
	return coord
}
