package tables

import "github.com/maxmelander/ttf-parser/parser"

// Glyf is the glyph outline table, indexed indirectly through the
// sibling `loca` table.
type Glyf struct {
	loca Loca
	data []byte
}

// ParseGlyf pairs raw `glyf` data with the `loca` table that indexes it.
func ParseGlyf(loca Loca, data []byte) Glyf {
	return Glyf{loca: loca, data: data}
}

// maxCompositeDepth bounds recursive composite-glyph resolution, guarding
// against a cyclic or pathologically deep component chain.
const maxCompositeDepth = 8

const (
	glyfFlagOnCurve      = 1 << 0
	glyfFlagXShort       = 1 << 1
	glyfFlagYShort       = 1 << 2
	glyfFlagRepeat       = 1 << 3
	glyfFlagXSame        = 1 << 4
	glyfFlagXPositive    = 1 << 4
	glyfFlagYSame        = 1 << 5
	glyfFlagYPositive    = 1 << 5
)

const (
	compArgsAreWords    = 1 << 0
	compArgsAreXY       = 1 << 1
	compRoundXY         = 1 << 2
	compHaveScale       = 1 << 3
	compMoreComponents  = 1 << 5
	compHaveXYScale     = 1 << 6
	compHave2x2         = 1 << 7
	compHaveInstructions = 1 << 8
)

// Outline emits glyph's outline to builder, resolving composite glyphs
// recursively up to maxCompositeDepth. It returns false if glyph is out of
// range or malformed; an empty outline (e.g. the space glyph) is reported
// by returning true having emitted no segments.
func (g Glyf) Outline(glyph parser.GlyphID, builder parser.OutlineBuilder) bool {
	return g.outline(glyph, 0, 0, builder, 0)
}

func (g Glyf) outline(glyph parser.GlyphID, dx, dy float32, builder parser.OutlineBuilder, depth int) bool {
	if depth > maxCompositeDepth {
		return false
	}
	start, end, has := g.loca.Range(glyph)
	if !has {
		i := int(glyph)
		if i+1 >= len(g.loca.offsets) || g.loca.offsets[i+1] < g.loca.offsets[i] {
			return false // out of range, or a malformed loca range
		}
		return true // empty glyph, not an error
	}
	if int(end) > len(g.data) {
		return false
	}
	data := g.data[start:end]

	s := parser.NewStream(data)
	numberOfContours, ok := s.ReadI16()
	if !ok {
		return false
	}
	s.Advance(8) // xMin, yMin, xMax, yMax

	if numberOfContours >= 0 {
		return g.simpleOutline(&s, int(numberOfContours), dx, dy, builder)
	}
	return g.compositeOutline(&s, dx, dy, builder, depth)
}

func (g Glyf) simpleOutline(s *parser.Stream, numberOfContours int, dx, dy float32, builder parser.OutlineBuilder) bool {
	endPts := make([]uint16, numberOfContours)
	for i := range endPts {
		v, ok := s.ReadU16()
		if !ok {
			return false
		}
		if i > 0 && v < endPts[i-1] {
			return false
		}
		endPts[i] = v
	}
	if numberOfContours == 0 {
		return true
	}
	numberOfPoints := int(endPts[numberOfContours-1]) + 1

	insLen, ok := s.ReadU16()
	if !ok {
		return false
	}
	if !s.AdvanceChecked(int(insLen)) {
		return false
	}

	flags := make([]byte, 0, numberOfPoints)
	for len(flags) < numberOfPoints {
		f, ok := s.ReadU8()
		if !ok {
			return false
		}
		flags = append(flags, f)
		if f&glyfFlagRepeat != 0 {
			repeat, ok := s.ReadU8()
			if !ok {
				return false
			}
			for i := byte(0); i < repeat && len(flags) < numberOfPoints; i++ {
				flags = append(flags, f)
			}
		}
	}

	xs := make([]float32, numberOfPoints)
	x := int32(0)
	for i, f := range flags {
		if f&glyfFlagXShort != 0 {
			v, ok := s.ReadU8()
			if !ok {
				return false
			}
			if f&glyfFlagXPositive != 0 {
				x += int32(v)
			} else {
				x -= int32(v)
			}
		} else if f&glyfFlagXSame == 0 {
			v, ok := s.ReadI16()
			if !ok {
				return false
			}
			x += int32(v)
		}
		xs[i] = float32(x) + dx
	}

	ys := make([]float32, numberOfPoints)
	y := int32(0)
	for i, f := range flags {
		if f&glyfFlagYShort != 0 {
			v, ok := s.ReadU8()
			if !ok {
				return false
			}
			if f&glyfFlagYPositive != 0 {
				y += int32(v)
			} else {
				y -= int32(v)
			}
		} else if f&glyfFlagYSame == 0 {
			v, ok := s.ReadI16()
			if !ok {
				return false
			}
			y += int32(v)
		}
		ys[i] = float32(y) + dy
	}

	start := 0
	for _, end := range endPts {
		emitContour(flags[start:int(end)+1], xs[start:int(end)+1], ys[start:int(end)+1], builder)
		start = int(end) + 1
	}
	return true
}

// emitContour converts a TrueType on/off-curve point run into MoveTo/
// LineTo/QuadTo calls, synthesizing the implied on-curve midpoint between
// two consecutive off-curve points.
func emitContour(flags []byte, xs, ys []float32, builder parser.OutlineBuilder) {
	n := len(flags)
	if n == 0 {
		return
	}
	onCurve := func(i int) bool { return flags[i%n]&glyfFlagOnCurve != 0 }
	pt := func(i int) (float32, float32) { return xs[i%n], ys[i%n] }
	mid := func(i, j int) (float32, float32) {
		ax, ay := pt(i)
		bx, by := pt(j)
		return (ax + bx) / 2, (ay + by) / 2
	}

	start := 0
	var startX, startY float32
	if onCurve(0) {
		startX, startY = pt(0)
	} else if onCurve(n - 1) {
		startX, startY = pt(n - 1)
		start = n - 1
	} else {
		startX, startY = mid(0, n-1)
	}
	builder.MoveTo(startX, startY)

	curX, curY := startX, startY
	i := start
	for k := 0; k < n; k++ {
		next := i + 1
		if onCurve(next) {
			nx, ny := pt(next)
			builder.LineTo(nx, ny)
			curX, curY = nx, ny
		} else {
			cx, cy := pt(next)
			var ex, ey float32
			if onCurve(next + 1) {
				ex, ey = pt(next + 1)
				builder.QuadTo(cx, cy, ex, ey)
				curX, curY = ex, ey
				k++
				i++
			} else {
				ex, ey = mid(next, next+1)
				builder.QuadTo(cx, cy, ex, ey)
				curX, curY = ex, ey
			}
		}
		i++
	}
	_ = curX
	_ = curY
	builder.Close()
}

func (g Glyf) compositeOutline(s *parser.Stream, dx, dy float32, builder parser.OutlineBuilder, depth int) bool {
	for {
		flags, ok := s.ReadU16()
		if !ok {
			return false
		}
		glyphIndex, ok := s.ReadU16()
		if !ok {
			return false
		}

		var argX, argY float32
		if flags&compArgsAreWords != 0 {
			a, ok := s.ReadI16()
			if !ok {
				return false
			}
			b, ok := s.ReadI16()
			if !ok {
				return false
			}
			argX, argY = float32(a), float32(b)
		} else {
			a, ok := s.ReadI8()
			if !ok {
				return false
			}
			b, ok := s.ReadI8()
			if !ok {
				return false
			}
			argX, argY = float32(a), float32(b)
		}
		if flags&compArgsAreXY == 0 {
			// Point-matching composition isn't supported; treat as no offset.
			argX, argY = 0, 0
		}

		switch {
		case flags&compHave2x2 != 0:
			s.Advance(8)
		case flags&compHaveXYScale != 0:
			s.Advance(4)
		case flags&compHaveScale != 0:
			s.Advance(2)
		}

		if !g.outline(parser.GlyphID(glyphIndex), dx+argX, dy+argY, builder, depth+1) {
			return false
		}

		if flags&compMoreComponents == 0 {
			return true
		}
	}
}
