package parser

// OutlineBuilder receives the segments of a glyph outline as it is
// decoded. Implementations must not retain coordinate slices beyond the
// call (none are given a reference to retain in the first place: every
// argument is a plain float32).
type OutlineBuilder interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(x1, y1, x, y float32)
	CurveTo(x1, y1, x2, y2, x, y float32)
	Close()
}
