package sfnt

import "github.com/maxmelander/ttf-parser/tables"

// maxVariationAxes bounds the normalized-coordinate vector a Face carries:
// no production variable font defines more, and it keeps VarCoords a
// fixed-size, zero-allocation value.
const maxVariationAxes = 32

// VarCoords is a face's current position in its variation design space:
// one normalized coordinate in [-1, 1] per `fvar` axis, in axis order.
type VarCoords struct {
	raw    [maxVariationAxes]float32 // normalized, pre-avar
	values [maxVariationAxes]float32 // normalized, post-avar: what callers see
	length int
}

func (c *VarCoords) initLength(n int) {
	if n > maxVariationAxes {
		n = maxVariationAxes
	}
	c.length = n
	for i := 0; i < n; i++ {
		c.raw[i] = 0
		c.values[i] = 0
	}
}

// Slice returns the live coordinate vector, one entry per axis.
func (c *VarCoords) Slice() []float32 { return c.values[:c.length] }

// NonDefault reports whether any coordinate has moved off its axis default
// (0, in normalized space).
func (c *VarCoords) NonDefault() bool {
	for _, v := range c.values[:c.length] {
		if v != 0 {
			return true
		}
	}
	return false
}

// VariationAxes returns the face's `fvar` axis list, or nil if the face
// carries no `fvar` table.
func (f *Face) VariationAxes() []tables.VariationAxis {
	if !f.tables.HasFvar {
		return nil
	}
	return f.tables.Fvar.Axes()
}

// VariationCoordinates returns the face's current normalized coordinate
// vector, one value per `fvar` axis, in axis order.
func (f *Face) VariationCoordinates() []float32 {
	return f.coords.Slice()
}

// HasNonDefaultVariationCoordinates reports whether SetVariation has moved
// any axis away from its default.
func (f *Face) HasNonDefaultVariationCoordinates() bool {
	return f.coords.NonDefault()
}

// SetVariation moves axis to value (in the axis's user units, e.g. 400 for
// a "wght" axis), normalizing through `fvar` and then remapping through
// `avar` if present. It reports false without effect if the face has no
// `fvar` table, axis isn't one of its axes, or the axis's `fvar` index is
// out of range.
func (f *Face) SetVariation(axis Tag, value float32) bool {
	if !f.tables.HasFvar {
		return false
	}
	a, ok := f.tables.Fvar.Axis(axis)
	if !ok || a.Index < 0 || a.Index >= maxVariationAxes || a.Index >= f.coords.length {
		return false
	}

	f.coords.raw[a.Index] = a.Normalize(value)

	for i := 0; i < f.coords.length; i++ {
		if f.tables.HasAvar {
			f.coords.values[i] = f.tables.Avar.Remap(i, f.coords.raw[i])
		} else {
			f.coords.values[i] = f.coords.raw[i]
		}
	}
	return true
}
