package tables

import "github.com/maxmelander/ttf-parser/parser"

// VariationAxis is one `fvar` axis record.
type VariationAxis struct {
	Tag                       parser.Tag
	MinValue, Default, MaxValue float32
	Index                     int
}

// Fvar is the font-variations table: the axis list a variable font
// exposes to SetVariation.
type Fvar struct {
	axes []VariationAxis
}

// ParseFvar parses `fvar`.
func ParseFvar(data []byte) (Fvar, bool) {
	if len(data) < 16 {
		return Fvar{}, false
	}
	s := parser.NewStream(data)
	s.Advance(4) // majorVersion, minorVersion
	axesArrayOffset, ok := s.ReadU16()
	if !ok {
		return Fvar{}, false
	}
	s.SkipU16() // reserved
	axisCount, ok := s.ReadU16()
	if !ok {
		return Fvar{}, false
	}
	axisSize, ok := s.ReadU16()
	if !ok || axisSize < 20 {
		return Fvar{}, false
	}
	if int(axesArrayOffset) >= len(data) {
		return Fvar{}, false
	}

	axes := make([]VariationAxis, 0, axisCount)
	s2 := parser.NewStream(data[axesArrayOffset:])
	for i := 0; i < int(axisCount); i++ {
		rec, ok := s2.ReadBytes(int(axisSize))
		if !ok {
			break
		}
		tag, _ := parser.ReadU32At(rec, 0)
		minV, _ := parser.ReadU32At(rec, 4)
		defV, _ := parser.ReadU32At(rec, 8)
		maxV, _ := parser.ReadU32At(rec, 12)
		axes = append(axes, VariationAxis{
			Tag:      parser.Tag(tag),
			MinValue: fixed16_16ToFloat(int32(minV)),
			Default:  fixed16_16ToFloat(int32(defV)),
			MaxValue: fixed16_16ToFloat(int32(maxV)),
			Index:    i,
		})
	}
	return Fvar{axes: axes}, true
}

func fixed16_16ToFloat(v int32) float32 { return float32(v) / 65536 }

// Axis returns the axis record for tag, and its index into the axis
// array, or false if no axis carries that tag.
func (f Fvar) Axis(tag parser.Tag) (VariationAxis, bool) {
	for _, a := range f.axes {
		if a.Tag == tag {
			return a, true
		}
	}
	return VariationAxis{}, false
}

// Axes returns every axis, in `fvar` order.
func (f Fvar) Axes() []VariationAxis { return f.axes }

// Normalize maps a user-space value on axis to a normalized [-1, 1]
// coordinate, per the OpenType piecewise-linear normalization algorithm.
func (a VariationAxis) Normalize(value float32) float32 {
	switch {
	case value < a.Default:
		if a.MinValue >= a.Default {
			return 0
		}
		if value < a.MinValue {
			value = a.MinValue
		}
		return (value - a.Default) / (a.Default - a.MinValue)
	case value > a.Default:
		if a.MaxValue <= a.Default {
			return 0
		}
		if value > a.MaxValue {
			value = a.MaxValue
		}
		return (value - a.Default) / (a.MaxValue - a.Default)
	default:
		return 0
	}
}
