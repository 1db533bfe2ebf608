package sfnt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed16_16(v float32) []byte {
	b := make([]byte, 4)
	putU32(b, 0, uint32(int32(v*65536)))
	return b
}

func f2dot14(v float32) []byte {
	b := make([]byte, 2)
	putU16(b, 0, uint16(int16(v*16384)))
	return b
}

// buildFvarSingleAxis builds an `fvar` table with one axis.
func buildFvarSingleAxis(tag string, min, def, max float32) []byte {
	header := make([]byte, 16)
	putU16(header, 4, 16)  // axesArrayOffset
	putU16(header, 8, 1)   // axisCount
	putU16(header, 10, 20) // axisSize

	axis := make([]byte, 20)
	copy(axis[0:4], []byte(tag))
	copy(axis[4:8], fixed16_16(min))
	copy(axis[8:12], fixed16_16(def))
	copy(axis[12:16], fixed16_16(max))
	return append(header, axis...)
}

// buildAvarSingleAxis builds an `avar` table remapping one axis through the
// given (from, to) pairs.
func buildAvarSingleAxis(pairs [][2]float32) []byte {
	header := make([]byte, 8)
	putU16(header, 6, 1) // axisCount
	out := append(header, byte(0), byte(len(pairs)))
	for _, p := range pairs {
		out = append(out, f2dot14(p[0])...)
		out = append(out, f2dot14(p[1])...)
	}
	return out
}

func TestSetVariationNormalizesThroughFvar(t *testing.T) {
	tables := minimalFontTables(1000, 1)
	tables["fvar"] = buildFvarSingleAxis("wght", 100, 400, 900)
	data := buildFont(tables)

	f, err := FromSlice(data, 0)
	require.NoError(t, err)

	axes := f.VariationAxes()
	require.Len(t, axes, 1)
	assert.Equal(t, "wght", axes[0].Tag.String())

	assert.True(t, f.SetVariation(NewTag('w', 'g', 'h', 't'), 650))
	coords := f.VariationCoordinates()
	require.Len(t, coords, 1)
	assert.InDelta(t, 0.5, coords[0], 1e-4)
	assert.True(t, f.HasNonDefaultVariationCoordinates())
}

func TestSetVariationUnknownAxis(t *testing.T) {
	tables := minimalFontTables(1000, 1)
	tables["fvar"] = buildFvarSingleAxis("wght", 100, 400, 900)
	data := buildFont(tables)

	f, err := FromSlice(data, 0)
	require.NoError(t, err)
	assert.False(t, f.SetVariation(NewTag('o', 'p', 's', 'z'), 12))
}

func TestSetVariationWithoutFvar(t *testing.T) {
	data := buildFont(minimalFontTables(1000, 1))
	f, err := FromSlice(data, 0)
	require.NoError(t, err)
	assert.False(t, f.SetVariation(NewTag('w', 'g', 'h', 't'), 650))
}

func TestSetVariationRemapsThroughAvar(t *testing.T) {
	tables := minimalFontTables(1000, 1)
	tables["fvar"] = buildFvarSingleAxis("wght", 100, 400, 900)
	tables["avar"] = buildAvarSingleAxis([][2]float32{{0, 0}, {1, 0.8}})
	data := buildFont(tables)

	f, err := FromSlice(data, 0)
	require.NoError(t, err)

	// raw normalized coordinate is 0.5 (as in the no-avar test); avar
	// remaps it by linear interpolation between (0,0) and (1,0.8).
	require.True(t, f.SetVariation(NewTag('w', 'g', 'h', 't'), 650))
	coords := f.VariationCoordinates()
	assert.InDelta(t, 0.4, coords[0], 1e-3)
}

func TestSetVariationDoesNotDoubleRemapOnSubsequentCalls(t *testing.T) {
	fvarData := make([]byte, 16)
	putU16(fvarData, 4, 16)
	putU16(fvarData, 8, 2)
	putU16(fvarData, 10, 20)
	axisA := make([]byte, 20)
	copy(axisA[0:4], []byte("wght"))
	copy(axisA[4:8], fixed16_16(100))
	copy(axisA[8:12], fixed16_16(400))
	copy(axisA[12:16], fixed16_16(900))
	axisB := make([]byte, 20)
	copy(axisB[0:4], []byte("wdth"))
	copy(axisB[4:8], fixed16_16(50))
	copy(axisB[8:12], fixed16_16(100))
	copy(axisB[12:16], fixed16_16(200))
	fvarData = append(fvarData, axisA...)
	fvarData = append(fvarData, axisB...)

	tables := minimalFontTables(1000, 1)
	tables["fvar"] = fvarData
	tables["avar"] = buildAvarSingleAxis([][2]float32{{0, 0}, {1, 0.8}})
	data := buildFont(tables)

	f, err := FromSlice(data, 0)
	require.NoError(t, err)

	f.SetVariation(NewTag('w', 'g', 'h', 't'), 650) // raw[0] = 0.5 -> avar -> 0.4
	first := f.VariationCoordinates()[0]

	f.SetVariation(NewTag('w', 'd', 't', 'h'), 150) // moves a different axis
	second := f.VariationCoordinates()[0]

	// wght's remapped coordinate must not change when a different axis moves.
	assert.InDelta(t, first, second, 1e-6)
}
