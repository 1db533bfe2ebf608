package sfnt

import (
	"testing"

	"github.com/maxmelander/ttf-parser/parser"
)

// buildCollection wraps a list of standalone font buffers (as produced by
// buildFont) in a "ttcf" collection header. Table-record offsets count from
// the start of the whole file, so each font's records are shifted by the
// font's position in the collection.
func buildCollection(fonts [][]byte) []byte {
	headerSize := 12 + 4*len(fonts)
	header := make([]byte, headerSize)
	putU32(header, 0, 0x74746366) // "ttcf"
	putU32(header, 4, 0x00010000) // version
	putU32(header, 8, uint32(len(fonts)))

	offset := uint32(headerSize)
	var body []byte
	for i, f := range fonts {
		putU32(header, 12+4*i, offset)
		rebased := append([]byte(nil), f...)
		numTables := int(rebased[4])<<8 | int(rebased[5])
		for r := 0; r < numTables; r++ {
			at := 12 + 16*r + 8
			old, _ := parser.ReadU32At(rebased, at)
			putU32(rebased, at, old+offset)
		}
		body = append(body, rebased...)
		offset += uint32(len(f))
	}
	return append(header, body...)
}

func TestFontsInCollection(t *testing.T) {
	fontA := buildFont(minimalFontTables(1000, 1))
	fontB := buildFont(minimalFontTables(2048, 2))
	coll := buildCollection([][]byte{fontA, fontB})

	n, ok := FontsInCollection(coll)
	if !ok || n != 2 {
		t.Fatalf("FontsInCollection: got (%d, %v), want (2, true)", n, ok)
	}
}

func TestFromSliceCollectionSelectsFace(t *testing.T) {
	fontA := buildFont(minimalFontTables(1000, 1))
	fontB := buildFont(minimalFontTables(2048, 2))
	coll := buildCollection([][]byte{fontA, fontB})

	f0, err := FromSlice(coll, 0)
	if err != nil {
		t.Fatalf("FromSlice(coll, 0): %v", err)
	}
	if got, want := f0.UnitsPerEm(), uint16(1000); got != want {
		t.Fatalf("face 0 UnitsPerEm: got %d, want %d", got, want)
	}

	f1, err := FromSlice(coll, 1)
	if err != nil {
		t.Fatalf("FromSlice(coll, 1): %v", err)
	}
	if got, want := f1.UnitsPerEm(), uint16(2048); got != want {
		t.Fatalf("face 1 UnitsPerEm: got %d, want %d", got, want)
	}
}

func TestFromSliceCollectionFaceIndexOutOfBounds(t *testing.T) {
	fontA := buildFont(minimalFontTables(1000, 1))
	coll := buildCollection([][]byte{fontA})
	if _, err := FromSlice(coll, 1); err != ErrFaceIndexOutOfBounds {
		t.Fatalf("FromSlice(coll, 1) with only one face: got err=%v, want ErrFaceIndexOutOfBounds", err)
	}
}

func TestFromSliceIgnoresIndexForBareFont(t *testing.T) {
	// A non-collection font has exactly one face; the index is ignored
	// rather than rejected.
	data := buildFont(minimalFontTables(1000, 1))
	f, err := FromSlice(data, 7)
	if err != nil {
		t.Fatalf("FromSlice(bare font, index 7): %v", err)
	}
	if got, want := f.UnitsPerEm(), uint16(1000); got != want {
		t.Fatalf("UnitsPerEm: got %d, want %d", got, want)
	}
}
