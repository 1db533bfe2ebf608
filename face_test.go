package sfnt

import "testing"

func TestFromSliceMandatoryTables(t *testing.T) {
	data := buildFont(minimalFontTables(1000, 5))
	f, err := FromSlice(data, 0)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if got, want := f.UnitsPerEm(), uint16(1000); got != want {
		t.Fatalf("UnitsPerEm: got %d, want %d", got, want)
	}
	if got, want := f.NumberOfGlyphs(), uint16(5); got != want {
		t.Fatalf("NumberOfGlyphs: got %d, want %d", got, want)
	}
	bb := f.GlobalBoundingBox()
	if bb.XMax != 1000 || bb.YMin != -200 {
		t.Fatalf("GlobalBoundingBox: got %+v, want XMax=1000 YMin=-200", bb)
	}
}

func TestFromSliceMissingMandatoryTable(t *testing.T) {
	tables := minimalFontTables(1000, 5)
	delete(tables, "maxp")
	data := buildFont(tables)
	if _, err := FromSlice(data, 0); err != ErrNoMaxpTable {
		t.Fatalf("FromSlice with no maxp: got err=%v, want ErrNoMaxpTable", err)
	}
}

func TestFromSliceInvalidHeadUnitsPerEmZero(t *testing.T) {
	tables := minimalFontTables(1000, 5)
	tables["head"] = buildHead(0, -50, -200, 1000, 900)
	data := buildFont(tables)
	if _, err := FromSlice(data, 0); err != ErrNoHeadTable {
		t.Fatalf("FromSlice with units-per-em 0: got err=%v, want ErrNoHeadTable", err)
	}
}

func TestFromSliceUnknownMagic(t *testing.T) {
	if _, err := FromSlice([]byte{0, 0, 0, 0}, 0); err != ErrUnknownMagic {
		t.Fatalf("FromSlice with unrecognised magic: got err=%v, want ErrUnknownMagic", err)
	}
}

func TestFromSliceHmtxComposite(t *testing.T) {
	tables := minimalFontTables(1000, 2)
	hmtx := make([]byte, 8)
	putU16(hmtx, 0, 500)
	putI16(hmtx, 2, 10)
	putU16(hmtx, 4, 600)
	putI16(hmtx, 6, 20)
	tables["hmtx"] = hmtx
	data := buildFont(tables)

	f, err := FromSlice(data, 0)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	adv, ok := f.HorizontalAdvance(1)
	if !ok || adv != 600 {
		t.Fatalf("HorizontalAdvance(1): got (%d, %v), want (600, true)", adv, ok)
	}
	lsb, ok := f.HorizontalSideBearing(0)
	if !ok || lsb != 10 {
		t.Fatalf("HorizontalSideBearing(0): got (%d, %v), want (10, true)", lsb, ok)
	}
}

func TestFromSliceHasTable(t *testing.T) {
	data := buildFont(minimalFontTables(1000, 1))
	f, err := FromSlice(data, 0)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if !f.HasTable(NewTag('h', 'e', 'a', 'd')) {
		t.Fatalf("HasTable(head): got false, want true")
	}
	if f.HasTable(NewTag('g', 'v', 'a', 'r')) {
		t.Fatalf("HasTable(gvar) on a font without one: got true, want false")
	}
}

func TestFromSliceTableData(t *testing.T) {
	tables := minimalFontTables(1000, 1)
	data := buildFont(tables)
	f, err := FromSlice(data, 0)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	raw, ok := f.TableData(NewTag('m', 'a', 'x', 'p'))
	if !ok || len(raw) != 6 {
		t.Fatalf("TableData(maxp): got (len=%d, %v), want (len=6, true)", len(raw), ok)
	}
	if _, ok := f.TableData(NewTag('Z', 'Z', 'Z', 'Z')); ok {
		t.Fatalf("TableData(ZZZZ): got ok=true, want false")
	}
}

func TestFontsInCollectionOnBareFont(t *testing.T) {
	data := buildFont(minimalFontTables(1000, 1))
	if _, ok := FontsInCollection(data); ok {
		t.Fatalf("FontsInCollection on a non-collection font: got ok=true, want false")
	}
}
