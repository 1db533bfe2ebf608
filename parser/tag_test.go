package parser

import "testing"

func TestNewTagRoundTrip(t *testing.T) {
	tag := NewTag('h', 'e', 'a', 'd')
	if got, want := tag.String(), "head"; got != want {
		t.Fatalf("String: got %q, want %q", got, want)
	}
	b := tag.Bytes()
	if string(b[:]) != "head" {
		t.Fatalf("Bytes: got %q, want %q", b, "head")
	}
	if tag.IsNull() {
		t.Fatalf("IsNull: got true, want false")
	}
}

func TestTagOrdering(t *testing.T) {
	// Tags order byte-lexicographically, the same order the directory is
	// sorted in.
	if !(NewTag('G', 'D', 'E', 'F') < NewTag('G', 'P', 'O', 'S')) {
		t.Fatalf("expected GDEF < GPOS")
	}
	if !(NewTag('h', 'e', 'a', 'd') < NewTag('h', 'h', 'e', 'a')) {
		t.Fatalf("expected head < hhea")
	}
}

func TestNewTagFromBytesPadsWithSpace(t *testing.T) {
	tag := NewTagFromBytes([]byte("wght"))
	if tag.String() != "wght" {
		t.Fatalf("NewTagFromBytes(wght): got %q, want %q", tag.String(), "wght")
	}
	short := NewTagFromBytes([]byte("ab"))
	if got, want := short.String(), "ab  "; got != want {
		t.Fatalf("NewTagFromBytes(ab): got %q, want %q", got, want)
	}
	long := NewTagFromBytes([]byte("toolong"))
	if got, want := long.String(), "tool"; got != want {
		t.Fatalf("NewTagFromBytes(toolong): got %q, want %q (extra bytes ignored)", got, want)
	}
	empty := NewTagFromBytes(nil)
	if got, want := empty.String(), "    "; got != want {
		t.Fatalf("NewTagFromBytes(nil): got %q, want %q (four spaces, not the null tag)", got, want)
	}
}

func TestDeletedGlyphID(t *testing.T) {
	if DeletedGlyphID != 0xFFFF {
		t.Fatalf("DeletedGlyphID: got %#x, want 0xffff", DeletedGlyphID)
	}
}
