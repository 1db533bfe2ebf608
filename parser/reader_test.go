package parser

import "testing"

func TestStreamReadU16(t *testing.T) {
	s := NewStream([]byte{0x01, 0x02, 0x03, 0x04})
	v, ok := s.ReadU16()
	if !ok || v != 0x0102 {
		t.Fatalf("ReadU16: got (%d, %v), want (0x0102, true)", v, ok)
	}
	v2, ok := s.ReadU16()
	if !ok || v2 != 0x0304 {
		t.Fatalf("ReadU16: got (%d, %v), want (0x0304, true)", v2, ok)
	}
	if !s.AtEnd() {
		t.Fatalf("AtEnd: got false, want true")
	}
}

func TestStreamReadU32AndI16(t *testing.T) {
	s := NewStream([]byte{0xFF, 0xFF, 0xFF, 0xFE, 0xFF, 0xFF})
	u, ok := s.ReadU32()
	if !ok || u != 0xFFFFFFFE {
		t.Fatalf("ReadU32: got (%#x, %v), want (0xfffffffe, true)", u, ok)
	}
	i, ok := s.ReadI16()
	if !ok || i != -1 {
		t.Fatalf("ReadI16: got (%d, %v), want (-1, true)", i, ok)
	}
}

func TestStreamReadPastEndFails(t *testing.T) {
	s := NewStream([]byte{0x01})
	if _, ok := s.ReadU16(); ok {
		t.Fatalf("ReadU16 past end: got ok=true, want false")
	}
	// A failed read must not move the cursor.
	if s.Offset() != 0 {
		t.Fatalf("Offset after failed read: got %d, want 0", s.Offset())
	}
}

func TestStreamAdvanceChecked(t *testing.T) {
	s := NewStream(make([]byte, 4))
	if !s.AdvanceChecked(4) {
		t.Fatalf("AdvanceChecked(4) on a 4-byte buffer: got false, want true")
	}
	if s.AdvanceChecked(1) {
		t.Fatalf("AdvanceChecked(1) past the end: got true, want false")
	}
	if s.AdvanceChecked(-1) {
		t.Fatalf("AdvanceChecked(-1): got true, want false")
	}
}

func TestStreamReadF2Dot14(t *testing.T) {
	// 0x4000 == 16384 as an int16, which is 1.0 in 2.14 fixed point.
	s := NewStream([]byte{0x40, 0x00})
	v, ok := s.ReadF2Dot14()
	if !ok || v != 1.0 {
		t.Fatalf("ReadF2Dot14: got (%v, %v), want (1.0, true)", v, ok)
	}
}

func TestStreamTail(t *testing.T) {
	s := NewStream([]byte{1, 2, 3, 4, 5})
	s.Advance(2)
	tail, ok := s.Tail()
	if !ok || len(tail) != 3 || tail[0] != 3 {
		t.Fatalf("Tail: got (%v, %v), want ([3 4 5], true)", tail, ok)
	}
}

func TestNewStreamAt(t *testing.T) {
	s := NewStreamAt([]byte{1, 2, 3, 4}, 2)
	v, ok := s.ReadU16()
	if !ok || v != 0x0304 {
		t.Fatalf("ReadU16 after NewStreamAt(2): got (%#x, %v), want (0x0304, true)", v, ok)
	}
}

func TestReadU16AtAndReadU32At(t *testing.T) {
	data := []byte{0x00, 0x01, 0x00, 0x02, 0x00, 0x03}
	v, ok := ReadU16At(data, 2)
	if !ok || v != 2 {
		t.Fatalf("ReadU16At(2): got (%d, %v), want (2, true)", v, ok)
	}
	if _, ok := ReadU16At(data, 5); ok {
		t.Fatalf("ReadU16At(5) on a 6-byte slice: got ok=true, want false")
	}
	u, ok := ReadU32At(data, 0)
	if !ok || u != 0x00010002 {
		t.Fatalf("ReadU32At(0): got (%#x, %v), want (0x00010002, true)", u, ok)
	}
}

func TestReadArray16(t *testing.T) {
	data := []byte{0, 10, 0, 20, 0, 30}
	s := NewStream(data)
	arr, ok := s.ReadArray16(2, 3)
	if !ok || arr.Len() != 3 {
		t.Fatalf("ReadArray16: got (len=%d, %v), want (len=3, true)", arr.Len(), ok)
	}
	v, ok := arr.GetU16(1)
	if !ok || v != 20 {
		t.Fatalf("GetU16(1): got (%d, %v), want (20, true)", v, ok)
	}
	if !s.AtEnd() {
		t.Fatalf("AtEnd after consuming the whole array: got false")
	}
}
