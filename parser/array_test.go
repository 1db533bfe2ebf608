package parser

import "testing"

func buildU16Array(t *testing.T, values ...uint16) LazyArray16 {
	t.Helper()
	data := make([]byte, len(values)*2)
	for i, v := range values {
		data[i*2] = byte(v >> 8)
		data[i*2+1] = byte(v)
	}
	return LazyArray16{data: data, stride: 2, count: uint16(len(values))}
}

func TestLazyArray16Get(t *testing.T) {
	arr := buildU16Array(t, 10, 20, 30)
	if v, ok := arr.GetU16(0); !ok || v != 10 {
		t.Fatalf("GetU16(0): got (%d, %v), want (10, true)", v, ok)
	}
	if _, ok := arr.GetU16(3); ok {
		t.Fatalf("GetU16(3) out of range: got ok=true, want false")
	}
}

func TestLazyArray16Last(t *testing.T) {
	arr := buildU16Array(t, 1, 2, 3)
	b, ok := arr.Last()
	if !ok {
		t.Fatalf("Last: got ok=false, want true")
	}
	v := uint16(b[0])<<8 | uint16(b[1])
	if v != 3 {
		t.Fatalf("Last: got %d, want 3", v)
	}
	if _, ok := (LazyArray16{}).Last(); ok {
		t.Fatalf("Last on an empty array: got ok=true, want false")
	}
}

func TestLazyArray16BinarySearch(t *testing.T) {
	arr := buildU16Array(t, 10, 20, 30, 40, 50)
	cmp := func(key uint16) BinarySearchCompare {
		return func(elem []byte) int {
			v := uint16(elem[0])<<8 | uint16(elem[1])
			switch {
			case key < v:
				return -1
			case key > v:
				return 1
			default:
				return 0
			}
		}
	}
	idx, elem, ok := arr.BinarySearch(cmp(30))
	if !ok || idx != 2 {
		t.Fatalf("BinarySearch(30): got (idx=%d, %v), want (idx=2, true)", idx, ok)
	}
	if v := uint16(elem[0])<<8 | uint16(elem[1]); v != 30 {
		t.Fatalf("BinarySearch(30) element: got %d, want 30", v)
	}
	if _, _, ok := arr.BinarySearch(cmp(25)); ok {
		t.Fatalf("BinarySearch(25) (absent key): got ok=true, want false")
	}
}

func TestLazyArray16Iter(t *testing.T) {
	arr := buildU16Array(t, 1, 2, 3, 4)
	var seen []uint16
	arr.Iter(func(i uint16, elem []byte) bool {
		seen = append(seen, uint16(elem[0])<<8|uint16(elem[1]))
		return i < 1 // stop after the second element
	})
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("Iter with early stop: got %v, want [1 2]", seen)
	}
}

func TestLazyArray32Get(t *testing.T) {
	data := []byte{0, 0, 0, 1, 0, 0, 0, 2}
	arr := LazyArray32{data: data, stride: 4, count: 2}
	b, ok := arr.Get(1)
	if !ok || b[3] != 2 {
		t.Fatalf("Get(1): got (%v, %v), want ([.. 2], true)", b, ok)
	}
	if _, ok := arr.Get(2); ok {
		t.Fatalf("Get(2) out of range: got ok=true, want false")
	}
}
