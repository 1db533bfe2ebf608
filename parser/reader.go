package parser

import "math"

// Stream is a cursor over a borrowed, immutable byte slice. Every numeric
// read is big-endian. Exhaustion is reported by returning false, never by
// panicking.
type Stream struct {
	data []byte
	pos  int
}

// NewStream returns a Stream positioned at the start of data.
func NewStream(data []byte) Stream {
	return Stream{data: data}
}

// NewStreamAt returns a Stream over data, with the cursor pre-advanced to
// offset.
func NewStreamAt(data []byte, offset int) Stream {
	return Stream{data: data, pos: offset}
}

// Offset returns the current cursor position.
func (s *Stream) Offset() int { return s.pos }

// AtEnd reports whether the cursor has consumed the whole slice.
func (s *Stream) AtEnd() bool { return s.pos >= len(s.data) }

// Tail returns the remaining, unread slice from the cursor to the end.
func (s *Stream) Tail() ([]byte, bool) {
	if s.pos > len(s.data) {
		return nil, false
	}
	return s.data[s.pos:], true
}

// Advance moves the cursor forward by n bytes without a bounds check. A
// cursor moved past the end makes every later read, and Tail, report
// false.
func (s *Stream) Advance(n int) {
	s.pos += n
}

// AdvanceChecked moves the cursor forward by n bytes, failing and leaving
// the cursor unmoved if that would run past the end of the slice.
func (s *Stream) AdvanceChecked(n int) bool {
	if n < 0 {
		return false
	}
	np := s.pos + n
	if np < s.pos || np > len(s.data) {
		return false
	}
	s.pos = np
	return true
}

func (s *Stream) read(n int) ([]byte, bool) {
	if n < 0 {
		return nil, false
	}
	end := s.pos + n
	if end < s.pos || end > len(s.data) {
		return nil, false
	}
	b := s.data[s.pos:end]
	s.pos = end
	return b, true
}

// ReadU8 reads one unsigned byte and advances the cursor.
func (s *Stream) ReadU8() (uint8, bool) {
	b, ok := s.read(1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

// ReadI8 reads one signed byte and advances the cursor.
func (s *Stream) ReadI8() (int8, bool) {
	v, ok := s.ReadU8()
	return int8(v), ok
}

// ReadU16 reads a big-endian uint16 and advances the cursor.
func (s *Stream) ReadU16() (uint16, bool) {
	b, ok := s.read(2)
	if !ok {
		return 0, false
	}
	return uint16(b[0])<<8 | uint16(b[1]), true
}

// ReadI16 reads a big-endian int16 and advances the cursor.
func (s *Stream) ReadI16() (int16, bool) {
	v, ok := s.ReadU16()
	return int16(v), ok
}

// ReadU24 reads a big-endian, 24-bit unsigned integer and advances the
// cursor.
func (s *Stream) ReadU24() (uint32, bool) {
	b, ok := s.read(3)
	if !ok {
		return 0, false
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), true
}

// ReadU32 reads a big-endian uint32 and advances the cursor.
func (s *Stream) ReadU32() (uint32, bool) {
	b, ok := s.read(4)
	if !ok {
		return 0, false
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), true
}

// ReadI32 reads a big-endian int32 and advances the cursor.
func (s *Stream) ReadI32() (int32, bool) {
	v, ok := s.ReadU32()
	return int32(v), ok
}

// ReadTag reads a 4-byte Tag and advances the cursor.
func (s *Stream) ReadTag() (Tag, bool) {
	v, ok := s.ReadU32()
	return Tag(v), ok
}

// ReadF2Dot14 reads a 2.14 fixed-point value and returns it as a float32.
func (s *Stream) ReadF2Dot14() (float32, bool) {
	v, ok := s.ReadI16()
	if !ok {
		return 0, false
	}
	return float32(v) / 16384, true
}

// SkipU16 advances past one uint16 without parsing it.
func (s *Stream) SkipU16() { s.Advance(2) }

// SkipU32 advances past one uint32 without parsing it.
func (s *Stream) SkipU32() { s.Advance(4) }

// ReadBytes consumes and returns the next n bytes verbatim.
func (s *Stream) ReadBytes(n int) ([]byte, bool) {
	return s.read(n)
}

// ReadArray16 consumes n elements of size stride and returns a LazyArray16
// view over them, without parsing any individual element.
func (s *Stream) ReadArray16(stride int, n uint16) (LazyArray16, bool) {
	b, ok := s.read(stride * int(n))
	if !ok {
		return LazyArray16{}, false
	}
	return LazyArray16{data: b, stride: stride, count: n}, true
}

// ReadArray32 consumes n elements of size stride and returns a LazyArray32
// view over them, without parsing any individual element.
func (s *Stream) ReadArray32(stride int, n uint32) (LazyArray32, bool) {
	if n > math.MaxInt32/uint32(max(stride, 1)) {
		return LazyArray32{}, false
	}
	b, ok := s.read(stride * int(n))
	if !ok {
		return LazyArray32{}, false
	}
	return LazyArray32{data: b, stride: stride, count: n}, true
}

// ReadU16At reads a big-endian uint16 at a fixed offset in data, with no
// cursor involved.
func ReadU16At(data []byte, offset int) (uint16, bool) {
	if offset < 0 || offset+2 > len(data) {
		return 0, false
	}
	return uint16(data[offset])<<8 | uint16(data[offset+1]), true
}

// ReadU32At reads a big-endian uint32 at a fixed offset in data, with no
// cursor involved.
func ReadU32At(data []byte, offset int) (uint32, bool) {
	if offset < 0 || offset+4 > len(data) {
		return 0, false
	}
	return uint32(data[offset])<<24 | uint32(data[offset+1])<<16 |
		uint32(data[offset+2])<<8 | uint32(data[offset+3]), true
}

// ReadU8At reads one byte at a fixed offset in data.
func ReadU8At(data []byte, offset int) (uint8, bool) {
	if offset < 0 || offset >= len(data) {
		return 0, false
	}
	return data[offset], true
}

// i16Bound clamps n to [lo, hi].
func i16Bound(lo, n, hi int32) int32 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// f32Bound clamps n to [lo, hi].
func f32Bound(lo, n, hi float32) float32 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
