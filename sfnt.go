// Package sfnt implements a read-only parser for SFNT font containers:
// TrueType, OpenType and the "ttcf" font-collection wrapper.
//
// A Face borrows the caller's byte slice for its entire lifetime; table
// bytes are read in place, not copied. Parsing and queries are not
// allocation-free: the variation tables, `name`, the CFF indices and glyf
// outline decoding build Go slices on the heap. Parsing never panics;
// malformed optional tables are silently treated as absent rather than
// repaired.
package sfnt

import (
	"fmt"

	"github.com/maxmelander/ttf-parser/parser"
)

// GlyphID is a 16-bit glyph index. 0xFFFF is reserved as the "deleted glyph"
// sentinel in AAT contexts; 0 conventionally denotes the absent glyph.
type GlyphID = parser.GlyphID

// DeletedGlyphID is the AAT sentinel for a deleted glyph.
const DeletedGlyphID = parser.DeletedGlyphID

// Tag is a 4-byte, big-endian table or axis identifier. Tags order
// byte-lexicographically, matching their big-endian integer value.
type Tag = parser.Tag

// NewTag builds a Tag from a 4-byte literal, e.g. NewTag('h', 'e', 'a', 'd').
func NewTag(b0, b1, b2, b3 byte) Tag { return parser.NewTag(b0, b1, b2, b3) }

// NewTagFromBytes builds a Tag from a byte slice of any length. Missing
// trailing bytes (for slices shorter than 4) are padded with 0x20 (space).
// Bytes past the fourth are ignored. An empty slice yields four spaces,
// not the null tag.
func NewTagFromBytes(b []byte) Tag { return parser.NewTagFromBytes(b) }

var (
	tagHead = NewTag('h', 'e', 'a', 'd')
	tagHhea = NewTag('h', 'h', 'e', 'a')
	tagMaxp = NewTag('m', 'a', 'x', 'p')
	tagHmtx = NewTag('h', 'm', 't', 'x')
	tagVhea = NewTag('v', 'h', 'e', 'a')
	tagVmtx = NewTag('v', 'm', 't', 'x')
	tagLoca = NewTag('l', 'o', 'c', 'a')
	tagGlyf = NewTag('g', 'l', 'y', 'f')
	tagCFF  = NewTag('C', 'F', 'F', ' ')
	tagCFF2 = NewTag('C', 'F', 'F', '2')
	tagCmap = NewTag('c', 'm', 'a', 'p')
	tagName = NewTag('n', 'a', 'm', 'e')
	tagPost = NewTag('p', 'o', 's', 't')
	tagOS2  = NewTag('O', 'S', '/', '2')
	tagKern = NewTag('k', 'e', 'r', 'n')
	tagKerx = NewTag('k', 'e', 'r', 'x')
	tagSbix = NewTag('s', 'b', 'i', 'x')
	tagSVG  = NewTag('S', 'V', 'G', ' ')
	tagVORG = NewTag('V', 'O', 'R', 'G')
	tagCBLC = NewTag('C', 'B', 'L', 'C')
	tagCBDT = NewTag('C', 'B', 'D', 'T')
	tagFvar = NewTag('f', 'v', 'a', 'r')
	tagAvar = NewTag('a', 'v', 'a', 'r')
	tagGvar = NewTag('g', 'v', 'a', 'r')
	tagHvar = NewTag('H', 'V', 'A', 'R')
	tagVvar = NewTag('V', 'V', 'A', 'R')
	tagMvar = NewTag('M', 'V', 'A', 'R')
	tagGDEF = NewTag('G', 'D', 'E', 'F')
	tagGPOS = NewTag('G', 'P', 'O', 'S')
	tagGSUB = NewTag('G', 'S', 'U', 'B')
)

// LineMetrics describes an underline or strikeout line.
type LineMetrics struct {
	Position  int16
	Thickness int16
}

// Rect is an axis-aligned rectangle in font design units. It does not
// guarantee XMin <= XMax or YMin <= YMax.
type Rect struct {
	XMin, YMin, XMax, YMax int16
}

// Width returns XMax - XMin.
func (r Rect) Width() int16 { return r.XMax - r.XMin }

// Height returns YMax - YMin.
func (r Rect) Height() int16 { return r.YMax - r.YMin }

// OutlineBuilder receives the segments of a glyph outline as it is decoded.
// Implementations must not retain the coordinates beyond the call.
type OutlineBuilder = parser.OutlineBuilder

type dummyOutlineBuilder struct{}

func (dummyOutlineBuilder) MoveTo(x, y float32)                  {}
func (dummyOutlineBuilder) LineTo(x, y float32)                  {}
func (dummyOutlineBuilder) QuadTo(x1, y1, x, y float32)          {}
func (dummyOutlineBuilder) CurveTo(x1, y1, x2, y2, x, y float32) {}
func (dummyOutlineBuilder) Close()                               {}

// RasterImageFormat identifies the encoding of a RasterGlyphImage's data.
type RasterImageFormat int

const (
	// RasterImageFormatPNG is the only currently-supported raster format.
	RasterImageFormatPNG RasterImageFormat = iota
)

// RasterGlyphImage is a glyph's raster image, as resolved from sbix or
// CBLC+CBDT. Metrics are in pixels, not font units. The Data is left
// encoded; it is up to the caller to decode it.
type RasterGlyphImage struct {
	X, Y        int16
	Width       uint16
	Height      uint16
	PixelsPerEm uint16
	Format      RasterImageFormat
	Data        []byte
}

// FaceParsingError is the taxonomy of fatal construction-time errors. No
// other error escapes Face construction; anything else collapses to an
// absent optional table.
type FaceParsingError int

const (
	// ErrMalformedFont indicates a read past the end of the buffer while
	// walking a mandatory header.
	ErrMalformedFont FaceParsingError = iota
	// ErrUnknownMagic indicates the first four bytes were not one of the
	// recognised TrueType/OpenType/collection magics.
	ErrUnknownMagic
	// ErrFaceIndexOutOfBounds indicates the requested face index is >= the
	// collection's face count.
	ErrFaceIndexOutOfBounds
	// ErrNoHeadTable indicates head is missing or its units-per-em is zero.
	ErrNoHeadTable
	// ErrNoHheaTable indicates hhea is missing or truncated.
	ErrNoHheaTable
	// ErrNoMaxpTable indicates maxp is missing or truncated.
	ErrNoMaxpTable
)

func (e FaceParsingError) Error() string {
	switch e {
	case ErrMalformedFont:
		return "sfnt: malformed font"
	case ErrUnknownMagic:
		return "sfnt: unknown magic"
	case ErrFaceIndexOutOfBounds:
		return "sfnt: face index is out of bounds"
	case ErrNoHeadTable:
		return "sfnt: the head table is missing or malformed"
	case ErrNoHheaTable:
		return "sfnt: the hhea table is missing or malformed"
	case ErrNoMaxpTable:
		return "sfnt: the maxp table is missing or malformed"
	default:
		return fmt.Sprintf("sfnt: unknown error (%d)", int(e))
	}
}
