// Package tables holds the external collaborators the core face assembly
// (see ../face.go) binds by four-byte tag: one file per table, each
// exposing a parse(slice) constructor and a small, read-only query
// surface. A collaborator's internal malformation is reported by a single
// boolean return, never a panic; Face assembly downgrades that to "table
// absent" for every collaborator except head, hhea and maxp.
package tables

import "github.com/maxmelander/ttf-parser/parser"

// IndexToLocationFormat selects how `loca` offsets are encoded.
type IndexToLocationFormat int

const (
	IndexToLocationShort IndexToLocationFormat = iota
	IndexToLocationLong
)

// Head is the "font header" table. UnitsPerEm == 0 marks the table as
// invalid: a zero units-per-em takes the no-head-table error path, not
// merely the absent-table one.
type Head struct {
	UnitsPerEm            uint16
	IndexToLocationFormat  IndexToLocationFormat
	GlobalBBox             struct{ XMin, YMin, XMax, YMax int16 }
	MacStyle               uint16
}

// ParseHead parses the 54-byte `head` table.
func ParseHead(data []byte) (Head, bool) {
	if len(data) < 54 {
		return Head{}, false
	}
	s := parser.NewStream(data)
	s.Advance(18) // version, fontRevision, checkSumAdjustment, magicNumber, flags
	unitsPerEm, ok := s.ReadU16()
	if !ok {
		return Head{}, false
	}
	s.Advance(16) // created, modified (int64 x 2)
	xMin, _ := s.ReadI16()
	yMin, _ := s.ReadI16()
	xMax, _ := s.ReadI16()
	yMax, _ := s.ReadI16()
	macStyle, _ := s.ReadU16()
	s.Advance(4) // lowestRecPPEM, fontDirectionHint
	locFmt, ok := s.ReadI16()
	if !ok {
		return Head{}, false
	}

	h := Head{UnitsPerEm: unitsPerEm, MacStyle: macStyle}
	h.GlobalBBox.XMin, h.GlobalBBox.YMin = xMin, yMin
	h.GlobalBBox.XMax, h.GlobalBBox.YMax = xMax, yMax
	if locFmt == 0 {
		h.IndexToLocationFormat = IndexToLocationShort
	} else {
		h.IndexToLocationFormat = IndexToLocationLong
	}
	return h, true
}
