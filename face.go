package sfnt

import (
	"github.com/maxmelander/ttf-parser/parser"
	"github.com/maxmelander/ttf-parser/tables"
)

// FaceTables is the bundle of parsed collaborators a Face dispatches
// queries to. Every field other than Head, Hhea and Maxp is best-effort:
// a malformed or absent optional table simply leaves its Has* flag false,
// per §4.E.
type FaceTables struct {
	Head tables.Head
	Hhea tables.Hhea
	Maxp tables.Maxp

	Hmtx    tables.Hmtx
	HasHmtx bool
	Vhea    tables.Vhea
	HasVhea bool
	Vmtx    tables.Vmtx
	HasVmtx bool

	Loca    tables.Loca
	HasLoca bool
	Glyf    tables.Glyf
	HasGlyf bool

	CFF    tables.CFF
	HasCFF bool
	CFF2    tables.Raw
	HasCFF2 bool

	Cmap    tables.Cmap
	HasCmap bool
	Name    tables.Name
	HasName bool
	Post    tables.Post
	HasPost bool
	OS2     tables.OS2
	HasOS2  bool

	Kern    tables.Kern
	HasKern bool
	Kerx    tables.Kerx
	HasKerx bool

	Sbix    tables.Sbix
	HasSbix bool
	SVG     tables.SVG
	HasSVG  bool
	VORG    tables.VORG
	HasVORG bool
	CBLC    tables.Cblc
	HasCBLC bool
	CBDT    tables.Cbdt
	HasCBDT bool

	Fvar    tables.Fvar
	HasFvar bool
	Avar    tables.Avar
	HasAvar bool
	Gvar    tables.Gvar
	HasGvar bool
	Hvar    tables.Hvar
	HasHvar bool
	Vvar    tables.Hvar
	HasVvar bool
	Mvar    tables.Mvar
	HasMvar bool

	GDEF    tables.Raw
	HasGDEF bool
	GPOS    tables.Raw
	HasGPOS bool
	GSUB    tables.Raw
	HasGSUB bool

	// Raw slices held until their composite binding (which needs a
	// sibling table's parsed fields) can run.
	hmtxData []byte
	vmtxData []byte
	locaData []byte
	glyfData []byte
	sbixData []byte
	gvarData []byte
}

// Face is one typeface parsed out of an SFNT buffer (or one member of a
// ttcf collection). It borrows data for its entire lifetime.
type Face struct {
	tables  FaceTables
	coords  VarCoords
	data    []byte
	records tableRecords
	numRecs uint16
}

// FromSlice parses a single face out of data. For a ttcf collection,
// index selects which face; for a bare TrueType/OpenType buffer, index is
// ignored (there is only one face to select).
func FromSlice(data []byte, index uint32) (*Face, error) {
	s := parser.NewStream(data)
	m, ok := parseMagic(&s)
	if !ok {
		return nil, ErrUnknownMagic
	}

	if m == magicFontCollection {
		s.SkipU32() // version
		numFonts, ok := s.ReadU32()
		if !ok {
			return nil, ErrMalformedFont
		}
		if index >= numFonts {
			return nil, ErrFaceIndexOutOfBounds
		}
		offsets, ok := s.ReadArray32(4, numFonts)
		if !ok {
			return nil, ErrMalformedFont
		}
		b, ok := offsets.Get(index)
		if !ok {
			return nil, ErrMalformedFont
		}
		offset, _ := parser.ReadU32At(b, 0)
		if int(offset) > len(data) {
			return nil, ErrMalformedFont
		}
		s = parser.NewStreamAt(data, int(offset))
		nested, ok := parseMagic(&s)
		if !ok {
			return nil, ErrUnknownMagic
		}
		if nested == magicFontCollection {
			return nil, ErrUnknownMagic
		}
	}

	numTables, ok := s.ReadU16()
	if !ok {
		return nil, ErrMalformedFont
	}
	s.Advance(6) // searchRange, entrySelector, rangeShift
	records, ok := readTableRecords(&s, numTables)
	if !ok {
		return nil, ErrMalformedFont
	}

	provider := newDefaultTableProvider(data, records, numTables)
	return FromTableProvider(provider, data, records, numTables)
}

// FromTableProvider assembles a Face from a caller-supplied TableProvider
// (e.g. a front-end that has already decompressed a wrapped container),
// rather than walking a directory parsed from data. data, records and
// numTables back Face.TableData and HasTable; pass the zero value of
// tableRecords and 0 for numTables if the provider's tables aren't also
// reachable via a directory.
func FromTableProvider(provider TableProvider, data []byte, records tableRecords, numTables uint16) (*Face, error) {
	var ft FaceTables
	var haveHead, headValid, haveHhea, hheaValid, haveMaxp, maxpValid bool

	for {
		entry, ok, err := provider.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if !entry.Found {
			continue
		}
		bindTable(&ft, entry.Tag, entry.Data)

		switch entry.Tag {
		case tagHead:
			haveHead = true
			if h, ok := tables.ParseHead(entry.Data); ok && h.UnitsPerEm != 0 {
				ft.Head, headValid = h, true
			}
		case tagHhea:
			haveHhea = true
			if h, ok := tables.ParseHhea(entry.Data); ok {
				ft.Hhea, hheaValid = h, true
			}
		case tagMaxp:
			haveMaxp = true
			if m, ok := tables.ParseMaxp(entry.Data); ok {
				ft.Maxp, maxpValid = m, true
			}
		}
	}

	if !haveHead || !headValid {
		return nil, ErrNoHeadTable
	}
	if !haveHhea || !hheaValid {
		return nil, ErrNoHheaTable
	}
	if !haveMaxp || !maxpValid {
		return nil, ErrNoMaxpTable
	}

	resolveCompositeBindings(&ft)

	f := &Face{tables: ft, data: data, records: records, numRecs: numTables}
	if ft.HasFvar {
		f.coords.initLength(len(ft.Fvar.Axes()))
	}
	return f, nil
}

// bindTable parses one table's slice into its typed collaborator, if the
// tag is recognised. A parse failure here just leaves the table's Has*
// flag false; head/hhea/maxp validity is tracked separately by the
// caller since those three are mandatory.
func bindTable(ft *FaceTables, tag Tag, data []byte) {
	switch tag {
	case tagHmtx:
		ft.hmtxData = data
	case tagVhea:
		if v, ok := tables.ParseVhea(data); ok {
			ft.Vhea, ft.HasVhea = v, true
		}
	case tagVmtx:
		ft.vmtxData = data
	case tagLoca:
		ft.locaData = data
	case tagGlyf:
		ft.glyfData = data
	case tagCFF:
		if c, ok := tables.ParseCFF(data); ok {
			ft.CFF, ft.HasCFF = c, true
		}
	case tagCFF2:
		if r, ok := tables.ParseRaw(data); ok {
			ft.CFF2, ft.HasCFF2 = r, true
		}
	case tagCmap:
		if c, ok := tables.ParseCmap(data); ok {
			ft.Cmap, ft.HasCmap = c, true
		}
	case tagName:
		if n, ok := tables.ParseName(data); ok {
			ft.Name, ft.HasName = n, true
		}
	case tagPost:
		if p, ok := tables.ParsePost(data); ok {
			ft.Post, ft.HasPost = p, true
		}
	case tagOS2:
		if o, ok := tables.ParseOS2(data); ok {
			ft.OS2, ft.HasOS2 = o, true
		}
	case tagKern:
		if k, ok := tables.ParseKern(data); ok {
			ft.Kern, ft.HasKern = k, true
		}
	case tagKerx:
		if k, ok := tables.ParseKerx(data); ok {
			ft.Kerx, ft.HasKerx = k, true
		}
	case tagSbix:
		ft.sbixData = data
	case tagSVG:
		if v, ok := tables.ParseSVG(data); ok {
			ft.SVG, ft.HasSVG = v, true
		}
	case tagVORG:
		if v, ok := tables.ParseVORG(data); ok {
			ft.VORG, ft.HasVORG = v, true
		}
	case tagCBLC:
		if c, ok := tables.ParseCblc(data); ok {
			ft.CBLC, ft.HasCBLC = c, true
		}
	case tagCBDT:
		if c, ok := tables.ParseCbdt(data); ok {
			ft.CBDT, ft.HasCBDT = c, true
		}
	case tagFvar:
		if v, ok := tables.ParseFvar(data); ok {
			ft.Fvar, ft.HasFvar = v, true
		}
	case tagAvar:
		if v, ok := tables.ParseAvar(data); ok {
			ft.Avar, ft.HasAvar = v, true
		}
	case tagGvar:
		ft.gvarData = data
	case tagHvar:
		if v, ok := tables.ParseHvar(data); ok {
			ft.Hvar, ft.HasHvar = v, true
		}
	case tagVvar:
		if v, ok := tables.ParseHvar(data); ok {
			ft.Vvar, ft.HasVvar = v, true
		}
	case tagMvar:
		if v, ok := tables.ParseMvar(data); ok {
			ft.Mvar, ft.HasMvar = v, true
		}
	case tagGDEF:
		if r, ok := tables.ParseRaw(data); ok {
			ft.GDEF, ft.HasGDEF = r, true
		}
	case tagGPOS:
		if r, ok := tables.ParseRaw(data); ok {
			ft.GPOS, ft.HasGPOS = r, true
		}
	case tagGSUB:
		if r, ok := tables.ParseRaw(data); ok {
			ft.GSUB, ft.HasGSUB = r, true
		}
	}
}

// resolveCompositeBindings binds the tables whose parse depends on a
// sibling table's already-parsed fields (§4.E): hmtx on hhea+maxp, vmtx
// on vhea+maxp, glyf on loca (itself bound from maxp+head), gvar on
// fvar's axis count.
func resolveCompositeBindings(ft *FaceTables) {
	if ft.hmtxData != nil {
		if h, ok := tables.ParseHmtx(ft.Hhea.NumberOfHMetrics, ft.Maxp.NumberOfGlyphs, ft.hmtxData); ok {
			ft.Hmtx, ft.HasHmtx = h, true
		}
	}
	if ft.vmtxData != nil && ft.HasVhea {
		if v, ok := tables.ParseVmtx(ft.Vhea.NumberOfHMetrics, ft.Maxp.NumberOfGlyphs, ft.vmtxData); ok {
			ft.Vmtx, ft.HasVmtx = v, true
		}
	}
	if ft.locaData != nil {
		if l, ok := tables.ParseLoca(ft.Maxp.NumberOfGlyphs, ft.Head.IndexToLocationFormat, ft.locaData); ok {
			ft.Loca, ft.HasLoca = l, true
		}
	}
	if ft.HasLoca && ft.glyfData != nil {
		ft.Glyf = tables.ParseGlyf(ft.Loca, ft.glyfData)
		ft.HasGlyf = true
	}
	if ft.sbixData != nil {
		if s, ok := tables.ParseSbix(ft.Maxp.NumberOfGlyphs, ft.sbixData); ok {
			ft.Sbix, ft.HasSbix = s, true
		}
	}
	if ft.gvarData != nil {
		axisCount := 0
		if ft.HasFvar {
			axisCount = len(ft.Fvar.Axes())
		}
		if g, ok := tables.ParseGvar(axisCount, ft.gvarData); ok {
			ft.Gvar, ft.HasGvar = g, true
		}
	}
}

// HasTable reports whether tag names a table this Face successfully
// parsed (a malformed optional table reads as absent, matching every
// other query).
func (f *Face) HasTable(tag Tag) bool {
	switch tag {
	case tagHead, tagHhea, tagMaxp:
		return true
	case tagHmtx:
		return f.tables.HasHmtx
	case tagVhea:
		return f.tables.HasVhea
	case tagVmtx:
		return f.tables.HasVmtx
	case tagLoca:
		return f.tables.HasLoca
	case tagGlyf:
		return f.tables.HasGlyf
	case tagCFF:
		return f.tables.HasCFF
	case tagCFF2:
		return f.tables.HasCFF2
	case tagCmap:
		return f.tables.HasCmap
	case tagName:
		return f.tables.HasName
	case tagPost:
		return f.tables.HasPost
	case tagOS2:
		return f.tables.HasOS2
	case tagKern:
		return f.tables.HasKern
	case tagKerx:
		return f.tables.HasKerx
	case tagSbix:
		return f.tables.HasSbix
	case tagSVG:
		return f.tables.HasSVG
	case tagVORG:
		return f.tables.HasVORG
	case tagCBLC:
		return f.tables.HasCBLC
	case tagCBDT:
		return f.tables.HasCBDT
	case tagFvar:
		return f.tables.HasFvar
	case tagAvar:
		return f.tables.HasAvar
	case tagGvar:
		return f.tables.HasGvar
	case tagHvar:
		return f.tables.HasHvar
	case tagVvar:
		return f.tables.HasVvar
	case tagMvar:
		return f.tables.HasMvar
	case tagGDEF:
		return f.tables.HasGDEF
	case tagGPOS:
		return f.tables.HasGPOS
	case tagGSUB:
		return f.tables.HasGSUB
	default:
		return false
	}
}

// TableData returns tag's raw slice via a binary search of the face's
// table directory, independent of whether a typed collaborator recognises
// the tag. It returns false if tag isn't present or its range is invalid.
func (f *Face) TableData(tag Tag) ([]byte, bool) {
	if f.numRecs == 0 {
		return nil, false
	}
	rec, ok := f.records.find(tag)
	if !ok {
		return nil, false
	}
	start, end := int(rec.offset), int(rec.offset)+int(rec.length)
	if start < 0 || end < start || end > len(f.data) {
		return nil, false
	}
	return f.data[start:end], true
}

// NumberOfGlyphs returns the face's glyph count, from `maxp`.
func (f *Face) NumberOfGlyphs() uint16 { return f.tables.Maxp.NumberOfGlyphs }

// UnitsPerEm returns the face's design grid size, from `head`.
func (f *Face) UnitsPerEm() uint16 { return f.tables.Head.UnitsPerEm }

// GlobalBoundingBox returns the `head` table's own glyph bounding box: an
// unvalidated, cheap alternative to outlining every glyph to compute one.
func (f *Face) GlobalBoundingBox() Rect {
	b := f.tables.Head.GlobalBBox
	return Rect{XMin: b.XMin, YMin: b.YMin, XMax: b.XMax, YMax: b.YMax}
}

// Tables exposes the assembled collaborators for callers (notably
// query.go) that need direct access beyond the dispatcher surface.
func (f *Face) Tables() *FaceTables { return &f.tables }

// VarCoords exposes the face's current variation coordinate store for
// callers (query.go) that need to pass coordinates into an outline or
// metrics query.
func (f *Face) VarCoords() *VarCoords { return &f.coords }
