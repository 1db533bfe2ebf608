package sfnt

import (
	"math"

	"github.com/maxmelander/ttf-parser/parser"
	"github.com/maxmelander/ttf-parser/tables"
)

// round applies the 0.5-bias truncation the variation deltas are combined
// with: halves round away from zero, matching the metric tables' own
// integer rounding.
func round(v float32) int16 {
	if v >= 0 {
		return int16(math.Floor(float64(v) + 0.5))
	}
	return int16(math.Ceil(float64(v) - 0.5))
}

// Ascender returns the face's ascender, preferring OS/2's typographic
// ascender (when USE_TYPO_METRICS is set) over `hhea`'s, and applying any
// `MVAR` "hasc" delta under the current variation coordinates.
func (f *Face) Ascender() int16 {
	if f.tables.HasOS2 && f.tables.OS2.UseTypographicMetrics() {
		return f.applyMvar(f.tables.OS2.TypoAscender, tables.MvarTagHasc)
	}
	return f.applyMvar(f.tables.Hhea.Ascender, tables.MvarTagHasc)
}

// Descender mirrors Ascender for the descender metric ("hdsc").
func (f *Face) Descender() int16 {
	if f.tables.HasOS2 && f.tables.OS2.UseTypographicMetrics() {
		return f.applyMvar(f.tables.OS2.TypoDescender, tables.MvarTagHdsc)
	}
	return f.applyMvar(f.tables.Hhea.Descender, tables.MvarTagHdsc)
}

// LineGap mirrors Ascender for the line-gap metric ("hlgp").
func (f *Face) LineGap() int16 {
	if f.tables.HasOS2 && f.tables.OS2.UseTypographicMetrics() {
		return f.applyMvar(f.tables.OS2.TypoLineGap, tables.MvarTagHlgp)
	}
	return f.applyMvar(f.tables.Hhea.LineGap, tables.MvarTagHlgp)
}

// Height returns Ascender - Descender.
func (f *Face) Height() int16 { return f.Ascender() - f.Descender() }

// LineHeight returns Ascender - Descender + LineGap.
func (f *Face) LineHeight() int16 { return f.Height() + f.LineGap() }

// WindowsAscent/WindowsDescent fall back to OS/2's Windows-compatible
// clipping metrics ("hcla"/"hcld" under MVAR), independent of
// USE_TYPO_METRICS.
func (f *Face) WindowsAscent() int16 {
	if !f.tables.HasOS2 {
		return f.Ascender()
	}
	return f.applyMvar(int16(f.tables.OS2.WinAscent), tables.MvarTagHcla)
}

func (f *Face) WindowsDescent() int16 {
	if !f.tables.HasOS2 {
		return -f.Descender()
	}
	return f.applyMvar(int16(f.tables.OS2.WinDescent), tables.MvarTagHcld)
}

// CapitalHeight and XHeight come from OS/2 version >= 2, with an "cpht"/
// "xhgt" MVAR delta layered on top; they report false if OS/2 carries
// neither field.
func (f *Face) CapitalHeight() (int16, bool) {
	if !f.tables.HasOS2 {
		return 0, false
	}
	ch, _, ok := f.tables.OS2.XHeightMetrics()
	if !ok {
		return 0, false
	}
	return f.applyMvar(ch, tables.MvarTagCpht), true
}

func (f *Face) XHeight() (int16, bool) {
	if !f.tables.HasOS2 {
		return 0, false
	}
	_, xh, ok := f.tables.OS2.XHeightMetrics()
	if !ok {
		return 0, false
	}
	return f.applyMvar(xh, tables.MvarTagXhgt), true
}

// UnderlineMetrics returns the `post` table's underline position and
// thickness, with "unds"/"undo" MVAR deltas applied.
func (f *Face) UnderlineMetrics() (LineMetrics, bool) {
	if !f.tables.HasPost {
		return LineMetrics{}, false
	}
	u := f.tables.Post.Underline
	return LineMetrics{
		Position:  f.applyMvar(u.Position, tables.MvarTagUndo),
		Thickness: f.applyMvar(u.Thickness, tables.MvarTagUnds),
	}, true
}

// StrikeoutMetrics returns OS/2's strikeout position and thickness, with
// "stro"/"strs" MVAR deltas applied.
func (f *Face) StrikeoutMetrics() (LineMetrics, bool) {
	if !f.tables.HasOS2 {
		return LineMetrics{}, false
	}
	return LineMetrics{
		Position:  f.applyMvar(f.tables.OS2.StrikeoutPosition, tables.MvarTagStro),
		Thickness: f.applyMvar(f.tables.OS2.StrikeoutSize, tables.MvarTagStrs),
	}, true
}

// SubscriptMetrics and SuperscriptMetrics expose OS/2's script metric
// groups verbatim (MVAR defines no deltas for these).
func (f *Face) SubscriptMetrics() (tables.ScriptMetrics, bool) {
	if !f.tables.HasOS2 {
		return tables.ScriptMetrics{}, false
	}
	return f.tables.OS2.Subscript, true
}

func (f *Face) SuperscriptMetrics() (tables.ScriptMetrics, bool) {
	if !f.tables.HasOS2 {
		return tables.ScriptMetrics{}, false
	}
	return f.tables.OS2.Superscript, true
}

func (f *Face) applyMvar(base int16, tag Tag) int16 {
	if !f.tables.HasMvar {
		return base
	}
	delta, ok := f.tables.Mvar.Delta(tag, f.coords.Slice())
	if !ok {
		return base
	}
	return base + round(delta)
}

// GlyphIndex maps a Unicode code point to a glyph index, iterating the
// `cmap` table's subtables and preferring a Unicode-flavored binding.
func (f *Face) GlyphIndex(codepoint rune) (GlyphID, bool) {
	if !f.tables.HasCmap {
		return 0, false
	}
	var best GlyphID
	found := false
	f.tables.Cmap.Subtables(func(st tables.Subtable) bool {
		g, ok := st.GlyphIndex(codepoint)
		if !ok {
			return true
		}
		if st.IsUnicode() {
			best, found = g, true
			return false
		}
		if !found {
			best, found = g, true
		}
		return true
	})
	return best, found
}

// HorizontalAdvance returns glyph's advance width, including any `HVAR`
// delta under the current variation coordinates.
func (f *Face) HorizontalAdvance(glyph GlyphID) (uint16, bool) {
	if !f.tables.HasHmtx {
		return 0, false
	}
	adv, ok := f.tables.Hmtx.Advance(glyph)
	if !ok {
		return 0, false
	}
	if f.tables.HasHvar {
		adv = uint16(int32(adv) + int32(round(f.tables.Hvar.AdvanceOffset(glyph, f.coords.Slice()))))
	}
	return adv, true
}

// HorizontalSideBearing returns glyph's left side bearing, including any
// `HVAR` delta.
func (f *Face) HorizontalSideBearing(glyph GlyphID) (int16, bool) {
	if !f.tables.HasHmtx {
		return 0, false
	}
	lsb, ok := f.tables.Hmtx.SideBearing(glyph)
	if !ok {
		return 0, false
	}
	if f.tables.HasHvar {
		if d, ok := f.tables.Hvar.LsbOffset(glyph, f.coords.Slice()); ok {
			lsb += round(d)
		}
	}
	return lsb, true
}

// VerticalAdvance mirrors HorizontalAdvance for `vmtx`/`VVAR`.
func (f *Face) VerticalAdvance(glyph GlyphID) (uint16, bool) {
	if !f.tables.HasVmtx {
		return 0, false
	}
	adv, ok := f.tables.Vmtx.Advance(glyph)
	if !ok {
		return 0, false
	}
	if f.tables.HasVvar {
		adv = uint16(int32(adv) + int32(round(f.tables.Vvar.AdvanceOffset(glyph, f.coords.Slice()))))
	}
	return adv, true
}

// VerticalSideBearing mirrors HorizontalSideBearing for `vmtx`/`VVAR`.
func (f *Face) VerticalSideBearing(glyph GlyphID) (int16, bool) {
	if !f.tables.HasVmtx {
		return 0, false
	}
	tsb, ok := f.tables.Vmtx.SideBearing(glyph)
	if !ok {
		return 0, false
	}
	if f.tables.HasVvar {
		if d, ok := f.tables.Vvar.LsbOffset(glyph, f.coords.Slice()); ok {
			tsb += round(d)
		}
	}
	return tsb, true
}

// GlyphYOrigin returns glyph's vertical origin, from `VORG` if present, or
// the glyph's own bounding-box top otherwise.
func (f *Face) GlyphYOrigin(glyph GlyphID) int16 {
	if f.tables.HasVORG {
		return f.tables.VORG.Origin(glyph)
	}
	if bb, ok := f.GlyphBoundingBox(glyph); ok {
		return bb.YMax
	}
	return int16(f.tables.Hhea.Ascender)
}

// GlyphName returns glyph's PostScript name, trying `post` (format 2.0)
// before falling back to a CFF charset lookup.
func (f *Face) GlyphName(glyph GlyphID) (string, bool) {
	if f.tables.HasPost {
		if name, ok := f.tables.Post.GlyphName(glyph); ok {
			return name, true
		}
	}
	if f.tables.HasCFF {
		if name, ok := f.tables.CFF.GlyphName(glyph); ok {
			return name, true
		}
	}
	return "", false
}

// OutlineGlyph emits glyph's outline to builder. It tries `glyf` (varied
// by `gvar`, if present) first, then a static `glyf`, then `CFF`, then
// reports `CFF2` as present-but-unsupported by returning false (CFF2
// requires a VariationStore-aware charstring interpreter this
// implementation does not provide).
func (f *Face) OutlineGlyph(glyph GlyphID, builder OutlineBuilder) bool {
	if f.tables.HasGlyf {
		if f.tables.HasGvar && f.coords.NonDefault() {
			if f.outlineGlyfVaried(glyph, builder) {
				return true
			}
		}
		return f.tables.Glyf.Outline(glyph, builder)
	}
	if f.tables.HasCFF {
		return f.tables.CFF.Outline(glyph, builder)
	}
	return false
}

// glyfRecorder captures a glyf outline as point/flag runs so ApplyDeltas
// can perturb it before replaying it to the caller's builder.
type glyfRecorder struct {
	xs, ys []float32
	ops    []byte // 'M','L','Q'(+2 extra points already appended),'C','Z'
}

func (r *glyfRecorder) MoveTo(x, y float32) {
	r.xs = append(r.xs, x)
	r.ys = append(r.ys, y)
	r.ops = append(r.ops, 'M')
}
func (r *glyfRecorder) LineTo(x, y float32) {
	r.xs = append(r.xs, x)
	r.ys = append(r.ys, y)
	r.ops = append(r.ops, 'L')
}
func (r *glyfRecorder) QuadTo(x1, y1, x, y float32) {
	r.xs = append(r.xs, x1, x)
	r.ys = append(r.ys, y1, y)
	r.ops = append(r.ops, 'Q')
}
func (r *glyfRecorder) CurveTo(x1, y1, x2, y2, x, y float32) {
	r.xs = append(r.xs, x1, x2, x)
	r.ys = append(r.ys, y1, y2, y)
	r.ops = append(r.ops, 'C')
}
func (r *glyfRecorder) Close() { r.ops = append(r.ops, 'Z') }

// outlineGlyfVaried records glyph's unvaried outline, applies `gvar`
// deltas to every recorded point, then replays the perturbed outline to
// builder. A glyph with no `gvar` data is replayed unchanged. It returns
// false, having emitted nothing to builder, if the glyph cannot be
// outlined or its `gvar` data cannot be applied, leaving the caller to
// fall back to the static outline.
func (f *Face) outlineGlyfVaried(glyph GlyphID, builder OutlineBuilder) bool {
	var rec glyfRecorder
	if !f.tables.Glyf.Outline(glyph, &rec) {
		return false
	}
	if len(rec.xs) == 0 {
		return true
	}
	if !f.tables.Gvar.ApplyDeltas(parser.GlyphID(glyph), f.coords.Slice(), rec.xs, rec.ys) {
		return false
	}

	pt := 0
	for _, op := range rec.ops {
		switch op {
		case 'M':
			builder.MoveTo(rec.xs[pt], rec.ys[pt])
			pt++
		case 'L':
			builder.LineTo(rec.xs[pt], rec.ys[pt])
			pt++
		case 'Q':
			builder.QuadTo(rec.xs[pt], rec.ys[pt], rec.xs[pt+1], rec.ys[pt+1])
			pt += 2
		case 'C':
			builder.CurveTo(rec.xs[pt], rec.ys[pt], rec.xs[pt+1], rec.ys[pt+1], rec.xs[pt+2], rec.ys[pt+2])
			pt += 3
		case 'Z':
			builder.Close()
		}
	}
	return true
}

// boundsBuilder derives a bounding box from an emitted outline's points
// without retaining them.
type boundsBuilder struct {
	minX, minY, maxX, maxY float32
	any                    bool
}

func (b *boundsBuilder) add(x, y float32) {
	if !b.any {
		b.minX, b.minY, b.maxX, b.maxY = x, y, x, y
		b.any = true
		return
	}
	if x < b.minX {
		b.minX = x
	}
	if x > b.maxX {
		b.maxX = x
	}
	if y < b.minY {
		b.minY = y
	}
	if y > b.maxY {
		b.maxY = y
	}
}

func (b *boundsBuilder) MoveTo(x, y float32)                  { b.add(x, y) }
func (b *boundsBuilder) LineTo(x, y float32)                  { b.add(x, y) }
func (b *boundsBuilder) QuadTo(x1, y1, x, y float32)          { b.add(x1, y1); b.add(x, y) }
func (b *boundsBuilder) CurveTo(x1, y1, x2, y2, x, y float32) { b.add(x1, y1); b.add(x2, y2); b.add(x, y) }
func (b *boundsBuilder) Close()                               {}

// GlyphBoundingBox computes glyph's outline bounding box by outlining it
// into a point-extent accumulator.
func (f *Face) GlyphBoundingBox(glyph GlyphID) (Rect, bool) {
	var b boundsBuilder
	if !f.OutlineGlyph(glyph, &b) || !b.any {
		return Rect{}, false
	}
	return Rect{XMin: round(b.minX), YMin: round(b.minY), XMax: round(b.maxX), YMax: round(b.maxY)}, true
}

// GlyphRasterImage resolves glyph's best-matching raster image for
// pixelsPerEm, trying `sbix` before `CBLC`+`CBDT`.
func (f *Face) GlyphRasterImage(glyph GlyphID, pixelsPerEm uint16) (RasterGlyphImage, bool) {
	if f.tables.HasSbix {
		g, ppem, ok := f.tables.Sbix.BestStrike(parser.GlyphID(glyph), pixelsPerEm)
		if ok && g.GraphicType == parser.NewTag('p', 'n', 'g', ' ') {
			return RasterGlyphImage{
				X: g.OriginX, Y: g.OriginY,
				PixelsPerEm: ppem,
				Format:      RasterImageFormatPNG,
				Data:        g.Data,
			}, true
		}
	}
	if f.tables.HasCBLC && f.tables.HasCBDT {
		loc, ok := f.tables.CBLC.Find(parser.GlyphID(glyph), byte(pixelsPerEm))
		if ok {
			data, bx, by, ok := f.tables.CBDT.Image(loc)
			if ok {
				return RasterGlyphImage{
					X: bx, Y: by,
					PixelsPerEm: uint16(loc.PPEM),
					Format:      RasterImageFormatPNG,
					Data:        data,
				}, true
			}
		}
	}
	return RasterGlyphImage{}, false
}

// GlyphSVGImage returns glyph's raw (possibly gzip-compressed) SVG
// document, from `SVG `.
func (f *Face) GlyphSVGImage(glyph GlyphID) ([]byte, bool) {
	if !f.tables.HasSVG {
		return nil, false
	}
	return f.tables.SVG.DocumentFor(parser.GlyphID(glyph))
}

// KerningSubtables iterates both the legacy `kern` and the AAT `kerx`
// kerning tables, calling fn for each subtable it finds. fn's subtable
// argument exposes either a simple pair-lookup or (for kerx format 1) an
// aat.ExtendedStateTable driving the same state-machine engine `morx`
// would use.
func (f *Face) KerningSubtables(fn func(tables.KernSubtable, bool, tables.KerxSubtable, bool) bool) {
	if f.tables.HasKern {
		f.tables.Kern.Subtables(func(s tables.KernSubtable) bool {
			return fn(s, true, tables.KerxSubtable{}, false)
		})
	}
	if f.tables.HasKerx {
		f.tables.Kerx.Subtables(f.tables.Maxp.NumberOfGlyphs, func(s tables.KerxSubtable) bool {
			return fn(tables.KernSubtable{}, false, s, true)
		})
	}
}
