package tables

import (
	"math"
	"strconv"

	"github.com/maxmelander/ttf-parser/parser"
)

// CFF is a parsed Compact Font Format table: enough of the Top DICT and
// Private DICT structure to resolve a glyph's Type 2 charstring and the
// local/global subroutine indices it calls into, plus the charset needed
// for GlyphName.
//
// The DICT-walking machinery (index headers, operand encoding, including
// the real-number nibble format) is grounded on the same stack-and-DICT
// discipline a CFF Top DICT parser needs regardless of what the DICT
// feeds: here it feeds glyph outline resolution rather than font metadata.
type CFF struct {
	charStrings  index
	globalSubrs  index
	localSubrs   index
	charsetSIDs  []uint16 // charStrings-index -> SID, 0th entry is .notdef
	strings      index
	gsubrBias    int32
	lsubrBias    int32
}

// ParseCFF parses just enough of a `CFF ` table to resolve glyph outlines
// and names.
func ParseCFF(data []byte) (CFF, bool) {
	p := &cffReader{data: data}
	if !p.read(4) {
		return CFF{}, false
	}
	if p.buf[0] != 1 {
		return CFF{}, false // unsupported major version
	}

	if _, ok := p.parseIndex(); !ok { // Name INDEX
		return CFF{}, false
	}
	topDicts, ok := p.parseIndex()
	if !ok || topDicts.count() == 0 {
		return CFF{}, false
	}
	topDictData, ok := topDicts.get(0)
	if !ok {
		return CFF{}, false
	}
	strings, ok := p.parseIndex()
	if !ok {
		return CFF{}, false
	}
	globalSubrs, ok := p.parseIndex()
	if !ok {
		return CFF{}, false
	}

	top, ok := parseTopDict(topDictData)
	if !ok {
		return CFF{}, false
	}
	if top.charStringsOffset <= 0 || int(top.charStringsOffset) >= len(data) {
		return CFF{}, false
	}
	charStrings, ok := (&cffReader{data: data, pos: int(top.charStringsOffset), end: len(data)}).parseIndex()
	if !ok {
		return CFF{}, false
	}

	var localSubrs index
	if top.privateSize > 0 && top.privateOffset >= 0 && int64(top.privateOffset)+int64(top.privateSize) <= int64(len(data)) {
		priv := data[top.privateOffset : top.privateOffset+top.privateSize]
		if subrsOff, ok := parsePrivateSubrsOffset(priv); ok {
			abs := top.privateOffset + subrsOff
			if abs >= 0 && int(abs) < len(data) {
				localSubrs, _ = (&cffReader{data: data, pos: int(abs), end: len(data)}).parseIndex()
			}
		}
	}

	var charsetSIDs []uint16
	if top.charsetOffset > 2 && int(top.charsetOffset) < len(data) {
		charsetSIDs = parseCharset(data[top.charsetOffset:], charStrings.count())
	}

	c := CFF{
		charStrings: charStrings,
		globalSubrs: globalSubrs,
		localSubrs:  localSubrs,
		charsetSIDs: charsetSIDs,
		strings:     strings,
	}
	c.gsubrBias = subrBias(globalSubrs.count())
	c.lsubrBias = subrBias(localSubrs.count())
	return c, true
}

func subrBias(count int) int32 {
	switch {
	case count < 1240:
		return 107
	case count < 33900:
		return 1131
	default:
		return 32768
	}
}

// index is a CFF INDEX structure: a table of variable-length byte strings.
type index struct {
	data    []byte
	offsets []uint32 // count+1 entries, relative to data
}

func (x index) count() int { return max(len(x.offsets)-1, 0) }

func (x index) get(i int) ([]byte, bool) {
	if i < 0 || i+1 >= len(x.offsets) {
		return nil, false
	}
	start, end := x.offsets[i], x.offsets[i+1]
	if end < start || int(end) > len(x.data) {
		return nil, false
	}
	return x.data[start:end], true
}

type cffReader struct {
	data []byte
	pos  int
	end  int
	buf  []byte
}

func (p *cffReader) read(n int) bool {
	if p.end == 0 {
		p.end = len(p.data)
	}
	if n < 0 || p.pos+n > p.end || p.pos+n > len(p.data) {
		return false
	}
	p.buf = p.data[p.pos : p.pos+n]
	p.pos += n
	return true
}

func (p *cffReader) parseIndex() (index, bool) {
	if !p.read(2) {
		return index{}, false
	}
	count := int(uint16(p.buf[0])<<8 | uint16(p.buf[1]))
	if count == 0 {
		return index{}, true
	}
	if !p.read(1) {
		return index{}, false
	}
	offSize := int(p.buf[0])
	if offSize < 1 || offSize > 4 {
		return index{}, false
	}
	if !p.read((count + 1) * offSize) {
		return index{}, false
	}
	raw := p.buf
	offsets := make([]uint32, count+1)
	for i := range offsets {
		var v uint32
		for j := 0; j < offSize; j++ {
			v = v<<8 | uint32(raw[i*offSize+j])
		}
		offsets[i] = v - 1 // CFF offsets are 1-based
	}
	dataStart := p.pos
	dataLen := int(offsets[count])
	if dataStart+dataLen > len(p.data) {
		return index{}, false
	}
	body := p.data[dataStart : dataStart+dataLen]
	p.pos = dataStart + dataLen
	return index{data: body, offsets: offsets}, true
}

type topDict struct {
	charStringsOffset int32
	charsetOffset     int32
	privateOffset     int32
	privateSize       int32
}

// parseTopDict walks the Top DICT's DICT-encoded key/value pairs, keeping
// only the operators this implementation needs.
func parseTopDict(data []byte) (topDict, bool) {
	var t topDict
	var stack [48]float64
	top := 0
	for len(data) > 0 {
		b0 := data[0]
		switch {
		case b0 <= 21: // operator
			op := int(b0)
			data = data[1:]
			if b0 == 12 {
				if len(data) == 0 {
					return t, false
				}
				op = 1200 + int(data[0])
				data = data[1:]
			}
			switch op {
			case 15: // charset
				if top > 0 {
					t.charsetOffset = int32(stack[top-1])
				}
			case 17: // CharStrings
				if top > 0 {
					t.charStringsOffset = int32(stack[top-1])
				}
			case 18: // Private: size, offset
				if top >= 2 {
					t.privateSize = int32(stack[top-2])
					t.privateOffset = int32(stack[top-1])
				}
			}
			top = 0
		case b0 == 28:
			if len(data) < 3 {
				return t, false
			}
			v := int16(uint16(data[1])<<8 | uint16(data[2]))
			if top < len(stack) {
				stack[top] = float64(v)
				top++
			}
			data = data[3:]
		case b0 == 29:
			if len(data) < 5 {
				return t, false
			}
			v := int32(uint32(data[1])<<24 | uint32(data[2])<<16 | uint32(data[3])<<8 | uint32(data[4]))
			if top < len(stack) {
				stack[top] = float64(v)
				top++
			}
			data = data[5:]
		case b0 == 30:
			data = data[1:]
			var sb []byte
			done := false
			for !done && len(data) > 0 {
				b := data[0]
				data = data[1:]
				for i := 0; i < 2; i++ {
					nib := b >> 4
					b <<= 4
					switch {
					case nib <= 9:
						sb = append(sb, '0'+nib)
					case nib == 0xa:
						sb = append(sb, '.')
					case nib == 0xb:
						sb = append(sb, 'E')
					case nib == 0xc:
						sb = append(sb, 'E', '-')
					case nib == 0xe:
						sb = append(sb, '-')
					case nib == 0xf:
						done = true
					}
					if done {
						break
					}
				}
			}
			if f, err := strconv.ParseFloat(string(sb), 64); err == nil && top < len(stack) {
				stack[top] = f
				top++
			}
		case b0 >= 32 && b0 <= 246:
			if top < len(stack) {
				stack[top] = float64(int32(b0) - 139)
				top++
			}
			data = data[1:]
		case b0 >= 247 && b0 <= 250:
			if len(data) < 2 {
				return t, false
			}
			if top < len(stack) {
				stack[top] = float64((int32(b0)-247)*256 + int32(data[1]) + 108)
				top++
			}
			data = data[2:]
		case b0 >= 251 && b0 <= 254:
			if len(data) < 2 {
				return t, false
			}
			if top < len(stack) {
				stack[top] = float64(-(int32(b0)-251)*256 - int32(data[1]) - 108)
				top++
			}
			data = data[2:]
		default:
			return t, false
		}
	}
	return t, true
}

// parsePrivateSubrsOffset reads the "Subrs" operator (19) from a Private
// DICT, returning its value as an offset relative to the Private DICT's
// own start.
func parsePrivateSubrsOffset(data []byte) (int32, bool) {
	var stack [48]float64
	top := 0
	for len(data) > 0 {
		b0 := data[0]
		switch {
		case b0 <= 21:
			op := int(b0)
			data = data[1:]
			if b0 == 12 {
				if len(data) == 0 {
					return 0, false
				}
				data = data[1:]
			}
			if op == 19 && top > 0 {
				return int32(stack[top-1]), true
			}
			top = 0
		case b0 == 28:
			if len(data) < 3 {
				return 0, false
			}
			data = data[3:]
			if top < len(stack) {
				top++
			}
		case b0 == 29:
			if len(data) < 5 {
				return 0, false
			}
			data = data[5:]
			if top < len(stack) {
				top++
			}
		case b0 == 30:
			data = data[1:]
			for len(data) > 0 {
				b := data[0]
				data = data[1:]
				if b&0x0f == 0x0f || b>>4 == 0x0f {
					break
				}
			}
			if top < len(stack) {
				top++
			}
		case b0 >= 32 && b0 <= 246:
			data = data[1:]
			if top < len(stack) {
				top++
			}
		case b0 >= 247 && b0 <= 250, b0 >= 251 && b0 <= 254:
			if len(data) < 2 {
				return 0, false
			}
			data = data[2:]
			if top < len(stack) {
				top++
			}
		default:
			return 0, false
		}
	}
	return 0, false
}

// parseCharset parses a format 0/1/2 charset into a charStrings-index ->
// SID table, .notdef implicit at index 0.
func parseCharset(data []byte, numGlyphs int) []uint16 {
	if len(data) == 0 || numGlyphs <= 0 {
		return nil
	}
	sids := make([]uint16, numGlyphs)
	format := data[0]
	data = data[1:]
	i := 1
	switch format {
	case 0:
		for i < numGlyphs && len(data) >= 2 {
			sids[i] = uint16(data[0])<<8 | uint16(data[1])
			data = data[2:]
			i++
		}
	case 1:
		for i < numGlyphs && len(data) >= 3 {
			first := uint16(data[0])<<8 | uint16(data[1])
			nLeft := int(data[2])
			data = data[3:]
			for k := 0; k <= nLeft && i < numGlyphs; k++ {
				sids[i] = first + uint16(k)
				i++
			}
		}
	case 2:
		for i < numGlyphs && len(data) >= 4 {
			first := uint16(data[0])<<8 | uint16(data[1])
			nLeft := int(uint16(data[2])<<8 | uint16(data[3]))
			data = data[4:]
			for k := 0; k <= nLeft && i < numGlyphs; k++ {
				sids[i] = first + uint16(k)
				i++
			}
		}
	}
	return sids
}

const cffStackSize = 48

// cffInterp runs a single glyph's Type 2 charstring, emitting outline
// segments. Hinting operators (hstem/vstem/hintmask/cntrmask) are
// consumed for their effect on the stack and operand count, never
// rendered.
type cffInterp struct {
	cff       *CFF
	builder   parser.OutlineBuilder
	stack     [cffStackSize]float32
	top       int
	x, y      float32
	nStems    int
	haveWidth bool
	open      bool
	depth     int
}

const cffMaxCallDepth = 10

// Outline runs glyph's Type 2 charstring against builder.
func (c *CFF) Outline(glyph parser.GlyphID, builder parser.OutlineBuilder) bool {
	data, ok := c.charStrings.get(int(glyph))
	if !ok {
		return false
	}
	interp := &cffInterp{cff: c, builder: builder}
	ok = interp.run(data)
	if interp.open {
		builder.Close()
	}
	return ok
}

func (ip *cffInterp) run(data []byte) bool {
	ip.depth++
	if ip.depth > cffMaxCallDepth {
		return false
	}
	defer func() { ip.depth-- }()

	for len(data) > 0 {
		b0 := data[0]
		if b0 >= 32 || b0 == 28 {
			v, rest, ok := parseCharstringNumber(data)
			if !ok {
				return false
			}
			data = rest
			if ip.top < cffStackSize {
				ip.stack[ip.top] = v
				ip.top++
			}
			continue
		}

		data = data[1:]
		switch b0 {
		case 1, 3, 18, 23: // hstem, vstem, hstemhm, vstemhm
			ip.takeStemWidth()
			ip.nStems += ip.top / 2
			ip.top = 0
		case 19, 20: // hintmask, cntrmask
			ip.takeStemWidth()
			ip.nStems += ip.top / 2
			ip.top = 0
			skip := (ip.nStems + 7) / 8
			if skip > len(data) {
				return false
			}
			data = data[skip:]
		case 21: // rmoveto
			ip.takeMoveWidth(2)
			ip.moveTo(ip.stack[0], ip.stack[1])
			ip.top = 0
		case 22: // hmoveto
			ip.takeMoveWidth(1)
			ip.moveTo(ip.stack[0], 0)
			ip.top = 0
		case 4: // vmoveto
			ip.takeMoveWidth(1)
			ip.moveTo(0, ip.stack[0])
			ip.top = 0
		case 5: // rlineto
			for i := 0; i+1 < ip.top; i += 2 {
				ip.lineTo(ip.stack[i], ip.stack[i+1])
			}
			ip.top = 0
		case 6: // hlineto
			ip.altLineTo(true)
			ip.top = 0
		case 7: // vlineto
			ip.altLineTo(false)
			ip.top = 0
		case 8: // rrcurveto
			for i := 0; i+5 < ip.top; i += 6 {
				ip.curveTo(ip.stack[i], ip.stack[i+1], ip.stack[i+2], ip.stack[i+3], ip.stack[i+4], ip.stack[i+5])
			}
			ip.top = 0
		case 24: // rcurveline
			i := 0
			for ; i+5 < ip.top-2; i += 6 {
				ip.curveTo(ip.stack[i], ip.stack[i+1], ip.stack[i+2], ip.stack[i+3], ip.stack[i+4], ip.stack[i+5])
			}
			if i+1 < ip.top {
				ip.lineTo(ip.stack[i], ip.stack[i+1])
			}
			ip.top = 0
		case 25: // rlinecurve
			i := 0
			for ; i+1 < ip.top-6; i += 2 {
				ip.lineTo(ip.stack[i], ip.stack[i+1])
			}
			if i+5 < ip.top {
				ip.curveTo(ip.stack[i], ip.stack[i+1], ip.stack[i+2], ip.stack[i+3], ip.stack[i+4], ip.stack[i+5])
			}
			ip.top = 0
		case 26: // vvcurveto
			i := 0
			dx1 := float32(0)
			if ip.top%4 == 1 {
				dx1 = ip.stack[0]
				i = 1
			}
			for ; i+3 < ip.top; i += 4 {
				ip.curveTo(dx1, ip.stack[i], ip.stack[i+1], ip.stack[i+2], 0, ip.stack[i+3])
				dx1 = 0
			}
			ip.top = 0
		case 27: // hhcurveto
			i := 0
			dy1 := float32(0)
			if ip.top%4 == 1 {
				dy1 = ip.stack[0]
				i = 1
			}
			for ; i+3 < ip.top; i += 4 {
				ip.curveTo(ip.stack[i], dy1, ip.stack[i+1], ip.stack[i+2], ip.stack[i+3], 0)
				dy1 = 0
			}
			ip.top = 0
		case 30, 31: // vhcurveto, hvcurveto
			ip.altCurveTo(b0 == 31)
			ip.top = 0
		case 10: // callsubr
			if !ip.callSubr(ip.cff.localSubrs, ip.cff.lsubrBias) {
				return false
			}
		case 29: // callgsubr
			if !ip.callSubr(ip.cff.globalSubrs, ip.cff.gsubrBias) {
				return false
			}
		case 11: // return
			return true
		case 14: // endchar
			ip.takeStemWidth()
			ip.top = 0
			return true
		case 12: // escape: two-byte operators, arithmetic/flex; unsupported, drop operands
			if len(data) == 0 {
				return false
			}
			data = data[1:]
			ip.top = 0
		default:
			ip.top = 0
		}
	}
	return true
}

func (ip *cffInterp) callSubr(idx index, bias int32) bool {
	if ip.top == 0 {
		return false
	}
	ip.top--
	n := int32(ip.stack[ip.top]) + bias
	data, ok := idx.get(int(n))
	if !ok {
		return false
	}
	return ip.run(data)
}

// takeStemWidth consumes a leading width operand from a stem/moveto/
// endchar operator if the stack has one more value than the operator
// expects (the odd-count rule from the Type 2 Charstring spec).
func (ip *cffInterp) takeStemWidth() {
	if ip.haveWidth {
		return
	}
	if ip.top%2 == 1 {
		copy(ip.stack[:ip.top-1], ip.stack[1:ip.top])
		ip.top--
	}
	ip.haveWidth = true
}

func (ip *cffInterp) takeMoveWidth(want int) {
	if !ip.haveWidth && ip.top > want {
		copy(ip.stack[:ip.top-1], ip.stack[1:ip.top])
		ip.top--
	}
	ip.haveWidth = true
}

func (ip *cffInterp) moveTo(dx, dy float32) {
	if ip.open {
		ip.builder.Close()
	}
	ip.x += dx
	ip.y += dy
	ip.builder.MoveTo(ip.x, ip.y)
	ip.open = true
}

func (ip *cffInterp) lineTo(dx, dy float32) {
	ip.x += dx
	ip.y += dy
	ip.builder.LineTo(ip.x, ip.y)
}

func (ip *cffInterp) curveTo(dx1, dy1, dx2, dy2, dx3, dy3 float32) {
	x1, y1 := ip.x+dx1, ip.y+dy1
	x2, y2 := x1+dx2, y1+dy2
	ip.x, ip.y = x2+dx3, y2+dy3
	ip.builder.CurveTo(x1, y1, x2, y2, ip.x, ip.y)
}

func (ip *cffInterp) altLineTo(startHorizontal bool) {
	horizontal := startHorizontal
	for i := 0; i < ip.top; i++ {
		if horizontal {
			ip.lineTo(ip.stack[i], 0)
		} else {
			ip.lineTo(0, ip.stack[i])
		}
		horizontal = !horizontal
	}
}

func (ip *cffInterp) altCurveTo(startHorizontal bool) {
	horizontal := startHorizontal
	i := 0
	for ; i+3 < ip.top; i += 4 {
		last := i+4 == ip.top-1
		var extra float32
		if last {
			extra = ip.stack[ip.top-1]
		}
		if horizontal {
			ip.curveTo(ip.stack[i], 0, ip.stack[i+1], ip.stack[i+2], extra, ip.stack[i+3])
		} else {
			ip.curveTo(0, ip.stack[i], ip.stack[i+1], ip.stack[i+2], ip.stack[i+3], extra)
		}
		horizontal = !horizontal
	}
}

// parseCharstringNumber parses one Type 2 Charstring numeric operand.
func parseCharstringNumber(data []byte) (float32, []byte, bool) {
	b0 := data[0]
	switch {
	case b0 == 28:
		if len(data) < 3 {
			return 0, nil, false
		}
		v := int16(uint16(data[1])<<8 | uint16(data[2]))
		return float32(v), data[3:], true
	case b0 < 247:
		return float32(int32(b0) - 139), data[1:], true
	case b0 < 251:
		if len(data) < 2 {
			return 0, nil, false
		}
		return float32((int32(b0)-247)*256 + int32(data[1]) + 108), data[2:], true
	case b0 < 255:
		if len(data) < 2 {
			return 0, nil, false
		}
		return float32(-(int32(b0)-251)*256 - int32(data[1]) - 108), data[2:], true
	default: // 255: 16.16 fixed
		if len(data) < 5 {
			return 0, nil, false
		}
		v := int32(uint32(data[1])<<24 | uint32(data[2])<<16 | uint32(data[3])<<8 | uint32(data[4]))
		return float32(v) / 65536, data[5:], true
	}
}

var _ = math.MaxInt32

// cffStandardStringCount is the number of predefined CFF standard strings;
// SIDs from this value up index the font's own String INDEX.
const cffStandardStringCount = 391

// GlyphName returns glyph's name from the charset plus the font's String
// INDEX, or false if glyph is out of range or the font carries no charset.
// The predefined standard strings are not included, so a glyph whose SID
// is below cffStandardStringCount also reports false.
func (c CFF) GlyphName(glyph parser.GlyphID) (string, bool) {
	i := int(glyph)
	if i < 0 || i >= len(c.charsetSIDs) {
		return "", false
	}
	sid := c.charsetSIDs[i]
	if int(sid) < cffStandardStringCount {
		return "", false
	}
	custom := int(sid) - cffStandardStringCount
	b, ok := c.strings.get(custom)
	if !ok {
		return "", false
	}
	return string(b), true
}
