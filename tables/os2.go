package tables

import "github.com/maxmelander/ttf-parser/parser"

// ScriptMetrics is the subscript/superscript/strikeout metric group OS/2
// repeats three times.
type ScriptMetrics struct {
	XSize, YSize, XOffset, YOffset int16
}

// OS2 is the OS/2 and Windows metrics table. Only versions 0 through 5
// are recognised; fields introduced in a later version than the table
// declares read as zero.
type OS2 struct {
	version            uint16
	WeightClass        uint16
	WidthClass         uint16
	FSSelection        uint16
	Subscript          ScriptMetrics
	Superscript        ScriptMetrics
	StrikeoutSize      int16
	StrikeoutPosition  int16
	TypoAscender       int16
	TypoDescender      int16
	TypoLineGap        int16
	WinAscent          uint16
	WinDescent         uint16
	XHeight            int16 // version >= 2 only
	CapHeight          int16 // version >= 2 only
	hasXHeight         bool
}

const fsSelectionUseTypoMetrics = 1 << 7

// UseTypographicMetrics reports whether the USE_TYPO_METRICS fsSelection
// bit is set (version >= 4 only; earlier versions never set it).
func (o OS2) UseTypographicMetrics() bool { return o.FSSelection&fsSelectionUseTypoMetrics != 0 }

// XHeightMetrics returns (capHeight, xHeight, ok); ok is false for
// versions below 2, which carry neither field.
func (o OS2) XHeightMetrics() (int16, int16, bool) {
	return o.CapHeight, o.XHeight, o.hasXHeight
}

// ParseOS2 parses `OS/2`.
func ParseOS2(data []byte) (OS2, bool) {
	if len(data) < 78 {
		return OS2{}, false
	}
	s := parser.NewStream(data)
	version, ok := s.ReadU16()
	if !ok {
		return OS2{}, false
	}
	s.Advance(2) // xAvgCharWidth
	weightClass, _ := s.ReadU16()
	widthClass, _ := s.ReadU16()
	s.Advance(2) // fsType
	subYSize, _ := s.ReadI16()
	subXSize, _ := s.ReadI16()
	subYOff, _ := s.ReadI16()
	subXOff, _ := s.ReadI16()
	supYSize, _ := s.ReadI16()
	supXSize, _ := s.ReadI16()
	supYOff, _ := s.ReadI16()
	supXOff, _ := s.ReadI16()
	strikeSize, _ := s.ReadI16()
	strikePos, _ := s.ReadI16()
	s.Advance(2) // sFamilyClass
	s.Advance(10) // panose
	s.Advance(16) // ulUnicodeRange 1-4
	s.Advance(4)  // achVendID
	fsSelection, ok := s.ReadU16()
	if !ok {
		return OS2{}, false
	}
	s.Advance(4) // usFirstCharIndex, usLastCharIndex
	typoAsc, _ := s.ReadI16()
	typoDesc, _ := s.ReadI16()
	typoGap, _ := s.ReadI16()
	winAsc, _ := s.ReadU16()
	winDesc, ok := s.ReadU16()
	if !ok {
		return OS2{}, false
	}

	o := OS2{
		version:           version,
		WeightClass:       weightClass,
		WidthClass:        widthClass,
		FSSelection:       fsSelection,
		Subscript:         ScriptMetrics{XSize: subXSize, YSize: subYSize, XOffset: subXOff, YOffset: subYOff},
		Superscript:       ScriptMetrics{XSize: supXSize, YSize: supYSize, XOffset: supXOff, YOffset: supYOff},
		StrikeoutSize:     strikeSize,
		StrikeoutPosition: strikePos,
		TypoAscender:      typoAsc,
		TypoDescender:     typoDesc,
		TypoLineGap:       typoGap,
		WinAscent:         winAsc,
		WinDescent:        winDesc,
	}

	if version >= 2 && len(data) >= 96 {
		s.Advance(8) // ulCodePageRange1-2
		xh, ok1 := s.ReadI16()
		ch, ok2 := s.ReadI16()
		if ok1 && ok2 {
			o.XHeight, o.CapHeight, o.hasXHeight = xh, ch, true
		}
	}
	return o, true
}
