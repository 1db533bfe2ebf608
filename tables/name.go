package tables

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/maxmelander/ttf-parser/parser"
)

// NameRecord is one entry of the `name` table's naming-record array,
// decoded to a UTF-8 Go string. Decoding failures (an unrecognised
// platform/encoding pair) yield an empty Value rather than an error.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      string
}

// Name is the naming table.
type Name struct {
	records []NameRecord
}

// ParseName parses `name` format 0 and format 1 (the format-1
// language-tag records are skipped; only the base naming records are
// exposed).
func ParseName(data []byte) (Name, bool) {
	s := parser.NewStream(data)
	s.SkipU16() // format
	count, ok := s.ReadU16()
	if !ok {
		return Name{}, false
	}
	stringOffset, ok := s.ReadU16()
	if !ok {
		return Name{}, false
	}
	recs, ok := s.ReadArray16(12, count)
	if !ok {
		return Name{}, false
	}
	if int(stringOffset) > len(data) {
		return Name{}, false
	}
	storage := data[stringOffset:]

	out := make([]NameRecord, 0, count)
	recs.Iter(func(_ uint16, b []byte) bool {
		platformID, _ := parser.ReadU16At(b, 0)
		encodingID, _ := parser.ReadU16At(b, 2)
		languageID, _ := parser.ReadU16At(b, 4)
		nameID, _ := parser.ReadU16At(b, 6)
		length, _ := parser.ReadU16At(b, 8)
		offset, _ := parser.ReadU16At(b, 10)

		var raw []byte
		if int(offset)+int(length) <= len(storage) {
			raw = storage[int(offset) : int(offset)+int(length)]
		}
		value := decodeNameValue(platformID, encodingID, raw)
		out = append(out, NameRecord{
			PlatformID: platformID,
			EncodingID: encodingID,
			LanguageID: languageID,
			NameID:     nameID,
			Value:      value,
		})
		return true
	})
	return Name{records: out}, true
}

func decodeNameValue(platformID, encodingID uint16, raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	switch platformID {
	case 1: // Macintosh
		if encodingID == 0 { // Roman
			out, err := charmap.Macintosh.NewDecoder().Bytes(raw)
			if err != nil {
				return ""
			}
			return string(out)
		}
		return ""
	case 0, 3: // Unicode, Windows: big-endian UTF-16
		out, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
		if err != nil {
			return ""
		}
		return string(out)
	default:
		return ""
	}
}

// NameID well-known identifiers, per the OpenType `name` table spec.
const (
	NameIDFamily            = 1
	NameIDSubfamily         = 2
	NameIDFullName          = 4
	NameIDTypographicFamily = 16
)

// Get returns the first record's decoded value for nameID, preferring
// Windows/Unicode platform records over Macintosh ones.
func (n Name) Get(nameID uint16) (string, bool) {
	var macValue string
	for _, r := range n.records {
		if r.NameID != nameID || r.Value == "" {
			continue
		}
		if r.PlatformID == 0 || r.PlatformID == 3 {
			return r.Value, true
		}
		if macValue == "" {
			macValue = r.Value
		}
	}
	if macValue != "" {
		return macValue, true
	}
	return "", false
}
