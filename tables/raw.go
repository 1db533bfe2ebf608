package tables

// Raw wraps a table this implementation binds by tag but does not parse
// structurally: GDEF, GPOS and GSUB (the OpenType Layout common tables —
// script/feature/lookup lists, coverage and class definitions — are
// shaping infrastructure, outside the outline/metrics query surface this
// parser exposes) and CFF2 (a variable-font CFF variant requiring its own
// VariationStore-aware charstring interpreter). Each is still validated
// enough to report present/absent correctly through HasTable, and its
// bytes are reachable via Face.TableData.
type Raw struct {
	Data []byte
}

// ParseRaw accepts any non-empty slice; a zero-length table is treated as
// malformed so it downgrades to "absent" like every other optional table.
func ParseRaw(data []byte) (Raw, bool) {
	if len(data) == 0 {
		return Raw{}, false
	}
	return Raw{Data: data}, true
}
