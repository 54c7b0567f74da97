package phone

import (
	"regexp"
	"strings"
)

var (
	// formulaCell matches the ="value" spreadsheet escape.
	formulaCell = regexp.MustCompile(`^="(.*)"$`)
	// quotedCell matches a plain "value" quoting.
	quotedCell = regexp.MustCompile(`^"(.*)"$`)
)

// Unescape trims raw and removes every ="..." or "..." wrapper around it,
// so cells escaped more than once expose the bare value. Anything else is
// returned trimmed.
func Unescape(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		m := formulaCell.FindStringSubmatch(s)
		if m == nil {
			m = quotedCell.FindStringSubmatch(s)
		}
		if m == nil {
			return s
		}
		s = strings.TrimSpace(m[1])
	}
}

// Escape wraps v as ="v" so spreadsheets keep it as text. Empty values and
// values that are already escaped are left alone.
func Escape(v string) string {
	if v == "" || formulaCell.MatchString(v) {
		return v
	}
	return `="` + v + `"`
}
