// Package phone canonicalizes raw phone-number strings for a single
// numbering plan: a fixed country prefix, an optional extra digit and an
// eight-digit subscriber number.
//
// Two shapes coexist in real data:
//
//	short  237XXXXXXXX    (11 characters)
//	long   2376XXXXXXXX   (12 characters)
//
// Every function here is total and idempotent: normalized output is often
// fed back in after a spreadsheet round trip.
package phone

import "strings"

const (
	// CountryPrefix identifies the supported numbering plan.
	CountryPrefix = "237"
	// ExtraDigit is inserted after the prefix in the long shape.
	ExtraDigit = "6"

	// ShortLength is the length of CountryPrefix + subscriber number.
	ShortLength = 11
	// LongLength is the length of CountryPrefix + ExtraDigit + subscriber number.
	LongLength = 12
)

const longPrefix = CountryPrefix + ExtraDigit

// Normalize canonicalizes raw under mode and escapes the result for
// spreadsheet-safe output.
func Normalize(raw string, mode Mode) string {
	return Escape(Canonicalize(raw, mode))
}

// Canonicalize unescapes raw and rewrites its digits under mode. Input the
// mode does not recognize is returned unescaped but otherwise unchanged.
func Canonicalize(raw string, mode Mode) string {
	s := Unescape(raw)
	switch mode {
	case ModeCorrect:
		return correct(s)
	case ModeStripExtraDigit:
		return stripExtraDigit(s)
	case ModeStandardize:
		return standardize(s)
	default:
		return s
	}
}

// correct re-prepends prefix+extra digit to whatever follows the prefix.
// The remainder length is not validated.
func correct(s string) string {
	if !strings.HasPrefix(s, CountryPrefix) || strings.HasPrefix(s, longPrefix) {
		return s
	}
	return longPrefix + s[len(CountryPrefix):]
}

func stripExtraDigit(s string) string {
	if !IsLong(s) {
		return s
	}
	return CountryPrefix + s[len(longPrefix):]
}

func standardize(s string) string {
	if IsLong(s) {
		return stripExtraDigit(s)
	}
	// A 12-character prefixed number without the extra digit gets it
	// inserted, giving 13 characters.
	if strings.HasPrefix(s, CountryPrefix) && len(s) == LongLength && s[len(CountryPrefix):len(longPrefix)] != ExtraDigit {
		return longPrefix + s[len(CountryPrefix):]
	}
	return s
}

// IsLong reports whether s has the long shape: prefix, extra digit, 12 characters.
func IsLong(s string) bool {
	return len(s) == LongLength && strings.HasPrefix(s, longPrefix)
}

// IsShort reports whether s has the short shape: prefix and 11 characters.
func IsShort(s string) bool {
	return len(s) == ShortLength && strings.HasPrefix(s, CountryPrefix)
}
