package phone

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for names that match no mode.
var ErrUnknownMode = errors.New("unknown normalization mode")

// Mode selects one canonicalization strategy. The modes intentionally do
// not agree on a single target shape: Correct always produces the long
// shape while Standardize converts a long number down to the short shape.
type Mode int

const (
	// ModeCorrect repairs a prefixed number toward the long shape.
	ModeCorrect Mode = iota + 1
	// ModeStripExtraDigit converts a long-shape number to the short shape.
	ModeStripExtraDigit
	// ModeStandardize converts in either direction by inspecting the shape.
	ModeStandardize
)

var modeNames = map[Mode]string{
	ModeCorrect:         "correct",
	ModeStripExtraDigit: "strip-extra-digit",
	ModeStandardize:     "standardize",
}

var modeDescriptions = map[Mode]string{
	ModeCorrect:         "force every " + CountryPrefix + "-prefixed number into the long shape (" + CountryPrefix + ExtraDigit + "XXXXXXXX)",
	ModeStripExtraDigit: "drop the extra " + ExtraDigit + " from 12-character long-shape numbers",
	ModeStandardize:     "strip the extra digit from long numbers, insert it into 12-character numbers missing it",
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeCorrect, ModeStripExtraDigit, ModeStandardize}
}

// String returns the CLI-facing name of the mode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Description is a one-line help text for the mode.
func (m Mode) Description() string {
	return modeDescriptions[m]
}

// ParseMode resolves a mode name. "strip" is accepted as a short alias.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "correct":
		return ModeCorrect, nil
	case "strip-extra-digit", "strip":
		return ModeStripExtraDigit, nil
	case "standardize":
		return ModeStandardize, nil
	}
	return 0, fmt.Errorf("%w %q (valid: %s)", ErrUnknownMode, name, strings.Join(ModeNames(), ", "))
}

// ModeNames returns the names of all modes.
func ModeNames() []string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}
