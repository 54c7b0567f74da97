package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/phonematch/internal/csvio"
	"nathanbeddoewebdev/phonematch/internal/phone"
	"nathanbeddoewebdev/phonematch/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "source-name-column").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Validate rejects values that Set must never store. Nil accepts anything.
	Validate func(value string) error

	// CaseSensitive keys keep the value as typed instead of lowercasing it.
	CaseSensitive bool
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:          "source-name-column",
		Description:   "Name column of the source file (default \"noms\")",
		Get:           func(cfg *Config) string { return cfg.SourceNameColumn },
		Set:           func(cfg *Config, v string) { cfg.SourceNameColumn = v },
		Validate:      util.ValidateColumnName,
		CaseSensitive: true,
	},
	{
		Name:          "source-number-column",
		Description:   "Number column of the source file (default \"numeros\")",
		Get:           func(cfg *Config) string { return cfg.SourceNumberColumn },
		Set:           func(cfg *Config, v string) { cfg.SourceNumberColumn = v },
		Validate:      util.ValidateColumnName,
		CaseSensitive: true,
	},
	{
		Name:          "target-number-column",
		Description:   "Number column of the target file (default \"numeros\")",
		Get:           func(cfg *Config) string { return cfg.TargetNumberColumn },
		Set:           func(cfg *Config, v string) { cfg.TargetNumberColumn = v },
		Validate:      util.ValidateColumnName,
		CaseSensitive: true,
	},
	{
		Name:        "mode",
		Description: "Normalization mode used when --mode is not specified",
		Get:         func(cfg *Config) string { return cfg.Mode },
		Set:         func(cfg *Config, v string) { cfg.Mode = v },
		Validate: func(v string) error {
			_, err := phone.ParseMode(v)
			return err
		},
	},
	{
		Name:          "delimiter",
		Description:   "CSV field separator (default \",\")",
		Get:           func(cfg *Config) string { return cfg.Delimiter },
		Set:           func(cfg *Config, v string) { cfg.Delimiter = v },
		Validate:      util.ValidateDelimiter,
		CaseSensitive: true,
	},
	{
		Name:        "encoding",
		Description: "Input file encoding: utf-8 or latin-1",
		Get:         func(cfg *Config) string { return cfg.Encoding },
		Set:         func(cfg *Config, v string) { cfg.Encoding = v },
		Validate: func(v string) error {
			_, err := csvio.LookupEncoding(v)
			return err
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// Normalize prepares a raw value for storage under this key.
func (k *KeySpec) Normalize(value string) string {
	if k.CaseSensitive {
		// Whitespace is significant for a tab delimiter.
		if strings.TrimSpace(value) == "" {
			return value
		}
		return strings.TrimSpace(value)
	}
	return util.NormalizeKey(value)
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
