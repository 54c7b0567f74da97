// Package config handles persistent user preferences for phonematch.
//
// Preferences are stored as JSON at ~/.config/phonematch/config.json (or the
// platform-equivalent path returned by os.UserConfigDir). They only provide
// defaults for command flags; no contact data is ever stored.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"nathanbeddoewebdev/phonematch/internal/csvio"
	"nathanbeddoewebdev/phonematch/internal/linker"
	"nathanbeddoewebdev/phonematch/internal/phone"
)

const (
	appDir   = "phonematch"
	fileName = "config.json"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations.
type Config struct {
	SourceNameColumn   string `json:"source_name_column,omitempty"`
	SourceNumberColumn string `json:"source_number_column,omitempty"`
	TargetNumberColumn string `json:"target_number_column,omitempty"`
	Mode               string `json:"mode,omitempty"`
	Delimiter          string `json:"delimiter,omitempty"`
	Encoding           string `json:"encoding,omitempty"`
}

// SourceNameColumnOrDefault returns the configured source name column or "noms".
func (c *Config) SourceNameColumnOrDefault() string {
	return orDefault(c.SourceNameColumn, linker.DefaultNameColumn)
}

// SourceNumberColumnOrDefault returns the configured source number column or "numeros".
func (c *Config) SourceNumberColumnOrDefault() string {
	return orDefault(c.SourceNumberColumn, linker.DefaultNumberColumn)
}

// TargetNumberColumnOrDefault returns the configured target number column or "numeros".
func (c *Config) TargetNumberColumnOrDefault() string {
	return orDefault(c.TargetNumberColumn, linker.DefaultNumberColumn)
}

// DelimiterOrDefault returns the configured delimiter or ",".
func (c *Config) DelimiterOrDefault() string {
	return orDefault(c.Delimiter, ",")
}

// EncodingOrDefault returns the configured input encoding or "utf-8".
func (c *Config) EncodingOrDefault() string {
	return orDefault(c.Encoding, csvio.EncodingUTF8)
}

// ModeOrDefault returns the configured normalization mode or "correct".
func (c *Config) ModeOrDefault() string {
	return orDefault(c.Mode, phone.ModeCorrect.String())
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file from disk and returns the parsed Config.
// If the file does not exist, a zero-value Config is returned (not an error).
func Load() (*Config, error) {
	return loadFrom("")
}

func loadFrom(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	return c.saveTo("")
}

func (c *Config) saveTo(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads the config from the given path. Intended for testing.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path)
}

// SaveTo writes the config to the given path. Intended for testing.
func (c *Config) SaveTo(path string) error {
	return c.saveTo(path)
}
