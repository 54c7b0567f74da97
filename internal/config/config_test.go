package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("expected zero config (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonematch", "config.json")

	want := &Config{SourceNameColumn: "Nom", Mode: "correct", Delimiter: ";"}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "config.json")

	cfg := &Config{Encoding: "latin-1"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestPathOverride(t *testing.T) {
	t.Cleanup(ResetPath)

	path := filepath.Join(t.TempDir(), "custom.json")
	SetPath(path)

	got, err := Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if got != path {
		t.Errorf("Path = %q, want %q", got, path)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.SourceNameColumnOrDefault(); got != "noms" {
		t.Errorf("SourceNameColumnOrDefault = %q", got)
	}
	if got := cfg.SourceNumberColumnOrDefault(); got != "numeros" {
		t.Errorf("SourceNumberColumnOrDefault = %q", got)
	}
	if got := cfg.TargetNumberColumnOrDefault(); got != "numeros" {
		t.Errorf("TargetNumberColumnOrDefault = %q", got)
	}
	if got := cfg.DelimiterOrDefault(); got != "," {
		t.Errorf("DelimiterOrDefault = %q", got)
	}
	if got := cfg.EncodingOrDefault(); got != "utf-8" {
		t.Errorf("EncodingOrDefault = %q", got)
	}
	if got := cfg.ModeOrDefault(); got != "correct" {
		t.Errorf("ModeOrDefault = %q", got)
	}

	cfg = &Config{TargetNumberColumn: "tel"}
	if got := cfg.TargetNumberColumnOrDefault(); got != "tel" {
		t.Errorf("TargetNumberColumnOrDefault = %q", got)
	}
}
