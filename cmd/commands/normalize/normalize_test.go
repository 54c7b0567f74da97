package normalize

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/phonematch/internal/config"

	"github.com/google/go-cmp/cmp"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func execNormalize(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

const contactsCSV = "numeros,noms\n23712345678,Alice\n=\"237699999999\",Bob\n"

const contactsCorrected = "numeros,noms\n" +
	"\"=\"\"237612345678\"\"\",Alice\n" +
	"\"=\"\"237699999999\"\"\",Bob\n"

func TestNormalize_Values(t *testing.T) {
	setupTestConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default mode escapes",
			args: []string{"23712345678", " 237612345678 "},
			want: "=\"237612345678\"\n=\"237612345678\"\n",
		},
		{
			name: "strip without escape",
			args: []string{"--mode", "strip", "--no-escape", "=\"237612345678\"", "23712345678"},
			want: "23712345678\n23712345678\n",
		},
		{
			name: "standardize inserts digit",
			args: []string{"--mode", "standardize", "--no-escape", "237712345678"},
			want: "2376712345678\n",
		},
		{
			name: "empty stays empty",
			args: []string{""},
			want: "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execNormalize(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, stdout); diff != "" {
				t.Errorf("unexpected output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_ModeFromConfig(t *testing.T) {
	path := setupTestConfig(t)
	cfg := &config.Config{Mode: "strip-extra-digit"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _, err := execNormalize(t, "--no-escape", "237612345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "23712345678\n" {
		t.Errorf("expected configured mode to apply, got %q", stdout)
	}
}

func TestNormalize_Check(t *testing.T) {
	setupTestConfig(t)

	stdout, _, err := execNormalize(t, "--check", "--no-escape", "237677123456", "12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), stdout)
	}
	if !strings.HasSuffix(lines[0], "  valid") {
		t.Errorf("expected first number to be valid, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "invalid") {
		t.Errorf("expected second number to be invalid, got %q", lines[1])
	}
}

func TestNormalize_FileDefaultOutput(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "contacts.csv", contactsCSV)

	stdout, _, err := execNormalize(t, "-i", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := filepath.Join(dir, "contacts_normalized.csv")
	if diff := cmp.Diff(contactsCorrected, readFile(t, out)); diff != "" {
		t.Errorf("unexpected output file (-want +got):\n%s", diff)
	}
	if !strings.Contains(stdout, "INPUT") || !strings.Contains(stdout, out) {
		t.Errorf("expected report with output path, got:\n%s", stdout)
	}
	// The input file is never modified.
	if readFile(t, in) != contactsCSV {
		t.Errorf("input file was modified")
	}
}

func TestNormalize_FileToStdout(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "contacts.csv", contactsCSV)

	stdout, stderr, err := execNormalize(t, "-i", in, "--out", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(contactsCorrected, stdout); diff != "" {
		t.Errorf("unexpected stdout (-want +got):\n%s", diff)
	}
	if !strings.Contains(stderr, "(stdout)") {
		t.Errorf("expected report on stderr, got:\n%s", stderr)
	}
}

func TestNormalize_SeveralFilesToOutDir(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "tel\n23712345678\n")
	b := writeFile(t, dir, "b.csv", "tel;ville\n237612345678;Yaounde\n")
	outDir := filepath.Join(dir, "normalized")

	_, _, err := execNormalize(t,
		"-i", a, "-i", b,
		"--out-dir", outDir,
		"--column", "tel",
		"--mode", "standardize",
		"--no-escape",
		"--delimiter", ";",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := readFile(t, filepath.Join(outDir, "a_normalized.csv")); got != "tel\n23712345678\n" {
		t.Errorf("unexpected a output: %q", got)
	}
	if got := readFile(t, filepath.Join(outDir, "b_normalized.csv")); got != "tel;ville\n23712345678;Yaounde\n" {
		t.Errorf("unexpected b output: %q", got)
	}
}

func TestNormalize_Errors(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "contacts.csv", contactsCSV)
	other := writeFile(t, dir, "other.csv", contactsCSV)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "nothing to do", args: []string{}, want: "nothing to normalize"},
		{name: "unknown mode", args: []string{"--mode", "bogus", "237"}, want: "unknown normalization mode"},
		{name: "missing column", args: []string{"-i", in, "--column", "tel"}, want: `column "tel" not found in input file`},
		{name: "out with several inputs", args: []string{"-i", in, "-i", other, "--out", "x.csv"}, want: "--out requires exactly one --input"},
		{name: "missing file", args: []string{"-i", filepath.Join(dir, "nope.csv")}, want: "failed to open"},
		{name: "negative workers", args: []string{"--workers", "-1", "237"}, want: "--workers must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execNormalize(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("expected stderr to contain %q, got:\n%s", tt.want, stderr)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		p     normalizeParams
		input string
		want  string
	}{
		{name: "next to input", input: filepath.Join("data", "list.csv"), want: filepath.Join("data", "list_normalized.csv")},
		{name: "out dir", p: normalizeParams{outDir: "out"}, input: filepath.Join("data", "list.txt"), want: filepath.Join("out", "list_normalized.txt")},
		{name: "no extension", input: "list", want: "list_normalized.csv"},
		{name: "explicit", p: normalizeParams{out: "x.csv"}, input: "list.csv", want: "x.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.p, tt.input); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
