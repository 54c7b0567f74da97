package link

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/phonematch/internal/config"

	"github.com/google/go-cmp/cmp"
)

// setupTestConfig points the config package at a temp file and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// writeFile writes content to name inside dir and returns the full path.
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

// execLink runs the link command with the given args and returns stdout,
// stderr and the execution error.
func execLink(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

const (
	sourceCSV = "numeros,noms\n237612345678,Alice\n237699999999,Bob\n"
	targetCSV = "numeros\n237612345678\n237600000000\n"
)

func TestLink_WritesMatchedRows(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	tgt := writeFile(t, dir, "target.csv", targetCSV)
	out := filepath.Join(dir, "out", "result.csv")

	stdout, _, err := execLink(t, "--source", src, "--target", tgt, "--out", out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(stdout, "1/2 matches (50.0%)\n") {
		t.Errorf("expected statistics line first, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, out) {
		t.Errorf("expected output path in summary, got:\n%s", stdout)
	}

	want := "numeros,noms\n\"=\"\"237612345678\"\"\",Alice\n"
	if diff := cmp.Diff(want, readFile(t, out)); diff != "" {
		t.Errorf("unexpected output file (-want +got):\n%s", diff)
	}
}

func TestLink_IncludeUnmatchedAndUnmatchedOut(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	tgt := writeFile(t, dir, "target.csv", targetCSV)
	out := filepath.Join(dir, "all.csv")
	unmatched := filepath.Join(dir, "unknown.csv")

	_, _, err := execLink(t,
		"--source", src, "--target", tgt,
		"--out", out, "--unmatched-out", unmatched,
		"--include-unmatched",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantAll := "numeros,noms\n" +
		"\"=\"\"237612345678\"\"\",Alice\n" +
		"\"=\"\"237600000000\"\"\",\n"
	if diff := cmp.Diff(wantAll, readFile(t, out)); diff != "" {
		t.Errorf("unexpected matched file (-want +got):\n%s", diff)
	}

	wantUnmatched := "numeros,noms\n\"=\"\"237600000000\"\"\",\n"
	if diff := cmp.Diff(wantUnmatched, readFile(t, unmatched)); diff != "" {
		t.Errorf("unexpected unmatched file (-want +got):\n%s", diff)
	}
}

func TestLink_CSVOutputToStdout(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	tgt := writeFile(t, dir, "target.csv", targetCSV)
	out := filepath.Join(dir, "never.csv")

	stdout, _, err := execLink(t, "--source", src, "--target", tgt, "--out", out, "-o", "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "numeros,noms\n\"=\"\"237612345678\"\"\",Alice\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("unexpected stdout (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("expected no file to be written in csv mode")
	}
}

func TestLink_JSONSummary(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	tgt := writeFile(t, dir, "target.csv", targetCSV)
	out := filepath.Join(dir, "result.csv")

	stdout, _, err := execLink(t, "--source", src, "--target", tgt, "--out", out, "-o", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got linkSummary
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	want := linkSummary{
		Matched:   1,
		Total:     2,
		Rate:      0.5,
		Unmatched: 1,
		Files:     writtenFiles{Matched: out},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestLink_KeyModeMatchesAcrossShapes(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", "numeros,noms\n237612345678,Alice\n")
	tgt := writeFile(t, dir, "target.csv", "numeros\n23712345678\n")
	out := filepath.Join(dir, "result.csv")

	stdout, _, err := execLink(t, "--source", src, "--target", tgt, "--out", out, "--key-mode", "standardize")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(stdout, "1/1 matches (100.0%)") {
		t.Errorf("expected a match, got:\n%s", stdout)
	}

	want := "numeros,noms\n\"=\"\"23712345678\"\"\",Alice\n"
	if diff := cmp.Diff(want, readFile(t, out)); diff != "" {
		t.Errorf("unexpected output file (-want +got):\n%s", diff)
	}
}

func TestLink_ColumnsFromConfig(t *testing.T) {
	path := setupTestConfig(t)
	cfg := &config.Config{SourceNameColumn: "nom", TargetNumberColumn: "tel", Delimiter: ";"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", "numeros;nom\n237612345678;Alice\n")
	tgt := writeFile(t, dir, "target.csv", "tel;ville\n237612345678;Douala\n")
	out := filepath.Join(dir, "result.csv")

	_, _, err := execLink(t, "--source", src, "--target", tgt, "--out", out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "tel;ville;numeros;nom\n" +
		"\"=\"\"237612345678\"\"\";Douala;\"=\"\"237612345678\"\"\";Alice\n"
	if diff := cmp.Diff(want, readFile(t, out)); diff != "" {
		t.Errorf("unexpected output file (-want +got):\n%s", diff)
	}
}

func TestLink_MissingColumns(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", "numero,nom\n237612345678,Alice\n")
	tgt := writeFile(t, dir, "target.csv", targetCSV)
	out := filepath.Join(dir, "result.csv")

	_, stderr, err := execLink(t, "--source", src, "--target", tgt, "--out", out)
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{
		`column "noms" not found in source file; columns found: [numero, nom]`,
		`column "numeros" not found in source file`,
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected stderr to contain %q, got:\n%s", want, stderr)
		}
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("expected no output file on error")
	}
}

func TestLink_ParseFailure(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	tgt := writeFile(t, dir, "target.csv", "numeros\n237612345678,extra,fields\n")

	_, stderr, err := execLink(t, "--source", src, "--target", tgt, "--out", filepath.Join(dir, "r.csv"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(stderr, "unable to read CSV") {
		t.Errorf("expected parse failure message, got:\n%s", stderr)
	}
}

func TestLink_FlagValidation(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	tgt := writeFile(t, dir, "target.csv", targetCSV)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing inputs",
			args: []string{"--source", src, "-o", "table"},
			want: "--source and --target are required",
		},
		{
			name: "unknown key mode",
			args: []string{"--source", src, "--target", tgt, "--key-mode", "bogus"},
			want: "unknown normalization mode",
		},
		{
			name: "bad delimiter",
			args: []string{"--source", src, "--target", tgt, "--delimiter", ";;"},
			want: "delimiter must be a single character",
		},
		{
			name: "bad encoding",
			args: []string{"--source", src, "--target", tgt, "--encoding", "utf-16"},
			want: "unsupported encoding",
		},
		{
			name: "bad output format",
			args: []string{"--source", src, "--target", tgt, "-o", "xml"},
			want: "unknown output format",
		},
		{
			name: "same name and number column",
			args: []string{"--source", src, "--target", tgt, "--source-name-col", "numeros"},
			want: "invalid options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execLink(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("expected stderr to contain %q, got:\n%s", tt.want, stderr)
			}
		})
	}
}
