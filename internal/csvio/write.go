package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"nathanbeddoewebdev/phonematch/internal/records"
)

// Write encodes t as UTF-8 CSV with a header row.
func Write(w io.Writer, t *records.Table, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("csvio: failed to write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("csvio: failed to write rows: %w", err)
	}
	return nil
}

// WriteFile writes t to path, creating the parent directory if needed.
func WriteFile(path string, t *records.Table, delimiter rune) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("csvio: failed to create directory %s: %w", dir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvio: failed to create %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	if err := Write(bw, t, delimiter); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("csvio: failed to write %s: %w", path, err)
	}
	return f.Close()
}
