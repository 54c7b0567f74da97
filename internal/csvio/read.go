// Package csvio reads and writes records.Table values as column-delimited
// text. Every cell is kept as a raw string.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nathanbeddoewebdev/phonematch/internal/records"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported input encodings.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// ReadOptions controls Read.
type ReadOptions struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// Encoding of the input, EncodingUTF8 when empty.
	Encoding string
}

// Encodings returns the accepted encoding names.
func Encodings() []string {
	return []string{EncodingUTF8, EncodingLatin1}
}

// LookupEncoding resolves an encoding name. Common aliases are accepted.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		// Spreadsheets often prepend a byte-order mark; the decoder drops it.
		return unicode.UTF8BOM, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q (valid: %s)", name, strings.Join(Encodings(), ", "))
}

// Read parses r into a table. The first record is the header.
func Read(r io.Reader, opts ReadOptions) (*records.Table, error) {
	return read(r, "", opts)
}

// ReadFile reads the CSV file at path.
func ReadFile(path string, opts ReadOptions) (*records.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: failed to open %s: %w", path, err)
	}
	defer f.Close()
	return read(f, path, opts)
}

func read(r io.Reader, path string, opts ReadOptions) (*records.Table, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, enc.NewDecoder()))
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	// Hand-edited files carry bare ="..." cells and short rows.
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: path, Err: errors.New("no header row")}
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	t := records.New(header...)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{Path: path, Err: fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(row))}
		}
		t.Append(row...)
	}
	return t, nil
}
