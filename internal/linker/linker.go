// Package linker joins a target list of phone numbers against a source
// directory of name/number pairs.
//
// The join is a left outer join driven by the target: every target row
// appears once per matching source row, or once with an empty name. Keys
// are compared as exact strings after trimming.
package linker

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/phonematch/internal/phone"
	"nathanbeddoewebdev/phonematch/internal/records"
	"nathanbeddoewebdev/phonematch/internal/util"
)

// Stats summarizes a link result.
type Stats struct {
	Matched int `json:"matched"`
	Total   int `json:"total"`
}

// Rate is Matched/Total, or 0 for an empty result.
func (s Stats) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Total)
}

func (s Stats) String() string {
	return fmt.Sprintf("%d/%d matches (%.1f%%)", s.Matched, s.Total, s.Rate()*100)
}

// Result is the output of Link.
type Result struct {
	// All is the unpartitioned join.
	All *records.Table
	// Matched holds rows with a name, plus unmatched rows when
	// Options.IncludeUnmatched is set.
	Matched *records.Table
	// Unmatched holds rows whose name is empty.
	Unmatched *records.Table

	// NameColumn is the output column carrying the joined name.
	NameColumn string
	Stats      Stats
}

// Link joins target against source. The inputs are not modified. When a
// required column is missing, every missing column is reported and no
// partial result is returned.
func Link(source, target *records.Table, opts Options) (*Result, error) {
	if source == nil || target == nil {
		return nil, errors.New("linker: source and target are required")
	}
	opts = opts.trimmed()
	if err := util.ValidateStruct(opts); err != nil {
		return nil, fmt.Errorf("linker: invalid options: %w", err)
	}

	src := source.Clone()
	tgt := target.Clone()
	src.TrimColumns()
	tgt.TrimColumns()

	if err := checkColumns(src, tgt, opts); err != nil {
		return nil, err
	}

	if opts.DedupSource {
		src = src.DedupBy(opts.SourceNumberColumn)
	}
	if opts.DedupTarget {
		tgt = tgt.DedupBy(opts.TargetNumberColumn)
	}

	src.TrimValues(opts.SourceNumberColumn)
	tgt.TrimValues(opts.TargetNumberColumn)
	if opts.KeyMode != 0 {
		canon := func(v string) string { return phone.Canonicalize(v, opts.KeyMode) }
		src.MapColumn(opts.SourceNumberColumn, canon)
		tgt.MapColumn(opts.TargetNumberColumn, canon)
	}

	j := join(src, tgt, opts)
	for _, col := range j.numberColumns {
		j.table.MapColumn(col, phone.Escape)
	}

	nameIdx := j.table.Index(j.nameColumn)
	hasName := func(row []string) bool { return row[nameIdx] != "" }

	res := &Result{
		All:        j.table,
		Unmatched:  j.table.Filter(func(row []string) bool { return !hasName(row) }),
		NameColumn: j.nameColumn,
	}
	if opts.IncludeUnmatched {
		res.Matched = j.table.Clone()
	} else {
		res.Matched = j.table.Filter(hasName)
	}
	res.Stats = Stats{
		Matched: j.table.Len() - res.Unmatched.Len(),
		Total:   j.table.Len(),
	}
	return res, nil
}

func checkColumns(src, tgt *records.Table, opts Options) error {
	var errs []error
	for _, col := range []string{opts.SourceNameColumn, opts.SourceNumberColumn} {
		if !src.Has(col) {
			errs = append(errs, &MissingColumnError{Role: RoleSource, Expected: col, Found: src.Columns})
		}
	}
	if !tgt.Has(opts.TargetNumberColumn) {
		errs = append(errs, &MissingColumnError{Role: RoleTarget, Expected: opts.TargetNumberColumn, Found: tgt.Columns})
	}
	return errors.Join(errs...)
}
