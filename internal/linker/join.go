package linker

import (
	"strings"

	"nathanbeddoewebdev/phonematch/internal/records"
)

const (
	targetSuffix = "_x"
	sourceSuffix = "_y"
)

type joined struct {
	table         *records.Table
	nameColumn    string
	numberColumns []string
}

// join performs the left outer join of tgt against src. Output columns are
// the target columns, then the source number column when it is not the
// shared key, then the source name column. Name clashes between target and
// source columns get _x / _y suffixes.
func join(src, tgt *records.Table, opts Options) joined {
	srcNumIdx := src.Index(opts.SourceNumberColumn)
	srcNameIdx := src.Index(opts.SourceNameColumn)
	tgtNumIdx := tgt.Index(opts.TargetNumberColumn)

	sharedKey := strings.TrimSpace(opts.SourceNumberColumn) == strings.TrimSpace(opts.TargetNumberColumn)

	srcCols := []int{}
	if !sharedKey {
		srcCols = append(srcCols, srcNumIdx)
	}
	srcCols = append(srcCols, srcNameIdx)

	clash := make(map[string]bool, len(srcCols))
	for _, i := range srcCols {
		if tgt.Has(src.Columns[i]) {
			clash[src.Columns[i]] = true
		}
	}

	columns := make([]string, 0, len(tgt.Columns)+len(srcCols))
	for _, c := range tgt.Columns {
		if clash[c] {
			c += targetSuffix
		}
		columns = append(columns, c)
	}
	srcOut := make([]string, len(srcCols))
	for k, i := range srcCols {
		c := src.Columns[i]
		if clash[c] {
			c += sourceSuffix
		}
		srcOut[k] = c
		columns = append(columns, c)
	}

	out := &records.Table{Columns: columns}
	j := joined{
		table:         out,
		nameColumn:    srcOut[len(srcOut)-1],
		numberColumns: []string{columns[tgtNumIdx]},
	}
	if !sharedKey {
		j.numberColumns = append(j.numberColumns, srcOut[0])
	}

	// Keys compare as exact strings, so an empty key matches an empty key.
	bySourceKey := make(map[string][]int, len(src.Rows))
	for r, row := range src.Rows {
		key := cell(row, srcNumIdx)
		bySourceKey[key] = append(bySourceKey[key], r)
	}

	for _, trow := range tgt.Rows {
		matches := bySourceKey[cell(trow, tgtNumIdx)]
		if len(matches) == 0 {
			out.Rows = append(out.Rows, joinRow(trow, len(tgt.Columns), nil, srcCols))
			continue
		}
		for _, r := range matches {
			out.Rows = append(out.Rows, joinRow(trow, len(tgt.Columns), src.Rows[r], srcCols))
		}
	}
	return j
}

// joinRow concatenates a target row with the selected source cells. A nil
// source row yields empty source values.
func joinRow(trow []string, width int, srow []string, srcCols []int) []string {
	row := make([]string, width, width+len(srcCols))
	copy(row, trow)
	for _, i := range srcCols {
		row = append(row, cell(srow, i))
	}
	return row
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
