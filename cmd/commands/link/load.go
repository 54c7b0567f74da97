package link

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/phonematch/internal/csvio"
	"nathanbeddoewebdev/phonematch/internal/linker"
	"nathanbeddoewebdev/phonematch/internal/records"

	"golang.org/x/sync/errgroup"
)

// loadTables reads the source and target files concurrently.
func loadTables(ctx context.Context, sourcePath, targetPath string, opts csvio.ReadOptions) (*records.Table, *records.Table, error) {
	var source, target *records.Table
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		source, err = csvio.ReadFile(sourcePath, opts)
		if err != nil {
			return fmt.Errorf("%s file: %w", linker.RoleSource, err)
		}
		return ctx.Err()
	})
	g.Go(func() error {
		var err error
		target, err = csvio.ReadFile(targetPath, opts)
		if err != nil {
			return fmt.Errorf("%s file: %w", linker.RoleTarget, err)
		}
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return source, target, nil
}

// writtenFiles lists the CSV files produced by writeResult.
type writtenFiles struct {
	Matched   string `json:"matched"`
	Unmatched string `json:"unmatched,omitempty"`
}

func (f writtenFiles) paths() []string {
	if f.Unmatched == "" {
		return []string{f.Matched}
	}
	return []string{f.Matched, f.Unmatched}
}

// writeResult writes the matched rows and, when requested, the unmatched rows.
func writeResult(result *linker.Result, p linkParams) (writtenFiles, error) {
	files := writtenFiles{Matched: p.out}
	if err := csvio.WriteFile(p.out, result.Matched, p.delimiter); err != nil {
		return writtenFiles{}, fmt.Errorf("failed to write %s: %w", p.out, err)
	}
	if p.unmatchedOut != "" {
		if err := csvio.WriteFile(p.unmatchedOut, result.Unmatched, p.delimiter); err != nil {
			return writtenFiles{}, fmt.Errorf("failed to write %s: %w", p.unmatchedOut, err)
		}
		files.Unmatched = p.unmatchedOut
	}
	return files, nil
}
