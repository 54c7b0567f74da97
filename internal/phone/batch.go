package phone

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny inputs on a single goroutine.
const minChunk = 512

// BatchOptions controls NormalizeAll.
type BatchOptions struct {
	// Workers caps concurrent goroutines. Zero means GOMAXPROCS.
	Workers int
	// Escape wraps every result in the ="..." spreadsheet convention.
	Escape bool
}

// NormalizeAll canonicalizes every value under mode. Rows are processed
// concurrently in contiguous chunks and written back by index, so the
// output order always matches the input order.
func NormalizeAll(ctx context.Context, values []string, mode Mode, opts BatchOptions) ([]string, error) {
	out := make([]string, len(values))
	if len(values) == 0 {
		return out, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := (len(values) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(values); start += chunk {
		end := min(start+chunk, len(values))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%minChunk == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				v := Canonicalize(values[i], mode)
				if opts.Escape {
					v = Escape(v)
				}
				out[i] = v
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
