package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/ghcn-daily-etl/internal/domain"
)

// BatchResult is the outcome of decoding one line of a batch.
type BatchResult struct {
	Line   int // zero-based index into the input
	Record domain.Record
	Err    error
}

// DecodeBatch decodes lines concurrently with at most workers goroutines and
// returns one result per line, in input order. A failing line does not stop
// the others. Lines not yet started when ctx is cancelled report ctx.Err().
func DecodeBatch(ctx context.Context, lines []string, workers int) []BatchResult {
	if workers < 1 {
		workers = 1
	}
	results := make([]BatchResult, len(lines))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, line := range lines {
		g.Go(func() error {
			results[i].Line = i
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Record, results[i].Err = domain.DecodeRecord(line)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
