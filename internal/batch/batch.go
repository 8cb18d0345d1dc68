// Package batch runs independent map generations in parallel. Each job owns
// its own field and random source; nothing is shared between jobs.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Job describes one map of a batch.
type Job struct {
	Index  int
	Seed   int64
	Output string
}

// Jobs derives count jobs from a base seed and output path. A single job
// keeps the path as given; otherwise the index is inserted before the
// extension ("map.png" becomes "map_000.png", "map_001.png", ...).
func Jobs(seed int64, output string, count int) []Job {
	jobs := make([]Job, count)
	ext := filepath.Ext(output)
	stem := strings.TrimSuffix(output, ext)
	for i := range jobs {
		path := output
		if count > 1 {
			path = fmt.Sprintf("%s_%03d%s", stem, i, ext)
		}
		jobs[i] = Job{Index: i, Seed: seed + int64(i), Output: path}
	}
	return jobs
}

// Workers resolves a requested parallelism: non-positive means GOMAXPROCS.
func Workers(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.GOMAXPROCS(0)
}

// Run executes fn for every job with at most workers in flight. The first
// error cancels the context handed to the remaining jobs and is returned.
func Run(ctx context.Context, jobs []Job, workers int, fn func(ctx context.Context, job Job) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers(workers))
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, job)
		})
	}
	return g.Wait()
}
