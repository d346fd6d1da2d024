package core

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/planner"
)

// Options control a batch run.
type Options struct {
	// Concurrency bounds the number of jobs generated at once. Zero means
	// runtime.NumCPU().
	Concurrency int
	// FailFast stops the run at the first failed job. Otherwise every job runs
	// and failures are recorded on their results.
	FailFast bool
}

// Result is the outcome of one job.
type Result struct {
	Job      planner.Job
	Output   string
	Err      error
	Duration time.Duration
}

// Run generates jobs concurrently and returns one result per job, in job order.
//
// Cancellation is checked between jobs only; a job that has started always
// finishes. Jobs that never started carry the context error. With FailFast the
// first failure cancels the remaining jobs and is returned; without it, Run
// returns an error only when ctx was cancelled.
func Run(ctx context.Context, gen *generator.Generator, jobs []planner.Job, opts Options) ([]Result, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]Result, len(jobs))
	for i := range jobs {
		results[i].Job = jobs[i]
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range jobs {
		res := &results[i]
		if err := gctx.Err(); err != nil {
			res.Err = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				res.Err = err
				return nil
			}
			start := time.Now()
			slog.Debug("Generating", "job", res.Job.Name, "path", res.Job.Path)
			res.Output, res.Err = gen.GenerateScoped(res.Job.Scope, res.Job.Node)
			res.Duration = time.Since(start)
			if res.Err != nil {
				res.Err = errors.Wrapf(res.Err, "job %s", res.Job.Name)
				slog.Warn("Generation failed", "job", res.Job.Name, "error", res.Err)
				if opts.FailFast {
					return res.Err
				}
				return nil
			}
			slog.Debug("Generated", "job", res.Job.Name, "bytes", len(res.Output), "duration", res.Duration)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
