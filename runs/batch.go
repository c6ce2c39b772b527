package runs

import (
	"bytes"
	"context"

	"github.com/reusee/bftape/bfconfigs"
	"github.com/reusee/bftape/logs"
	"golang.org/x/sync/errgroup"
)

type Job struct {
	Name   string
	Source string
	Input  []byte
}

// Batch runs jobs concurrently, each on its own machine, and returns results
// in job order. Per-job failures are reported in Result.Err. The returned
// error is only set when ctx ends before every job started, and jobs not
// started are left as zero Results.
type Batch func(ctx context.Context, jobs []Job) ([]Result, error)

func (Module) Batch(
	exec Exec,
	parallel bfconfigs.Parallel,
	logger logs.Logger,
) Batch {
	return func(ctx context.Context, jobs []Job) ([]Result, error) {
		logger.DebugContext(ctx, "batch", "jobs", len(jobs), "parallel", int(parallel))
		results := make([]Result, len(jobs))
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(max(int(parallel), 1))
		for i, job := range jobs {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				output := new(bytes.Buffer)
				result, _ := exec(ctx, job.Name, job.Source, bytes.NewReader(job.Input), output)
				result.Output = output.Bytes()
				results[i] = result
				return nil
			})
		}
		return results, g.Wait()
	}
}
