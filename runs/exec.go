package runs

import (
	"context"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/reusee/bftape/bfc"
	"github.com/reusee/bftape/bfconfigs"
	"github.com/reusee/bftape/bfvm"
	"github.com/reusee/bftape/logs"
)

type Result struct {
	Name string
	// Ops is the compiled program length, 0 if compilation failed.
	Ops   int
	Steps int
	// Output is filled by Batch only; Exec writes straight to its writer.
	Output []byte
	Err    error
}

// Exec compiles source and runs it against input and output with the
// configured step budget.
type Exec func(ctx context.Context, name string, source string, input io.Reader, output io.Writer) (Result, error)

func (Module) Exec(
	logger logs.Logger,
	newSpan logs.NewSpan,
	budget bfconfigs.StepBudget,
) Exec {
	return func(ctx context.Context, name string, source string, input io.Reader, output io.Writer) (result Result, err error) {
		ctx, _ = newSpan(ctx, "")
		result.Name = name
		defer func() {
			if err != nil {
				code := bfvm.CodeOf(err)
				logger.WarnContext(ctx, "run failed",
					"name", name,
					"code", int(code),
					"description", code.Description(),
					"error", err,
				)
				err = logs.WrapSpan(ctx, err)
				result.Err = err
			}
		}()

		program, err := bfc.Compile(source)
		if err != nil {
			return result, err
		}
		result.Ops = len(program)
		logger.DebugContext(ctx, "compiled",
			"name", name,
			"source", humanize.Bytes(uint64(len(source))),
			"ops", len(program),
		)

		m := bfvm.NewMachine(program, input, output)
		m.Budget = int(budget)
		start := time.Now()
		err = m.Run()
		result.Steps = m.Steps
		if err != nil {
			return result, err
		}
		logger.InfoContext(ctx, "finished",
			"name", name,
			"steps", humanize.Comma(int64(m.Steps)),
			"duration", time.Since(start),
		)
		return result, nil
	}
}
