package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reusee/bftape/bfc"
	"github.com/reusee/bftape/bfvm"
	"github.com/reusee/bftape/cmds"
	"github.com/reusee/bftape/configs"
	"github.com/reusee/bftape/logs"
	"github.com/reusee/bftape/modes"
	"github.com/reusee/bftape/runs"
	"github.com/reusee/bftape/sources"
	"github.com/reusee/dscope"
)

var (
	files  = cmds.Collect[string]("-file")
	inline = cmds.Var[string]("-e")
	dump   = cmds.Switch("-dump")

	listConfig = cmds.Switch("-config.paths")
)

func init() {
	cmds.Describe("-file", "program file or http(s) url, repeatable")
	cmds.Describe("-e", "program text")
	cmds.Describe("-dump", "print the compiled program instead of running it")
	cmds.Describe("-config.paths", "print the config files in use and exit")
}

const (
	exitUsage    = 64
	exitNoInput  = 66
	exitInternal = 70
)

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmds.PrintUsage(os.Stderr)
		os.Exit(exitUsage)
	}

	scope := dscope.New(
		new(runs.Module),
		new(sources.Module),
		modes.ForProduction(),
	)

	// values are looked up by providers, so config errors must surface first
	scope.Call(func(
		loader configs.Loader,
	) {
		paths, err := checkConfig(loader)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitNoInput)
		}
		if *listConfig {
			for _, path := range paths {
				fmt.Println(path)
			}
			os.Exit(0)
		}
	})

	scope.Call(func(
		load sources.LoadSource,
		exec runs.Exec,
		batch runs.Batch,
		logger logs.Logger,
	) {
		ctx := context.Background()

		var jobs []runs.Job
		if *inline != "" {
			jobs = append(jobs, runs.Job{
				Name:   "-e",
				Source: *inline,
			})
		}
		for _, location := range *files {
			source, err := load(ctx, location)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitNoInput)
			}
			jobs = append(jobs, runs.Job{
				Name:   location,
				Source: source,
			})
		}

		switch {
		case len(jobs) == 0:
			cmds.PrintUsage(os.Stderr)
			os.Exit(exitUsage)

		case *dump:
			for _, job := range jobs {
				program, err := bfc.Compile(job.Source)
				if err != nil {
					fail(err)
				}
				fmt.Printf("# %s\n%s", job.Name, program)
			}

		case len(jobs) == 1:
			out := bufio.NewWriter(os.Stdout)
			input := &flushingReader{
				Reader: os.Stdin,
				out:    out,
			}
			_, err := exec(ctx, jobs[0].Name, jobs[0].Source, input, out)
			if flushErr := out.Flush(); flushErr != nil && err == nil {
				err = fmt.Errorf("%w: %w", bfvm.ErrOutput, flushErr)
			}
			if err != nil {
				fail(err)
			}

		default:
			results, err := batch(ctx, jobs)
			if err != nil {
				fail(err)
			}
			var last error
			for _, result := range results {
				os.Stdout.Write(result.Output)
				if result.Err != nil {
					fmt.Fprintf(os.Stderr, "%s: ", result.Name)
					report(result.Err)
					last = result.Err
				}
			}
			if last != nil {
				os.Exit(exitCode(last))
			}
		}

		logger.Debug("done", "programs", len(jobs))
	})
}

// flushingReader flushes pending program output before blocking on input,
// so prompts show up before the program waits for an answer.
type flushingReader struct {
	io.Reader
	out *bufio.Writer
}

func (f *flushingReader) Read(p []byte) (int, error) {
	if err := f.out.Flush(); err != nil {
		return 0, fmt.Errorf("%w: %w", bfvm.ErrOutput, err)
	}
	return f.Reader.Read(p)
}

// checkConfig loads and validates every config file.
func checkConfig(loader configs.Loader) ([]string, error) {
	paths, err := loader.Paths()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return paths, nil
}

func report(err error) {
	code := bfvm.CodeOf(err)
	if code == 0 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Error %d: %v\n", code, err)
}

func exitCode(err error) int {
	if code := bfvm.CodeOf(err); code != 0 {
		return int(code)
	}
	return exitInternal
}

func fail(err error) {
	report(err)
	os.Exit(exitCode(err))
}
