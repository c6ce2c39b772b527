package runs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/bftape/bfconfigs"
	"github.com/reusee/bftape/bfvm"
	"github.com/reusee/bftape/configs"
	"github.com/reusee/bftape/logs"
	"github.com/reusee/bftape/modes"
	"github.com/reusee/dscope"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func testScope(t *testing.T, logBuf *bytes.Buffer, defs ...any) dscope.Scope {
	return dscope.New(
		modes.ForTest(),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, bfconfigs.Schema)
		},
		func() logs.Writer {
			return logBuf
		},
		func() logs.Level {
			l := new(slog.LevelVar)
			l.Set(slog.LevelDebug)
			return l
		},
	).Fork(defs...)
}

func TestExec(t *testing.T) {
	logBuf := new(bytes.Buffer)
	testScope(t, logBuf).Call(func(
		exec Exec,
	) {
		out := new(bytes.Buffer)
		result, err := exec(context.Background(), "hello", helloWorld, strings.NewReader(""), out)
		if err != nil {
			t.Fatal(err)
		}
		if out.String() != "Hello World!\n" {
			t.Fatalf("got %q", out.String())
		}
		if result.Name != "hello" || result.Ops == 0 || result.Steps == 0 {
			t.Fatalf("got %+v", result)
		}
		if !strings.Contains(logBuf.String(), "msg=finished") {
			t.Fatalf("got %s", logBuf.String())
		}
		if !strings.Contains(logBuf.String(), "logs.span=") {
			t.Fatalf("got %s", logBuf.String())
		}
	})
}

func TestExecStructuralError(t *testing.T) {
	logBuf := new(bytes.Buffer)
	testScope(t, logBuf).Call(func(
		exec Exec,
	) {
		result, err := exec(context.Background(), "bad", "+[", strings.NewReader(""), new(bytes.Buffer))
		if !errors.Is(err, bfvm.ErrStructural) {
			t.Fatalf("got %v", err)
		}
		if bfvm.CodeOf(err) != bfvm.ErrStructural {
			t.Fatal()
		}
		if result.Ops != 0 || result.Err == nil {
			t.Fatalf("got %+v", result)
		}
		if !strings.Contains(err.Error(), "span: ") {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(logBuf.String(), "code=1") {
			t.Fatalf("got %s", logBuf.String())
		}
	})
}

func TestExecBudget(t *testing.T) {
	logBuf := new(bytes.Buffer)
	testScope(t, logBuf, func() bfconfigs.StepBudget {
		return 500
	}).Call(func(
		exec Exec,
	) {
		result, err := exec(context.Background(), "loop", "+[]", strings.NewReader(""), new(bytes.Buffer))
		if !errors.Is(err, bfvm.ErrBudgetExceeded) {
			t.Fatalf("got %v", err)
		}
		if result.Steps != 500 {
			t.Fatalf("got %v", result.Steps)
		}
		if !strings.Contains(logBuf.String(), "code=8") {
			t.Fatalf("got %s", logBuf.String())
		}
	})
}

func TestBatch(t *testing.T) {
	logBuf := new(bytes.Buffer)
	testScope(t, logBuf, func() bfconfigs.Parallel {
		return 2
	}, func() bfconfigs.StepBudget {
		return 100000
	}).Call(func(
		batch Batch,
	) {
		jobs := []Job{
			{Name: "hello", Source: helloWorld},
			{Name: "inc", Source: ",+.", Input: []byte("A")},
			{Name: "underflow", Source: "<"},
			{Name: "loop", Source: "+[]"},
			{Name: "eof", Source: ",."},
		}
		results, err := batch(context.Background(), jobs)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != len(jobs) {
			t.Fatalf("got %d", len(results))
		}
		for i, result := range results {
			if result.Name != jobs[i].Name {
				t.Fatalf("got %v", result.Name)
			}
		}
		if string(results[0].Output) != "Hello World!\n" || results[0].Err != nil {
			t.Fatalf("got %+v", results[0])
		}
		if string(results[1].Output) != "B" || results[1].Err != nil {
			t.Fatalf("got %+v", results[1])
		}
		if !errors.Is(results[2].Err, bfvm.ErrUnderflow) {
			t.Fatalf("got %v", results[2].Err)
		}
		if !errors.Is(results[3].Err, bfvm.ErrBudgetExceeded) {
			t.Fatalf("got %v", results[3].Err)
		}
		if !errors.Is(results[4].Err, bfvm.ErrInput) {
			t.Fatalf("got %v", results[4].Err)
		}
	})
}

func TestBatchCanceled(t *testing.T) {
	logBuf := new(bytes.Buffer)
	testScope(t, logBuf, func() bfconfigs.Parallel {
		return 1
	}).Call(func(
		batch Batch,
	) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		jobs := []Job{
			{Name: "a", Source: "+"},
			{Name: "b", Source: "+"},
		}
		results, err := batch(ctx, jobs)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v", err)
		}
		for _, result := range results {
			if result.Name != "" {
				t.Fatalf("%s should not start", result.Name)
			}
		}
	})
}
