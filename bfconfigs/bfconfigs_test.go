package bfconfigs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/reusee/bftape/cmds"
	"github.com/reusee/bftape/configs"
	"github.com/reusee/bftape/modes"
	"github.com/reusee/dscope"
)

func loaderFor(t *testing.T, content string) configs.Loader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bftape.cue")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return configs.NewLoader([]string{path}, Schema)
}

func TestValuesFromConfig(t *testing.T) {
	loader := loaderFor(t, `
step_budget: 1000
parallel: 3
`)
	dscope.New(
		modes.ForTest(),
		new(Module),
	).Fork(
		func() configs.Loader {
			return loader
		},
	).Call(func(
		budget StepBudget,
		parallel Parallel,
	) {
		if budget != 1000 {
			t.Fatalf("got %v", budget)
		}
		if parallel != 3 {
			t.Fatalf("got %v", parallel)
		}
	})
}

func TestBudgetFlagOverridesConfig(t *testing.T) {
	t.Cleanup(func() {
		*budgetFlag = nil
	})
	loader := loaderFor(t, `step_budget: 1000`)

	for _, c := range []struct {
		args   []string
		expect StepBudget
	}{
		{nil, 1000},
		{[]string{"-budget", "0"}, 0},
		{[]string{"-budget", "42"}, 42},
	} {
		*budgetFlag = nil
		if err := cmds.Execute(c.args); err != nil {
			t.Fatal(err)
		}
		dscope.New(
			modes.ForTest(),
			new(Module),
		).Fork(
			func() configs.Loader {
				return loader
			},
		).Call(func(
			budget StepBudget,
		) {
			if budget != c.expect {
				t.Fatalf("%v: got %v", c.args, budget)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	dscope.New(
		modes.ForTest(),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, Schema)
		},
	).Call(func(
		budget StepBudget,
		parallel Parallel,
	) {
		if budget != 0 {
			t.Fatalf("got %v", budget)
		}
		if int(parallel) != runtime.GOMAXPROCS(0) {
			t.Fatalf("got %v", parallel)
		}
	})
}

func TestSchema(t *testing.T) {
	for _, content := range []string{
		`step_budget: -1`,
		`parallel: 0`,
		`tape_length: 100`,
	} {
		loader := loaderFor(t, content)
		var n int
		if err := loader.AssignFirst("step_budget", &n); err == nil {
			t.Fatalf("%s: should error", content)
		}
	}
}

func TestConfigPaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".bftape.cue"), []byte("parallel: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	paths := ConfigPaths()
	if len(paths) == 0 || paths[0] != filepath.Join(dir, ".bftape.cue") {
		t.Fatalf("got %v", paths)
	}
}
