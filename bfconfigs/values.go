package bfconfigs

import (
	"runtime"

	"github.com/reusee/bftape/cmds"
	"github.com/reusee/bftape/configs"
	"github.com/reusee/bftape/vars"
)

type StepBudget int

// nil unless given on the command line
var budgetFlag = cmds.Var[*int]("-budget")

func init() {
	cmds.Describe("-budget", "maximum steps per run, 0 for unbounded")
	cmds.Describe("-parallel", "concurrent runs when several programs are given")
}

func (Module) StepBudget(
	loader configs.Loader,
) StepBudget {
	if budget := *budgetFlag; budget != nil {
		return StepBudget(*budget)
	}
	return StepBudget(configs.First[int](loader, "step_budget"))
}

type Parallel int

var parallelFlag = cmds.Var[int]("-parallel")

func (Module) Parallel(
	loader configs.Loader,
) Parallel {
	return Parallel(vars.FirstNonZero(
		*parallelFlag,
		configs.First[int](loader, "parallel"),
		runtime.GOMAXPROCS(0),
	))
}
