package cmds

import "io"

var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

func Describe(name string, desc string) {
	GlobalExecutor.Describe(name, desc)
}

func Execute(args []string) error {
	return GlobalExecutor.Execute(args)
}

func PrintUsage(w io.Writer) {
	printCommands(w, GlobalExecutor.commands)
}

// Var defines `name <value>` setting the returned pointer.
func Var[T any](name string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}))
	return &value
}

// Switch defines `name` setting true and `!name` setting false.
func Switch(name string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}))
	Define("!"+name, Func(func() {
		value = false
	}))
	return &value
}

// Collect defines `name <value>` appending to the returned slice.
func Collect[T any](name string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}))
	return &value
}
