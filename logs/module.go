package logs

import (
	"log/slog"

	"github.com/reusee/bftape/cmds"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

var level = new(slog.LevelVar)

func init() {
	// program output shares the terminal, so stay quiet by default
	level.Set(slog.LevelWarn)

	for name, l := range map[string]slog.Level{
		"-log-debug": slog.LevelDebug,
		"-log-info":  slog.LevelInfo,
		"-log-warn":  slog.LevelWarn,
		"-log-error": slog.LevelError,
	} {
		cmds.Define(name, cmds.Func(func() {
			level.Set(l)
		}).Desc("set log level to "+l.String()))
	}
}

type Level = *slog.LevelVar

func (Module) Level() Level {
	return level
}
