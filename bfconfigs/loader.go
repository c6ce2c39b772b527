package bfconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/bftape/cmds"
	"github.com/reusee/bftape/configs"
	"github.com/reusee/bftape/logs"
)

//go:embed schema.cue
var Schema string

var configFiles = cmds.Collect[string]("-config")

func init() {
	cmds.Describe("-config", "read an extra config file, repeatable")
	cmds.Define("-config.help", cmds.Func(func() {
		os.Stdout.WriteString(Schema)
		os.Exit(0)
	}).Desc("print the config file schema"))
}

var filenames = []string{
	"bftape.cue",
	".bftape.cue",
}

// ConfigPaths lists config files in precedence order: explicit -config
// arguments, the working directory, the user config dir, then /etc.
func ConfigPaths() []string {
	paths := append([]string(nil), *configFiles...)

	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return paths
}

func (Module) Loader(
	logger logs.Logger,
) configs.Loader {
	paths := ConfigPaths()
	if len(paths) > 0 {
		logger.Debug("config files", "paths", paths)
	}
	return configs.NewLoader(paths, Schema)
}
