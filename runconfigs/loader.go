package runconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/undotape/cmds"
	"github.com/reusee/undotape/configs"
	"github.com/reusee/undotape/logs"
)

//go:embed schema.cue
var Schema string

var configFlag = cmds.Collect[string]("-config", "load config file, may repeat")

var filenames = []string{
	"undotape.cue",
	".undotape.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {

	// explicit files first
	paths := append([]string(nil), *configFlag...)

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

	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}

	return configs.NewLoader(paths, Schema)
}
