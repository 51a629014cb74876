package runs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/undotape/logs"
	"github.com/reusee/undotape/runconfigs"
)

type Module struct {
	dscope.Module
	Logs       logs.Module
	RunConfigs runconfigs.Module
}
