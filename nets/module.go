package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/undotape/logs"
)

// Module provides an HTTP client that honours proxy settings for remote hosts.
// It expects a configs.Loader and a modes.Mode from the enclosing scope.
type Module struct {
	dscope.Module
	Logs logs.Module
}
