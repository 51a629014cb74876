package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/undotape/debugs"
	"github.com/reusee/undotape/runs"
	"github.com/reusee/undotape/sources"
)

type Module struct {
	dscope.Module
	Sources sources.Module
	Runs    runs.Module
	Debugs  debugs.Module
}
