package runconfigs

import (
	"cmp"

	"github.com/reusee/undotape/cmds"
	"github.com/reusee/undotape/configs"
)

// StepLimit bounds the number of executed instructions. Zero means unlimited.
type StepLimit uint64

var stepLimitFlag = cmds.Var[uint64]("-step-limit", "stop after this many steps")

func (Module) StepLimit(
	loader configs.Loader,
) StepLimit {
	limit := *stepLimitFlag

	// the smallest one of flag and every config file wins
	tighten := func(n uint64) {
		if n != 0 && (limit == 0 || n < limit) {
			limit = n
		}
	}
	for _, key := range []string{"step_limit", "max_steps"} {
		for n := range configs.All[uint64](loader, key) {
			tighten(n)
		}
	}

	return StepLimit(limit)
}

// Trace logs every executed instruction at debug level.
type Trace bool

var traceFlag = cmds.Switch("-trace", "log every executed instruction")

func (Module) Trace(
	loader configs.Loader,
) Trace {
	return Trace(*traceFlag || configs.First[bool](loader, "trace"))
}

// Strict rejects programs with out of range jump targets before running.
type Strict bool

var strictFlag = cmds.Switch("-strict", "reject out of range jump targets before running")

func (Module) Strict(
	loader configs.Loader,
) Strict {
	return Strict(*strictFlag || configs.First[bool](loader, "strict"))
}

// SnapshotFile is where the final machine state is written, if not empty.
type SnapshotFile string

var snapshotFlag = cmds.Var[string]("-snapshot", "write final machine state to file")

func (Module) SnapshotFile(
	loader configs.Loader,
) SnapshotFile {
	return SnapshotFile(cmp.Or(
		*snapshotFlag,
		configs.First[string](loader, "snapshot_file"),
	))
}

// InspectRadius is the number of cells on each side of the pointer shown by inspection.
type InspectRadius uint16

const defaultInspectRadius = 8

func (Module) InspectRadius(
	loader configs.Loader,
) InspectRadius {
	return InspectRadius(cmp.Or(
		configs.First[uint16](loader, "inspect_radius"),
		defaultInspectRadius,
	))
}

// ResumeFile is a snapshot to restore before running, if not empty.
type ResumeFile string

var resumeFlag = cmds.Var[string]("-resume", "start from a saved machine state")

func (Module) ResumeFile() ResumeFile {
	return ResumeFile(*resumeFlag)
}
