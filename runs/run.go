package runs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/reusee/e5"
	"github.com/reusee/undotape/logs"
	"github.com/reusee/undotape/runconfigs"
	"github.com/reusee/undotape/tapevm"
)

var (
	ErrStepLimit = errors.New("step limit exceeded")

	// file errors carry a stack trace
	wrap = e5.Wrap.With(e5.WrapStacktrace)
)

const cancelCheckInterval = 1 << 10

type Result struct {
	Steps   uint64
	Halted  bool
	PC      uint
	Pointer uint16
	LogLen  int
	VM      *tapevm.VM
}

// Run executes a program with the configured limits.
// The returned result is not nil if the program started, even when err is not nil.
type Run func(ctx context.Context, name string, program []tapevm.Instruction, output io.Writer, options ...RunOption) (*Result, error)

type runFiles struct {
	snapshot string
	resume   string
}

// RunOption overrides a configured setting for one run.
type RunOption func(*runFiles)

func WithSnapshotFile(path string) RunOption {
	return func(f *runFiles) {
		f.snapshot = path
	}
}

func WithResumeFile(path string) RunOption {
	return func(f *runFiles) {
		f.resume = path
	}
}

func (Module) Run(
	logger logs.Logger,
	newSpan logs.NewSpan,
	limit runconfigs.StepLimit,
	trace runconfigs.Trace,
	strict runconfigs.Strict,
	snapshotFile runconfigs.SnapshotFile,
	resumeFile runconfigs.ResumeFile,
) Run {
	return func(ctx context.Context, name string, program []tapevm.Instruction, output io.Writer, options ...RunOption) (result *Result, err error) {
		files := runFiles{
			snapshot: string(snapshotFile),
			resume:   string(resumeFile),
		}
		for _, option := range options {
			option(&files)
		}

		ctx, _ = newSpan(ctx, "")
		defer func() {
			err = logs.WrapSpan(ctx, err)
		}()

		if strict {
			if err := tapevm.Validate(program); err != nil {
				return nil, fmt.Errorf("validate %s: %w", name, err)
			}
		}

		vm := tapevm.New(program, output)
		if files.resume != "" {
			if err := restore(vm, files.resume); err != nil {
				return nil, fmt.Errorf("resume from %s: %w", files.resume, err)
			}
			logger.InfoContext(ctx, "resumed", "file", files.resume, "pc", vm.PC())
		}

		result = &Result{
			VM: vm,
		}
		logger.InfoContext(ctx, "run",
			"program", name,
			"instructions", len(program),
			"step_limit", limit,
		)

		for pc, inst := range vm.Steps {
			result.Steps++
			if trace {
				logger.DebugContext(ctx, "step",
					"pc", pc,
					"instruction", inst,
					"pointer", vm.Pointer(),
					"cell", vm.Cell(),
					"log", vm.LogLen(),
				)
			}
			if limit > 0 && result.Steps >= uint64(limit) {
				break
			}
			if result.Steps%cancelCheckInterval == 0 {
				if err = ctx.Err(); err != nil {
					break
				}
			}
		}

		// a pc past the end terminates on the next fetch, that is not a limit violation
		if !vm.Halted() && vm.PC() >= uint(len(program)) {
			vm.Step()
		}

		result.Halted = vm.Halted()
		result.PC = vm.PC()
		result.Pointer = vm.Pointer()
		result.LogLen = vm.LogLen()

		if err == nil && !vm.Halted() {
			err = fmt.Errorf("%w: %d", ErrStepLimit, limit)
		}
		if err == nil && vm.OutputErr() != nil {
			err = fmt.Errorf("write output: %w", vm.OutputErr())
		}

		if files.snapshot != "" {
			if e := save(vm, files.snapshot); e != nil {
				err = errors.Join(err, fmt.Errorf("snapshot: %w", e))
			} else {
				logger.InfoContext(ctx, "snapshot saved", "file", files.snapshot)
			}
		}

		logger.InfoContext(ctx, "run finished",
			"steps", result.Steps,
			"halted", result.Halted,
			"pc", result.PC,
			"pointer", result.Pointer,
			"log", result.LogLen,
		)

		return result, err
	}
}

func save(vm *tapevm.VM, path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return wrap(err)
	}
	if err := vm.Snapshot(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return wrap(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return wrap(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return wrap(err)
	}
	return nil
}

func restore(vm *tapevm.VM, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return wrap(err)
	}
	defer f.Close()
	if err := vm.Restore(f); err != nil {
		return wrap(err)
	}
	return nil
}
