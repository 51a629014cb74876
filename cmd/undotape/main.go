package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/reusee/dscope"
	"github.com/reusee/undotape/cmds"
	"github.com/reusee/undotape/configs"
	"github.com/reusee/undotape/debugs"
	"github.com/reusee/undotape/logs"
	"github.com/reusee/undotape/modes"
	"github.com/reusee/undotape/runconfigs"
	"github.com/reusee/undotape/runs"
	"github.com/reusee/undotape/sources"
	"github.com/reusee/undotape/tapescript"
	"github.com/reusee/undotape/tapesyntax"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var (
	fileFlag    = cmds.Collect[string]("-file", "program location, may repeat")
	jobsFlag    = cmds.Var[int]("-jobs", "programs run at the same time, default number of cpus")
	inspectFlag = cmds.Switch("-inspect", "inspect final machine state")
	formatFlag  = cmds.Switch("-format", "print the program in canonical syntax instead of running")
)

func init() {
	cmds.Fallback(cmds.Func(func(location string) {
		*fileFlag = append(*fileFlag, location)
	}).Desc("program location: file path, http(s) url, or - for stdin"))
}

const (
	exitOK        = 0
	exitFailed    = 1
	exitUsage     = 2
	exitStepLimit = 3
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func execute(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) int {
	if err := cmds.GlobalExecutor.Execute(args); err != nil {
		fmt.Fprintln(stderr, err)
		cmds.GlobalExecutor.WriteUsage(stderr)
		return exitUsage
	}

	locations := *fileFlag
	if len(locations) == 0 {
		fmt.Fprintln(stderr, "usage: undotape [flags] <file | url | -> ...")
		cmds.GlobalExecutor.WriteUsage(stderr)
		return exitUsage
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	).Fork(
		func() sources.Stdin {
			return stdin
		},
		func() logs.Writer {
			return stderr
		},
		func() debugs.DumpWriter {
			return stderr
		},
		func() debugs.Interactive {
			f, ok := stdin.(*os.File)
			return debugs.Interactive(ok && term.IsTerminal(int(f.Fd())))
		},
	)

	var err error
	scope.Call(func(
		loader configs.Loader,
	) {
		err = loader.Err()
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	scope.Call(func(
		load sources.Load,
		run runs.Run,
		runBatch runs.RunBatch,
		tap debugs.Tap,
		radius runconfigs.InspectRadius,
		logger logs.Logger,
	) {
		if len(locations) == 1 {
			err = runOne(ctx, locations[0], stdout, load, run, tap, radius, logger)
		} else {
			err = runMany(ctx, locations, stdout, load, runBatch, tap, radius, logger)
		}
		if err != nil {
			logger.Error("failed", "error", err)
		}
	})

	if err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, runs.ErrStepLimit) {
			return exitStepLimit
		}
		return exitFailed
	}
	return exitOK
}

func printFormatted(w io.Writer, program runs.Program) error {
	text, err := tapesyntax.Format(program.Instructions)
	if err != nil {
		return fmt.Errorf("format %s: %w", program.Name, err)
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func runOne(
	ctx context.Context,
	location string,
	stdout io.Writer,
	load sources.Load,
	run runs.Run,
	tap debugs.Tap,
	radius runconfigs.InspectRadius,
	logger logs.Logger,
) error {
	source, err := load(ctx, location)
	if err != nil {
		return err
	}

	program, err := source.Instructions(tapescript.WithLogger(logger))
	if err != nil {
		return err
	}

	if *formatFlag {
		return printFormatted(stdout, runs.Program{
			Name:         source.Name,
			Instructions: program,
		})
	}

	// unbuffered, output appears as the program runs
	result, err := run(ctx, source.Name, program, stdout)

	if *inspectFlag && result != nil {
		tap(ctx, "final state", debugs.VMGlobals(result.VM, uint16(radius)))
	}

	return err
}

func runMany(
	ctx context.Context,
	locations []string,
	stdout io.Writer,
	load sources.Load,
	runBatch runs.RunBatch,
	tap debugs.Tap,
	radius runconfigs.InspectRadius,
	logger logs.Logger,
) error {
	jobs := *jobsFlag
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	programs := make([]runs.Program, len(locations))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, location := range locations {
		group.Go(func() error {
			source, err := load(groupCtx, location)
			if err != nil {
				return err
			}
			instructions, err := source.Instructions(tapescript.WithLogger(logger))
			if err != nil {
				return err
			}
			programs[i] = runs.Program{
				Name:         source.Name,
				Instructions: instructions,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if *formatFlag {
		for _, program := range programs {
			if err := printFormatted(stdout, program); err != nil {
				return err
			}
		}
		return nil
	}

	var errs []error
	for _, result := range runBatch(ctx, programs, jobs) {
		if _, err := stdout.Write(result.Output); err != nil {
			return err
		}
		if *inspectFlag && result.Result != nil {
			tap(ctx, "final state of "+result.Name, debugs.VMGlobals(result.Result.VM, uint16(radius)))
		}
		if result.Err != nil {
			logger.Error("program failed", "program", result.Name, "error", result.Err)
			errs = append(errs, fmt.Errorf("%s: %w", result.Name, result.Err))
		}
	}
	return errors.Join(errs...)
}
