package debugs

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/reusee/undotape/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"golang.org/x/term"
)

// Interactive reports whether Tap may read commands from stdin.
type Interactive bool

func (Module) Interactive() Interactive {
	return Interactive(term.IsTerminal(int(os.Stdin.Fd())))
}

// DumpWriter receives the globals when Tap is not interactive.
type DumpWriter io.Writer

func (Module) DumpWriter() DumpWriter {
	return os.Stderr
}

// Tap opens a starlark REPL on stdin with globals bound. It returns when the input ends.
// Without a terminal, globals are dumped instead.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
	interactive Interactive,
	dump DumpWriter,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		names := slices.Sorted(maps.Keys(globals))
		logger.InfoContext(ctx, "tap: "+what,
			"globals", names,
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		if !interactive {
			for _, name := range names {
				fmt.Fprintf(dump, "%s = %s\n", name, mappings[name].String())
			}
			return
		}

		thread := &starlark.Thread{
			Name: what,
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}
