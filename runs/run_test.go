package runs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/undotape/configs"
	"github.com/reusee/undotape/logs"
	"github.com/reusee/undotape/modes"
	"github.com/reusee/undotape/runconfigs"
	"github.com/reusee/undotape/tapevm"
)

func testScope(t *testing.T, logBuf *bytes.Buffer, defs ...any) dscope.Scope {
	return dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		dscope.Provide(configs.NewLoader(nil, runconfigs.Schema)),
		func() logs.Writer {
			return logBuf
		},
	).Fork(defs...)
}

func loop() []tapevm.Instruction {
	return []tapevm.Instruction{
		tapevm.Increment(),
		tapevm.Jump(0),
	}
}

func TestRun(t *testing.T) {
	logBuf := new(bytes.Buffer)
	testScope(t, logBuf).Call(func(
		run Run,
	) {
		out := new(bytes.Buffer)
		result, err := run(context.Background(), "test", []tapevm.Instruction{
			tapevm.Increment(),
			tapevm.Output(),
			tapevm.Rollback(1),
			tapevm.Output(),
		}, out)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(out.Bytes(), []byte{1, 0}) {
			t.Fatalf("got %v", out.Bytes())
		}
		if result.Steps != 4 || !result.Halted || result.PC != 4 || result.LogLen != 0 {
			t.Fatalf("got %+v", result)
		}
	})
	if !strings.Contains(logBuf.String(), "run finished") {
		t.Fatalf("got %s", logBuf.String())
	}
}

func TestRunStepLimit(t *testing.T) {
	testScope(t, new(bytes.Buffer),
		dscope.Provide(runconfigs.StepLimit(100)),
	).Call(func(
		run Run,
	) {
		result, err := run(context.Background(), "loop", loop(), nil)
		if !errors.Is(err, ErrStepLimit) {
			t.Fatalf("got %v", err)
		}
		if result.Steps != 100 || result.Halted {
			t.Fatalf("got %+v", result)
		}
		if result.VM.Cell() != 50 {
			t.Fatalf("got %v", result.VM.Cell())
		}

		// exactly enough steps
		result, err = run(context.Background(), "short", []tapevm.Instruction{
			tapevm.Increment(),
		}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !result.Halted {
			t.Fatal()
		}
	})
}

func TestRunStepLimitAtEnd(t *testing.T) {
	testScope(t, new(bytes.Buffer),
		dscope.Provide(runconfigs.StepLimit(2)),
	).Call(func(
		run Run,
	) {
		result, err := run(context.Background(), "two", []tapevm.Instruction{
			tapevm.Increment(),
			tapevm.Jump(10),
		}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !result.Halted || result.PC != 10 {
			t.Fatalf("got %+v", result)
		}
	})
}

func TestRunCancel(t *testing.T) {
	testScope(t, new(bytes.Buffer)).Call(func(
		run Run,
	) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result, err := run(ctx, "loop", loop(), nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v", err)
		}
		if result.Steps != cancelCheckInterval {
			t.Fatalf("got %v", result.Steps)
		}
	})
}

func TestRunStrict(t *testing.T) {
	testScope(t, new(bytes.Buffer),
		dscope.Provide(runconfigs.Strict(true)),
	).Call(func(
		run Run,
	) {
		_, err := run(context.Background(), "bad", []tapevm.Instruction{
			tapevm.Jump(5),
		}, nil)
		var targetErr *tapevm.TargetError
		if !errors.As(err, &targetErr) {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(err.Error(), "span: ") {
			t.Fatalf("got %v", err)
		}
	})
}

func TestRunTrace(t *testing.T) {
	logBuf := new(bytes.Buffer)
	defer logs.SetLevel(slog.LevelInfo)
	testScope(t, logBuf,
		dscope.Provide(runconfigs.Trace(true)),
	).Call(func(
		run Run,
	) {
		logs.SetLevel(slog.LevelDebug)
		_, err := run(context.Background(), "trace", []tapevm.Instruction{
			tapevm.MoveRight(),
		}, nil)
		if err != nil {
			t.Fatal(err)
		}
	})
	if !strings.Contains(logBuf.String(), "instruction=MoveRight") {
		t.Fatalf("got %s", logBuf.String())
	}
}

func TestRunSnapshotResume(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.gob")

	program := []tapevm.Instruction{
		tapevm.Increment(),
		tapevm.Increment(),
		tapevm.Output(),
		tapevm.Rollback(1),
		tapevm.Output(),
	}

	testScope(t, new(bytes.Buffer),
		dscope.Provide(runconfigs.StepLimit(3)),
		dscope.Provide(runconfigs.SnapshotFile(path)),
	).Call(func(
		run Run,
	) {
		out := new(bytes.Buffer)
		_, err := run(context.Background(), "first", program, out)
		if !errors.Is(err, ErrStepLimit) {
			t.Fatalf("got %v", err)
		}
		if !bytes.Equal(out.Bytes(), []byte{2}) {
			t.Fatalf("got %v", out.Bytes())
		}
	})

	testScope(t, new(bytes.Buffer),
		dscope.Provide(runconfigs.ResumeFile(path)),
	).Call(func(
		run Run,
	) {
		out := new(bytes.Buffer)
		result, err := run(context.Background(), "second", program, out)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(out.Bytes(), []byte{1}) {
			t.Fatalf("got %v", out.Bytes())
		}
		if result.Steps != 2 {
			t.Fatalf("got %v", result.Steps)
		}
	})
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken")
}

func TestRunOutputError(t *testing.T) {
	testScope(t, new(bytes.Buffer)).Call(func(
		run Run,
	) {
		result, err := run(context.Background(), "out", []tapevm.Instruction{
			tapevm.Output(),
			tapevm.Increment(),
		}, brokenWriter{})
		if err == nil || !strings.Contains(err.Error(), "write output: broken") {
			t.Fatalf("got %v", err)
		}
		if !result.Halted || result.VM.Cell() != 1 {
			t.Fatalf("got %+v", result)
		}
	})
}

func TestRunResumeMissing(t *testing.T) {
	testScope(t, new(bytes.Buffer),
		dscope.Provide(runconfigs.ResumeFile(filepath.Join(t.TempDir(), "missing"))),
	).Call(func(
		run Run,
	) {
		result, err := run(context.Background(), "p", []tapevm.Instruction{
			tapevm.Halt(),
		}, new(bytes.Buffer))
		if err == nil {
			t.Fatal("should error")
		}
		if result != nil {
			t.Fatalf("got %v", result)
		}
		if !strings.Contains(err.Error(), "resume from") {
			t.Fatalf("got %v", err)
		}
	})
}
