package tapescript

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/reusee/undotape/tapesyntax"
	"github.com/reusee/undotape/tapevm"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Compile runs a starlark script that builds a program.
//
// Builtins append instructions and return the index of the first appended one:
//
//	left(n=1) right(n=1) inc(n=1) dec(n=1) out(n=1)
//	jump(t) jump_eq(v, t) jump_ne(v, t) rollback(n) halt()
//	emit(src)      append text syntax
//
// here() returns the index of the next instruction, patch(i, t) retargets the jump at i.
//
// print() output goes to the logger at debug level, slog.Default() unless WithLogger is given.
func Compile(name string, src io.Reader, options ...Option) ([]tapevm.Instruction, error) {
	config := compileConfig{
		logger: slog.Default(),
	}
	for _, option := range options {
		option(&config)
	}

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	b := &builder{
		name: name,
	}
	thread := &starlark.Thread{
		Name: name,
		Print: func(thread *starlark.Thread, msg string) {
			var pos string
			if thread.CallStackDepth() > 1 {
				pos = thread.CallFrame(1).Pos.String()
			}
			config.logger.Debug("script print",
				"script", thread.Name,
				"position", pos,
				"message", msg,
			)
		},
	}
	_, err = starlark.ExecFileOptions(
		&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
		},
		thread,
		name,
		content,
		b.predeclared(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	return b.instructions, nil
}

type compileConfig struct {
	logger *slog.Logger
}

type Option func(*compileConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *compileConfig) {
		c.logger = logger
	}
}

type builder struct {
	name         string
	instructions []tapevm.Instruction
}

type builtinFunc = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func (b *builder) predeclared() starlark.StringDict {
	dict := starlark.StringDict{}
	def := func(name string, fn builtinFunc) {
		dict[name] = starlark.NewBuiltin(name, fn)
	}

	def("left", b.repeat(tapevm.MoveLeft))
	def("right", b.repeat(tapevm.MoveRight))
	def("inc", b.repeat(tapevm.Increment))
	def("dec", b.repeat(tapevm.Decrement))
	def("out", b.repeat(tapevm.Output))

	def("halt", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
			return nil, err
		}
		return b.append(tapevm.Halt()), nil
	})

	def("jump", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var target int
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "t", &target); err != nil {
			return nil, err
		}
		if target < 0 {
			return nil, fmt.Errorf("%s: negative target %d", fn.Name(), target)
		}
		return b.append(tapevm.Jump(uint(target))), nil
	})

	def("jump_eq", b.conditional(tapevm.JumpIfEqual))
	def("jump_ne", b.conditional(tapevm.JumpIfNotEqual))

	def("rollback", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "n", &n); err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%s: negative count %d", fn.Name(), n)
		}
		return b.append(tapevm.Rollback(uint(n))), nil
	})

	def("emit", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var src string
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "src", &src); err != nil {
			return nil, err
		}
		instructions, err := tapesyntax.ParseString(b.name, src)
		if err != nil {
			return nil, err
		}
		return b.append(instructions...), nil
	})

	def("here", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
			return nil, err
		}
		return starlark.MakeInt(len(b.instructions)), nil
	})

	def("patch", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var index, target int
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "i", &index, "t", &target); err != nil {
			return nil, err
		}
		if index < 0 || index >= len(b.instructions) {
			return nil, fmt.Errorf("%s: no instruction at %d", fn.Name(), index)
		}
		if target < 0 {
			return nil, fmt.Errorf("%s: negative target %d", fn.Name(), target)
		}
		inst := &b.instructions[index]
		switch inst.Kind {
		case tapevm.KindJump, tapevm.KindJumpIfEqual, tapevm.KindJumpIfNotEqual:
		default:
			return nil, fmt.Errorf("%s: %v is not a jump", fn.Name(), *inst)
		}
		inst.Target = uint(target)
		return starlark.None, nil
	})

	return dict
}

func (b *builder) append(instructions ...tapevm.Instruction) starlark.Value {
	index := len(b.instructions)
	b.instructions = append(b.instructions, instructions...)
	return starlark.MakeInt(index)
}

func (b *builder) repeat(ctor func() tapevm.Instruction) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		n := 1
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "n?", &n); err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%s: negative count %d", fn.Name(), n)
		}
		index := len(b.instructions)
		for range n {
			b.instructions = append(b.instructions, ctor())
		}
		return starlark.MakeInt(index), nil
	}
}

func (b *builder) conditional(ctor func(byte, uint) tapevm.Instruction) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var value, target int
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "v", &value, "t", &target); err != nil {
			return nil, err
		}
		if value < 0 || value > 255 {
			return nil, fmt.Errorf("%s: value %d out of byte range", fn.Name(), value)
		}
		if target < 0 {
			return nil, fmt.Errorf("%s: negative target %d", fn.Name(), target)
		}
		return b.append(ctor(byte(value), uint(target))), nil
	}
}
