package tapevm

import (
	"io"
)

type VM struct {
	instructions []Instruction
	pc           uint
	tape         *Tape
	pointer      uint16
	log          UndoLog
	halted       bool

	output    io.Writer
	outputErr error
	outputBuf [1]byte
}

// New creates a VM with a zeroed tape. The instructions are borrowed and never modified.
// Output bytes are written to output; a nil output discards them.
func New(instructions []Instruction, output io.Writer) *VM {
	if output == nil {
		output = io.Discard
	}
	return &VM{
		instructions: instructions,
		tape:         new(Tape),
		output:       output,
	}
}

func (v *VM) PC() uint {
	return v.pc
}

func (v *VM) Pointer() uint16 {
	return v.pointer
}

// Cell returns the value under the pointer.
func (v *VM) Cell() byte {
	return v.tape.Read(v.pointer)
}

func (v *VM) CellAt(pointer uint16) byte {
	return v.tape.Read(pointer)
}

func (v *VM) Window(radius uint16) []byte {
	return v.tape.Window(v.pointer, radius)
}

func (v *VM) LogLen() int {
	return v.log.Len()
}

// Log returns a copy of the undo log, oldest operation first.
func (v *VM) Log() []Operation {
	return append([]Operation(nil), v.log...)
}

func (v *VM) Halted() bool {
	return v.halted
}

// OutputErr returns the first error returned by the output writer.
// Write errors never stop execution.
func (v *VM) OutputErr() error {
	return v.outputErr
}

func (v *VM) apply(op Operation) {
	switch op {
	case OpMoveLeft:
		v.pointer--
	case OpMoveRight:
		v.pointer++
	case OpIncrement:
		v.tape.Increment(v.pointer)
	case OpDecrement:
		v.tape.Decrement(v.pointer)
	}
}

func (v *VM) emit(b byte) {
	v.outputBuf[0] = b
	if _, err := v.output.Write(v.outputBuf[:]); err != nil && v.outputErr == nil {
		v.outputErr = err
	}
}
