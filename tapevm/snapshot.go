package tapevm

import (
	"encoding/gob"
	"fmt"
	"io"
)

// State is the mutable part of a VM, as encoded by Snapshot.
type State struct {
	PC      uint
	Pointer uint16
	Tape    Tape
	Log     []Operation
	Halted  bool
}

func (v *VM) State() State {
	return State{
		PC:      v.pc,
		Pointer: v.pointer,
		Tape:    *v.tape,
		Log:     v.Log(),
		Halted:  v.halted,
	}
}

func (v *VM) Snapshot(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(v.State()); err != nil {
		return err
	}
	return nil
}

// Restore replaces the VM state with a snapshot. The instructions are kept.
// On error the VM is unchanged.
func (v *VM) Restore(r io.Reader) error {
	var state State
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&state); err != nil {
		return err
	}
	for i, op := range state.Log {
		if !op.Valid() {
			return fmt.Errorf("bad operation %d at log index %d", op, i)
		}
	}
	v.pc = state.PC
	v.pointer = state.Pointer
	*v.tape = state.Tape
	v.log = UndoLog(state.Log)
	v.halted = state.Halted
	return nil
}
