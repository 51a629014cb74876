package tapevm

// Steps executes instructions until the program terminates, yielding each executed instruction
// with the counter it was fetched from. Stopping the iteration pauses the VM; it can be resumed.
func (v *VM) Steps(yield func(uint, Instruction) bool) {
	for !v.halted {
		if v.pc >= uint(len(v.instructions)) {
			v.halted = true
			return
		}
		pc := v.pc
		inst := v.instructions[pc]
		v.exec(inst)
		if !yield(pc, inst) {
			return
		}
	}
}

// Step executes one instruction and reports whether the VM has not terminated.
func (v *VM) Step() bool {
	for range v.Steps {
		break
	}
	if !v.halted && v.pc >= uint(len(v.instructions)) {
		v.halted = true
	}
	return !v.halted
}

func (v *VM) Run() {
	for range v.Steps {
	}
}

func (v *VM) exec(inst Instruction) {
	if op, ok := OperationOf(inst); ok {
		v.apply(op)
		v.log.Push(op)
		v.pc++
		return
	}

	switch inst.Kind {

	case KindOutput:
		v.emit(v.Cell())

	case KindJump:
		v.pc = inst.Target
		return

	case KindJumpIfEqual:
		if v.Cell() == inst.Value {
			v.pc = inst.Target
			return
		}

	case KindJumpIfNotEqual:
		if v.Cell() != inst.Value {
			v.pc = inst.Target
			return
		}

	case KindRollback:
		v.Rollback(inst.Count)

	case KindHalt:
		v.halted = true
		return

	}

	// unknown kinds fall through as no-ops
	v.pc++
}
