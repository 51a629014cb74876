package tapevm

// Operation is the invertible subset of instructions.
// Only operations are recorded in the undo log.
type Operation uint8

const (
	OpMoveLeft Operation = iota + 1
	OpMoveRight
	OpIncrement
	OpDecrement
)

func (o Operation) Valid() bool {
	return o >= OpMoveLeft && o <= OpDecrement
}

func (o Operation) Inverse() Operation {
	switch o {
	case OpMoveLeft:
		return OpMoveRight
	case OpMoveRight:
		return OpMoveLeft
	case OpIncrement:
		return OpDecrement
	case OpDecrement:
		return OpIncrement
	}
	panic("bad operation")
}

func (o Operation) String() string {
	switch o {
	case OpMoveLeft:
		return "MoveLeft"
	case OpMoveRight:
		return "MoveRight"
	case OpIncrement:
		return "Increment"
	case OpDecrement:
		return "Decrement"
	}
	return "Operation(?)"
}

// OperationOf maps an instruction to its operation, if it has one.
func OperationOf(inst Instruction) (Operation, bool) {
	switch inst.Kind {
	case KindMoveLeft:
		return OpMoveLeft, true
	case KindMoveRight:
		return OpMoveRight, true
	case KindIncrement:
		return OpIncrement, true
	case KindDecrement:
		return OpDecrement, true
	}
	return 0, false
}
