package tapevm

import "fmt"

type Kind uint8

const (
	KindMoveLeft Kind = iota + 1
	KindMoveRight
	KindIncrement
	KindDecrement
	KindOutput
	KindJump
	KindJumpIfEqual
	KindJumpIfNotEqual
	KindRollback
	KindHalt
)

var kindNames = map[Kind]string{
	KindMoveLeft:       "MoveLeft",
	KindMoveRight:      "MoveRight",
	KindIncrement:      "Increment",
	KindDecrement:      "Decrement",
	KindOutput:         "Output",
	KindJump:           "Jump",
	KindJumpIfEqual:    "JumpIfEqual",
	KindJumpIfNotEqual: "JumpIfNotEqual",
	KindRollback:       "Rollback",
	KindHalt:           "Halt",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Instruction is one program step.
// Only the operands meaningful for Kind are set, so instructions compare structurally with ==.
type Instruction struct {
	Kind   Kind
	Value  byte // JumpIfEqual, JumpIfNotEqual
	Target uint // Jump, JumpIfEqual, JumpIfNotEqual
	Count  uint // Rollback
}

func MoveLeft() Instruction {
	return Instruction{Kind: KindMoveLeft}
}

func MoveRight() Instruction {
	return Instruction{Kind: KindMoveRight}
}

func Increment() Instruction {
	return Instruction{Kind: KindIncrement}
}

func Decrement() Instruction {
	return Instruction{Kind: KindDecrement}
}

func Output() Instruction {
	return Instruction{Kind: KindOutput}
}

func Jump(target uint) Instruction {
	return Instruction{Kind: KindJump, Target: target}
}

func JumpIfEqual(value byte, target uint) Instruction {
	return Instruction{Kind: KindJumpIfEqual, Value: value, Target: target}
}

func JumpIfNotEqual(value byte, target uint) Instruction {
	return Instruction{Kind: KindJumpIfNotEqual, Value: value, Target: target}
}

func Rollback(count uint) Instruction {
	return Instruction{Kind: KindRollback, Count: count}
}

func Halt() Instruction {
	return Instruction{Kind: KindHalt}
}

func (i Instruction) String() string {
	switch i.Kind {
	case KindJump:
		return fmt.Sprintf("Jump(%d)", i.Target)
	case KindJumpIfEqual, KindJumpIfNotEqual:
		return fmt.Sprintf("%s(%d, %d)", i.Kind, i.Value, i.Target)
	case KindRollback:
		return fmt.Sprintf("Rollback(%d)", i.Count)
	}
	return i.Kind.String()
}
