package tapevm

import "fmt"

type TargetError struct {
	Index       uint
	Instruction Instruction
	Len         int
}

func (t *TargetError) Error() string {
	return fmt.Sprintf("instruction %d: %v: target out of range [0, %d]", t.Index, t.Instruction, t.Len)
}

// Validate reports the first jump whose target is beyond the end of the program.
// A target equal to the program length is accepted, it is the normal end of the program.
// The VM itself never requires this check.
func Validate(instructions []Instruction) error {
	for i, inst := range instructions {
		switch inst.Kind {
		case KindJump, KindJumpIfEqual, KindJumpIfNotEqual:
			if inst.Target > uint(len(instructions)) {
				return &TargetError{
					Index:       uint(i),
					Instruction: inst,
					Len:         len(instructions),
				}
			}
		}
	}
	return nil
}
