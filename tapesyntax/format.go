package tapesyntax

import (
	"fmt"
	"strings"

	"github.com/reusee/undotape/tapevm"
)

// Format renders instructions in the text syntax accepted by Parse.
func Format(instructions []tapevm.Instruction) (string, error) {
	var sb strings.Builder
	for i, inst := range instructions {
		switch inst.Kind {
		case tapevm.KindIncrement:
			sb.WriteByte('+')
		case tapevm.KindDecrement:
			sb.WriteByte('-')
		case tapevm.KindMoveRight:
			sb.WriteByte('>')
		case tapevm.KindMoveLeft:
			sb.WriteByte('<')
		case tapevm.KindOutput:
			sb.WriteByte('.')
		case tapevm.KindHalt:
			sb.WriteRune(HaltRune)
		case tapevm.KindJump:
			fmt.Fprintf(&sb, "@%d", inst.Target)
		case tapevm.KindJumpIfEqual:
			fmt.Fprintf(&sb, "?%d,%d", inst.Value, inst.Target)
		case tapevm.KindJumpIfNotEqual:
			fmt.Fprintf(&sb, "!%d,%d", inst.Value, inst.Target)
		case tapevm.KindRollback:
			fmt.Fprintf(&sb, "%c%d", RollbackRune, inst.Count)
		default:
			return "", fmt.Errorf("instruction %d: %w: %v", i, ErrNoSyntax, inst)
		}
	}
	return sb.String(), nil
}
