package tapesyntax

import (
	"errors"
	"slices"
	"testing"

	"github.com/reusee/undotape/tapevm"
)

func TestFormat(t *testing.T) {
	program := []tapevm.Instruction{
		tapevm.Increment(),
		tapevm.Decrement(),
		tapevm.MoveRight(),
		tapevm.MoveLeft(),
		tapevm.Output(),
		tapevm.Jump(0),
		tapevm.JumpIfEqual(255, 3),
		tapevm.JumpIfNotEqual(1, 42),
		tapevm.Rollback(7),
		tapevm.Halt(),
	}
	src, err := Format(program)
	if err != nil {
		t.Fatal(err)
	}
	if src != "+-><.@0?255,3!1,42🦖7💥" {
		t.Fatalf("got %s", src)
	}
	parsed, err := ParseString("format", src)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(parsed, program) {
		t.Fatalf("got %v", parsed)
	}
}

func TestFormatUnknown(t *testing.T) {
	_, err := Format([]tapevm.Instruction{
		{Kind: tapevm.Kind(200)},
	})
	if !errors.Is(err, ErrNoSyntax) {
		t.Fatalf("got %v", err)
	}
}
