package tapesyntax

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/reusee/undotape/tapevm"
)

func TestParse(t *testing.T) {
	cases := []struct {
		src      string
		expected []tapevm.Instruction
	}{
		{"", nil},
		{"+", []tapevm.Instruction{tapevm.Increment()}},
		{"+-><.", []tapevm.Instruction{
			tapevm.Increment(),
			tapevm.Decrement(),
			tapevm.MoveRight(),
			tapevm.MoveLeft(),
			tapevm.Output(),
		}},
		{"?69,420", []tapevm.Instruction{tapevm.JumpIfEqual(69, 420)}},
		{"!0,1", []tapevm.Instruction{tapevm.JumpIfNotEqual(0, 1)}},
		{"🦖69", []tapevm.Instruction{tapevm.Rollback(69)}},
		{"@12", []tapevm.Instruction{tapevm.Jump(12)}},
		{"💥", []tapevm.Instruction{tapevm.Halt()}},
		{"  +\n\t+ # comment ?x\n.", []tapevm.Instruction{
			tapevm.Increment(),
			tapevm.Increment(),
			tapevm.Output(),
		}},
		{"🦖1🦖2", []tapevm.Instruction{tapevm.Rollback(1), tapevm.Rollback(2)}},
	}

	for _, c := range cases {
		got, err := ParseString("test", c.src)
		if err != nil {
			t.Fatalf("%q: %v", c.src, err)
		}
		if !slices.Equal(got, c.expected) {
			t.Fatalf("%q: got %v", c.src, got)
		}
	}
}

func TestParseAndRun(t *testing.T) {
	program, err := Parse("test", strings.NewReader("+++++."))
	if err != nil {
		t.Fatal(err)
	}
	buf := new(bytes.Buffer)
	tapevm.New(program, buf).Run()
	if !bytes.Equal(buf.Bytes(), []byte{5}) {
		t.Fatalf("got %v", buf.Bytes())
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src    string
		err    error
		line   int
		column int
	}{
		{"x", ErrUnexpected, 1, 1},
		{"++\n +a", ErrUnexpected, 2, 3},
		{"?256,1", ErrOutOfRange, 1, 2},
		{"?1", ErrMissingComma, 1, 3},
		{"?1;2", ErrMissingComma, 1, 3},
		{"!1,", ErrNumber, 1, 4},
		{"🦖", ErrNumber, 1, 2},
		{"@", ErrNumber, 1, 2},
	}

	for _, c := range cases {
		_, err := ParseString("test", c.src)
		if !errors.Is(err, c.err) {
			t.Fatalf("%q: got %v", c.src, err)
		}
		var posErr PosError
		if !errors.As(err, &posErr) {
			t.Fatalf("%q: got %T", c.src, err)
		}
		if posErr.Pos.Line != c.line || posErr.Pos.Column != c.column {
			t.Fatalf("%q: got %d:%d", c.src, posErr.Pos.Line, posErr.Pos.Column)
		}
	}
}

func TestPosErrorMessage(t *testing.T) {
	_, err := ParseString("foo.tape", "++\n+x")
	if err == nil {
		t.Fatal("should error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "foo.tape:2:2") {
		t.Fatalf("got %s", msg)
	}
	if !strings.HasSuffix(msg, "+x\n ^\n") {
		t.Fatalf("got %q", msg)
	}
}
