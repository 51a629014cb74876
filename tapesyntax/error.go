package tapesyntax

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnexpected   = errors.New("unexpected character")
	ErrNumber       = errors.New("expecting number")
	ErrOutOfRange   = errors.New("number out of range")
	ErrNoSyntax     = errors.New("instruction has no syntax")
	ErrMissingComma = errors.New("expecting ','")
)

type PosError struct {
	Err error
	Pos Pos
}

func (p PosError) Error() string {
	if p.Pos.Source == nil {
		return p.Err.Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %s:%d:%d\n", p.Err.Error(), p.Pos.Source.Name, p.Pos.Line, p.Pos.Column)

	idx := p.Pos.Line - 1
	if idx >= 0 && idx < len(p.Pos.Source.Lines) {
		line := p.Pos.Source.Lines[idx]
		sb.WriteString(line)
		sb.WriteString("\n")
		col := p.Pos.Column - 1
		for i, r := range []rune(line) {
			if i >= col {
				break
			}
			if r == '\t' {
				sb.WriteString("\t")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("^\n")
	}

	return sb.String()
}

func (p PosError) Unwrap() error {
	return p.Err
}

func withPos(err error, pos Pos) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(PosError); ok {
		return err
	}
	return PosError{
		Err: err,
		Pos: pos,
	}
}
