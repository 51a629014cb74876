package tapesyntax

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/reusee/undotape/tapevm"
)

const (
	HaltRune     = '💥'
	RollbackRune = '🦖'
)

type Parser struct {
	source *Source
	reader *bufio.Reader

	currPos Pos
	prevPos Pos
}

func NewParser(source *Source) *Parser {
	return &Parser{
		source: source,
		reader: bufio.NewReader(strings.NewReader(source.Content)),
		currPos: Pos{
			Source: source,
			Line:   1,
			Column: 1,
		},
	}
}

// Parse reads a whole program.
func Parse(name string, r io.Reader) ([]tapevm.Instruction, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewParser(NewSource(name, string(content))).Parse()
}

func ParseString(name string, content string) ([]tapevm.Instruction, error) {
	return NewParser(NewSource(name, content)).Parse()
}

func (p *Parser) Parse() (ret []tapevm.Instruction, err error) {
	for {
		inst, ok, err := p.parseNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			return ret, nil
		}
		ret = append(ret, inst)
	}
}

func (p *Parser) readRune() (rune, error) {
	r, _, err := p.reader.ReadRune()
	if err != nil {
		return 0, err
	}

	p.prevPos = p.currPos
	if r == '\n' {
		p.currPos.Line++
		p.currPos.Column = 1
	} else {
		p.currPos.Column++
	}

	return r, nil
}

func (p *Parser) unreadRune() {
	p.reader.UnreadRune()
	p.currPos = p.prevPos
}

func (p *Parser) parseNext() (inst tapevm.Instruction, ok bool, err error) {
	p.skipSpaceAndComments()
	startPos := p.currPos

	r, err := p.readRune()
	if err == io.EOF {
		return inst, false, nil
	}
	if err != nil {
		return inst, false, err
	}

	switch r {

	case '+':
		return tapevm.Increment(), true, nil
	case '-':
		return tapevm.Decrement(), true, nil
	case '>':
		return tapevm.MoveRight(), true, nil
	case '<':
		return tapevm.MoveLeft(), true, nil
	case '.':
		return tapevm.Output(), true, nil
	case HaltRune:
		return tapevm.Halt(), true, nil

	case '@':
		target, err := p.parseUint(strconv.IntSize)
		if err != nil {
			return inst, false, err
		}
		return tapevm.Jump(uint(target)), true, nil

	case '?', '!':
		value, err := p.parseUint(8)
		if err != nil {
			return inst, false, err
		}
		if err := p.expect(','); err != nil {
			return inst, false, err
		}
		target, err := p.parseUint(strconv.IntSize)
		if err != nil {
			return inst, false, err
		}
		if r == '?' {
			return tapevm.JumpIfEqual(byte(value), uint(target)), true, nil
		}
		return tapevm.JumpIfNotEqual(byte(value), uint(target)), true, nil

	case RollbackRune:
		count, err := p.parseUint(strconv.IntSize)
		if err != nil {
			return inst, false, err
		}
		return tapevm.Rollback(uint(count)), true, nil

	}

	return inst, false, withPos(fmt.Errorf("%w: %q", ErrUnexpected, r), startPos)
}

func (p *Parser) skipSpaceAndComments() {
	for {
		r, err := p.readRune()
		if err != nil {
			return
		}
		if r == '#' {
			p.skipComment()
			continue
		}
		if !unicode.IsSpace(r) {
			p.unreadRune()
			return
		}
	}
}

func (p *Parser) skipComment() {
	for {
		r, err := p.readRune()
		if err != nil {
			return
		}
		if r == '\n' {
			return
		}
	}
}

func (p *Parser) expect(want rune) error {
	pos := p.currPos
	r, err := p.readRune()
	if err == io.EOF {
		return withPos(ErrMissingComma, pos)
	}
	if err != nil {
		return err
	}
	if r != want {
		return withPos(fmt.Errorf("%w, got %q", ErrMissingComma, r), pos)
	}
	return nil
}

func (p *Parser) parseUint(bitSize int) (uint64, error) {
	startPos := p.currPos
	var sb strings.Builder
	for {
		r, err := p.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if r < '0' || r > '9' {
			p.unreadRune()
			break
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return 0, withPos(ErrNumber, startPos)
	}
	n, err := strconv.ParseUint(sb.String(), 10, bitSize)
	if err != nil {
		return 0, withPos(fmt.Errorf("%w: %s", ErrOutOfRange, sb.String()), startPos)
	}
	return n, nil
}
