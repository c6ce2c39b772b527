package bfvm

import (
	"errors"
	"fmt"
	"io"
)

type Machine struct {
	Program Program
	Tape    *Tape
	// PC indexes Program. It starts at 0, on OpStart, and every fetch
	// advances it before decoding.
	PC    int
	Steps int
	// Budget caps Steps. Zero means unbounded.
	Budget int

	input  io.Reader
	output io.Writer
	buf    [1]byte
}

func NewMachine(program Program, input io.Reader, output io.Writer) *Machine {
	return &Machine{
		Program: program,
		Tape:    NewTape(),
		input:   input,
		output:  output,
	}
}

func (m *Machine) Run() error {
	for {
		if err := m.fetch(); err != nil {
			return err
		}
		op := m.Program[m.PC]

		switch op.Kind() {

		case OpLoopStart:
			target, err := m.partner(op, OpLoopEnd)
			if err != nil {
				return err
			}
			if m.Tape.Read() == 0 {
				m.PC = target
			}

		case OpLoopEnd:
			target, err := m.partner(op, OpLoopStart)
			if err != nil {
				return err
			}
			if m.Tape.Read() != 0 {
				m.PC = target
			}

		case OpLeft:
			if err := m.Tape.Left(op.Arg()); err != nil {
				return m.wrap(err)
			}

		case OpRight:
			if err := m.Tape.Right(op.Arg()); err != nil {
				return m.wrap(err)
			}

		case OpAdd:
			if err := m.Tape.Add(op.Arg()); err != nil {
				return m.wrap(err)
			}

		case OpSub:
			if err := m.Tape.Sub(op.Arg()); err != nil {
				return m.wrap(err)
			}

		case OpIn:
			b, err := m.readByte()
			if err != nil {
				return m.wrap(err)
			}
			if err := m.Tape.Write(int(b)); err != nil {
				return m.wrap(err)
			}

		case OpOut:
			if err := m.writeByte(m.Tape.Read()); err != nil {
				return m.wrap(err)
			}

		case OpEnd:
			return nil

		default:
			return m.wrap(fmt.Errorf("%w: unexpected %v", ErrInvalidCursor, op))
		}
	}
}

func (m *Machine) fetch() error {
	if m.Budget > 0 && m.Steps >= m.Budget {
		return m.wrap(fmt.Errorf("%w: %d steps", ErrBudgetExceeded, m.Budget))
	}
	if m.PC+1 >= len(m.Program) {
		return m.wrap(fmt.Errorf("%w: fetch past end of program", ErrInvalidCursor))
	}
	m.PC++
	m.Steps++
	return nil
}

// partner returns the index of the boundary paired with the one at PC.
// Jumping lands on the partner, and the next fetch steps past it.
func (m *Machine) partner(op OpCode, want OpCode) (int, error) {
	target := op.Arg()
	if target <= 0 || target >= len(m.Program) ||
		m.Program[target].Kind() != want ||
		m.Program[target].Arg() != m.PC {
		return 0, m.wrap(fmt.Errorf("%w: unresolved %v", ErrInvalidCursor, op))
	}
	return target, nil
}

func (m *Machine) readByte() (byte, error) {
	n, err := m.input.Read(m.buf[:])
	if n == 1 {
		return m.buf[0], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	if CodeOf(err) != 0 {
		// already classified by the reader
		return 0, err
	}
	return 0, errors.Join(ErrInput, err)
}

func (m *Machine) writeByte(b byte) error {
	m.buf[0] = b
	n, err := m.output.Write(m.buf[:])
	if n == 1 && err == nil {
		return nil
	}
	if err == nil {
		err = io.ErrShortWrite
	}
	return errors.Join(ErrOutput, err)
}

func (m *Machine) wrap(err error) error {
	return fmt.Errorf("pc %d, cursor %d: %w", m.PC, m.Tape.Pointer, err)
}
