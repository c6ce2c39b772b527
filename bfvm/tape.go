package bfvm

import "fmt"

const TapeLength = 30000

type Tape struct {
	Cells   []byte
	Pointer int
}

func NewTape() *Tape {
	return &Tape{
		Cells: make([]byte, TapeLength),
	}
}

func wrap(value int) byte {
	value %= 256
	if value < 0 {
		value += 256
	}
	return byte(value)
}

func (t *Tape) Read() byte {
	return t.Cells[t.Pointer]
}

// Write stores value modulo 256. It never fails; the error result is kept
// so callers treat every tape mutation uniformly.
func (t *Tape) Write(value int) error {
	t.Cells[t.Pointer] = wrap(value)
	return nil
}

func (t *Tape) Left(n int) error {
	if n > t.Pointer {
		return fmt.Errorf("%w: move left %d from %d", ErrUnderflow, n, t.Pointer)
	}
	t.Pointer -= n
	return nil
}

func (t *Tape) Right(n int) error {
	if t.Pointer+n >= len(t.Cells) {
		return fmt.Errorf("%w: move right %d from %d", ErrOverflow, n, t.Pointer)
	}
	t.Pointer += n
	return nil
}

func (t *Tape) Add(n int) error {
	return t.Write(int(t.Read()) + n)
}

func (t *Tape) Sub(n int) error {
	return t.Write(int(t.Read()) - n)
}
