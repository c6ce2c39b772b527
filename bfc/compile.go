package bfc

import (
	"fmt"

	"github.com/reusee/bftape/bfvm"
)

var symbols = map[rune]bfvm.OpCode{
	'<': bfvm.OpLeft,
	'>': bfvm.OpRight,
	'+': bfvm.OpAdd,
	'-': bfvm.OpSub,
	',': bfvm.OpIn,
	'.': bfvm.OpOut,
	'[': bfvm.OpLoopStart,
	']': bfvm.OpLoopEnd,
}

type compiler struct {
	code []bfvm.OpCode
	// source offsets of loop boundaries, for error messages
	offsets map[int]int
	opens   []int
}

func Compile(source string) (bfvm.Program, error) {
	c := &compiler{
		code:    []bfvm.OpCode{bfvm.OpStart},
		offsets: make(map[int]int),
	}
	for offset, r := range source {
		kind, ok := symbols[r]
		if !ok {
			continue
		}
		c.fold(kind, offset)
	}
	c.emit(bfvm.OpEnd)
	if err := c.resolve(); err != nil {
		return nil, err
	}
	return bfvm.Program(c.code), nil
}

func (c *compiler) emit(op bfvm.OpCode) {
	c.code = append(c.code, op)
}

func (c *compiler) fold(kind bfvm.OpCode, offset int) {
	last := c.code[len(c.code)-1]
	if kind.Counted() && last.Kind() == kind {
		c.code[len(c.code)-1] = last.With(last.Arg() + 1)
		return
	}
	switch kind {
	case bfvm.OpLoopStart, bfvm.OpLoopEnd:
		c.offsets[len(c.code)] = offset
		c.emit(kind)
	default:
		c.emit(kind.With(1))
	}
}

// resolve pairs loop boundaries, patching each with its partner's index.
func (c *compiler) resolve() error {
	for ip, op := range c.code {
		switch op.Kind() {
		case bfvm.OpLoopStart:
			c.opens = append(c.opens, ip)
		case bfvm.OpLoopEnd:
			if len(c.opens) == 0 {
				return fmt.Errorf("%w: unmatched ] at offset %d", bfvm.ErrStructural, c.offsets[ip])
			}
			start := c.opens[len(c.opens)-1]
			c.opens = c.opens[:len(c.opens)-1]
			c.code[start] = bfvm.OpLoopStart.With(ip)
			c.code[ip] = bfvm.OpLoopEnd.With(start)
		}
	}
	if len(c.opens) > 0 {
		return fmt.Errorf("%w: unmatched [ at offset %d", bfvm.ErrStructural, c.offsets[c.opens[len(c.opens)-1]])
	}
	return nil
}
