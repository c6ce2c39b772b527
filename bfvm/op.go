package bfvm

import (
	"fmt"
	"strings"
)

type OpCode uint64

const (
	OpStart OpCode = iota + 1
	OpLeft
	OpRight
	OpAdd
	OpSub
	OpIn
	OpOut
	OpLoopStart
	OpLoopEnd
	OpEnd
)

func (o OpCode) With(arg int) OpCode {
	return o.Kind() | (OpCode(arg) << 8)
}

func (o OpCode) Kind() OpCode {
	return o & 0xff
}

func (o OpCode) Arg() int {
	return int(o >> 8)
}

// Counted reports whether consecutive ops of this kind fold into one.
func (o OpCode) Counted() bool {
	switch o.Kind() {
	case OpLeft, OpRight, OpAdd, OpSub:
		return true
	}
	return false
}

var opNames = map[OpCode]string{
	OpStart:     "start",
	OpLeft:      "left",
	OpRight:     "right",
	OpAdd:       "add",
	OpSub:       "sub",
	OpIn:        "in",
	OpOut:       "out",
	OpLoopStart: "loop",
	OpLoopEnd:   "back",
	OpEnd:       "end",
}

func (o OpCode) String() string {
	name, ok := opNames[o.Kind()]
	if !ok {
		name = fmt.Sprintf("op%d", uint64(o.Kind()))
	}
	switch o.Kind() {
	case OpStart, OpEnd:
		return name
	}
	return fmt.Sprintf("%s(%d)", name, o.Arg())
}

// Program is a compiled instruction sequence, from OpStart to OpEnd.
type Program []OpCode

func (p Program) String() string {
	var b strings.Builder
	for i, op := range p {
		fmt.Fprintf(&b, "%d\t%s\n", i, op)
	}
	return b.String()
}
