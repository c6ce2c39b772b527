package bfvm

import (
	"errors"
	"fmt"
)

type Code int

const (
	ErrStructural Code = iota + 1
	ErrOutput
	ErrInput
	ErrInvalidCursor
	ErrOutOfRange
	ErrOverflow
	ErrUnderflow
	ErrBudgetExceeded
)

var descriptions = map[Code]string{
	ErrStructural:     "Invalid bf source (symbols [ and ] do not match)",
	ErrOutput:         "Error writing to output stream",
	ErrInput:          "Error reading input stream",
	ErrInvalidCursor:  "Invalid operation pointer",
	ErrOutOfRange:     "Attempt to write a value outside the cell range",
	ErrOverflow:       fmt.Sprintf("Addressing above %d", TapeLength),
	ErrUnderflow:      "Addressing below 0",
	ErrBudgetExceeded: "Step budget exceeded",
}

func (c Code) Description() string {
	if desc, ok := descriptions[c]; ok {
		return desc
	}
	return "Unknown error"
}

func (c Code) Error() string {
	return c.Description()
}

// CodeOf returns the code wrapped in err, or 0 if there is none.
func CodeOf(err error) Code {
	var code Code
	if errors.As(err, &code) {
		return code
	}
	return 0
}
