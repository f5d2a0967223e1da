package intcode

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseProgram converts program source text, a comma-separated sequence
// of optionally-negative base-10 integers, into an initial memory image.
// Surrounding whitespace on the text or on any field is ignored.
func ParseProgram(text string) ([]int64, error) {
	fields := strings.Split(strings.TrimSpace(text), ",")
	program := make([]int64, len(fields))
	for i, field := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, ParseError{field}
		}
		program[i] = n
	}
	return program, nil
}

// ParseError indicates a program text field that is not a valid integer.
type ParseError struct {
	Token string
}

func (pe ParseError) Error() string {
	return fmt.Sprintf("expected a number %q", pe.Token)
}

// String renders the machine's memory as comma-separated program text.
// A freshly constructed machine reproduces its source text exactly; the
// rendered range covers the loaded program plus any cells stored past
// its end since.
func (vm *VM) String() string {
	cells := make([]int64, vm.mem.top)
	vm.mem.loadInto(0, cells)

	var sb strings.Builder
	for i, cell := range cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(cell, 10))
	}
	return sb.String()
}
