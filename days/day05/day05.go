// Package day05 runs the thermal diagnostic program, which self-tests
// the machine's compare and jump instructions before emitting its
// diagnostic code.
package day05

import (
	"errors"
	"fmt"

	intcode "github.com/jcorbin/gointcode"
)

// Part1 runs the diagnostic for the air conditioner unit, system id 1.
func Part1(input string) (int64, error) { return diagnostic(input, 1) }

// Part2 runs the diagnostic for the thermal radiator, system id 5.
func Part2(input string) (int64, error) { return diagnostic(input, 5) }

// diagnostic feeds the system id, runs to halt, and answers the final
// output. Every output before it is a self-test result and must be 0.
func diagnostic(input string, systemID int64) (int64, error) {
	program, err := intcode.ParseProgram(input)
	if err != nil {
		return 0, err
	}

	vm := intcode.New(program, intcode.WithInput(systemID))
	if err := vm.RunUntilHalt(); err != nil {
		return 0, err
	}

	out := vm.DrainOutput()
	if len(out) == 0 {
		return 0, errors.New("expected a diagnostic code")
	}
	for i, val := range out[:len(out)-1] {
		if val != 0 {
			return 0, fmt.Errorf("self-test %v failed with %v", i, val)
		}
	}
	return out[len(out)-1], nil
}
