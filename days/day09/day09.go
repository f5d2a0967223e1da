// Package day09 runs the BOOST program, which exercises relative
// addressing and far stores before emitting its keycode.
package day09

import (
	"errors"

	intcode "github.com/jcorbin/gointcode"
)

// Part1 runs BOOST in test mode.
func Part1(input string) (int64, error) { return boost(input, 1) }

// Part2 runs BOOST in sensor boost mode.
func Part2(input string) (int64, error) { return boost(input, 2) }

func boost(input string, mode int64) (int64, error) {
	program, err := intcode.ParseProgram(input)
	if err != nil {
		return 0, err
	}

	vm := intcode.New(program, intcode.WithInput(mode))
	if err := vm.RunUntilHalt(); err != nil {
		return 0, err
	}

	out, err := vm.ReadOutput()
	if err != nil {
		return 0, errors.New("expected BOOST output")
	}
	return out, nil
}
