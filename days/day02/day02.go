// Package day02 runs the gravity assist program: poke a noun and verb
// over the program's first two operand cells, run to halt, and read the
// result from address 0.
package day02

import (
	"fmt"

	intcode "github.com/jcorbin/gointcode"
)

// Part1 restores the program to its pre-crash state with noun 12 and
// verb 2.
func Part1(input string) (int64, error) {
	program, err := intcode.ParseProgram(input)
	if err != nil {
		return 0, err
	}

	vm := intcode.New(program)
	if err := vm.Set(1, 12); err != nil {
		return 0, err
	}
	if err := vm.Set(2, 2); err != nil {
		return 0, err
	}
	if err := vm.RunUntilHalt(); err != nil {
		return 0, err
	}
	return vm.Get(0)
}

// Part2 searches for the noun/verb pair that produces 19690720.
func Part2(input string) (int64, error) {
	program, err := intcode.ParseProgram(input)
	if err != nil {
		return 0, err
	}
	return Search(program, 19690720)
}

// Search tries every noun/verb pair in [0,99] until one leaves target
// at address 0, answering 100*noun+verb. Pairs whose run faults are
// skipped rather than fatal.
func Search(program []int64, target int64) (int64, error) {
	for noun := int64(0); noun <= 99; noun++ {
		for verb := int64(0); verb <= 99; verb++ {
			vm := intcode.New(program)
			if err := vm.Set(1, noun); err != nil {
				continue
			}
			if err := vm.Set(2, verb); err != nil {
				continue
			}
			if err := vm.RunUntilHalt(); err != nil {
				continue
			}
			if out, err := vm.Get(0); err == nil && out == target {
				return 100*noun + verb, nil
			}
		}
	}
	return 0, fmt.Errorf("no noun/verb pair yields %v", target)
}
