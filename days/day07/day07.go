// Package day07 maximizes amplifier thruster signal, first through a
// linear pipeline of five machines, then through a feedback ring that
// cycles the signal until every amplifier halts.
package day07

import (
	"errors"

	intcode "github.com/jcorbin/gointcode"
)

// Part1 tries every permutation of phase settings 0-4 through the
// series pipeline.
func Part1(input string) (int64, error) {
	program, err := intcode.ParseProgram(input)
	if err != nil {
		return 0, err
	}
	return maxSignal(program, []int64{0, 1, 2, 3, 4}, ThrusterSignal)
}

// Part2 tries every permutation of phase settings 5-9 through the
// feedback ring.
func Part2(input string) (int64, error) {
	program, err := intcode.ParseProgram(input)
	if err != nil {
		return 0, err
	}
	return maxSignal(program, []int64{5, 6, 7, 8, 9}, FeedbackSignal)
}

// maxSignal maximizes signal over phase permutations; permutations
// whose run fails are skipped rather than fatal.
func maxSignal(program, phases []int64, signal func(program, phases []int64) (int64, error)) (int64, error) {
	best, found := int64(0), false
	for _, perm := range permutations(phases) {
		sig, err := signal(program, perm)
		if err != nil {
			continue
		}
		if !found || sig > best {
			best, found = sig, true
		}
	}
	if !found {
		return 0, errors.New("no permutation produced a signal")
	}
	return best, nil
}

// ThrusterSignal chains five amplifiers in series: each receives its
// phase setting and the prior amplifier's output, starting from 0.
func ThrusterSignal(program, phases []int64) (int64, error) {
	signal := int64(0)
	for _, phase := range phases {
		amp := intcode.New(program, intcode.WithInput(phase, signal))
		if err := amp.RunUntilHalt(); err != nil {
			return 0, err
		}
		out, err := amp.ReadOutput()
		if err != nil {
			return 0, err
		}
		signal = out
	}
	return signal, nil
}

// FeedbackSignal wires five amplifiers in a ring, driving them
// round-robin: each Run advances one amplifier until it suspends for
// input or halts, and its output becomes the next amplifier's input.
// The loop ends once a full round has seen a halt, answering the last
// signal emitted.
func FeedbackSignal(program, phases []int64) (int64, error) {
	amps := make([]*intcode.VM, len(phases))
	for i, phase := range phases {
		amps[i] = intcode.New(program, intcode.WithInput(phase))
	}

	signal := int64(0)
	for done := false; !done; {
		for _, amp := range amps {
			amp.WriteInput(signal)
			st, err := amp.Run()
			if err != nil {
				return 0, err
			}
			if st == intcode.Done {
				done = true
			}
			if signal, err = amp.ReadOutput(); err != nil {
				return 0, err
			}
		}
	}
	return signal, nil
}

// permutations generates all orderings of values, Heap's algorithm.
func permutations(values []int64) [][]int64 {
	var perms [][]int64
	perm := append([]int64(nil), values...)

	var generate func(k int)
	generate = func(k int) {
		if k <= 1 {
			perms = append(perms, append([]int64(nil), perm...))
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				perm[i], perm[k-1] = perm[k-1], perm[i]
			} else {
				perm[0], perm[k-1] = perm[k-1], perm[0]
			}
		}
	}
	generate(len(perm))
	return perms
}
