// Package day13 runs the arcade cabinet. The machine draws the screen
// as x,y,tile output triples; the triple at x=-1,y=0 is the score
// display instead of a tile.
package day13

import (
	"fmt"

	intcode "github.com/jcorbin/gointcode"
)

const (
	tileEmpty  = 0
	tileWall   = 1
	tileBlock  = 2
	tilePaddle = 3
	tileBall   = 4
)

// Part1 runs the game once and counts block tiles on the drawn screen.
func Part1(input string) (int, error) {
	program, err := intcode.ParseProgram(input)
	if err != nil {
		return 0, err
	}

	vm := intcode.New(program)
	if err := vm.RunUntilHalt(); err != nil {
		return 0, err
	}

	out := vm.DrainOutput()
	if len(out)%3 != 0 {
		return 0, fmt.Errorf("expected x,y,tile triples, got %v values", len(out))
	}

	blocks := 0
	for i := 0; i < len(out); i += 3 {
		if out[i+2] == tileBlock {
			blocks++
		}
	}
	return blocks, nil
}

// Part2 switches the cabinet to free play and drives it one scheduling
// quantum at a time, steering the paddle under the ball each time the
// game asks for joystick input, until it halts with the final score.
func Part2(input string) (int64, error) {
	program, err := intcode.ParseProgram(input)
	if err != nil {
		return 0, err
	}

	game := intcode.New(program)
	if err := game.Set(0, 2); err != nil {
		return 0, err
	}

	var score, ballX, paddleX int64
	for {
		st, err := game.Run()
		if err != nil {
			return 0, err
		}

		out := game.DrainOutput()
		if len(out)%3 != 0 {
			return 0, fmt.Errorf("expected x,y,tile triples, got %v values", len(out))
		}
		for i := 0; i < len(out); i += 3 {
			x, y, t := out[i], out[i+1], out[i+2]
			if x == -1 && y == 0 {
				score = t
				continue
			}
			switch t {
			case tileBall:
				ballX = x
			case tilePaddle:
				paddleX = x
			}
		}

		if st == intcode.Done {
			return score, nil
		}
		game.WriteInput(joystick(ballX, paddleX))
	}
}

// joystick tilts toward the ball: -1 left, 0 neutral, 1 right.
func joystick(ballX, paddleX int64) int64 {
	switch {
	case paddleX < ballX:
		return 1
	case paddleX > ballX:
		return -1
	default:
		return 0
	}
}
