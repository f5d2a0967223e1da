// Package day11 drives the hull painting robot: a sense-act loop where
// the machine receives the color under the robot, then emits a paint
// color and a turn direction before the robot moves.
package day11

import (
	"fmt"
	"strings"

	intcode "github.com/jcorbin/gointcode"
)

const (
	black = 0
	white = 1
)

type point struct{ X, Y int }

// Part1 counts panels the robot visits when started on a black panel.
func Part1(input string) (int, error) {
	program, err := intcode.ParseProgram(input)
	if err != nil {
		return 0, err
	}
	panels, err := paint(program, black)
	if err != nil {
		return 0, err
	}
	return len(panels), nil
}

// Part2 starts the robot on a white panel and renders the registration
// identifier it paints, one line per grid row.
func Part2(input string) (string, error) {
	program, err := intcode.ParseProgram(input)
	if err != nil {
		return "", err
	}
	panels, err := paint(program, white)
	if err != nil {
		return "", err
	}
	return render(panels), nil
}

// paint runs the robot from the origin facing up until the machine
// halts, returning every panel it visited and its final color.
func paint(program []int64, startColor int64) (map[point]int64, error) {
	robot := intcode.New(program)

	pos := point{0, 0}
	dx, dy := 0, 1
	panels := map[point]int64{pos: startColor}

	for {
		color, visited := panels[pos]
		if !visited {
			panels[pos] = black
		}
		robot.WriteInput(color)

		st, err := robot.Run()
		if err != nil {
			return nil, err
		}
		if st == intcode.Done {
			return panels, nil
		}

		out := robot.DrainOutput()
		if len(out) != 2 {
			return nil, fmt.Errorf("expected paint and turn outputs, got %v", out)
		}
		if out[0] != black && out[0] != white {
			return nil, fmt.Errorf("not a color %v", out[0])
		}
		panels[pos] = out[0]

		switch out[1] {
		case 0: // turn left
			dx, dy = -dy, dx
		case 1: // turn right
			dx, dy = dy, -dx
		default:
			return nil, fmt.Errorf("invalid turn %v", out[1])
		}
		pos.X += dx
		pos.Y += dy
	}
}

func render(panels map[point]int64) string {
	minX, minY := 0, 0
	maxX, maxY := 0, 0
	for p, color := range panels {
		if color != white {
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	var sb strings.Builder
	for y := maxY; y >= minY; y-- {
		for x := minX; x <= maxX; x++ {
			if panels[point{x, y}] == white {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
