// Command gointcode runs Intcode programs and puzzle solvers.
//
// With no arguments it reads a program from stdin (or -program file),
// feeds it any -input values, runs it to halt, and prints each output
// value on its own line.
//
// With day/file argument pairs it runs the named solvers, one goroutine
// per part:
//
//	gointcode 2 input/day2.txt 7.2 input/day7.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	intcode "github.com/jcorbin/gointcode"
	"github.com/jcorbin/gointcode/days/day02"
	"github.com/jcorbin/gointcode/days/day05"
	"github.com/jcorbin/gointcode/days/day07"
	"github.com/jcorbin/gointcode/days/day09"
	"github.com/jcorbin/gointcode/days/day11"
	"github.com/jcorbin/gointcode/days/day13"
	"github.com/jcorbin/gointcode/internal/fileinput"
)

var solvers = map[string]func(input string) (interface{}, error){
	"2.1":  func(in string) (interface{}, error) { return day02.Part1(in) },
	"2.2":  func(in string) (interface{}, error) { return day02.Part2(in) },
	"5.1":  func(in string) (interface{}, error) { return day05.Part1(in) },
	"5.2":  func(in string) (interface{}, error) { return day05.Part2(in) },
	"7.1":  func(in string) (interface{}, error) { return day07.Part1(in) },
	"7.2":  func(in string) (interface{}, error) { return day07.Part2(in) },
	"9.1":  func(in string) (interface{}, error) { return day09.Part1(in) },
	"9.2":  func(in string) (interface{}, error) { return day09.Part2(in) },
	"11.1": func(in string) (interface{}, error) { return day11.Part1(in) },
	"11.2": func(in string) (interface{}, error) { return day11.Part2(in) },
	"13.1": func(in string) (interface{}, error) { return day13.Part1(in) },
	"13.2": func(in string) (interface{}, error) { return day13.Part2(in) },
}

func main() {
	ctx := context.Background()

	var (
		timeout  time.Duration
		trace    bool
		dump     bool
		memLimit int64
		inputs   string
		progFile string
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable instruction trace logging (program mode)")
	flag.BoolVar(&dump, "dump", false, "dump final machine state (program mode)")
	flag.Int64Var(&memLimit, "mem-limit", 0, "override the memory limit (program mode)")
	flag.StringVar(&inputs, "input", "", "comma-separated input values (program mode)")
	flag.StringVar(&progFile, "program", "", "program file, default stdin (program mode)")
	flag.Parse()

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var err error
	if args := flag.Args(); len(args) == 0 {
		err = runProgram(ctx, progFile, inputs, trace, dump, memLimit)
	} else {
		err = runSolvers(ctx, args)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}

// withDeadline runs f on its own goroutine so that an expired ctx cuts
// the wait short. A machine run has no internal cancellation point (a
// Run never blocks), so a timed-out f is abandoned, not stopped, and
// its machine must not be touched afterward.
func withDeadline(ctx context.Context, f func() error) error {
	if ctx.Done() == nil {
		return f()
	}
	errc := make(chan error, 1)
	go func() { errc <- f() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func runProgram(ctx context.Context, progFile, inputs string, trace, dump bool, memLimit int64) error {
	src, err := fileinput.Read(progFile)
	if err != nil {
		return err
	}
	program, err := intcode.ParseProgram(src.Text)
	if err != nil {
		return fmt.Errorf("%v: %w", src.Name, err)
	}

	var opts []intcode.VMOption
	if trace {
		opts = append(opts, intcode.WithLogf(log.Printf))
	}
	if memLimit != 0 {
		opts = append(opts, intcode.WithMemLimit(memLimit))
	}
	if inputs != "" {
		values, err := intcode.ParseProgram(inputs)
		if err != nil {
			return fmt.Errorf("bad -input: %w", err)
		}
		opts = append(opts, intcode.WithInput(values...))
	}

	vm := intcode.New(program, opts...)
	runErr := withDeadline(ctx, vm.RunUntilHalt)
	if runErr != nil && runErr == ctx.Err() {
		// abandoned run may still own the machine
		return runErr
	}
	for _, val := range vm.DrainOutput() {
		fmt.Println(val)
	}
	if dump {
		vm.Dump(os.Stderr)
	}
	return runErr
}

type job struct {
	key   string
	solve func(input string) (interface{}, error)
	file  string
}

func runSolvers(ctx context.Context, args []string) error {
	if len(args)%2 != 0 {
		return fmt.Errorf("expected day/file argument pairs, got %v arguments", len(args))
	}

	var jobs []job
	for i := 0; i < len(args); i += 2 {
		expanded, err := expand(args[i])
		if err != nil {
			return err
		}
		for _, key := range expanded {
			jobs = append(jobs, job{key, solvers[key], args[i+1]})
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	results := make([]string, len(jobs))
	for i, j := range jobs {
		i, j := i, j
		group.Go(func() error {
			return withDeadline(ctx, func() error {
				src, err := fileinput.Read(j.file)
				if err != nil {
					return err
				}
				val, err := j.solve(src.Text)
				if err != nil {
					return fmt.Errorf("day%v: %w", j.key, err)
				}
				results[i] = fmt.Sprintf("day%v: %v", j.key, val)
				return nil
			})
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for _, result := range results {
		fmt.Println(result)
	}
	return nil
}

// expand turns a day argument like "7" or "7.2" into solver keys,
// running both parts when no part is given.
func expand(arg string) ([]string, error) {
	if _, ok := solvers[arg]; ok {
		return []string{arg}, nil
	}
	if _, err := strconv.Atoi(arg); err == nil {
		var keys []string
		for key := range solvers {
			if strings.HasPrefix(key, arg+".") {
				keys = append(keys, key)
			}
		}
		if len(keys) > 0 {
			sort.Strings(keys)
			return keys, nil
		}
	}
	return nil, fmt.Errorf("unknown day %q", arg)
}
