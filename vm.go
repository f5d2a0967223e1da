package intcode

import (
	"errors"
	"fmt"
)

// VM is a single Intcode machine: paged memory, an instruction pointer,
// a relative base register, and a pair of io queues. Each machine owns
// its state exclusively; instances never share memory or queues.
type VM struct {
	mem     memCore
	ip      int64
	relBase int64

	input  []int64
	output []int64

	logfn func(mess string, args ...interface{})
}

// ExecutionStatus is the terminal result of one call to Run. Both
// values are normal outcomes, never errors.
type ExecutionStatus int

const (
	// Done means a halt instruction was reached.
	Done ExecutionStatus = iota

	// NeedInput means an input instruction executed against an empty
	// input queue; the machine suspended with the instruction pointer
	// still at that instruction, and resumes there on the next Run.
	NeedInput
)

func (st ExecutionStatus) String() string {
	switch st {
	case Done:
		return "Done"
	case NeedInput:
		return "NeedInput"
	default:
		return fmt.Sprintf("ExecutionStatus(%v)", int(st))
	}
}

// ErrNeedInput is returned by RunUntilHalt when the program suspends
// wanting input instead of halting.
var ErrNeedInput = errors.New("program needs input")

// New constructs a machine over a private copy of program, so that one
// parsed program may seed any number of independent machines.
func New(program []int64, opts ...VMOption) *VM {
	var vm VM
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&vm)
		}
	}
	if vm.mem.memLimit == 0 {
		vm.mem.memLimit = DefaultMemLimit
	}
	// the limit never cuts off the program image itself
	if lim := int64(len(program)); vm.mem.memLimit < lim {
		vm.mem.memLimit = lim
	}
	vm.mem.stor(0, program...)
	return &vm
}

// Run advances the machine until it halts or suspends wanting input.
// Any decode error or memory fault aborts the run and is returned; such
// errors are fatal and the machine should be discarded.
func (vm *VM) Run() (ExecutionStatus, error) {
	for {
		st, done, err := vm.step()
		if err != nil {
			return st, err
		}
		if done {
			return st, nil
		}
	}
}

// RunUntilHalt advances the machine expecting it to halt; a NeedInput
// suspension is reported as ErrNeedInput.
func (vm *VM) RunUntilHalt() error {
	st, err := vm.Run()
	if err != nil {
		return err
	}
	if st != Done {
		return fmt.Errorf("%w @%v", ErrNeedInput, vm.ip)
	}
	return nil
}

// step decodes and executes one instruction. done is true once the run
// reached a terminal status (Done or NeedInput).
func (vm *VM) step() (st ExecutionStatus, done bool, err error) {
	at := vm.ip
	word, err := vm.loadProg()
	if err != nil {
		return Done, false, err
	}

	op, modes := word%100, word/100
	vm.logf("exec @%v %v(%v)", at, opNames[op], word)

	switch op {
	case opAdd, opMul, opLessThan, opEquals:
		left, err := vm.loadArg(at, word, &modes)
		if err != nil {
			return Done, false, err
		}
		right, err := vm.loadArg(at, word, &modes)
		if err != nil {
			return Done, false, err
		}
		dest, err := vm.destArg(at, word, &modes)
		if err != nil {
			return Done, false, err
		}
		var val int64
		switch op {
		case opAdd:
			val = left + right
		case opMul:
			val = left * right
		case opLessThan:
			val = boolInt(left < right)
		case opEquals:
			val = boolInt(left == right)
		}
		return Done, false, vm.mem.stor(dest, val)

	case opInput:
		dest, err := vm.destArg(at, word, &modes)
		if err != nil {
			return Done, false, err
		}
		if len(vm.input) == 0 {
			// suspend at the start of this same instruction so the
			// next Run re-attempts it
			vm.ip = at
			return NeedInput, true, nil
		}
		var val int64
		val, vm.input = vm.input[0], vm.input[1:]
		return Done, false, vm.mem.stor(dest, val)

	case opOutput:
		val, err := vm.loadArg(at, word, &modes)
		if err != nil {
			return Done, false, err
		}
		vm.output = append(vm.output, val)
		return Done, false, nil

	case opJumpTrue, opJumpFalse:
		cond, err := vm.loadArg(at, word, &modes)
		if err != nil {
			return Done, false, err
		}
		target, err := vm.loadArg(at, word, &modes)
		if err != nil {
			return Done, false, err
		}
		if (cond != 0) == (op == opJumpTrue) {
			vm.ip = target
		}
		return Done, false, nil

	case opAdjustRel:
		val, err := vm.loadArg(at, word, &modes)
		if err != nil {
			return Done, false, err
		}
		vm.relBase += val
		return Done, false, nil

	case opHalt:
		return Done, true, nil

	default:
		return Done, false, DecodeError{at, word, -1}
	}
}

// loadProg loads the cell under the instruction pointer and advances it.
func (vm *VM) loadProg() (int64, error) {
	val, err := vm.mem.load(vm.ip)
	if err != nil {
		return 0, err
	}
	vm.ip++
	return val, nil
}

// Get reads a memory cell directly, e.g. the result cell at address 0.
func (vm *VM) Get(addr int64) (int64, error) {
	return vm.mem.load(addr)
}

// Set overwrites a memory cell directly, e.g. a noun/verb or free-play
// poke before running.
func (vm *VM) Set(addr, value int64) error {
	return vm.mem.stor(addr, value)
}

func (vm *VM) logf(mess string, args ...interface{}) {
	if vm.logfn != nil {
		vm.logfn(mess, args...)
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
