package intcode

import "fmt"

// Instruction words carry a two-digit opcode in their low decimal
// digits; every digit above that selects an addressing mode for one
// operand, least significant first, defaulting to position mode once
// the digits run out.
const (
	opAdd       = 1
	opMul       = 2
	opInput     = 3
	opOutput    = 4
	opJumpTrue  = 5
	opJumpFalse = 6
	opLessThan  = 7
	opEquals    = 8
	opAdjustRel = 9
	opHalt      = 99
)

const (
	modePosition  = 0
	modeImmediate = 1
	modeRelative  = 2
)

var opNames = map[int64]string{
	opAdd:       "add",
	opMul:       "mul",
	opInput:     "input",
	opOutput:    "output",
	opJumpTrue:  "jmpt",
	opJumpFalse: "jmpf",
	opLessThan:  "lt",
	opEquals:    "eq",
	opAdjustRel: "rbase",
	opHalt:      "halt",
}

// opArity maps each opcode to its operand count; membership doubles as
// the "is this a known opcode" check.
var opArity = map[int64]int{
	opAdd:       3,
	opMul:       3,
	opInput:     1,
	opOutput:    1,
	opJumpTrue:  2,
	opJumpFalse: 2,
	opLessThan:  3,
	opEquals:    3,
	opAdjustRel: 1,
	opHalt:      0,
}

// DecodeError indicates an instruction word that does not decode: an
// unrecognized opcode, or an addressing-mode digit outside {0,1,2}.
// Always fatal to the run.
type DecodeError struct {
	Addr int64 // instruction pointer at decode time
	Word int64 // the offending instruction word
	Mode int64 // the invalid mode digit, or -1 for an unknown opcode
}

func (de DecodeError) Error() string {
	if de.Mode >= 0 {
		return fmt.Sprintf("invalid parameter mode %v in %v @%v", de.Mode, de.Word, de.Addr)
	}
	return fmt.Sprintf("unknown opcode %v @%v", de.Word, de.Addr)
}

// loadArg consumes the next program word and resolves it as a source
// parameter under the next mode digit of modes.
func (vm *VM) loadArg(at int64, word int64, modes *int64) (int64, error) {
	raw, err := vm.loadProg()
	if err != nil {
		return 0, err
	}
	switch m := nextMode(modes); m {
	case modePosition:
		return vm.mem.load(raw)
	case modeImmediate:
		return raw, nil
	case modeRelative:
		return vm.mem.load(vm.relBase + raw)
	default:
		return 0, DecodeError{at, word, m}
	}
}

// destArg consumes the next program word and resolves it as a store
// address. Destinations never read through immediate mode: a stray
// immediate digit is coerced to position, so the raw word itself is the
// address.
func (vm *VM) destArg(at int64, word int64, modes *int64) (int64, error) {
	raw, err := vm.loadProg()
	if err != nil {
		return 0, err
	}
	switch m := nextMode(modes); m {
	case modePosition, modeImmediate:
		return raw, nil
	case modeRelative:
		return vm.relBase + raw, nil
	default:
		return 0, DecodeError{at, word, m}
	}
}

func nextMode(modes *int64) int64 {
	m := *modes % 10
	*modes /= 10
	return m
}
