package intcode

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes machine state and a best-effort disassembly to w, used by
// failing tests and the command's -dump flag.
func (vm *VM) Dump(w io.Writer) {
	vmDumper{vm: vm, out: w}.dump()
}

// Data and instructions are indistinguishable in intcode, so the memory
// walk decodes greedily and falls back to raw cells wherever a word
// does not decode.
type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  ip: %v\n", dump.vm.ip)
	fmt.Fprintf(dump.out, "  relBase: %v\n", dump.vm.relBase)
	fmt.Fprintf(dump.out, "  input: %v\n", dump.vm.input)
	fmt.Fprintf(dump.out, "  output: %v\n", dump.vm.output)

	size := dump.vm.mem.top
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.FormatInt(size, 10)) + 1
	}

	fmt.Fprintf(dump.out, "# Memory\n")
	for addr := int64(0); addr < size; {
		var sb strings.Builder
		next := dump.formatInstruction(&sb, addr)
		if next == addr {
			sb.Reset()
			val, _ := dump.vm.mem.load(addr)
			sb.WriteString(strconv.FormatInt(val, 10))
			next = addr + 1
		}
		fmt.Fprintf(dump.out, "  @% *v %s\n", dump.addrWidth, addr, sb.String())
		addr = next
	}
}

// formatInstruction disassembles the instruction at addr, returning the
// address just past it, or addr itself when the word does not decode.
func (dump *vmDumper) formatInstruction(sb *strings.Builder, addr int64) int64 {
	word, err := dump.vm.mem.load(addr)
	if err != nil {
		return addr
	}

	op, modes := word%100, word/100
	arity, known := opArity[op]
	if !known {
		return addr
	}
	if addr+int64(arity) >= dump.vm.mem.top {
		return addr
	}

	sb.WriteString(opNames[op])
	for i := 0; i < arity; i++ {
		raw, err := dump.vm.mem.load(addr + 1 + int64(i))
		if err != nil {
			return addr
		}
		m := modes % 10
		modes /= 10
		sb.WriteByte(' ')
		switch m {
		case modePosition:
			sb.WriteByte('@')
		case modeImmediate:
		case modeRelative:
			sb.WriteByte('~')
		default:
			return addr
		}
		sb.WriteString(strconv.FormatInt(raw, 10))
	}
	if modes != 0 {
		return addr
	}
	return addr + 1 + int64(arity)
}
