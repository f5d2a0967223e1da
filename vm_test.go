package intcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gointcode/internal/logio"
)

func Test_VM_arithmetic(t *testing.T) {
	vmTestCases{
		vmTest("add position").withProg("1,0,0,0,99").
			expectMemAt(0, 2, 0, 0, 0, 99),
		vmTest("mul position").withProg("2,3,0,3,99").
			expectMemAt(0, 2, 3, 0, 6, 99),
		vmTest("mul far cell").withProg("2,4,4,5,99,0").
			expectMemAt(0, 2, 4, 4, 5, 99, 9801),
		vmTest("add overwrites its own operand").withProg("1,1,1,4,99,5,6,0,99").
			expectMemAt(0, 30, 1, 1, 4, 2, 5, 6, 0, 99),
		vmTest("immediate mul").withProg("1002,4,3,4,33").
			expectMemAt(0, 1002, 4, 3, 4, 99),
		vmTest("negative immediate").withProg("1101,100,-1,4,0").
			expectMemAt(0, 1101, 100, -1, 4, 99),
	}.run(t)
}

func Test_VM_compare_and_jump(t *testing.T) {
	vmTestCases{
		vmTest("equals position, equal").withProg("3,9,8,9,10,9,4,9,99,-1,8").
			withInput(8).expectOutput(1),
		vmTest("equals position, unequal").withProg("3,9,8,9,10,9,4,9,99,-1,8").
			withInput(0).expectOutput(0),
		vmTest("less-than position, below").withProg("3,9,7,9,10,9,4,9,99,-1,8").
			withInput(7).expectOutput(1),
		vmTest("less-than position, equal").withProg("3,9,7,9,10,9,4,9,99,-1,8").
			withInput(8).expectOutput(0),
		vmTest("equals immediate").withProg("3,3,1108,-1,8,3,4,3,99").
			withInput(8).expectOutput(1),
		vmTest("less-than immediate").withProg("3,3,1107,-1,8,3,4,3,99").
			withInput(9).expectOutput(0),
		vmTest("jump position, zero input").withProg("3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9").
			withInput(0).expectOutput(0),
		vmTest("jump position, nonzero input").withProg("3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9").
			withInput(7).expectOutput(1),
		vmTest("jump immediate, zero input").withProg("3,3,1105,-1,9,1101,0,0,12,4,12,99,1").
			withInput(0).expectOutput(0),

		vmTest("branching diagnostic, below 8").
			withProg(branchProg).withInput(3).expectOutput(999),
		vmTest("branching diagnostic, exactly 8").
			withProg(branchProg).withInput(8).expectOutput(1000),
		vmTest("branching diagnostic, above 8").
			withProg(branchProg).withInput(77).expectOutput(1001),
	}.run(t)
}

const branchProg = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
	"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
	"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

const quineProg = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"

func Test_VM_relative_base(t *testing.T) {
	vmTestCases{
		vmTest("quine").withProg(quineProg).
			expectOutput(109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99),
		vmTest("sixteen digit multiply").withProg("1102,34915192,34915192,7,4,7,99,0").
			expectOutput(1219070632396864),
		vmTest("wide immediate preserved").withProg("104,1125899906842624,99").
			expectOutput(1125899906842624),
		vmTest("relative input destination").withProg("109,10,203,5,204,5,99").
			withInput(42).expectOutput(42).expectMemAt(15, 42),
		vmTest("base adjusts cumulatively").withProg("109,3,109,4,204,-5,99,77").
			expectOutput(109).expectRelBase(7),
	}.run(t)
}

func Test_VM_suspend_resume(t *testing.T) {
	vmTestCases{
		vmTest("suspends at the input instruction").withProg(sumProg).
			thenRun(NeedInput).expectIP(0),
		vmTest("resumes the same instruction").withProg(sumProg).
			thenRun(NeedInput).thenExpectIP(0).
			thenInput(30).
			thenRun(NeedInput).thenExpectIP(2).
			thenInput(12).
			thenRun(Done).
			expectOutput(42),
		vmTest("split input matches up-front input").withProg(sumProg).
			withInput(30, 12).
			thenRun(Done).
			expectOutput(42),
		vmTest("run-until-halt reports starvation").withProg(sumProg).
			thenRunUntilHaltNeedInput(),
	}.run(t)
}

// sumProg reads two values, adds them, and outputs the sum.
const sumProg = "3,0,3,1,1,0,1,2,4,2,99"

func Test_VM_faults(t *testing.T) {
	vmTestCases{
		vmTest("unknown opcode").withProg("77,0,0,0").
			thenRunDecodeError(DecodeError{Addr: 0, Word: 77, Mode: -1}),
		vmTest("unknown opcode mid-program").withProg("1101,2,2,0,98").
			thenRunDecodeError(DecodeError{Addr: 4, Word: 98, Mode: -1}),
		vmTest("invalid source mode digit").withProg("302,0,0,0,99").
			thenRunDecodeError(DecodeError{Addr: 0, Word: 302, Mode: 3}),
		vmTest("invalid destination mode digit").withProg("30001,0,0,0,99").
			thenRunDecodeError(DecodeError{Addr: 0, Word: 30001, Mode: 3}),
		vmTest("negative position address").withProg("1,-1,0,0,99").
			thenRunMemFault(MemFault{Addr: -1, Op: "load"}),
		vmTest("negative jump target").withProg("1105,1,-5,99").
			thenRunMemFault(MemFault{Addr: -5, Op: "load"}),
		vmTest("negative relative address").withProg("109,-3,204,0,99").
			thenRunMemFault(MemFault{Addr: -3, Op: "load"}),
		vmTest("store past the memory limit").withProg("1101,1,1,50,99").
			withOptions(WithMemLimit(20)).
			thenRunMemFault(MemFault{Addr: 50, Op: "stor"}),
	}.run(t)
}

func Test_VM_destination_mode_coercion(t *testing.T) {
	vmTestCases{
		// 11101: both sources immediate, and a stray immediate digit on
		// the destination, which is coerced to a plain address
		vmTest("immediate destination digit").withProg("11101,2,3,5,99,0").
			expectMemAt(5, 5),
		// 21101: relative destination offsets from the base
		vmTest("relative destination digit").withProg("109,2,21101,3,4,3,99,0").
			expectMemAt(5, 7),
	}.run(t)
}

func Test_VM_io_channel(t *testing.T) {
	t.Run("read without output underflows", func(t *testing.T) {
		vm := newTestVM(t, "99")
		require.NoError(t, vm.RunUntilHalt())
		_, err := vm.ReadOutput()
		assert.True(t, errors.Is(err, ErrNoOutput), "expected ErrNoOutput, got %v", err)
	})

	t.Run("outputs drain in production order", func(t *testing.T) {
		vm := newTestVM(t, "104,1,104,2,104,3,99")
		require.NoError(t, vm.RunUntilHalt())
		val, err := vm.ReadOutput()
		require.NoError(t, err)
		assert.Equal(t, int64(1), val)
		assert.Equal(t, []int64{2, 3}, vm.DrainOutput())
		assert.Empty(t, vm.DrainOutput())
	})

	t.Run("inputs consume in written order", func(t *testing.T) {
		vm := newTestVM(t, "3,9,3,10,4,9,4,10,99,0,0")
		vm.WriteInput(5)
		vm.WriteInput(6)
		require.NoError(t, vm.RunUntilHalt())
		assert.Equal(t, []int64{5, 6}, vm.DrainOutput())
	})
}

func Test_VM_trace(t *testing.T) {
	var trace []string
	logf := func(mess string, args ...interface{}) {
		trace = append(trace, fmt.Sprintf(mess, args...))
	}

	vm := newTestVM(t, "1002,4,3,4,33", WithLogf(logf))
	require.NoError(t, vm.RunUntilHalt())
	assert.Equal(t, []string{
		"exec @0 mul(1002)",
		"exec @4 halt(99)",
	}, trace)
}

func Test_VM_diagnostic_access(t *testing.T) {
	vm := newTestVM(t, "1,0,0,0,99")

	val, err := vm.Get(4)
	require.NoError(t, err)
	assert.Equal(t, int64(99), val)

	require.NoError(t, vm.Set(0, 2))
	require.NoError(t, vm.RunUntilHalt())
	val, err = vm.Get(0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), val, "expected 2*2 after the poke")

	_, err = vm.Get(-1)
	var mf MemFault
	require.True(t, errors.As(err, &mf), "expected a fault, got %v", err)
	assert.Equal(t, MemFault{Addr: -1, Op: "load"}, mf)
}

func Test_VM_instances_are_independent(t *testing.T) {
	program, err := ParseProgram("1,0,0,0,99")
	require.NoError(t, err)

	a, b := New(program), New(program)
	require.NoError(t, a.RunUntilHalt())

	assert.Equal(t, "2,0,0,0,99", a.String())
	assert.Equal(t, "1,0,0,0,99", b.String(), "running one machine must not touch another")
	assert.Equal(t, int64(1), program[0], "running a machine must not touch the parsed program")
}

//// test case builder

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	for _, vmt := range vmts {
		if !t.Run(vmt.name, vmt.run) {
			return
		}
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type vmTestCase struct {
	name   string
	prog   string
	opts   []VMOption
	ops    []func(t *testing.T, vm *VM)
	expect []func(t *testing.T, vm *VM)
}

func (vmt vmTestCase) withProg(prog string) vmTestCase {
	vmt.prog = prog
	return vmt
}

func (vmt vmTestCase) withInput(values ...int64) vmTestCase {
	vmt.opts = append(vmt.opts, WithInput(values...))
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	vmt.opts = append(vmt.opts, opts...)
	return vmt
}

func (vmt vmTestCase) thenRun(want ExecutionStatus) vmTestCase {
	vmt.ops = append(vmt.ops, func(t *testing.T, vm *VM) {
		st, err := vm.Run()
		require.NoError(t, err, "unexpected run error")
		require.Equal(t, want, st, "expected run status")
	})
	return vmt
}

func (vmt vmTestCase) thenRunUntilHaltNeedInput() vmTestCase {
	vmt.ops = append(vmt.ops, func(t *testing.T, vm *VM) {
		err := vm.RunUntilHalt()
		require.True(t, errors.Is(err, ErrNeedInput), "expected ErrNeedInput, got %v", err)
	})
	return vmt
}

func (vmt vmTestCase) thenRunDecodeError(want DecodeError) vmTestCase {
	vmt.ops = append(vmt.ops, func(t *testing.T, vm *VM) {
		_, err := vm.Run()
		var de DecodeError
		require.True(t, errors.As(err, &de), "expected a decode error, got %v", err)
		require.Equal(t, want, de)
	})
	return vmt
}

func (vmt vmTestCase) thenRunMemFault(want MemFault) vmTestCase {
	vmt.ops = append(vmt.ops, func(t *testing.T, vm *VM) {
		_, err := vm.Run()
		var mf MemFault
		require.True(t, errors.As(err, &mf), "expected a memory fault, got %v", err)
		require.Equal(t, want, mf)
	})
	return vmt
}

func (vmt vmTestCase) thenExpectIP(addr int64) vmTestCase {
	vmt.ops = append(vmt.ops, func(t *testing.T, vm *VM) {
		require.Equal(t, addr, vm.ip, "expected instruction pointer")
	})
	return vmt
}

func (vmt vmTestCase) thenInput(values ...int64) vmTestCase {
	vmt.ops = append(vmt.ops, func(t *testing.T, vm *VM) {
		vm.WriteInput(values...)
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(values ...int64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, values, vm.DrainOutput(), "expected output values")
	})
	return vmt
}

func (vmt vmTestCase) expectMemAt(addr int64, values ...int64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		buf := make([]int64, len(values))
		require.NoError(t, vm.mem.loadInto(addr, buf), "must load @%v", addr)
		assert.Equal(t, values, buf, "expected memory values @%v", addr)
	})
	return vmt
}

func (vmt vmTestCase) expectIP(addr int64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, addr, vm.ip, "expected instruction pointer")
	})
	return vmt
}

func (vmt vmTestCase) expectRelBase(base int64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, base, vm.relBase, "expected relative base")
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	program, err := ParseProgram(vmt.prog)
	require.NoError(t, err, "must parse program")

	vm := New(program, vmt.opts...)
	defer func() {
		if t.Failed() {
			lw := &logio.Writer{Logf: t.Logf}
			defer lw.Close()
			vm.Dump(lw)
		}
	}()

	ops := vmt.ops
	if len(ops) == 0 {
		ops = append(ops, func(t *testing.T, vm *VM) {
			st, err := vm.Run()
			require.NoError(t, err, "unexpected run error")
			require.Equal(t, Done, st, "expected a halt")
		})
	}
	for _, op := range ops {
		op(t, vm)
		if t.Failed() {
			return
		}
	}

	for _, expect := range vmt.expect {
		expect(t, vm)
	}
}

func newTestVM(t *testing.T, prog string, opts ...VMOption) *VM {
	program, err := ParseProgram(prog)
	require.NoError(t, err, "must parse program")
	return New(program, opts...)
}
