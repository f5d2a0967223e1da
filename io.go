package intcode

import "errors"

// ErrNoOutput is returned by ReadOutput when the output queue is empty.
// Draining output is caller-paced, so this is a recoverable condition,
// not a machine fault.
var ErrNoOutput = errors.New("no output available")

// WriteInput appends values to the tail of the input queue.
func (vm *VM) WriteInput(values ...int64) {
	vm.input = append(vm.input, values...)
}

// ReadOutput pops one value from the head of the output queue.
func (vm *VM) ReadOutput() (int64, error) {
	if len(vm.output) == 0 {
		return 0, ErrNoOutput
	}
	var val int64
	val, vm.output = vm.output[0], vm.output[1:]
	return val, nil
}

// DrainOutput consumes and returns every buffered output value in
// production order, leaving the queue empty.
func (vm *VM) DrainOutput() []int64 {
	out := vm.output
	vm.output = nil
	return out
}
