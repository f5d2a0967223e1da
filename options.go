package intcode

// VMOption configures a machine at construction.
type VMOption interface{ apply(vm *VM) }

// WithInput preloads the input queue.
func WithInput(values ...int64) VMOption { return inputOption(values) }

// WithMemLimit overrides DefaultMemLimit.
func WithMemLimit(limit int64) VMOption { return memLimitOption(limit) }

// WithPageSize overrides the memory allocation granularity.
func WithPageSize(size int64) VMOption { return pageSizeOption(size) }

// WithLogf enables instruction tracing through a printf-style function.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return logfnOption(logfn) }

type inputOption []int64
type memLimitOption int64
type pageSizeOption int64
type logfnOption func(mess string, args ...interface{})

func (values inputOption) apply(vm *VM)  { vm.input = append(vm.input, values...) }
func (lim memLimitOption) apply(vm *VM)  { vm.mem.memLimit = int64(lim) }
func (size pageSizeOption) apply(vm *VM) { vm.mem.pageSize = int64(size) }
func (logfn logfnOption) apply(vm *VM)   { vm.logfn = logfn }
