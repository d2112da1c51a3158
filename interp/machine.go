// Package interp evaluates generated IR modules directly.  It understands the
// instruction subset the generator emits and is used to run programs without a
// native toolchain.
package interp

import (
	"errors"
	"fmt"

	"github.com/Karapus/sem7-compilers/common"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"
)

// Default execution limits.
const (
	DefaultMaxSteps = 50_000_000
	DefaultMaxDepth = 10_000
)

// Errors returned when a program misbehaves at runtime.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrStepLimit      = errors.New("step limit exceeded")
	ErrStackOverflow  = errors.New("call stack exhausted")
)

// RuntimeError is an error that occurred while executing a function.
type RuntimeError struct {
	Func string
	Err  error
}

func (re *RuntimeError) Error() string {
	return fmt.Sprintf("in @%s: %s", re.Func, re.Err)
}

func (re *RuntimeError) Unwrap() error {
	return re.Err
}

// Machine executes the functions of a module.
type Machine struct {
	mod *ir.Module
	rt  Runtime

	// funcs maps function names to the functions of the module.
	funcs map[string]*ir.Func

	// PrintSymbol and QmarkSymbol are the names the builtins are declared
	// under.
	PrintSymbol string
	QmarkSymbol string

	// MaxSteps is the number of instructions the machine may execute before
	// giving up.  Zero means no limit.
	MaxSteps int

	// MaxDepth is the maximum call depth.
	MaxDepth int

	steps int
	depth int
}

// NewMachine creates a machine for mod using rt for the builtins.
func NewMachine(mod *ir.Module, rt Runtime) *Machine {
	m := &Machine{
		mod:         mod,
		rt:          rt,
		funcs:       make(map[string]*ir.Func),
		PrintSymbol: common.DefaultPrintSymbol,
		QmarkSymbol: common.DefaultQmarkSymbol,
		MaxSteps:    DefaultMaxSteps,
		MaxDepth:    DefaultMaxDepth,
	}

	for _, fn := range mod.Funcs {
		m.funcs[fn.Name()] = fn
	}

	return m
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() int {
	return m.steps
}

// Run calls the function named name with args and returns its result.
func (m *Machine) Run(name string, args ...int32) (int32, error) {
	fn, ok := m.funcs[name]
	if !ok {
		return 0, fmt.Errorf("no function named `%s`", name)
	}

	m.steps = 0
	m.depth = 0
	return m.call(fn, args)
}

// -----------------------------------------------------------------------------

// frame is the state of one function activation.
type frame struct {
	fn     *ir.Func
	params map[*ir.Param]int32
	regs   map[value.Value]int32
	slots  map[value.Value]*int32
}

func (m *Machine) call(fn *ir.Func, args []int32) (int32, error) {
	if len(args) != len(fn.Params) {
		return 0, &RuntimeError{fn.Name(), fmt.Errorf("called with %d arguments, expected %d", len(args), len(fn.Params))}
	}

	// declarations are the builtins
	if len(fn.Blocks) == 0 {
		switch fn.Name() {
		case m.PrintSymbol:
			return m.rt.Print(args[0])
		case m.QmarkSymbol:
			return m.rt.Qmark()
		default:
			return 0, &RuntimeError{fn.Name(), errors.New("call to a function without a body")}
		}
	}

	if m.MaxDepth > 0 && m.depth >= m.MaxDepth {
		return 0, &RuntimeError{fn.Name(), ErrStackOverflow}
	}

	m.depth++
	defer func() { m.depth-- }()

	fr := &frame{
		fn:     fn,
		params: make(map[*ir.Param]int32, len(args)),
		regs:   make(map[value.Value]int32),
		slots:  make(map[value.Value]*int32),
	}

	for i, param := range fn.Params {
		fr.params[param] = args[i]
	}

	block := fn.Blocks[0]
	for {
		for _, inst := range block.Insts {
			if err := m.tick(fn); err != nil {
				return 0, err
			}

			if err := m.execInst(fr, inst); err != nil {
				return 0, err
			}
		}

		if err := m.tick(fn); err != nil {
			return 0, err
		}

		switch term := block.Term.(type) {
		case *ir.TermRet:
			return m.operand(fr, term.X)
		case *ir.TermBr:
			block = asBlock(term.Target)
		case *ir.TermCondBr:
			cond, err := m.operand(fr, term.Cond)
			if err != nil {
				return 0, err
			}

			if cond != 0 {
				block = asBlock(term.TargetTrue)
			} else {
				block = asBlock(term.TargetFalse)
			}
		default:
			return 0, &RuntimeError{fn.Name(), fmt.Errorf("unsupported terminator %T in block %%%s", block.Term, block.Name())}
		}
	}
}

// tick counts one executed instruction against the step limit.
func (m *Machine) tick(fn *ir.Func) error {
	m.steps++
	if m.MaxSteps > 0 && m.steps > m.MaxSteps {
		return &RuntimeError{fn.Name(), ErrStepLimit}
	}

	return nil
}

// asBlock converts a branch target to a block.
func asBlock(target interface{}) *ir.Block {
	block, _ := target.(*ir.Block)
	return block
}

// execInst executes one non-terminator instruction.
func (m *Machine) execInst(fr *frame, inst ir.Instruction) error {
	switch v := inst.(type) {
	case *ir.InstAlloca:
		fr.slots[v] = new(int32)
		return nil
	case *ir.InstLoad:
		slot, err := m.slot(fr, v.Src)
		if err != nil {
			return err
		}

		fr.regs[v] = *slot
		return nil
	case *ir.InstStore:
		slot, err := m.slot(fr, v.Dst)
		if err != nil {
			return err
		}

		x, err := m.operand(fr, v.Src)
		if err != nil {
			return err
		}

		*slot = x
		return nil
	case *ir.InstCall:
		callee, ok := v.Callee.(*ir.Func)
		if !ok {
			return &RuntimeError{fr.fn.Name(), errors.New("indirect call")}
		}

		args := make([]int32, len(v.Args))
		for i, arg := range v.Args {
			x, err := m.operand(fr, arg)
			if err != nil {
				return err
			}

			args[i] = x
		}

		result, err := m.call(callee, args)
		if err != nil {
			return err
		}

		fr.regs[v] = result
		return nil
	case *ir.InstZExt:
		x, err := m.operand(fr, v.From)
		if err != nil {
			return err
		}

		fr.regs[v] = x
		return nil
	case *ir.InstICmp:
		return m.execBinary(fr, v, v.X, v.Y, func(x, y int32) (int32, error) {
			return compare(v.Pred, x, y), nil
		})
	case *ir.InstAdd:
		return m.execBinary(fr, v, v.X, v.Y, func(x, y int32) (int32, error) { return x + y, nil })
	case *ir.InstSub:
		return m.execBinary(fr, v, v.X, v.Y, func(x, y int32) (int32, error) { return x - y, nil })
	case *ir.InstMul:
		return m.execBinary(fr, v, v.X, v.Y, func(x, y int32) (int32, error) { return x * y, nil })
	case *ir.InstSDiv:
		return m.execBinary(fr, v, v.X, v.Y, func(x, y int32) (int32, error) {
			if y == 0 {
				return 0, ErrDivisionByZero
			}

			return x / y, nil
		})
	case *ir.InstSRem:
		return m.execBinary(fr, v, v.X, v.Y, func(x, y int32) (int32, error) {
			if y == 0 {
				return 0, ErrDivisionByZero
			}

			return x % y, nil
		})
	case *ir.InstAnd:
		return m.execBinary(fr, v, v.X, v.Y, func(x, y int32) (int32, error) { return x & y, nil })
	case *ir.InstOr:
		return m.execBinary(fr, v, v.X, v.Y, func(x, y int32) (int32, error) { return x | y, nil })
	case *ir.InstXor:
		return m.execBinary(fr, v, v.X, v.Y, func(x, y int32) (int32, error) { return x ^ y, nil })
	default:
		return &RuntimeError{fr.fn.Name(), fmt.Errorf("unsupported instruction %T", inst)}
	}
}

// execBinary evaluates both operands, applies op and stores the result in the
// register of dst.
func (m *Machine) execBinary(fr *frame, dst value.Value, xv, yv value.Value, op func(x, y int32) (int32, error)) error {
	x, err := m.operand(fr, xv)
	if err != nil {
		return err
	}

	y, err := m.operand(fr, yv)
	if err != nil {
		return err
	}

	result, err := op(x, y)
	if err != nil {
		return &RuntimeError{fr.fn.Name(), err}
	}

	fr.regs[dst] = result
	return nil
}

// operand returns the current value of an instruction operand.
func (m *Machine) operand(fr *frame, v value.Value) (int32, error) {
	switch x := v.(type) {
	case *constant.Int:
		return int32(x.X.Int64()), nil
	case *ir.Param:
		if val, ok := fr.params[x]; ok {
			return val, nil
		}
	default:
		if val, ok := fr.regs[v]; ok {
			return val, nil
		}
	}

	return 0, &RuntimeError{fr.fn.Name(), fmt.Errorf("use of undefined value %s", v.Ident())}
}

// slot returns the stack slot an alloca produced.
func (m *Machine) slot(fr *frame, v value.Value) (*int32, error) {
	if slot, ok := fr.slots[v]; ok {
		return slot, nil
	}

	return nil, &RuntimeError{fr.fn.Name(), fmt.Errorf("%s is not a stack slot", v.Ident())}
}

// compare evaluates an integer comparison to 0 or 1.
func compare(pred enum.IPred, x, y int32) int32 {
	var result bool
	switch pred {
	case enum.IPredEQ:
		result = x == y
	case enum.IPredNE:
		result = x != y
	case enum.IPredSLT:
		result = x < y
	case enum.IPredSLE:
		result = x <= y
	case enum.IPredSGT:
		result = x > y
	case enum.IPredSGE:
		result = x >= y
	case enum.IPredULT:
		result = uint32(x) < uint32(y)
	case enum.IPredULE:
		result = uint32(x) <= uint32(y)
	case enum.IPredUGT:
		result = uint32(x) > uint32(y)
	case enum.IPredUGE:
		result = uint32(x) >= uint32(y)
	}

	if result {
		return 1
	}

	return 0
}
