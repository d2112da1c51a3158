package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"
)

// IRBuilder appends instructions to the basic block it is positioned over.
// One builder is used per function being generated.
type IRBuilder struct {
	// The function being built.
	fn *ir.Func

	// The entry block of the function.  All stack allocations go here.
	entry *ir.Block

	// The block new instructions are appended to.
	block *ir.Block

	// The number of blocks created so far for each block role, used to give
	// every block a unique name.
	roleCounts map[string]int
}

// NewBuilder creates a builder for fn and positions it at the end of a new
// `entry` block.
func NewBuilder(fn *ir.Func) *IRBuilder {
	irb := &IRBuilder{
		fn:         fn,
		roleCounts: make(map[string]int),
	}

	irb.entry = fn.NewBlock("entry")
	irb.block = irb.entry
	return irb
}

// Func returns the function being built.
func (irb *IRBuilder) Func() *ir.Func {
	return irb.fn
}

// Block returns the current basic block the builder is positioned over.
func (irb *IRBuilder) Block() *ir.Block {
	return irb.block
}

// MoveToEnd positions the builder at the end of block.
func (irb *IRBuilder) MoveToEnd(block *ir.Block) {
	irb.block = block
}

// AppendBlock adds a new basic block to the function.  The block is named after
// its role plus a per-role counter.  It does *not* move the builder.
func (irb *IRBuilder) AppendBlock(role string) *ir.Block {
	n := irb.roleCounts[role]
	irb.roleCounts[role]++

	return irb.fn.NewBlock(fmt.Sprintf("%s.%d", role, n))
}

// Terminated returns whether the current block already has a terminator.
func (irb *IRBuilder) Terminated() bool {
	return irb.block.Term != nil
}

// -----------------------------------------------------------------------------

// BuildAlloca allocates stack storage for one integer.  The allocation is
// always placed in the entry block so that loops do not grow the stack.
func (irb *IRBuilder) BuildAlloca() value.Value {
	return irb.entry.NewAlloca(IntType)
}

// BuildLoad loads an integer from ptr.
func (irb *IRBuilder) BuildLoad(ptr value.Value) value.Value {
	return irb.block.NewLoad(IntType, ptr)
}

// BuildStore stores val into ptr.
func (irb *IRBuilder) BuildStore(val, ptr value.Value) {
	irb.block.NewStore(val, ptr)
}

// -----------------------------------------------------------------------------

func (irb *IRBuilder) BuildAdd(x, y value.Value) value.Value  { return irb.block.NewAdd(x, y) }
func (irb *IRBuilder) BuildSub(x, y value.Value) value.Value  { return irb.block.NewSub(x, y) }
func (irb *IRBuilder) BuildMul(x, y value.Value) value.Value  { return irb.block.NewMul(x, y) }
func (irb *IRBuilder) BuildSDiv(x, y value.Value) value.Value { return irb.block.NewSDiv(x, y) }
func (irb *IRBuilder) BuildSRem(x, y value.Value) value.Value { return irb.block.NewSRem(x, y) }
func (irb *IRBuilder) BuildAnd(x, y value.Value) value.Value  { return irb.block.NewAnd(x, y) }
func (irb *IRBuilder) BuildOr(x, y value.Value) value.Value   { return irb.block.NewOr(x, y) }

// BuildNeg negates x as `sub 0, x`.
func (irb *IRBuilder) BuildNeg(x value.Value) value.Value {
	return irb.block.NewSub(ConstInt(0), x)
}

// BuildICmp compares two integers.  The result is an i1.
func (irb *IRBuilder) BuildICmp(pred enum.IPred, x, y value.Value) value.Value {
	return irb.block.NewICmp(pred, x, y)
}

// BuildZExt widens an i1 to IntType.
func (irb *IRBuilder) BuildZExt(x value.Value) value.Value {
	return irb.block.NewZExt(x, IntType)
}

// BuildIsTrue converts an integer to an i1 truth value: nonzero is true.
func (irb *IRBuilder) BuildIsTrue(x value.Value) value.Value {
	return irb.block.NewICmp(enum.IPredNE, x, ConstInt(0))
}

// BuildCall calls fn with args.
func (irb *IRBuilder) BuildCall(fn *ir.Func, args ...value.Value) value.Value {
	return irb.block.NewCall(fn, args...)
}

// -----------------------------------------------------------------------------

// BuildBr terminates the current block with an unconditional branch.
func (irb *IRBuilder) BuildBr(target *ir.Block) {
	irb.block.NewBr(target)
}

// BuildCondBr terminates the current block with a conditional branch on an i1.
func (irb *IRBuilder) BuildCondBr(cond value.Value, ifTrue, ifFalse *ir.Block) {
	irb.block.NewCondBr(cond, ifTrue, ifFalse)
}

// BuildRet terminates the current block with a return.
func (irb *IRBuilder) BuildRet(x value.Value) {
	irb.block.NewRet(x)
}
