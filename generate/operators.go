package generate

import (
	"github.com/Karapus/sem7-compilers/ast"
	"github.com/Karapus/sem7-compilers/llvm"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"
)

// binaryOp lowers a binary operator applied to two already evaluated
// operands.
type binaryOp func(irb *llvm.IRBuilder, x, y value.Value) value.Value

// unaryOp lowers a unary operator applied to an already evaluated operand.
type unaryOp func(irb *llvm.IRBuilder, x value.Value) value.Value

// binaryOps is the operator table for binary operators.  Every entry yields an
// i32.
var binaryOps = map[ast.BinOpKind]binaryOp{
	ast.OpMul: (*llvm.IRBuilder).BuildMul,
	ast.OpDiv: (*llvm.IRBuilder).BuildSDiv,
	ast.OpMod: (*llvm.IRBuilder).BuildSRem,
	ast.OpAdd: (*llvm.IRBuilder).BuildAdd,
	ast.OpSub: (*llvm.IRBuilder).BuildSub,

	ast.OpLess:      compareOp(enum.IPredSLT),
	ast.OpGreater:   compareOp(enum.IPredSGT),
	ast.OpLessEq:    compareOp(enum.IPredSLE),
	ast.OpGreaterEq: compareOp(enum.IPredSGE),
	ast.OpEqual:     compareOp(enum.IPredEQ),
	ast.OpNotEqual:  compareOp(enum.IPredNE),

	ast.OpAnd: logicalOp((*llvm.IRBuilder).BuildAnd),
	ast.OpOr:  logicalOp((*llvm.IRBuilder).BuildOr),
}

// unaryOps is the operator table for unary operators.
var unaryOps = map[ast.UnOpKind]unaryOp{
	ast.OpPlus: func(_ *llvm.IRBuilder, x value.Value) value.Value {
		return x
	},
	ast.OpNeg: (*llvm.IRBuilder).BuildNeg,
	ast.OpNot: func(irb *llvm.IRBuilder, x value.Value) value.Value {
		return irb.BuildZExt(irb.BuildICmp(enum.IPredEQ, x, llvm.ConstInt(0)))
	},
}

// compareOp builds a signed comparison widened back to an i32 of 0 or 1.
func compareOp(pred enum.IPred) binaryOp {
	return func(irb *llvm.IRBuilder, x, y value.Value) value.Value {
		return irb.BuildZExt(irb.BuildICmp(pred, x, y))
	}
}

// logicalOp normalizes both operands to 0 or 1 and then combines them with
// the given bitwise operation.  The operands have already been evaluated by
// the time this is called: there is no short-circuiting.
func logicalOp(combine binaryOp) binaryOp {
	return func(irb *llvm.IRBuilder, x, y value.Value) value.Value {
		xb := irb.BuildZExt(irb.BuildIsTrue(x))
		yb := irb.BuildZExt(irb.BuildIsTrue(y))
		return combine(irb, xb, yb)
	}
}
