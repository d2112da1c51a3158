package generate

import (
	"testing"

	"github.com/Karapus/sem7-compilers/llvm"
	"github.com/Karapus/sem7-compilers/report"

	"github.com/llir/llvm/ir"
	"github.com/nalgeon/be"
)

func newTestBuilder() (*llvm.IRBuilder, *ir.Func) {
	fn := llvm.NewIntFunc(llvm.NewModule("env"), "f", "p")
	return llvm.NewBuilder(fn), fn
}

func TestEnvParamsResolveWithoutLoad(t *testing.T) {
	irb, fn := newTestBuilder()
	env := NewEnv()

	be.True(t, env.BindParam("p", fn.Params[0], nil) == nil)

	val, ce := env.Resolve(irb, "p", nil)
	be.True(t, ce == nil)
	be.True(t, val == fn.Params[0])
	be.Equal(t, len(irb.Block().Insts), 0)
}

func TestEnvLocalsAreLoadedAndStored(t *testing.T) {
	irb, _ := newTestBuilder()
	env := NewEnv()

	be.True(t, env.BindLocal(irb, "x", llvm.ConstInt(1), nil) == nil)
	be.True(t, env.Assign(irb, "x", llvm.ConstInt(2), nil) == nil)

	val, ce := env.Resolve(irb, "x", nil)
	be.True(t, ce == nil)

	_, isLoad := val.(*ir.InstLoad)
	be.True(t, isLoad)

	// alloca, store, store, load
	insts := irb.Block().Insts
	be.Equal(t, len(insts), 4)
	_, isAlloca := insts[0].(*ir.InstAlloca)
	be.True(t, isAlloca)
}

func TestEnvErrors(t *testing.T) {
	irb, fn := newTestBuilder()
	env := NewEnv()
	be.True(t, env.BindParam("p", fn.Params[0], nil) == nil)
	be.True(t, env.BindLocal(irb, "x", llvm.ConstInt(0), nil) == nil)

	ce := env.BindLocal(irb, "x", llvm.ConstInt(0), nil)
	be.Equal(t, ce.Kind, report.DuplicateBinding)

	ce = env.BindLocal(irb, "p", llvm.ConstInt(0), nil)
	be.Equal(t, ce.Kind, report.DuplicateBinding)

	ce = env.BindParam("p", fn.Params[0], nil)
	be.Equal(t, ce.Kind, report.DuplicateBinding)

	ce = env.Assign(irb, "p", llvm.ConstInt(0), nil)
	be.Equal(t, ce.Kind, report.AssignToImmutable)

	ce = env.Assign(irb, "y", llvm.ConstInt(0), nil)
	be.Equal(t, ce.Kind, report.UnboundIdentifier)

	_, ce = env.Resolve(irb, "y", nil)
	be.Equal(t, ce.Kind, report.UnboundIdentifier)
}

func TestEnvReset(t *testing.T) {
	irb, fn := newTestBuilder()
	env := NewEnv()
	env.BindParam("p", fn.Params[0], nil)
	env.BindLocal(irb, "x", llvm.ConstInt(0), nil)

	env.Reset()

	be.True(t, !env.Bound("p"))
	be.True(t, !env.Bound("x"))

	_, ce := env.Resolve(irb, "x", nil)
	be.Equal(t, ce.Kind, report.UnboundIdentifier)
}
