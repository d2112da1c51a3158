package generate

import (
	"github.com/Karapus/sem7-compilers/llvm"
	"github.com/Karapus/sem7-compilers/report"

	"github.com/llir/llvm/ir/value"
)

// Env is the binding environment of the function being lowered.  Parameters
// are bound directly to their values and can never be reassigned.  Locals are
// bound to a stack slot which is loaded on every use and stored on every
// assignment.  A name is in at most one of the two tables, and bindings are
// visible for the rest of the function regardless of the block they occur in.
type Env struct {
	// immutables maps parameter names to their values.
	immutables map[string]value.Value

	// mutables maps local names to their stack slots.
	mutables map[string]value.Value
}

// NewEnv creates a new, empty environment.
func NewEnv() *Env {
	env := &Env{}
	env.Reset()
	return env
}

// Reset clears all bindings.  It is called before lowering each function.
func (env *Env) Reset() {
	env.immutables = make(map[string]value.Value)
	env.mutables = make(map[string]value.Value)
}

// Bound returns whether name is bound in either table.
func (env *Env) Bound(name string) bool {
	_, isParam := env.immutables[name]
	_, isLocal := env.mutables[name]
	return isParam || isLocal
}

// BindParam binds a parameter.  Parameters are bound once each, in order, at
// the entry of the function.
func (env *Env) BindParam(name string, val value.Value, span *report.TextSpan) *report.CompileError {
	if env.Bound(name) {
		return report.Raise(report.DuplicateBinding, span, "multiple parameters named `%s`", name)
	}

	env.immutables[name] = val
	return nil
}

// BindLocal allocates a stack slot for a new local, stores its initial value,
// and binds it.
func (env *Env) BindLocal(irb *llvm.IRBuilder, name string, init value.Value, span *report.TextSpan) *report.CompileError {
	if _, ok := env.immutables[name]; ok {
		return report.Raise(report.DuplicateBinding, span, "`%s` is already bound as a parameter", name)
	} else if _, ok := env.mutables[name]; ok {
		return report.Raise(report.DuplicateBinding, span, "`%s` is already bound in this function", name)
	}

	slot := irb.BuildAlloca()
	irb.BuildStore(init, slot)
	env.mutables[name] = slot
	return nil
}

// Resolve returns the current value of name.  Parameters take priority over
// locals.
func (env *Env) Resolve(irb *llvm.IRBuilder, name string, span *report.TextSpan) (value.Value, *report.CompileError) {
	if val, ok := env.immutables[name]; ok {
		return val, nil
	}

	if slot, ok := env.mutables[name]; ok {
		return irb.BuildLoad(slot), nil
	}

	return nil, report.Raise(report.UnboundIdentifier, span, "undefined symbol: `%s`", name)
}

// Assign stores val into the local bound to name.
func (env *Env) Assign(irb *llvm.IRBuilder, name string, val value.Value, span *report.TextSpan) *report.CompileError {
	if slot, ok := env.mutables[name]; ok {
		irb.BuildStore(val, slot)
		return nil
	}

	if _, ok := env.immutables[name]; ok {
		return report.Raise(report.AssignToImmutable, span, "cannot assign to parameter `%s`", name)
	}

	return report.Raise(report.UnboundIdentifier, span, "undefined symbol: `%s`", name)
}
