package generate

import (
	"github.com/Karapus/sem7-compilers/ast"
	"github.com/Karapus/sem7-compilers/llvm"
	"github.com/Karapus/sem7-compilers/report"

	"github.com/llir/llvm/ir"
)

// declareFunc creates the LLVM function for fn and makes it callable.  A
// function whose name is already taken is reported and gets a function
// outside of the module so its body can still be checked.
func (g *Generator) declareFunc(fn *ast.Func) *ir.Func {
	paramNames := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		paramNames[i] = param.Name
	}

	name := fn.Name.Name
	if name == g.printFunc.Name() || name == g.qmarkFunc.Name() {
		g.errorf(report.DuplicateFunction, fn.Name.Span(), "`%s` is the name of a runtime builtin", name)
		return llvm.NewDetachedIntFunc(name, paramNames...)
	} else if _, ok := g.funcs[name]; ok {
		g.errorf(report.DuplicateFunction, fn.Name.Span(), "function `%s` is defined multiple times", name)
		return llvm.NewDetachedIntFunc(name, paramNames...)
	}

	llvmFunc := llvm.NewIntFunc(g.mod, name, paramNames...)
	g.funcs[name] = llvmFunc
	return llvmFunc
}

// genFunc generates the body of fn into llvmFunc.
func (g *Generator) genFunc(fn *ast.Func, llvmFunc *ir.Func) {
	g.irb = llvm.NewBuilder(llvmFunc)

	// bind the parameters by position
	g.env.Reset()
	for i, param := range fn.Params {
		if ce := g.env.BindParam(param.Name, llvmFunc.Params[i], param.Span()); ce != nil {
			g.error(ce)
		}
	}

	g.genScope(fn.Body)

	// functions which fall off the end of their body return zero
	if !g.irb.Terminated() {
		g.irb.BuildRet(llvm.ConstInt(0))
	}

	for _, ve := range llvm.VerifyFunc(llvmFunc) {
		g.errorf(report.MalformedIR, fn.Name.Span(), "%s", ve)
	}
}
