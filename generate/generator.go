package generate

import (
	"github.com/Karapus/sem7-compilers/ast"
	"github.com/Karapus/sem7-compilers/common"
	"github.com/Karapus/sem7-compilers/llvm"
	"github.com/Karapus/sem7-compilers/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// Options controls module generation.
type Options struct {
	// SourceName is recorded as the source file name of the module.
	SourceName string

	// DeclarationOrder restricts calls to functions defined before the
	// caller (or the caller itself).  By default all functions are declared
	// before any body is lowered so forward and mutually recursive calls
	// resolve.
	DeclarationOrder bool

	// PrintSymbol and QmarkSymbol name the runtime builtins.  Empty strings
	// select the defaults.
	PrintSymbol string
	QmarkSymbol string
}

func (opts Options) printSymbol() string {
	if opts.PrintSymbol == "" {
		return common.DefaultPrintSymbol
	}

	return opts.PrintSymbol
}

func (opts Options) qmarkSymbol() string {
	if opts.QmarkSymbol == "" {
		return common.DefaultQmarkSymbol
	}

	return opts.QmarkSymbol
}

// Generator is responsible for converting the AST of one module into an LLVM
// IR module.  Generation is a single tree walk per function.
type Generator struct {
	// opts are the options generation runs with.
	opts Options

	// mod is the LLVM module being generated.
	mod *ir.Module

	// printFunc and qmarkFunc are the declarations of the runtime builtins.
	printFunc *ir.Func
	qmarkFunc *ir.Func

	// funcs is the table of functions callable from the body being lowered.
	funcs map[string]*ir.Func

	// env is the binding environment of the function being lowered.
	env *Env

	// irb is the builder for the function being lowered.
	irb *llvm.IRBuilder

	// errors is the list of errors encountered so far.
	errors report.ErrorList
}

// NewGenerator creates a new generator with the given options.
func NewGenerator(opts Options) *Generator {
	return &Generator{
		opts:  opts,
		mod:   llvm.NewModule(opts.SourceName),
		funcs: make(map[string]*ir.Func),
		env:   NewEnv(),
	}
}

// Generate converts mod into an LLVM module.  If any errors occur, no module
// is returned and the error is a report.ErrorList containing every error found,
// sorted by position.
func Generate(mod *ast.Module, opts Options) (*ir.Module, error) {
	return NewGenerator(opts).Generate(mod)
}

// Generate runs the generation algorithm over mod.
func (g *Generator) Generate(mod *ast.Module) (*ir.Module, error) {
	// the builtins are always declared first, even if unused
	g.printFunc = llvm.NewIntFunc(g.mod, g.opts.printSymbol(), "x")
	g.qmarkFunc = llvm.NewIntFunc(g.mod, g.opts.qmarkSymbol())

	// under the default policy, every function is declared up front
	llvmFuncs := make([]*ir.Func, len(mod.Funcs))
	if !g.opts.DeclarationOrder {
		for i, fn := range mod.Funcs {
			llvmFuncs[i] = g.declareFunc(fn)
		}
	}

	for i, fn := range mod.Funcs {
		if g.opts.DeclarationOrder {
			llvmFuncs[i] = g.declareFunc(fn)
		}

		g.genFunc(fn, llvmFuncs[i])
	}

	if len(g.errors) > 0 {
		g.errors.Sort()
		return nil, g.errors
	}

	return g.mod, nil
}

// -----------------------------------------------------------------------------

// error records a compile error and keeps going.
func (g *Generator) error(ce *report.CompileError) {
	g.errors = append(g.errors, ce)
}

// errorf records a new compile error and keeps going.
func (g *Generator) errorf(kind report.ErrorKind, span *report.TextSpan, msg string, args ...interface{}) {
	g.errors.Add(kind, span, msg, args...)
}

// placeholder is the value substituted for an expression that could not be
// lowered so that lowering can continue past the error.
func placeholder() value.Value {
	return llvm.ConstInt(0)
}
