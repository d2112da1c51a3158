package generate_test

import (
	"testing"

	"github.com/Karapus/sem7-compilers/generate"
	"github.com/Karapus/sem7-compilers/llvm"
	"github.com/Karapus/sem7-compilers/report"

	"github.com/llir/llvm/ir"
	"github.com/nalgeon/be"
)

func findFunc(t *testing.T, mod *ir.Module, name string) *ir.Func {
	t.Helper()

	for _, fn := range mod.Funcs {
		if fn.Name() == name {
			return fn
		}
	}

	t.Fatalf("no function named %s", name)
	return nil
}

// reachable returns the blocks reachable from the entry of fn.
func reachable(fn *ir.Func) map[*ir.Block]bool {
	seen := make(map[*ir.Block]bool)

	var walk func(block *ir.Block)
	walk = func(block *ir.Block) {
		seen[block] = true
		for _, succ := range llvm.Successors(block) {
			if !seen[succ] {
				walk(succ)
			}
		}
	}
	walk(fn.Blocks[0])

	return seen
}

func TestBuiltinsDeclaredFirst(t *testing.T) {
	mod, err := compile(t, "fn main() { return 0; }", generate.Options{})
	be.Err(t, err, nil)

	be.Equal(t, len(mod.Funcs), 3)
	be.Equal(t, mod.Funcs[0].Name(), "__print")
	be.Equal(t, len(mod.Funcs[0].Params), 1)
	be.Equal(t, len(mod.Funcs[0].Blocks), 0)
	be.Equal(t, mod.Funcs[1].Name(), "__qmark")
	be.Equal(t, len(mod.Funcs[1].Params), 0)
	be.Equal(t, len(mod.Funcs[1].Blocks), 0)
	be.Equal(t, mod.Funcs[2].Name(), "main")
}

func TestQmarkLowersToOneCall(t *testing.T) {
	mod, err := compile(t, "fn main() { return qmark(); }", generate.Options{})
	be.Err(t, err, nil)

	var calls []*ir.InstCall
	for _, block := range findFunc(t, mod, "main").Blocks {
		for _, inst := range block.Insts {
			if call, ok := inst.(*ir.InstCall); ok {
				calls = append(calls, call)
			}
		}
	}

	be.Equal(t, len(calls), 1)
	be.Equal(t, calls[0].Callee.(*ir.Func).Name(), "__qmark")
	be.Equal(t, len(calls[0].Args), 0)

	// the call result is returned as is
	ret, ok := findFunc(t, mod, "main").Blocks[0].Term.(*ir.TermRet)
	be.True(t, ok)
	be.True(t, ret.X == calls[0])
}

func TestCodeAfterReturnIsUnreachable(t *testing.T) {
	src := `fn main() {
		let x = 1;
		return x;
		print(x);
		x = 2;
	}`

	mod, err := compile(t, src, generate.Options{})
	be.Err(t, err, nil)

	fn := findFunc(t, mod, "main")
	live := reachable(fn)

	for _, block := range fn.Blocks {
		for _, inst := range block.Insts {
			if _, ok := inst.(*ir.InstCall); ok {
				be.True(t, !live[block])
			}
		}
	}

	be.Equal(t, len(llvm.VerifyFunc(fn)), 0)
}

func TestLocalsLiveInEntryBlock(t *testing.T) {
	src := `fn main(n) {
		let i = 0;
		while (i < n) {
			let sq = i * i;
			print(sq);
			i = i + 1;
		}
		return i;
	}`

	mod, err := compile(t, src, generate.Options{})
	be.Err(t, err, nil)

	fn := findFunc(t, mod, "main")
	allocas := 0
	for i, block := range fn.Blocks {
		for _, inst := range block.Insts {
			if _, ok := inst.(*ir.InstAlloca); ok {
				be.Equal(t, i, 0)
				allocas++
			}
		}
	}

	be.Equal(t, allocas, 2)
}

func TestParametersAreNotStored(t *testing.T) {
	mod, err := compile(t, "fn id(x) { return x; } fn main() { return id(3); }", generate.Options{})
	be.Err(t, err, nil)

	fn := findFunc(t, mod, "id")
	be.Equal(t, len(fn.Blocks[0].Insts), 0)

	ret := fn.Blocks[0].Term.(*ir.TermRet)
	be.True(t, ret.X == fn.Params[0])
}

func TestComparisonsAreWidened(t *testing.T) {
	mod, err := compile(t, "fn main(a) { return a < 3; }", generate.Options{})
	be.Err(t, err, nil)

	insts := findFunc(t, mod, "main").Blocks[0].Insts
	be.Equal(t, len(insts), 2)

	cmp, isCmp := insts[0].(*ir.InstICmp)
	be.True(t, isCmp)

	zext, isZExt := insts[1].(*ir.InstZExt)
	be.True(t, isZExt)
	be.True(t, zext.From == cmp)
}

func TestEveryFunctionVerifies(t *testing.T) {
	src := `
	fn f(a, b) {
		if (a) {
			while (b) {
				if (b > 10) { return b; } else { b = 0; }
			}
			return 1;
			return 2;
		}
		return a && b || !a;
	}
	fn main() { return f(1, 20) + f(0, 0); }
	`

	mod, err := compile(t, src, generate.Options{})
	be.Err(t, err, nil)

	be.Equal(t, len(llvm.VerifyModule(mod)), 0)
}

func TestDeclarationOrderPolicy(t *testing.T) {
	src := "fn main() { return later(); }\nfn later() { return 5; }"

	_, err := compile(t, src, generate.Options{})
	be.Err(t, err, nil)

	_, err = compile(t, src, generate.Options{DeclarationOrder: true})
	errs, ok := err.(report.ErrorList)
	be.True(t, ok)
	be.Equal(t, errs.Kinds(), []report.ErrorKind{report.UndefinedFunction})
	be.Equal(t, errs[0].Span.StartLine, 0)
}

func TestErrorsCarryPositions(t *testing.T) {
	src := "fn main() {\n    let x = 1;\n    let x = 2;\n    return x;\n}"

	_, err := compile(t, src, generate.Options{})
	errs, ok := err.(report.ErrorList)
	be.True(t, ok)
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Kind, report.DuplicateBinding)
	be.Equal(t, errs[0].Span.StartLine, 2)
	be.Equal(t, errs[0].Span.StartCol, 8)
}
