package generate

import (
	"fmt"

	"github.com/Karapus/sem7-compilers/ast"
	"github.com/Karapus/sem7-compilers/llvm"
	"github.com/Karapus/sem7-compilers/report"

	"github.com/llir/llvm/ir/value"
)

// genScope generates each node of a scope in order.
func (g *Generator) genScope(scope *ast.Scope) {
	for _, node := range scope.Nodes {
		g.genNode(node)
	}
}

// genValue generates a node whose value is required.
func (g *Generator) genValue(node ast.Node) value.Value {
	if val := g.genNode(node); val != nil {
		return val
	}

	g.errorf(report.SyntaxError, node.Span(), "statement used where a value is expected")
	return placeholder()
}

// genNode generates any node.  It returns the value of expressions and nil for
// statements.
func (g *Generator) genNode(node ast.Node) value.Value {
	switch v := node.(type) {
	case *ast.IntLit:
		return llvm.ConstInt(int64(v.Value))
	case *ast.Ident:
		val, ce := g.env.Resolve(g.irb, v.Name, v.Span())
		if ce != nil {
			g.error(ce)
			return placeholder()
		}

		return val
	case *ast.Let:
		init := g.genValue(v.Value)
		if ce := g.env.BindLocal(g.irb, v.Name.Name, init, v.Name.Span()); ce != nil {
			g.error(ce)
		}
	case *ast.Assign:
		val := g.genValue(v.Value)
		if ce := g.env.Assign(g.irb, v.Name.Name, val, v.Name.Span()); ce != nil {
			g.error(ce)
		}

		return val
	case *ast.BinaryOp:
		lhs := g.genValue(v.Lhs)
		rhs := g.genValue(v.Rhs)
		return binaryOps[v.Op](g.irb, lhs, rhs)
	case *ast.UnaryOp:
		operand := g.genValue(v.Operand)
		return unaryOps[v.Op](g.irb, operand)
	case *ast.Call:
		return g.genCall(v)
	case *ast.Print:
		arg := g.genValue(v.Arg)
		return g.irb.BuildCall(g.printFunc, arg)
	case *ast.Qmark:
		return g.irb.BuildCall(g.qmarkFunc)
	case *ast.Scope:
		g.genScope(v)
	case *ast.If:
		g.genIf(v)
	case *ast.While:
		g.genWhile(v)
	case *ast.Return:
		g.genReturn(v)
	case *ast.Empty:
	default:
		panic(fmt.Sprintf("generate: unexpected node type %T", node))
	}

	return nil
}

// genCall generates a call to a user-defined function.  The arguments are
// always evaluated left to right, even if the call itself is erroneous.
func (g *Generator) genCall(call *ast.Call) value.Value {
	args := make([]value.Value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = g.genValue(arg)
	}

	callee, ok := g.funcs[call.Callee.Name]
	if !ok {
		g.errorf(report.UndefinedFunction, call.Callee.Span(), "undefined function: `%s`", call.Callee.Name)
		return placeholder()
	}

	if len(args) != len(callee.Params) {
		g.errorf(
			report.ArityMismatch,
			call.Span(),
			"`%s` takes %d arguments but %d were given",
			call.Callee.Name,
			len(callee.Params),
			len(args),
		)
		return placeholder()
	}

	return g.irb.BuildCall(callee, args...)
}
