package generate

import (
	"github.com/Karapus/sem7-compilers/ast"

	"github.com/llir/llvm/ir"
)

// genIf generates an if statement.  The condition is evaluated in its own
// header block.  Without an else branch, the false edge goes straight to the
// exit block.
func (g *Generator) genIf(ifStmt *ast.If) {
	condBlock := g.irb.AppendBlock("if.cond")
	thenBlock := g.irb.AppendBlock("if.then")

	var elseBlock *ir.Block
	if ifStmt.Else != nil {
		elseBlock = g.irb.AppendBlock("if.else")
	}

	exitBlock := g.irb.AppendBlock("if.exit")

	falseTarget := exitBlock
	if elseBlock != nil {
		falseTarget = elseBlock
	}

	g.irb.BuildBr(condBlock)

	// condition
	g.irb.MoveToEnd(condBlock)
	cond := g.genValue(ifStmt.Cond)
	g.irb.BuildCondBr(g.irb.BuildIsTrue(cond), thenBlock, falseTarget)

	// then branch
	g.irb.MoveToEnd(thenBlock)
	g.genScope(ifStmt.Then)
	g.irb.BuildBr(exitBlock)

	// else branch
	if elseBlock != nil {
		g.irb.MoveToEnd(elseBlock)
		g.genScope(ifStmt.Else)
		g.irb.BuildBr(exitBlock)
	}

	g.irb.MoveToEnd(exitBlock)
}

// genWhile generates a while loop.  The condition is evaluated in a header
// block which is re-entered at the end of every iteration.
func (g *Generator) genWhile(whileStmt *ast.While) {
	condBlock := g.irb.AppendBlock("while.cond")
	bodyBlock := g.irb.AppendBlock("while.body")
	exitBlock := g.irb.AppendBlock("while.exit")

	g.irb.BuildBr(condBlock)

	// condition
	g.irb.MoveToEnd(condBlock)
	cond := g.genValue(whileStmt.Cond)
	g.irb.BuildCondBr(g.irb.BuildIsTrue(cond), bodyBlock, exitBlock)

	// body
	g.irb.MoveToEnd(bodyBlock)
	g.genScope(whileStmt.Body)
	g.irb.BuildBr(condBlock)

	g.irb.MoveToEnd(exitBlock)
}

// genReturn generates a return statement.  Anything after the return is
// generated into a fresh block that nothing branches to.
func (g *Generator) genReturn(ret *ast.Return) {
	val := g.genValue(ret.Value)
	g.irb.BuildRet(val)

	g.irb.MoveToEnd(g.irb.AppendBlock("dead"))
}
