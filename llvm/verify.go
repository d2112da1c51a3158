package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"
)

// VerifyError describes a structural defect in generated IR.
type VerifyError struct {
	Func    string
	Block   string
	Message string
}

func (ve *VerifyError) Error() string {
	if ve.Block == "" {
		return fmt.Sprintf("@%s: %s", ve.Func, ve.Message)
	}

	return fmt.Sprintf("@%s, block %%%s: %s", ve.Func, ve.Block, ve.Message)
}

// VerifyModule checks every defined function in mod.  It returns all the
// defects found.
func VerifyModule(mod *ir.Module) []*VerifyError {
	var errs []*VerifyError
	for _, fn := range mod.Funcs {
		if len(fn.Blocks) > 0 {
			errs = append(errs, VerifyFunc(fn)...)
		}
	}

	return errs
}

// defSite is the location of an instruction within its function.  The
// terminator of a block sits at index `len(block.Insts)`.
type defSite struct {
	block *ir.Block
	index int
}

// funcVerifier holds the per-function state of verification.
type funcVerifier struct {
	fn     *ir.Func
	errs   []*VerifyError
	defs   map[interface{}]defSite
	params map[*ir.Param]struct{}
	blocks map[*ir.Block]struct{}
	dom    *domTree
}

// VerifyFunc checks that every block of fn ends in exactly one terminator,
// that branch targets belong to fn, that calls match the arity of their
// callee, and that every instruction operand is defined on all paths reaching
// its use.  Uses inside unreachable blocks are not checked for dominance.
func VerifyFunc(fn *ir.Func) []*VerifyError {
	fv := &funcVerifier{
		fn:     fn,
		defs:   make(map[interface{}]defSite),
		params: make(map[*ir.Param]struct{}),
		blocks: make(map[*ir.Block]struct{}),
	}

	for _, param := range fn.Params {
		fv.params[param] = struct{}{}
	}

	for _, block := range fn.Blocks {
		fv.blocks[block] = struct{}{}

		for i, inst := range block.Insts {
			fv.defs[inst] = defSite{block: block, index: i}
		}
	}

	for _, block := range fn.Blocks {
		if block.Term == nil {
			fv.errorf(block, "missing terminator")
			continue
		}

		for _, succ := range successors(block.Term) {
			if _, ok := fv.blocks[succ]; !ok {
				fv.errorf(block, "branch to a block outside the function")
			}
		}
	}

	// Dominance is meaningless if the control flow graph itself is broken.
	if len(fv.errs) > 0 {
		return fv.errs
	}

	fv.dom = newDomTree(fn)

	for _, block := range fn.Blocks {
		for i, inst := range block.Insts {
			fv.checkInst(block, i, inst)
		}

		fv.checkTerm(block)
	}

	return fv.errs
}

func (fv *funcVerifier) errorf(block *ir.Block, msg string, args ...interface{}) {
	ve := &VerifyError{Func: fv.fn.Name(), Message: fmt.Sprintf(msg, args...)}
	if block != nil {
		ve.Block = block.Name()
	}

	fv.errs = append(fv.errs, ve)
}

// checkInst checks the operands of a single non-terminator instruction.
func (fv *funcVerifier) checkInst(block *ir.Block, index int, inst ir.Instruction) {
	switch v := inst.(type) {
	case *ir.InstAlloca:
		if block != fv.fn.Blocks[0] {
			fv.errorf(block, "stack allocation outside the entry block")
		}
	case *ir.InstLoad:
		fv.checkOperand(block, index, v.Src)
	case *ir.InstStore:
		fv.checkOperand(block, index, v.Src)
		fv.checkOperand(block, index, v.Dst)
	case *ir.InstAdd:
		fv.checkOperands(block, index, v.X, v.Y)
	case *ir.InstSub:
		fv.checkOperands(block, index, v.X, v.Y)
	case *ir.InstMul:
		fv.checkOperands(block, index, v.X, v.Y)
	case *ir.InstSDiv:
		fv.checkOperands(block, index, v.X, v.Y)
	case *ir.InstSRem:
		fv.checkOperands(block, index, v.X, v.Y)
	case *ir.InstAnd:
		fv.checkOperands(block, index, v.X, v.Y)
	case *ir.InstOr:
		fv.checkOperands(block, index, v.X, v.Y)
	case *ir.InstXor:
		fv.checkOperands(block, index, v.X, v.Y)
	case *ir.InstICmp:
		fv.checkOperands(block, index, v.X, v.Y)
	case *ir.InstZExt:
		fv.checkOperand(block, index, v.From)
	case *ir.InstCall:
		callee, ok := v.Callee.(*ir.Func)
		if !ok {
			fv.errorf(block, "indirect call")
			return
		}

		if len(callee.Params) != len(v.Args) {
			fv.errorf(block, "call to @%s passes %d arguments but it takes %d", callee.Name(), len(v.Args), len(callee.Params))
		}

		fv.checkOperands(block, index, v.Args...)
	default:
		fv.errorf(block, "unexpected instruction: %T", inst)
	}
}

// checkTerm checks the operands of the terminator of block.
func (fv *funcVerifier) checkTerm(block *ir.Block) {
	index := len(block.Insts)

	switch v := block.Term.(type) {
	case *ir.TermRet:
		if v.X == nil {
			fv.errorf(block, "return without a value")
			return
		}

		fv.checkOperand(block, index, v.X)
	case *ir.TermCondBr:
		fv.checkOperand(block, index, v.Cond)
	case *ir.TermBr:
	default:
		fv.errorf(block, "unexpected terminator: %T", block.Term)
	}
}

func (fv *funcVerifier) checkOperands(block *ir.Block, index int, operands ...value.Value) {
	for _, operand := range operands {
		fv.checkOperand(block, index, operand)
	}
}

// checkOperand checks that operand is available at position index of block.
func (fv *funcVerifier) checkOperand(block *ir.Block, index int, operand value.Value) {
	switch v := operand.(type) {
	case nil:
		fv.errorf(block, "missing operand")
	case *constant.Int, *ir.Func:
		// Constants and globals are available everywhere.
	case *ir.Param:
		if _, ok := fv.params[v]; !ok {
			fv.errorf(block, "use of a parameter of another function: %%%s", v.Name())
		}
	default:
		site, ok := fv.defs[operand]
		if !ok {
			fv.errorf(block, "use of a value not defined in this function: %s", operand.Ident())
			return
		}

		if !fv.dom.reachable(block) {
			return
		}

		if site.block == block {
			if site.index >= index {
				fv.errorf(block, "use of %s before its definition", operand.Ident())
			}
		} else if !fv.dom.dominates(site.block, block) {
			fv.errorf(block, "use of %s not dominated by its definition in %%%s", operand.Ident(), site.block.Name())
		}
	}
}

// -----------------------------------------------------------------------------

// successors returns the branch targets of a terminator.
func successors(term ir.Terminator) []*ir.Block {
	switch v := term.(type) {
	case *ir.TermBr:
		return []*ir.Block{asBlock(v.Target)}
	case *ir.TermCondBr:
		return []*ir.Block{asBlock(v.TargetTrue), asBlock(v.TargetFalse)}
	default:
		return nil
	}
}

// asBlock converts a branch target to a block.
func asBlock(target interface{}) *ir.Block {
	block, _ := target.(*ir.Block)
	return block
}

// Successors returns the branch targets of the terminator of block.
func Successors(block *ir.Block) []*ir.Block {
	if block.Term == nil {
		return nil
	}

	return successors(block.Term)
}
