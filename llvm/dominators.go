package llvm

import "github.com/llir/llvm/ir"

// domTree is the dominator tree of the reachable blocks of a function,
// computed with the iterative algorithm of Cooper, Harvey and Kennedy.
type domTree struct {
	// Reverse postorder number of each reachable block.
	order map[*ir.Block]int

	// Immediate dominator of each reachable block.  The entry block is its own
	// immediate dominator.
	idom map[*ir.Block]*ir.Block
}

func newDomTree(fn *ir.Func) *domTree {
	dt := &domTree{
		order: make(map[*ir.Block]int),
		idom:  make(map[*ir.Block]*ir.Block),
	}

	entry := fn.Blocks[0]

	// Depth-first walk collecting the postorder.
	var postorder []*ir.Block
	visited := make(map[*ir.Block]bool)

	var walk func(block *ir.Block)
	walk = func(block *ir.Block) {
		visited[block] = true
		for _, succ := range Successors(block) {
			if succ != nil && !visited[succ] {
				walk(succ)
			}
		}

		postorder = append(postorder, block)
	}
	walk(entry)

	rpo := make([]*ir.Block, len(postorder))
	for i, block := range postorder {
		rpo[len(postorder)-1-i] = block
		dt.order[block] = len(postorder) - 1 - i
	}

	preds := make(map[*ir.Block][]*ir.Block)
	for _, block := range rpo {
		for _, succ := range Successors(block) {
			preds[succ] = append(preds[succ], block)
		}
	}

	dt.idom[entry] = entry
	for changed := true; changed; {
		changed = false

		for _, block := range rpo[1:] {
			var newIdom *ir.Block
			for _, pred := range preds[block] {
				if _, ok := dt.idom[pred]; !ok {
					continue
				}

				if newIdom == nil {
					newIdom = pred
				} else {
					newIdom = dt.intersect(pred, newIdom)
				}
			}

			if dt.idom[block] != newIdom {
				dt.idom[block] = newIdom
				changed = true
			}
		}
	}

	return dt
}

func (dt *domTree) intersect(a, b *ir.Block) *ir.Block {
	for a != b {
		for dt.order[a] > dt.order[b] {
			a = dt.idom[a]
		}

		for dt.order[b] > dt.order[a] {
			b = dt.idom[b]
		}
	}

	return a
}

func (dt *domTree) reachable(block *ir.Block) bool {
	_, ok := dt.order[block]
	return ok
}

// dominates returns whether every path from the entry to b passes through a.
func (dt *domTree) dominates(a, b *ir.Block) bool {
	if !dt.reachable(a) || !dt.reachable(b) {
		return false
	}

	for {
		if a == b {
			return true
		}

		next := dt.idom[b]
		if next == b {
			return false
		}

		b = next
	}
}
