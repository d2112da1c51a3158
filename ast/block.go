package ast

// Scope is a brace-delimited sequence of nodes evaluated in order.  It does
// not open a new binding scope: a `let` inside it stays visible for the rest
// of the enclosing function.
type Scope struct {
	ASTBase

	Nodes []Node
}

// Add appends a node to the scope.
func (s *Scope) Add(n Node) *Scope {
	s.Nodes = append(s.Nodes, n)
	return s
}

// If is an if/else statement.  Else is nil when there is no else branch.
type If struct {
	ASTBase

	Cond Node
	Then *Scope
	Else *Scope
}

// While is a while loop.
type While struct {
	ASTBase

	Cond Node
	Body *Scope
}

// Return returns a value from the enclosing function.
type Return struct {
	ASTBase

	Value Node
}

// Empty is a no-op statement (a lone `;`).
type Empty struct {
	ASTBase
}
