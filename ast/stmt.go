package ast

// Let binds a new mutable local variable.
type Let struct {
	ASTBase

	Name  *Ident
	Value Node
}

// Assign stores into an existing local variable.  Assignment is an
// expression: it yields the stored value.
type Assign struct {
	ASTBase

	Name  *Ident
	Value Node
}
