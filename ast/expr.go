package ast

// IntLit is an integer literal.
type IntLit struct {
	ASTBase

	Value int32
}

// Ident is a reference to a named value.
type Ident struct {
	ASTBase

	Name string
}

// BinaryOp is a binary operator application.
type BinaryOp struct {
	ASTBase

	Op       BinOpKind
	Lhs, Rhs Node
}

// UnaryOp is a unary operator application.
type UnaryOp struct {
	ASTBase

	Op      UnOpKind
	Operand Node
}

// Call is a call to a user-defined function.
type Call struct {
	ASTBase

	Callee *Ident
	Args   []Node
}

// AddArg appends an argument to the call.
func (c *Call) AddArg(arg Node) *Call {
	c.Args = append(c.Args, arg)
	return c
}

// Print is a call to the `print` builtin.
type Print struct {
	ASTBase

	Arg Node
}

// Qmark is a call to the niladic `qmark` builtin.
type Qmark struct {
	ASTBase
}

// -----------------------------------------------------------------------------

// BinOpKind is the operator of a BinaryOp.
type BinOpKind int

// Enumeration of binary operators.
const (
	OpMul BinOpKind = iota
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpLess
	OpGreater
	OpLessEq
	OpGreaterEq
	OpEqual
	OpNotEqual
	OpAnd
	OpOr
)

var binOpSymbols = [...]string{
	OpMul:       "*",
	OpDiv:       "/",
	OpMod:       "%",
	OpAdd:       "+",
	OpSub:       "-",
	OpLess:      "<",
	OpGreater:   ">",
	OpLessEq:    "<=",
	OpGreaterEq: ">=",
	OpEqual:     "==",
	OpNotEqual:  "!=",
	OpAnd:       "&&",
	OpOr:        "||",
}

func (k BinOpKind) String() string {
	return binOpSymbols[k]
}

// UnOpKind is the operator of a UnaryOp.
type UnOpKind int

// Enumeration of unary operators.
const (
	OpPlus UnOpKind = iota
	OpNeg
	OpNot
)

var unOpSymbols = [...]string{
	OpPlus: "+",
	OpNeg:  "-",
	OpNot:  "!",
}

func (k UnOpKind) String() string {
	return unOpSymbols[k]
}
