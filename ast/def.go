package ast

// Module is the root of the tree: the ordered function definitions of one
// compilation unit.
type Module struct {
	ASTBase

	Funcs []*Func
}

// AddFunc appends a function definition to the module.
func (m *Module) AddFunc(fn *Func) *Module {
	m.Funcs = append(m.Funcs, fn)
	return m
}

// Func is a function definition.  Functions are not nested and are resolved by
// name at call sites.
type Func struct {
	ASTBase

	// The name of the function.
	Name *Ident

	// The parameter names in declaration order.
	Params []*Ident

	// The body of the function.
	Body *Scope
}

// NewFunc creates a function definition with no parameters and an empty body.
// The parser fills it in as it reads the definition.
func NewFunc(base ASTBase, name *Ident) *Func {
	return &Func{ASTBase: base, Name: name, Body: &Scope{ASTBase: base}}
}

// AddParam appends a parameter declaration.
func (fn *Func) AddParam(param *Ident) *Func {
	fn.Params = append(fn.Params, param)
	return fn
}

// SetBody sets the body of the function.
func (fn *Func) SetBody(body *Scope) *Func {
	fn.Body = body
	return fn
}
