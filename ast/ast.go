// Package ast defines the tree produced by the parser.  The node set is closed:
// every node type implements Node through an unexported method, so a type
// switch over the kinds below is exhaustive.
package ast

import "github.com/Karapus/sem7-compilers/report"

// Node is the interface for all AST nodes.
type Node interface {
	// Span returns the text span of the node.
	Span() *report.TextSpan

	node()
}

// ASTBase is a utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

func (ASTBase) node() {}
