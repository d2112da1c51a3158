package syntax

import (
	"math"
	"strconv"
	"strings"

	"github.com/Karapus/sem7-compilers/ast"
	"github.com/Karapus/sem7-compilers/report"
)

// expr := 'IDENT' '=' expr | or_expr ;
func (p *Parser) parseExpr() ast.Node {
	lhs := p.parseBinOpExpr()

	if p.has(TOK_ASSIGN) {
		ident, ok := lhs.(*ast.Ident)
		if !ok {
			p.rejectWithMsg("cannot assign to expression")
		}

		p.next()
		rhs := p.parseExpr()

		return &ast.Assign{
			ASTBase: ast.NewASTBaseOver(ident.Span(), rhs.Span()),
			Name:    ident,
			Value:   rhs,
		}
	}

	return lhs
}

// -----------------------------------------------------------------------------

// or_expr := and_expr {'||' and_expr} ;
// and_expr := eq_expr {'&&' eq_expr} ;
// eq_expr := rel_expr {('==' | '!=') rel_expr} ;
// rel_expr := add_expr {('<' | '>' | '<=' | '>=') add_expr} ;
// add_expr := mul_expr {('+' | '-') mul_expr} ;
// mul_expr := unary_expr {('*' | '/' | '%') unary_expr} ;
func (p *Parser) parseBinOpExpr() ast.Node {
	return p.precedenceParse(p.parseUnaryExpr(), len(precTable))
}

// precTable is the operator precedence table for binary operators. The table is
// ordered highest to lowest precedence.
var precTable = [][]int{
	{TOK_STAR, TOK_DIV, TOK_MOD},
	{TOK_PLUS, TOK_MINUS},
	{TOK_LT, TOK_GT, TOK_LTEQ, TOK_GTEQ},
	{TOK_EQ, TOK_NEQ},
	{TOK_LAND},
	{TOK_LOR},
}

// binOpKinds maps binary operator tokens to their AST operator.
var binOpKinds = map[int]ast.BinOpKind{
	TOK_STAR:  ast.OpMul,
	TOK_DIV:   ast.OpDiv,
	TOK_MOD:   ast.OpMod,
	TOK_PLUS:  ast.OpAdd,
	TOK_MINUS: ast.OpSub,
	TOK_LT:    ast.OpLess,
	TOK_GT:    ast.OpGreater,
	TOK_LTEQ:  ast.OpLessEq,
	TOK_GTEQ:  ast.OpGreaterEq,
	TOK_EQ:    ast.OpEqual,
	TOK_NEQ:   ast.OpNotEqual,
	TOK_LAND:  ast.OpAnd,
	TOK_LOR:   ast.OpOr,
}

// opPrec returns the precedence level of the current token if it is one of
// the binary operators at a level below maxPrec.
func (p *Parser) opPrec(maxPrec int) (int, bool) {
	for prec, precLevel := range precTable[:maxPrec] {
		for _, kind := range precLevel {
			if p.has(kind) {
				return prec, true
			}
		}
	}

	return 0, false
}

// precedenceParse performs operator precedence parsing for binary operators:
// every operator is left associative.
func (p *Parser) precedenceParse(lhs ast.Node, maxPrec int) ast.Node {
	for {
		opPrec, ok := p.opPrec(maxPrec)
		if !ok {
			return lhs
		}

		op := p.tok
		p.next()

		rhs := p.parseUnaryExpr()

		// Bind any tighter operators to the right operand first.
		for {
			if _, ok := p.opPrec(opPrec); !ok {
				break
			}

			rhs = p.precedenceParse(rhs, opPrec)
		}

		lhs = &ast.BinaryOp{
			ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
			Op:      binOpKinds[op.Kind],
			Lhs:     lhs,
			Rhs:     rhs,
		}
	}
}

// -----------------------------------------------------------------------------

// unary_expr := ('+' | '-' | '!') unary_expr | atom ;
func (p *Parser) parseUnaryExpr() ast.Node {
	var op ast.UnOpKind
	switch p.tok.Kind {
	case TOK_PLUS:
		op = ast.OpPlus
	case TOK_MINUS:
		op = ast.OpNeg
	case TOK_NOT:
		op = ast.OpNot
	default:
		return p.parseAtom()
	}

	startSpan := p.tok.Span
	p.next()

	operand := p.parseUnaryExpr()
	return &ast.UnaryOp{
		ASTBase: ast.NewASTBaseOver(startSpan, operand.Span()),
		Op:      op,
		Operand: operand,
	}
}

// atom := 'INTLIT' | 'IDENT' | call | print_call | qmark_call | '?' | '(' expr ')' ;
// call := 'IDENT' '(' [expr {',' expr}] ')' ;
// print_call := 'print' '(' expr ')' ;
// qmark_call := 'qmark' '(' ')' ;
func (p *Parser) parseAtom() ast.Node {
	startTok := p.tok

	switch p.tok.Kind {
	case TOK_INTLIT:
		p.next()
		return p.newIntLit(startTok)
	case TOK_IDENT:
		ident := p.parseIdent()
		if p.has(TOK_LPAREN) {
			return p.parseCall(ident)
		}

		return ident
	case TOK_PRINT:
		p.next()
		p.want(TOK_LPAREN)
		arg := p.parseExpr()
		p.want(TOK_RPAREN)

		return &ast.Print{
			ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
			Arg:     arg,
		}
	case TOK_QMARK:
		p.next()
		p.want(TOK_LPAREN)
		p.want(TOK_RPAREN)

		return &ast.Qmark{ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span)}
	case TOK_QUESTION:
		p.next()
		return &ast.Qmark{ASTBase: ast.NewASTBaseOn(startTok.Span)}
	case TOK_LPAREN:
		p.next()
		expr := p.parseExpr()
		p.want(TOK_RPAREN)
		return expr
	}

	p.reject()
	return nil
}

// parseCall parses the argument list of a call to callee.
func (p *Parser) parseCall(callee *ast.Ident) ast.Node {
	call := &ast.Call{Callee: callee}

	p.want(TOK_LPAREN)
	if !p.has(TOK_RPAREN) {
		for {
			call.AddArg(p.parseExpr())

			if p.has(TOK_COMMA) {
				p.next()
				continue
			}

			break
		}
	}
	p.want(TOK_RPAREN)

	call.ASTBase = ast.NewASTBaseOver(callee.Span(), p.lookbehind.Span)
	return call
}

// newIntLit converts an integer literal token into an AST literal.
func (p *Parser) newIntLit(tok *Token) ast.Node {
	// From: https://pkg.go.dev/strconv#ParseInt
	// If the base argument is 0, the true base is implied by the string's
	// prefix: 2 for "0b", 8 for "0o", 16 for "0x".  Unprefixed literals are
	// always decimal, even with leading zeros.
	base := 10
	if len(tok.Value) > 2 && tok.Value[0] == '0' && strings.ContainsRune("xob", rune(tok.Value[1])) {
		base = 0
	}

	x, err := strconv.ParseInt(tok.Value, base, 64)
	if err != nil || x > math.MaxInt32 {
		panic(report.Raise(report.SyntaxError, tok.Span, "integer literal `%s` does not fit in 32 bits", tok.Value))
	}

	return &ast.IntLit{ASTBase: ast.NewASTBaseOn(tok.Span), Value: int32(x)}
}
