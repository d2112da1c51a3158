package syntax

import (
	"github.com/Karapus/sem7-compilers/ast"
)

// scope := '{' {stmt} '}' ;
func (p *Parser) parseScope() *ast.Scope {
	startSpan := p.want(TOK_LBRACE).Span

	scope := &ast.Scope{}
	for !p.has(TOK_RBRACE) {
		scope.Add(p.parseStmt())
	}

	p.next()
	scope.ASTBase = ast.NewASTBaseOver(startSpan, p.lookbehind.Span)
	return scope
}

// stmt := let_stmt | if_stmt | while_loop | return_stmt | scope | ';' | expr ';' ;
func (p *Parser) parseStmt() ast.Node {
	switch p.tok.Kind {
	case TOK_LET:
		return p.parseLetStmt()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileLoop()
	case TOK_RETURN:
		return p.parseReturnStmt()
	case TOK_LBRACE:
		return p.parseScope()
	case TOK_SEMI:
		p.next()
		return &ast.Empty{ASTBase: ast.NewASTBaseOn(p.lookbehind.Span)}
	}

	expr := p.parseExpr()
	p.want(TOK_SEMI)
	return expr
}

// let_stmt := 'let' 'IDENT' '=' expr ';' ;
func (p *Parser) parseLetStmt() ast.Node {
	startSpan := p.want(TOK_LET).Span
	name := p.parseIdent()
	p.want(TOK_ASSIGN)
	value := p.parseExpr()
	p.want(TOK_SEMI)

	return &ast.Let{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Name:    name,
		Value:   value,
	}
}

// if_stmt := 'if' '(' expr ')' scope ['else' (scope | if_stmt)] ;
func (p *Parser) parseIfStmt() ast.Node {
	startSpan := p.want(TOK_IF).Span

	p.want(TOK_LPAREN)
	cond := p.parseExpr()
	p.want(TOK_RPAREN)

	ifStmt := &ast.If{
		Cond: cond,
		Then: p.parseScope(),
	}

	if p.has(TOK_ELSE) {
		p.next()

		if p.has(TOK_IF) {
			// `else if` becomes an else scope holding the nested if.
			elif := p.parseIfStmt()
			ifStmt.Else = (&ast.Scope{ASTBase: ast.NewASTBaseOn(elif.Span())}).Add(elif)
		} else {
			ifStmt.Else = p.parseScope()
		}
	}

	ifStmt.ASTBase = ast.NewASTBaseOver(startSpan, p.lookbehind.Span)
	return ifStmt
}

// while_loop := 'while' '(' expr ')' scope ;
func (p *Parser) parseWhileLoop() ast.Node {
	startSpan := p.want(TOK_WHILE).Span

	p.want(TOK_LPAREN)
	cond := p.parseExpr()
	p.want(TOK_RPAREN)
	body := p.parseScope()

	return &ast.While{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Cond:    cond,
		Body:    body,
	}
}

// return_stmt := 'return' expr ';' ;
func (p *Parser) parseReturnStmt() ast.Node {
	startSpan := p.want(TOK_RETURN).Span
	value := p.parseExpr()
	p.want(TOK_SEMI)

	return &ast.Return{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Value:   value,
	}
}
