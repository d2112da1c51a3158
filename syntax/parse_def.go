package syntax

import (
	"github.com/Karapus/sem7-compilers/ast"
)

// module := {func_def} 'EOF' ;
func (p *Parser) parseModule() *ast.Module {
	mod := &ast.Module{ASTBase: ast.NewASTBaseOn(p.tok.Span)}

	for !p.has(TOK_EOF) {
		mod.AddFunc(p.parseFuncDef())
	}

	if len(mod.Funcs) > 0 {
		mod.ASTBase = ast.NewASTBaseOver(mod.Funcs[0].Span(), mod.Funcs[len(mod.Funcs)-1].Span())
	}

	return mod
}

// func_def := 'fn' 'IDENT' '(' [ident_list] ')' scope ;
// ident_list := 'IDENT' {',' 'IDENT'} ;
func (p *Parser) parseFuncDef() *ast.Func {
	startSpan := p.want(TOK_FN).Span
	name := p.parseIdent()

	fn := ast.NewFunc(ast.NewASTBaseOn(startSpan), name)

	p.want(TOK_LPAREN)
	if !p.has(TOK_RPAREN) {
		for {
			fn.AddParam(p.parseIdent())

			if p.has(TOK_COMMA) {
				p.next()
				continue
			}

			break
		}
	}
	p.want(TOK_RPAREN)

	fn.SetBody(p.parseScope())
	fn.ASTBase = ast.NewASTBaseOver(startSpan, p.lookbehind.Span)
	return fn
}

// parseIdent parses a single identifier.
func (p *Parser) parseIdent() *ast.Ident {
	tok := p.want(TOK_IDENT)
	return &ast.Ident{ASTBase: ast.NewASTBaseOn(tok.Span), Name: tok.Value}
}
