package syntax

import (
	"fmt"
	"io"

	"github.com/Karapus/sem7-compilers/ast"
	"github.com/Karapus/sem7-compilers/report"
)

// NOTE: All parsing functions are commented with the EBNF notation of the
// grammar they parse.

// Parser is a recursive descent parser for one source file.  All parsing
// functions assume that they begin with the parser centered on the first token
// of their production and must consume all tokens (including the last) of
// their production, leaving the parser on the next token.  Errors are raised
// by panicking with a *report.CompileError which Parse recovers.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the token the parser was positioned on before tok.
	lookbehind *Token
}

// NewParser creates a new parser reading source text from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// Parse parses a whole module.  The first syntax error stops parsing and is
// returned as a *report.CompileError.
func (p *Parser) Parse() (mod *ast.Module, err error) {
	defer func() {
		if x := recover(); x != nil {
			if cerr, ok := x.(*report.CompileError); ok {
				mod = nil
				err = cerr
			} else if serr, ok := x.(error); ok {
				mod = nil
				err = serr
			} else {
				panic(x)
			}
		}
	}()

	p.next()
	return p.parseModule(), nil
}

// ParseModule parses the source text read from r into a module.
func ParseModule(r io.Reader) (*ast.Module, error) {
	return NewParser(r).Parse()
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.lexer.NextToken()
	if err != nil {
		panic(err)
	}

	p.lookbehind = p.tok
	p.tok = tok
}

// has returns true if the parser is on a token of a given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the parser is on a token of the given kind, moves the
// parser forward, and returns the matched token.
func (p *Parser) want(kind int) *Token {
	if !p.has(kind) {
		p.rejectWithExpected(kind)
	}

	tok := p.tok
	p.next()
	return tok
}

// -----------------------------------------------------------------------------

// reject raises an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.has(TOK_EOF) {
		p.raiseIncomplete("unexpected end of file")
	}

	p.rejectWithMsg("unexpected token `%s`", p.tok.Value)
}

// rejectWithExpected raises an error naming the token kind that was expected.
func (p *Parser) rejectWithExpected(kind int) {
	if p.has(TOK_EOF) {
		p.raiseIncomplete("expected `%s` not end of file", tokenNames[kind])
	}

	p.rejectWithMsg("expected `%s` not `%s`", tokenNames[kind], p.tok.Value)
}

// rejectWithMsg rejects the current token with a specific message.
func (p *Parser) rejectWithMsg(msg string, a ...interface{}) {
	panic(report.Raise(report.SyntaxError, p.tok.Span, msg, a...))
}

// raiseIncomplete raises a syntax error for input that ended too early.
func (p *Parser) raiseIncomplete(msg string, a ...interface{}) {
	cerr := report.Raise(report.SyntaxError, p.tok.Span, fmt.Sprintf(msg, a...))
	cerr.Incomplete = true
	panic(cerr)
}
