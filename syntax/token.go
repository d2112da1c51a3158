package syntax

import "github.com/Karapus/sem7-compilers/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_FN = iota
	TOK_LET
	TOK_IF
	TOK_ELSE
	TOK_WHILE
	TOK_RETURN
	TOK_PRINT
	TOK_QMARK

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_NOT
	TOK_LAND
	TOK_LOR

	TOK_ASSIGN
	TOK_QUESTION

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_COMMA
	TOK_SEMI

	TOK_IDENT
	TOK_INTLIT

	TOK_EOF
)

// tokenNames is used to render expected token kinds in error messages.
var tokenNames = map[int]string{
	TOK_FN:       "fn",
	TOK_LET:      "let",
	TOK_IF:       "if",
	TOK_ELSE:     "else",
	TOK_WHILE:    "while",
	TOK_RETURN:   "return",
	TOK_PRINT:    "print",
	TOK_QMARK:    "qmark",
	TOK_ASSIGN:   "=",
	TOK_LPAREN:   "(",
	TOK_RPAREN:   ")",
	TOK_LBRACE:   "{",
	TOK_RBRACE:   "}",
	TOK_COMMA:    ",",
	TOK_SEMI:     ";",
	TOK_IDENT:    "identifier",
	TOK_INTLIT:   "integer literal",
	TOK_EOF:      "end of file",
	TOK_QUESTION: "?",
}
