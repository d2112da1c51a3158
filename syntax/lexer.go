package syntax

import (
	"io"
	"strings"
	"unicode"

	"github.com/Karapus/sem7-compilers/report"
)

// Lexer splits source text into tokens.  The whole input is read up front so
// the lexer can look two runes ahead.
type Lexer struct {
	src []rune
	pos int

	// readErr is the error the input failed with, if any.  It is returned by
	// the first call to NextToken.
	readErr error

	// line and col are the position of src[pos].
	line, col int

	// start, startLine and startCol mark the beginning of the current token.
	start               int
	startLine, startCol int
}

// NewLexer creates a new lexer reading all of r.
func NewLexer(r io.Reader) *Lexer {
	buff, err := io.ReadAll(r)
	return &Lexer{src: []rune(string(buff)), readErr: err}
}

// NextToken returns the next token of the input.  Once the input is
// exhausted, every call returns an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	if l.readErr != nil {
		return nil, l.readErr
	}

	if err := l.skipTrivia(); err != nil {
		return nil, err
	}

	l.mark()

	c := l.peek(0)
	switch {
	case c == -1:
		return l.token(TOK_EOF, ""), nil
	case isDecimalDigit(c):
		return l.lexIntLit()
	case isIdentStart(c):
		return l.lexWord(), nil
	default:
		return l.lexSymbol()
	}
}

// -----------------------------------------------------------------------------

// skipTrivia moves past whitespace and comments.
func (l *Lexer) skipTrivia() error {
	for {
		switch c := l.peek(0); {
		case unicode.IsSpace(c):
			l.advance()
		case c == '/' && l.peek(1) == '/':
			for c := l.peek(0); c != '\n' && c != -1; c = l.peek(0) {
				l.advance()
			}
		case c == '/' && l.peek(1) == '*':
			l.mark()
			l.advance()
			l.advance()

			for !(l.peek(0) == '*' && l.peek(1) == '/') {
				if l.advance() == -1 {
					cerr := report.Raise(report.SyntaxError, l.span(), "unclosed block comment")
					cerr.Incomplete = true
					return cerr
				}
			}

			l.advance()
			l.advance()
		default:
			return nil
		}
	}
}

// -----------------------------------------------------------------------------

// symbols maps operator and punctuation text to its token kind.  Two rune
// symbols are matched before one rune symbols.
var symbols = map[string]int{
	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<=": TOK_LTEQ,
	">=": TOK_GTEQ,
	"&&": TOK_LAND,
	"||": TOK_LOR,

	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	"/": TOK_DIV,
	"%": TOK_MOD,
	"<": TOK_LT,
	">": TOK_GT,
	"!": TOK_NOT,
	"=": TOK_ASSIGN,
	"?": TOK_QUESTION,
	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	",": TOK_COMMA,
	";": TOK_SEMI,
}

// lexSymbol lexes an operator or a punctuation mark.
func (l *Lexer) lexSymbol() (*Token, error) {
	if pair := string([]rune{l.peek(0), l.peek(1)}); l.peek(1) != -1 {
		if kind, ok := symbols[pair]; ok {
			l.advance()
			l.advance()
			return l.token(kind, pair), nil
		}
	}

	c := l.advance()
	if kind, ok := symbols[string(c)]; ok {
		return l.token(kind, string(c)), nil
	}

	// `&` and `|` only exist doubled
	if c == '&' || c == '|' {
		return nil, report.Raise(report.SyntaxError, l.span(), "unknown operator `%c`", c)
	}

	return nil, report.Raise(report.SyntaxError, l.span(), "unknown rune `%c`", c)
}

// keywords maps reserved words to their token kind.
var keywords = map[string]int{
	"fn":     TOK_FN,
	"let":    TOK_LET,
	"if":     TOK_IF,
	"else":   TOK_ELSE,
	"while":  TOK_WHILE,
	"return": TOK_RETURN,
	"print":  TOK_PRINT,
	"qmark":  TOK_QMARK,
}

// lexWord lexes an identifier or a keyword.
func (l *Lexer) lexWord() *Token {
	for c := l.peek(0); isIdentStart(c) || isDecimalDigit(c); c = l.peek(0) {
		l.advance()
	}

	word := l.text()
	if kind, ok := keywords[word]; ok {
		return l.token(kind, word)
	}

	return l.token(TOK_IDENT, word)
}

// lexIntLit lexes an integer literal.  The base prefix stays in the token
// value; `_` separators are dropped.
func (l *Lexer) lexIntLit() (*Token, error) {
	base := 10
	if l.peek(0) == '0' {
		switch l.peek(1) {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
	}

	digits := 0
	if base != 10 {
		l.advance()
		l.advance()
	}

	for {
		c := l.peek(0)
		if c == '_' {
			l.advance()
			continue
		} else if isDigitOfBase(c, base) {
			l.advance()
			digits++
			continue
		}

		// a letter or a stray digit glued to the literal
		if isIdentStart(c) || isDecimalDigit(c) {
			l.advance()
			return nil, report.Raise(report.SyntaxError, l.span(), "malformed integer literal")
		}

		break
	}

	if digits == 0 {
		return nil, report.Raise(report.SyntaxError, l.span(), "incomplete integer literal")
	}

	return l.token(TOK_INTLIT, strings.ReplaceAll(l.text(), "_", "")), nil
}

// -----------------------------------------------------------------------------

// peek returns the rune n places ahead of the current one, or -1 past the end
// of the input.
func (l *Lexer) peek(n int) rune {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}

	return -1
}

// advance consumes the current rune and returns it.  A tab counts as four
// columns.
func (l *Lexer) advance() rune {
	c := l.peek(0)
	if c == -1 {
		return c
	}

	l.pos++
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}

	return c
}

// mark records the current position as the start of a token.
func (l *Lexer) mark() {
	l.start = l.pos
	l.startLine, l.startCol = l.line, l.col
}

// text returns the source text of the current token.
func (l *Lexer) text() string {
	return string(l.src[l.start:l.pos])
}

// span returns the span from the mark to the current position.
func (l *Lexer) span() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

func (l *Lexer) token(kind int, value string) *Token {
	return &Token{Kind: kind, Value: value, Span: l.span()}
}

// -----------------------------------------------------------------------------

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isDigitOfBase(c rune, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return '0' <= c && c <= '7'
	case 16:
		return isDecimalDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
	default:
		return isDecimalDigit(c)
	}
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
