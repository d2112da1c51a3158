package report

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies a compile error.
type ErrorKind int

// Enumeration of compile error kinds.
const (
	SyntaxError ErrorKind = iota
	DuplicateBinding
	UnboundIdentifier
	AssignToImmutable
	UndefinedFunction
	ArityMismatch
	DuplicateFunction
	MalformedIR
)

var errorKindNames = [...]string{
	SyntaxError:       "syntax error",
	DuplicateBinding:  "duplicate binding",
	UnboundIdentifier: "unbound identifier",
	AssignToImmutable: "assignment to immutable",
	UndefinedFunction: "undefined function",
	ArityMismatch:     "arity mismatch",
	DuplicateFunction: "duplicate function",
	MalformedIR:       "malformed IR",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// -----------------------------------------------------------------------------

// CompileError is an error in the user's program (or, for MalformedIR, in the
// IR produced from it) tied to a location in the source text.
type CompileError struct {
	// The kind of the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.  This may be nil.
	Span *TextSpan

	// Incomplete is set on syntax errors caused by reaching the end of the
	// input in the middle of a construct.
	Incomplete bool
}

func (ce *CompileError) Error() string {
	if ce.Span == nil {
		return fmt.Sprintf("%s: %s", ce.Kind, ce.Message)
	}

	return fmt.Sprintf("%s: %s: %s", ce.Span, ce.Kind, ce.Message)
}

// Raise creates a new compile error of the given kind.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// IsIncomplete returns whether err is a syntax error caused by input ending
// too early.
func IsIncomplete(err error) bool {
	switch v := err.(type) {
	case *CompileError:
		return v.Incomplete
	case ErrorList:
		return len(v) == 1 && v[0].Incomplete
	}

	return false
}

// -----------------------------------------------------------------------------

// ErrorList is a list of compile errors.  Lowering collects every independent
// error it can find into one list rather than stopping at the first.
type ErrorList []*CompileError

// Add appends a new compile error to the list.
func (el *ErrorList) Add(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) {
	*el = append(*el, Raise(kind, span, msg, args...))
}

// Sort orders the list by source position.  Errors at the same position keep
// their relative order.
func (el ErrorList) Sort() {
	sort.SliceStable(el, func(i, j int) bool {
		return el[i].Span.Before(el[j].Span)
	})
}

// Err returns the list as an error, or nil if it is empty.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}

	return el
}

// Kinds returns the kinds of the errors in list order.
func (el ErrorList) Kinds() []ErrorKind {
	kinds := make([]ErrorKind, len(el))
	for i, ce := range el {
		kinds[i] = ce.Kind
	}

	return kinds
}

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}

	msgs := make([]string, len(el))
	for i, ce := range el {
		msgs[i] = ce.Error()
	}

	return strings.Join(msgs, "\n")
}
