package report

import "fmt"

// TextSpan represents a range or "span" of source text.  Line and column
// numbers are zero-indexed.  The start position is the first character in the
// span; EndCol is one past the last character of the span on EndLine.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	if start == nil {
		return end
	} else if end == nil {
		return start
	}

	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// Before reports whether span s begins before span o.  A nil span sorts
// before every other span.
func (s *TextSpan) Before(o *TextSpan) bool {
	switch {
	case s == nil:
		return o != nil
	case o == nil:
		return false
	case s.StartLine != o.StartLine:
		return s.StartLine < o.StartLine
	default:
		return s.StartCol < o.StartCol
	}
}

// String renders the span start in the one-based `line:col` form used by
// diagnostics.
func (s *TextSpan) String() string {
	if s == nil {
		return "?:?"
	}

	return fmt.Sprintf("%d:%d", s.StartLine+1, s.StartCol+1)
}
