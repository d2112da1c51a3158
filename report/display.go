package report

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	WarnColorFG    = pterm.FgYellow
	ErrorColorFG   = pterm.FgRed
	InfoColorFG    = SuccessColorFG
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

// paint applies a foreground colour to s if colour output is enabled.
func (r *Reporter) paint(c pterm.Color, s string) string {
	if r.color {
		return c.Sprint(s)
	}

	return s
}

// displayFatal displays a fatal error message.
func (r *Reporter) displayFatal(message string) {
	if r.color {
		fmt.Fprintf(r.out, "%s %s\n", ErrorStyleBG.Sprint("fatal error:"), message)
	} else {
		fmt.Fprintf(r.out, "fatal error: %s\n", message)
	}
}

// displayStdError displays a standard Go error.
func (r *Reporter) displayStdError(path string, err error) {
	fmt.Fprintf(r.out, "%s: %s %s\n", path, r.paint(ErrorColorFG, "error:"), err)
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func (r *Reporter) displayCompileMessage(label, path string, src []byte, span *TextSpan, message string) {
	labelColor := ErrorColorFG
	if label == "warning" {
		labelColor = WarnColorFG
	}

	if span == nil {
		fmt.Fprintf(r.out, "%s: %s %s\n", path, r.paint(labelColor, label+":"), message)
		return
	}

	fmt.Fprintf(r.out, "%s:%s: %s %s\n", path, span, r.paint(labelColor, label+":"), message)
	if src != nil {
		r.displaySourceText(src, span)
	}
}

// displaySourceText displays the lines of src covered by span with the
// spanned text underlined by carets.
func (r *Reporter) displaySourceText(src []byte, span *TextSpan) {
	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(src))
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt32
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Fprint(r.out, r.paint(InfoColorFG, fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1)))
		fmt.Fprintln(r.out, line[minIndent:])
		fmt.Fprint(r.out, strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining begins at the start column on the first line and at the
		// trimmed indent on every line after it.
		start := minIndent
		if i == 0 {
			start = clamp(span.StartCol, minIndent, len(line))
		}

		// Underlining stops at the end column on the last line and at the end
		// of the line on every line before it.
		end := len(line)
		if i == len(lines)-1 {
			end = clamp(span.EndCol, start, len(line))
		}

		carets := end - start
		if carets < 1 {
			carets = 1
		}

		fmt.Fprint(r.out, strings.Repeat(" ", start-minIndent))
		fmt.Fprintln(r.out, r.paint(ErrorColorFG, strings.Repeat("^", carets)))
	}
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	} else if x > hi {
		return hi
	}

	return x
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays the compiler information before compilation.
func (r *Reporter) displayCompileHeader(version, inputPath string) {
	fmt.Fprintf(r.out, "frontc %s -- input: %s\n", r.paint(InfoColorFG, version), inputPath)
}

// displayCompilationFinished displays a compilation finished message.
func (r *Reporter) displayCompilationFinished(outputPath string) {
	if r.errorCount == 0 {
		fmt.Fprint(r.out, r.paint(SuccessColorFG, "All done! "))
	} else {
		fmt.Fprint(r.out, r.paint(ErrorColorFG, "Oh no! "))
	}

	fmt.Fprintf(r.out, "(%s, %s)", plural(r.errorCount, "error"), plural(r.warningCount, "warning"))

	if r.errorCount == 0 && outputPath != "" {
		fmt.Fprintf(r.out, " -> %s", outputPath)
	}

	fmt.Fprintln(r.out)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}

	return strconv.Itoa(n) + " " + noun + "s"
}
