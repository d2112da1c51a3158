package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Karapus/sem7-compilers/common"
	"github.com/Karapus/sem7-compilers/config"
	"github.com/Karapus/sem7-compilers/interp"
	"github.com/Karapus/sem7-compilers/llvm"
	"github.com/Karapus/sem7-compilers/report"
	"github.com/Karapus/sem7-compilers/syntax"

	"github.com/llir/llvm/ir"
	"github.com/peterh/liner"
)

const (
	replPath      = "<repl>"
	replEntry     = "__repl"
	historyFile   = ".frontc_history"
	promptMain    = "fc> "
	promptCont    = "... "
	promptQmark   = "qmark> "
	replBanner    = "frontc %s interactive session. Type :quit to exit.\n"
	unknownCmdFmt = "unknown command `%s`. Commands are :ir, :reset and :quit.\n"
)

// Session is the state of an interactive session: the function definitions
// entered so far.  Anything else entered is run as the body of a fresh
// function that can call those definitions.
type Session struct {
	cfg      *config.Config
	reporter *report.Reporter
	out      io.Writer
	rt       interp.Runtime

	// defs is the source text of every accepted definition, in order.
	defs []string
}

// NewSession creates a new interactive session.  Results are written to out
// and the builtins are provided by rt.
func NewSession(cfg *config.Config, reporter *report.Reporter, out io.Writer, rt interp.Runtime) *Session {
	return &Session{cfg: cfg, reporter: reporter, out: out, rt: rt}
}

// NeedsMore returns whether src stops in the middle of a construct so that the
// session should read another line before evaluating it.
func (s *Session) NeedsMore(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return false
	}

	text := src
	if !isDefinition(src) {
		text = wrapStatements(src)
	}

	_, err := syntax.ParseModule(strings.NewReader(text))
	return report.IsIncomplete(err)
}

// Eval evaluates one complete input.  It returns false if the session should
// end.
func (s *Session) Eval(src string) bool {
	trimmed := strings.TrimSpace(src)
	switch {
	case trimmed == "":
		return true
	case strings.HasPrefix(trimmed, ":"):
		return s.command(trimmed)
	case isDefinition(src):
		s.define(src)
	default:
		s.exec(src)
	}

	return true
}

// command executes a session command.
func (s *Session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return false
	case ":reset":
		s.defs = nil
	case ":ir":
		mod, err := s.compile("")
		if err != nil {
			s.reporter.ReportCompileError(replPath, []byte(s.source("")), err)
		} else {
			llvm.WriteModule(s.out, mod)
		}
	default:
		fmt.Fprintf(s.out, unknownCmdFmt, cmd)
	}

	return true
}

// define adds the definitions in src to the session if they compile along
// with the previous ones.
func (s *Session) define(src string) {
	if _, err := s.compile(src); err != nil {
		s.reporter.ReportCompileError(replPath, []byte(s.source(src)), err)
		return
	}

	s.defs = append(s.defs, src)
}

// exec runs src as the body of a fresh function.  A lone expression is
// returned from that function and its value shown.
func (s *Session) exec(src string) {
	entry := wrapExpr(src)
	mod, err := s.compile(entry)

	var syntaxErr *report.CompileError
	if errors.As(err, &syntaxErr) && syntaxErr.Kind == report.SyntaxError {
		entry = wrapStatements(src)
		mod, err = s.compile(entry)
	}

	if err != nil {
		s.reporter.ReportCompileError(replPath, []byte(s.source(entry)), err)
		return
	}

	m := interp.NewMachine(mod, s.rt)
	m.PrintSymbol = s.cfg.PrintSymbol
	m.QmarkSymbol = s.cfg.QmarkSymbol

	result, err := m.Run(replEntry)
	if err != nil {
		s.reporter.ReportStdError(replPath, err)
		return
	}

	fmt.Fprintf(s.out, "=> %d\n", result)
}

// source returns the text of all the definitions followed by extra.
func (s *Session) source(extra string) string {
	return strings.Join(append(append([]string(nil), s.defs...), extra), "\n")
}

// compile compiles the session definitions followed by extra.
func (s *Session) compile(extra string) (*ir.Module, error) {
	opts := s.cfg.GenerateOptions()
	opts.SourceName = replPath
	return CompileSource(replPath, []byte(s.source(extra)), opts)
}

// isDefinition returns whether src starts with a function definition.
func isDefinition(src string) bool {
	tok, err := syntax.NewLexer(strings.NewReader(src)).NextToken()
	return err == nil && tok.Kind == syntax.TOK_FN
}

func wrapExpr(src string) string {
	return fmt.Sprintf("fn %s() {\nreturn (\n%s\n);\n}", replEntry, src)
}

func wrapStatements(src string) string {
	return fmt.Sprintf("fn %s() {\n%s\n}", replEntry, src)
}

// -----------------------------------------------------------------------------

// execReplCommand runs an interactive session on the terminal.
func execReplCommand(cfg *config.Config, reporter *report.Reporter, stdout io.Writer) int {
	fmt.Fprintf(stdout, replBanner, common.FrontcVersion)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	sess := NewSession(cfg, reporter, stdout, &linerRuntime{ln: ln, out: stdout})
	for {
		src, ok := readByParseProbe(ln, sess)
		if !ok {
			fmt.Fprintln(stdout)
			break
		}

		if strings.TrimSpace(src) != "" {
			ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		}

		if !sess.Eval(src) {
			break
		}
	}

	return ExitSuccess
}

// readByParseProbe reads lines until they form a complete input.  It returns
// false when the input ends.
func readByParseProbe(ln *liner.State, sess *Session) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		} else if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		} else if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if src := b.String(); !sess.NeedsMore(src) {
			return src, true
		}
	}
}

// linerRuntime prints to the terminal and prompts for qmark values.
type linerRuntime struct {
	ln  *liner.State
	out io.Writer
}

func (lr *linerRuntime) Print(x int32) (int32, error) {
	_, err := fmt.Fprintf(lr.out, "%d\n", x)
	return x, err
}

func (lr *linerRuntime) Qmark() (int32, error) {
	for {
		line, err := lr.ln.Prompt(promptQmark)
		if err != nil {
			return 0, interp.ErrNoInput
		}

		x, err := strconv.ParseInt(strings.TrimSpace(line), 0, 32)
		if err == nil {
			return int32(x), nil
		}

		fmt.Fprintf(lr.out, "expected an integer, got `%s`\n", line)
	}
}
