package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Karapus/sem7-compilers/config"
	"github.com/Karapus/sem7-compilers/interp"
	"github.com/Karapus/sem7-compilers/report"

	"github.com/nalgeon/be"
)

func newTestSession(input string) (*Session, *bytes.Buffer, *bytes.Buffer) {
	var out, diag bytes.Buffer

	cfg := config.Default()
	reporter := report.NewReporter(&diag, report.LogLevelWarn, false)
	rt := interp.NewStreamRuntime(&out, strings.NewReader(input))

	return NewSession(cfg, reporter, &out, rt), &out, &diag
}

func TestSessionExpr(t *testing.T) {
	sess, out, diag := newTestSession("")

	be.True(t, sess.Eval("1 + 2 * 3"))
	be.Equal(t, out.String(), "=> 7\n")
	be.Equal(t, diag.String(), "")
}

func TestSessionStatements(t *testing.T) {
	sess, out, _ := newTestSession("")

	sess.Eval("let x = 2;\nwhile (x < 5) { print(x); x = x + 1; }")
	be.Equal(t, out.String(), "2\n3\n4\n=> 0\n")

	out.Reset()
	sess.Eval("print(9)")
	be.Equal(t, out.String(), "9\n=> 9\n")
}

func TestSessionDefinitions(t *testing.T) {
	sess, out, diag := newTestSession("")

	sess.Eval("fn sq(a) { return a * a; }")
	sess.Eval("fn twice(a) { return sq(a) + sq(a); }")
	be.Equal(t, out.String(), "")

	sess.Eval("twice(3)")
	be.Equal(t, out.String(), "=> 18\n")

	sess.Eval("fn sq(b) { return b; }")
	be.True(t, strings.Contains(diag.String(), "duplicate function"))

	out.Reset()
	sess.Eval("sq(5)")
	be.Equal(t, out.String(), "=> 25\n")
}

func TestSessionErrors(t *testing.T) {
	sess, out, diag := newTestSession("")

	sess.Eval("y + 1")
	be.True(t, strings.Contains(diag.String(), "<repl>:3:1: error: unbound identifier"))

	diag.Reset()
	sess.Eval("1 / 0")
	be.True(t, strings.Contains(diag.String(), "division by zero"))
	be.Equal(t, out.String(), "")
}

func TestSessionQmark(t *testing.T) {
	sess, out, diag := newTestSession("7 -2")

	sess.Eval("? * 2")
	sess.Eval("qmark() + 1")
	be.Equal(t, out.String(), "=> 14\n=> -1\n")

	sess.Eval("?")
	be.True(t, strings.Contains(diag.String(), "no more input"))
}

func TestSessionCommands(t *testing.T) {
	sess, out, _ := newTestSession("")

	sess.Eval("fn one() { return 1; }")
	be.True(t, sess.Eval(":ir"))
	be.True(t, strings.Contains(out.String(), "define i32 @one()"))

	out.Reset()
	sess.Eval(":reset")
	sess.Eval(":ir")
	be.True(t, !strings.Contains(out.String(), "@one"))

	out.Reset()
	sess.Eval(":frob")
	be.True(t, strings.HasPrefix(out.String(), "unknown command `:frob`"))

	be.True(t, !sess.Eval(":quit"))
	be.True(t, !sess.Eval(":q"))
	be.True(t, sess.Eval("   "))
}

func TestSessionNeedsMore(t *testing.T) {
	sess, _, _ := newTestSession("")

	be.True(t, sess.NeedsMore("fn f(a) {"))
	be.True(t, sess.NeedsMore("while (1) {"))
	be.True(t, sess.NeedsMore("/* still"))
	be.True(t, !sess.NeedsMore("1 + 2"))
	be.True(t, !sess.NeedsMore("fn f() { return 1; }"))
	be.True(t, !sess.NeedsMore(":ir"))
}

func TestParseMainArgs(t *testing.T) {
	args, err := parseMainArgs("1, -2,0x10")
	be.Err(t, err, nil)
	be.Equal(t, args, []int32{1, -2, 16})

	_, err = parseMainArgs("1,two")
	be.True(t, err != nil)
}

func TestOutputPath(t *testing.T) {
	cfg := config.Default()
	cfg.InputPath = "dir/prog.fc"
	be.Equal(t, NewCompiler(cfg, nil).OutputPath(), "dir/prog.ll")

	cfg.OutputPath = "a.ll"
	be.Equal(t, NewCompiler(cfg, nil).OutputPath(), "a.ll")
}
