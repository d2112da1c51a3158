package generate_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Karapus/sem7-compilers/generate"
	"github.com/Karapus/sem7-compilers/interp"
	"github.com/Karapus/sem7-compilers/report"
	"github.com/Karapus/sem7-compilers/syntax"

	"github.com/llir/llvm/ir"
	"github.com/nalgeon/be"
)

// compile parses and generates src.
func compile(t *testing.T, src string, opts generate.Options) (*ir.Module, error) {
	t.Helper()

	astMod, err := syntax.ParseModule(strings.NewReader(src))
	be.Err(t, err, nil)

	return generate.Generate(astMod, opts)
}

func TestFixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".md"), func(t *testing.T) {
			content, err := os.ReadFile(file)
			be.Err(t, err, nil)

			fixtures, err := extractFixtures(content)
			be.Err(t, err, nil)

			for _, fx := range fixtures {
				fx := fx
				t.Run(fx.Name, func(t *testing.T) {
					runFixture(t, fx)
				})
			}
		})
	}
}

func runFixture(t *testing.T, fx *fixture) {
	var opts generate.Options
	for _, opt := range fx.Options {
		fields := strings.Fields(opt)
		switch fields[0] {
		case "declaration-order":
			opts.DeclarationOrder = true
		case "print":
			opts.PrintSymbol = fields[1]
		case "qmark":
			opts.QmarkSymbol = fields[1]
		default:
			t.Fatalf("unknown option `%s`", opt)
		}
	}

	mod, err := compile(t, fx.Source, opts)

	if fx.Errors != nil {
		be.True(t, err != nil)
		be.True(t, mod == nil)

		var kinds []string
		for _, ce := range err.(report.ErrorList) {
			kinds = append(kinds, ce.Kind.String())
		}

		be.Equal(t, kinds, fx.Errors)
		return
	}

	be.Err(t, err, nil)

	irText := mod.String()
	for _, line := range fx.IR {
		if !strings.Contains(irText, line) {
			t.Errorf("IR does not contain `%s`:\n%s", line, irText)
		}
	}

	if fx.Output == nil && fx.Result == nil {
		return
	}

	var args []int32
	for _, field := range strings.Fields(fx.Args) {
		x, err := strconv.ParseInt(field, 10, 32)
		be.Err(t, err, nil)
		args = append(args, int32(x))
	}

	out := &bytes.Buffer{}
	m := interp.NewMachine(mod, interp.NewStreamRuntime(out, strings.NewReader(fx.Input)))
	if opts.PrintSymbol != "" {
		m.PrintSymbol = opts.PrintSymbol
	}
	if opts.QmarkSymbol != "" {
		m.QmarkSymbol = opts.QmarkSymbol
	}

	result, err := m.Run("main", args...)
	be.Err(t, err, nil)

	if fx.Output != nil {
		be.Equal(t, out.String(), *fx.Output)
	}

	if fx.Result != nil {
		be.Equal(t, strconv.Itoa(int(result)), *fx.Result)
	}
}
