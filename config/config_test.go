package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Karapus/sem7-compilers/common"
	"github.com/Karapus/sem7-compilers/report"

	"github.com/nalgeon/be"
)

func TestDefault(t *testing.T) {
	c := Default()
	c.InputPath = "prog.fc"

	be.Equal(t, c.LogLevel, report.LogLevelWarn)

	opts := c.GenerateOptions()
	be.Equal(t, opts.SourceName, "prog.fc")
	be.Equal(t, opts.PrintSymbol, common.DefaultPrintSymbol)
	be.Equal(t, opts.QmarkSymbol, common.DefaultQmarkSymbol)
	be.True(t, !opts.DeclarationOrder)
}

func TestLoad(t *testing.T) {
	src := `
frontc-version = "0.3.0"
log-level = "verbose"
declaration-order = true
output = "out/prog.ll"

[runtime]
print = "rt_print"
qmark = "rt_read"
`

	c := Default()
	warnings, err := c.Load([]byte(src))
	be.Err(t, err, nil)
	be.Equal(t, len(warnings), 0)

	be.Equal(t, c.LogLevel, report.LogLevelVerbose)
	be.True(t, c.DeclarationOrder)
	be.Equal(t, c.OutputPath, "out/prog.ll")
	be.Equal(t, c.PrintSymbol, "rt_print")
	be.Equal(t, c.QmarkSymbol, "rt_read")
	be.Equal(t, c.Version, "0.3.0")
}

func TestLoadKeepsDefaults(t *testing.T) {
	c := Default()
	_, err := c.Load([]byte("[runtime]\nprint = \"p\"\n"))
	be.Err(t, err, nil)

	be.Equal(t, c.PrintSymbol, "p")
	be.Equal(t, c.QmarkSymbol, common.DefaultQmarkSymbol)
	be.Equal(t, c.LogLevel, report.LogLevelWarn)
	be.Equal(t, c.OutputPath, "")
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		src, msg string
	}{
		{`log-level = "loud"`, "invalid log level"},
		{"[runtime]\nprint = \"9lives\"\n", "invalid runtime symbol"},
		{"[runtime]\nqmark = \"has space\"\n", "invalid runtime symbol"},
		{"[runtime]\nprint = \"io\"\nqmark = \"io\"\n", "different names"},
		{`frontc-version = "1.0.0"`, "project requires frontc"},
		{`frontc-version = "three"`, "invalid frontc version"},
		{`log-level = `, ""},
	}

	for _, c := range cases {
		_, err := Default().Load([]byte(c.src))
		be.True(t, err != nil)
		if !strings.Contains(err.Error(), c.msg) {
			t.Errorf("%q: error %q does not contain %q", c.src, err, c.msg)
		}
	}
}

func TestCheckVersion(t *testing.T) {
	warning, err := CheckVersion("v0.3.7")
	be.Err(t, err, nil)
	be.Equal(t, warning, "")

	warning, err = CheckVersion("0.2")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(warning, "written for frontc v0.2"))

	_, err = CheckVersion("2.0.0")
	be.True(t, err != nil)
}

func TestIsValidSymbol(t *testing.T) {
	for _, name := range []string{"__print", "rt.print", "a$1", "X9"} {
		be.True(t, IsValidSymbol(name))
	}

	for _, name := range []string{"", "1a", "a-b", "é"} {
		be.True(t, !IsValidSymbol(name))
	}
}

func TestResolvePath(t *testing.T) {
	cfgPath := filepath.Join("proj", common.ConfigFileName)

	be.Equal(t, ResolvePath(cfgPath, "build/a.ll"), filepath.Join("proj", "build", "a.ll"))
	be.Equal(t, ResolvePath(cfgPath, ""), "")

	abs := filepath.Join(string(filepath.Separator), "tmp", "a.ll")
	be.Equal(t, ResolvePath(cfgPath, abs), abs)
}

func TestFindAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "main.fc")

	_, ok := FindFile(input)
	be.True(t, !ok)

	path := filepath.Join(dir, common.ConfigFileName)
	err := os.WriteFile(path, []byte("frontc-version = \"0.1.0\"\nlog-level = \"silent\"\n"), 0o644)
	be.Err(t, err, nil)

	found, ok := FindFile(input)
	be.True(t, ok)
	be.Equal(t, found, path)

	c := Default()
	warnings, err := c.LoadFile(found)
	be.Err(t, err, nil)
	be.Equal(t, len(warnings), 1)
	be.Equal(t, c.LogLevel, report.LogLevelSilent)

	_, err = c.LoadFile(filepath.Join(dir, "missing.toml"))
	be.True(t, err != nil)
}
