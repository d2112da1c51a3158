package cmd

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/Karapus/sem7-compilers/common"
	"github.com/Karapus/sem7-compilers/config"
	"github.com/Karapus/sem7-compilers/generate"
	"github.com/Karapus/sem7-compilers/interp"
	"github.com/Karapus/sem7-compilers/llvm"
	"github.com/Karapus/sem7-compilers/report"
	"github.com/Karapus/sem7-compilers/syntax"

	"github.com/llir/llvm/ir"
)

// Compiler runs the compilation pipeline for one source file: parsing, IR
// generation and output.
type Compiler struct {
	cfg      *config.Config
	reporter *report.Reporter

	// src is the text of the input file.
	src []byte
}

// NewCompiler creates a new compiler for the given configuration.
func NewCompiler(cfg *config.Config, reporter *report.Reporter) *Compiler {
	return &Compiler{cfg: cfg, reporter: reporter}
}

// Compile reads, parses and generates the input file.  On failure, the errors
// have already been reported and the returned exit code says why.
func (c *Compiler) Compile() (*ir.Module, int) {
	src, err := ioutil.ReadFile(c.cfg.InputPath)
	if err != nil {
		c.reporter.ReportFatal(err.Error())
		return nil, ExitUsageError
	}
	c.src = src

	mod, err := CompileSource(c.cfg.InputPath, src, c.cfg.GenerateOptions())
	if err != nil {
		c.reporter.ReportCompileError(c.cfg.InputPath, src, err)
		return nil, ExitCompileError
	}

	return mod, ExitSuccess
}

// CompileSource parses and generates the source text src.
func CompileSource(path string, src []byte, opts generate.Options) (*ir.Module, error) {
	astMod, err := syntax.ParseModule(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	if opts.SourceName == "" {
		opts.SourceName = path
	}

	return generate.Generate(astMod, opts)
}

// OutputPath returns the path the IR should be written to.  It defaults to the
// input path with the extension replaced by `.ll`.
func (c *Compiler) OutputPath() string {
	if c.cfg.OutputPath != "" {
		return c.cfg.OutputPath
	}

	return strings.TrimSuffix(c.cfg.InputPath, filepath.Ext(c.cfg.InputPath)) + ".ll"
}

// -----------------------------------------------------------------------------

// execBuildCommand executes the build subcommand and handles all errors
func execBuildCommand(cfg *config.Config, reporter *report.Reporter) int {
	reporter.ReportCompileHeader(common.FrontcVersion, cfg.InputPath)

	c := NewCompiler(cfg, reporter)
	mod, code := c.Compile()
	if code != ExitSuccess {
		reporter.ReportCompilationFinished("")
		return code
	}

	outputPath := c.OutputPath()
	if err := writeOutput(outputPath, mod); err != nil {
		reporter.ReportFatal(err.Error())
		return ExitUsageError
	}

	reporter.ReportCompilationFinished(outputPath)
	return ExitSuccess
}

// writeOutput writes the IR text of mod to the file at path.
func writeOutput(path string, mod *ir.Module) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := llvm.WriteModule(f, mod); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// execRunCommand executes the run subcommand: the input file is compiled and
// its main function evaluated.  The exit code is the result of main.
func execRunCommand(cfg *config.Config, reporter *report.Reporter, args []int32, stdin io.Reader, stdout io.Writer) int {
	reporter.ReportCompileHeader(common.FrontcVersion, cfg.InputPath)

	mod, code := NewCompiler(cfg, reporter).Compile()
	if code != ExitSuccess {
		reporter.ReportCompilationFinished("")
		return code
	}

	reporter.ReportCompilationFinished("")

	result, err := runMain(cfg, mod, interp.NewStreamRuntime(stdout, stdin), args)
	if err != nil {
		reporter.ReportStdError(cfg.InputPath, err)
		return ExitCompileError
	}

	return int(uint8(result))
}

// runMain evaluates the entry function of mod.
func runMain(cfg *config.Config, mod *ir.Module, rt interp.Runtime, args []int32) (int32, error) {
	if !hasFunc(mod, common.EntryFuncName) {
		return 0, errors.New("program has no `main` function")
	}

	m := interp.NewMachine(mod, rt)
	m.PrintSymbol = cfg.PrintSymbol
	m.QmarkSymbol = cfg.QmarkSymbol
	return m.Run(common.EntryFuncName, args...)
}

// hasFunc returns whether mod defines a function named name.
func hasFunc(mod *ir.Module, name string) bool {
	for _, fn := range mod.Funcs {
		if fn.Name() == name && len(fn.Blocks) > 0 {
			return true
		}
	}

	return false
}
