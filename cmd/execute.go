// Package cmd is the top-level driver of the compiler: it parses command line
// arguments, builds the configuration and runs the compilation pipeline.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Karapus/sem7-compilers/common"
	"github.com/Karapus/sem7-compilers/config"
	"github.com/Karapus/sem7-compilers/report"

	"github.com/ComedicChimera/olive"
)

// Enumeration of process exit codes.
const (
	ExitSuccess      = 0 // Compilation succeeded.
	ExitCompileError = 1 // The program has syntax or semantic errors.
	ExitUsageError   = 2 // Bad arguments, configuration or files.
)

// Execute is the main entry point for the `frontc` CLI utility.  It returns
// the process exit code.
func Execute() int {
	return run(os.Args, os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("frontc", "frontc compiles programs to LLVM IR", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	buildCmd := cli.AddSubcommand("build", "compile a source file to LLVM IR", true)
	buildCmd.AddPrimaryArg("input-path", "the path to the source file", true)
	buildCmd.AddStringArg("output", "o", "the path to write the IR to", false)
	buildCmd.AddStringArg("config", "c", "the path to the project file", false)

	runCmd := cli.AddSubcommand("run", "compile a source file and run its main function", true)
	runCmd.AddPrimaryArg("input-path", "the path to the source file", true)
	runCmd.AddStringArg("args", "a", "comma separated integer arguments to main", false)
	runCmd.AddStringArg("config", "c", "the path to the project file", false)

	cli.AddSubcommand("repl", "start an interactive session", false)
	cli.AddSubcommand("version", "print the frontc version", false)

	color := useColor()

	// run the argument parser
	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.NewReporter(stderr, report.LogLevelError, color).ReportFatal(err.Error())
		return ExitUsageError
	}

	logLevel := -1
	if logLevelArg, ok := result.Arguments["loglevel"]; ok {
		logLevel, _ = report.ParseLogLevel(logLevelArg.(string))
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		cfg, reporter, ok := loadConfig(subResult, logLevel, stderr, color)
		if !ok {
			return ExitUsageError
		}

		if outputArg, ok := subResult.Arguments["output"]; ok {
			cfg.OutputPath = outputArg.(string)
		}

		return execBuildCommand(cfg, reporter)
	case "run":
		cfg, reporter, ok := loadConfig(subResult, logLevel, stderr, color)
		if !ok {
			return ExitUsageError
		}

		var mainArgs []int32
		if argsArg, ok := subResult.Arguments["args"]; ok {
			mainArgs, err = parseMainArgs(argsArg.(string))
			if err != nil {
				reporter.ReportFatal(err.Error())
				return ExitUsageError
			}
		}

		return execRunCommand(cfg, reporter, mainArgs, stdin, stdout)
	case "repl":
		cfg := config.Default()
		if logLevel >= 0 {
			cfg.LogLevel = logLevel
		}

		return execReplCommand(cfg, report.NewReporter(stderr, cfg.LogLevel, color), stdout)
	case "version":
		fmt.Fprintln(stdout, "frontc", common.FrontcVersion)
	}

	return ExitSuccess
}

// loadConfig builds the configuration for a command taking an input file.
// The project file is applied first and the command line overrides it.  The
// reporter is created with the final log level.
func loadConfig(result *olive.ArgParseResult, logLevel int, out io.Writer, color bool) (*config.Config, *report.Reporter, bool) {
	cfg := config.Default()
	cfg.InputPath, _ = result.PrimaryArg()

	// configuration errors are reported at the log level from the command line
	// since the configuration itself may be the problem
	earlyLevel := cfg.LogLevel
	if logLevel >= 0 {
		earlyLevel = logLevel
	}
	earlyReporter := report.NewReporter(out, earlyLevel, color)

	cfgPath, found := "", false
	if cfgArg, ok := result.Arguments["config"]; ok {
		cfgPath, found = cfgArg.(string), true
	} else {
		cfgPath, found = config.FindFile(cfg.InputPath)
	}

	var warnings []string
	if found {
		var err error
		warnings, err = cfg.LoadFile(cfgPath)
		if err != nil {
			earlyReporter.ReportStdError(cfgPath, err)
			return nil, nil, false
		}

		cfg.OutputPath = config.ResolvePath(cfgPath, cfg.OutputPath)
	}

	if logLevel >= 0 {
		cfg.LogLevel = logLevel
	}

	reporter := report.NewReporter(out, cfg.LogLevel, color)
	for _, warning := range warnings {
		reporter.ReportCompileWarning(cfgPath, nil, nil, warning)
	}

	if filepath.Ext(cfg.InputPath) != common.SrcFileExt {
		reporter.ReportCompileWarning(cfg.InputPath, nil, nil, fmt.Sprintf("source files should have the `%s` extension", common.SrcFileExt))
	}

	return cfg, reporter, true
}

// parseMainArgs parses the value of the `args` argument.
func parseMainArgs(s string) ([]int32, error) {
	var args []int32
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		x, err := strconv.ParseInt(field, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid argument to main: `%s`", field)
		}

		args = append(args, int32(x))
	}

	return args, nil
}

// useColor returns whether diagnostics should be coloured.
func useColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
