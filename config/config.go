// Package config holds the settings a compilation runs with.  Settings come
// from command line flags and, optionally, a TOML project file.
package config

import (
	"github.com/Karapus/sem7-compilers/common"
	"github.com/Karapus/sem7-compilers/generate"
	"github.com/Karapus/sem7-compilers/report"
)

// Config is the configuration of one compiler invocation.  It is built once by
// the command line driver and passed explicitly to everything that needs it.
type Config struct {
	// InputPath is the path to the source file.
	InputPath string

	// OutputPath is the path the IR is written to.
	OutputPath string

	// LogLevel is the reporter log level.
	LogLevel int

	// DeclarationOrder restricts calls to previously defined functions.
	DeclarationOrder bool

	// PrintSymbol and QmarkSymbol are the names of the runtime builtins.
	PrintSymbol string
	QmarkSymbol string

	// Version is the compiler version the project file asks for.  It is
	// empty if no project file was loaded or the file does not specify one.
	Version string
}

// Default returns the configuration used in the absence of any flags or
// project file.
func Default() *Config {
	return &Config{
		LogLevel:    report.LogLevelWarn,
		PrintSymbol: common.DefaultPrintSymbol,
		QmarkSymbol: common.DefaultQmarkSymbol,
	}
}

// GenerateOptions returns the options to generate IR with.
func (c *Config) GenerateOptions() generate.Options {
	return generate.Options{
		SourceName:       c.InputPath,
		DeclarationOrder: c.DeclarationOrder,
		PrintSymbol:      c.PrintSymbol,
		QmarkSymbol:      c.QmarkSymbol,
	}
}
