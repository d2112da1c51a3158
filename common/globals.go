package common

// FrontcVersion is the current compiler version as a semantic version string.
const FrontcVersion string = "v0.3.0"

// SrcFileExt is the file extension for a source file.
const SrcFileExt string = ".fc"

// ConfigFileName is the name of the optional project configuration file that
// is looked up next to the input file.
const ConfigFileName string = "frontc.toml"

// Default names of the two runtime functions every generated module declares.
const (
	DefaultPrintSymbol = "__print"
	DefaultQmarkSymbol = "__qmark"
)

// EntryFuncName is the function `frontc run` starts execution from.
const EntryFuncName = "main"
