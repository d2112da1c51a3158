package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/Karapus/sem7-compilers/common"
	"github.com/Karapus/sem7-compilers/report"

	"github.com/pelletier/go-toml"
	"golang.org/x/mod/semver"
)

// tomlConfigFile represents the project file as it is encoded in TOML
type tomlConfigFile struct {
	Version          string       `toml:"frontc-version"`
	LogLevel         string       `toml:"log-level"`
	DeclarationOrder bool         `toml:"declaration-order"`
	OutputPath       string       `toml:"output"`
	Runtime          *tomlRuntime `toml:"runtime"`
}

// tomlRuntime represents the runtime table of the project file
type tomlRuntime struct {
	Print string `toml:"print"`
	Qmark string `toml:"qmark"`
}

// FindFile returns the path of the project file next to the input file, if
// there is one.
func FindFile(inputPath string) (string, bool) {
	path := filepath.Join(filepath.Dir(inputPath), common.ConfigFileName)
	if finfo, err := os.Stat(path); err == nil && !finfo.IsDir() {
		return path, true
	}

	return "", false
}

// LoadFile reads the project file at path and merges its settings into c.  The
// returned warnings are problems that do not prevent compilation.
func (c *Config) LoadFile(path string) ([]string, error) {
	buff, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return c.Load(buff)
}

// Load merges the settings of an encoded project file into c.
func (c *Config) Load(buff []byte) ([]string, error) {
	tcf := &tomlConfigFile{}
	if err := toml.Unmarshal(buff, tcf); err != nil {
		return nil, err
	}

	warnings, err := validateConfig(tcf)
	if err != nil {
		return nil, err
	}

	// move all the relevant TOML attributes over to the configuration
	if tcf.LogLevel != "" {
		c.LogLevel, _ = report.ParseLogLevel(tcf.LogLevel)
	}

	if tcf.OutputPath != "" {
		c.OutputPath = tcf.OutputPath
	}

	if tcf.Runtime != nil {
		if tcf.Runtime.Print != "" {
			c.PrintSymbol = tcf.Runtime.Print
		}

		if tcf.Runtime.Qmark != "" {
			c.QmarkSymbol = tcf.Runtime.Qmark
		}
	}

	c.DeclarationOrder = tcf.DeclarationOrder
	c.Version = tcf.Version
	return warnings, nil
}

// validateConfig checks that the project file contents are valid
func validateConfig(tcf *tomlConfigFile) ([]string, error) {
	var warnings []string

	if tcf.Version != "" {
		warning, err := CheckVersion(tcf.Version)
		if err != nil {
			return nil, err
		} else if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if tcf.LogLevel != "" {
		if _, ok := report.ParseLogLevel(tcf.LogLevel); !ok {
			return nil, fmt.Errorf("invalid log level: `%s`", tcf.LogLevel)
		}
	}

	if tcf.Runtime != nil {
		for _, sym := range []string{tcf.Runtime.Print, tcf.Runtime.Qmark} {
			if sym != "" && !IsValidSymbol(sym) {
				return nil, fmt.Errorf("invalid runtime symbol name: `%s`", sym)
			}
		}

		if tcf.Runtime.Print != "" && tcf.Runtime.Print == tcf.Runtime.Qmark {
			return nil, errors.New("the print and qmark builtins must have different names")
		}
	}

	return warnings, nil
}

// CheckVersion compares a requested compiler version against the running
// compiler.  A different major version is an error; a different minor version
// is returned as a warning.
func CheckVersion(version string) (string, error) {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}

	if !semver.IsValid(version) {
		return "", fmt.Errorf("invalid frontc version: `%s`", version)
	}

	if semver.Major(version) != semver.Major(common.FrontcVersion) {
		return "", fmt.Errorf("project requires frontc %s but this is frontc %s", version, common.FrontcVersion)
	}

	if semver.MajorMinor(version) != semver.MajorMinor(common.FrontcVersion) {
		return fmt.Sprintf("project was written for frontc %s but this is frontc %s", version, common.FrontcVersion), nil
	}

	return "", nil
}

// IsValidSymbol returns whether name can be used as an LLVM global name
// without quoting.
func IsValidSymbol(name string) bool {
	if name == "" {
		return false
	}

	for i, c := range name {
		switch {
		case c == '_' || c == '.' || c == '$':
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// ResolvePath interprets a path found in the project file at cfgPath relative
// to the directory of that file.
func ResolvePath(cfgPath, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(filepath.Dir(cfgPath), path)
}
