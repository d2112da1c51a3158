// Package llvm wraps the llir/llvm IR library with the pieces code generation
// needs: module and function creation for a single-integer-type language, an
// IR builder that tracks an insertion point, and a structural verifier.
package llvm

import (
	"io"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// IntType is the one scalar type of the language: a 32-bit integer.
var IntType = types.I32

// NewModule creates an empty module for the given source file.
func NewModule(sourceName string) *ir.Module {
	mod := ir.NewModule()
	mod.SourceFilename = sourceName
	return mod
}

// NewIntFunc adds a function to mod taking one IntType parameter per name and
// returning IntType.  Without a body the function prints as a declaration.
func NewIntFunc(mod *ir.Module, name string, paramNames ...string) *ir.Func {
	params := make([]*ir.Param, len(paramNames))
	for i, pname := range paramNames {
		// Parameters share the local namespace with block labels.
		if pname == "entry" {
			pname += ".arg"
		}

		params[i] = ir.NewParam(pname, IntType)
	}

	return mod.NewFunc(name, IntType, params...)
}

// NewDetachedIntFunc is like NewIntFunc but does not add the function to any
// module.  It is used to lower bodies whose definition is rejected so that the
// errors inside them are still found.
func NewDetachedIntFunc(name string, paramNames ...string) *ir.Func {
	return NewIntFunc(ir.NewModule(), name, paramNames...)
}

// ConstInt returns an IntType constant.
func ConstInt(x int64) *constant.Int {
	return constant.NewInt(IntType, x)
}

// WriteModule writes the textual LLVM IR form of mod to w.
func WriteModule(w io.Writer, mod *ir.Module) error {
	_, err := io.WriteString(w, mod.String())
	return err
}
