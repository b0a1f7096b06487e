package codegen

import "fmt"

// titanEntryName and luaEntryName implement the mangling scheme
// "function_<name>_<kind>" with kind in {titan, lua}.
func titanEntryName(name string) string { return "function_" + name + "_titan" }
func luaEntryName(name string) string   { return "function_" + name + "_lua" }

// localName implements "local_<name>" for C locals and parameters.
func localName(name string) string { return "local_" + name }

// tempName implements "tmp_<counter>" for compiler-generated temporaries.
// The counter lives on the per-compilation *Coder (see emitter.go), never
// in a package-level variable, so two concurrent compiles of different
// files produce identical, independent output.
func tempName(counter int) string { return fmt.Sprintf("tmp_%d", counter) }
