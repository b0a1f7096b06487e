package ast

import "github.com/Cyb3rCrypt/pallene/types"

// Unresolved is the sentinel declaration ScopeAnalysis attaches to a
// NameExp it could not resolve, so downstream phases still see a typed
// node rather than a nil back-reference.
var Unresolved = &Decl{Name: "<unresolved>"}

// Func is a top-level function declaration.
type Func struct {
	base
	Name        string
	Params      []*Decl
	ReturnTypes []TypeExpr
	Block       *Block
	IsLocal     bool

	// Type is the Function type computed in the checker's collect pass from
	// Params and ReturnTypes.
	Type *types.FunctionType

	// Ignore marks a top-level node whose name collided with an earlier
	// declaration; it stays in the tree for error recovery but is skipped by
	// the checker and coder.
	Ignore bool

	// TitanEntryPoint and LuaEntryPoint are the mangled C names the coder
	// assigns: function_<name>_titan and function_<name>_lua.
	TitanEntryPoint string
	LuaEntryPoint   string

	// GlobalIndex is the 0-based, source-order slot reserved for this
	// function in the module's globals table, interleaved with Var's in
	// declaration order. The generated code does not store the function's
	// closure in that slot; it stays nil.
	GlobalIndex int
}

func (*Func) topLevel() {}

// Var is a top-level value declaration: a typed variable with an
// initializer expression.
type Var struct {
	base
	VarDecl *Decl
	Value   Exp

	Ignore bool

	// GlobalIndex is the 0-based, source-order slot this value occupies in
	// the module's globals table.
	GlobalIndex int
}

func (*Var) topLevel() {}

// Record is a top-level nominal record declaration.
type Record struct {
	base
	Name   string
	Fields []*Decl

	Type *types.RecordType

	Ignore bool
}

func (*Record) topLevel() {}

// Import is a top-level import of another module. The core does not
// implement cross-module linking; Import nodes are parsed, carried
// through ScopeAnalysis so later phases see a complete tree, and rejected by
// the checker with a NotImplemented diagnostic if ever reached.
type Import struct {
	base
	ModuleName string
}

func (*Import) topLevel() {}
