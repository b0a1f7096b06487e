package ast

import "github.com/Cyb3rCrypt/pallene/types"

// Exp is implemented by every expression variant. Every Exp gets
// a Type annotation from the checker.
type Exp interface {
	Node
	exp()

	// SetType/GetType hold the checker's "_type" annotation. They live on
	// the interface (rather than as a field only concrete types expose) so
	// that generic expression-walking code in the checker and coder never
	// needs a type switch just to read or write the annotation.
	SetType(t types.Type)
	GetType() types.Type

	// MarkRecovery/IsRecovery distinguish an _type assigned after a type
	// error from one the checker actually inferred: a
	// recovery type suppresses secondary diagnostics that would otherwise
	// cascade from the first error.
	MarkRecovery()
	IsRecovery() bool
}

// typed is embedded by every expression variant to implement the
// annotation half of Exp.
type typed struct {
	base
	Type     types.Type
	Recovery bool
}

func (t *typed) exp()                  {}
func (t *typed) SetType(ty types.Type) { t.Type = ty }
func (t *typed) GetType() types.Type   { return t.Type }
func (t *typed) MarkRecovery()         { t.Recovery = true }
func (t *typed) IsRecovery() bool      { return t.Recovery }

// -----------------------------------------------------------------------------
// Literals

// NilLit is the literal "nil".
type NilLit struct{ typed }

// BoolLit is a boolean literal.
type BoolLit struct {
	typed
	Value bool
}

// IntLit is an integer literal.
type IntLit struct {
	typed
	Value int64
}

// FloatLit is a float literal.
type FloatLit struct {
	typed
	Value float64
}

// StringLit is a string literal.
type StringLit struct {
	typed
	Value string
}

// -----------------------------------------------------------------------------
// Var (name/bracket/dot lvalues, also usable as rvalues)

// NameExp is a bare name occurrence: "x".
type NameExp struct {
	typed
	Name string

	// Decl is the resolving declaration, set by ScopeAnalysis. It is a
	// plain interface back-reference,
	// never a structural tree edge -- see design note §9 on cyclic
	// annotations. DeclIndex is a slot for an index-based, cycle-free
	// identity; no phase assigns it, so it is always zero.
	Decl      interface{}
	DeclIndex int
}

// BracketExp is "exp[index]".
type BracketExp struct {
	typed
	Exp   Exp
	Index Exp
}

// DotExp is "exp.field".
type DotExp struct {
	typed
	Exp   Exp
	Field string
}

// -----------------------------------------------------------------------------
// Operators

// UnOp enumerates unary operators.
type UnOp int

const (
	UnNeg UnOp = iota // "-"
	UnNot             // "not"
	UnLen             // "#"
	UnBNot            // "~"
)

// UnopExp is a unary operator application.
type UnopExp struct {
	typed
	Op  UnOp
	Exp Exp
}

// BinOp enumerates binary operators.
type BinOp int

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv   // "/"
	BinPow   // "^"
	BinMod   // "%"
	BinIDiv  // "//"
	BinBXor  // "~" (binary)
	BinBOr   // "|"
	BinBAnd  // "&"
	BinShl   // "<<"
	BinShr   // ">>"
	BinConcatOp // ".." used as a binary operator node; Concat below is the n-ary form the parser prefers.
	BinLt
	BinGt
	BinLe
	BinGe
	BinEq
	BinNe
	BinAnd
	BinOr
)

// BinopExp is a binary operator application.
type BinopExp struct {
	typed
	Op       BinOp
	Lhs, Rhs Exp
}

// -----------------------------------------------------------------------------
// Calls, initializers, concatenation, casts

// CallExp is a function call. Only direct calls to a TopLevel.Func
// resolved by name are supported in the core.
type CallExp struct {
	typed
	Exp  Exp // always a NameExp in the supported subset; anything else is NotImplemented.
	Args []Exp
}

// InitList is an array initializer: "{e1, e2, ...}".
type InitList struct {
	typed
	Exps []Exp
}

// Concat is string concatenation: "e1 .. e2 .. ... .. en", the n-ary form
// the parser prefers over a chain of binary ".." nodes.
type Concat struct {
	typed
	Exps []Exp
}

// Cast is an explicit "exp as T" conversion.
type Cast struct {
	typed
	Exp        Exp
	TargetExpr TypeExpr
}
