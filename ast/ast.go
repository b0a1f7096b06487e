// Package ast defines the shape of the tree the external parser hands to
// ScopeAnalysis: four node namespaces (TopLevel, Decl, Stat,
// Exp) plus the annotation fields each later phase attaches. The tree is
// mutated in place by ScopeAnalysis, Checker, and Coder -- annotation only,
// never structural rewrite.
//
// Grounded on chai/bootstrap/ast's interface-per-namespace shape
// (ast.go/def.go/stmt.go/expr.go), simplified to four namespaces.
package ast

import (
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/types"
)

// Node is implemented by every node in every namespace; it is the minimum
// surface ScopeAnalysis needs to report a location-bearing error before it
// knows which concrete variant it is looking at.
type Node interface {
	Loc() report.Location
}

// base embeds into every concrete node to provide Loc() once.
type base struct {
	Location report.Location
}

func (b base) Loc() report.Location { return b.Location }

// TopLevel is implemented by Func, Var, Record, and Import.
type TopLevel interface {
	Node
	topLevel()
}

// Decl is a single typed declaration: a name plus its declared type
// expression (and, after the checker, its elaborated Type).
type Decl struct {
	base
	Name     string
	TypeExpr TypeExpr

	// Type is the annotation the checker attaches: in the collect pass for
	// parameters, record fields and top-level variables, and while checking
	// the body for locals and for-loop variables.
	Type types.Type
}

// TypeExpr is the unelaborated syntax for a type: a base name, "{T}", or
// "(T1,...) -> (U1,...)". It is resolved to a types.Type by the
// checker's collect pass.
type TypeExpr interface {
	Node
	typeExpr()
}

// NameTypeExpr is a base type name ("integer", "float", or a record name).
type NameTypeExpr struct {
	base
	Name string
}

func (*NameTypeExpr) typeExpr() {}

// ArrayTypeExpr is "{T}".
type ArrayTypeExpr struct {
	base
	Elem TypeExpr
}

func (*ArrayTypeExpr) typeExpr() {}

// FuncTypeExpr is "(T1,...) -> (U1,...)".
type FuncTypeExpr struct {
	base
	Params  []TypeExpr
	Returns []TypeExpr
}

func (*FuncTypeExpr) typeExpr() {}
