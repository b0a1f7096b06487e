// Package check implements the Checker: a two-pass type
// checker and elaborator. Pass 1 (Collect) computes every top-level
// declaration's type without looking at any expression body. Pass 2 (Check)
// walks bodies and initializers, annotating every expression with its
// elaborated type and verifying control-flow completeness.
//
// Grounded on chai/bootstrap/walk's two-phase structure (definitions
// collected before bodies are walked), simplified to a single-file,
// single-return-type model.
package check

import (
	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/types"
)

// Checker runs both passes over a single file's top-level declaration list.
type Checker struct {
	rep  *report.Reporter
	file string

	records map[string]*types.RecordType
	curFunc *ast.Func
}

// New creates a Checker reporting into rep.
func New(rep *report.Reporter, file string) *Checker {
	return &Checker{rep: rep, file: file, records: map[string]*types.RecordType{}}
}

// Check runs Pass 1 then Pass 2 over tops. It never stops at the first
// error; code
// generation is gated separately by the driver checking rep.HasErrors().
func (c *Checker) Check(tops []ast.TopLevel) {
	c.collect(tops)
	c.checkBodies(tops)
}

// collect is Pass 1: it computes every top-level Func's Function type and
// every top-level Var's declared type, and resolves every Record's field
// types, without checking any expression.
func (c *Checker) collect(tops []ast.TopLevel) {
	// Records are resolved first so that Func/Var declarations referencing a
	// record type by name see it already in c.records.
	for _, top := range tops {
		if rec, ok := top.(*ast.Record); ok && !rec.Ignore {
			c.collectRecord(rec)
		}
	}

	for _, top := range tops {
		switch t := top.(type) {
		case *ast.Func:
			if !t.Ignore {
				c.collectFunc(t)
			}
		case *ast.Var:
			if !t.Ignore {
				t.VarDecl.Type = c.resolveTypeExpr(t.VarDecl.TypeExpr)
			}
		}
	}
}

func (c *Checker) collectRecord(rec *ast.Record) {
	fields := make([]types.RecordField, len(rec.Fields))
	for i, f := range rec.Fields {
		f.Type = c.resolveTypeExpr(f.TypeExpr)
		fields[i] = types.RecordField{Name: f.Name, Type: f.Type}
	}
	rec.Type = types.NewRecord(rec.Name, fields, rec)
	c.records[rec.Name] = rec.Type
}

func (c *Checker) collectFunc(f *ast.Func) {
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		p.Type = c.resolveTypeExpr(p.TypeExpr)
		params[i] = p.Type
	}

	var returns []types.Type
	if len(f.ReturnTypes) > 1 {
		// Multiple return values at the source level are not guaranteed by
		// this core; the checker still records the
		// first so the rest of elaboration has something to work with, but
		// flags the function as unsupported.
		c.rep.Add(report.NotImplemented, f.Loc(), "functions with multiple return values are not implemented in the core")
	}
	if len(f.ReturnTypes) > 0 {
		returns = []types.Type{c.resolveTypeExpr(f.ReturnTypes[0])}
	}

	f.Type = types.NewFunction(params, returns)
}

// returnType is the single declared return type of f, or Nil if f declares
// none.
func returnType(f *ast.Func) types.Type {
	if len(f.Type.Returns) == 0 {
		return types.Nil
	}
	return f.Type.Returns[0]
}

// checkBodies is Pass 2: it walks every non-ignored function's body and
// every non-ignored value declaration's initializer.
func (c *Checker) checkBodies(tops []ast.TopLevel) {
	for _, top := range tops {
		switch t := top.(type) {
		case *ast.Func:
			if !t.Ignore {
				c.checkFunc(t)
			}
		case *ast.Var:
			if !t.Ignore && t.Value != nil {
				c.checkExpr(t.Value, t.VarDecl.Type)
			}
		case *ast.Import:
			c.rep.Add(report.NotImplemented, t.Loc(), "imports are not implemented in the core")
		}
	}
}

func (c *Checker) checkFunc(f *ast.Func) {
	prevFunc := c.curFunc
	c.curFunc = f
	defer func() { c.curFunc = prevFunc }()

	for _, p := range f.Params {
		// Parameters are already typed from collectFunc; nothing to check,
		// but the block may reference them through a *ast.Decl whose Type
		// ScopeAnalysis never sets -- collectFunc already did.
		_ = p
	}

	var definitelyReturns bool
	if f.Block != nil {
		definitelyReturns = c.checkBlock(f.Block)
	}

	if !types.Equals(returnType(f), types.Nil) && !definitelyReturns {
		c.rep.Add(report.TypeError, f.Loc(), "function can return nil but return type is not nil")
	}
}
