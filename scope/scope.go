// Package scope implements ScopeAnalysis: a single pre-order
// walk that binds every name occurrence to its declaring node, reports
// unknown names, and marks duplicate top-level declarations _ignore rather
// than deleting them, so later phases still see a complete tree for error
// recovery.
//
// Grounded on chai/bootstrap/walk/walker.go's walk-dispatch shape and
// chai/bootstrap/depm/resolve.go's unresolved-name reporting, simplified to
// a single-pass, no-forward-reference model (see symtab's doc comment for
// why chai's cross-package resolver does not apply here).
package scope

import (
	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/symtab"
)

// Analyzer runs ScopeAnalysis over a single source file's top-level
// declaration list.
type Analyzer struct {
	rep  *report.Reporter
	file string
	st   *symtab.SymTab
}

// New creates an Analyzer reporting into rep for diagnostics located in
// file.
func New(rep *report.Reporter, file string) *Analyzer {
	return &Analyzer{rep: rep, file: file, st: symtab.New()}
}

// Analyze walks every top-level node once, in source order, binding names
// and flagging duplicate top-level declarations.
func (a *Analyzer) Analyze(tops []ast.TopLevel) {
	for _, top := range tops {
		switch t := top.(type) {
		case *ast.Func:
			a.declareTop(t.Name, t, t.Loc(), &t.Ignore)
			a.analyzeFunc(t)
		case *ast.Var:
			a.declareTop(t.VarDecl.Name, t, t.Loc(), &t.Ignore)
			if t.Value != nil {
				a.walkExp(t.Value)
			}
		case *ast.Record:
			a.declareTop(t.Name, t, t.Loc(), &t.Ignore)
		case *ast.Import:
			// Cross-module linking is out of core scope;
			// the name is still registered so later duplicate top-level
			// declarations against the import alias are caught.
			a.declareTop(t.ModuleName, t, t.Loc(), new(bool))
		}
	}
}

// declareTop registers name in the top-level scope, marking *ignore and
// reporting a duplicate-declaration error if name already exists there.
func (a *Analyzer) declareTop(name string, node interface{}, loc report.Location, ignore *bool) {
	if !a.st.AddSymbol(name, node) {
		*ignore = true
		a.rep.Add(report.NameError, loc, "duplicate function or variable declaration for %s", name)
	}
}

// analyzeFunc opens a fresh scope for f's parameters and the $function
// sentinel, then walks the body in that same scope.
func (a *Analyzer) analyzeFunc(f *ast.Func) {
	a.st.WithBlock(func() {
		a.st.AddSymbol(symtab.FunctionKey, f)

		for _, p := range f.Params {
			if !a.st.AddSymbol(p.Name, p) {
				a.rep.Add(report.NameError, p.Loc(), "duplicate function or variable declaration for %s", p.Name)
			}
		}

		if f.Block != nil {
			a.walkBlockStats(f.Block)
		}
	})
}

func (a *Analyzer) walkBlockStats(b *ast.Block) {
	for _, s := range b.Stats {
		a.walkStat(s)
	}
}

func (a *Analyzer) walkStat(s ast.Stat) {
	switch st := s.(type) {
	case *ast.Block:
		a.st.WithBlock(func() { a.walkBlockStats(st) })
	case *ast.While:
		a.walkExp(st.Cond)
		a.st.WithBlock(func() { a.walkBlockStats(st.Block) })
	case *ast.Repeat:
		// The until-condition can see names the block declares: the C
		// lowering for(;;){ body; prelude; if(cond) break; } only works if
		// cond is resolved in the block's own scope.
		a.st.WithBlock(func() {
			a.walkBlockStats(st.Block)
			a.walkExp(st.Cond)
		})
	case *ast.If:
		for _, cb := range st.Thens {
			a.walkExp(cb.Cond)
			a.st.WithBlock(func() { a.walkBlockStats(cb.Block) })
		}
		if st.Else != nil {
			a.st.WithBlock(func() { a.walkBlockStats(st.Else) })
		}
	case *ast.For:
		a.walkExp(st.Start)
		a.walkExp(st.Finish)
		if st.Step != nil {
			a.walkExp(st.Step)
		}
		a.st.WithBlock(func() {
			a.st.AddSymbol(st.Decl.Name, st.Decl)
			a.walkBlockStats(st.Block)
		})
	case *ast.Assign:
		a.walkExp(st.Var)
		a.walkExp(st.Exp)
	case *ast.DeclStat:
		a.walkExp(st.Exp)
		if !a.st.AddSymbol(st.Decl.Name, st.Decl) {
			a.rep.Add(report.NameError, st.Decl.Loc(), "duplicate function or variable declaration for %s", st.Decl.Name)
		}
	case *ast.Call:
		a.walkExp(st.CallExp)
	case *ast.Return:
		if st.Exp != nil {
			a.walkExp(st.Exp)
		}
	}
}

func (a *Analyzer) walkExp(e ast.Exp) {
	switch ex := e.(type) {
	case *ast.NameExp:
		if decl, ok := a.st.FindSymbol(ex.Name); ok {
			ex.Decl = decl
		} else {
			a.rep.Add(report.NameError, ex.Loc(), "variable %s not declared", ex.Name)
			ex.Decl = ast.Unresolved
		}
	case *ast.BracketExp:
		a.walkExp(ex.Exp)
		a.walkExp(ex.Index)
	case *ast.DotExp:
		a.walkExp(ex.Exp)
	case *ast.UnopExp:
		a.walkExp(ex.Exp)
	case *ast.BinopExp:
		a.walkExp(ex.Lhs)
		a.walkExp(ex.Rhs)
	case *ast.CallExp:
		a.walkExp(ex.Exp)
		for _, arg := range ex.Args {
			a.walkExp(arg)
		}
	case *ast.InitList:
		for _, el := range ex.Exps {
			a.walkExp(el)
		}
	case *ast.Concat:
		for _, el := range ex.Exps {
			a.walkExp(el)
		}
	case *ast.Cast:
		a.walkExp(ex.Exp)
	}
	// Literals (NilLit, BoolLit, IntLit, FloatLit, StringLit) carry no name
	// occurrences; nothing to resolve.
}
