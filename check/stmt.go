package check

import (
	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/types"
)

// checkBlock checks every statement in b in order and returns whether the
// block "definitely returns": true as soon as any statement in the
// sequence definitely returns.
func (c *Checker) checkBlock(b *ast.Block) bool {
	definitelyReturns := false
	for _, s := range b.Stats {
		if c.checkStat(s) {
			definitelyReturns = true
		}
	}
	return definitelyReturns
}

// checkStat checks a single statement and returns whether it definitely
// returns.
func (c *Checker) checkStat(s ast.Stat) bool {
	switch st := s.(type) {
	case *ast.Block:
		return c.checkBlock(st)

	case *ast.While:
		c.checkExpr(st.Cond, nil)
		c.checkBlock(st.Block)
		return false // a while loop may execute zero times.

	case *ast.Repeat:
		c.checkBlock(st.Block)
		c.checkExpr(st.Cond, nil)
		return false

	case *ast.If:
		allReturn := st.Else != nil
		for _, cb := range st.Thens {
			c.checkExpr(cb.Cond, nil)
			if !c.checkBlock(cb.Block) {
				allReturn = false
			}
		}
		if st.Else != nil && !c.checkBlock(st.Else) {
			allReturn = false
		}
		return allReturn // both/all arms must return.

	case *ast.For:
		declType := c.resolveDeclType(st.Decl)
		c.checkExpr(st.Start, declType)
		c.checkExpr(st.Finish, declType)
		if st.Step != nil {
			c.checkExpr(st.Step, declType)
		}
		c.checkBlock(st.Block)
		return false

	case *ast.Assign:
		varType := c.checkExpr(st.Var, nil)
		valType := c.checkExpr(st.Exp, varType)
		if !types.Equals(varType, valType) && !recoveryPair(st.Var, st.Exp) {
			c.rep.Add(report.TypeError, st.Loc(), "cannot assign %s to a variable of type %s", valType, varType)
		}
		return false

	case *ast.DeclStat:
		declType := c.resolveDeclType(st.Decl)
		valType := c.checkExpr(st.Exp, declType)
		if !types.Equals(declType, valType) && !st.Exp.IsRecovery() {
			c.rep.Add(report.TypeError, st.Loc(), "cannot initialize a variable of type %s with a value of type %s", declType, valType)
		}
		return false

	case *ast.Call:
		c.checkExpr(st.CallExp, nil)
		return false

	case *ast.Return:
		return c.checkReturn(st)
	}
	return false
}

// resolveDeclType resolves a local Decl's type expression exactly once,
// caching the result on the node the same way collectFunc does for
// parameters.
func (c *Checker) resolveDeclType(d *ast.Decl) types.Type {
	if d.Type == nil {
		d.Type = c.resolveTypeExpr(d.TypeExpr)
	}
	return d.Type
}

func (c *Checker) checkReturn(st *ast.Return) bool {
	expected := types.Nil
	if c.curFunc != nil {
		expected = returnType(c.curFunc)
	}

	if st.Exp == nil {
		if !types.Equals(expected, types.Nil) {
			c.rep.Add(report.TypeError, st.Loc(), "expected a return value of type %s, got none", expected)
		}
		return true
	}

	actual := c.checkExpr(st.Exp, expected)
	if !types.Equals(actual, expected) && !st.Exp.IsRecovery() {
		c.rep.Add(report.TypeError, st.Loc(), "expected a return value of type %s, got %s", expected, actual)
	}
	return true
}

// recoveryPair reports whether either expression already carries a
// recovery type, in which case a mismatch between them is a cascade of an
// earlier, already-reported error rather than new information (design note
// §9).
func recoveryPair(exps ...ast.Exp) bool {
	for _, e := range exps {
		if e.IsRecovery() {
			return true
		}
	}
	return false
}
