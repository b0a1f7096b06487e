package check

import (
	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/types"
)

// checkExpr computes and annotates e's type (Pass 2). expected
// is the context type the caller provides, if any (nil otherwise); it is
// used only where context can coalesce a literal's type -- presently, an
// array initializer, whose element type comes from the context when one is
// given.
func (c *Checker) checkExpr(e ast.Exp, expected types.Type) types.Type {
	var t types.Type

	switch ex := e.(type) {
	case *ast.NilLit:
		t = types.Nil
	case *ast.BoolLit:
		t = types.Boolean
	case *ast.IntLit:
		t = types.Integer
	case *ast.FloatLit:
		t = types.Float
	case *ast.StringLit:
		t = types.String
	case *ast.NameExp:
		t = c.declType(ex.Decl, e)
	case *ast.UnopExp:
		t = c.checkUnop(ex)
	case *ast.BinopExp:
		t = c.checkBinop(ex)
	case *ast.BracketExp:
		t = c.checkBracket(ex)
	case *ast.DotExp:
		t = c.recover(ex, report.NotImplemented, "field access is not implemented in the core")
	case *ast.CallExp:
		t = c.checkCall(ex)
	case *ast.InitList:
		t = c.checkInitList(ex, expected)
	case *ast.Concat:
		t = c.checkConcat(ex)
	case *ast.Cast:
		t = c.checkCast(ex)
	default:
		t = types.Integer
	}

	e.SetType(t)
	return t
}

// declType resolves the type of whatever ScopeAnalysis bound a NameExp's
// _decl to. ex.MarkRecovery() is set when the binding is the Unresolved
// sentinel, so an already-reported NameError does not cascade into a
// second, misleading TypeError at every use site.
func (c *Checker) declType(decl interface{}, ex ast.Exp) types.Type {
	switch d := decl.(type) {
	case *ast.Decl:
		if d == ast.Unresolved {
			ex.MarkRecovery()
			return types.Integer
		}
		return d.Type
	case *ast.Func:
		return d.Type
	case *ast.Var:
		return d.VarDecl.Type
	default:
		ex.MarkRecovery()
		return types.Integer
	}
}

func (c *Checker) recover(e ast.Exp, kind report.Kind, msg string) types.Type {
	c.rep.Add(kind, e.Loc(), "%s", msg)
	e.MarkRecovery()
	return types.Integer
}

func (c *Checker) checkUnop(ex *ast.UnopExp) types.Type {
	operand := c.checkExpr(ex.Exp, nil)

	switch ex.Op {
	case ast.UnNeg:
		if !types.IsNumeric(operand) {
			if !ex.Exp.IsRecovery() {
				c.rep.Add(report.TypeError, ex.Loc(), "unary - requires a numeric operand, got %s", operand)
			}
			ex.MarkRecovery()
			return types.Integer
		}
		return operand
	case ast.UnNot:
		// Host semantics: the result is always Boolean regardless of the
		// operand's type.
		return types.Boolean
	case ast.UnLen:
		if !types.HasTag(operand, "Array") {
			if !ex.Exp.IsRecovery() {
				c.rep.Add(report.TypeError, ex.Loc(), "# requires an array operand, got %s", operand)
			}
			ex.MarkRecovery()
		}
		return types.Integer
	case ast.UnBNot:
		if !types.HasTag(operand, "Integer") {
			if !ex.Exp.IsRecovery() {
				c.rep.Add(report.TypeError, ex.Loc(), "unary ~ requires an integer operand, got %s", operand)
			}
			ex.MarkRecovery()
		}
		return types.Integer
	}
	return types.Integer
}

func (c *Checker) checkBinop(ex *ast.BinopExp) types.Type {
	lt := c.checkExpr(ex.Lhs, nil)
	rt := c.checkExpr(ex.Rhs, nil)
	recovering := recoveryPair(ex.Lhs, ex.Rhs)

	fail := func(format string, args ...interface{}) types.Type {
		if !recovering {
			c.rep.Add(report.TypeError, ex.Loc(), format, args...)
		}
		ex.MarkRecovery()
		return types.Integer
	}

	switch ex.Op {
	case ast.BinAdd, ast.BinSub, ast.BinMul:
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			return fail("%s requires numeric operands, got %s and %s", binopName(ex.Op), lt, rt)
		}
		if types.HasTag(lt, "Float") || types.HasTag(rt, "Float") {
			return types.Float
		}
		return types.Integer

	case ast.BinDiv, ast.BinPow:
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			return fail("%s requires numeric operands, got %s and %s", binopName(ex.Op), lt, rt)
		}
		return types.Float

	case ast.BinMod, ast.BinIDiv, ast.BinBXor, ast.BinBOr, ast.BinBAnd, ast.BinShl, ast.BinShr:
		if !types.HasTag(lt, "Integer") || !types.HasTag(rt, "Integer") {
			return fail("%s requires integer operands, got %s and %s", binopName(ex.Op), lt, rt)
		}
		return types.Integer

	case ast.BinConcatOp:
		if !recovering {
			c.rep.Add(report.NotImplemented, ex.Loc(), "string concatenation (..) is not implemented in the core")
		}
		ex.MarkRecovery()
		return types.Integer

	case ast.BinLt, ast.BinGt, ast.BinLe, ast.BinGe:
		bothNumeric := types.IsNumeric(lt) && types.IsNumeric(rt)
		bothString := types.HasTag(lt, "String") && types.HasTag(rt, "String")
		if !bothNumeric && !bothString {
			return fail("%s requires two numbers or two strings, got %s and %s", binopName(ex.Op), lt, rt)
		}
		return types.Boolean

	case ast.BinEq, ast.BinNe:
		if !types.Equals(lt, rt) {
			return fail("%s requires operands of equal type, got %s and %s", binopName(ex.Op), lt, rt)
		}
		return types.Boolean

	case ast.BinAnd, ast.BinOr:
		// Host semantics again: result is always Boolean; the
		// coder is the phase that preserves the host's short-circuit value
		// semantics.
		return types.Boolean
	}

	return types.Integer
}

func binopName(op ast.BinOp) string {
	switch op {
	case ast.BinAdd:
		return "+"
	case ast.BinSub:
		return "-"
	case ast.BinMul:
		return "*"
	case ast.BinDiv:
		return "/"
	case ast.BinPow:
		return "^"
	case ast.BinMod:
		return "%"
	case ast.BinIDiv:
		return "//"
	case ast.BinBXor:
		return "~"
	case ast.BinBOr:
		return "|"
	case ast.BinBAnd:
		return "&"
	case ast.BinShl:
		return "<<"
	case ast.BinShr:
		return ">>"
	case ast.BinConcatOp:
		return ".."
	case ast.BinLt:
		return "<"
	case ast.BinGt:
		return ">"
	case ast.BinLe:
		return "<="
	case ast.BinGe:
		return ">="
	case ast.BinEq:
		return "=="
	case ast.BinNe:
		return "!="
	case ast.BinAnd:
		return "and"
	case ast.BinOr:
		return "or"
	}
	return "?"
}

func (c *Checker) checkBracket(ex *ast.BracketExp) types.Type {
	base := c.checkExpr(ex.Exp, nil)
	idx := c.checkExpr(ex.Index, types.Integer)

	arr, ok := base.(*types.ArrayType)
	if !ok {
		if !ex.Exp.IsRecovery() {
			c.rep.Add(report.TypeError, ex.Loc(), "indexed expression must be an array, got %s", base)
		}
		ex.MarkRecovery()
		return types.Integer
	}

	if !types.Equals(idx, types.Integer) && !ex.Index.IsRecovery() {
		c.rep.Add(report.TypeError, ex.Loc(), "array index must be an integer, got %s", idx)
	}

	return arr.Elem
}

func (c *Checker) checkCall(ex *ast.CallExp) types.Type {
	name, ok := ex.Exp.(*ast.NameExp)
	if !ok {
		return c.recover(ex, report.NotImplemented, "indirect function calls are not implemented in the core")
	}

	fn, ok := name.Decl.(*ast.Func)
	if !ok {
		if name.Decl == ast.Unresolved {
			ex.MarkRecovery()
			return types.Integer
		}
		return c.recover(ex, report.NotImplemented, "calling a non-function value is not implemented in the core")
	}

	name.SetType(fn.Type)

	if len(ex.Args) != len(fn.Type.Params) {
		if !ex.IsRecovery() {
			c.rep.Add(report.TypeError, ex.Loc(), "%s expects %d argument(s), got %d", fn.Name, len(fn.Type.Params), len(ex.Args))
		}
		ex.MarkRecovery()
	}

	for i, arg := range ex.Args {
		var paramType types.Type
		if i < len(fn.Type.Params) {
			paramType = fn.Type.Params[i]
		}
		argType := c.checkExpr(arg, paramType)
		if paramType != nil && !types.Equals(argType, paramType) && !arg.IsRecovery() {
			c.rep.Add(report.TypeError, arg.Loc(), "argument %d of %s must be %s, got %s", i+1, fn.Name, paramType, argType)
		}
	}

	return returnType(fn)
}

func (c *Checker) checkInitList(ex *ast.InitList, expected types.Type) types.Type {
	var elemType types.Type
	if arr, ok := expected.(*types.ArrayType); ok {
		elemType = arr.Elem
	}

	if len(ex.Exps) == 0 {
		if elemType == nil {
			c.rep.Add(report.TypeError, ex.Loc(), "cannot infer the element type of an empty array initializer without context")
			return types.NewArray(types.Integer)
		}
		return types.NewArray(elemType)
	}

	if elemType == nil {
		elemType = c.checkExpr(ex.Exps[0], nil)
	}

	for _, el := range ex.Exps {
		t := c.checkExpr(el, elemType)
		if !types.Equals(t, elemType) && !el.IsRecovery() {
			c.rep.Add(report.TypeError, el.Loc(), "array elements must all be %s, got %s", elemType, t)
		}
	}

	return types.NewArray(elemType)
}

// checkConcat still type-checks every operand, so a name error or bad
// sub-expression inside the chain is still caught and reported, but the
// concatenation itself is not implemented in the core.
func (c *Checker) checkConcat(ex *ast.Concat) types.Type {
	for _, el := range ex.Exps {
		c.checkExpr(el, nil)
	}
	return c.recover(ex, report.NotImplemented, "string concatenation (..) is not implemented in the core")
}

func (c *Checker) checkCast(ex *ast.Cast) types.Type {
	src := c.checkExpr(ex.Exp, nil)
	target := c.resolveTypeExpr(ex.TargetExpr)

	switch {
	case types.Equals(src, target):
		// same-type cast: a no-op.
	case types.HasTag(src, "Integer") && types.HasTag(target, "Float"):
		// accepted widening conversion.
	case types.HasTag(src, "Float") && types.HasTag(target, "Integer"):
		if !ex.Exp.IsRecovery() {
			c.rep.Add(report.NotImplemented, ex.Loc(), "float-to-integer casts are not implemented in the core")
		}
		ex.MarkRecovery()
	default:
		if !ex.Exp.IsRecovery() {
			c.rep.Add(report.TypeError, ex.Loc(), "cannot cast %s to %s", src, target)
		}
		ex.MarkRecovery()
	}

	return target
}
