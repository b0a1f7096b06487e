package check

import (
	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/types"
)

// resolveTypeExpr elaborates the unelaborated type syntax (a base name,
// "{T}", or "(T1,...) -> (U1,...)") into a types.Type. An unknown base
// name is a NameError, not a TypeError: it is a name resolution failure
// over the type namespace, mirroring how an unresolved variable name is
// resolved -- it reports and resolves to a recovery Integer so elaboration
// can continue.
func (c *Checker) resolveTypeExpr(te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case *ast.NameTypeExpr:
		switch t.Name {
		case "nil":
			return types.Nil
		case "boolean":
			return types.Boolean
		case "integer":
			return types.Integer
		case "float":
			return types.Float
		case "string":
			return types.String
		default:
			if rt, ok := c.records[t.Name]; ok {
				return rt
			}
			c.rep.Add(report.NameError, t.Loc(), "unknown type %s", t.Name)
			return types.Integer
		}
	case *ast.ArrayTypeExpr:
		return types.NewArray(c.resolveTypeExpr(t.Elem))
	case *ast.FuncTypeExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.resolveTypeExpr(p)
		}
		returns := make([]types.Type, len(t.Returns))
		for i, r := range t.Returns {
			returns[i] = c.resolveTypeExpr(r)
		}
		return types.NewFunction(params, returns)
	default:
		return types.Integer
	}
}
