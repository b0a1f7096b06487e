package codegen

import "github.com/Cyb3rCrypt/pallene/ast"

// assignGlobals walks tops in source order and assigns each live Func and
// Var its globals-table slot plus, for Func, its two mangled C entry point
// names. Ignored nodes (name collisions ScopeAnalysis already flagged) are
// skipped: they are never compiled, so they never occupy a slot.
func assignGlobals(tops []ast.TopLevel) {
	index := 0
	for _, top := range tops {
		switch n := top.(type) {
		case *ast.Func:
			if n.Ignore {
				continue
			}
			n.GlobalIndex = index
			n.TitanEntryPoint = titanEntryName(n.Name)
			n.LuaEntryPoint = luaEntryName(n.Name)
			index++
		case *ast.Var:
			if n.Ignore {
				continue
			}
			n.GlobalIndex = index
			index++
		}
	}
}
