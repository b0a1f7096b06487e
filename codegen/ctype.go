package codegen

import (
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/types"
)

// ctype implements the type -> C type mapping of Function and
// Record are reserved: the checker never lets a value of either type reach
// a context the coder has to materialize as a C type (there is no
// first-class function value or record value in the implemented subset),
// so reaching them here is an internal compiler error.
func ctype(t types.Type) string {
	switch {
	case types.HasTag(t, "Nil"):
		return "int"
	case types.HasTag(t, "Boolean"):
		return "int"
	case types.HasTag(t, "Integer"):
		return "lua_Integer"
	case types.HasTag(t, "Float"):
		return "lua_Number"
	case types.HasTag(t, "String"):
		return "TString *"
	case types.HasTag(t, "Array"):
		return "Table *"
	default:
		report.ICE("no C type mapping for %s (Function/Record values are reserved)", t)
		return ""
	}
}

// luaTag returns the VM tag constant matching t's runtime representation.
// The generated wrappers do not call it: their argument checks go through
// luaL_check*/luaL_checktype (see checkArg in luaopen.go).
func luaTag(t types.Type) string {
	switch {
	case types.HasTag(t, "Nil"):
		return "LUA_TNIL"
	case types.HasTag(t, "Boolean"):
		return "LUA_TBOOLEAN"
	case types.HasTag(t, "Integer"), types.HasTag(t, "Float"):
		return "LUA_TNUMBER"
	case types.HasTag(t, "String"):
		return "LUA_TSTRING"
	case types.HasTag(t, "Array"):
		return "LUA_TTABLE"
	default:
		report.ICE("no Lua tag for %s", t)
		return ""
	}
}
