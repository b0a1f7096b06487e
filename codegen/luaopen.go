package codegen

import (
	"fmt"

	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/types"
)

// genVarInit builds the module-private function that evaluates every
// top-level Var's initializer and stores the result in its globals-table
// slot. luaopen_<module> calls this once, before any Titan function is
// reachable from Lua, so a top-level Var's initializer may itself call an
// earlier-declared Titan function but never the reverse: top-level Vars
// are evaluated once, in source order, at load time.
func (c *Coder) genVarInit(vars []*ast.Var) fragLines {
	var lines fragLines
	lines = append(lines, "static void pallene_init_globals(lua_State *L) {")

	var body fragLines
	for _, v := range vars {
		r := c.genExpr(v.Value)
		body = append(body, r.Prelude...)
		body = append(body, globalSet(v.VarDecl.Type, v.GlobalIndex, r.Value))
	}
	lines = append(lines, indentAll(body)...)
	lines = append(lines, "}")
	return lines
}

// genLuaWrapper builds function_<name>_lua: the Lua-callable trampoline
// luaopen_<module> registers for a public Titan function. It pulls each
// argument off the Lua stack with the luaL_check* family (real lauxlib.h
// entry points: they already raise a Lua error with the right "bad
// argument" message on a type mismatch, which is why the wrapper itself
// never has to construct one), calls the typed entry point directly, and
// pushes the single result back.
func (c *Coder) genLuaWrapper(f *ast.Func) fragLines {
	var lines fragLines
	lines = append(lines, fmt.Sprintf("static int %s(lua_State *L) {", f.LuaEntryPoint))

	var body fragLines
	var callArgs []string
	callArgs = append(callArgs, "L")
	for i, p := range f.Params {
		argVar := fmt.Sprintf("arg_%d", i+1)
		body = append(body, fmt.Sprintf("%s %s = %s;", ctype(p.Type), argVar, checkArg(p.Type, i+1)))
		callArgs = append(callArgs, argVar)
	}

	call := fmt.Sprintf("%s(%s)", f.TitanEntryPoint, joinArgs(callArgs))
	ret := returnTypeOf(f)
	if types.HasTag(ret, "Nil") {
		body = append(body, call+";")
		body = append(body, "return 0;")
	} else {
		body = append(body, fmt.Sprintf("%s result = %s;", ctype(ret), call))
		body = append(body, pushResult(ret, "result"))
		body = append(body, "return 1;")
	}

	lines = append(lines, indentAll(body)...)
	lines = append(lines, "}")
	return lines
}

// checkArg returns the luaL_check* call that pulls Lua stack argument idx
// off as a native value of type t.
func checkArg(t types.Type, idx int) string {
	switch {
	case types.HasTag(t, "Integer"):
		return fmt.Sprintf("luaL_checkinteger(L, %d)", idx)
	case types.HasTag(t, "Float"):
		return fmt.Sprintf("luaL_checknumber(L, %d)", idx)
	case types.HasTag(t, "Boolean"):
		return fmt.Sprintf("(luaL_checktype(L, %d, LUA_TBOOLEAN), lua_toboolean(L, %d))", idx, idx)
	case types.HasTag(t, "String"):
		return fmt.Sprintf("luaS_new(L, luaL_checkstring(L, %d))", idx)
	case types.HasTag(t, "Array"):
		return fmt.Sprintf("PALLENE_CHECK_TABLE(L, %d)", idx)
	default:
		return fmt.Sprintf("/* unsupported boundary type %s */ 0", t)
	}
}

func pushResult(t types.Type, v string) string {
	switch {
	case types.HasTag(t, "Integer"):
		return fmt.Sprintf("lua_pushinteger(L, %s);", v)
	case types.HasTag(t, "Float"):
		return fmt.Sprintf("lua_pushnumber(L, %s);", v)
	case types.HasTag(t, "Boolean"):
		return fmt.Sprintf("lua_pushboolean(L, %s);", v)
	case types.HasTag(t, "String"):
		return fmt.Sprintf("PALLENE_PUSH_STRING(L, %s);", v)
	case types.HasTag(t, "Array"):
		return fmt.Sprintf("sethvalue(L, s2v(L->top), %s); api_incr_top(L);", v)
	default:
		return "lua_pushnil(L);"
	}
}

// genLuaOpen builds luaopen_<module>: allocates the globals table, runs
// the Var initializers, and registers every public Titan function under
// its source name in the module table the require() protocol expects back.
func (c *Coder) genLuaOpen(funcs []*ast.Func) fragLines {
	var public []*ast.Func
	for _, f := range funcs {
		if !f.IsLocal {
			public = append(public, f)
		}
	}

	var lines fragLines
	lines = append(lines, fmt.Sprintf("int luaopen_%s(lua_State *L) {", c.module))

	var body fragLines
	body = append(body, "globals = luaH_new(L);")
	body = append(body, "luaH_resize(L, globals, PALLENE_NGLOBALS, 0);")
	body = append(body, "sethvalue(L, s2v(L->top), globals); api_incr_top(L); luaL_ref(L, LUA_REGISTRYINDEX); /* anchor against GC */")
	body = append(body, "pallene_init_globals(L);")
	body = append(body, "")
	body = append(body, fmt.Sprintf("static const luaL_Reg funcs[] = {"))
	for _, f := range public {
		body = append(body, fmt.Sprintf("  {%q, %s},", f.Name, f.LuaEntryPoint))
	}
	body = append(body, "  {NULL, NULL}")
	body = append(body, "};")
	body = append(body, "luaL_newlib(L, funcs);")
	body = append(body, "return 1;")

	lines = append(lines, indentAll(body)...)
	lines = append(lines, "}")
	return lines
}
