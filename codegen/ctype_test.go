package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/Cyb3rCrypt/pallene/types"
)

func TestCtypeMapping(t *testing.T) {
	assert.Equal(t, "int", ctype(types.Nil))
	assert.Equal(t, "int", ctype(types.Boolean))
	assert.Equal(t, "lua_Integer", ctype(types.Integer))
	assert.Equal(t, "lua_Number", ctype(types.Float))
	assert.Equal(t, "TString *", ctype(types.String))
	assert.Equal(t, "Table *", ctype(types.NewArray(types.Integer)))
}

func TestLuaTagMapping(t *testing.T) {
	assert.Equal(t, "LUA_TNIL", luaTag(types.Nil))
	assert.Equal(t, "LUA_TNUMBER", luaTag(types.Integer))
	assert.Equal(t, "LUA_TNUMBER", luaTag(types.Float))
	assert.Equal(t, "LUA_TSTRING", luaTag(types.String))
}
