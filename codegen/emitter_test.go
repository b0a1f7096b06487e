package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/check"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/scope"
)

func intTypeExpr() ast.TypeExpr { return &ast.NameTypeExpr{Name: "integer"} }

// local function add(x: integer, y: integer): integer return x + y end
func buildAddFunc() *ast.Func {
	xDecl := &ast.Decl{Name: "x", TypeExpr: intTypeExpr()}
	yDecl := &ast.Decl{Name: "y", TypeExpr: intTypeExpr()}
	ret := &ast.Return{Exp: &ast.BinopExp{Op: ast.BinAdd, Lhs: &ast.NameExp{Name: "x"}, Rhs: &ast.NameExp{Name: "y"}}}
	return &ast.Func{
		Name:        "add",
		Params:      []*ast.Decl{xDecl, yDecl},
		ReturnTypes: []ast.TypeExpr{intTypeExpr()},
		Block:       &ast.Block{Stats: []ast.Stat{ret}},
	}
}

func checkedTops(t *testing.T, tops []ast.TopLevel) *report.Reporter {
	rep := report.New()
	scope.New(rep, "m.pln").Analyze(tops)
	check.New(rep, "m.pln").Check(tops)
	require.False(t, rep.HasErrors(), "%v", rep.Diagnostics())
	return rep
}

func TestGenerateEmitsTitanAndLuaEntryPoints(t *testing.T) {
	fn := buildAddFunc()
	tops := []ast.TopLevel{fn}
	rep := checkedTops(t, tops)

	src, err := New(rep, "m").Generate(tops)
	require.NoError(t, err)

	assert.Contains(t, src, "function_add_titan")
	assert.Contains(t, src, "function_add_lua")
	assert.Contains(t, src, "luaopen_m")
	assert.Contains(t, src, "intop(+,")
}

func TestGenerateSkipsLuaWrapperForLocalFunctions(t *testing.T) {
	fn := buildAddFunc()
	fn.IsLocal = true
	tops := []ast.TopLevel{fn}
	rep := checkedTops(t, tops)

	src, err := New(rep, "m").Generate(tops)
	require.NoError(t, err)

	assert.Contains(t, src, "function_add_titan")
	assert.NotContains(t, src, "function_add_lua")
}

func TestGenerateLowersArrayLiteralAndIndexing(t *testing.T) {
	arrTypeExpr := &ast.ArrayTypeExpr{Elem: intTypeExpr()}
	xsDecl := &ast.Decl{Name: "xs", TypeExpr: arrTypeExpr}
	ret := &ast.Return{Exp: &ast.BracketExp{
		Exp:   &ast.NameExp{Name: "xs"},
		Index: &ast.IntLit{Value: 1},
	}}
	decl := &ast.DeclStat{
		Decl: xsDecl,
		Exp:  &ast.InitList{Exps: []ast.Exp{&ast.IntLit{Value: 10}, &ast.IntLit{Value: 20}}},
	}
	fn := &ast.Func{
		Name:        "first",
		IsLocal:     true,
		ReturnTypes: []ast.TypeExpr{intTypeExpr()},
		Block:       &ast.Block{Stats: []ast.Stat{decl, ret}},
	}
	tops := []ast.TopLevel{fn}
	rep := checkedTops(t, tops)

	src, err := New(rep, "m").Generate(tops)
	require.NoError(t, err)

	assert.Contains(t, src, "luaH_new(L)")
	assert.Contains(t, src, "luaH_setint(L,")
	assert.Contains(t, src, "luaH_getint(")
}
