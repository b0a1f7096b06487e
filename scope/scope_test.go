package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/report"
)

func loc(line int) report.Location {
	return report.Location{File: "m.pln", Line: line, Col: 1}
}

// local function add(x: integer, y: integer): integer return x + y end
func buildAddFunc() *ast.Func {
	x := &ast.NameExp{Name: "x"}
	y := &ast.NameExp{Name: "y"}
	ret := &ast.Return{Exp: &ast.BinopExp{Op: ast.BinAdd, Lhs: x, Rhs: y}}
	return &ast.Func{
		Name: "add",
		Params: []*ast.Decl{
			{Name: "x"},
			{Name: "y"},
		},
		Block:   &ast.Block{Stats: []ast.Stat{ret}},
		IsLocal: true,
	}
}

func TestResolvesParameterUses(t *testing.T) {
	rep := report.New()
	a := New(rep, "m.pln")

	fn := buildAddFunc()
	a.Analyze([]ast.TopLevel{fn})

	require.False(t, rep.HasErrors())

	binop := fn.Block.Stats[0].(*ast.Return).Exp.(*ast.BinopExp)
	x := binop.Lhs.(*ast.NameExp)
	y := binop.Rhs.(*ast.NameExp)

	assert.Equal(t, fn.Params[0], x.Decl)
	assert.Equal(t, fn.Params[1], y.Decl)
}

func TestUndeclaredNameReportsErrorAndAttachesSentinel(t *testing.T) {
	rep := report.New()
	a := New(rep, "m.pln")

	use := &ast.NameExp{Name: "z"}
	fn := &ast.Func{
		Name:   "f",
		Block:  &ast.Block{Stats: []ast.Stat{&ast.Return{Exp: use}}},
	}

	a.Analyze([]ast.TopLevel{fn})

	require.True(t, rep.HasErrors())
	assert.Contains(t, rep.Diagnostics()[0].Message, "z")
	assert.Same(t, ast.Unresolved, use.Decl.(*ast.Decl))
}

func TestDuplicateTopLevelDeclarationIsIgnoredNotDeleted(t *testing.T) {
	rep := report.New()
	a := New(rep, "m.pln")

	foo1 := &ast.Func{Name: "foo", Block: &ast.Block{}}
	foo2 := &ast.Func{Name: "foo", Block: &ast.Block{}}

	a.Analyze([]ast.TopLevel{foo1, foo2})

	diags := rep.Diagnostics()
	require.Len(t, diags, 1, "exactly one duplicate diagnostic, scenario 4")
	assert.Contains(t, diags[0].Message, "duplicate function or variable declaration for foo")

	assert.False(t, foo1.Ignore)
	assert.True(t, foo2.Ignore, "the later declaration is the one marked _ignore")
}

func TestForLoopVariableScopedToBody(t *testing.T) {
	rep := report.New()
	a := New(rep, "m.pln")

	iUse := &ast.NameExp{Name: "i"}
	forStat := &ast.For{
		Decl:   &ast.Decl{Name: "i"},
		Start:  &ast.IntLit{Value: 1},
		Finish: &ast.IntLit{Value: 10},
		Block:  &ast.Block{Stats: []ast.Stat{&ast.Call{CallExp: &ast.CallExp{Exp: &ast.NameExp{Name: "print"}, Args: []ast.Exp{iUse}}}}},
	}
	fn := &ast.Func{Name: "f", Block: &ast.Block{Stats: []ast.Stat{forStat}}}

	a.Analyze([]ast.TopLevel{fn})

	// "i" resolves inside the loop, "print" does not exist so it errors --
	// the point of this test is that "i" itself resolved cleanly.
	var iErrored bool
	for _, d := range rep.Diagnostics() {
		if d.Message == "variable i not declared" {
			iErrored = true
		}
	}
	assert.False(t, iErrored)
	assert.Equal(t, forStat.Decl, iUse.Decl)
}
