package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/scope"
	"github.com/Cyb3rCrypt/pallene/types"
)

// runPipeline runs ScopeAnalysis then the Checker, the way the driver does,
// and returns the reporter so tests can inspect diagnostics.
func runPipeline(tops []ast.TopLevel) *report.Reporter {
	rep := report.New()
	scope.New(rep, "m.pln").Analyze(tops)
	New(rep, "m.pln").Check(tops)
	return rep
}

func intTypeExpr() ast.TypeExpr { return &ast.NameTypeExpr{Name: "integer"} }
func floatTypeExpr() ast.TypeExpr { return &ast.NameTypeExpr{Name: "float"} }

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
		IsLocal:     true,
	}
}

func TestIntegerAddIsWellTyped(t *testing.T) {
	fn := buildAddFunc()
	rep := runPipeline([]ast.TopLevel{fn})

	require.False(t, rep.HasErrors())

	ret := fn.Block.Stats[0].(*ast.Return)
	assert.True(t, types.Equals(ret.Exp.GetType(), types.Integer))
}

func TestFloatIntegerMixYieldsFloat(t *testing.T) {
	// local function f(): float return 1 + 2.0 end
	fn := &ast.Func{
		Name:        "f",
		ReturnTypes: []ast.TypeExpr{floatTypeExpr()},
		Block: &ast.Block{Stats: []ast.Stat{
			&ast.Return{Exp: &ast.BinopExp{Op: ast.BinAdd, Lhs: &ast.IntLit{Value: 1}, Rhs: &ast.FloatLit{Value: 2.0}}},
		}},
	}

	rep := runPipeline([]ast.TopLevel{fn})
	require.False(t, rep.HasErrors())
}

func TestFloatAddRejectedAsIntegerReturn(t *testing.T) {
	// local function g(): integer return 1 + 2.0 end
	fn := &ast.Func{
		Name:        "g",
		ReturnTypes: []ast.TypeExpr{intTypeExpr()},
		Block: &ast.Block{Stats: []ast.Stat{
			&ast.Return{Exp: &ast.BinopExp{Op: ast.BinAdd, Lhs: &ast.IntLit{Value: 1}, Rhs: &ast.FloatLit{Value: 2.0}}},
		}},
	}

	rep := runPipeline([]ast.TopLevel{fn})
	require.True(t, rep.HasErrors())

	msg := rep.Diagnostics()[0].Message
	assert.Contains(t, msg, "integer")
	assert.Contains(t, msg, "float")
}

func TestMissingReturnIsRejected(t *testing.T) {
	// local function h(): integer end
	fn := &ast.Func{
		Name:        "h",
		ReturnTypes: []ast.TypeExpr{intTypeExpr()},
		Block:       &ast.Block{},
	}

	rep := runPipeline([]ast.TopLevel{fn})
	require.True(t, rep.HasErrors())
	assert.Contains(t, rep.Diagnostics()[0].Message, "function can return nil but return type is not nil")
}

func TestIfBothArmsReturningSatisfiesReturnCheck(t *testing.T) {
	fn := &ast.Func{
		Name:        "pick",
		ReturnTypes: []ast.TypeExpr{intTypeExpr()},
		Block: &ast.Block{Stats: []ast.Stat{
			&ast.If{
				Thens: []ast.CondBlock{{
					Cond:  &ast.BoolLit{Value: true},
					Block: &ast.Block{Stats: []ast.Stat{&ast.Return{Exp: &ast.IntLit{Value: 1}}}},
				}},
				Else: &ast.Block{Stats: []ast.Stat{&ast.Return{Exp: &ast.IntLit{Value: 2}}}},
			},
		}},
	}

	rep := runPipeline([]ast.TopLevel{fn})
	assert.False(t, rep.HasErrors())
}

func TestWhileLoopNeverCountsAsDefinitelyReturning(t *testing.T) {
	fn := &ast.Func{
		Name:        "loop",
		ReturnTypes: []ast.TypeExpr{intTypeExpr()},
		Block: &ast.Block{Stats: []ast.Stat{
			&ast.While{
				Cond:  &ast.BoolLit{Value: true},
				Block: &ast.Block{Stats: []ast.Stat{&ast.Return{Exp: &ast.IntLit{Value: 1}}}},
			},
		}},
	}

	rep := runPipeline([]ast.TopLevel{fn})
	require.True(t, rep.HasErrors())
	assert.Contains(t, rep.Diagnostics()[0].Message, "function can return nil but return type is not nil")
}

func TestArrayIndexingIsWellTyped(t *testing.T) {
	arrDecl := &ast.Decl{Name: "xs", TypeExpr: &ast.ArrayTypeExpr{Elem: intTypeExpr()}}
	fn := &ast.Func{
		Name:        "first",
		Params:      []*ast.Decl{arrDecl},
		ReturnTypes: []ast.TypeExpr{intTypeExpr()},
		Block: &ast.Block{Stats: []ast.Stat{
			&ast.Return{Exp: &ast.BracketExp{Exp: &ast.NameExp{Name: "xs"}, Index: &ast.IntLit{Value: 0}}},
		}},
	}

	rep := runPipeline([]ast.TopLevel{fn})
	assert.False(t, rep.HasErrors())
}

func TestEmptyArrayInitializerRequiresContext(t *testing.T) {
	decl := &ast.Decl{Name: "xs", TypeExpr: &ast.ArrayTypeExpr{Elem: intTypeExpr()}}
	varDecl := &ast.Var{VarDecl: decl, Value: &ast.InitList{}}

	rep := runPipeline([]ast.TopLevel{varDecl})
	assert.False(t, rep.HasErrors(), "context from the declared array type should let an empty initializer type-check")
}

func TestFloatToIntegerCastIsNotImplemented(t *testing.T) {
	fn := &ast.Func{
		Name:        "trunc",
		ReturnTypes: []ast.TypeExpr{intTypeExpr()},
		Block: &ast.Block{Stats: []ast.Stat{
			&ast.Return{Exp: &ast.Cast{Exp: &ast.FloatLit{Value: 1.5}, TargetExpr: intTypeExpr()}},
		}},
	}

	rep := runPipeline([]ast.TopLevel{fn})
	require.True(t, rep.HasErrors())
	assert.Equal(t, report.NotImplemented, rep.Diagnostics()[0].Kind)
}

func TestConcatIsNotImplemented(t *testing.T) {
	fn := &ast.Func{
		Name:        "greet",
		ReturnTypes: []ast.TypeExpr{&ast.NameTypeExpr{Name: "string"}},
		Block: &ast.Block{Stats: []ast.Stat{
			&ast.Return{Exp: &ast.Concat{Exps: []ast.Exp{
				&ast.StringLit{Value: "hi "},
				&ast.StringLit{Value: "there"},
			}}},
		}},
	}

	rep := runPipeline([]ast.TopLevel{fn})
	require.True(t, rep.HasErrors())
	assert.Equal(t, report.NotImplemented, rep.Diagnostics()[0].Kind)
}

func TestBinopConcatIsNotImplemented(t *testing.T) {
	fn := &ast.Func{
		Name:        "greet",
		ReturnTypes: []ast.TypeExpr{&ast.NameTypeExpr{Name: "string"}},
		Block: &ast.Block{Stats: []ast.Stat{
			&ast.Return{Exp: &ast.BinopExp{
				Op:  ast.BinConcatOp,
				Lhs: &ast.StringLit{Value: "hi "},
				Rhs: &ast.StringLit{Value: "there"},
			}},
		}},
	}

	rep := runPipeline([]ast.TopLevel{fn})
	require.True(t, rep.HasErrors())
	assert.Equal(t, report.NotImplemented, rep.Diagnostics()[0].Kind)
}

func TestUndeclaredNameDoesNotCascadeSecondDiagnostic(t *testing.T) {
	// return z + 1 -- "z" is undeclared; the resulting TypeError should be
	// suppressed because the operand already carries a recovery type.
	fn := &ast.Func{
		Name:        "f",
		ReturnTypes: []ast.TypeExpr{intTypeExpr()},
		Block: &ast.Block{Stats: []ast.Stat{
			&ast.Return{Exp: &ast.BinopExp{Op: ast.BinAdd, Lhs: &ast.NameExp{Name: "z"}, Rhs: &ast.IntLit{Value: 1}}},
		}},
	}

	rep := runPipeline([]ast.TopLevel{fn})
	require.Len(t, rep.Diagnostics(), 1, "only the original NameError should be reported")
	assert.Equal(t, report.NameError, rep.Diagnostics()[0].Kind)
}
