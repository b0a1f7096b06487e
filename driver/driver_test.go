package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyb3rCrypt/pallene/ast"
)

// parseAdd returns a fixed AST for "local function add(x: integer, y:
// integer): integer return x + y end", standing in for the external
// parser.
func parseAdd(filename string) ([]ast.TopLevel, error) {
	xDecl := &ast.Decl{Name: "x", TypeExpr: &ast.NameTypeExpr{Name: "integer"}}
	yDecl := &ast.Decl{Name: "y", TypeExpr: &ast.NameTypeExpr{Name: "integer"}}
	fn := &ast.Func{
		Name:        "add",
		Params:      []*ast.Decl{xDecl, yDecl},
		ReturnTypes: []ast.TypeExpr{&ast.NameTypeExpr{Name: "integer"}},
		Block: &ast.Block{Stats: []ast.Stat{
			&ast.Return{Exp: &ast.BinopExp{Op: ast.BinAdd, Lhs: &ast.NameExp{Name: "x"}, Rhs: &ast.NameExp{Name: "y"}}},
		}},
	}
	return []ast.TopLevel{fn}, nil
}

func TestCompileEmitCWritesGeneratedSourceAndNoIntermediates(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "add.pln")
	require.NoError(t, os.WriteFile(input, []byte("-- stand-in, parsed by parseAdd\n"), 0o644))

	d := New(parseAdd)
	result, err := d.Compile(context.Background(), input, true)
	require.NoError(t, err)

	assert.FileExists(t, result.OutputPath)
	src, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(src), "function_add_titan")

	_, err = os.Stat(filepath.Join(dir, "add.s"))
	assert.True(t, os.IsNotExist(err), "compile-only run must not leave a .s behind")
}

func TestCompileRejectsNonPlnInput(t *testing.T) {
	d := New(parseAdd)
	_, err := d.Compile(context.Background(), "add.lua", true)
	require.Error(t, err)
}

func TestCompileRejectsUnsafeStem(t *testing.T) {
	d := New(parseAdd)
	_, err := d.Compile(context.Background(), "a b;rm.pln", true)
	require.Error(t, err)
}
