package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterAccumulatesInAddOrder(t *testing.T) {
	r := New()
	require.False(t, r.HasErrors())

	r.Add(NameError, Location{File: "m.pln", Line: 3, Col: 1}, "variable %s not declared", "x")
	r.Add(TypeError, Location{File: "m.pln", Line: 1, Col: 5}, "expected %s, got %s", "integer", "float")

	require.True(t, r.HasErrors())

	diags := r.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, 3, diags[0].Loc.Line, "Diagnostics preserves the order Add was called in")

	err := r.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "m.pln:1:5")
	assert.Contains(t, err.Error(), "m.pln:3:1")
}

func TestLocationString(t *testing.T) {
	loc := Location{File: "m.pln", Line: 10, Col: 4}
	assert.Equal(t, "m.pln:10:4", loc.String())
}
