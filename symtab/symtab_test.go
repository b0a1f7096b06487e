package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndFindSymbol(t *testing.T) {
	st := New()
	require.True(t, st.AddSymbol("x", 1))

	node, ok := st.FindSymbol("x")
	require.True(t, ok)
	assert.Equal(t, 1, node)
}

func TestAddSymbolDuplicateInSameScope(t *testing.T) {
	st := New()
	require.True(t, st.AddSymbol("x", 1))
	assert.False(t, st.AddSymbol("x", 2), "re-adding in the same scope must signal a duplicate")
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	st := New()
	require.True(t, st.AddSymbol("x", "outer"))

	st.WithBlock(func() {
		assert.True(t, st.AddSymbol("x", "inner"), "an inner scope may shadow an outer name")

		node, ok := st.FindSymbol("x")
		require.True(t, ok)
		assert.Equal(t, "inner", node)
	})

	node, ok := st.FindSymbol("x")
	require.True(t, ok)
	assert.Equal(t, "outer", node, "leaving the block must restore the outer binding")
}

func TestWithBlockPopsOnPanic(t *testing.T) {
	st := New()
	st.AddSymbol("x", "outer")

	func() {
		defer func() { recover() }()
		st.WithBlock(func() {
			st.AddSymbol("y", "inner")
			panic("boom")
		})
	}()

	_, ok := st.FindSymbol("y")
	assert.False(t, ok, "the inner scope must be popped even when fn panics")

	node, ok := st.FindSymbol("x")
	require.True(t, ok)
	assert.Equal(t, "outer", node)
}

func TestFindDupOnlyLooksAtTopScope(t *testing.T) {
	st := New()
	st.AddSymbol("x", "outer")

	st.WithBlock(func() {
		_, ok := st.FindDup("x")
		assert.False(t, ok, "FindDup must not see outer-scope bindings")
	})
}
