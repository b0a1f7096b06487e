package cemit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeqRendersInOrder(t *testing.T) {
	f := Seq{Lit("int "), Lit("function_add_titan"), Lit("(lua_Integer x, lua_Integer y)")}
	assert.Equal(t, "int function_add_titan(lua_Integer x, lua_Integer y)", Sprint(f))
}

func TestJoinInsertsSeparatorBetweenElementsOnly(t *testing.T) {
	f := Join{Sep: ", ", Frags: []Frag{Lit("lua_Integer x"), Lit("lua_Integer y")}}
	assert.Equal(t, "lua_Integer x, lua_Integer y", Sprint(f))
}

func TestLinesAppendsTrailingNewlineToEveryLine(t *testing.T) {
	f := Lines{Lit("a"), Lit("b")}
	assert.Equal(t, "a\nb\n", Sprint(f))
}

func TestNilFragmentsAreSkipped(t *testing.T) {
	f := Seq{Lit("a"), nil, Lit("b")}
	assert.Equal(t, "ab", Sprint(f))
}
