package pretty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReindentNestsBlocksByBraceDepth(t *testing.T) {
	src := "int f() {\nif (x) {\nreturn 1;\n}\nreturn 0;\n}"
	want := "int f() {\n    if (x) {\n        return 1;\n    }\n    return 0;\n}"
	assert.Equal(t, want, Reindent(src))
}

func TestReindentIgnoresBracesInsideStringLiterals(t *testing.T) {
	src := "int f() {\nlua_pushliteral(L, \"{}\");\nreturn 0;\n}"
	out := Reindent(src)
	assert.Contains(t, out, `"{}"`)
}

func TestReindentNeverGoesNegative(t *testing.T) {
	src := "}\n}\nint x;"
	assert.NotPanics(t, func() { Reindent(src) })
}
