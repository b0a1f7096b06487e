package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMangling(t *testing.T) {
	assert.Equal(t, "function_add_titan", titanEntryName("add"))
	assert.Equal(t, "function_add_lua", luaEntryName("add"))
	assert.Equal(t, "local_x", localName("x"))
	assert.Equal(t, "tmp_3", tempName(3))
}
