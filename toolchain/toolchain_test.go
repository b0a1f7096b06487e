package toolchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultUsesCCFromPath(t *testing.T) {
	assert.Equal(t, "cc", Default().cc())
}

func TestRunReturnsErrorOnFailure(t *testing.T) {
	tc := Toolchain{CC: "false"}
	err := tc.run(context.Background(), nil)
	require.Error(t, err)
}

func TestRunSucceedsForATrivialCommand(t *testing.T) {
	tc := Toolchain{CC: "true"}
	err := tc.run(context.Background(), nil)
	require.NoError(t, err)
}
