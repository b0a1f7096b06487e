package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRequiresExactlyOneInputFile(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func TestRootCommandRegistersExpectedFlags(t *testing.T) {
	cmd := rootCmd()
	for _, name := range []string{"output", "cc", "emit-c", "debug-ast"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %q", name)
	}
}
