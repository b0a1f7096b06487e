// Package toolchain invokes the external C toolchain for the three steps
// the Driver chains after code generation: c -> s (compile), s -> o
// (assemble), o -> so (link a shared object). Each step shells out to a
// single external command and reports its stderr verbatim on failure.
//
// Grounded on chai/bootstrap/cmd/compiler.go's compileLLVMModule: run one
// external tool with os/exec, capture its stderr into a buffer, and wrap a
// non-zero exit with that buffer's contents via pkg/errors so the CLI's
// top-level handler can print it unadorned.
package toolchain

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/pkg/errors"
)

// Toolchain names the external commands the Driver's pipeline shells out
// to. A zero-value Toolchain falls back to "cc" for all three steps --
// compile, assemble and link -- matching chai's own
// default-to-PATH behavior when no toolchain override is configured.
type Toolchain struct {
	CC      string
	CFlags  []string
	LDFlags []string
}

// Default returns a Toolchain that shells out to "cc" with no extra
// flags, the behavior when no pallene.toml overrides it: absence of
// configuration is not an error.
func Default() Toolchain {
	return Toolchain{CC: "cc"}
}

func (tc Toolchain) cc() string {
	if tc.CC == "" {
		return "cc"
	}
	return tc.CC
}

// CompileToAssembly runs "cc -S" over cFile, producing sFile.
func (tc Toolchain) CompileToAssembly(ctx context.Context, cFile, sFile string) error {
	args := append([]string{"-S", "-o", sFile}, tc.CFlags...)
	args = append(args, cFile)
	return tc.run(ctx, args)
}

// AssembleToObject runs "cc -c" over sFile, producing oFile.
func (tc Toolchain) AssembleToObject(ctx context.Context, sFile, oFile string) error {
	args := []string{"-c", "-o", oFile, sFile}
	return tc.run(ctx, args)
}

// LinkSharedObject links oFile into a loadable shared object at soFile.
func (tc Toolchain) LinkSharedObject(ctx context.Context, oFile, soFile string) error {
	args := append([]string{"-shared", "-o", soFile}, tc.LDFlags...)
	args = append(args, oFile)
	return tc.run(ctx, args)
}

func (tc Toolchain) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, tc.cc(), args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return errors.Wrapf(err, "%s: %s", tc.cc(), stderr.String())
		}
		return errors.Wrapf(err, "%s", tc.cc())
	}
	return nil
}
