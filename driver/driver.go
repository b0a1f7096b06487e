// Package driver orchestrates the full compile pipeline: parse (external,
// out of scope) -> ScopeAnalysis -> Checker -> Coder ->
// CCompiler, producing a loadable shared object. It owns the fixed chain
// of intermediate file extensions (pln -> c -> s -> o -> so) and
// guarantees every intermediate it creates is removed on every exit path,
// success or failure, leaving only the original input and the final
// artifact behind.
//
// Grounded on chai/bootstrap/cmd/compiler.go's Compiler.Analyze/Generate
// staged-phase shape and its defer-guarded temp-directory cleanup
// (os.RemoveAll(tempPath)), adapted from one temp directory per compile to
// a handful of named intermediate files the Driver tracks and removes
// itself, since intermediates need to live alongside the input rather
// than under a scratch directory.
package driver

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/check"
	"github.com/Cyb3rCrypt/pallene/codegen"
	"github.com/Cyb3rCrypt/pallene/pretty"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/scope"
	"github.com/Cyb3rCrypt/pallene/toolchain"
)

// stemPattern restricts an input file's stem (its path minus the .pln
// suffix) to characters safe to splice, unquoted, into the intermediate
// filenames this package hands to the external C toolchain.
var stemPattern = regexp.MustCompile(`^[A-Za-z0-9_/]+$`)

// ParseFunc produces a raw AST from Pallene source. The lexer/parser
// itself is external and out of scope; the Driver depends only
// on this narrow interface so it can be exercised and tested against a
// hand-built AST without a real parser wired in.
type ParseFunc func(filename string) ([]ast.TopLevel, error)

// Driver holds everything a single Compile call needs beyond the input
// file itself.
type Driver struct {
	Parse     ParseFunc
	Toolchain toolchain.Toolchain

	// OutDir, if set, redirects every generated file (the .c and, unless
	// emitC, the .s/.o/.so) into that directory instead of alongside the
	// input. The directory is created if it does not already exist.
	OutDir string
}

// New creates a Driver that parses with parse and invokes the default
// ("cc" on PATH) toolchain; callers needing a configured CC/cflags set
// d.Toolchain after construction.
func New(parse ParseFunc) *Driver {
	return &Driver{Parse: parse, Toolchain: toolchain.Default()}
}

// Result is what a successful Compile produces.
type Result struct {
	// OutputPath is the final artifact: the generated .c file if emitC was
	// requested, otherwise the linked .so.
	OutputPath string
	Reporter   *report.Reporter
}

// Compile runs the full pipeline over inputFilename, which must end in
// ".pln" and have a stem made up only of the characters stemPattern
// allows. If emitC is true, the pipeline stops after code generation and
// OutputPath names the written .c file; otherwise it continues through
// the C toolchain to a linked shared object.
func (d *Driver) Compile(ctx context.Context, inputFilename string, emitC bool) (Result, error) {
	stem, err := validateInput(inputFilename)
	if err != nil {
		return Result{}, err
	}
	moduleName := filepath.Base(stem)

	outStem := stem
	if d.OutDir != "" {
		if err := os.MkdirAll(d.OutDir, 0o755); err != nil {
			return Result{}, errors.Wrapf(err, "creating %s", d.OutDir)
		}
		outStem = filepath.Join(d.OutDir, moduleName)
	}

	tops, err := d.Parse(inputFilename)
	if err != nil {
		return Result{}, errors.Wrap(err, "parsing")
	}

	rep := report.New()
	scope.New(rep, inputFilename).Analyze(tops)
	if rep.HasErrors() {
		return Result{Reporter: rep}, rep.Err()
	}

	check.New(rep, inputFilename).Check(tops)
	if rep.HasErrors() {
		return Result{Reporter: rep}, rep.Err()
	}

	src, err := codegen.New(rep, moduleName).Generate(tops)
	if err != nil {
		return Result{Reporter: rep}, errors.Wrap(err, "code generation")
	}
	src = pretty.Reindent(src)

	cFile := outStem + ".c"
	if err := os.WriteFile(cFile, []byte(src), 0o644); err != nil {
		return Result{Reporter: rep}, errors.Wrapf(err, "writing %s", cFile)
	}

	if emitC {
		return Result{OutputPath: cFile, Reporter: rep}, nil
	}

	sFile, oFile, soFile := outStem+".s", outStem+".o", outStem+".so"

	// Every intermediate past this point is cleaned up unconditionally,
	// whether the remaining steps succeed or fail; only the original input
	// and the final .so survive.
	defer removeAll(cFile, sFile, oFile)

	if err := d.Toolchain.CompileToAssembly(ctx, cFile, sFile); err != nil {
		return Result{Reporter: rep}, errors.Wrap(err, "compiling generated C")
	}
	if err := d.Toolchain.AssembleToObject(ctx, sFile, oFile); err != nil {
		return Result{Reporter: rep}, errors.Wrap(err, "assembling")
	}
	if err := d.Toolchain.LinkSharedObject(ctx, oFile, soFile); err != nil {
		return Result{Reporter: rep}, errors.Wrap(err, "linking")
	}

	return Result{OutputPath: soFile, Reporter: rep}, nil
}

func validateInput(inputFilename string) (string, error) {
	if !strings.HasSuffix(inputFilename, ".pln") {
		return "", errors.Errorf("%s: input file must have a .pln extension", inputFilename)
	}
	stem := strings.TrimSuffix(inputFilename, ".pln")
	if !stemPattern.MatchString(stem) {
		return "", errors.Errorf("%s: file name must contain only letters, digits, underscore, and /", inputFilename)
	}
	return stem, nil
}

func removeAll(paths ...string) {
	for _, p := range paths {
		os.Remove(p)
	}
}
