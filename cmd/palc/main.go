// Command palc is the Pallene ahead-of-time compiler's command-line
// entry point: parse (external) -> ScopeAnalysis -> Checker -> Coder ->
// CCompiler -> shared object.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kr/pretty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/config"
	"github.com/Cyb3rCrypt/pallene/driver"
	"github.com/Cyb3rCrypt/pallene/toolchain"
)

var (
	flagOutput   string
	flagCC       string
	flagEmitC    bool
	flagDebugAST bool
)

func main() {
	os.Exit(run())
}

// run is split out from main so the testscript-driven CLI tests
// (palc_test.go) can register it as an in-process subcommand rather than
// building and exec'ing a real binary for every test case.
func run() int {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "palc <input.pln>",
		Short:         "Compile a Pallene module to a loadable shared object",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCompile,
	}

	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output path (defaults alongside the input)")
	cmd.Flags().StringVar(&flagCC, "cc", "", "C compiler to invoke (overrides pallene.toml)")
	cmd.Flags().BoolVar(&flagEmitC, "emit-c", false, "stop after generating C, without invoking the toolchain")
	cmd.Flags().BoolVar(&flagDebugAST, "debug-ast", false, "dump the compile result (output path and diagnostics) after compiling; the AST itself is not printed")

	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	input := args[0]

	pterm.DefaultHeader.WithFullWidth().Println("palc — compiling " + filepath.Base(input))

	cfg, err := config.Load("pallene.toml")
	if err != nil {
		return fmt.Errorf("reading pallene.toml: %w", err)
	}

	tc := toolchain.Default()
	if cfg.CC != "" {
		tc.CC = cfg.CC
	}
	if flagCC != "" {
		tc.CC = flagCC
	}
	tc.CFlags = cfg.CFlags
	tc.LDFlags = cfg.LDFlags

	d := driver.New(externalParser)
	d.Toolchain = tc
	d.OutDir = cfg.OutDir

	result, err := d.Compile(context.Background(), input, flagEmitC)
	if result.Reporter != nil && flagDebugAST {
		fmt.Fprintf(cmd.ErrOrStderr(), "%# v\n", pretty.Formatter(result))
	}
	if result.Reporter != nil {
		result.Reporter.EmitAll(cmd.ErrOrStderr())
	}
	if err != nil {
		return err
	}

	out := result.OutputPath
	if flagOutput != "" {
		if renameErr := os.Rename(result.OutputPath, flagOutput); renameErr == nil {
			out = flagOutput
		}
	}

	pterm.Success.Println("wrote " + out)
	return nil
}

// externalParser stands in for the lexer/parser, which this system
// specifies only by its output shape and otherwise treats as an external
// dependency. A real deployment wires driver.Driver.Parse to that external
// frontend directly; the CLI binary alone has no parser to call.
func externalParser(filename string) ([]ast.TopLevel, error) {
	return nil, fmt.Errorf("%s: no lexer/parser is wired into this build; palc expects an embedder to supply driver.ParseFunc", filename)
}
