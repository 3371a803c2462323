package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/microc-lang/microc/pkg/cli"
	"github.com/microc-lang/microc/pkg/compiler"
	"github.com/microc-lang/microc/pkg/config"
	"github.com/microc-lang/microc/pkg/diag"
)

func main() {
	app := cli.NewApp("microc")
	app.Synopsis = "[options] <input.mc>"
	app.Description = "A compiler for the MicroC language: a begin...end block of integer assignments and read/write calls, compiled to an assembly listing for a MIPS-like stack machine."

	var (
		outFile    string
		dumpTokens bool
		dumpAST    bool
	)
	fs := app.FlagSet
	fs.String(&outFile, "output", "o", "-", "Place the output into <file>, '-' for stdout.", "file")
	fs.Bool(&dumpTokens, "dump-tokens", "", false, "Print the token stream and exit.")
	fs.Bool(&dumpAST, "dump-ast", "", false, "Print the parsed statements and exit.")

	cfg := config.New()
	warningFlags := cfg.SetupFlagGroups(fs)

	app.Action = func(args []string) error {
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "microc: expected exactly one input file")
			return fmt.Errorf("expected one input file, got %d", len(args))
		}
		cfg.ApplyGroupOverrides(warningFlags)

		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "microc: could not read '%s': %v\n", path, err)
			return err
		}
		src := diag.NewSource(path, string(content))

		switch {
		case dumpTokens:
			tokens, err := compiler.Tokens(src)
			if err != nil {
				return report(src, err)
			}
			fmt.Print(compiler.DumpTokens(tokens))
			return nil
		case dumpAST:
			stmts, err := compiler.Statements(src)
			if err != nil {
				return report(src, err)
			}
			fmt.Print(compiler.DumpAST(stmts))
			return nil
		}

		asm, err := compiler.Compile(src, cfg, os.Stderr)
		if err != nil {
			return report(src, err)
		}
		if outFile == "-" {
			fmt.Print(asm)
			return nil
		}
		if err := os.WriteFile(outFile, []byte(asm), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "microc: could not write '%s': %v\n", outFile, err)
			return err
		}
		return nil
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// report renders a pipeline diagnostic against the source and hands
// the error back so Run exits nonzero.
func report(src *diag.Source, err error) error {
	var de *diag.Error
	if errors.As(err, &de) {
		diag.Report(os.Stderr, src, de)
	} else {
		fmt.Fprintf(os.Stderr, "microc: %v\n", err)
	}
	return err
}
