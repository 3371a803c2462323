// Package compiler wires the pipeline together: source text in,
// assembly listing out.
package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/microc-lang/microc/pkg/ast"
	"github.com/microc-lang/microc/pkg/codegen"
	"github.com/microc-lang/microc/pkg/config"
	"github.com/microc-lang/microc/pkg/diag"
	"github.com/microc-lang/microc/pkg/lexer"
	"github.com/microc-lang/microc/pkg/parser"
	"github.com/microc-lang/microc/pkg/token"
)

// Compile runs the full pipeline over one source. Warnings are written
// to warnOut as they are found; the first error aborts the pipeline
// and is returned for the caller to report.
func Compile(src *diag.Source, cfg *config.Config, warnOut io.Writer) (string, error) {
	stmts, p, err := frontend(src)
	if err != nil {
		return "", err
	}

	if junk := p.Junk(); len(junk) > 0 && cfg.IsWarningEnabled(config.WarnJunk) {
		diag.Warn(warnOut, src, junk[0], "junk",
			"%d token(s) outside the begin...end region ignored", len(junk))
	}
	if cfg.IsWarningEnabled(config.WarnEmptyCall) {
		for _, stmt := range stmts {
			if d, ok := stmt.Data.(ast.SyscallNode); ok && len(d.Args) == 0 {
				diag.Warn(warnOut, src, stmt.Tok, "empty-call", "'%s' called with no arguments", d.Call)
			}
		}
	}

	return codegen.NewContext().Generate(stmts)
}

// Tokens scans the source and returns the filtered token stream, the
// same view the parser gets.
func Tokens(src *diag.Source) ([]token.Token, error) {
	return lexer.ScanAll(src)
}

// Statements runs the frontend only and returns the parsed top-level
// statements.
func Statements(src *diag.Source) ([]*ast.Node, error) {
	stmts, _, err := frontend(src)
	return stmts, err
}

func frontend(src *diag.Source) ([]*ast.Node, *parser.Parser, error) {
	tokens, err := lexer.ScanAll(src)
	if err != nil {
		return nil, nil, err
	}
	p := parser.New(tokens)
	stmts, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}
	return stmts, p, nil
}

// DumpTokens renders one token per line for --dump-tokens.
func DumpTokens(tokens []token.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%3d:%-3d %s", tok.Line, tok.Column, tok.Type)
		if tok.Value != "" {
			fmt.Fprintf(&sb, " %q", tok.Value)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DumpAST renders the statement list for --dump-ast.
func DumpAST(stmts []*ast.Node) string {
	var sb strings.Builder
	for _, stmt := range stmts {
		sb.WriteString(stmt.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
