package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microc-lang/microc/pkg/ast"
	"github.com/microc-lang/microc/pkg/diag"
	"github.com/microc-lang/microc/pkg/lexer"
	"github.com/microc-lang/microc/pkg/token"
)

func parse(t *testing.T, source string) ([]*ast.Node, error) {
	t.Helper()
	tokens, err := lexer.ScanAll(diag.NewSource("test.mc", source))
	require.NoError(t, err)
	return New(tokens).Parse()
}

func mustParse(t *testing.T, source string) []*ast.Node {
	t.Helper()
	stmts, err := parse(t, source)
	require.NoError(t, err)
	return stmts
}

func TestLeftAssociativity(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"begin x := a + b + c; end", "(:= x (+ (+ a b) c))"},
		{"begin x := a - b + c; end", "(+ (- a b) c)"},
		{"begin x := a + b - c - d; end", "(- (- (+ a b) c) d)"},
	}
	for _, tt := range tests {
		stmts := mustParse(t, tt.src)
		require.Len(t, stmts, 1)
		assert.Contains(t, stmts[0].String(), tt.want)
	}
}

func TestParenthesesGroup(t *testing.T) {
	stmts := mustParse(t, "begin x := a + (b + c); end")
	require.Len(t, stmts, 1)
	assert.Equal(t, "(:= x (+ a (+ b c)))", stmts[0].String())
}

func TestSyscallArguments(t *testing.T) {
	stmts := mustParse(t, "begin read(a, b); write(a + b, 7); end")
	require.Len(t, stmts, 2)

	read := stmts[0].Data.(ast.SyscallNode)
	assert.Equal(t, ast.SysRead, read.Call)
	require.Len(t, read.Args, 2)
	assert.Equal(t, "a", read.Args[0].Data.(ast.IdentNode).Name)

	write := stmts[1].Data.(ast.SyscallNode)
	assert.Equal(t, ast.SysWrite, write.Call)
	require.Len(t, write.Args, 2)
	assert.Equal(t, "(+ a b)", write.Args[0].String())
}

func TestEmptyArgumentList(t *testing.T) {
	stmts := mustParse(t, "begin read(); write(); end")
	require.Len(t, stmts, 2)
	assert.Empty(t, stmts[0].Data.(ast.SyscallNode).Args)
	assert.Empty(t, stmts[1].Data.(ast.SyscallNode).Args)
}

func TestJunkAroundRegionIsSkipped(t *testing.T) {
	tokens, err := lexer.ScanAll(diag.NewSource("test.mc", "x ; 1 begin a := 1; end y 2"))
	require.NoError(t, err)
	p := New(tokens)

	stmts, err := p.Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Len(t, p.Junk(), 5)
}

func TestSemicolonsAreSeparators(t *testing.T) {
	stmts := mustParse(t, "begin ;; a := 1 ;;; b := 2; end")
	assert.Len(t, stmts, 2)
}

func TestBareExpressionStatement(t *testing.T) {
	// The grammar admits any expression statement; rejecting
	// non-syscalls is the generator's job.
	stmts := mustParse(t, "begin 5; end")
	require.Len(t, stmts, 1)
	assert.Equal(t, ast.Number, stmts[0].Type)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"missing assign", "begin x 1; end", "':='"},
		{"missing begin", "x := 1; end", "'begin'"},
		{"missing end", "begin x := 1;", "missing 'end'"},
		{"unclosed call", "begin write(a; end", "argument list"},
		{"missing comma", "begin read(a b); end", "argument list"},
		{"unknown syscall", "begin foo(a); end", "unknown syscall 'foo'"},
		{"unclosed paren", "begin x := (a + b; end", "')'"},
		{"dangling operator", "begin x := a +; end", "expected an expression"},
		{"bare read", "begin read; end", "'('"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.src)
			require.Error(t, err)

			var de *diag.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, diag.KindParse, de.Kind)
			assert.Contains(t, de.Msg, tt.wantMsg)
		})
	}
}

func TestMissingEndTerminates(t *testing.T) {
	// An unclosed region must hit the trailing EOF token and stop.
	_, err := parse(t, "begin read(a); write(a)")
	var de *diag.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, token.EOF, de.Tok.Type)
}

func TestErrorCarriesPosition(t *testing.T) {
	_, err := parse(t, "begin\n  x 1;\nend")
	var de *diag.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Tok.Line)
	assert.Equal(t, 5, de.Tok.Column)
}
