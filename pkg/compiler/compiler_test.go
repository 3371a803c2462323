package compiler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microc-lang/microc/pkg/config"
	"github.com/microc-lang/microc/pkg/diag"
)

func compile(t *testing.T, source string) (string, string, error) {
	t.Helper()
	var warnings bytes.Buffer
	asm, err := Compile(diag.NewSource("test.mc", source), config.New(), &warnings)
	return asm, warnings.String(), err
}

func TestCompileSumProgram(t *testing.T) {
	asm, warnings, err := compile(t, `-- reads two values and prints their sum
begin
  read(a, b);
  write(a + b);
end`)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	// Body order: two reads with stores, the add over both slots, the
	// spill, then the write of the spill slot.
	want := []string{
		"jal read",
		"sw $v0, 32($fp)",
		"jal read",
		"sw $v0, 36($fp)",
		"lw $t0, 32($fp)",
		"lw $t1, 36($fp)",
		"add $t0, $t0, $t1",
		"sw $t0, 40($fp)",
		"lw $a0, 40($fp)",
		"jal write",
	}
	pos := 0
	for _, line := range want {
		idx := strings.Index(asm[pos:], line)
		require.GreaterOrEqual(t, idx, 0, "missing or misordered instruction %q", line)
		pos += idx + len(line)
	}

	assert.Contains(t, asm, "addi $sp, $sp, -44")
	assert.Contains(t, asm, ".globl main")
	assert.Contains(t, asm, "li $v0 10")
	assert.Contains(t, asm, "data_section_$$1:")
}

func TestJunkWarning(t *testing.T) {
	src := "x := 1; begin write(2); end"

	_, warnings, err := compile(t, src)
	require.NoError(t, err)
	assert.Contains(t, warnings, "[-Wjunk]")

	cfg := config.New()
	cfg.SetWarning(config.WarnJunk, false)
	var buf bytes.Buffer
	_, err = Compile(diag.NewSource("test.mc", src), cfg, &buf)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestEmptyCallWarning(t *testing.T) {
	_, warnings, err := compile(t, "begin read(); end")
	require.NoError(t, err)
	assert.Contains(t, warnings, "'read' called with no arguments")
	assert.Contains(t, warnings, "[-Wempty-call]")
}

func TestWarningsDoNotAffectOutput(t *testing.T) {
	noisy, _, err := compile(t, "junk begin write(1); end")
	require.NoError(t, err)
	clean, _, err := compile(t, "begin write(1); end")
	require.NoError(t, err)
	assert.Equal(t, clean, noisy)
}

func TestLexErrorStopsPipeline(t *testing.T) {
	_, warnings, err := compile(t, "begin a := 1 ? 2; end")
	require.Error(t, err)
	assert.Empty(t, warnings)

	var de *diag.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, diag.KindLex, de.Kind)
}

func TestDumpTokens(t *testing.T) {
	tokens, err := Tokens(diag.NewSource("test.mc", "begin a := 12; end"))
	require.NoError(t, err)
	dump := DumpTokens(tokens)
	assert.Contains(t, dump, "'begin'")
	assert.Contains(t, dump, `identifier "a"`)
	assert.Contains(t, dump, `integer literal "12"`)
	assert.Contains(t, dump, "end of input")
}

func TestDumpAST(t *testing.T) {
	stmts, err := Statements(diag.NewSource("test.mc", "begin a := 1 + 2; write(a); end"))
	require.NoError(t, err)
	dump := DumpAST(stmts)
	assert.Equal(t, "(:= a (+ 1 2))\n(write a)\n", dump)
}
