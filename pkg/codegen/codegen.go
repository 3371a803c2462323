// Package codegen lowers statement ASTs to a textual listing for a
// MIPS-like stack machine. Every variable and every intermediate
// binary result gets its own permanent frame slot; values move through
// the two scratch registers $t0 and $t1.
package codegen

import (
	"fmt"
	"strings"

	"github.com/microc-lang/microc/pkg/ast"
	"github.com/microc-lang/microc/pkg/diag"
)

// frameBase reserves room below the first slot for the saved return
// address at 20($sp) and frame pointer at 28($sp).
const frameBase = 32

// operand is what expression evaluation yields: either a frame offset
// or an immediate. Immediates emit no instructions until consumed.
type operand interface{ isOperand() }

type memOperand uint32
type immOperand int32

func (memOperand) isOperand() {}
func (immOperand) isOperand() {}

type Context struct {
	symbols  map[string]uint32
	framePtr uint32
	asm      []string
}

func NewContext() *Context {
	return &Context{symbols: make(map[string]uint32), framePtr: frameBase}
}

// Offset reports the frame slot assigned to a variable, if any.
func (ctx *Context) Offset(name string) (uint32, bool) {
	off, ok := ctx.symbols[name]
	return off, ok
}

// FrameSize is the next free frame offset; after Generate it is the
// final size of the stack frame.
func (ctx *Context) FrameSize() uint32 { return ctx.framePtr }

// Body returns the emitted body instructions, without the surrounding
// prologue, epilogue, and prelude.
func (ctx *Context) Body() []string { return ctx.asm }

// Generate walks the top-level statements in order and returns the
// complete assembly listing.
func (ctx *Context) Generate(stmts []*ast.Node) (string, error) {
	for _, stmt := range stmts {
		if err := ctx.genStatement(stmt); err != nil {
			return "", err
		}
	}

	var sb strings.Builder
	sb.WriteString(mainPrologue(ctx.framePtr))
	for _, line := range ctx.asm {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(mainEpilogue(ctx.framePtr))
	sb.WriteString(prelude)
	return sb.String(), nil
}

func (ctx *Context) genStatement(stmt *ast.Node) error {
	switch d := stmt.Data.(type) {
	case ast.SyscallNode:
		return ctx.genSyscall(stmt, d)
	case ast.AssignNode:
		return ctx.genAssign(stmt, d)
	}
	return diag.Errorf(diag.KindCodegen, stmt.Tok, "only assignments and read/write calls may appear as statements")
}

func (ctx *Context) genSyscall(stmt *ast.Node, d ast.SyscallNode) error {
	switch d.Call {
	case ast.SysRead:
		for _, arg := range d.Args {
			op, err := ctx.genExpr(arg)
			if err != nil {
				return err
			}
			mem, ok := op.(memOperand)
			if !ok {
				return diag.Errorf(diag.KindCodegen, arg.Tok, "argument to read must be a variable")
			}
			ctx.emit("jal read")
			ctx.emit("sw $v0, %d($fp)", mem)
		}
	case ast.SysWrite:
		for _, arg := range d.Args {
			op, err := ctx.genExpr(arg)
			if err != nil {
				return err
			}
			ctx.load("$a0", op)
			ctx.emit("jal write")
		}
	default:
		return diag.Errorf(diag.KindCodegen, stmt.Tok, "unrecognized syscall kind")
	}
	return nil
}

func (ctx *Context) genAssign(stmt *ast.Node, d ast.AssignNode) error {
	lhs, err := ctx.genExpr(d.Lhs)
	if err != nil {
		return err
	}
	dest, ok := lhs.(memOperand)
	if !ok {
		return diag.Errorf(diag.KindCodegen, d.Lhs.Tok, "assignment target is not a variable")
	}
	rhs, err := ctx.genExpr(d.Rhs)
	if err != nil {
		return err
	}
	ctx.load("$t0", rhs)
	ctx.emit("sw $t0, %d($fp)", dest)
	return nil
}

// genExpr evaluates an expression to an operand. Variable references
// allocate their slot on first sight; binary results spill to a fresh
// slot that is never reclaimed.
func (ctx *Context) genExpr(expr *ast.Node) (operand, error) {
	switch d := expr.Data.(type) {
	case ast.IdentNode:
		off, ok := ctx.symbols[d.Name]
		if !ok {
			off = ctx.framePtr
			ctx.framePtr += 4
			ctx.symbols[d.Name] = off
		}
		return memOperand(off), nil
	case ast.NumberNode:
		return immOperand(d.Value), nil
	case ast.BinaryOpNode:
		left, err := ctx.genExpr(d.Left)
		if err != nil {
			return nil, err
		}
		right, err := ctx.genExpr(d.Right)
		if err != nil {
			return nil, err
		}
		ctx.load("$t0", left)
		ctx.load("$t1", right)
		switch d.Op {
		case ast.Add:
			ctx.emit("add $t0, $t0, $t1")
		case ast.Sub:
			ctx.emit("sub $t0, $t0, $t1")
		}
		ctx.emit("sw $t0, %d($fp)", ctx.framePtr)
		ctx.framePtr += 4
		return memOperand(ctx.framePtr - 4), nil
	}
	return nil, diag.Errorf(diag.KindCodegen, expr.Tok, "%s cannot be used inside an expression", expr.Tok.Type)
}

func (ctx *Context) load(reg string, op operand) {
	switch v := op.(type) {
	case memOperand:
		ctx.emit("lw %s, %d($fp)", reg, v)
	case immOperand:
		ctx.emit("li %s, %d", reg, v)
	}
}

func (ctx *Context) emit(format string, args ...interface{}) {
	ctx.asm = append(ctx.asm, fmt.Sprintf(format, args...))
}

func mainPrologue(frameSize uint32) string {
	return fmt.Sprintf(`
    .text
    .globl main
main:
    # prologue area
    addi $sp, $sp, -%d
    sw $ra, 20($sp)
    sw $fp, 28($sp)
    move $fp, $sp
`, frameSize)
}

func mainEpilogue(frameSize uint32) string {
	return fmt.Sprintf(`
    # epilogue area
    move $sp, $fp
    lw $fp, 28($sp)
    lw $ra, 20($sp)
    addi $sp, $sp, %d
    li $v0 10
    syscall
`, frameSize)
}

// prelude defines the read and write syscall stubs and the static
// newline used by write.
const prelude = `# Module : main
    .text
    .globl read
read:
    # call read integer
    li $v0 5
    syscall
    jr $ra
    .data
data_section_$$1:
    .word '\n'
    .text
    .globl write
write:
    lw $t0, data_section_$$1
    li $v0, 1
    syscall
    move $a0, $t0
    li $v0, 11
    syscall
    jr $ra
`
