// Package ast defines the nodes the parser builds and the code
// generator consumes. Trees are built bottom-up and never mutated.
package ast

import (
	"fmt"
	"strings"

	"github.com/microc-lang/microc/pkg/token"
)

type NodeType int

const (
	Number NodeType = iota
	Ident
	BinaryOp
	Syscall
	Assign
)

type BinaryOpKind int

const (
	Add BinaryOpKind = iota
	Sub
)

func (op BinaryOpKind) String() string {
	if op == Add {
		return "+"
	}
	return "-"
}

type SyscallKind int

const (
	SysRead SyscallKind = iota
	SysWrite
)

func (k SyscallKind) String() string {
	if k == SysRead {
		return "read"
	}
	return "write"
}

// Node is one AST node. Data holds the variant payload keyed by Type;
// Tok anchors diagnostics to the source.
type Node struct {
	Type NodeType
	Tok  token.Token
	Data interface{}
}

type NumberNode struct{ Value int32 }
type IdentNode struct{ Name string }
type BinaryOpNode struct {
	Op          BinaryOpKind
	Left, Right *Node
}
type SyscallNode struct {
	Call SyscallKind
	Args []*Node
}
type AssignNode struct{ Lhs, Rhs *Node }

func NewNumber(tok token.Token, value int32) *Node {
	return &Node{Type: Number, Tok: tok, Data: NumberNode{Value: value}}
}

func NewIdent(tok token.Token, name string) *Node {
	return &Node{Type: Ident, Tok: tok, Data: IdentNode{Name: name}}
}

func NewBinaryOp(tok token.Token, op BinaryOpKind, left, right *Node) *Node {
	return &Node{Type: BinaryOp, Tok: tok, Data: BinaryOpNode{Op: op, Left: left, Right: right}}
}

func NewSyscall(tok token.Token, call SyscallKind, args []*Node) *Node {
	return &Node{Type: Syscall, Tok: tok, Data: SyscallNode{Call: call, Args: args}}
}

func NewAssign(tok token.Token, lhs, rhs *Node) *Node {
	return &Node{Type: Assign, Tok: tok, Data: AssignNode{Lhs: lhs, Rhs: rhs}}
}

// String renders the node as an s-expression, mainly for AST dumps and
// associativity checks in tests.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch d := n.Data.(type) {
	case NumberNode:
		return fmt.Sprintf("%d", d.Value)
	case IdentNode:
		return d.Name
	case BinaryOpNode:
		return fmt.Sprintf("(%s %s %s)", d.Op, d.Left, d.Right)
	case SyscallNode:
		if len(d.Args) == 0 {
			return fmt.Sprintf("(%s)", d.Call)
		}
		args := make([]string, len(d.Args))
		for i, a := range d.Args {
			args[i] = a.String()
		}
		return fmt.Sprintf("(%s %s)", d.Call, strings.Join(args, " "))
	case AssignNode:
		return fmt.Sprintf("(:= %s %s)", d.Lhs, d.Rhs)
	}
	return "<invalid>"
}
