// Package diag carries source positions through the pipeline and turns
// them into caret-annotated diagnostics at the top-level boundary.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/microc-lang/microc/pkg/token"
)

type Kind int

const (
	KindLex Kind = iota
	KindParse
	KindCodegen
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lexical error"
	case KindParse:
		return "parse error"
	case KindCodegen:
		return "internal error"
	}
	return "error"
}

// Source is one compiled file, kept around for rich error messages.
type Source struct {
	Name    string
	Content []rune
}

func NewSource(name, content string) *Source {
	return &Source{Name: name, Content: []rune(content)}
}

// Error is a fatal diagnostic anchored at a token. Stages return it up
// the call chain; nothing below the command boundary prints or exits.
type Error struct {
	Kind Kind
	Tok  token.Token
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Tok.Line, e.Tok.Column, e.Kind, e.Msg)
}

func Errorf(kind Kind, tok token.Token, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

const (
	cRed    = "\033[31m"
	cYellow = "\033[33m"
	cGreen  = "\033[32m"
	cNone   = "\033[0m"
)

func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Report renders e against src onto w, including the offending source
// line with a caret under the token.
func Report(w io.Writer, src *Source, e *Error) {
	label := e.Kind.String()
	if useColor(w) {
		label = cRed + label + cNone
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", src.Name, e.Tok.Line, e.Tok.Column, label, e.Msg)
	reportLine(w, src, e.Tok)
}

// Warn renders a non-fatal diagnostic tagged with its -W flag name.
func Warn(w io.Writer, src *Source, tok token.Token, name, format string, args ...interface{}) {
	label := "warning"
	if useColor(w) {
		label = cYellow + label + cNone
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: ", src.Name, tok.Line, tok.Column, label)
	fmt.Fprintf(w, format, args...)
	fmt.Fprintf(w, " [-W%s]\n", name)
	reportLine(w, src, tok)
}

func reportLine(w io.Writer, src *Source, tok token.Token) {
	if src == nil || tok.Line == 0 {
		return
	}
	line, ok := sourceLine(src.Content, tok.Line)
	if !ok {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	caret := "^"
	if tok.Len > 1 {
		caret += strings.Repeat("~", tok.Len-1)
	}
	if useColor(w) {
		caret = cGreen + caret + cNone
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", tok.Column-1), caret)
}

func sourceLine(content []rune, lineNum int) (string, bool) {
	start := 0
	for i, r := range content {
		if lineNum <= 1 {
			break
		}
		if r == '\n' {
			lineNum--
			start = i + 1
		}
	}
	if lineNum > 1 {
		return "", false
	}
	end := len(content)
	for i := start; i < len(content); i++ {
		if content[i] == '\n' {
			end = i
			break
		}
	}
	return string(content[start:end]), true
}
