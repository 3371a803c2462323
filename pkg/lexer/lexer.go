package lexer

import (
	"strconv"

	"github.com/microc-lang/microc/pkg/diag"
	"github.com/microc-lang/microc/pkg/token"
)

type Lexer struct {
	src    *diag.Source
	pos    int
	line   int
	column int
}

func New(src *diag.Source) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

// Next produces the next raw token, including Whitespace and
// LineComment trivia. Once the input is exhausted it keeps returning
// EOF tokens.
func (l *Lexer) Next() (token.Token, error) {
	startPos, startCol, startLine := l.pos, l.column, l.line

	if l.isAtEnd() {
		return l.makeToken(token.EOF, "", startPos, startCol, startLine), nil
	}

	ch := l.peek()
	if IsWhitespace(ch) {
		for !l.isAtEnd() && IsWhitespace(l.peek()) {
			l.advance()
		}
		return l.makeToken(token.Whitespace, "", startPos, startCol, startLine), nil
	}

	if ch == '-' && l.peekNext() == '-' {
		for !l.isAtEnd() && l.peek() != '\n' {
			l.advance()
		}
		return l.makeToken(token.LineComment, "", startPos, startCol, startLine), nil
	}

	if isAsciiLetter(ch) {
		return l.identOrKeyword(startPos, startCol, startLine), nil
	}
	if IsDigit(ch) {
		return l.intLiteral(startPos, startCol, startLine)
	}

	l.advance()
	switch ch {
	case '(':
		return l.makeToken(token.LParen, "", startPos, startCol, startLine), nil
	case ')':
		return l.makeToken(token.RParen, "", startPos, startCol, startLine), nil
	case ';':
		return l.makeToken(token.Semi, "", startPos, startCol, startLine), nil
	case ',':
		return l.makeToken(token.Comma, "", startPos, startCol, startLine), nil
	case '+':
		return l.makeToken(token.Plus, "", startPos, startCol, startLine), nil
	case '-':
		return l.makeToken(token.Minus, "", startPos, startCol, startLine), nil
	case ':':
		if l.match('=') {
			return l.makeToken(token.Assign, "", startPos, startCol, startLine), nil
		}
		tok := l.makeToken(token.Unknown, ":", startPos, startCol, startLine)
		return tok, diag.Errorf(diag.KindLex, tok, "expected '=' after ':'")
	}

	// Scan to the next character that could belong to the language so
	// the whole unexpected run is underlined at once.
	for !l.isAtEnd() && !IsExpected(l.peek()) {
		l.advance()
	}
	text := string(l.src.Content[startPos:l.pos])
	tok := l.makeToken(token.Unknown, text, startPos, startCol, startLine)
	return tok, diag.Errorf(diag.KindLex, tok, "unexpected input '%s'", text)
}

// ScanAll drains the lexer, dropping trivia tokens. The returned slice
// always ends with an EOF token, so a parser can look ahead without
// bounds checks even when the source never closes its last construct.
func ScanAll(src *diag.Source) ([]token.Token, error) {
	l := New(src)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type.Trivia() {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) identOrKeyword(startPos, startCol, startLine int) token.Token {
	l.advance()
	for !l.isAtEnd() && IsIdentCont(l.peek()) {
		l.advance()
	}
	value := string(l.src.Content[startPos:l.pos])
	tok := l.makeToken(token.Ident, value, startPos, startCol, startLine)
	if tokType, isKeyword := token.KeywordMap[value]; isKeyword {
		tok.Type = tokType
		tok.Value = ""
	}
	return tok
}

func (l *Lexer) intLiteral(startPos, startCol, startLine int) (token.Token, error) {
	for !l.isAtEnd() && IsDigit(l.peek()) {
		l.advance()
	}
	valueStr := string(l.src.Content[startPos:l.pos])
	tok := l.makeToken(token.IntLit, valueStr, startPos, startCol, startLine)
	if _, err := strconv.ParseInt(valueStr, 10, 32); err != nil {
		return tok, diag.Errorf(diag.KindLex, tok, "integer literal '%s' out of 32-bit range", valueStr)
	}
	return tok, nil
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.src.Content[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.src.Content) {
		return 0
	}
	return l.src.Content[l.pos+1]
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch := l.src.Content[l.pos]
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
	return ch
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.src.Content[l.pos] != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) isAtEnd() bool { return l.pos >= len(l.src.Content) }

func (l *Lexer) makeToken(tokType token.Type, value string, startPos, startCol, startLine int) token.Token {
	return token.Token{
		Type: tokType, Value: value,
		Line: startLine, Column: startCol, Len: l.pos - startPos,
	}
}

func isAsciiLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
