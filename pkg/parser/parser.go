// Package parser builds statement ASTs from the filtered token stream
// with one token of lookahead.
package parser

import (
	"strconv"

	"github.com/microc-lang/microc/pkg/ast"
	"github.com/microc-lang/microc/pkg/diag"
	"github.com/microc-lang/microc/pkg/token"
)

// Parser holds the cursor state over a token slice. The slice is
// expected to end with an EOF token (lexer.ScanAll guarantees it), so
// lookahead never runs off the end.
type Parser struct {
	tokens   []token.Token
	pos      int
	current  token.Token
	previous token.Token
	junk     []token.Token
}

func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	if len(tokens) > 0 {
		p.current = p.tokens[0]
	}
	return p
}

// Junk returns the tokens that sat outside the begin...end region and
// were skipped without effect.
func (p *Parser) Junk() []token.Token { return p.junk }

// Parse consumes the whole token stream and returns the ordered
// top-level statements of the begin...end region.
func (p *Parser) Parse() ([]*ast.Node, error) {
	for !p.check(token.Begin) && !p.check(token.EOF) {
		p.junk = append(p.junk, p.current)
		p.advance()
	}
	if !p.match(token.Begin) {
		return nil, diag.Errorf(diag.KindParse, p.current, "expected 'begin' before %s", p.current.Type)
	}

	var stmts []*ast.Node
	for !p.check(token.End) {
		if p.check(token.EOF) {
			return nil, diag.Errorf(diag.KindParse, p.current, "missing 'end': program region is never closed")
		}
		if p.match(token.Semi) {
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.advance()

	for !p.check(token.EOF) {
		p.junk = append(p.junk, p.current)
		p.advance()
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (*ast.Node, error) {
	if p.check(token.Ident) {
		return p.parseAssign()
	}
	return p.parseExpression()
}

func (p *Parser) parseAssign() (*ast.Node, error) {
	nameTok := p.current
	p.advance()
	if p.check(token.LParen) {
		return nil, diag.Errorf(diag.KindParse, nameTok, "unknown syscall '%s'", nameTok.Value)
	}
	lhs := ast.NewIdent(nameTok, nameTok.Value)
	if err := p.expect(token.Assign, "expected ':=' after variable name"); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewAssign(nameTok, lhs, rhs), nil
}

func (p *Parser) parseExpression() (*ast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(left)
}

// parseBinOpRHS left-folds '+' and '-' onto the accumulated left-hand
// side: a single precedence tier, strictly left-associative.
func (p *Parser) parseBinOpRHS(left *ast.Node) (*ast.Node, error) {
	for p.check(token.Plus) || p.check(token.Minus) {
		opTok := p.current
		op := ast.Add
		if opTok.Type == token.Minus {
			op = ast.Sub
		}
		p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(opTok, op, left, right)
	}
	return left, nil
}

func (p *Parser) parsePrimary() (*ast.Node, error) {
	tok := p.current
	switch {
	case p.match(token.IntLit):
		val, _ := strconv.ParseInt(p.previous.Value, 10, 32)
		return ast.NewNumber(tok, int32(val)), nil
	case p.match(token.Ident):
		if p.check(token.LParen) {
			return nil, diag.Errorf(diag.KindParse, tok, "unknown syscall '%s'", tok.Value)
		}
		return ast.NewIdent(tok, tok.Value), nil
	case p.match(token.Read):
		return p.parseSyscall(tok, ast.SysRead)
	case p.match(token.Write):
		return p.parseSyscall(tok, ast.SysWrite)
	case p.match(token.LParen):
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, diag.Errorf(diag.KindParse, tok, "expected an expression, found %s", tok.Type)
}

func (p *Parser) parseSyscall(tok token.Token, call ast.SyscallKind) (*ast.Node, error) {
	if err := p.expect(token.LParen, "expected '(' after '"+call.String()+"'"); err != nil {
		return nil, err
	}
	var args []*ast.Node
	if !p.check(token.RParen) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if err := p.expect(token.RParen, "expected ',' or ')' in argument list"); err != nil {
		return nil, err
	}
	return ast.NewSyscall(tok, call, args), nil
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.previous = p.current
		p.pos++
		if p.pos < len(p.tokens) {
			p.current = p.tokens[p.pos]
		}
	}
}

func (p *Parser) check(tokType token.Type) bool { return p.current.Type == tokType }

func (p *Parser) match(tokType token.Type) bool {
	if !p.check(tokType) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(tokType token.Type, message string) error {
	if p.check(tokType) {
		p.advance()
		return nil
	}
	return diag.Errorf(diag.KindParse, p.current, "%s, found %s", message, p.current.Type)
}
