// Package parser turns a single textual command into one of the five
// statement kinds by recursive descent over the token stream. Each
// statement has a fixed grammar; anything off-shape fails with a
// SyntaxError naming the expected form.
package parser

import (
	"strconv"

	"github.com/loamdb/loam/internal/domain/data"
	"github.com/loamdb/loam/internal/sql/ast"
	"github.com/loamdb/loam/internal/sql/lexer"
)

type Parser struct {
	tokens  []lexer.Token
	curPos  int
	curTok  lexer.Token
	peekTok lexer.Token
	stmt    string // statement kind, for error messages
}

// Parse classifies the command by its leading keyword and parses it.
func Parse(input string) (ast.Statement, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &Parser{tokens: tokens}
	// Read two tokens to set curTok and peekTok
	p.nextToken()
	p.nextToken()

	switch p.curTok.Type {
	case lexer.CREATE:
		return p.parseCreateTable()
	case lexer.INSERT:
		return p.parseInsert()
	case lexer.SELECT:
		return p.parseSelect()
	case lexer.UPDATE:
		return p.parseUpdate()
	case lexer.DELETE:
		return p.parseDelete()
	}
	return nil, &UnknownStatementError{Keyword: p.curTok.Literal}
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.curPos < len(p.tokens) {
		p.peekTok = p.tokens[p.curPos]
		p.curPos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF}
	}
}

func (p *Parser) errExpected(expected string) error {
	return &SyntaxError{Statement: p.stmt, Expected: expected, Got: p.curTok.Literal}
}

// expect consumes the current token if it matches, else fails.
func (p *Parser) expect(tt lexer.TokenType, what string) error {
	if p.curTok.Type != tt {
		return p.errExpected(what)
	}
	p.nextToken()
	return nil
}

// identifier consumes and returns the current identifier token.
func (p *Parser) identifier(what string) (string, error) {
	if p.curTok.Type != lexer.IDENTIFIER {
		return "", p.errExpected(what)
	}
	name := p.curTok.Literal
	p.nextToken()
	return name, nil
}

// columnRef parses a possibly alias-qualified column name.
func (p *Parser) columnRef(what string) (ast.ColumnRef, error) {
	first, err := p.identifier(what)
	if err != nil {
		return ast.ColumnRef{}, err
	}
	if p.curTok.Type != lexer.DOT {
		return ast.ColumnRef{Name: first}, nil
	}
	p.nextToken()
	second, err := p.identifier("column name after '.'")
	if err != nil {
		return ast.ColumnRef{}, err
	}
	return ast.ColumnRef{Qualifier: first, Name: second}, nil
}

// literal parses a value literal: a quoted token is text (quotes
// stripped, no escapes), true/false are booleans, anything that parses
// as a number is a number, and any other bare token is kept as raw
// text.
func (p *Parser) literal() (data.Value, error) {
	tok := p.curTok
	switch tok.Type {
	case lexer.STRING:
		p.nextToken()
		return data.Text(tok.Literal), nil
	case lexer.TRUE:
		p.nextToken()
		return data.Boolean(true), nil
	case lexer.FALSE:
		p.nextToken()
		return data.Boolean(false), nil
	case lexer.NUMBER:
		p.nextToken()
		n, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return data.Value{}, p.errExpected("numeric literal")
		}
		return data.Number(n), nil
	case lexer.IDENTIFIER:
		p.nextToken()
		if n, err := strconv.ParseFloat(tok.Literal, 64); err == nil {
			return data.Number(n), nil
		}
		return data.Text(tok.Literal), nil
	}
	return data.Value{}, p.errExpected("value literal")
}

// where parses `WHERE <condition>` if present. Returns nil when there
// is no WHERE clause.
func (p *Parser) where() (*ast.Condition, error) {
	if p.curTok.Type != lexer.WHERE {
		return nil, nil
	}
	p.nextToken()
	return p.condition()
}

// condition parses a single comparison, dispatching in priority order
// BETWEEN, >=, <=, >, <, =. A trailing AND/OR means boolean
// composition, which is unsupported.
func (p *Parser) condition() (*ast.Condition, error) {
	col, err := p.columnRef("column name")
	if err != nil {
		return nil, err
	}

	cond := &ast.Condition{Column: col}
	switch p.curTok.Type {
	case lexer.BETWEEN:
		p.nextToken()
		lo, err := p.literal()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.AND, "AND between range bounds"); err != nil {
			return nil, err
		}
		hi, err := p.literal()
		if err != nil {
			return nil, err
		}
		cond.Op = ast.OpBetween
		cond.Value = lo
		cond.High = hi
	case lexer.GTE:
		p.nextToken()
		cond.Op = ast.OpGreaterOrEqual
	case lexer.LTE:
		p.nextToken()
		cond.Op = ast.OpLessOrEqual
	case lexer.GT:
		p.nextToken()
		cond.Op = ast.OpGreater
	case lexer.LT:
		p.nextToken()
		cond.Op = ast.OpLess
	case lexer.EQUALS:
		p.nextToken()
		cond.Op = ast.OpEqual
	default:
		return nil, p.errExpected("comparison operator")
	}

	if cond.Op != ast.OpBetween {
		val, err := p.literal()
		if err != nil {
			return nil, err
		}
		cond.Value = val
	}

	if p.curTok.Type == lexer.AND || p.curTok.Type == lexer.OR {
		return nil, &UnsupportedWhereClauseError{}
	}
	return cond, nil
}

// end accepts an optional trailing semicolon and requires the input to
// be fully consumed, so malformed tails fail instead of being ignored.
func (p *Parser) end() error {
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}
	if p.curTok.Type != lexer.EOF {
		return p.errExpected("end of statement")
	}
	return nil
}
