package parser

import (
	"github.com/loamdb/loam/internal/sql/ast"
	"github.com/loamdb/loam/internal/sql/lexer"
)

// parseSelect handles:
//
//	SELECT proj FROM name [alias]
//	    [[INNER|LEFT|RIGHT] JOIN name2 [alias2] ON key1 = key2]
//	    [WHERE cond]
func (p *Parser) parseSelect() (*ast.SelectStatement, error) {
	p.stmt = "SELECT"
	p.nextToken() // SELECT

	stmt := &ast.SelectStatement{}

	if p.curTok.Type == lexer.ASTERISK {
		stmt.Star = true
		p.nextToken()
	} else {
		for {
			ref, err := p.columnRef("column name or *")
			if err != nil {
				return nil, err
			}
			stmt.Projection = append(stmt.Projection, ref)
			if p.curTok.Type == lexer.COMMA {
				p.nextToken()
				continue
			}
			break
		}
	}

	if err := p.expect(lexer.FROM, "FROM"); err != nil {
		return nil, err
	}
	name, err := p.identifier("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = name
	stmt.Alias = p.alias()

	join, err := p.joinClause()
	if err != nil {
		return nil, err
	}
	stmt.Join = join

	where, err := p.where()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	if err := p.end(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// alias consumes an optional `[AS] alias`.
func (p *Parser) alias() string {
	if p.curTok.Type == lexer.AS {
		p.nextToken()
	}
	if p.curTok.Type == lexer.IDENTIFIER {
		a := p.curTok.Literal
		p.nextToken()
		return a
	}
	return ""
}

func (p *Parser) joinClause() (*ast.JoinClause, error) {
	kind := ast.JoinInner
	switch p.curTok.Type {
	case lexer.INNER:
		p.nextToken()
	case lexer.LEFT:
		kind = ast.JoinLeft
		p.nextToken()
	case lexer.RIGHT:
		kind = ast.JoinRight
		p.nextToken()
	case lexer.JOIN:
		// bare JOIN is INNER
	default:
		return nil, nil
	}

	if err := p.expect(lexer.JOIN, "JOIN"); err != nil {
		return nil, err
	}
	name, err := p.identifier("joined table name")
	if err != nil {
		return nil, err
	}
	join := &ast.JoinClause{Kind: kind, Table: name}
	join.Alias = p.alias()

	if err := p.expect(lexer.ON, "ON"); err != nil {
		return nil, err
	}
	left, err := p.columnRef("join key")
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.EQUALS, "'=' in join condition"); err != nil {
		return nil, err
	}
	right, err := p.columnRef("join key")
	if err != nil {
		return nil, err
	}
	if p.curTok.Type == lexer.AND || p.curTok.Type == lexer.OR {
		return nil, &UnsupportedWhereClauseError{}
	}
	join.LeftKey = left
	join.RightKey = right
	return join, nil
}
