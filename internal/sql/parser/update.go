package parser

import (
	"github.com/loamdb/loam/internal/sql/ast"
	"github.com/loamdb/loam/internal/sql/lexer"
)

// parseUpdate handles:
//
//	UPDATE name SET col = val, ... WHERE cond
//
// The WHERE clause is mandatory; there is no accidental full-table
// update.
func (p *Parser) parseUpdate() (*ast.UpdateStatement, error) {
	p.stmt = "UPDATE"
	p.nextToken() // UPDATE

	name, err := p.identifier("table name")
	if err != nil {
		return nil, err
	}
	stmt := &ast.UpdateStatement{Table: name}

	if err := p.expect(lexer.SET, "SET"); err != nil {
		return nil, err
	}
	for {
		col, err := p.identifier("column name")
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.EQUALS, "'=' in assignment"); err != nil {
			return nil, err
		}
		val, err := p.literal()
		if err != nil {
			return nil, err
		}
		stmt.Set = append(stmt.Set, ast.Assignment{Column: col, Value: val})
		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
			continue
		}
		break
	}

	where, err := p.where()
	if err != nil {
		return nil, err
	}
	if where == nil {
		return nil, &MissingWhereClauseError{Statement: "UPDATE"}
	}
	stmt.Where = where

	if err := p.end(); err != nil {
		return nil, err
	}
	return stmt, nil
}
