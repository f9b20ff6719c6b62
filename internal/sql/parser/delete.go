package parser

import (
	"github.com/loamdb/loam/internal/sql/ast"
	"github.com/loamdb/loam/internal/sql/lexer"
)

// parseDelete handles:
//
//	DELETE FROM name WHERE cond
//
// The WHERE clause is mandatory.
func (p *Parser) parseDelete() (*ast.DeleteStatement, error) {
	p.stmt = "DELETE"
	p.nextToken() // DELETE

	if err := p.expect(lexer.FROM, "FROM"); err != nil {
		return nil, err
	}
	name, err := p.identifier("table name")
	if err != nil {
		return nil, err
	}
	stmt := &ast.DeleteStatement{Table: name}

	where, err := p.where()
	if err != nil {
		return nil, err
	}
	if where == nil {
		return nil, &MissingWhereClauseError{Statement: "DELETE"}
	}
	stmt.Where = where

	if err := p.end(); err != nil {
		return nil, err
	}
	return stmt, nil
}
