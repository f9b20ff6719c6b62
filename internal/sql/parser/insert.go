package parser

import (
	"github.com/loamdb/loam/internal/sql/ast"
	"github.com/loamdb/loam/internal/sql/lexer"
)

// parseInsert handles:
//
//	INSERT INTO name (col, ...) VALUES (val, ...)
func (p *Parser) parseInsert() (*ast.InsertStatement, error) {
	p.stmt = "INSERT"
	p.nextToken() // INSERT

	if err := p.expect(lexer.INTO, "INTO"); err != nil {
		return nil, err
	}
	name, err := p.identifier("table name")
	if err != nil {
		return nil, err
	}
	stmt := &ast.InsertStatement{Table: name}

	if err := p.expect(lexer.PAREN_OPEN, "'(' before column list"); err != nil {
		return nil, err
	}
	for {
		col, err := p.identifier("column name")
		if err != nil {
			return nil, err
		}
		stmt.Columns = append(stmt.Columns, col)
		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	if err := p.expect(lexer.PAREN_CLOSE, "')' after column list"); err != nil {
		return nil, err
	}

	if err := p.expect(lexer.VALUES, "VALUES"); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.PAREN_OPEN, "'(' before value list"); err != nil {
		return nil, err
	}
	for {
		val, err := p.literal()
		if err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, val)
		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	if err := p.expect(lexer.PAREN_CLOSE, "')' after value list"); err != nil {
		return nil, err
	}

	if err := p.end(); err != nil {
		return nil, err
	}
	return stmt, nil
}
