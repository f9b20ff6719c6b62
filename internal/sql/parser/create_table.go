package parser

import (
	"strings"

	"github.com/loamdb/loam/internal/sql/ast"
	"github.com/loamdb/loam/internal/sql/lexer"
)

// parseCreateTable handles:
//
//	CREATE TABLE name (col type [pk|primary [key]] [unique], ...)
func (p *Parser) parseCreateTable() (*ast.CreateTableStatement, error) {
	p.stmt = "CREATE TABLE"
	p.nextToken() // CREATE

	if err := p.expect(lexer.TABLE, "TABLE"); err != nil {
		return nil, err
	}
	name, err := p.identifier("table name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.PAREN_OPEN, "'(' before column definitions"); err != nil {
		return nil, err
	}

	stmt := &ast.CreateTableStatement{Table: name}
	for {
		col, err := p.parseColumnDef()
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

	if err := p.expect(lexer.PAREN_CLOSE, "')' after column definitions"); err != nil {
		return nil, err
	}
	if err := p.end(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseColumnDef() (ast.ColumnDef, error) {
	name, err := p.identifier("column name")
	if err != nil {
		return ast.ColumnDef{}, err
	}
	typ, err := p.identifier("column type")
	if err != nil {
		return ast.ColumnDef{}, err
	}

	col := ast.ColumnDef{Name: name, Type: typ}
	for p.curTok.Type == lexer.IDENTIFIER {
		switch strings.ToLower(p.curTok.Literal) {
		case "pk", "primary":
			col.PrimaryKey = true
			p.nextToken()
			// tolerate the long form "primary key"
			if p.curTok.Type == lexer.IDENTIFIER && strings.EqualFold(p.curTok.Literal, "key") {
				p.nextToken()
			}
		case "unique":
			col.Unique = true
			p.nextToken()
		default:
			return ast.ColumnDef{}, p.errExpected("column attribute (pk, primary, unique)")
		}
	}
	return col, nil
}
