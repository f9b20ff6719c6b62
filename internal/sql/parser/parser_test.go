package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loamdb/loam/internal/domain/data"
	"github.com/loamdb/loam/internal/sql/ast"
)

func TestParseCreateTable(t *testing.T) {
	stmt, err := Parse(`CREATE TABLE users (id number pk, name string, email text unique, active bool)`)
	require.NoError(t, err)

	create, ok := stmt.(*ast.CreateTableStatement)
	require.True(t, ok, "expected CreateTableStatement, got %T", stmt)

	assert.Equal(t, "users", create.Table)
	require.Len(t, create.Columns, 4)
	assert.Equal(t, ast.ColumnDef{Name: "id", Type: "number", PrimaryKey: true}, create.Columns[0])
	assert.Equal(t, ast.ColumnDef{Name: "name", Type: "string"}, create.Columns[1])
	assert.Equal(t, ast.ColumnDef{Name: "email", Type: "text", Unique: true}, create.Columns[2])
	assert.Equal(t, ast.ColumnDef{Name: "active", Type: "bool"}, create.Columns[3])
}

func TestParseCreateTablePrimaryKeyLongForm(t *testing.T) {
	stmt, err := Parse(`CREATE TABLE t (id number primary key)`)
	require.NoError(t, err)
	create := stmt.(*ast.CreateTableStatement)
	assert.True(t, create.Columns[0].PrimaryKey)
}

func TestParseInsert(t *testing.T) {
	stmt, err := Parse(`INSERT INTO users (id, name, active) VALUES (1, 'Alice', true)`)
	require.NoError(t, err)

	insert, ok := stmt.(*ast.InsertStatement)
	require.True(t, ok)

	assert.Equal(t, "users", insert.Table)
	assert.Equal(t, []string{"id", "name", "active"}, insert.Columns)
	require.Len(t, insert.Values, 3)
	assert.Equal(t, data.Number(1), insert.Values[0])
	assert.Equal(t, data.Text("Alice"), insert.Values[1])
	assert.Equal(t, data.Boolean(true), insert.Values[2])
}

func TestParseSelect(t *testing.T) {
	t.Run("Star", func(t *testing.T) {
		stmt, err := Parse(`SELECT * FROM users`)
		require.NoError(t, err)
		sel := stmt.(*ast.SelectStatement)
		assert.True(t, sel.Star)
		assert.Equal(t, "users", sel.Table)
		assert.Nil(t, sel.Where)
		assert.Nil(t, sel.Join)
	})

	t.Run("ProjectionAndEquality", func(t *testing.T) {
		stmt, err := Parse(`SELECT id, name FROM users WHERE id = 1`)
		require.NoError(t, err)
		sel := stmt.(*ast.SelectStatement)
		require.Len(t, sel.Projection, 2)
		assert.Equal(t, ast.ColumnRef{Name: "id"}, sel.Projection[0])
		require.NotNil(t, sel.Where)
		assert.Equal(t, ast.OpEqual, sel.Where.Op)
		assert.Equal(t, data.Number(1), sel.Where.Value)
	})

	t.Run("RangeOperators", func(t *testing.T) {
		for _, tc := range []struct {
			input string
			op    ast.CompareOp
		}{
			{`SELECT * FROM t WHERE n > 5`, ast.OpGreater},
			{`SELECT * FROM t WHERE n >= 5`, ast.OpGreaterOrEqual},
			{`SELECT * FROM t WHERE n < 5`, ast.OpLess},
			{`SELECT * FROM t WHERE n <= 5`, ast.OpLessOrEqual},
		} {
			stmt, err := Parse(tc.input)
			require.NoError(t, err, tc.input)
			sel := stmt.(*ast.SelectStatement)
			assert.Equal(t, tc.op, sel.Where.Op, tc.input)
		}
	})

	t.Run("Between", func(t *testing.T) {
		stmt, err := Parse(`SELECT * FROM transactions WHERE amount BETWEEN 500 AND 2000`)
		require.NoError(t, err)
		sel := stmt.(*ast.SelectStatement)
		require.NotNil(t, sel.Where)
		assert.Equal(t, ast.OpBetween, sel.Where.Op)
		assert.Equal(t, data.Number(500), sel.Where.Value)
		assert.Equal(t, data.Number(2000), sel.Where.High)
	})

	t.Run("Join", func(t *testing.T) {
		stmt, err := Parse(`SELECT * FROM customers c LEFT JOIN orders o ON c.id = o.customer_id`)
		require.NoError(t, err)
		sel := stmt.(*ast.SelectStatement)
		assert.Equal(t, "c", sel.Alias)
		require.NotNil(t, sel.Join)
		assert.Equal(t, ast.JoinLeft, sel.Join.Kind)
		assert.Equal(t, "orders", sel.Join.Table)
		assert.Equal(t, "o", sel.Join.Alias)
		assert.Equal(t, ast.ColumnRef{Qualifier: "c", Name: "id"}, sel.Join.LeftKey)
		assert.Equal(t, ast.ColumnRef{Qualifier: "o", Name: "customer_id"}, sel.Join.RightKey)
	})

	t.Run("BareJoinIsInner", func(t *testing.T) {
		stmt, err := Parse(`SELECT * FROM a JOIN b ON x = y`)
		require.NoError(t, err)
		sel := stmt.(*ast.SelectStatement)
		require.NotNil(t, sel.Join)
		assert.Equal(t, ast.JoinInner, sel.Join.Kind)
	})

	t.Run("JoinWithWhere", func(t *testing.T) {
		stmt, err := Parse(`SELECT name FROM a INNER JOIN b ON a.id = b.aid WHERE b.kind = 'x'`)
		require.NoError(t, err)
		sel := stmt.(*ast.SelectStatement)
		require.NotNil(t, sel.Join)
		require.NotNil(t, sel.Where)
		assert.Equal(t, ast.ColumnRef{Qualifier: "b", Name: "kind"}, sel.Where.Column)
	})
}

func TestParseUpdate(t *testing.T) {
	stmt, err := Parse(`UPDATE users SET name = 'Bob', age = 31 WHERE id = 2`)
	require.NoError(t, err)

	update, ok := stmt.(*ast.UpdateStatement)
	require.True(t, ok)
	assert.Equal(t, "users", update.Table)
	require.Len(t, update.Set, 2)
	assert.Equal(t, ast.Assignment{Column: "name", Value: data.Text("Bob")}, update.Set[0])
	assert.Equal(t, ast.Assignment{Column: "age", Value: data.Number(31)}, update.Set[1])
	require.NotNil(t, update.Where)
}

func TestParseDelete(t *testing.T) {
	stmt, err := Parse(`DELETE FROM users WHERE id = 2`)
	require.NoError(t, err)

	del, ok := stmt.(*ast.DeleteStatement)
	require.True(t, ok)
	assert.Equal(t, "users", del.Table)
	require.NotNil(t, del.Where)
}

func TestParseErrors(t *testing.T) {
	t.Run("UnknownStatement", func(t *testing.T) {
		_, err := Parse(`EXPLAIN SELECT * FROM t`)
		var ue *UnknownStatementError
		require.True(t, errors.As(err, &ue))
		assert.Equal(t, "EXPLAIN", ue.Keyword)
	})

	t.Run("SyntaxError", func(t *testing.T) {
		for _, input := range []string{
			`CREATE users (id number)`,
			`INSERT INTO users id VALUES (1)`,
			`SELECT FROM users`,
			`SELECT * users`,
			`SELECT * FROM users WHERE`,
			`SELECT * FROM a JOIN b`,
			`UPDATE users SET WHERE id = 1`,
		} {
			_, err := Parse(input)
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "input %q got %v", input, err)
		}
	})

	t.Run("MissingWhere", func(t *testing.T) {
		for _, input := range []string{
			`UPDATE users SET name = 'x'`,
			`DELETE FROM users`,
		} {
			_, err := Parse(input)
			var mw *MissingWhereClauseError
			require.True(t, errors.As(err, &mw), "input %q got %v", input, err)
		}
	})

	t.Run("UnsupportedWhere", func(t *testing.T) {
		_, err := Parse(`SELECT * FROM t WHERE a = 1 AND b = 2`)
		var uw *UnsupportedWhereClauseError
		require.True(t, errors.As(err, &uw))

		_, err = Parse(`DELETE FROM t WHERE a = 1 OR b = 2`)
		require.True(t, errors.As(err, &uw))
	})

	t.Run("TrailingGarbage", func(t *testing.T) {
		_, err := Parse(`SELECT * FROM t garbage extra`)
		require.Error(t, err)
	})
}

func TestLiteralRules(t *testing.T) {
	stmt, err := Parse(`INSERT INTO t (a, b, c, d) VALUES ('5', 5, false, raw_token)`)
	require.NoError(t, err)
	insert := stmt.(*ast.InsertStatement)

	assert.Equal(t, data.Text("5"), insert.Values[0], "quoted numbers stay text")
	assert.Equal(t, data.Number(5), insert.Values[1])
	assert.Equal(t, data.Boolean(false), insert.Values[2])
	assert.Equal(t, data.Text("raw_token"), insert.Values[3], "bare non-numeric tokens stay raw text")
}
