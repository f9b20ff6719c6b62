package engine

import (
	"fmt"

	"github.com/loamdb/loam/internal/domain/data"
	"github.com/loamdb/loam/internal/sql/ast"
	"github.com/loamdb/loam/internal/table"
)

func (e *Engine) executeSelect(stmt *ast.SelectStatement) (*Result, error) {
	if stmt.Join != nil {
		return e.executeJoin(stmt)
	}

	t, err := e.catalog.Get(stmt.Table)
	if err != nil {
		return nil, err
	}
	alias := stmt.Alias
	if alias == "" {
		alias = stmt.Table
	}

	refs, err := selectRows(t, alias, stmt.Where)
	if err != nil {
		return nil, err
	}
	return projectTable(t, stmt, refs)
}

// selectRows routes the WHERE condition to the table's query
// primitives: equality to the hash-index select, range operators to
// the range-query methods.
func selectRows(t *table.Table, alias string, cond *ast.Condition) ([]*data.Row, error) {
	if cond == nil {
		return t.Select(nil), nil
	}
	if cond.Column.Qualifier != "" && cond.Column.Qualifier != alias {
		return nil, fmt.Errorf("unknown table alias %q in WHERE clause", cond.Column.Qualifier)
	}
	col := cond.Column.Name

	if cond.Op == ast.OpEqual {
		return t.Select(table.Predicate{col: cond.Value}), nil
	}

	if cond.Value.Kind != data.KindNumber {
		return nil, fmt.Errorf("range condition on %s requires a numeric bound", col)
	}
	switch cond.Op {
	case ast.OpGreater:
		return t.SelectGreaterThan(col, cond.Value.Num), nil
	case ast.OpGreaterOrEqual:
		return t.SelectGreaterOrEqual(col, cond.Value.Num), nil
	case ast.OpLess:
		return t.SelectLessThan(col, cond.Value.Num), nil
	case ast.OpLessOrEqual:
		return t.SelectLessOrEqual(col, cond.Value.Num), nil
	case ast.OpBetween:
		if cond.High.Kind != data.KindNumber {
			return nil, fmt.Errorf("range condition on %s requires a numeric bound", col)
		}
		return t.SelectBetween(col, cond.Value.Num, cond.High.Num), nil
	}
	return nil, fmt.Errorf("unsupported condition on %s", col)
}

// projectTable shapes the matched rows for a single-table SELECT.
// Output rows are copies; engine results never alias table storage.
func projectTable(t *table.Table, stmt *ast.SelectStatement, refs []*data.Row) (*Result, error) {
	alias := stmt.Alias
	if alias == "" {
		alias = stmt.Table
	}

	if stmt.Star {
		columns := make([]string, len(t.Schema.Columns))
		for i, col := range t.Schema.Columns {
			columns[i] = col.Name
		}
		rows := make([]data.Row, len(refs))
		for i, ref := range refs {
			rows[i] = ref.Copy()
		}
		return &Result{
			Columns: columns,
			Rows:    rows,
			Message: fmt.Sprintf("SELECT %d", len(rows)),
		}, nil
	}

	columns := make([]string, len(stmt.Projection))
	for i, ref := range stmt.Projection {
		if ref.Qualifier != "" && ref.Qualifier != alias {
			return nil, fmt.Errorf("unknown table alias %q in projection", ref.Qualifier)
		}
		if _, ok := t.Schema.Column(ref.Name); !ok {
			return nil, fmt.Errorf("unknown column %s in projection", ref.Name)
		}
		columns[i] = ref.Name
	}

	rows := make([]data.Row, len(refs))
	for i, ref := range refs {
		out := make(data.Row, len(columns))
		for _, col := range columns {
			out[col] = ref.Get(col)
		}
		rows[i] = out
	}
	return &Result{
		Columns: columns,
		Rows:    rows,
		Message: fmt.Sprintf("SELECT %d", len(rows)),
	}, nil
}
