// Package engine executes parsed statements against the catalog. A
// textual command goes through the parser, runs against one or two
// tables, and comes back as a Result: projected rows for SELECT,
// a summary message for everything else.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/loamdb/loam/internal/catalog"
	"github.com/loamdb/loam/internal/domain/data"
	"github.com/loamdb/loam/internal/domain/schema"
	"github.com/loamdb/loam/internal/sql/ast"
	"github.com/loamdb/loam/internal/sql/parser"
	"github.com/loamdb/loam/internal/table"
)

// Result is the outcome of one executed statement.
type Result struct {
	Columns []string   `json:"columns,omitempty"`
	Rows    []data.Row `json:"rows,omitempty"`
	Message string     `json:"message,omitempty"`
}

// ColumnValueCountMismatchError reports an INSERT whose column list
// and value list differ in length.
type ColumnValueCountMismatchError struct {
	Columns int
	Values  int
}

func (e *ColumnValueCountMismatchError) Error() string {
	return fmt.Sprintf("column count (%d) does not match value count (%d)", e.Columns, e.Values)
}

type Engine struct {
	catalog    *catalog.Catalog
	onMutation func()
}

func New(cat *catalog.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// OnMutation registers a hook run after every successful mutating
// statement. The persistence layer uses it to trigger a save.
func (e *Engine) OnMutation(fn func()) {
	e.onMutation = fn
}

// Execute parses and runs a single command.
func (e *Engine) Execute(command string) (*Result, error) {
	stmtID := uuid.NewString()
	slog.Debug("executing statement",
		slog.String("statement_id", stmtID),
		slog.String("command", command),
	)

	stmt, err := parser.Parse(command)
	if err != nil {
		return nil, err
	}

	var res *Result
	mutated := false
	switch s := stmt.(type) {
	case *ast.CreateTableStatement:
		res, err = e.executeCreateTable(s)
		mutated = err == nil
	case *ast.InsertStatement:
		res, err = e.executeInsert(s)
		mutated = err == nil
	case *ast.SelectStatement:
		res, err = e.executeSelect(s)
	case *ast.UpdateStatement:
		res, err = e.executeUpdate(s)
		mutated = err == nil
	case *ast.DeleteStatement:
		res, err = e.executeDelete(s)
		mutated = err == nil
	default:
		err = fmt.Errorf("unsupported statement type: %T", stmt)
	}
	if err != nil {
		return nil, err
	}

	if mutated && e.onMutation != nil {
		e.onMutation()
	}
	return res, nil
}

func (e *Engine) executeCreateTable(stmt *ast.CreateTableStatement) (*Result, error) {
	columns := make([]schema.Column, len(stmt.Columns))
	for i, def := range stmt.Columns {
		typ, err := schema.ParseColumnType(def.Type)
		if err != nil {
			return nil, err
		}
		columns[i] = schema.Column{
			Name:       def.Name,
			Type:       typ,
			PrimaryKey: def.PrimaryKey,
			Unique:     def.Unique,
			Nullable:   !def.PrimaryKey,
		}
	}

	if _, err := e.catalog.CreateTable(stmt.Table, columns); err != nil {
		return nil, err
	}
	slog.Info("table created",
		slog.String("table", stmt.Table),
		slog.Int("columns", len(columns)),
	)
	return &Result{Message: fmt.Sprintf("CREATE TABLE %s", stmt.Table)}, nil
}

func (e *Engine) executeInsert(stmt *ast.InsertStatement) (*Result, error) {
	t, err := e.catalog.Get(stmt.Table)
	if err != nil {
		return nil, err
	}
	if len(stmt.Columns) != len(stmt.Values) {
		return nil, &ColumnValueCountMismatchError{
			Columns: len(stmt.Columns),
			Values:  len(stmt.Values),
		}
	}

	row := make(data.Row, len(stmt.Columns))
	for i, col := range stmt.Columns {
		row[col] = stmt.Values[i]
	}
	if err := t.Insert(row); err != nil {
		return nil, err
	}
	return &Result{Message: "INSERT 1"}, nil
}

func (e *Engine) executeUpdate(stmt *ast.UpdateStatement) (*Result, error) {
	t, err := e.catalog.Get(stmt.Table)
	if err != nil {
		return nil, err
	}
	pred, err := equalityPredicate(stmt.Where, "UPDATE")
	if err != nil {
		return nil, err
	}

	changes := make(data.Row, len(stmt.Set))
	for _, a := range stmt.Set {
		changes[a.Column] = a.Value
	}
	affected, err := t.Update(pred, changes)
	if err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("UPDATE %d", affected)}, nil
}

func (e *Engine) executeDelete(stmt *ast.DeleteStatement) (*Result, error) {
	t, err := e.catalog.Get(stmt.Table)
	if err != nil {
		return nil, err
	}
	pred, err := equalityPredicate(stmt.Where, "DELETE")
	if err != nil {
		return nil, err
	}

	affected, err := t.Delete(pred)
	if err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("DELETE %d", affected)}, nil
}

// equalityPredicate converts a WHERE condition into the table's
// equality predicate form. UPDATE and DELETE take equality conditions
// only.
func equalityPredicate(cond *ast.Condition, stmtKind string) (table.Predicate, error) {
	if cond.Op != ast.OpEqual {
		return nil, fmt.Errorf("%s supports only an equality WHERE condition", stmtKind)
	}
	return table.Predicate{cond.Column.Name: cond.Value}, nil
}
