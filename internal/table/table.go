package table

import (
	"sync"

	"github.com/loamdb/loam/internal/domain/data"
	"github.com/loamdb/loam/internal/domain/schema"
	"github.com/loamdb/loam/internal/index"
)

// Table owns its rows and keeps every index consistent with the row
// store. Hash indexes exist for each primary-key/unique column, range
// indexes for each NUMBER column. Indexes hold *data.Row references
// into the same heap records the row store holds.
//
// The core runs single-writer; the RWMutex exists so the network shim
// can serve concurrent connections safely.
type Table struct {
	mu sync.RWMutex

	Name   string
	Schema *schema.TableSchema

	rows   []*data.Row
	hashes map[string]*index.HashIndex
	ranges map[string]*index.RangeIndex
}

// New builds an empty table, validating the schema and creating the
// automatic indexes. A primary-key column is implicitly NOT NULL.
func New(name string, columns []schema.Column) (*Table, error) {
	cols := make([]schema.Column, len(columns))
	copy(cols, columns)
	for i := range cols {
		if cols[i].PrimaryKey {
			cols[i].Nullable = false
		}
	}

	s := &schema.TableSchema{TableName: name, Columns: cols}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	t := &Table{
		Name:   name,
		Schema: s,
		hashes: make(map[string]*index.HashIndex),
		ranges: make(map[string]*index.RangeIndex),
	}
	for _, col := range cols {
		if col.PrimaryKey || col.Unique {
			t.hashes[col.Name] = index.NewHashIndex(col.Name, true)
		}
		if col.Type == schema.TypeNumber {
			t.ranges[col.Name] = index.NewRangeIndex(col.Name, index.DefaultOrder)
		}
	}
	return t, nil
}

// RowCount returns the number of stored rows.
func (t *Table) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Rows returns the rows in insertion order. The returned slice is a
// copy; the row records themselves are shared.
func (t *Table) Rows() []*data.Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*data.Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// RangeIndex exposes the range index for a numeric column, if any.
func (t *Table) RangeIndex(column string) (*index.RangeIndex, bool) {
	ri, ok := t.ranges[column]
	return ri, ok
}
