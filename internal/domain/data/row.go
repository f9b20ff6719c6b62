package data

// Row is a single table row: column name → typed cell value.
//
// Rows are heap-allocated and shared by pointer between the table's row
// store and its indexes, so *Row identity is what "same row" means
// everywhere in the engine.
type Row map[string]Value

// Copy creates a deep copy of the row to prevent mutation of the
// caller's data.
func (r Row) Copy() Row {
	cp := make(Row, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// Get returns the cell for col. A missing column reads as Null.
func (r Row) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Null()
}
