package table

import (
	"github.com/loamdb/loam/internal/domain/data"
)

// validateRow checks a candidate row against the schema: every
// non-nullable column must carry a value, and every present value must
// match its column's declared type.
func (t *Table) validateRow(row data.Row) error {
	for _, col := range t.Schema.Columns {
		val, exists := row[col.Name]

		if !exists || val.IsNull() {
			if !col.Nullable {
				return NewNotNullViolation(t.Name, col.Name)
			}
			continue
		}

		if val.Kind != col.Type.Kind() {
			return NewTypeMismatch(t.Name, col.Name, val.String(), string(col.Type))
		}
	}
	return nil
}

// validateChanges checks an UPDATE change set: the columns must exist
// and the new values must be type-compatible (Null allowed only on
// nullable columns).
func (t *Table) validateChanges(changes data.Row) error {
	for name, val := range changes {
		col, ok := t.Schema.Column(name)
		if !ok {
			return &ConstraintError{
				Table:      t.Name,
				Column:     name,
				Constraint: ConstraintTypeMismatch,
				Reason:     "unknown column",
			}
		}
		if val.IsNull() {
			if !col.Nullable {
				return NewNotNullViolation(t.Name, col.Name)
			}
			continue
		}
		if val.Kind != col.Type.Kind() {
			return NewTypeMismatch(t.Name, col.Name, val.String(), string(col.Type))
		}
	}
	return nil
}
