package table

import (
	"log/slog"

	"github.com/loamdb/loam/internal/domain/data"
)

// Insert validates and stores a new row, then registers it with every
// applicable index. All constraint checks run before any mutation, so
// a failed insert leaves the table byte-for-byte unchanged.
func (t *Table) Insert(r data.Row) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row := r.Copy() // prevent mutation of caller's data

	if err := t.validateRow(row); err != nil {
		return err
	}

	// Uniqueness pre-check via the hash indexes, before the row is
	// appended anywhere.
	for col, ix := range t.hashes {
		val := row.Get(col)
		if val.IsNull() {
			continue
		}
		if ix.Unique && ix.Contains(val) {
			return NewUniqueViolation(t.Name, col, val.String())
		}
	}

	ref := &row
	t.rows = append(t.rows, ref)
	for col, ix := range t.hashes {
		ix.Add(row.Get(col), ref)
	}
	for col, ri := range t.ranges {
		if val := row.Get(col); val.Kind == data.KindNumber {
			ri.Insert(val.Num, ref)
		}
	}

	slog.Debug("row inserted",
		slog.String("table", t.Name),
		slog.Int("row_count", len(t.rows)),
	)
	return nil
}
