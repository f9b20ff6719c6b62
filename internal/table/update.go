package table

import (
	"log/slog"

	"github.com/loamdb/loam/internal/domain/data"
)

// Update applies the change set to every row matching the predicate
// and returns the affected count. Each touched row is removed from all
// indexes under its pre-update values, mutated in place, and
// reinserted under its post-update values, so hash and range indexes
// stay consistent across value changes.
func (t *Table) Update(pred Predicate, changes data.Row) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.validateChanges(changes); err != nil {
		return 0, err
	}

	matched := t.selectLocked(pred)
	for _, ref := range matched {
		old := ref.Copy()

		for col, ix := range t.hashes {
			ix.Remove(old.Get(col), ref)
		}
		for col, ri := range t.ranges {
			if val := old.Get(col); val.Kind == data.KindNumber {
				ri.Delete(val.Num, ref)
			}
		}

		for col, val := range changes {
			(*ref)[col] = val
		}

		for col, ix := range t.hashes {
			ix.Add(ref.Get(col), ref)
		}
		for col, ri := range t.ranges {
			if val := ref.Get(col); val.Kind == data.KindNumber {
				ri.Insert(val.Num, ref)
			}
		}
	}

	slog.Debug("rows updated",
		slog.String("table", t.Name),
		slog.Int("affected", len(matched)),
	)
	return len(matched), nil
}
