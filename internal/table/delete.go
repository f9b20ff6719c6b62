package table

import (
	"log/slog"

	"github.com/loamdb/loam/internal/domain/data"
)

// Delete removes every row matching the predicate: first from every
// hash and range index (under the row's pre-delete values), then from
// the row store by pointer identity.
func (t *Table) Delete(pred Predicate) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	matched := t.selectLocked(pred)
	if len(matched) == 0 {
		return 0, nil
	}

	doomed := make(map[*data.Row]bool, len(matched))
	for _, ref := range matched {
		for col, ix := range t.hashes {
			ix.Remove(ref.Get(col), ref)
		}
		for col, ri := range t.ranges {
			if val := ref.Get(col); val.Kind == data.KindNumber {
				ri.Delete(val.Num, ref)
			}
		}
		doomed[ref] = true
	}

	kept := t.rows[:0]
	for _, ref := range t.rows {
		if !doomed[ref] {
			kept = append(kept, ref)
		}
	}
	t.rows = kept

	slog.Debug("rows deleted",
		slog.String("table", t.Name),
		slog.Int("affected", len(matched)),
	)
	return len(matched), nil
}
