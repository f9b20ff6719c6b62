package table

import (
	"github.com/loamdb/loam/internal/domain/data"
)

// Predicate is an equality predicate: every listed column must hold
// the given value.
type Predicate map[string]data.Value

// Select returns the rows matching every predicate field. An empty
// predicate returns all rows in storage order.
//
// Access path: among the predicate columns that have a hash index, the
// one with the fewest candidate rows is probed first and the remaining
// fields filter that candidate set. An indexed column with no matching
// bucket short-circuits to an empty result. With no indexed predicate
// column the select falls back to a full scan.
func (t *Table) Select(pred Predicate) []*data.Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectLocked(pred)
}

func (t *Table) selectLocked(pred Predicate) []*data.Row {
	if len(pred) == 0 {
		out := make([]*data.Row, len(t.rows))
		copy(out, t.rows)
		return out
	}

	candidates := t.rows
	indexed := false
	for col, val := range pred {
		ix, ok := t.hashes[col]
		if !ok {
			continue
		}
		bucket := ix.Lookup(val)
		if !indexed || len(bucket) < len(candidates) {
			candidates = bucket
			indexed = true
		}
	}
	if indexed && len(candidates) == 0 {
		return nil
	}

	var out []*data.Row
	for _, ref := range candidates {
		if matches(*ref, pred) {
			out = append(out, ref)
		}
	}
	return out
}

func matches(row data.Row, pred Predicate) bool {
	for col, want := range pred {
		if !row.Get(col).Equal(want) {
			return false
		}
	}
	return true
}

// The bounded selects delegate to the column's range index when one
// exists; otherwise they degrade to a linear scan with the equivalent
// comparison. That is the planner's only access-path decision.

func (t *Table) SelectGreaterThan(col string, bound float64) []*data.Row {
	return t.selectBounded(col, func(ri rangeQuerier) []*data.Row {
		return ri.GreaterThan(bound)
	}, func(n float64) bool { return n > bound })
}

func (t *Table) SelectGreaterOrEqual(col string, bound float64) []*data.Row {
	return t.selectBounded(col, func(ri rangeQuerier) []*data.Row {
		return ri.GreaterOrEqual(bound)
	}, func(n float64) bool { return n >= bound })
}

func (t *Table) SelectLessThan(col string, bound float64) []*data.Row {
	return t.selectBounded(col, func(ri rangeQuerier) []*data.Row {
		return ri.LessThan(bound)
	}, func(n float64) bool { return n < bound })
}

func (t *Table) SelectLessOrEqual(col string, bound float64) []*data.Row {
	return t.selectBounded(col, func(ri rangeQuerier) []*data.Row {
		return ri.LessOrEqual(bound)
	}, func(n float64) bool { return n <= bound })
}

// SelectBetween returns rows with lo <= value <= hi, both bounds
// inclusive.
func (t *Table) SelectBetween(col string, lo, hi float64) []*data.Row {
	return t.selectBounded(col, func(ri rangeQuerier) []*data.Row {
		return ri.Range(lo, hi)
	}, func(n float64) bool { return n >= lo && n <= hi })
}

type rangeQuerier interface {
	GreaterThan(float64) []*data.Row
	GreaterOrEqual(float64) []*data.Row
	LessThan(float64) []*data.Row
	LessOrEqual(float64) []*data.Row
	Range(float64, float64) []*data.Row
}

func (t *Table) selectBounded(col string, viaIndex func(rangeQuerier) []*data.Row, cmp func(float64) bool) []*data.Row {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if ri, ok := t.ranges[col]; ok {
		return viaIndex(ri)
	}
	var out []*data.Row
	for _, ref := range t.rows {
		if val := ref.Get(col); val.Kind == data.KindNumber && cmp(val.Num) {
			out = append(out, ref)
		}
	}
	return out
}
