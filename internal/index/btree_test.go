package index

import (
	"sort"
	"testing"

	"github.com/loamdb/loam/internal/domain/data"
)

func numberedRow(n float64) *data.Row {
	r := data.Row{"n": data.Number(n)}
	return &r
}

func keysOf(rows []*data.Row) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Get("n").Num
	}
	return out
}

func TestRangeIndexInsertSearch(t *testing.T) {
	// Order 2 keeps nodes tiny so splits happen early and often.
	ri := NewRangeIndex("n", 2)

	// 37 is coprime with 100, so this visits every value once in a
	// scrambled order.
	for i := 0; i < 100; i++ {
		k := float64((i * 37) % 100)
		ri.Insert(k, numberedRow(k))
	}

	if ri.Len() != 100 {
		t.Fatalf("expected 100 row refs, got %d", ri.Len())
	}

	for k := 0.0; k < 100; k++ {
		rows := ri.Search(k)
		if len(rows) != 1 {
			t.Fatalf("search(%v): expected 1 row, got %d", k, len(rows))
		}
		if got := rows[0].Get("n").Num; got != k {
			t.Errorf("search(%v): got row with n=%v", k, got)
		}
	}

	if rows := ri.Search(100.5); len(rows) != 0 {
		t.Errorf("search for absent key returned %d rows", len(rows))
	}
}

func TestRangeIndexDuplicateKeysKeepInsertionOrder(t *testing.T) {
	ri := NewRangeIndex("n", 2)

	first := numberedRow(7)
	second := numberedRow(7)
	third := numberedRow(7)
	ri.Insert(7, first)
	ri.Insert(5, numberedRow(5))
	ri.Insert(7, second)
	ri.Insert(9, numberedRow(9))
	ri.Insert(7, third)

	rows := ri.Search(7)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows under key 7, got %d", len(rows))
	}
	if rows[0] != first || rows[1] != second || rows[2] != third {
		t.Error("duplicate rows are not in insertion order")
	}
}

func TestRangeIndexAllSorted(t *testing.T) {
	ri := NewRangeIndex("n", 3)
	input := []float64{42, 7, 19, 7, 88, 3, 42, 61, 0, 55}
	for _, k := range input {
		ri.Insert(k, numberedRow(k))
	}

	got := keysOf(ri.AllSorted())
	if len(got) != len(input) {
		t.Fatalf("expected %d rows, got %d", len(input), len(got))
	}
	if !sort.Float64sAreSorted(got) {
		t.Errorf("AllSorted returned unsorted keys: %v", got)
	}
}

func TestRangeIndexBoundedQueries(t *testing.T) {
	ri := NewRangeIndex("n", 2)
	var all []float64
	for i := 0; i < 60; i++ {
		k := float64((i * 23) % 60)
		all = append(all, k)
		ri.Insert(k, numberedRow(k))
	}

	expect := func(pred func(float64) bool) []float64 {
		var out []float64
		for _, k := range all {
			if pred(k) {
				out = append(out, k)
			}
		}
		sort.Float64s(out)
		return out
	}
	check := func(name string, got []*data.Row, want []float64) {
		t.Helper()
		keys := keysOf(got)
		sort.Float64s(keys)
		if len(keys) != len(want) {
			t.Fatalf("%s: expected %d rows, got %d", name, len(want), len(keys))
		}
		for i := range keys {
			if keys[i] != want[i] {
				t.Fatalf("%s: result mismatch at %d: got %v want %v", name, i, keys[i], want[i])
			}
		}
	}

	check("GreaterThan(30)", ri.GreaterThan(30), expect(func(k float64) bool { return k > 30 }))
	check("GreaterOrEqual(30)", ri.GreaterOrEqual(30), expect(func(k float64) bool { return k >= 30 }))
	check("LessThan(12)", ri.LessThan(12), expect(func(k float64) bool { return k < 12 }))
	check("LessOrEqual(12)", ri.LessOrEqual(12), expect(func(k float64) bool { return k <= 12 }))
	check("Range(10,40)", ri.Range(10, 40), expect(func(k float64) bool { return k >= 10 && k <= 40 }))
	check("Range(59,59)", ri.Range(59, 59), expect(func(k float64) bool { return k == 59 }))
}

func TestRangeIndexEmpty(t *testing.T) {
	ri := NewRangeIndex("n", 2)

	if rows := ri.Search(1); len(rows) != 0 {
		t.Error("search on empty index should return nothing")
	}
	if rows := ri.Range(0, 100); len(rows) != 0 {
		t.Error("range on empty index should return nothing")
	}
	if rows := ri.AllSorted(); len(rows) != 0 {
		t.Error("AllSorted on empty index should return nothing")
	}
	if ri.Delete(1, numberedRow(1)) {
		t.Error("delete on empty index should report false")
	}
}

func TestRangeIndexDelete(t *testing.T) {
	ri := NewRangeIndex("n", 2)

	a := numberedRow(5)
	b := numberedRow(5)
	ri.Insert(5, a)
	ri.Insert(5, b)
	for i := 0; i < 20; i++ {
		ri.Insert(float64(i+10), numberedRow(float64(i+10)))
	}

	if !ri.Delete(5, a) {
		t.Fatal("expected delete of existing ref to succeed")
	}
	rows := ri.Search(5)
	if len(rows) != 1 || rows[0] != b {
		t.Fatalf("expected only second ref to remain, got %d rows", len(rows))
	}

	if !ri.Delete(5, b) {
		t.Fatal("expected delete of remaining ref to succeed")
	}
	// The key stays in the tree with an empty row list; it must not
	// surface in any query.
	if rows := ri.Search(5); len(rows) != 0 {
		t.Errorf("deleted key still returns %d rows", len(rows))
	}
	if keys := keysOf(ri.Range(0, 9)); len(keys) != 0 {
		t.Errorf("range over emptied key returned %v", keys)
	}

	if ri.Delete(5, a) {
		t.Error("double delete should report false")
	}
}
