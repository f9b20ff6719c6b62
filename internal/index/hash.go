package index

import (
	"github.com/loamdb/loam/internal/domain/data"
)

// HashIndex is an in-memory equality index on a single column:
// cell value → rows holding that value, in insertion order.
type HashIndex struct {
	Column  string
	Unique  bool
	buckets map[data.Value][]*data.Row
}

func NewHashIndex(column string, unique bool) *HashIndex {
	return &HashIndex{
		Column:  column,
		Unique:  unique,
		buckets: make(map[data.Value][]*data.Row),
	}
}

// Lookup returns the rows indexed under val, or nil.
func (ix *HashIndex) Lookup(val data.Value) []*data.Row {
	return ix.buckets[val]
}

// Contains reports whether any row is indexed under val.
func (ix *HashIndex) Contains(val data.Value) bool {
	return len(ix.buckets[val]) > 0
}

// Add indexes row under val. Null values are never indexed.
func (ix *HashIndex) Add(val data.Value, row *data.Row) {
	if val.IsNull() {
		return
	}
	ix.buckets[val] = append(ix.buckets[val], row)
}

// Remove drops the reference to row from val's bucket, matching by
// pointer identity. Empty buckets are deleted.
func (ix *HashIndex) Remove(val data.Value, row *data.Row) {
	if val.IsNull() {
		return
	}
	bucket := ix.buckets[val]
	for i, r := range bucket {
		if r == row {
			ix.buckets[val] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(ix.buckets[val]) == 0 {
		delete(ix.buckets, val)
	}
}

// Len returns the number of distinct indexed values.
func (ix *HashIndex) Len() int {
	return len(ix.buckets)
}
