package index

import (
	"sort"

	"github.com/loamdb/loam/internal/domain/data"
)

// DefaultOrder is the branching factor used for range indexes the
// table builds automatically.
const DefaultOrder = 8

// RangeIndex keeps a numeric column's values in sorted order and
// answers exact, greater/less-than and bounded-range queries in
// O(log n + k).
//
// It is an order-m B-tree: every node holds at most 2m-1 keys, every
// node except the root at least m-1. Each key maps to the list of rows
// holding that value, in insertion order, so duplicate column values
// share one key. Nodes live in an arena and reference each other by
// index; there are no parent pointers.
type RangeIndex struct {
	Column string

	order int
	nodes []node
	root  int
	size  int
}

type node struct {
	leaf     bool
	keys     []float64
	rows     [][]*data.Row
	children []int
}

// NewRangeIndex creates an empty index for column with branching
// factor m (orders below 2 fall back to DefaultOrder).
func NewRangeIndex(column string, m int) *RangeIndex {
	if m < 2 {
		m = DefaultOrder
	}
	return &RangeIndex{
		Column: column,
		order:  m,
		nodes:  []node{{leaf: true}},
	}
}

func (ri *RangeIndex) maxKeys() int { return 2*ri.order - 1 }

// Len returns the number of row references held by the index.
func (ri *RangeIndex) Len() int { return ri.size }

// Insert adds a row reference under key. An existing key gets the
// reference appended to its row list; equal keys are never reordered.
func (ri *RangeIndex) Insert(key float64, row *data.Row) {
	if len(ri.nodes[ri.root].keys) == ri.maxKeys() {
		// Root split: the only operation that grows tree height.
		oldRoot := ri.root
		ri.nodes = append(ri.nodes, node{children: []int{oldRoot}})
		ri.root = len(ri.nodes) - 1
		ri.splitChild(ri.root, 0)
	}
	ri.insertNonFull(ri.root, key, row)
	ri.size++
}

// insertNonFull descends from a node known to have spare capacity,
// splitting any full child before stepping into it. The preemptive
// split guarantees the descent never lands on a full node.
func (ri *RangeIndex) insertNonFull(ni int, key float64, row *data.Row) {
	for {
		n := &ri.nodes[ni]
		i := sort.SearchFloat64s(n.keys, key)
		if i < len(n.keys) && n.keys[i] == key {
			n.rows[i] = append(n.rows[i], row)
			return
		}
		if n.leaf {
			n.keys = append(n.keys, 0)
			copy(n.keys[i+1:], n.keys[i:])
			n.keys[i] = key
			n.rows = append(n.rows, nil)
			copy(n.rows[i+1:], n.rows[i:])
			n.rows[i] = []*data.Row{row}
			return
		}
		child := n.children[i]
		if len(ri.nodes[child].keys) == ri.maxKeys() {
			ri.splitChild(ni, i)
			n = &ri.nodes[ni] // arena may have been reallocated
			if n.keys[i] == key {
				n.rows[i] = append(n.rows[i], row)
				return
			}
			if key > n.keys[i] {
				i++
			}
			child = n.children[i]
		}
		ni = child
	}
}

// splitChild splits the full i-th child of parent around its median
// key, which moves up into the parent.
func (ri *RangeIndex) splitChild(parent, i int) {
	childIdx := ri.nodes[parent].children[i]
	child := ri.nodes[childIdx]
	mid := ri.order - 1
	midKey := child.keys[mid]
	midRows := child.rows[mid]

	right := node{leaf: child.leaf}
	right.keys = append([]float64(nil), child.keys[mid+1:]...)
	right.rows = append([][]*data.Row(nil), child.rows[mid+1:]...)
	if !child.leaf {
		right.children = append([]int(nil), child.children[mid+1:]...)
	}
	ri.nodes = append(ri.nodes, right)
	rightIdx := len(ri.nodes) - 1

	left := &ri.nodes[childIdx]
	left.keys = left.keys[:mid]
	left.rows = left.rows[:mid]
	if !left.leaf {
		left.children = left.children[:mid+1]
	}

	p := &ri.nodes[parent]
	p.keys = append(p.keys, 0)
	copy(p.keys[i+1:], p.keys[i:])
	p.keys[i] = midKey
	p.rows = append(p.rows, nil)
	copy(p.rows[i+1:], p.rows[i:])
	p.rows[i] = midRows
	p.children = append(p.children, 0)
	copy(p.children[i+2:], p.children[i+1:])
	p.children[i+1] = rightIdx
}

// Search returns the rows stored under an exact key, or nil.
func (ri *RangeIndex) Search(key float64) []*data.Row {
	ni := ri.root
	for {
		n := &ri.nodes[ni]
		i := sort.SearchFloat64s(n.keys, key)
		if i < len(n.keys) && n.keys[i] == key {
			return n.rows[i]
		}
		if n.leaf {
			return nil
		}
		ni = n.children[i]
	}
}

// Delete removes the single reference to row under key, matching by
// pointer identity. The tree is not rebalanced and the key stays in
// place even if its row list becomes empty; retained empty entries
// never affect query results.
func (ri *RangeIndex) Delete(key float64, row *data.Row) bool {
	ni := ri.root
	for {
		n := &ri.nodes[ni]
		i := sort.SearchFloat64s(n.keys, key)
		if i < len(n.keys) && n.keys[i] == key {
			for j, r := range n.rows[i] {
				if r == row {
					n.rows[i] = append(n.rows[i][:j], n.rows[i][j+1:]...)
					ri.size--
					return true
				}
			}
			return false
		}
		if n.leaf {
			return false
		}
		ni = n.children[i]
	}
}

func (ri *RangeIndex) GreaterThan(key float64) []*data.Row {
	return ri.scan(&key, nil, false, false)
}

func (ri *RangeIndex) GreaterOrEqual(key float64) []*data.Row {
	return ri.scan(&key, nil, true, false)
}

func (ri *RangeIndex) LessThan(key float64) []*data.Row {
	return ri.scan(nil, &key, false, false)
}

func (ri *RangeIndex) LessOrEqual(key float64) []*data.Row {
	return ri.scan(nil, &key, false, true)
}

// Range returns rows with min <= value <= max.
func (ri *RangeIndex) Range(min, max float64) []*data.Row {
	return ri.scan(&min, &max, true, true)
}

// AllSorted returns every row reference in key order.
func (ri *RangeIndex) AllSorted() []*data.Row {
	return ri.scan(nil, nil, false, false)
}

func (ri *RangeIndex) scan(lo, hi *float64, loIncl, hiIncl bool) []*data.Row {
	var out []*data.Row
	ri.collect(ri.root, lo, hi, loIncl, hiIncl, &out)
	return out
}

// collect walks the subtree in order, pruning subtrees that cannot
// intersect the bounds: a child left of a key at or below the lower
// bound holds only smaller values, and once a key reaches the upper
// bound nothing to its right can match.
func (ri *RangeIndex) collect(ni int, lo, hi *float64, loIncl, hiIncl bool, out *[]*data.Row) {
	n := &ri.nodes[ni]
	for i, k := range n.keys {
		if !n.leaf && (lo == nil || k > *lo) {
			ri.collect(n.children[i], lo, hi, loIncl, hiIncl, out)
		}
		if inBounds(k, lo, hi, loIncl, hiIncl) {
			*out = append(*out, n.rows[i]...)
		}
		if hi != nil && k >= *hi {
			return
		}
	}
	if !n.leaf {
		ri.collect(n.children[len(n.keys)], lo, hi, loIncl, hiIncl, out)
	}
}

func inBounds(k float64, lo, hi *float64, loIncl, hiIncl bool) bool {
	if lo != nil && (k < *lo || (k == *lo && !loIncl)) {
		return false
	}
	if hi != nil && (k > *hi || (k == *hi && !hiIncl)) {
		return false
	}
	return true
}
