package index

import (
	"testing"

	"github.com/loamdb/loam/internal/domain/data"
)

func TestHashIndexAddLookupRemove(t *testing.T) {
	ix := NewHashIndex("name", false)

	alice := &data.Row{"name": data.Text("alice")}
	bob := &data.Row{"name": data.Text("bob")}
	alice2 := &data.Row{"name": data.Text("alice")}

	ix.Add(data.Text("alice"), alice)
	ix.Add(data.Text("bob"), bob)
	ix.Add(data.Text("alice"), alice2)

	if got := ix.Lookup(data.Text("alice")); len(got) != 2 {
		t.Fatalf("expected 2 rows for alice, got %d", len(got))
	}
	if !ix.Contains(data.Text("bob")) {
		t.Error("expected bob bucket to exist")
	}
	if ix.Contains(data.Text("carol")) {
		t.Error("unexpected bucket for carol")
	}

	ix.Remove(data.Text("alice"), alice)
	got := ix.Lookup(data.Text("alice"))
	if len(got) != 1 || got[0] != alice2 {
		t.Fatalf("expected only the second alice row to remain")
	}

	ix.Remove(data.Text("alice"), alice2)
	if ix.Contains(data.Text("alice")) {
		t.Error("empty bucket should be removed")
	}
	if ix.Len() != 1 {
		t.Errorf("expected 1 distinct value, got %d", ix.Len())
	}
}

func TestHashIndexIgnoresNull(t *testing.T) {
	ix := NewHashIndex("k", true)
	row := &data.Row{}

	ix.Add(data.Null(), row)
	if ix.Len() != 0 {
		t.Error("null values must not be indexed")
	}
	ix.Remove(data.Null(), row) // must not panic
}
