package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/loamdb/loam/internal/catalog"
	"github.com/loamdb/loam/internal/domain/data"
	"github.com/loamdb/loam/internal/domain/schema"
	"github.com/loamdb/loam/internal/table"
)

func seedCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()

	users, err := cat.CreateTable("users", []schema.Column{
		{Name: "id", Type: schema.TypeNumber, PrimaryKey: true},
		{Name: "name", Type: schema.TypeText, Nullable: true},
	})
	if err != nil {
		t.Fatalf("create users: %v", err)
	}
	for i, name := range []string{"Ada", "Grace"} {
		row := data.Row{"id": data.Number(float64(i + 1)), "name": data.Text(name)}
		if err := users.Insert(row); err != nil {
			t.Fatalf("insert user: %v", err)
		}
	}

	amounts, err := cat.CreateTable("amounts", []schema.Column{
		{Name: "v", Type: schema.TypeNumber, Nullable: true},
	})
	if err != nil {
		t.Fatalf("create amounts: %v", err)
	}
	for _, v := range []float64{500, 1500, 250} {
		if err := amounts.Insert(data.Row{"v": data.Number(v)}); err != nil {
			t.Fatalf("insert amount: %v", err)
		}
	}
	return cat
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.Save(seedCatalog(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, name := range []string{"users.json", "amounts.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected snapshot %s: %v", name, err)
		}
	}

	restored := catalog.New()
	if err := store.Load(restored); err != nil {
		t.Fatalf("load: %v", err)
	}

	users, err := restored.Get("users")
	if err != nil {
		t.Fatalf("restored users missing: %v", err)
	}
	if users.RowCount() != 2 {
		t.Errorf("users row count = %d, want 2", users.RowCount())
	}
	pk, ok := users.Schema.PrimaryKey()
	if !ok || pk.Name != "id" {
		t.Error("primary key column not restored")
	}

	// Indexes are rebuilt through the normal insert path.
	rows := users.Select(table.Predicate{"id": data.Number(2)})
	if len(rows) != 1 || rows[0].Get("name") != data.Text("Grace") {
		t.Errorf("indexed lookup after load returned %v", rows)
	}

	amounts, err := restored.Get("amounts")
	if err != nil {
		t.Fatalf("restored amounts missing: %v", err)
	}
	if got := amounts.SelectBetween("v", 300, 2000); len(got) != 2 {
		t.Errorf("range query after load returned %d rows, want 2", len(got))
	}
}

func TestSaveRemovesStaleSnapshots(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	cat := seedCatalog(t)
	if err := store.Save(cat); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := cat.Drop("amounts"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if err := store.Save(cat); err != nil {
		t.Fatalf("second save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "amounts.json")); !os.IsNotExist(err) {
		t.Error("dropped table's snapshot should be removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "users.json")); err != nil {
		t.Errorf("live snapshot must survive: %v", err)
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	cat := catalog.New()
	if err := store.Load(cat); err != nil {
		t.Fatalf("load of empty directory must succeed: %v", err)
	}
	if len(cat.Names()) != 0 {
		t.Errorf("expected no tables, got %v", cat.Names())
	}
}
