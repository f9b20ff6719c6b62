// Package storage is the persistence shim around the core: one JSON
// snapshot file per table, rewritten wholesale after each mutating
// statement. It carries no query logic; load replays rows through the
// normal insert path so every index is rebuilt from scratch.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/loamdb/loam/internal/catalog"
	"github.com/loamdb/loam/internal/domain/data"
	"github.com/loamdb/loam/internal/domain/schema"
)

// tableSnapshot is the on-disk form of one table.
type tableSnapshot struct {
	Name    string          `json:"name"`
	Columns []schema.Column `json:"columns"`
	Rows    []data.Row      `json:"rows"`
}

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes every table to its snapshot file using temp + atomic
// rename, and removes snapshots of dropped tables.
func (s *Store) Save(cat *catalog.Catalog) error {
	names := cat.Names()
	live := make(map[string]bool, len(names))

	for _, name := range names {
		t, err := cat.Get(name)
		if err != nil {
			return err
		}

		refs := t.Rows()
		snap := tableSnapshot{
			Name:    name,
			Columns: t.Schema.Columns,
			Rows:    make([]data.Row, len(refs)),
		}
		for i, ref := range refs {
			snap.Rows[i] = *ref
		}

		payload, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal table %s: %w", name, err)
		}

		path := s.tablePath(name)
		tmpPath := path + ".tmp"
		if err := os.WriteFile(tmpPath, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write temp snapshot for %s: %w", name, err)
		}
		if err := os.Rename(tmpPath, path); err != nil {
			return fmt.Errorf("failed to replace snapshot for %s: %w", name, err)
		}
		live[filepath.Base(path)] = true

		slog.Debug("table saved",
			slog.String("table", name),
			slog.Int("row_count", len(snap.Rows)),
		)
	}

	// Drop snapshots whose tables no longer exist.
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".json") || live[ent.Name()] {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, ent.Name())); err != nil {
			return fmt.Errorf("failed to remove stale snapshot %s: %w", ent.Name(), err)
		}
	}

	slog.Info("database saved",
		slog.String("dir", s.dir),
		slog.Int("table_count", len(names)),
	)
	return nil
}

// Load restores every snapshot into the catalog.
func (s *Store) Load(cat *catalog.Catalog) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}

	loaded := 0
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".json") {
			continue
		}
		payload, err := os.ReadFile(filepath.Join(s.dir, ent.Name()))
		if err != nil {
			return fmt.Errorf("failed to read snapshot %s: %w", ent.Name(), err)
		}

		var snap tableSnapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			return fmt.Errorf("failed to decode snapshot %s: %w", ent.Name(), err)
		}

		t, err := cat.CreateTable(snap.Name, snap.Columns)
		if err != nil {
			return fmt.Errorf("failed to restore table %s: %w", snap.Name, err)
		}
		for _, row := range snap.Rows {
			if err := t.Insert(row); err != nil {
				return fmt.Errorf("failed to restore row in %s: %w", snap.Name, err)
			}
		}
		loaded++
	}

	slog.Info("database loaded",
		slog.String("dir", s.dir),
		slog.Int("table_count", loaded),
	)
	return nil
}

func (s *Store) tablePath(name string) string {
	return filepath.Join(s.dir, name+".json")
}
