// Package catalog owns the set of named tables. Tables are created by
// CREATE TABLE, destroyed on drop, and handed out by name to the
// statement processor and the persistence layer.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/loamdb/loam/internal/domain/schema"
	"github.com/loamdb/loam/internal/table"
)

type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table not found: %s", e.Name)
}

type TableExistsError struct {
	Name string
}

func (e *TableExistsError) Error() string {
	return fmt.Sprintf("table already exists: %s", e.Name)
}

type Catalog struct {
	mu     sync.RWMutex
	tables map[string]*table.Table
}

func New() *Catalog {
	return &Catalog{tables: make(map[string]*table.Table)}
}

func (c *Catalog) CreateTable(name string, columns []schema.Column) (*table.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tables[name]; exists {
		return nil, &TableExistsError{Name: name}
	}
	t, err := table.New(name, columns)
	if err != nil {
		return nil, err
	}
	c.tables[name] = t
	return t, nil
}

func (c *Catalog) Get(name string) (*table.Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[name]
	if !ok {
		return nil, &TableNotFoundError{Name: name}
	}
	return t, nil
}

func (c *Catalog) Drop(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[name]; !ok {
		return &TableNotFoundError{Name: name}
	}
	delete(c.tables, name)
	return nil
}

// Names returns the table names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
