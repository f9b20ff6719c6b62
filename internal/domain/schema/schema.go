package schema

import (
	"fmt"
	"strings"

	"github.com/loamdb/loam/internal/domain/data"
)

// ColumnType is the declared type of a column.
type ColumnType string

const (
	TypeText    ColumnType = "TEXT"
	TypeNumber  ColumnType = "NUMBER"
	TypeBoolean ColumnType = "BOOLEAN"
)

// UnsupportedTypeError is returned when a CREATE TABLE statement names
// a type the engine does not know.
type UnsupportedTypeError struct {
	Name string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported column type: %s", e.Name)
}

// ParseColumnType maps a type token from CREATE TABLE onto a ColumnType.
func ParseColumnType(tok string) (ColumnType, error) {
	switch strings.ToLower(tok) {
	case "text", "string":
		return TypeText, nil
	case "number", "int", "float":
		return TypeNumber, nil
	case "bool", "boolean":
		return TypeBoolean, nil
	}
	return "", &UnsupportedTypeError{Name: tok}
}

// Kind returns the value kind a cell of this column type must carry.
func (t ColumnType) Kind() data.Kind {
	switch t {
	case TypeText:
		return data.KindText
	case TypeNumber:
		return data.KindNumber
	case TypeBoolean:
		return data.KindBoolean
	}
	return data.KindNull
}

type Column struct {
	Name       string     `json:"name"`
	Type       ColumnType `json:"type"`
	PrimaryKey bool       `json:"primary_key"`
	Unique     bool       `json:"unique"`
	Nullable   bool       `json:"nullable"`
}

// TableSchema holds table metadata.
type TableSchema struct {
	TableName string   `json:"name"`
	Columns   []Column `json:"columns"`
}

// Validate enforces table-level schema invariants.
func (s *TableSchema) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", s.TableName)
	}
	pks := 0
	seen := make(map[string]bool, len(s.Columns))
	for _, col := range s.Columns {
		if seen[col.Name] {
			return fmt.Errorf("table %s: duplicate column %s", s.TableName, col.Name)
		}
		seen[col.Name] = true
		if col.PrimaryKey {
			pks++
		}
	}
	if pks > 1 {
		return fmt.Errorf("table %s: at most one primary key column allowed", s.TableName)
	}
	return nil
}

// Column returns the named column definition, if present.
func (s *TableSchema) Column(name string) (Column, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// PrimaryKey returns the primary key column, if the table has one.
func (s *TableSchema) PrimaryKey() (Column, bool) {
	for _, col := range s.Columns {
		if col.PrimaryKey {
			return col, true
		}
	}
	return Column{}, false
}
