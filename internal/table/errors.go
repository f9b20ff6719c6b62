package table

import (
	"fmt"
	"strings"
)

// ConstraintError represents a violation of a table constraint
// (unique, not null, type mismatch).
type ConstraintError struct {
	Table      string
	Column     string
	Value      interface{} // offending value (may be nil)
	Constraint string      // "unique", "not_null", "type_mismatch"
	Reason     string
}

func (e *ConstraintError) Error() string {
	parts := []string{fmt.Sprintf("constraint violation in %s.%s", e.Table, e.Column)}
	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	return strings.Join(parts, " - ")
}

const (
	ConstraintUnique       = "unique"
	ConstraintNotNull      = "not_null"
	ConstraintTypeMismatch = "type_mismatch"
)

func NewUniqueViolation(table, column string, value interface{}) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Value:      value,
		Constraint: ConstraintUnique,
		Reason:     "duplicate value",
	}
}

func NewNotNullViolation(table, column string) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Constraint: ConstraintNotNull,
		Reason:     "missing required value",
	}
}

func NewTypeMismatch(table, column string, value interface{}, expected string) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Value:      value,
		Constraint: ConstraintTypeMismatch,
		Reason:     fmt.Sprintf("expected type %s", expected),
	}
}
