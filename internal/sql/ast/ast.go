// Package ast holds the structured form of parsed statements. One
// struct per statement kind; the executor switches over Statement.
package ast

import (
	"github.com/loamdb/loam/internal/domain/data"
)

type Statement interface {
	statementNode()
}

// ColumnRef names a column, optionally qualified by a table alias
// ("alias.column"). A bare reference has an empty Qualifier.
type ColumnRef struct {
	Qualifier string
	Name      string
}

func (c ColumnRef) String() string {
	if c.Qualifier == "" {
		return c.Name
	}
	return c.Qualifier + "." + c.Name
}

type CompareOp int

const (
	OpEqual CompareOp = iota
	OpGreater
	OpGreaterOrEqual
	OpLess
	OpLessOrEqual
	OpBetween
)

// Condition is a single WHERE comparison. Boolean composition is not
// supported. High is only set for OpBetween.
type Condition struct {
	Column ColumnRef
	Op     CompareOp
	Value  data.Value
	High   data.Value
}

// ColumnDef is one column definition in CREATE TABLE. Type is the raw
// type token; the executor maps it onto a schema type.
type ColumnDef struct {
	Name       string
	Type       string
	PrimaryKey bool
	Unique     bool
}

type CreateTableStatement struct {
	Table   string
	Columns []ColumnDef
}

func (*CreateTableStatement) statementNode() {}

type InsertStatement struct {
	Table   string
	Columns []string
	Values  []data.Value
}

func (*InsertStatement) statementNode() {}

type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
)

func (k JoinKind) String() string {
	switch k {
	case JoinLeft:
		return "LEFT"
	case JoinRight:
		return "RIGHT"
	}
	return "INNER"
}

type JoinClause struct {
	Kind     JoinKind
	Table    string
	Alias    string
	LeftKey  ColumnRef
	RightKey ColumnRef
}

type SelectStatement struct {
	Star       bool
	Projection []ColumnRef // empty when Star
	Table      string
	Alias      string
	Join       *JoinClause
	Where      *Condition
}

func (*SelectStatement) statementNode() {}

type Assignment struct {
	Column string
	Value  data.Value
}

type UpdateStatement struct {
	Table string
	Set   []Assignment
	Where *Condition
}

func (*UpdateStatement) statementNode() {}

type DeleteStatement struct {
	Table string
	Where *Condition
}

func (*DeleteStatement) statementNode() {}
