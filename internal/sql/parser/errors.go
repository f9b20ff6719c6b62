package parser

import "fmt"

// SyntaxError reports a statement that does not match its expected
// grammar, naming the form the parser wanted.
type SyntaxError struct {
	Statement string // "CREATE TABLE", "SELECT", ...
	Expected  string
	Got       string
}

func (e *SyntaxError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("syntax error in %s: expected %s", e.Statement, e.Expected)
	}
	return fmt.Sprintf("syntax error in %s: expected %s, got %q", e.Statement, e.Expected, e.Got)
}

// UnknownStatementError reports a command whose leading keyword is not
// one of the five statement kinds.
type UnknownStatementError struct {
	Keyword string
}

func (e *UnknownStatementError) Error() string {
	return fmt.Sprintf("unknown statement: %s", e.Keyword)
}

// MissingWhereClauseError reports an UPDATE or DELETE without a WHERE
// clause; full-table mutation must be explicit and is not supported.
type MissingWhereClauseError struct {
	Statement string
}

func (e *MissingWhereClauseError) Error() string {
	return fmt.Sprintf("%s requires a WHERE clause", e.Statement)
}

// UnsupportedWhereClauseError reports boolean composition (AND/OR) in
// a WHERE or ON clause; a single comparison is the supported shape.
type UnsupportedWhereClauseError struct{}

func (e *UnsupportedWhereClauseError) Error() string {
	return "unsupported WHERE clause: only a single condition is allowed"
}
