package lexer

import (
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `SELECT * FROM users u LEFT JOIN orders o ON u.id = o.user_id WHERE total >= -12.5;`

	tests := []struct {
		wantType    TokenType
		wantLiteral string
	}{
		{SELECT, "SELECT"},
		{ASTERISK, "*"},
		{FROM, "FROM"},
		{IDENTIFIER, "users"},
		{IDENTIFIER, "u"},
		{LEFT, "LEFT"},
		{JOIN, "JOIN"},
		{IDENTIFIER, "orders"},
		{IDENTIFIER, "o"},
		{ON, "ON"},
		{IDENTIFIER, "u"},
		{DOT, "."},
		{IDENTIFIER, "id"},
		{EQUALS, "="},
		{IDENTIFIER, "o"},
		{DOT, "."},
		{IDENTIFIER, "user_id"},
		{WHERE, "WHERE"},
		{IDENTIFIER, "total"},
		{GTE, ">="},
		{NUMBER, "-12.5"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("token %d: type=%d, want %d (literal %q)", i, tok.Type, tt.wantType, tok.Literal)
		}
		if tok.Literal != tt.wantLiteral {
			t.Fatalf("token %d: literal=%q, want %q", i, tok.Literal, tt.wantLiteral)
		}
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	tokens, err := Tokenize("select From wHeRe between")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	want := []TokenType{SELECT, FROM, WHERE, BETWEEN}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("token %d: type=%d, want %d", i, tokens[i].Type, tt)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tokens, err := Tokenize(`'single' "double"`)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	for i, want := range []string{"single", "double"} {
		if tokens[i].Type != STRING || tokens[i].Literal != want {
			t.Errorf("token %d: got (%d, %q), want (STRING, %q)", i, tokens[i].Type, tokens[i].Literal, want)
		}
	}
}

func TestIllegalToken(t *testing.T) {
	if _, err := Tokenize("SELECT @ FROM t"); err == nil {
		t.Fatal("expected error for illegal character")
	}
}
