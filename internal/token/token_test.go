package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"let", LET},
		{"def", DEF},
		{"elseif", ELSEIF},
		{"true", TRUE},
		{"nil", NIL},
		{"Let", IDENT},
		{"lets", IDENT},
		{"x", IDENT},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, LookupIdent(tt.input), tt.input)
	}
	assert.True(t, IsKeyword("or"))
	assert.False(t, IsKeyword("println"))
}

func TestKeywordsSorted(t *testing.T) {
	assert.Equal(t,
		[]string{"and", "def", "else", "elseif", "false", "if", "let", "nil", "or", "true"},
		Keywords())
}

func TestCategories(t *testing.T) {
	tests := []struct {
		typ                                            TokenType
		layout, delimiter, binary, unary, literal, kwd bool
	}{
		{SPACE, true, true, false, false, false, false},
		{NEWLINE, true, true, false, false, false, false},
		{LPAREN, false, true, false, false, false, false},
		{EOF, false, true, false, false, false, false},
		{MINUS, false, false, true, false, false, false},
		{BANG, false, false, false, true, false, false},
		{NUMBER, false, false, false, false, true, false},
		{TRUE, false, false, false, false, true, true},
		{IF, false, false, false, false, false, true},
		{IDENT, false, false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.layout, tt.typ.IsLayout())
			assert.Equal(t, tt.delimiter, tt.typ.IsDelimiter())
			assert.Equal(t, tt.binary, tt.typ.IsBinaryOp())
			assert.Equal(t, tt.unary, tt.typ.IsUnaryOp())
			assert.Equal(t, tt.literal, tt.typ.IsLiteral())
			assert.Equal(t, tt.kwd, tt.typ.IsKeyword())
		})
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Type: LPAREN, Literal: "("}, "LParen"},
		{Token{Type: EOF}, "EndOfInput"},
		{Token{Type: SLASH, Literal: "/"}, "Div"},
		{Token{Type: NUMBER, Literal: "1"}, `Number("1")`},
		{Token{Type: IDENT, Literal: "x"}, `Identifier("x")`},
		{Token{Type: FALSE, Literal: "false"}, "Bool(false)"},
		{Token{Type: IF, Literal: "if"}, "Keyword(if)"},
		{Token{Type: ILLEGAL, Literal: "unexpected char '@'"}, `TokenError("unexpected char '@'")`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.tok.String())
	}
}
