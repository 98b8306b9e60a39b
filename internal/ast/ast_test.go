package ast

import (
	"sexpr/internal/token"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	one := &Literal{Kind: NumberLit, Value: "1"}
	x := &Identifier{Name: "x"}

	tests := []struct {
		node     Node
		expected string
	}{
		{one, "1"},
		{&Literal{Kind: StringLit, Value: "a\"b\n"}, `"a\"b\n"`},
		{&Literal{Kind: CharLit, Value: "'"}, `'\''`},
		{&Literal{Kind: BoolLit, Value: "false"}, "false"},
		{&Nil{}, "nil"},
		{&BinaryOp{Op: token.SLASH, Left: one, Right: x}, "(/ 1 x)"},
		{&UnaryOp{Op: token.TILDE, Operand: one}, "(~ 1)"},
		{&FunctionCall{Name: "len", Argument: x}, "(len x)"},
		{&Let{Keyword: token.DEF, Name: "x", Value: one}, "(def x 1)"},
		{&Logical{Op: token.OR, Left: x, Right: one}, "(or x 1)"},
		{&If{Condition: x, Then: one}, "(if x 1)"},
		{&If{Condition: x, Then: one, Else: &Nil{}}, "(if x 1 nil)"},
		{&TokenError{Token: token.Token{Type: token.ILLEGAL, Literal: "empty char literal"}}, "empty char literal"},
		{&TokenError{Token: token.Token{Type: token.RPAREN, Literal: ")"}}, "unexpected token RParen"},
		{&ParserError{Message: "boom", Partial: x}, "boom in x"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.node.String())
	}
}

func TestHasErrors(t *testing.T) {
	bad := &TokenError{Token: token.Token{Type: token.EOF}}
	one := &Literal{Kind: NumberLit, Value: "1"}

	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors(&BinaryOp{Op: token.PLUS, Left: one, Right: one}))
	assert.True(t, HasErrors(bad))
	assert.True(t, HasErrors(&BinaryOp{Op: token.PLUS, Left: one, Right: bad}))
	assert.True(t, HasErrors(&If{Condition: one, Then: one, Else: &UnaryOp{Op: token.BANG, Operand: bad}}))
	assert.True(t, HasErrors(&ParserError{Message: "x"}))
	assert.False(t, HasErrors(&If{Condition: one, Then: one}))
}
