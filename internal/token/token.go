package token

import (
	"fmt"
	"sort"
	"strconv"
)

type TokenType string

const (
	ILLEGAL = "ILLEGAL" // TokenError, the literal carries the diagnostic
	EOF     = "EOF"

	// Delimiters
	SPACE   = "SPACE"
	NEWLINE = "NEWLINE"
	LPAREN  = "("
	RPAREN  = ")"

	// Binary operators
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"

	// Unary operators
	TILDE = "~" // numeric negation
	BANG  = "!" // boolean not

	// Identifiers + literals
	IDENT  = "IDENT"  // add, foobar, x, y, ...
	NUMBER = "NUMBER" // 1343456, 1.5
	STRING = "STRING" // "foobar"
	CHAR   = "CHAR"   // 'a'

	// Keywords
	IF     = "IF"
	ELSE   = "ELSE"
	ELSEIF = "ELSEIF"
	DEF    = "DEF"
	LET    = "LET"
	TRUE   = "TRUE"
	FALSE  = "FALSE"
	AND    = "AND"
	OR     = "OR"
	NIL    = "NIL"
)

type Token struct {
	Type     TokenType
	Literal  string
	Position int // the src index of the token
}

var keywords = map[string]TokenType{
	// constants
	"nil":   NIL,
	"true":  TRUE,
	"false": FALSE,

	// declarations
	"def": DEF,
	"let": LET,

	// flow control
	"if":     IF,
	"else":   ELSE,
	"elseif": ELSEIF,
	"and":    AND,
	"or":     OR,
}

var names = map[TokenType]string{
	ILLEGAL:  "TokenError",
	EOF:      "EndOfInput",
	SPACE:    "Space",
	NEWLINE:  "NewLine",
	LPAREN:   "LParen",
	RPAREN:   "RParen",
	PLUS:     "Add",
	MINUS:    "Sub",
	ASTERISK: "Mul",
	SLASH:    "Div",
	TILDE:    "Neg",
	BANG:     "Not",
	IDENT:    "Identifier",
	NUMBER:   "Number",
	STRING:   "String",
	CHAR:     "Char",
	TRUE:     "Bool",
	FALSE:    "Bool",
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords lists the reserved spellings in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// IsKeyword reports whether the spelling belongs to the reserved keyword set.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// Name is the variant name used in diagnostics, e.g. "LParen" or "Add".
func (t TokenType) Name() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "Keyword"
}

func (t TokenType) IsLayout() bool { return t == SPACE || t == NEWLINE }

func (t TokenType) IsDelimiter() bool {
	switch t {
	case SPACE, NEWLINE, LPAREN, RPAREN, EOF:
		return true
	}
	return false
}

func (t TokenType) IsBinaryOp() bool {
	switch t {
	case PLUS, MINUS, ASTERISK, SLASH:
		return true
	}
	return false
}

func (t TokenType) IsUnaryOp() bool { return t == TILDE || t == BANG }

// IsLiteral holds for TRUE and FALSE too: they are keywords that double as
// the boolean literal.
func (t TokenType) IsLiteral() bool {
	switch t {
	case NUMBER, STRING, CHAR, TRUE, FALSE:
		return true
	}
	return false
}

func (t TokenType) IsKeyword() bool {
	switch t {
	case IF, ELSE, ELSEIF, DEF, LET, TRUE, FALSE, AND, OR, NIL:
		return true
	}
	return false
}

// String renders the token in its variant form: LParen, Number("1"),
// Keyword(if), TokenError("unexpected char '@'").
func (t Token) String() string {
	switch {
	case t.Type == ILLEGAL, t.Type == IDENT, t.Type == NUMBER, t.Type == STRING, t.Type == CHAR:
		return fmt.Sprintf("%s(%s)", t.Type.Name(), strconv.Quote(t.Literal))
	case t.Type == TRUE || t.Type == FALSE:
		return fmt.Sprintf("Bool(%s)", t.Literal)
	case t.Type.IsKeyword():
		return fmt.Sprintf("Keyword(%s)", t.Literal)
	default:
		return t.Type.Name()
	}
}
