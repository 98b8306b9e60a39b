package object

import (
	"math"
	"strconv"
)

const (
	NIL_OBJ     = "Nil"
	BOOLEAN_OBJ = "Bool"
	NUMBER_OBJ  = "Number"
	STRING_OBJ  = "String"
	CHAR_OBJ    = "Char"
	SYMBOL_OBJ  = "Symbol"
)

var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type ObjectType string

// Object is a runtime value. Inspect renders the debug form the REPL echoes,
// e.g. Number(3.0) or String("ab").
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "Nil" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return "Bool(" + strconv.FormatBool(b.Value) + ")" }

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return "Number(" + FormatNumber(n.Value) + ")" }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return "String(" + strconv.Quote(s.Value) + ")" }

type Char struct {
	Value rune
}

func (c *Char) Type() ObjectType { return CHAR_OBJ }
func (c *Char) Inspect() string  { return "Char(" + strconv.QuoteRune(c.Value) + ")" }

// Symbol is the result of a def form: the name that was bound.
type Symbol struct {
	Name string
}

func (s *Symbol) Type() ObjectType { return SYMBOL_OBJ }
func (s *Symbol) Inspect() string  { return "Symbol(" + strconv.Quote(s.Name) + ")" }

func NativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// FormatNumber always shows a fractional part for finite values: 3 -> "3.0",
// 2.5 -> "2.5". Infinities and NaN print as inf, -inf and NaN.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if f == math.Trunc(f) {
		s += ".0"
	}
	return s
}

// Display is the plain rendering used by str: no type wrapper and no quotes.
func Display(obj Object) string {
	switch o := obj.(type) {
	case nil, *Nil:
		return "nil"
	case *Boolean:
		return strconv.FormatBool(o.Value)
	case *Number:
		return FormatNumber(o.Value)
	case *String:
		return o.Value
	case *Char:
		return string(o.Value)
	case *Symbol:
		return o.Name
	default:
		return obj.Inspect()
	}
}

// IsTruthy decides the branch taken by if, and and or.
func IsTruthy(obj Object) bool {
	switch o := obj.(type) {
	case nil, *Nil:
		return false
	case *Boolean:
		return o.Value
	case *Number:
		return o.Value != 0
	case *String:
		return o.Value != ""
	default:
		return false
	}
}
