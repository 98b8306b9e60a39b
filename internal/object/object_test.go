package object

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		obj      Object
		expected string
	}{
		{NIL, "Nil"},
		{TRUE, "Bool(true)"},
		{&Number{Value: 3}, "Number(3.0)"},
		{&Number{Value: -0.25}, "Number(-0.25)"},
		{&Number{Value: 1e21}, "Number(1000000000000000000000.0)"},
		{&Number{Value: math.Inf(1)}, "Number(inf)"},
		{&Number{Value: math.NaN()}, "Number(NaN)"},
		{&String{Value: "a\"b"}, `String("a\"b")`},
		{&Char{Value: 'c'}, "Char('c')"},
		{&Symbol{Name: "x"}, `Symbol("x")`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.obj.Inspect())
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "nil", Display(NIL))
	assert.Equal(t, "false", Display(FALSE))
	assert.Equal(t, "2.0", Display(&Number{Value: 2}))
	assert.Equal(t, `a"b`, Display(&String{Value: `a"b`}))
	assert.Equal(t, "é", Display(&Char{Value: 'é'}))
	assert.Equal(t, "x", Display(&Symbol{Name: "x"}))
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, IsTruthy(NIL))
	assert.False(t, IsTruthy(FALSE))
	assert.True(t, IsTruthy(TRUE))
	assert.False(t, IsTruthy(&Number{Value: 0}))
	assert.True(t, IsTruthy(&Number{Value: -1}))
	assert.False(t, IsTruthy(&String{}))
	assert.True(t, IsTruthy(&String{Value: "a"}))
	assert.False(t, IsTruthy(&Char{Value: 'a'}))
	assert.False(t, IsTruthy(&Symbol{Name: "a"}))
}

func TestOperators(t *testing.T) {
	one := &Number{Value: 1}
	two := &Number{Value: 2}
	str := &String{Value: "ab"}

	got, ok := Add(one, two)
	require.True(t, ok)
	assert.Equal(t, "Number(3.0)", got.Inspect())

	got, ok = Add(str, &String{Value: "c"})
	require.True(t, ok)
	assert.Equal(t, `String("abc")`, got.Inspect())

	_, ok = Add(one, str)
	assert.False(t, ok)
	_, ok = Sub(str, str)
	assert.False(t, ok)

	got, _ = Sub(one, two)
	assert.Equal(t, -1.0, got.(*Number).Value)
	got, _ = Mul(two, two)
	assert.Equal(t, 4.0, got.(*Number).Value)
	got, _ = Div(one, two)
	assert.Equal(t, 0.5, got.(*Number).Value)

	got, ok = Div(one, &Number{Value: 0})
	require.True(t, ok)
	assert.True(t, math.IsInf(got.(*Number).Value, 1))

	got, ok = Negate(two)
	require.True(t, ok)
	assert.Equal(t, -2.0, got.(*Number).Value)
	_, ok = Negate(TRUE)
	assert.False(t, ok)

	got, ok = Not(TRUE)
	require.True(t, ok)
	assert.Same(t, FALSE, got)
	_, ok = Not(one)
	assert.False(t, ok)
}

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()

	_, ok := env.Get("x")
	assert.False(t, ok)

	env.Define("x", &Number{Value: 1})
	env.Define("a", TRUE)
	env.Define("x", &String{Value: "later"})

	val, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, `String("later")`, val.Inspect())
	assert.Equal(t, 2, env.Bindings["x"].Count)
	assert.Equal(t, []string{"a", "x"}, env.Names())
	assert.Equal(t, 2, env.Len())
}
