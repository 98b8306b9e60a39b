package parser

import (
	"encoding/json"
	"sexpr/internal/ast"
	"sexpr/internal/lexer"
	"sexpr/internal/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(v string) *ast.Literal { return &ast.Literal{Kind: ast.NumberLit, Value: v} }
func ident(n string) *ast.Identifier { return &ast.Identifier{Name: n} }

func TestParseBinaryOp(t *testing.T) {
	got := Parse("(+ 1 2)")
	want := &ast.BinaryOp{Op: token.PLUS, Left: num("1"), Right: num("2")}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
	assert.False(t, ast.HasErrors(got))
}

func TestParseMissingCloseParen(t *testing.T) {
	got := Parse("(+ 1")
	want := &ast.ParserError{
		Message:  "unexpected token EndOfInput, expected RParen",
		Position: 4,
		Partial: &ast.BinaryOp{
			Op:    token.PLUS,
			Left:  num("1"),
			Right: &ast.TokenError{Token: token.Token{Type: token.EOF, Position: 4}},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestParseForms(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Node
	}{
		{"42", num("42")},
		{`"hi"`, &ast.Literal{Kind: ast.StringLit, Value: "hi"}},
		{"'x'", &ast.Literal{Kind: ast.CharLit, Value: "x"}},
		{"true", &ast.Literal{Kind: ast.BoolLit, Value: "true"}},
		{"nil", &ast.Nil{}},
		{"()", &ast.Nil{}},
		{"( \n )", &ast.Nil{}},
		{"foo", ident("foo")},
		{"(~ 3)", &ast.UnaryOp{Op: token.TILDE, Operand: num("3")}},
		{"(! false)", &ast.UnaryOp{Op: token.BANG, Operand: &ast.Literal{Kind: ast.BoolLit, Value: "false"}}},
		{"(println x)", &ast.FunctionCall{Name: "println", Argument: ident("x")}},
		{"(let x 1)", &ast.Let{Keyword: token.LET, Name: "x", Value: num("1")}},
		{"(def y (* 2 3))", &ast.Let{Keyword: token.DEF, Name: "y",
			Value: &ast.BinaryOp{Op: token.ASTERISK, Left: num("2"), Right: num("3")}}},
		{"(and a b)", &ast.Logical{Op: token.AND, Left: ident("a"), Right: ident("b")}},
		{"(or a b)", &ast.Logical{Op: token.OR, Left: ident("a"), Right: ident("b")}},
		{"(if a b)", &ast.If{Condition: ident("a"), Then: ident("b")}},
		{"(if a b c)", &ast.If{Condition: ident("a"), Then: ident("b"), Else: ident("c")}},
		{"(if a b else c)", &ast.If{Condition: ident("a"), Then: ident("b"), Else: ident("c")}},
		{"(if a b elseif c d else e)", &ast.If{
			Condition: ident("a"), Then: ident("b"),
			Else: &ast.If{Condition: ident("c"), Then: ident("d"), Else: ident("e")},
		}},
		{"((+ 1 2))", &ast.BinaryOp{Op: token.PLUS, Left: num("1"), Right: num("2")}},
		{"(\n  -\n  10\n  4\n)", &ast.BinaryOp{Op: token.MINUS, Left: num("10"), Right: num("4")}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"(1 2)", `unexpected token Number("2"), expected RParen`},
		{"(+ 1 2 3)", `unexpected token Number("3"), expected RParen`},
		{"(let 1 2)", `expected identifier after let, got Number("1")`},
		{"(f x y)", `unexpected token Identifier("y"), expected RParen`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			perr, ok := got.(*ast.ParserError)
			require.True(t, ok, "expected ParserError, got %T (%s)", got, got)
			assert.Equal(t, tt.message, perr.Message)
			assert.NotNil(t, perr.Partial)
		})
	}
}

func TestParseTokenErrors(t *testing.T) {
	got := Parse("(+ 1 @)")
	want := &ast.BinaryOp{
		Op:   token.PLUS,
		Left: num("1"),
		Right: &ast.TokenError{Token: token.Token{
			Type: token.ILLEGAL, Literal: "unexpected char '@'", Position: 5,
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}

	stray := Parse(")")
	terr, ok := stray.(*ast.TokenError)
	require.True(t, ok)
	assert.Equal(t, "unexpected token RParen", terr.Message())

	assert.True(t, ast.HasErrors(Parse("(else 1)")))
	assert.True(t, ast.HasErrors(Parse("")))
}

func TestParseProgram(t *testing.T) {
	nodes := ParseProgram(lexer.Tokenize("(+ 1 2)\n(let x 3)\n\n x \n"))
	require.Len(t, nodes, 3)
	assert.Equal(t, "(+ 1 2)", nodes[0].String())
	assert.Equal(t, "(let x 3)", nodes[1].String())
	assert.Equal(t, "x", nodes[2].String())

	assert.Empty(t, ParseProgram(lexer.Tokenize("  \n ")))
}

func TestParseProgramStopsAtFirstError(t *testing.T) {
	nodes := ParseProgram(lexer.Tokenize("(+ 1 2) ) (+ 3 4)"))
	require.Len(t, nodes, 2)
	assert.False(t, ast.HasErrors(nodes[0]))
	assert.IsType(t, &ast.TokenError{}, nodes[1])
}

func TestParserAtEnd(t *testing.T) {
	p := New(lexer.Tokenize("(+ 1 2)  \n"))
	p.ParseExpression()
	assert.True(t, p.AtEnd())

	p = New(lexer.Tokenize("1 2"))
	p.ParseExpression()
	assert.False(t, p.AtEnd())
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"(+ 1 2)",
		"(/ (- 10 4.5) (* x y))",
		"(~ (~ 1))",
		"(! (! true))",
		`(println "tab\there \"quoted\"\n")`,
		`(print '\'')`,
		"(let x 'c')",
		"(def y nil)",
		"(and a (or b false))",
		"(if a b)",
		"(if a b else c)",
		"(if a b elseif c d elseif e f else g)",
		"()",
		"café",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := Parse(input)
			require.False(t, ast.HasErrors(first), "parse error: %s", first)

			second := Parse(first.String())
			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("round trip changed tree (-first +second):\n%s", diff)
			}
			assert.Equal(t, first.String(), second.String())
		})
	}
}

func TestRenderASTAsText(t *testing.T) {
	got := RenderASTAsText(Parse(`(if (and a true) (println "x") elseif b 1)`), 0)
	want := `If
  cond: Logical and
    left: Identifier a
    right: Literal Bool true
  then: FunctionCall println
    argument: Literal String "x"
  else: If
    cond: Identifier b
    then: Literal Number 1`

	assert.Equal(t, want, got)
	assert.Equal(t, "Nil\nIdentifier x", RenderProgramAsText([]ast.Node{&ast.Nil{}, ident("x")}))
}

func TestRenderASTAsTextErrors(t *testing.T) {
	got := RenderASTAsText(Parse("(+ 1"), 0)
	want := `ParserError "unexpected token EndOfInput, expected RParen" @4
  partial: BinaryOp +
    left: Literal Number 1
    right: TokenError "unexpected token EndOfInput" @4`

	assert.Equal(t, want, got)
}

func TestRenderASTAsJSON(t *testing.T) {
	out, err := RenderASTAsJSON(Parse("(let x (~ 2))"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	want := map[string]interface{}{
		"type":    "Let",
		"keyword": "let",
		"name":    "x",
		"value": map[string]interface{}{
			"type":     "UnaryOp",
			"operator": "~",
			"operand": map[string]interface{}{
				"type":  "Literal",
				"kind":  "Number",
				"value": "2",
			},
		},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("unexpected JSON (-want +got):\n%s", diff)
	}
}

func TestWalkASTOmitsMissingElse(t *testing.T) {
	m, ok := WalkAST(Parse("(if a b)")).(map[string]interface{})
	require.True(t, ok)
	assert.Nil(t, m["elseBranch"])
	assert.Nil(t, WalkAST(nil))
}
