package ast

import (
	"fmt"
	"sexpr/internal/token"
	"strings"
)

// The base Node interface. Trees are immutable once built and every interior
// node owns its children.
type Node interface {
	// Accept dispatches to the visitor method for the concrete node type.
	Accept(v Visitor) error
	// String renders the canonical source form of the node.
	String() string
}

type LiteralKind int

const (
	NumberLit LiteralKind = iota
	StringLit
	BoolLit
	CharLit
)

func (k LiteralKind) String() string {
	switch k {
	case NumberLit:
		return "Number"
	case StringLit:
		return "String"
	case BoolLit:
		return "Bool"
	case CharLit:
		return "Char"
	default:
		return "Unknown"
	}
}

// Literal keeps the textual payload; turning it into a value is the
// evaluator's concern.
type Literal struct {
	Kind  LiteralKind
	Value string
}

func (l *Literal) Accept(v Visitor) error { return v.VisitLiteral(l) }
func (l *Literal) String() string {
	switch l.Kind {
	case StringLit:
		return `"` + escape(l.Value, '"') + `"`
	case CharLit:
		return "'" + escape(l.Value, '\'') + "'"
	default:
		return l.Value
	}
}

type Identifier struct {
	Name string
}

func (i *Identifier) Accept(v Visitor) error { return v.VisitIdentifier(i) }
func (i *Identifier) String() string         { return i.Name }

type Nil struct{}

func (n *Nil) Accept(v Visitor) error { return v.VisitNil(n) }
func (n *Nil) String() string         { return "nil" }

type BinaryOp struct {
	Op    token.TokenType // + - * /
	Left  Node
	Right Node
}

func (b *BinaryOp) Accept(v Visitor) error { return v.VisitBinaryOp(b) }
func (b *BinaryOp) String() string {
	return parenthesize(string(b.Op), b.Left, b.Right)
}

type UnaryOp struct {
	Op      token.TokenType // ~ !
	Operand Node
}

func (u *UnaryOp) Accept(v Visitor) error { return v.VisitUnaryOp(u) }
func (u *UnaryOp) String() string {
	return parenthesize(string(u.Op), u.Operand)
}

// FunctionCall takes exactly one argument.
type FunctionCall struct {
	Name     string
	Argument Node
}

func (f *FunctionCall) Accept(v Visitor) error { return v.VisitFunctionCall(f) }
func (f *FunctionCall) String() string {
	return parenthesize(f.Name, f.Argument)
}

// Let covers both binding forms, (let x v) and (def x v).
type Let struct {
	Keyword token.TokenType // LET or DEF
	Name    string
	Value   Node
}

func (l *Let) Accept(v Visitor) error { return v.VisitLet(l) }
func (l *Let) String() string {
	return parenthesize(keyword(l.Keyword)+" "+l.Name, l.Value)
}

type Logical struct {
	Op    token.TokenType // AND or OR
	Left  Node
	Right Node
}

func (l *Logical) Accept(v Visitor) error { return v.VisitLogical(l) }
func (l *Logical) String() string {
	return parenthesize(keyword(l.Op), l.Left, l.Right)
}

// If has an optional Else; elseif chains nest in Else.
type If struct {
	Condition Node
	Then      Node
	Else      Node
}

func (i *If) Accept(v Visitor) error { return v.VisitIf(i) }
func (i *If) String() string {
	if i.Else == nil {
		return parenthesize("if", i.Condition, i.Then)
	}
	return parenthesize("if", i.Condition, i.Then, i.Else)
}

// TokenError is a leaf standing in for a token that could not start an
// expression, or for an ILLEGAL token produced by the lexer.
type TokenError struct {
	Token token.Token
}

func (t *TokenError) Accept(v Visitor) error { return v.VisitTokenError(t) }
func (t *TokenError) String() string         { return t.Message() }

// Message is the diagnostic carried by the node.
func (t *TokenError) Message() string {
	if t.Token.Type == token.ILLEGAL {
		return t.Token.Literal
	}
	return fmt.Sprintf("unexpected token %s", t.Token)
}

// ParserError wraps the partial tree that was built before the grammar
// violation at Position was detected.
type ParserError struct {
	Message  string
	Position int
	Partial  Node
}

func (p *ParserError) Accept(v Visitor) error { return v.VisitParserError(p) }
func (p *ParserError) String() string {
	if p.Partial == nil {
		return p.Message
	}
	return fmt.Sprintf("%s in %s", p.Message, p.Partial.String())
}

// HasErrors reports whether any TokenError or ParserError is reachable from n.
func HasErrors(n Node) bool {
	switch n := n.(type) {
	case nil:
		return false
	case *TokenError, *ParserError:
		return true
	case *BinaryOp:
		return HasErrors(n.Left) || HasErrors(n.Right)
	case *UnaryOp:
		return HasErrors(n.Operand)
	case *FunctionCall:
		return HasErrors(n.Argument)
	case *Let:
		return HasErrors(n.Value)
	case *Logical:
		return HasErrors(n.Left) || HasErrors(n.Right)
	case *If:
		return HasErrors(n.Condition) || HasErrors(n.Then) || HasErrors(n.Else)
	default:
		return false
	}
}

func parenthesize(head string, nodes ...Node) string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(head)
	for _, n := range nodes {
		out.WriteString(" ")
		if n == nil {
			out.WriteString("nil")
			continue
		}
		out.WriteString(n.String())
	}
	out.WriteString(")")
	return out.String()
}

func keyword(t token.TokenType) string {
	return strings.ToLower(string(t))
}

func escape(s string, quote rune) string {
	var out strings.Builder
	for _, ch := range s {
		switch ch {
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		case quote:
			out.WriteRune('\\')
			out.WriteRune(ch)
		default:
			out.WriteRune(ch)
		}
	}
	return out.String()
}
