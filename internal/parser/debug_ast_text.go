package parser

import (
	"fmt"
	"sexpr/internal/ast"
	"strconv"
	"strings"
)

// RenderASTAsText produces a human-centric, indented tree of the AST, one
// node per line. It is meant for eyeballing how a form was grouped.
func RenderASTAsText(node ast.Node, indent int) string {
	r := &textRenderer{indent: indent}
	r.render("", node)
	return strings.TrimSuffix(r.sb.String(), "\n")
}

// RenderProgramAsText renders every top-level node, separated by newlines.
func RenderProgramAsText(nodes []ast.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = RenderASTAsText(n, 0)
	}
	return strings.Join(parts, "\n")
}

type textRenderer struct {
	sb     strings.Builder
	indent int
	label  string
}

// render writes one child line prefixed with an optional field label, then
// its own children one level deeper.
func (r *textRenderer) render(label string, node ast.Node) {
	r.label = label
	if node == nil {
		r.line("<none>")
		return
	}
	_ = node.Accept(r)
}

func (r *textRenderer) line(format string, args ...any) {
	r.sb.WriteString(strings.Repeat("  ", r.indent))
	if r.label != "" {
		r.sb.WriteString(r.label)
		r.sb.WriteString(": ")
	}
	fmt.Fprintf(&r.sb, format, args...)
	r.sb.WriteString("\n")
}

func (r *textRenderer) children(fields ...any) {
	r.indent++
	for i := 0; i+1 < len(fields); i += 2 {
		r.render(fields[i].(string), asNode(fields[i+1]))
	}
	r.indent--
}

func asNode(v any) ast.Node {
	if v == nil {
		return nil
	}
	return v.(ast.Node)
}

func (r *textRenderer) VisitLiteral(n *ast.Literal) error {
	value := n.Value
	if n.Kind == ast.StringLit || n.Kind == ast.CharLit {
		value = strconv.Quote(n.Value)
	}
	r.line("Literal %s %s", n.Kind, value)
	return nil
}

func (r *textRenderer) VisitIdentifier(n *ast.Identifier) error {
	r.line("Identifier %s", n.Name)
	return nil
}

func (r *textRenderer) VisitNil(*ast.Nil) error {
	r.line("Nil")
	return nil
}

func (r *textRenderer) VisitBinaryOp(n *ast.BinaryOp) error {
	r.line("BinaryOp %s", n.Op)
	r.children("left", n.Left, "right", n.Right)
	return nil
}

func (r *textRenderer) VisitUnaryOp(n *ast.UnaryOp) error {
	r.line("UnaryOp %s", n.Op)
	r.children("operand", n.Operand)
	return nil
}

func (r *textRenderer) VisitFunctionCall(n *ast.FunctionCall) error {
	r.line("FunctionCall %s", n.Name)
	r.children("argument", n.Argument)
	return nil
}

func (r *textRenderer) VisitLet(n *ast.Let) error {
	r.line("Let %s %s", strings.ToLower(string(n.Keyword)), n.Name)
	r.children("value", n.Value)
	return nil
}

func (r *textRenderer) VisitLogical(n *ast.Logical) error {
	r.line("Logical %s", strings.ToLower(string(n.Op)))
	r.children("left", n.Left, "right", n.Right)
	return nil
}

func (r *textRenderer) VisitIf(n *ast.If) error {
	r.line("If")
	if n.Else == nil {
		r.children("cond", n.Condition, "then", n.Then)
	} else {
		r.children("cond", n.Condition, "then", n.Then, "else", n.Else)
	}
	return nil
}

func (r *textRenderer) VisitTokenError(n *ast.TokenError) error {
	r.line("TokenError %q @%d", n.Message(), n.Token.Position)
	return nil
}

func (r *textRenderer) VisitParserError(n *ast.ParserError) error {
	r.line("ParserError %q @%d", n.Message, n.Position)
	r.children("partial", n.Partial)
	return nil
}
