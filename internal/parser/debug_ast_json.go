package parser

import (
	"bytes"
	"encoding/json"
	"sexpr/internal/ast"
	"strings"

	"github.com/pkg/errors"
)

// WalkAST serializes an AST into a machine-centric map structure suitable for
// encoding. Absent children become nil.
func WalkAST(node ast.Node) interface{} {
	if node == nil {
		return nil
	}
	w := &jsonWalker{}
	_ = node.Accept(w)
	return w.result
}

type jsonWalker struct {
	result map[string]interface{}
}

func (w *jsonWalker) VisitLiteral(n *ast.Literal) error {
	w.result = map[string]interface{}{
		"type":  "Literal",
		"kind":  n.Kind.String(),
		"value": n.Value,
	}
	return nil
}

func (w *jsonWalker) VisitIdentifier(n *ast.Identifier) error {
	w.result = map[string]interface{}{
		"type": "Identifier",
		"name": n.Name,
	}
	return nil
}

func (w *jsonWalker) VisitNil(*ast.Nil) error {
	w.result = map[string]interface{}{"type": "Nil"}
	return nil
}

func (w *jsonWalker) VisitBinaryOp(n *ast.BinaryOp) error {
	w.result = map[string]interface{}{
		"type":     "BinaryOp",
		"operator": string(n.Op),
		"left":     WalkAST(n.Left),
		"right":    WalkAST(n.Right),
	}
	return nil
}

func (w *jsonWalker) VisitUnaryOp(n *ast.UnaryOp) error {
	w.result = map[string]interface{}{
		"type":     "UnaryOp",
		"operator": string(n.Op),
		"operand":  WalkAST(n.Operand),
	}
	return nil
}

func (w *jsonWalker) VisitFunctionCall(n *ast.FunctionCall) error {
	w.result = map[string]interface{}{
		"type":     "FunctionCall",
		"name":     n.Name,
		"argument": WalkAST(n.Argument),
	}
	return nil
}

func (w *jsonWalker) VisitLet(n *ast.Let) error {
	w.result = map[string]interface{}{
		"type":    "Let",
		"keyword": strings.ToLower(string(n.Keyword)),
		"name":    n.Name,
		"value":   WalkAST(n.Value),
	}
	return nil
}

func (w *jsonWalker) VisitLogical(n *ast.Logical) error {
	w.result = map[string]interface{}{
		"type":     "Logical",
		"operator": strings.ToLower(string(n.Op)),
		"left":     WalkAST(n.Left),
		"right":    WalkAST(n.Right),
	}
	return nil
}

func (w *jsonWalker) VisitIf(n *ast.If) error {
	w.result = map[string]interface{}{
		"type":       "If",
		"condition":  WalkAST(n.Condition),
		"thenBranch": WalkAST(n.Then),
		"elseBranch": WalkAST(n.Else),
	}
	return nil
}

func (w *jsonWalker) VisitTokenError(n *ast.TokenError) error {
	w.result = map[string]interface{}{
		"type":     "TokenError",
		"token":    n.Token.String(),
		"message":  n.Message(),
		"position": n.Token.Position,
	}
	return nil
}

func (w *jsonWalker) VisitParserError(n *ast.ParserError) error {
	w.result = map[string]interface{}{
		"type":     "ParserError",
		"message":  n.Message,
		"position": n.Position,
		"partial":  WalkAST(n.Partial),
	}
	return nil
}

func RenderASTAsJSON(node ast.Node) (string, error) {
	astMap := WalkAST(node)
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(astMap); err != nil {
		return "", errors.Wrap(err, "failed to encode JSON")
	}
	return buf.String(), nil
}
