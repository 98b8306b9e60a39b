// Package evaluator walks an AST with a visitor and a value stack.
//
// Each visit pushes exactly one value on success. On failure the stack is
// restored to the depth it had before the top-level Evaluate call, so a
// session can keep going after an error.
package evaluator

import (
	"io"
	"log/slog"
	"sexpr/internal/ast"
	"sexpr/internal/object"
	"sexpr/internal/token"
	"strconv"
	"unicode/utf8"
)

var _ ast.Visitor = (*Evaluator)(nil)

type Evaluator struct {
	stack []object.Object
	env   *object.Environment
	out   io.Writer // print and println write here
}

func New(out io.Writer) *Evaluator {
	if out == nil {
		out = io.Discard
	}
	return &Evaluator{
		env: object.NewEnvironment(),
		out: out,
	}
}

func (e *Evaluator) Env() *object.Environment { return e.env }

func (e *Evaluator) StackDepth() int { return len(e.stack) }

// Evaluate runs node and leaves its value on top of the stack.
func (e *Evaluator) Evaluate(node ast.Node) error {
	depth := len(e.stack)
	if err := node.Accept(e); err != nil {
		e.stack = e.stack[:depth]
		slog.Debug("evaluation failed",
			slog.String("node", node.String()),
			slog.Any("error", err))
		return err
	}
	return nil
}

// Eval evaluates node and pops its value.
func (e *Evaluator) Eval(node ast.Node) (object.Object, error) {
	if err := e.Evaluate(node); err != nil {
		return nil, err
	}
	return e.pop(), nil
}

func (e *Evaluator) push(obj object.Object) {
	e.stack = append(e.stack, obj)
}

func (e *Evaluator) pop() object.Object {
	n := len(e.stack)
	obj := e.stack[n-1]
	e.stack[n-1] = nil
	e.stack = e.stack[:n-1]
	return obj
}

// evalChild visits a sub-expression and hands back its value.
func (e *Evaluator) evalChild(node ast.Node) (object.Object, error) {
	if err := node.Accept(e); err != nil {
		return nil, err
	}
	return e.pop(), nil
}

func (e *Evaluator) VisitLiteral(node *ast.Literal) error {
	switch node.Kind {
	case ast.NumberLit:
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return newError(ErrInvalidLiteral, -1, "Invalid number literal: %s", node.Value)
		}
		e.push(&object.Number{Value: f})
	case ast.StringLit:
		e.push(&object.String{Value: node.Value})
	case ast.CharLit:
		r, size := utf8.DecodeRuneInString(node.Value)
		if size == 0 || size != len(node.Value) || (r == utf8.RuneError && size == 1) {
			return newError(ErrInvalidLiteral, -1, "Invalid char literal: %q", node.Value)
		}
		e.push(&object.Char{Value: r})
	case ast.BoolLit:
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return newError(ErrInvalidLiteral, -1, "Invalid bool literal: %s", node.Value)
		}
		e.push(object.NativeBoolToBooleanObject(b))
	default:
		return newError(ErrInvalidLiteral, -1, "Invalid literal: %s", node.Value)
	}
	return nil
}

func (e *Evaluator) VisitIdentifier(node *ast.Identifier) error {
	val, ok := e.env.Get(node.Name)
	if !ok {
		return newError(ErrUndefinedIdentifier, -1, "Undefined identifier: %s", node.Name)
	}
	e.push(val)
	return nil
}

func (e *Evaluator) VisitNil(*ast.Nil) error {
	e.push(object.NIL)
	return nil
}

func (e *Evaluator) VisitBinaryOp(node *ast.BinaryOp) error {
	if err := node.Left.Accept(e); err != nil {
		return err
	}
	if err := node.Right.Accept(e); err != nil {
		return err
	}
	right := e.pop()
	left := e.pop()

	var (
		result object.Object
		ok     bool
		verb   string
	)
	switch node.Op {
	case token.PLUS:
		result, ok = object.Add(left, right)
		verb = "add"
	case token.MINUS:
		result, ok = object.Sub(left, right)
		verb = "sub"
	case token.ASTERISK:
		result, ok = object.Mul(left, right)
		verb = "mul"
	case token.SLASH:
		result, ok = object.Div(left, right)
		verb = "div"
	default:
		return newError(ErrSyntax, -1, "unknown operator: %s", node.Op)
	}
	if !ok {
		return newError(ErrTypeMismatch, -1, "Cannot %s %s and %s", verb, left.Inspect(), right.Inspect())
	}

	e.push(result)
	return nil
}

func (e *Evaluator) VisitUnaryOp(node *ast.UnaryOp) error {
	operand, err := e.evalChild(node.Operand)
	if err != nil {
		return err
	}

	var (
		result object.Object
		ok     bool
		verb   string
	)
	switch node.Op {
	case token.TILDE:
		result, ok = object.Negate(operand)
		verb = "neg"
	case token.BANG:
		result, ok = object.Not(operand)
		verb = "not"
	default:
		return newError(ErrSyntax, -1, "unknown operator: %s", node.Op)
	}
	if !ok {
		return newError(ErrTypeMismatch, -1, "Cannot %s %s", verb, operand.Inspect())
	}

	e.push(result)
	return nil
}

// VisitFunctionCall evaluates the argument before looking the name up, so
// side effects in the argument happen even for unknown functions.
func (e *Evaluator) VisitFunctionCall(node *ast.FunctionCall) error {
	arg, err := e.evalChild(node.Argument)
	if err != nil {
		return err
	}

	builtin, ok := builtins[node.Name]
	if !ok {
		return newError(ErrUnsupportedFunction, -1, "Unsupported function call: %s", node.Name)
	}

	result, err := builtin.Fn(e, arg)
	if err != nil {
		return err
	}
	e.push(result)
	return nil
}

func (e *Evaluator) VisitLet(node *ast.Let) error {
	val, err := e.evalChild(node.Value)
	if err != nil {
		return err
	}
	e.env.Define(node.Name, val)

	if node.Keyword == token.DEF {
		e.push(&object.Symbol{Name: node.Name})
	} else {
		e.push(val)
	}
	return nil
}

func (e *Evaluator) VisitLogical(node *ast.Logical) error {
	left, err := e.evalChild(node.Left)
	if err != nil {
		return err
	}

	truthy := object.IsTruthy(left)
	if (node.Op == token.AND && !truthy) || (node.Op == token.OR && truthy) {
		e.push(left)
		return nil
	}
	return node.Right.Accept(e)
}

func (e *Evaluator) VisitIf(node *ast.If) error {
	cond, err := e.evalChild(node.Condition)
	if err != nil {
		return err
	}

	if object.IsTruthy(cond) {
		return node.Then.Accept(e)
	}
	if node.Else != nil {
		return node.Else.Accept(e)
	}
	e.push(object.NIL)
	return nil
}

func (e *Evaluator) VisitTokenError(node *ast.TokenError) error {
	return newError(ErrSyntax, node.Token.Position, "TokenError: %s", node.Message())
}

func (e *Evaluator) VisitParserError(node *ast.ParserError) error {
	return newError(ErrSyntax, node.Position, "ParserError: %s", node.String())
}
