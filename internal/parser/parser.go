// Package parser turns a token sequence into an AST.
//
// The grammar is a small s-expression language:
//
//	program    ::= expr* EOF
//	expr       ::= NUMBER | STRING | CHAR | 'true' | 'false' | 'nil' | IDENT | '(' paren_expr ')'
//	paren_expr ::= ε
//	             | binary_op expr expr
//	             | unary_op expr
//	             | IDENT expr
//	             | ('let' | 'def') IDENT expr
//	             | ('and' | 'or') expr expr
//	             | 'if' expr expr [ 'else' expr | 'elseif' expr expr ... | expr ]
//	             | expr
//
// Layout tokens are skipped wherever an expression or a closing paren is
// expected. Parsing never fails: grammar violations become TokenError and
// ParserError nodes inside the returned tree.
package parser

import (
	"fmt"
	"log/slog"
	"sexpr/internal/ast"
	"sexpr/internal/lexer"
	"sexpr/internal/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseExpression parses the first expression in tokens.
func ParseExpression(tokens []token.Token) ast.Node {
	return New(tokens).ParseExpression()
}

// ParseProgram parses every top-level expression in tokens.
func ParseProgram(tokens []token.Token) []ast.Node {
	return New(tokens).ParseProgram()
}

// Parse tokenizes src and parses its first expression.
func Parse(src string) ast.Node {
	return ParseExpression(lexer.Tokenize(src))
}

// ParseProgram parses expressions until the end of input. It stops after the
// first expression containing an error node, since nothing after it can be
// trusted to line up.
func (p *Parser) ParseProgram() []ast.Node {
	nodes := []ast.Node{}
	for {
		p.skipLayout()
		if p.peekTokenIs(token.EOF) {
			return nodes
		}
		node := p.ParseExpression()
		nodes = append(nodes, node)
		if ast.HasErrors(node) {
			return nodes
		}
	}
}

// AtEnd reports whether only layout remains.
func (p *Parser) AtEnd() bool {
	p.skipLayout()
	return p.peekTokenIs(token.EOF)
}

func (p *Parser) ParseExpression() ast.Node {
	p.skipLayout()

	tok := p.peekToken()
	switch tok.Type {
	case token.NUMBER:
		p.nextToken()
		return &ast.Literal{Kind: ast.NumberLit, Value: tok.Literal}
	case token.STRING:
		p.nextToken()
		return &ast.Literal{Kind: ast.StringLit, Value: tok.Literal}
	case token.CHAR:
		p.nextToken()
		return &ast.Literal{Kind: ast.CharLit, Value: tok.Literal}
	case token.TRUE, token.FALSE:
		p.nextToken()
		return &ast.Literal{Kind: ast.BoolLit, Value: tok.Literal}
	case token.NIL:
		p.nextToken()
		return &ast.Nil{}
	case token.IDENT:
		p.nextToken()
		return &ast.Identifier{Name: tok.Literal}
	case token.LPAREN:
		return p.parseParenExpression()
	case token.RPAREN, token.EOF:
		// left in place so the enclosing form can still see its closing paren
		return &ast.TokenError{Token: tok}
	default:
		p.nextToken()
		return &ast.TokenError{Token: tok}
	}
}

func (p *Parser) parseParenExpression() ast.Node {
	p.nextToken() // consume '('
	p.skipLayout()

	tok := p.peekToken()
	switch {
	case tok.Type == token.RPAREN:
		p.nextToken()
		return &ast.Nil{}

	case tok.Type.IsBinaryOp():
		p.nextToken()
		node := &ast.BinaryOp{Op: tok.Type}
		node.Left = p.ParseExpression()
		node.Right = p.ParseExpression()
		return p.expectClose(node)

	case tok.Type.IsUnaryOp():
		p.nextToken()
		node := &ast.UnaryOp{Op: tok.Type}
		node.Operand = p.ParseExpression()
		return p.expectClose(node)

	case tok.Type == token.IDENT:
		p.nextToken()
		node := &ast.FunctionCall{Name: tok.Literal}
		node.Argument = p.ParseExpression()
		return p.expectClose(node)

	case tok.Type == token.LET || tok.Type == token.DEF:
		return p.parseLet()

	case tok.Type == token.AND || tok.Type == token.OR:
		p.nextToken()
		node := &ast.Logical{Op: tok.Type}
		node.Left = p.ParseExpression()
		node.Right = p.ParseExpression()
		return p.expectClose(node)

	case tok.Type == token.IF:
		p.nextToken()
		return p.expectClose(p.parseIfBranches())

	case tok.Type == token.ELSE || tok.Type == token.ELSEIF:
		p.nextToken()
		return p.expectClose(&ast.TokenError{Token: tok})

	default:
		// grouping: ((+ 1 2)), (1), (true)
		return p.expectClose(p.ParseExpression())
	}
}

func (p *Parser) parseLet() ast.Node {
	kw := p.nextToken()
	node := &ast.Let{Keyword: kw.Type}

	p.skipLayout()
	name := p.peekToken()
	if name.Type != token.IDENT {
		return p.newError(name.Position, node, "expected identifier after %s, got %s", kw.Literal, name)
	}
	p.nextToken()
	node.Name = name.Literal
	node.Value = p.ParseExpression()

	return p.expectClose(node)
}

// parseIfBranches parses `cond then [else-part]` after 'if' or 'elseif'.
func (p *Parser) parseIfBranches() *ast.If {
	node := &ast.If{}
	node.Condition = p.ParseExpression()
	node.Then = p.ParseExpression()
	node.Else = p.parseElse()
	return node
}

func (p *Parser) parseElse() ast.Node {
	p.skipLayout()
	switch p.peekToken().Type {
	case token.RPAREN, token.EOF:
		return nil
	case token.ELSE:
		p.nextToken()
		return p.ParseExpression()
	case token.ELSEIF:
		p.nextToken()
		return p.parseIfBranches()
	default:
		return p.ParseExpression()
	}
}

// expectClose requires the closing paren of the current form; otherwise the
// form built so far is wrapped in a ParserError.
func (p *Parser) expectClose(node ast.Node) ast.Node {
	p.skipLayout()
	tok := p.peekToken()
	if tok.Type == token.RPAREN {
		p.nextToken()
		return node
	}
	return p.newError(tok.Position, node, "unexpected token %s, expected %s", tok, token.TokenType(token.RPAREN).Name())
}

func (p *Parser) newError(position int, partial ast.Node, format string, args ...any) *ast.ParserError {
	msg := fmt.Sprintf(format, args...)
	slog.Debug("parser error",
		slog.String("message", msg),
		slog.Int("position", position))
	return &ast.ParserError{Message: msg, Position: position, Partial: partial}
}

// skipLayout discards spaces and newlines ahead of the cursor.
func (p *Parser) skipLayout() {
	for p.peekToken().Type.IsLayout() {
		p.nextToken()
	}
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken().Type == t
}

// peekToken returns the token under the cursor; past the end it is EOF.
func (p *Parser) peekToken() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	position := 0
	if n := len(p.tokens); n > 0 {
		position = p.tokens[n-1].Position
	}
	return token.Token{Type: token.EOF, Position: position}
}

// nextToken consumes the current token. The cursor never moves past EOF.
func (p *Parser) nextToken() token.Token {
	tok := p.peekToken()
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}
