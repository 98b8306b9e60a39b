package ast

// Visitor is the extension point for anything that walks a tree: the
// evaluator, the text and JSON renderers. Each method handles one node kind;
// nodes route themselves to the right method through Accept.
type Visitor interface {
	VisitLiteral(*Literal) error
	VisitIdentifier(*Identifier) error
	VisitNil(*Nil) error
	VisitBinaryOp(*BinaryOp) error
	VisitUnaryOp(*UnaryOp) error
	VisitFunctionCall(*FunctionCall) error
	VisitLet(*Let) error
	VisitLogical(*Logical) error
	VisitIf(*If) error

	VisitTokenError(*TokenError) error
	VisitParserError(*ParserError) error
}
