package evaluator

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Every *Error unwraps to one of these, so callers can branch
// with errors.Is(err, ErrUndefinedIdentifier).
var (
	ErrSyntax              = errors.New("syntax error")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrUndefinedIdentifier = errors.New("undefined identifier")
	ErrUnsupportedFunction = errors.New("unsupported function")
	ErrInvalidLiteral      = errors.New("invalid literal")
)

// Error is a failed evaluation. It aborts the current expression only.
type Error struct {
	Kind     error
	Message  string
	Position int // byte offset of the offending token, -1 when not known
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// IsSyntax reports whether err came from an error node in the tree rather
// than from evaluating well-formed code.
func IsSyntax(err error) bool {
	return errors.Is(err, ErrSyntax)
}

func newError(kind error, position int, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...), Position: position}
}
