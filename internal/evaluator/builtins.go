package evaluator

import (
	"fmt"
	"sexpr/internal/object"
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Builtin is a named single-argument function. Fn returns the value the call
// expression evaluates to.
type Builtin struct {
	Name string
	Fn   func(e *Evaluator, arg object.Object) (object.Object, error)
}

var builtins = map[string]*Builtin{
	"print":   funcPrint(),
	"println": funcPrintLn(),
	"type":    funcType(),
	"str":     funcStr(),
	"len":     funcLen(),
}

// BuiltinNames lists the callable function names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func funcPrint() *Builtin {
	return &Builtin{
		Name: "print",
		Fn: func(e *Evaluator, arg object.Object) (object.Object, error) {
			if _, err := fmt.Fprint(e.out, arg.Inspect()); err != nil {
				return nil, errors.Wrap(err, "print")
			}
			return object.NIL, nil
		},
	}
}

func funcPrintLn() *Builtin {
	return &Builtin{
		Name: "println",
		Fn: func(e *Evaluator, arg object.Object) (object.Object, error) {
			if _, err := fmt.Fprintln(e.out, arg.Inspect()); err != nil {
				return nil, errors.Wrap(err, "println")
			}
			return object.NIL, nil
		},
	}
}

func funcType() *Builtin {
	return &Builtin{
		Name: "type",
		Fn: func(_ *Evaluator, arg object.Object) (object.Object, error) {
			return &object.String{Value: string(arg.Type())}, nil
		},
	}
}

func funcStr() *Builtin {
	return &Builtin{
		Name: "str",
		Fn: func(_ *Evaluator, arg object.Object) (object.Object, error) {
			return &object.String{Value: object.Display(arg)}, nil
		},
	}
}

// funcLen counts code points, not bytes.
func funcLen() *Builtin {
	return &Builtin{
		Name: "len",
		Fn: func(_ *Evaluator, arg object.Object) (object.Object, error) {
			s, ok := arg.(*object.String)
			if !ok {
				return nil, newError(ErrTypeMismatch, -1, "argument to `len` must be String, got %s", arg.Type())
			}
			return &object.Number{Value: float64(utf8.RuneCountInString(s.Value))}, nil
		},
	}
}
