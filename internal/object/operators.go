package object

// The operator rules below report ok=false when the operand types do not
// support the operation; the caller decides how to surface that.

// Add sums two numbers or concatenates two strings.
func Add(left, right Object) (Object, bool) {
	switch l := left.(type) {
	case *Number:
		if r, ok := right.(*Number); ok {
			return &Number{Value: l.Value + r.Value}, true
		}
	case *String:
		if r, ok := right.(*String); ok {
			return &String{Value: l.Value + r.Value}, true
		}
	}
	return nil, false
}

func Sub(left, right Object) (Object, bool) {
	return arithmetic(left, right, func(a, b float64) float64 { return a - b })
}

func Mul(left, right Object) (Object, bool) {
	return arithmetic(left, right, func(a, b float64) float64 { return a * b })
}

// Div follows IEEE 754: (/ 1 0) is inf and (/ 0 0) is NaN.
func Div(left, right Object) (Object, bool) {
	return arithmetic(left, right, func(a, b float64) float64 { return a / b })
}

func Negate(operand Object) (Object, bool) {
	if n, ok := operand.(*Number); ok {
		return &Number{Value: -n.Value}, true
	}
	return nil, false
}

func Not(operand Object) (Object, bool) {
	if b, ok := operand.(*Boolean); ok {
		return NativeBoolToBooleanObject(!b.Value), true
	}
	return nil, false
}

func arithmetic(left, right Object, op func(a, b float64) float64) (Object, bool) {
	l, ok := left.(*Number)
	if !ok {
		return nil, false
	}
	r, ok := right.(*Number)
	if !ok {
		return nil, false
	}
	return &Number{Value: op(l.Value, r.Value)}, true
}
