package values

import (
	"fmt"
	"math"
)

// Add implements the `+` operator's full coercion table from spec.md
// §4.3: numeric addition (Currency-preserving), string concatenation,
// and String+Number stringification.
func Add(a, b *Value) (*Value, error) {
	if a.kind == KindString || b.kind == KindString {
		if a.IsNumericKind() || a.kind == KindString {
			if b.IsNumericKind() || b.kind == KindString {
				return NewString(a.ToString() + b.ToString()), nil
			}
		}
		return nil, fmt.Errorf("cannot add %s and %s", a.kind, b.kind)
	}
	if !a.IsNumericKind() || !b.IsNumericKind() {
		return nil, fmt.Errorf("cannot add %s and %s", a.kind, b.kind)
	}
	return numericResult(a, b, a.num+b.num), nil
}

func arithBinOp(name string, a, b *Value, f func(x, y float64) (float64, error)) (*Value, error) {
	if !a.IsNumericKind() || !b.IsNumericKind() {
		return nil, fmt.Errorf("%s: cannot operate on %s and %s", name, a.kind, b.kind)
	}
	r, err := f(a.num, b.num)
	if err != nil {
		return nil, err
	}
	return numericResult(a, b, r), nil
}

func Sub(a, b *Value) (*Value, error) {
	return arithBinOp("-", a, b, func(x, y float64) (float64, error) { return x - y, nil })
}

func Mul(a, b *Value) (*Value, error) {
	return arithBinOp("*", a, b, func(x, y float64) (float64, error) { return x * y, nil })
}

func Div(a, b *Value) (*Value, error) {
	return arithBinOp("/", a, b, func(x, y float64) (float64, error) {
		if y == 0 {
			return 0, errDivByZero
		}
		return x / y, nil
	})
}

func Mod(a, b *Value) (*Value, error) {
	return arithBinOp("%", a, b, func(x, y float64) (float64, error) {
		if y == 0 {
			return 0, errDivByZero
		}
		return float64(int64(x) % int64(y)), nil
	})
}

func Pow(a, b *Value) (*Value, error) {
	return arithBinOp("^", a, b, func(x, y float64) (float64, error) { return math.Pow(x, y), nil })
}

// numericResult yields Currency if either operand is Currency, else
// Number — spec.md §4.3: "Mixed Number/Currency arithmetic yields
// Currency if at least one operand is Currency."
func numericResult(a, b *Value, n float64) *Value {
	if a.kind == KindCurrency || b.kind == KindCurrency {
		return NewCurrency(n)
	}
	return NewNumber(n)
}

// errDivByZero is a sentinel the evaluator recognizes to raise the
// DivisionByZero error kind rather than a generic TypeError.
var errDivByZero = fmt.Errorf("division by zero")

// IsDivByZero reports whether err originated from Div/Mod's zero-divisor check.
func IsDivByZero(err error) bool { return err == errDivByZero }
