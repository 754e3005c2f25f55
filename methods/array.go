package methods

import "github.com/skillet-run/skillet/values"

func registerArrayMethods() {
	register(values.KindArray, "empty", true, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewBoolean(len(recv.ArrayValue()) == 0), nil
	})
	register(values.KindArray, "length", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewNumber(float64(len(recv.ArrayValue()))), nil
	})
	register(values.KindArray, "first", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		arr := recv.ArrayValue()
		if len(arr) == 0 {
			return values.NewNull(), nil
		}
		return arr[0], nil
	})
	register(values.KindArray, "last", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		arr := recv.ArrayValue()
		if len(arr) == 0 {
			return values.NewNull(), nil
		}
		return arr[len(arr)-1], nil
	})
	register(values.KindArray, "contains", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		needle, err := a.Val(0)
		if err != nil {
			return nil, err
		}
		for _, v := range recv.ArrayValue() {
			if v.Equal(needle) {
				return values.NewBoolean(true), nil
			}
		}
		return values.NewBoolean(false), nil
	})
	register(values.KindArray, "sum", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		total := 0.0
		for _, v := range recv.ArrayValue() {
			if v.IsNumericKind() {
				total += v.NumericValue()
			}
		}
		return values.NewNumber(total), nil
	})
}
