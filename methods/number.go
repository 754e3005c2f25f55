package methods

import (
	"math"

	"github.com/skillet-run/skillet/values"
)

func registerNumberMethods() {
	for _, kind := range []values.Kind{values.KindNumber, values.KindCurrency} {
		register(kind, "positive", true, func(recv *values.Value, a *Args) (*values.Value, error) {
			return values.NewBoolean(recv.NumericValue() > 0), nil
		})
		register(kind, "negative", true, func(recv *values.Value, a *Args) (*values.Value, error) {
			return values.NewBoolean(recv.NumericValue() < 0), nil
		})
		register(kind, "zero", true, func(recv *values.Value, a *Args) (*values.Value, error) {
			return values.NewBoolean(recv.NumericValue() == 0), nil
		})
		register(kind, "even", true, func(recv *values.Value, a *Args) (*values.Value, error) {
			return values.NewBoolean(int64(recv.NumericValue())%2 == 0), nil
		})
		register(kind, "odd", true, func(recv *values.Value, a *Args) (*values.Value, error) {
			return values.NewBoolean(int64(recv.NumericValue())%2 != 0), nil
		})
		register(kind, "abs", false, func(recv *values.Value, a *Args) (*values.Value, error) {
			return values.NewNumber(math.Abs(recv.NumericValue())), nil
		})
		register(kind, "round", false, func(recv *values.Value, a *Args) (*values.Value, error) {
			digits := 0.0
			if a.Len() > 0 {
				v, err := a.Val(0)
				if err != nil {
					return nil, err
				}
				digits = v.ToFloat()
			}
			mult := math.Pow(10, digits)
			return values.NewNumber(math.Round(recv.NumericValue()*mult) / mult), nil
		})
	}
}
