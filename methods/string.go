package methods

import (
	"strings"

	"github.com/skillet-run/skillet/values"
)

func registerStringMethods() {
	register(values.KindString, "empty", true, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewBoolean(recv.StringValue() == ""), nil
	})
	register(values.KindString, "blank", true, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewBoolean(strings.TrimSpace(recv.StringValue()) == ""), nil
	})
	register(values.KindString, "upper", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewString(strings.ToUpper(recv.StringValue())), nil
	})
	register(values.KindString, "lower", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewString(strings.ToLower(recv.StringValue())), nil
	})
	register(values.KindString, "trim", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewString(strings.TrimSpace(recv.StringValue())), nil
	})
	register(values.KindString, "length", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewNumber(float64(len([]rune(recv.StringValue())))), nil
	})
	register(values.KindString, "reverse", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		r := []rune(recv.StringValue())
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return values.NewString(string(r)), nil
	})
}
