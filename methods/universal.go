package methods

import "github.com/skillet-run/skillet/values"

// registerUniversalMethods adds methods available on every Kind.
func registerUniversalMethods() {
	registerAll("to_s", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewString(recv.ToString()), nil
	})
	registerAll("to_i", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewNumber(float64(recv.ToInt())), nil
	})
	registerAll("to_f", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewNumber(recv.ToFloat()), nil
	})
	registerAll("to_json", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewJson(recv.ToJSON()), nil
	})
	registerAll("null", true, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewBoolean(recv.IsNull()), nil
	})
}
