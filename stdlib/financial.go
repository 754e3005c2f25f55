package stdlib

import (
	"math"

	"github.com/skillet-run/skillet/values"
)

// registerFinancial implements the PMT/FV/PV/NPER family per spec.md
// §4.6 and the PMT sign convention decided in SPEC_FULL.md's Open
// Question resolution: a positive present value yields a negative
// (outgoing) payment, matching spreadsheet convention.
func registerFinancial(c *Catalog) {
	c.register(&Builtin{Name: "PMT", MinArgs: 3, MaxArgs: 4, Fn: func(a *Args) (*values.Value, error) {
		rate, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		nper, err := numArg(a, 1)
		if err != nil {
			return nil, err
		}
		pv, err := numArg(a, 2)
		if err != nil {
			return nil, err
		}
		fv := 0.0
		if a.Len() == 4 {
			fv, err = numArg(a, 3)
			if err != nil {
				return nil, err
			}
		}
		if rate == 0 {
			return values.NewCurrency(-(pv + fv) / nper), nil
		}
		factor := math.Pow(1+rate, nper)
		pmt := -(rate * (pv*factor + fv)) / (factor - 1)
		return values.NewCurrency(pmt), nil
	}})
	c.register(&Builtin{Name: "FV", MinArgs: 3, MaxArgs: 4, Fn: func(a *Args) (*values.Value, error) {
		rate, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		nper, err := numArg(a, 1)
		if err != nil {
			return nil, err
		}
		pmt, err := numArg(a, 2)
		if err != nil {
			return nil, err
		}
		pv := 0.0
		if a.Len() == 4 {
			pv, err = numArg(a, 3)
			if err != nil {
				return nil, err
			}
		}
		if rate == 0 {
			return values.NewCurrency(-(pv + pmt*nper)), nil
		}
		factor := math.Pow(1+rate, nper)
		fv := -(pv*factor + pmt*(factor-1)/rate)
		return values.NewCurrency(fv), nil
	}})
	c.register(&Builtin{Name: "PV", MinArgs: 3, MaxArgs: 4, Fn: func(a *Args) (*values.Value, error) {
		rate, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		nper, err := numArg(a, 1)
		if err != nil {
			return nil, err
		}
		pmt, err := numArg(a, 2)
		if err != nil {
			return nil, err
		}
		fv := 0.0
		if a.Len() == 4 {
			fv, err = numArg(a, 3)
			if err != nil {
				return nil, err
			}
		}
		if rate == 0 {
			return values.NewCurrency(-(fv + pmt*nper)), nil
		}
		factor := math.Pow(1+rate, nper)
		pv := -(fv + pmt*(factor-1)/rate) / factor
		return values.NewCurrency(pv), nil
	}})
	c.register(&Builtin{Name: "NPER", MinArgs: 3, MaxArgs: 4, Fn: func(a *Args) (*values.Value, error) {
		rate, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		pmt, err := numArg(a, 1)
		if err != nil {
			return nil, err
		}
		pv, err := numArg(a, 2)
		if err != nil {
			return nil, err
		}
		fv := 0.0
		if a.Len() == 4 {
			fv, err = numArg(a, 3)
			if err != nil {
				return nil, err
			}
		}
		if rate == 0 {
			return values.NewNumber(-(pv + fv) / pmt), nil
		}
		num := pmt - fv*rate
		den := pv*rate + pmt
		return values.NewNumber(math.Log(num/den) / math.Log(1+rate)), nil
	}})
}
