package stdlib

import (
	"math"
	"sort"

	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/parser"
	"github.com/skillet-run/skillet/values"
)

func registerStatistical(c *Catalog) {
	c.register(&Builtin{Name: "SUM", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		items, err := collectNumericArgs(a)
		if err != nil {
			return nil, err
		}
		total := 0.0
		for _, n := range items {
			total += n
		}
		return values.NewNumber(total), nil
	}})
	c.register(&Builtin{Name: "COUNT", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		// Only numeric-kind arguments/elements are counted: spec.md §9's
		// Open Question resolved in favor of Excel's COUNT semantics.
		n := 0
		for i := 0; i < a.Len(); i++ {
			v, err := a.Val(i)
			if err != nil {
				return nil, err
			}
			if v.IsArray() {
				for _, e := range v.ArrayValue() {
					if e.IsNumericKind() {
						n++
					}
				}
				continue
			}
			if v.IsNumericKind() {
				n++
			}
		}
		return values.NewNumber(float64(n)), nil
	}})
	c.register(&Builtin{Name: "AVERAGE", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		items, err := collectNumericArgs(a)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, errors.New(errors.TypeError, "AVERAGE: no numeric values")
		}
		total := 0.0
		for _, n := range items {
			total += n
		}
		return values.NewNumber(total / float64(len(items))), nil
	}})
	c.register(&Builtin{Name: "MIN", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		items, err := collectNumericArgs(a)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, errors.New(errors.TypeError, "MIN: no numeric values")
		}
		m := items[0]
		for _, n := range items[1:] {
			if n < m {
				m = n
			}
		}
		return values.NewNumber(m), nil
	}})
	c.register(&Builtin{Name: "MAX", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		items, err := collectNumericArgs(a)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, errors.New(errors.TypeError, "MAX: no numeric values")
		}
		m := items[0]
		for _, n := range items[1:] {
			if n > m {
				m = n
			}
		}
		return values.NewNumber(m), nil
	}})
	c.register(&Builtin{Name: "MEDIAN", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		items, err := collectNumericArgs(a)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, errors.New(errors.TypeError, "MEDIAN: no numeric values")
		}
		sort.Float64s(items)
		mid := len(items) / 2
		if len(items)%2 == 1 {
			return values.NewNumber(items[mid]), nil
		}
		return values.NewNumber((items[mid-1] + items[mid]) / 2), nil
	}})
	c.register(&Builtin{Name: "STDEV", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		items, err := collectNumericArgs(a)
		if err != nil {
			return nil, err
		}
		if len(items) < 2 {
			return nil, errors.New(errors.TypeError, "STDEV: needs at least two numeric values")
		}
		return values.NewNumber(sampleStdDev(items)), nil
	}})
	c.register(&Builtin{Name: "SUMIF", MinArgs: 2, MaxArgs: 3, Fn: func(a *Args) (*values.Value, error) {
		return ifAggregate(a, func(selected []float64) float64 {
			t := 0.0
			for _, n := range selected {
				t += n
			}
			return t
		})
	}})
	c.register(&Builtin{Name: "AVGIF", MinArgs: 2, MaxArgs: 3, Fn: func(a *Args) (*values.Value, error) {
		return ifAggregate(a, func(selected []float64) float64 {
			if len(selected) == 0 {
				return 0
			}
			t := 0.0
			for _, n := range selected {
				t += n
			}
			return t / float64(len(selected))
		})
	}})
	c.register(&Builtin{Name: "COUNTIF", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		crit, err := strArg(a, 1)
		if err != nil {
			return nil, err
		}
		cmp, constant, err := parser.ParseCriteria(crit)
		if err != nil {
			return nil, err
		}
		n := 0
		for _, v := range arr {
			if !v.IsNumericKind() {
				continue
			}
			if matchesCriteria(v.NumericValue(), cmp, constant) {
				n++
			}
		}
		return values.NewNumber(float64(n)), nil
	}})
}

// ifAggregate implements the shared SUMIF/AVGIF skeleton: test each
// numeric element of the array in argument 0 against the criteria string
// in argument 1, then aggregate the matching elements, or the elements
// at the same positions of the array in argument 2 when one is given.
func ifAggregate(a *Args, agg func([]float64) float64) (*values.Value, error) {
	arr, err := arrArg(a, 0)
	if err != nil {
		return nil, err
	}
	crit, err := strArg(a, 1)
	if err != nil {
		return nil, err
	}
	cmp, constant, err := parser.ParseCriteria(crit)
	if err != nil {
		return nil, err
	}
	sumRange := arr
	if a.Len() == 3 {
		sumRange, err = arrArg(a, 2)
		if err != nil {
			return nil, err
		}
		if len(sumRange) != len(arr) {
			return nil, errors.New(errors.TypeError, "SUMIF/AVGIF: range and sum_range must be the same length")
		}
	}
	var selected []float64
	for i, v := range arr {
		if !v.IsNumericKind() {
			continue
		}
		if matchesCriteria(v.NumericValue(), cmp, constant) {
			selected = append(selected, sumRange[i].ToFloat())
		}
	}
	return values.NewNumber(agg(selected)), nil
}

func matchesCriteria(n float64, cmp string, constant float64) bool {
	switch cmp {
	case "==":
		return n == constant
	case "!=":
		return n != constant
	case ">":
		return n > constant
	case "<":
		return n < constant
	case ">=":
		return n >= constant
	case "<=":
		return n <= constant
	default:
		return false
	}
}

func collectNumericArgs(a *Args) ([]float64, error) {
	var out []float64
	for i := 0; i < a.Len(); i++ {
		v, err := a.Val(i)
		if err != nil {
			return nil, err
		}
		if v.IsArray() {
			for _, e := range v.ArrayValue() {
				if e.IsNumericKind() {
					out = append(out, e.NumericValue())
				}
			}
			continue
		}
		if !v.IsNumericKind() {
			return nil, errors.Newf(errors.TypeError, "expected numeric argument, got %s", v.Kind())
		}
		out = append(out, v.NumericValue())
	}
	return out, nil
}

func sampleStdDev(items []float64) float64 {
	mean := 0.0
	for _, n := range items {
		mean += n
	}
	mean /= float64(len(items))
	sq := 0.0
	for _, n := range items {
		d := n - mean
		sq += d * d
	}
	variance := sq / float64(len(items)-1)
	return math.Sqrt(variance)
}
