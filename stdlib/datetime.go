package stdlib

import (
	"time"

	strftime "github.com/ncruces/go-strftime"
	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/values"
)

func registerDateTime(c *Catalog) {
	c.register(&Builtin{Name: "NOW", MinArgs: 0, MaxArgs: 0, Fn: func(a *Args) (*values.Value, error) {
		return values.NewDateTime(time.Now().Unix()), nil
	}})
	c.register(&Builtin{Name: "DATE", MinArgs: 3, MaxArgs: 3, Fn: func(a *Args) (*values.Value, error) {
		y, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		m, err := numArg(a, 1)
		if err != nil {
			return nil, err
		}
		d, err := numArg(a, 2)
		if err != nil {
			return nil, err
		}
		t := time.Date(int(y), time.Month(int(m)), int(d), 0, 0, 0, 0, time.UTC)
		return values.NewDateTime(t.Unix()), nil
	}})
	c.register(&Builtin{Name: "YEAR", MinArgs: 1, MaxArgs: 1, Fn: dtPart(func(t time.Time) float64 { return float64(t.Year()) })})
	c.register(&Builtin{Name: "MONTH", MinArgs: 1, MaxArgs: 1, Fn: dtPart(func(t time.Time) float64 { return float64(t.Month()) })})
	c.register(&Builtin{Name: "DAY", MinArgs: 1, MaxArgs: 1, Fn: dtPart(func(t time.Time) float64 { return float64(t.Day()) })})
	c.register(&Builtin{Name: "HOUR", MinArgs: 1, MaxArgs: 1, Fn: dtPart(func(t time.Time) float64 { return float64(t.Hour()) })})
	c.register(&Builtin{Name: "WEEKDAY", MinArgs: 1, MaxArgs: 1, Fn: dtPart(func(t time.Time) float64 { return float64(t.Weekday()) })})
	c.register(&Builtin{Name: "DATEADD", MinArgs: 3, MaxArgs: 3, Fn: func(a *Args) (*values.Value, error) {
		dt, err := dtArg(a, 0)
		if err != nil {
			return nil, err
		}
		n, err := numArg(a, 1)
		if err != nil {
			return nil, err
		}
		unit, err := strArg(a, 2)
		if err != nil {
			return nil, err
		}
		var out time.Time
		switch unit {
		case "days", "day":
			out = dt.AddDate(0, 0, int(n))
		case "months", "month":
			out = dt.AddDate(0, int(n), 0)
		case "years", "year":
			out = dt.AddDate(int(n), 0, 0)
		case "hours", "hour":
			out = dt.Add(time.Duration(n) * time.Hour)
		case "minutes", "minute":
			out = dt.Add(time.Duration(n) * time.Minute)
		case "seconds", "second":
			out = dt.Add(time.Duration(n) * time.Second)
		default:
			return nil, errors.Newf(errors.TypeError, "DATEADD: unknown unit %q", unit)
		}
		return values.NewDateTime(out.Unix()), nil
	}})
	c.register(&Builtin{Name: "DATEDIFF", MinArgs: 2, MaxArgs: 3, Fn: func(a *Args) (*values.Value, error) {
		d1, err := dtArg(a, 0)
		if err != nil {
			return nil, err
		}
		d2, err := dtArg(a, 1)
		if err != nil {
			return nil, err
		}
		unit := "days"
		if a.Len() == 3 {
			unit, err = strArg(a, 2)
			if err != nil {
				return nil, err
			}
		}
		diff := d2.Sub(d1)
		switch unit {
		case "days", "day":
			return values.NewNumber(diff.Hours() / 24), nil
		case "hours", "hour":
			return values.NewNumber(diff.Hours()), nil
		case "minutes", "minute":
			return values.NewNumber(diff.Minutes()), nil
		case "seconds", "second":
			return values.NewNumber(diff.Seconds()), nil
		default:
			return nil, errors.Newf(errors.TypeError, "DATEDIFF: unknown unit %q", unit)
		}
	}})
	c.register(&Builtin{Name: "FORMATDATE", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		dt, err := dtArg(a, 0)
		if err != nil {
			return nil, err
		}
		layout, err := strArg(a, 1)
		if err != nil {
			return nil, err
		}
		out, err := strftime.Format(layout, dt)
		if err != nil {
			return nil, errors.Atf(errors.TypeError, 0, "FORMATDATE: %s", err.Error())
		}
		return values.NewString(out), nil
	}})
}

func dtPart(f func(time.Time) float64) Fn {
	return func(a *Args) (*values.Value, error) {
		dt, err := dtArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewNumber(f(dt)), nil
	}
}

func dtArg(a *Args, i int) (time.Time, error) {
	v, err := a.Val(i)
	if err != nil {
		return time.Time{}, err
	}
	if !v.IsDateTime() {
		return time.Time{}, errors.Newf(errors.TypeError, "expected DateTime argument, got %s", v.Kind())
	}
	return time.Unix(v.EpochSeconds(), 0).UTC(), nil
}
