package cmd

import (
	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
	"github.com/msto63/relativity/internal/report"
)

// seconds reads arg as a duration in unit (s or yr)
func (a *app) seconds(arg, unit string) (mathx.Decimal, error) {
	switch unit {
	case "", "s":
		return a.engine.Ensure(arg)
	case "yr":
		return a.engine.YearsToSeconds(arg)
	default:
		return mathx.Decimal{}, rerr.Newf("unknown time unit %q (want s or yr)", unit).
			WithCode(rerr.CodeValueOutOfRange)
	}
}

// metres reads arg as a distance in unit (m, ly or au)
func (a *app) metres(arg, unit string) (mathx.Decimal, error) {
	switch unit {
	case "", "m":
		return a.engine.Ensure(arg)
	case "ly":
		return a.engine.LightYears(arg)
	case "au":
		return a.engine.AstronomicalUnits(arg)
	default:
		return mathx.Decimal{}, rerr.Newf("unknown distance unit %q (want m, ly or au)", unit).
			WithCode(rerr.CodeValueOutOfRange)
	}
}

// velocity reads arg as m/s, or as a fraction of c when asBeta is set
func (a *app) velocity(arg string, asBeta bool) (mathx.Decimal, error) {
	if asBeta {
		return a.engine.VelocityFromC(arg)
	}
	return a.engine.Ensure(arg)
}

// accel returns the --accel flag value, standard gravity when empty
func (a *app) accel(flag string) any {
	if flag == "" {
		return a.engine.Constants().G
	}
	return flag
}

// addBeta appends v as a fraction of c
func (a *app) addBeta(b *report.Block, label string, v mathx.Decimal) error {
	beta, err := a.engine.VelocityAsC(v)
	if err != nil {
		return err
	}
	b.Add(label, a.show(beta), "c")
	return nil
}
