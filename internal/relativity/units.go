package relativity

import (
	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
)

// LightYears converts light years to metres
func (e *Engine) LightYears(ly any) (mathx.Decimal, error) {
	k := e.Constants()
	d, err := k.ensure(ly)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return d.Multiply(k.LightYear), nil
}

// AstronomicalUnits converts astronomical units to metres
func (e *Engine) AstronomicalUnits(au any) (mathx.Decimal, error) {
	k := e.Constants()
	d, err := k.ensure(au)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return d.Multiply(k.AU), nil
}

// YearsToSeconds converts Julian years to seconds
func (e *Engine) YearsToSeconds(years any) (mathx.Decimal, error) {
	k := e.Constants()
	y, err := k.ensure(years)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return y.Multiply(k.SecondsPerYear), nil
}

// SecondsToYears converts seconds to Julian years
func (e *Engine) SecondsToYears(seconds any) (mathx.Decimal, error) {
	k := e.Constants()
	s, err := k.ensure(seconds)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return s.Divide(k.SecondsPerYear)
}

// VelocityAsC expresses a velocity in m/s as a fraction of c
func (e *Engine) VelocityAsC(velocity any) (mathx.Decimal, error) {
	k := e.Constants()
	v, err := k.ensure(velocity)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return v.Divide(k.C)
}

// VelocityFromC converts a fraction of c into m/s; |fraction| must be
// below one
func (e *Engine) VelocityFromC(fraction any) (mathx.Decimal, error) {
	k := e.Constants()
	f, err := k.ensure(fraction)
	if err != nil {
		return mathx.Decimal{}, err
	}
	if f.Abs().GreaterThanOrEqual(k.One) {
		return mathx.Decimal{}, rerr.New(defaultVelocityMessage).
			WithCode(rerr.CodeVelocityExceedsC).
			WithDetail("fraction_of_c", f.Text('f'))
	}
	return f.Multiply(k.C), nil
}
