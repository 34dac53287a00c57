// File: hyperbolic.go
// Title: Hyperbolic Functions
// Description: sinh, cosh, tanh and their inverses evaluated with guard
//              digits so that small results keep full relative precision.
// Author: msto63
// Version: v0.3.0
// Created: 2025-11-02
// Modified: 2025-11-02
//
// Change History:
// - 2025-11-02 v0.3.0: Initial implementation

package mathx

import (
	rerr "github.com/msto63/relativity/foundation/core/error"
)

// isTiny reports whether the cubic term of the odd hyperbolic series is
// below the working precision, in which case f(x) rounds to x
func isTiny(d Decimal) bool {
	return 2*d.Magnitude() < -int64(d.Context().Digits())-2
}

// cancellationDigits is the number of leading digits lost when a value of
// this magnitude is recovered from a difference of numbers near one
func cancellationDigits(d Decimal) int {
	if m := d.Magnitude(); m < 0 {
		return int(-m)
	}
	return 0
}

// Sinh returns the hyperbolic sine of d
func (d Decimal) Sinh() (Decimal, error) {
	c := d.Context()
	if d.IsZero() {
		return c.Zero(), nil
	}
	if isTiny(d) {
		return d, nil
	}

	w := c.WithExtraDigits(GuardDigits + cancellationDigits(d))
	e, err := d.Abs().In(w).Exp()
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "sinh")
	}
	inv, err := w.One().Divide(e)
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "sinh")
	}

	s := e.Subtract(inv).Half()
	if d.Sign() < 0 {
		s = s.Neg()
	}
	return s.In(c), nil
}

// Cosh returns the hyperbolic cosine of d
func (d Decimal) Cosh() (Decimal, error) {
	c := d.Context()
	if d.IsZero() {
		return c.One(), nil
	}

	w := c.WithExtraDigits(GuardDigits)
	e, err := d.Abs().In(w).Exp()
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "cosh")
	}
	inv, err := w.One().Divide(e)
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "cosh")
	}
	return e.Add(inv).Half().In(c), nil
}

// CoshMinusOne returns cosh(d) - 1 computed as 2*sinh(d/2)^2, which stays
// accurate when d is close to zero
func (d Decimal) CoshMinusOne() (Decimal, error) {
	c := d.Context()
	if d.IsZero() {
		return c.Zero(), nil
	}

	w := c.WithExtraDigits(GuardDigits)
	s, err := d.In(w).Half().Sinh()
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "cosh-1")
	}
	return s.Square().Add(s.Square()).In(c), nil
}

// Tanh returns the hyperbolic tangent of d. Arguments large enough that
// the result is indistinguishable from one return exactly ±1.
func (d Decimal) Tanh() (Decimal, error) {
	c := d.Context()
	if d.IsZero() {
		return c.Zero(), nil
	}
	if isTiny(d) {
		return d, nil
	}

	w := c.WithExtraDigits(GuardDigits + cancellationDigits(d))
	x := d.Abs().In(w)

	var t Decimal
	if x.LessThan(w.One()) {
		s, err := x.Sinh()
		if err != nil {
			return Decimal{}, rerr.Wrap(err, "tanh")
		}
		ch, err := x.Cosh()
		if err != nil {
			return Decimal{}, rerr.Wrap(err, "tanh")
		}
		if t, err = s.Divide(ch); err != nil {
			return Decimal{}, rerr.Wrap(err, "tanh")
		}
	} else {
		e, err := x.Add(x).Neg().Exp()
		if err != nil {
			return Decimal{}, rerr.Wrap(err, "tanh")
		}
		one := w.One()
		if t, err = one.Subtract(e).Divide(one.Add(e)); err != nil {
			return Decimal{}, rerr.Wrap(err, "tanh")
		}
	}

	if d.Sign() < 0 {
		t = t.Neg()
	}
	return t.In(c), nil
}

// Asinh returns the inverse hyperbolic sine of d
func (d Decimal) Asinh() (Decimal, error) {
	c := d.Context()
	if d.IsZero() {
		return c.Zero(), nil
	}
	if isTiny(d) {
		return d, nil
	}

	w := c.WithExtraDigits(GuardDigits + cancellationDigits(d))
	x := d.Abs().In(w)
	root, err := x.Square().Add(w.One()).Sqrt()
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "asinh")
	}
	r, err := x.Add(root).Ln()
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "asinh")
	}
	if d.Sign() < 0 {
		r = r.Neg()
	}
	return r.In(c), nil
}

// Acosh returns the inverse hyperbolic cosine of d, defined for d >= 1
func (d Decimal) Acosh() (Decimal, error) {
	c := d.Context()
	one := c.One()
	if d.LessThan(one) {
		return Decimal{}, domainError("acosh argument below one", "acosh")
	}
	// d has at most c.Digits() significant digits, so d-1 is exact once
	// computed with guard digits.
	w := c.WithExtraDigits(GuardDigits)
	excess := d.In(w).Subtract(w.One())
	r, err := c.Round(excess).Acosh1p()
	if err != nil {
		return Decimal{}, err
	}
	return r, nil
}

// Acosh1p returns acosh(1 + d) without forming 1 + d, so arguments just
// above one keep their precision
func (d Decimal) Acosh1p() (Decimal, error) {
	c := d.Context()
	if d.Sign() < 0 {
		return Decimal{}, domainError("acosh argument below one", "acosh")
	}
	if d.IsZero() {
		return c.Zero(), nil
	}

	w := c.WithExtraDigits(GuardDigits + cancellationDigits(d) + 2)
	e := d.In(w)
	one := w.One()
	two := w.FromInt(2)

	root, err := e.Multiply(two.Add(e)).Sqrt()
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "acosh")
	}
	r, err := one.Add(e).Add(root).Ln()
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "acosh")
	}
	return r.In(c), nil
}

// Atanh returns the inverse hyperbolic tangent of d, defined for |d| < 1
func (d Decimal) Atanh() (Decimal, error) {
	c := d.Context()
	if d.Abs().GreaterThanOrEqual(c.One()) {
		return Decimal{}, domainError("atanh argument outside (-1, 1)", "atanh")
	}
	if d.IsZero() {
		return c.Zero(), nil
	}
	if isTiny(d) {
		return d, nil
	}

	w := c.WithExtraDigits(GuardDigits + cancellationDigits(d))
	x := d.In(w)
	one := w.One()
	q, err := one.Add(x).Divide(one.Subtract(x))
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "atanh")
	}
	l, err := q.Ln()
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "atanh")
	}
	return l.Half().In(c), nil
}
