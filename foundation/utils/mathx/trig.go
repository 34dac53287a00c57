// File: trig.go
// Title: Inverse Tangent
// Description: atan by half-angle reduction and the Gregory series,
//              evaluated with guard digits.
// Author: msto63
// Version: v0.4.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.4.0: Initial implementation

package mathx

import (
	rerr "github.com/msto63/relativity/foundation/core/error"
)

// atanReduced is the bound below which the series is summed directly
const atanReduced = "0.1"

// Atan returns the inverse tangent of d in radians
func (d Decimal) Atan() (Decimal, error) {
	c := d.Context()
	if d.IsZero() {
		return c.Zero(), nil
	}
	if isTiny(d) {
		return d, nil
	}

	w := c.WithExtraDigits(GuardDigits)
	x := d.Abs().In(w)
	one, bound := w.One(), w.MustNew(atanReduced)

	// atan(x) = 2 atan(x / (1 + sqrt(1 + x^2)))
	halvings := 0
	for x.GreaterThan(bound) {
		root, err := one.Add(x.Square()).Sqrt()
		if err != nil {
			return Decimal{}, rerr.Wrap(err, "atan")
		}
		if x, err = x.Divide(one.Add(root)); err != nil {
			return Decimal{}, rerr.Wrap(err, "atan")
		}
		halvings++
	}

	sum, power, x2 := x, x, x.Square()
	stop := x.Magnitude() - int64(w.Digits()) - 1
	for n := int64(3); ; n += 2 {
		power = power.Multiply(x2).Neg()
		term, err := power.Divide(w.FromInt(n))
		if err != nil {
			return Decimal{}, rerr.Wrap(err, "atan")
		}
		if term.IsZero() || term.Magnitude() < stop {
			break
		}
		sum = sum.Add(term)
	}

	for ; halvings > 0; halvings-- {
		sum = sum.Add(sum)
	}
	if d.Sign() < 0 {
		sum = sum.Neg()
	}
	return sum.In(c), nil
}
