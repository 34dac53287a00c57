// File: integrate.go
// Title: Romberg Quadrature
// Description: Definite integrals of smooth functions by Richardson
//              extrapolation of the trapezoid rule.
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

// minRombergLevels guards against two early estimates agreeing by chance
const minRombergLevels = 4

// Integrate approximates the integral of f over [a, b] in the context of a.
// It refines until two successive extrapolated estimates differ by at most
// tol, and fails with CodePrecisionFailure after maxLevels halvings.
func Integrate(f func(Decimal) (Decimal, error), a, b, tol Decimal, maxLevels int) (Decimal, error) {
	c := a.Context()
	b, tol = b.In(c), tol.In(c).Abs()
	if a.Equal(b) {
		return c.Zero(), nil
	}

	fa, err := f(a)
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "integrate")
	}
	fb, err := f(b)
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "integrate")
	}

	h := b.Subtract(a)
	prev := []Decimal{fa.Add(fb).Multiply(h).Half()}
	for level := 1; level <= maxLevels; level++ {
		h = h.Half()

		sum := c.Zero()
		for k := int64(1); k < int64(1)<<level; k += 2 {
			y, err := f(a.Add(h.Multiply(c.FromInt(k))))
			if err != nil {
				return Decimal{}, rerr.Wrap(err, "integrate")
			}
			sum = sum.Add(y)
		}

		cur := make([]Decimal, level+1)
		cur[0] = prev[0].Half().Add(h.Multiply(sum))
		factor := c.One()
		for j := 1; j <= level; j++ {
			factor = factor.Multiply(c.FromInt(4))
			step, err := cur[j-1].Subtract(prev[j-1]).Divide(factor.Subtract(c.One()))
			if err != nil {
				return Decimal{}, rerr.Wrap(err, "integrate")
			}
			cur[j] = cur[j-1].Add(step)
		}

		if level >= minRombergLevels && cur[level].Subtract(prev[level-1]).Abs().LessThanOrEqual(tol) {
			return cur[level], nil
		}
		prev = cur
	}

	return Decimal{}, rerr.Newf("integral did not converge in %d refinements", maxLevels).
		WithCode(rerr.CodePrecisionFailure).
		WithOperation("integrate").
		WithDetail("digits", c.Digits())
}
