// File: context.go
// Title: Precision Context
// Description: A Context fixes the significant-digit precision of every
//              Decimal derived from it and owns the apd rounding context.
// Author: msto63
// Version: v0.3.0
// Created: 2025-11-02
// Modified: 2025-11-02
//
// Change History:
// - 2025-11-02 v0.3.0: Initial implementation

package mathx

import (
	"math"
	"strings"

	"github.com/cockroachdb/apd/v3"

	rerr "github.com/msto63/relativity/foundation/core/error"
)

const (
	// MinDigits is the smallest supported working precision
	MinDigits = 1

	// MaxDigits bounds the working precision to keep transcendental
	// functions tractable
	MaxDigits = 10000

	// GuardDigits is the default number of extra digits carried through
	// composite calculations before the final rounding
	GuardDigits = 10
)

// Context carries the working precision for a family of decimals
type Context struct {
	digits int
	ac     *apd.Context
}

// NewContext creates a context rounding to the given number of significant digits
func NewContext(digits int) (*Context, error) {
	if digits < MinDigits || digits > MaxDigits {
		return nil, rerr.Newf("precision must be between %d and %d digits, got %d", MinDigits, MaxDigits, digits).
			WithCode(rerr.CodeInvalidPrecision).
			WithDetail("digits", digits)
	}
	return newContext(digits), nil
}

// MustNewContext is like NewContext but panics on an invalid precision
func MustNewContext(digits int) *Context {
	c, err := NewContext(digits)
	if err != nil {
		panic(err)
	}
	return c
}

func newContext(digits int) *Context {
	ac := apd.BaseContext.WithPrecision(uint32(digits))
	ac.Rounding = apd.RoundHalfEven
	// Underflow flushes toward zero and overflow yields infinity; neither
	// is an error at this layer.
	ac.Traps = apd.DefaultTraps &^ (apd.Underflow | apd.Subnormal | apd.Overflow)
	return &Context{digits: digits, ac: ac}
}

// Digits returns the number of significant digits
func (c *Context) Digits() int {
	return c.digits
}

// WithExtraDigits returns a context with additional guard digits
func (c *Context) WithExtraDigits(extra int) *Context {
	d := c.digits + extra
	if d < MinDigits {
		d = MinDigits
	}
	return newContext(d)
}

// New parses a decimal string and rounds it to the context precision
func (c *Context) New(s string) (Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Decimal{}, rerr.New("empty numeric string").WithCode(rerr.CodeInvalidInputType)
	}
	v, _, err := apd.NewFromString(trimmed)
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "parse decimal").
			WithCode(rerr.CodeInvalidInputType).
			WithDetail("input", s)
	}
	if v.Form != apd.Finite {
		return Decimal{}, rerr.Newf("non-finite value %q", s).WithCode(rerr.CodeInvalidInputType)
	}
	return c.round(v), nil
}

// MustNew is like New but panics on malformed input
func (c *Context) MustNew(s string) Decimal {
	d, err := c.New(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromFloat converts a float64 through its shortest decimal representation,
// so 0.1 becomes exactly 0.1 rather than the nearest binary fraction
func (c *Context) FromFloat(f float64) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, rerr.Newf("non-finite float %v", f).WithCode(rerr.CodeInvalidInputType)
	}
	v, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		return Decimal{}, rerr.Wrap(err, "convert float").WithCode(rerr.CodeInvalidInputType)
	}
	return c.round(v), nil
}

// FromInt converts an integer
func (c *Context) FromInt(i int64) Decimal {
	return c.round(apd.New(i, 0))
}

// Zero returns 0 in this context
func (c *Context) Zero() Decimal {
	return Decimal{v: apd.New(0, 0), ctx: c}
}

// One returns 1 in this context
func (c *Context) One() Decimal {
	return Decimal{v: apd.New(1, 0), ctx: c}
}

// Round re-rounds a decimal from any context into this one
func (c *Context) Round(d Decimal) Decimal {
	return c.round(d.val())
}

func (c *Context) round(v *apd.Decimal) Decimal {
	r := new(apd.Decimal)
	if _, err := c.ac.Round(r, v); err != nil {
		r.Form = apd.NaN
	}
	return Decimal{v: r, ctx: c}
}
