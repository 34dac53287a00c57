// File: decimal.go
// Title: Decimal Arithmetic Implementation
// Description: Immutable arbitrary-precision decimal bound to a Context.
//              Basic arithmetic, comparisons and the exp/ln/sqrt/pow family.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-11-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core decimal operations
// - 2025-07-26 v0.1.1: Enhanced String() method
// - 2025-11-02 v0.3.0: Rebuilt on apd, values carry their precision context

package mathx

import (
	"github.com/cockroachdb/apd/v3"

	rerr "github.com/msto63/relativity/foundation/core/error"
)

var defaultContext = newContext(34)

// Decimal is an immutable decimal number. The zero value is 0 at the
// default 34-digit precision.
type Decimal struct {
	v   *apd.Decimal
	ctx *Context
}

func (d Decimal) val() *apd.Decimal {
	if d.v == nil {
		return apd.New(0, 0)
	}
	return d.v
}

// Context returns the precision context the decimal belongs to
func (d Decimal) Context() *Context {
	if d.ctx == nil {
		return defaultContext
	}
	return d.ctx
}

func (d Decimal) wrap(v *apd.Decimal) Decimal {
	return Decimal{v: v, ctx: d.Context()}
}

type binaryOp func(r, x, y *apd.Decimal) (apd.Condition, error)

func (d Decimal) apply(op binaryOp, other Decimal) Decimal {
	r := new(apd.Decimal)
	if _, err := op(r, d.val(), other.val()); err != nil {
		r.Form = apd.NaN
	}
	return d.wrap(r)
}

// Add returns d + other
func (d Decimal) Add(other Decimal) Decimal {
	return d.apply(d.Context().ac.Add, other)
}

// Subtract returns d - other
func (d Decimal) Subtract(other Decimal) Decimal {
	return d.apply(d.Context().ac.Sub, other)
}

// Multiply returns d * other
func (d Decimal) Multiply(other Decimal) Decimal {
	return d.apply(d.Context().ac.Mul, other)
}

// Divide returns d / other
func (d Decimal) Divide(other Decimal) (Decimal, error) {
	if other.IsZero() {
		return Decimal{}, domainError("division by zero", "divide")
	}
	r := new(apd.Decimal)
	if _, err := d.Context().ac.Quo(r, d.val(), other.val()); err != nil {
		return Decimal{}, rerr.Wrap(err, "divide").WithCode(rerr.CodeDomainError)
	}
	return d.wrap(r), nil
}

// Half returns d / 2
func (d Decimal) Half() Decimal {
	r := new(apd.Decimal)
	if _, err := d.Context().ac.Quo(r, d.val(), apd.New(2, 0)); err != nil {
		r.Form = apd.NaN
	}
	return d.wrap(r)
}

// Neg returns -d
func (d Decimal) Neg() Decimal {
	return d.wrap(new(apd.Decimal).Neg(d.val()))
}

// Abs returns |d|
func (d Decimal) Abs() Decimal {
	return d.wrap(new(apd.Decimal).Abs(d.val()))
}

// Square returns d * d
func (d Decimal) Square() Decimal {
	return d.Multiply(d)
}

// Sqrt returns the square root of d
func (d Decimal) Sqrt() (Decimal, error) {
	if d.Sign() < 0 {
		return Decimal{}, domainError("square root of a negative number", "sqrt")
	}
	r := new(apd.Decimal)
	if _, err := d.Context().ac.Sqrt(r, d.val()); err != nil {
		return Decimal{}, rerr.Wrap(err, "sqrt").WithCode(rerr.CodeDomainError)
	}
	return d.wrap(r), nil
}

// Exp returns e^d
func (d Decimal) Exp() (Decimal, error) {
	r := new(apd.Decimal)
	if _, err := d.Context().ac.Exp(r, d.val()); err != nil {
		return Decimal{}, rerr.Wrap(err, "exp").WithCode(rerr.CodeDomainError)
	}
	return d.wrap(r), nil
}

// Ln returns the natural logarithm of d
func (d Decimal) Ln() (Decimal, error) {
	if d.Sign() <= 0 {
		return Decimal{}, domainError("logarithm of a non-positive number", "ln")
	}
	r := new(apd.Decimal)
	if _, err := d.Context().ac.Ln(r, d.val()); err != nil {
		return Decimal{}, rerr.Wrap(err, "ln").WithCode(rerr.CodeDomainError)
	}
	return d.wrap(r), nil
}

// Pow returns d^y
func (d Decimal) Pow(y Decimal) (Decimal, error) {
	r := new(apd.Decimal)
	if _, err := d.Context().ac.Pow(r, d.val(), y.val()); err != nil {
		return Decimal{}, rerr.Wrap(err, "pow").WithCode(rerr.CodeDomainError)
	}
	return d.wrap(r), nil
}

// Sign returns -1, 0 or +1
func (d Decimal) Sign() int {
	return d.val().Sign()
}

// IsZero reports whether d is zero
func (d Decimal) IsZero() bool {
	return d.val().IsZero()
}

// IsFinite reports whether d is neither infinite nor NaN
func (d Decimal) IsFinite() bool {
	return d.val().Form == apd.Finite
}

// Cmp compares d and other and returns -1, 0 or +1
func (d Decimal) Cmp(other Decimal) int {
	return d.val().Cmp(other.val())
}

// Equal reports whether d == other
func (d Decimal) Equal(other Decimal) bool {
	return d.Cmp(other) == 0
}

// GreaterThan reports whether d > other
func (d Decimal) GreaterThan(other Decimal) bool {
	return d.Cmp(other) > 0
}

// GreaterThanOrEqual reports whether d >= other
func (d Decimal) GreaterThanOrEqual(other Decimal) bool {
	return d.Cmp(other) >= 0
}

// LessThan reports whether d < other
func (d Decimal) LessThan(other Decimal) bool {
	return d.Cmp(other) < 0
}

// LessThanOrEqual reports whether d <= other
func (d Decimal) LessThanOrEqual(other Decimal) bool {
	return d.Cmp(other) <= 0
}

// Magnitude returns the decimal exponent of the leading digit, so 123
// has magnitude 2 and 0.004 has magnitude -3. Zero reports 0.
func (d Decimal) Magnitude() int64 {
	v := d.val()
	if v.IsZero() || v.Form != apd.Finite {
		return 0
	}
	return int64(v.Exponent) + v.NumDigits() - 1
}

// In re-rounds d into another context
func (d Decimal) In(c *Context) Decimal {
	return c.Round(d)
}

// Float64 returns the nearest float64
func (d Decimal) Float64() float64 {
	f, err := d.val().Float64()
	if err != nil {
		return 0
	}
	return f
}

// Text formats d with the apd verbs: 'f' for plain notation, 'e' for
// scientific and 'G' for the shortest of the two
func (d Decimal) Text(format byte) string {
	return d.val().Text(format)
}

// String returns d in plain or scientific notation, whichever apd
// considers canonical
func (d Decimal) String() string {
	return d.val().String()
}

// MarshalText implements encoding.TextMarshaler using plain notation
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.Text('f')), nil
}

func domainError(message, operation string) *rerr.Error {
	return rerr.New(message).WithCode(rerr.CodeDomainError).WithOperation(operation)
}
