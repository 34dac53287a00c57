package relativity

import (
	"sync/atomic"

	"github.com/msto63/relativity/foundation/utils/mathx"
)

// DefaultDigits is the working precision of an engine built with New(0)
const DefaultDigits = 50

// Constants is an immutable snapshot of physical constants at one precision
type Constants struct {
	Digits int
	Ctx    *mathx.Context

	C              mathx.Decimal // speed of light, m/s
	G              mathx.Decimal // standard gravity, m/s^2
	LightYear      mathx.Decimal // m
	AU             mathx.Decimal // astronomical unit, m
	SecondsPerYear mathx.Decimal // Julian year
	GravConst      mathx.Decimal // Newtonian constant of gravitation, m^3/(kg s^2)
	EarthMass      mathx.Decimal // kg
	EarthRadius    mathx.Decimal // m, mean radius at which GM/r^2 is standard gravity
	CSquared       mathx.Decimal
	Zero           mathx.Decimal
	Half           mathx.Decimal
	One            mathx.Decimal
}

func newConstants(digits int) (*Constants, error) {
	ctx, err := mathx.NewContext(digits)
	if err != nil {
		return nil, err
	}
	c := ctx.MustNew("299792458")
	return &Constants{
		Digits:         digits,
		Ctx:            ctx,
		C:              c,
		G:              ctx.MustNew("9.80665"),
		LightYear:      ctx.MustNew("9460730472580800"),
		AU:             ctx.MustNew("149597870700"),
		SecondsPerYear: ctx.FromInt(86400).Multiply(ctx.MustNew("365.25")),
		GravConst:      ctx.MustNew("6.67430e-11"),
		EarthMass:      ctx.MustNew("5.972e24"),
		EarthRadius:    ctx.MustNew("6375325"),
		CSquared:       c.Multiply(c),
		Zero:           ctx.Zero(),
		Half:           ctx.MustNew("0.5"),
		One:            ctx.One(),
	}, nil
}

// Engine is a precision handle for relativistic calculations
type Engine struct {
	constants atomic.Pointer[Constants]
}

// New creates an engine at the given precision. Zero selects DefaultDigits.
func New(digits int) (*Engine, error) {
	if digits == 0 {
		digits = DefaultDigits
	}
	k, err := newConstants(digits)
	if err != nil {
		return nil, err
	}
	e := &Engine{}
	e.constants.Store(k)
	return e, nil
}

// MustNew is like New but panics on an invalid precision
func MustNew(digits int) *Engine {
	e, err := New(digits)
	if err != nil {
		panic(err)
	}
	return e
}

// Configure replaces the constants snapshot with one derived at the new
// precision. Values computed earlier keep their precision.
func (e *Engine) Configure(digits int) error {
	k, err := newConstants(digits)
	if err != nil {
		return err
	}
	e.constants.Store(k)
	return nil
}

// Constants returns the current snapshot
func (e *Engine) Constants() *Constants {
	return e.constants.Load()
}

// Digits returns the current working precision
func (e *Engine) Digits() int {
	return e.Constants().Digits
}
