// Package propulsion models antimatter rockets that hold a constant proper
// acceleration: the thrust time a fuel load buys and, inversely, the fuel
// fraction a thrust time costs. Two drives are modelled. The photon rocket
// exhausts at c scaled by an efficiency. The pion rocket exhausts charged
// pions at 0.94c, of which only the charged share of the annihilation
// energy can be directed by a magnetic nozzle.
package propulsion

import (
	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
	"github.com/msto63/relativity/internal/relativity"
)

const (
	// DefaultNozzleEfficiency is the pion drive's magnetic nozzle efficiency
	DefaultNozzleEfficiency = "0.85"
	// DefaultPhotonEfficiency is the photon drive's efficiency when solving
	// for a fuel fraction
	DefaultPhotonEfficiency = "0.4"

	pionSpeed = "0.94" // fraction of c
)

// Rocket evaluates the rocket equations at an engine's working precision
type Rocket struct {
	engine *relativity.Engine
}

// New creates a Rocket bound to engine
func New(engine *relativity.Engine) *Rocket {
	return &Rocket{engine: engine}
}

type options struct {
	exhaustFraction any
	acceleration    any
}

// Option adjusts the pion drive model
type Option func(*options)

// WithExhaustFraction sets the share of annihilation energy carried by
// directable exhaust. The default is 2/3, the charged pion share.
func WithExhaustFraction(f any) Option {
	return func(o *options) { o.exhaustFraction = f }
}

// WithAcceleration sets the proper acceleration held during the burn.
// The default is standard gravity.
func WithAcceleration(a any) Option {
	return func(o *options) { o.acceleration = a }
}

// drive holds the exhaust velocity and acceleration of one evaluation
type drive struct {
	k     *relativity.Constants
	accel mathx.Decimal
	ve    mathx.Decimal
}

func (r *Rocket) pionDrive(efficiency any, opts []Option) (drive, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	k := r.engine.Constants()

	eta, err := efficiencyOrDefault(k, "nozzle efficiency", efficiency, DefaultNozzleEfficiency)
	if err != nil {
		return drive{}, err
	}
	fraction, err := k.Ctx.FromInt(2).Divide(k.Ctx.FromInt(3))
	if err != nil {
		return drive{}, err
	}
	if o.exhaustFraction != nil {
		if fraction, err = unitInterval(k, "exhaust fraction", o.exhaustFraction); err != nil {
			return drive{}, err
		}
	}
	accel, err := acceleration(k, o.acceleration)
	if err != nil {
		return drive{}, err
	}

	ve := k.Ctx.MustNew(pionSpeed).Multiply(k.C).Multiply(fraction).Multiply(eta)
	return drive{k: k, accel: accel, ve: ve}, nil
}

func (r *Rocket) photonDrive(efficiency, accel any, fallback string) (drive, error) {
	k := r.engine.Constants()
	eta, err := efficiencyOrDefault(k, "efficiency", efficiency, fallback)
	if err != nil {
		return drive{}, err
	}
	a, err := acceleration(k, accel)
	if err != nil {
		return drive{}, err
	}
	return drive{k: k, accel: a, ve: eta.Multiply(k.C)}, nil
}

// PionRocketAccelTime returns the seconds a pion rocket with the given fuel
// and dry masses can hold its acceleration: (ve/a)*ln((dry+fuel)/dry). A nil
// efficiency selects DefaultNozzleEfficiency. No fuel buys no time.
func (r *Rocket) PionRocketAccelTime(fuel, dry, efficiency any, opts ...Option) (mathx.Decimal, error) {
	d, err := r.pionDrive(efficiency, opts)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return d.accelTime(fuel, dry)
}

// PionRocketFuelFraction returns the fuel share of initial mass needed to
// hold accel for thrustTime seconds: 1 - exp(-a*t/ve). A nil accel selects
// standard gravity and a nil efficiency DefaultNozzleEfficiency. Only
// WithExhaustFraction is honoured from opts.
func (r *Rocket) PionRocketFuelFraction(thrustTime, accel, efficiency any, opts ...Option) (mathx.Decimal, error) {
	all := append(append([]Option{}, opts...), WithAcceleration(accel))
	d, err := r.pionDrive(efficiency, all)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return d.fuelFraction(thrustTime)
}

// PionRocketFuelFractionsMultiple evaluates PionRocketFuelFraction for each
// efficiency, preserving order
func (r *Rocket) PionRocketFuelFractionsMultiple(thrustTime, accel any, efficiencies []any, opts ...Option) ([]mathx.Decimal, error) {
	out := make([]mathx.Decimal, 0, len(efficiencies))
	for i, eta := range efficiencies {
		if eta == nil {
			return nil, outOfRange("efficiency", "must be set", i)
		}
		f, err := r.PionRocketFuelFraction(thrustTime, accel, eta, opts...)
		if err != nil {
			return nil, rerr.Wrap(err, "fuel fractions").WithDetail("index", i)
		}
		out = append(out, f)
	}
	return out, nil
}

// PhotonRocketAccelTime returns (eta*c/a)*ln((dry+fuel)/dry), the seconds a
// photon rocket can hold accel. Nil efficiency means an ideal drive and nil
// accel standard gravity.
func (r *Rocket) PhotonRocketAccelTime(fuel, dry, efficiency, accel any) (mathx.Decimal, error) {
	d, err := r.photonDrive(efficiency, accel, "1")
	if err != nil {
		return mathx.Decimal{}, err
	}
	return d.accelTime(fuel, dry)
}

// PhotonRocketFuelFraction returns 1 - exp(-a*t/(eta*c)). Nil efficiency
// selects DefaultPhotonEfficiency and nil accel standard gravity.
func (r *Rocket) PhotonRocketFuelFraction(thrustTime, accel, efficiency any) (mathx.Decimal, error) {
	d, err := r.photonDrive(efficiency, accel, DefaultPhotonEfficiency)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return d.fuelFraction(thrustTime)
}

func (d drive) accelTime(fuel, dry any) (mathx.Decimal, error) {
	v, err := d.k.EnsureAll(fuel, dry)
	if err != nil {
		return mathx.Decimal{}, err
	}
	m, mf := v[0], v[1]
	if mf.Sign() <= 0 {
		return mathx.Decimal{}, outOfRange("dry mass", "must be positive", mf.Text('f'))
	}
	if m.Sign() <= 0 {
		return d.k.Zero, nil
	}

	x, err := m.Divide(mf)
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "accel time")
	}
	lnRatio, err := log1p(d.k, x)
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "accel time")
	}
	scale, err := d.ve.Divide(d.accel)
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "accel time")
	}
	return scale.Multiply(lnRatio), nil
}

func (d drive) fuelFraction(thrustTime any) (mathx.Decimal, error) {
	t, err := d.k.Ensure(thrustTime)
	if err != nil {
		return mathx.Decimal{}, err
	}
	if t.Sign() < 0 {
		return mathx.Decimal{}, outOfRange("thrust time", "must not be negative", t.Text('f'))
	}
	if t.IsZero() {
		return d.k.Zero, nil
	}

	x, err := d.accel.Multiply(t).Divide(d.ve)
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "fuel fraction")
	}
	f, err := oneMinusExpNeg(d.k, x)
	if err != nil || f.GreaterThanOrEqual(d.k.One) {
		return mathx.Decimal{}, rerr.New("fuel fraction rounds to one; raise the working precision").
			WithCode(rerr.CodePrecisionFailure).
			WithDetail("exponent", x.Text('e')).
			WithDetail("digits", d.k.Digits)
	}
	return f, nil
}

// log1p returns ln(1 + x) for x > 0, widening the precision by the digits
// 1 + x would otherwise lose
func log1p(k *relativity.Constants, x mathx.Decimal) (mathx.Decimal, error) {
	w := k.Ctx.WithExtraDigits(mathx.GuardDigits + lostDigits(x))
	sum := w.One().Add(x.In(w))
	ln, err := sum.Ln()
	if err != nil {
		return mathx.Decimal{}, err
	}
	return ln.In(k.Ctx), nil
}

// oneMinusExpNeg returns 1 - exp(-x) for x > 0
func oneMinusExpNeg(k *relativity.Constants, x mathx.Decimal) (mathx.Decimal, error) {
	w := k.Ctx.WithExtraDigits(mathx.GuardDigits + lostDigits(x))
	e, err := x.In(w).Neg().Exp()
	if err != nil {
		return mathx.Decimal{}, err
	}
	return w.One().Subtract(e).In(k.Ctx), nil
}

func lostDigits(x mathx.Decimal) int {
	if mag := x.Magnitude(); mag < 0 {
		return int(-mag)
	}
	return 0
}

func efficiencyOrDefault(k *relativity.Constants, name string, v any, fallback string) (mathx.Decimal, error) {
	if v == nil {
		v = fallback
	}
	return unitInterval(k, name, v)
}

// unitInterval normalizes v and requires 0 < v <= 1
func unitInterval(k *relativity.Constants, name string, v any) (mathx.Decimal, error) {
	d, err := k.Ensure(v)
	if err != nil {
		return mathx.Decimal{}, err
	}
	if d.Sign() <= 0 || d.GreaterThan(k.One) {
		return mathx.Decimal{}, outOfRange(name, "must be in (0, 1]", d.Text('f'))
	}
	return d, nil
}

func acceleration(k *relativity.Constants, v any) (mathx.Decimal, error) {
	if v == nil {
		return k.G, nil
	}
	a, err := k.Ensure(v)
	if err != nil {
		return mathx.Decimal{}, err
	}
	if a.Sign() <= 0 {
		return mathx.Decimal{}, outOfRange("acceleration", "must be positive", a.Text('f'))
	}
	return a, nil
}

func outOfRange(field, reason string, value interface{}) *rerr.Error {
	return rerr.Newf("%s %s", field, reason).
		WithCode(rerr.CodeValueOutOfRange).
		WithDetail("field", field).
		WithDetail("value", value)
}
