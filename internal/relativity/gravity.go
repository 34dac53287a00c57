package relativity

import (
	"strconv"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
)

// fallMaxLevels bounds the quadrature refinements of the proper time lag
const fallMaxLevels = 16

// FreeFallResult describes a drop from rest towards a point mass under
// inverse-square gravity, without drag
type FreeFallResult struct {
	Time     mathx.Decimal // s
	Velocity mathx.Decimal // m/s at the surface
}

// radial holds the closed-form quantities of a radial drop from
// radius+altitude. The fall angle θ satisfies r = r0 cos²θ, and u = tan θ
// at the surface.
type radial struct {
	twoGM    mathx.Decimal
	r0       mathx.Decimal
	scale    mathx.Decimal // sqrt(r0^3 / 2GM), s
	u        mathx.Decimal // sqrt(altitude / radius)
	time     mathx.Decimal
	velocity mathx.Decimal
}

func (k *Constants) radialFall(mass, radius, altitude mathx.Decimal) (radial, error) {
	if mass.Sign() <= 0 {
		return radial{}, outOfRange("mass", "must be positive", mass.Text('f'))
	}
	if radius.Sign() <= 0 {
		return radial{}, outOfRange("radius", "must be positive", radius.Text('f'))
	}
	if altitude.Sign() < 0 {
		return radial{}, outOfRange("altitude", "must not be negative", altitude.Text('f'))
	}

	gm := k.GravConst.Multiply(mass)
	r := radial{twoGM: gm.Add(gm), r0: radius.Add(altitude), time: k.Zero, velocity: k.Zero, u: k.Zero}
	if altitude.IsZero() {
		return r, nil
	}

	cube, err := r.r0.Multiply(r.r0).Multiply(r.r0).Divide(r.twoGM)
	if err != nil {
		return radial{}, err
	}
	if r.scale, err = cube.Sqrt(); err != nil {
		return radial{}, err
	}
	ratio, err := altitude.Divide(radius)
	if err != nil {
		return radial{}, err
	}
	if r.u, err = ratio.Sqrt(); err != nil {
		return radial{}, err
	}

	// t = scale * (θ + sin θ cos θ)
	theta, err := r.u.Atan()
	if err != nil {
		return radial{}, err
	}
	sinCos, err := r.u.Divide(k.One.Add(r.u.Square()))
	if err != nil {
		return radial{}, err
	}
	r.time = r.scale.Multiply(theta.Add(sinCos))

	// v^2 = 2GM (1/R - 1/r0) = 2GM h / (R r0)
	v2, err := r.twoGM.Multiply(altitude).Divide(radius.Multiply(r.r0))
	if err != nil {
		return radial{}, err
	}
	if r.velocity, err = v2.Sqrt(); err != nil {
		return radial{}, err
	}
	return r, nil
}

// GravityForRadius returns the Newtonian gravitational acceleration GM/r²
// at distance radius from the centre of mass.
func (e *Engine) GravityForRadius(mass, radius any) (mathx.Decimal, error) {
	k := e.Constants()
	v, err := k.ensureAll(mass, radius)
	if err != nil {
		return mathx.Decimal{}, err
	}
	m, r := v[0], v[1]
	if m.Sign() < 0 {
		return mathx.Decimal{}, outOfRange("mass", "must not be negative", m.Text('f'))
	}
	if r.Sign() <= 0 {
		return mathx.Decimal{}, outOfRange("radius", "must be positive", r.Text('f'))
	}
	g, err := k.GravConst.Multiply(m).Divide(r.Square())
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "gravity for radius")
	}
	return g, nil
}

// FreeFall returns the time to drop from altitude above a body of the given
// mass and radius to its surface, and the impact velocity. Gravity follows
// the inverse-square law all the way down.
func (e *Engine) FreeFall(mass, radius, altitude any) (FreeFallResult, error) {
	k := e.Constants()
	v, err := k.ensureAll(mass, radius, altitude)
	if err != nil {
		return FreeFallResult{}, err
	}
	r, err := k.radialFall(v[0], v[1], v[2])
	if err != nil {
		return FreeFallResult{}, rerr.Wrap(err, "free fall")
	}
	return FreeFallResult{Time: r.time, Velocity: r.velocity}, nil
}

// FreeFallTime is FreeFall without the impact velocity
func (e *Engine) FreeFallTime(mass, radius, altitude any) (mathx.Decimal, error) {
	res, err := e.FreeFall(mass, radius, altitude)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return res.Time, nil
}

// RelativisticFreeFall is FreeFall with the faller's clock: CoordTime is the
// Newtonian fall time, ProperTime integrates dt/γ along the drop. Falls whose
// Newtonian impact velocity reaches c fail with CodeVelocityExceedsC.
func (e *Engine) RelativisticFreeFall(mass, radius, altitude any) (FallResult, error) {
	k := e.Constants()
	v, err := k.ensureAll(mass, radius, altitude)
	if err != nil {
		return FallResult{}, err
	}
	r, err := k.radialFall(v[0], v[1], v[2])
	if err != nil {
		return FallResult{}, rerr.Wrap(err, "relativistic free fall")
	}
	if r.u.IsZero() {
		return FallResult{ProperTime: k.Zero, CoordTime: k.Zero, Velocity: k.Zero}, nil
	}
	if r.velocity.GreaterThanOrEqual(k.C) {
		return FallResult{}, rerr.New("impact velocity reaches the speed of light").
			WithCode(rerr.CodeVelocityExceedsC).
			WithOperation("relativistic free fall").
			WithDetail("velocity", r.velocity.Text('f'))
	}

	// τ = t - 2·scale·∫₀ᵘ a u² / ((1 + sqrt(1 - a u²)) (1 + u²)²) du with
	// a = 2GM / (r0 c²), so the small lag keeps full relative precision
	a, err := r.twoGM.Divide(r.r0.Multiply(k.CSquared))
	if err != nil {
		return FallResult{}, rerr.Wrap(err, "relativistic free fall")
	}
	lag := func(u mathx.Decimal) (mathx.Decimal, error) {
		au2 := a.Multiply(u.Square())
		root, err := k.One.Subtract(au2).Sqrt()
		if err != nil {
			return mathx.Decimal{}, err
		}
		w := k.One.Add(u.Square())
		return au2.Divide(k.One.Add(root).Multiply(w.Square()))
	}

	twoScale := r.scale.Add(r.scale)
	eps := k.Ctx.MustNew("1e-" + strconv.Itoa(k.Digits+1))
	tol, err := r.time.Multiply(eps).Divide(twoScale)
	if err != nil {
		return FallResult{}, rerr.Wrap(err, "relativistic free fall")
	}
	integral, err := k.integratePanels(lag, r.u, tol)
	if err != nil {
		return FallResult{}, rerr.Wrap(err, "relativistic free fall")
	}

	return FallResult{
		ProperTime: r.time.Subtract(twoScale.Multiply(integral)),
		CoordTime:  r.time,
		Velocity:   r.velocity,
	}, nil
}

// integratePanels integrates f over [0, end] on panels split at 1, 2, 4, ...
// so no panel is wider than its distance from the poles at ±i. Each panel
// gets a share of tol proportional to its width.
func (k *Constants) integratePanels(f func(mathx.Decimal) (mathx.Decimal, error), end, tol mathx.Decimal) (mathx.Decimal, error) {
	sum := k.Zero
	lo, hi := k.Zero, k.One
	for lo.LessThan(end) {
		if hi.GreaterThan(end) {
			hi = end
		}
		share, err := tol.Multiply(hi.Subtract(lo)).Divide(end)
		if err != nil {
			return mathx.Decimal{}, err
		}
		part, err := mathx.Integrate(f, lo, hi, share, fallMaxLevels)
		if err != nil {
			return mathx.Decimal{}, err
		}
		sum = sum.Add(part)
		lo, hi = hi, hi.Add(hi)
	}
	return sum, nil
}
