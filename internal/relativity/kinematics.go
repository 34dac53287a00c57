package relativity

import (
	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
)

// finite turns an overflowed intermediate into a precision failure
func finite(op string, d mathx.Decimal, err error) (mathx.Decimal, error) {
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, op)
	}
	if !d.IsFinite() {
		return mathx.Decimal{}, rerr.Newf("%s: result exceeds the representable range", op).
			WithCode(rerr.CodePrecisionFailure).
			WithOperation(op)
	}
	return d, nil
}

// belowC fails with ErrPrecisionFailure when a velocity computed from
// valid inputs rounds to c at the working precision. The error is fresh so
// it never matches ErrVelocityExceedsC.
func (k *Constants) belowC(op string, v mathx.Decimal) (mathx.Decimal, error) {
	if v.Abs().GreaterThanOrEqual(k.C) {
		return mathx.Decimal{}, rerr.Newf("%s rounds to the speed of light; raise the working precision", op).
			WithCode(rerr.CodePrecisionFailure).
			WithOperation(op).
			WithDetail("digits", k.Digits)
	}
	return v, nil
}

// properRatio returns |a|*|tau|/c, the rapidity reached after proper time tau
func (k *Constants) properRatio(a, tau any) (mathx.Decimal, mathx.Decimal, error) {
	v, err := k.ensureAll(a, tau)
	if err != nil {
		return mathx.Decimal{}, mathx.Decimal{}, err
	}
	acc := v[0].Abs()
	x, err := acc.Multiply(v[1].Abs()).Divide(k.C)
	return acc, x, err
}

// RelativisticVelocity returns c*tanh(a*tau/c), the velocity after proper
// time tau at constant proper acceleration a
func (e *Engine) RelativisticVelocity(a, tau any) (mathx.Decimal, error) {
	k := e.Constants()
	_, x, err := k.properRatio(a, tau)
	if err != nil {
		return mathx.Decimal{}, err
	}
	t, err := x.Tanh()
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "relativistic velocity")
	}
	return k.belowC("relativistic velocity", k.C.Multiply(t))
}

// RelativisticDistance returns (c^2/a)(cosh(a*tau/c) - 1), the coordinate
// distance covered after proper time tau
func (e *Engine) RelativisticDistance(a, tau any) (mathx.Decimal, error) {
	k := e.Constants()
	acc, x, err := k.properRatio(a, tau)
	if err != nil {
		return mathx.Decimal{}, err
	}
	cm1, err := x.CoshMinusOne()
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "relativistic distance")
	}
	scale, err := k.CSquared.Divide(acc)
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "relativistic distance")
	}
	return finite("relativistic distance", scale.Multiply(cm1), nil)
}

// RelativisticTimeForDistance returns (c/a)*acosh(d*a/c^2 + 1), the proper
// time needed to cover coordinate distance d from rest
func (e *Engine) RelativisticTimeForDistance(a, d any) (mathx.Decimal, error) {
	k := e.Constants()
	v, err := k.ensureAll(a, d)
	if err != nil {
		return mathx.Decimal{}, err
	}
	acc, dist := v[0].Abs(), v[1].Abs()

	excess, err := dist.Multiply(acc).Divide(k.CSquared)
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "time for distance")
	}
	phi, err := excess.Acosh1p()
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "time for distance")
	}
	scale, err := k.C.Divide(acc)
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "time for distance")
	}
	return scale.Multiply(phi), nil
}

// CoordinateTime returns (c/a)*sinh(a*tau/c), the time elapsed in the
// launch frame while the traveller experiences tau
func (e *Engine) CoordinateTime(a, tau any) (mathx.Decimal, error) {
	k := e.Constants()
	v, err := k.ensureAll(a, tau)
	if err != nil {
		return mathx.Decimal{}, err
	}
	x, err := v[0].Multiply(v[1]).Divide(k.C)
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "coordinate time")
	}
	s, err := x.Sinh()
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "coordinate time")
	}
	scale, err := k.C.Divide(v[0])
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "coordinate time")
	}
	return finite("coordinate time", scale.Multiply(s), nil)
}

// coordRatio returns a*t/c and sqrt(1 + (a*t/c)^2)
func (k *Constants) coordRatio(acc, t mathx.Decimal) (mathx.Decimal, mathx.Decimal, error) {
	u, err := acc.Multiply(t).Divide(k.C)
	if err != nil {
		return mathx.Decimal{}, mathx.Decimal{}, err
	}
	root, err := k.One.Add(u.Square()).Sqrt()
	return u, root, err
}

// RelativisticVelocityCoord returns a*t/sqrt(1 + (a*t/c)^2), the velocity
// after coordinate time t
func (e *Engine) RelativisticVelocityCoord(a, t any) (mathx.Decimal, error) {
	k := e.Constants()
	v, err := k.ensureAll(a, t)
	if err != nil {
		return mathx.Decimal{}, err
	}
	u, root, err := k.coordRatio(v[0], v[1])
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "velocity from coordinate time")
	}
	r, err := k.C.Multiply(u).Divide(root)
	if r, err = finite("velocity from coordinate time", r, err); err != nil {
		return mathx.Decimal{}, err
	}
	return k.belowC("velocity from coordinate time", r)
}

// RelativisticDistanceCoord returns (c^2/a)(sqrt(1 + (a*t/c)^2) - 1), the
// distance covered after coordinate time t
func (e *Engine) RelativisticDistanceCoord(a, t any) (mathx.Decimal, error) {
	k := e.Constants()
	v, err := k.ensureAll(a, t)
	if err != nil {
		return mathx.Decimal{}, err
	}
	u, root, err := k.coordRatio(v[0], v[1])
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "distance from coordinate time")
	}
	// sqrt(1+u^2) - 1 == u^2 / (sqrt(1+u^2) + 1), without the cancellation
	excess, err := u.Square().Divide(root.Add(k.One))
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "distance from coordinate time")
	}
	scale, err := k.CSquared.Divide(v[0])
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "distance from coordinate time")
	}
	return finite("distance from coordinate time", scale.Multiply(excess), nil)
}

// SimpleDistance returns the Newtonian distance a*t^2/2
func (e *Engine) SimpleDistance(a, t any) (mathx.Decimal, error) {
	k := e.Constants()
	v, err := k.ensureAll(a, t)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return k.Half.Multiply(v[0]).Multiply(v[1].Square()), nil
}

// TauToVelocity returns (c/a)*atanh(v/c), the proper time needed to reach
// velocity v from rest
func (e *Engine) TauToVelocity(a, velocity any) (mathx.Decimal, error) {
	k := e.Constants()
	acc, err := k.ensure(a)
	if err != nil {
		return mathx.Decimal{}, err
	}
	phi, err := k.rapidity(velocity)
	if err != nil {
		return mathx.Decimal{}, err
	}
	scale, err := k.C.Divide(acc.Abs())
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "proper time to velocity")
	}
	return scale.Multiply(phi.Abs()), nil
}

func (k *Constants) rapidity(velocity any) (mathx.Decimal, error) {
	v, err := k.checkVelocity(velocity, "")
	if err != nil {
		return mathx.Decimal{}, err
	}
	beta, err := v.Divide(k.C)
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "rapidity")
	}
	if beta.Abs().LessThan(k.Half) {
		return beta.Atanh()
	}

	// Near c, atanh(v/c) = ln((c+v)/(c-v))/2 keeps c-v exact where v/c
	// would already have rounded.
	w := k.Ctx.WithExtraDigits(mathx.GuardDigits)
	cw, vw := k.C.In(w), v.In(w)
	ratio, err := cw.Add(vw).Divide(cw.Subtract(vw))
	if err != nil {
		return mathx.Decimal{}, rerr.New("velocity rounds to the speed of light; raise the working precision").
			WithCode(rerr.CodePrecisionFailure).
			WithDetail("velocity", v.Text('f'))
	}
	ln, err := ratio.Ln()
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "rapidity")
	}
	return ln.Half().In(k.Ctx), nil
}

// RapidityFromVelocity returns atanh(v/c)
func (e *Engine) RapidityFromVelocity(velocity any) (mathx.Decimal, error) {
	return e.Constants().rapidity(velocity)
}

// VelocityFromRapidity returns c*tanh(phi). A rapidity so large that the
// velocity rounds to c at the working precision fails with
// ErrPrecisionFailure.
func (e *Engine) VelocityFromRapidity(rapidity any) (mathx.Decimal, error) {
	k := e.Constants()
	phi, err := k.ensure(rapidity)
	if err != nil {
		return mathx.Decimal{}, err
	}
	t, err := phi.Tanh()
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "velocity from rapidity")
	}
	return k.belowC("velocity from rapidity", k.C.Multiply(t))
}

// AddVelocities returns (v1 + v2) / (1 + v1*v2/c^2)
func (e *Engine) AddVelocities(v1, v2 any) (mathx.Decimal, error) {
	k := e.Constants()
	a, err := k.checkVelocity(v1, "first velocity must be less than the speed of light")
	if err != nil {
		return mathx.Decimal{}, err
	}
	b, err := k.checkVelocity(v2, "second velocity must be less than the speed of light")
	if err != nil {
		return mathx.Decimal{}, err
	}
	product, err := a.Multiply(b).Divide(k.CSquared)
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "add velocities")
	}
	sum, err := a.Add(b).Divide(k.One.Add(product))
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "add velocities")
	}
	return k.belowC("add velocities", sum)
}

// lorentz returns gamma = c / sqrt((c - v)(c + v)) for an already checked v.
// Factoring 1 - (v/c)^2 this way keeps c - v exact near light speed.
func (k *Constants) lorentz(v mathx.Decimal) (mathx.Decimal, error) {
	root, err := k.C.Subtract(v).Multiply(k.C.Add(v)).Sqrt()
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "lorentz factor")
	}
	return k.C.Divide(root)
}

// LorentzFactor returns 1 / sqrt(1 - v^2/c^2)
func (e *Engine) LorentzFactor(velocity any) (mathx.Decimal, error) {
	k := e.Constants()
	v, err := k.checkVelocity(velocity, "")
	if err != nil {
		return mathx.Decimal{}, err
	}
	return k.lorentz(v)
}

// LengthContractionVelocity returns the contracted length L*sqrt(1 - v^2/c^2)
func (e *Engine) LengthContractionVelocity(length, velocity any) (mathx.Decimal, error) {
	k := e.Constants()
	l, err := k.ensure(length)
	if err != nil {
		return mathx.Decimal{}, err
	}
	v, err := k.checkVelocity(velocity, "")
	if err != nil {
		return mathx.Decimal{}, err
	}
	gamma, err := k.lorentz(v)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return l.Divide(gamma)
}

// DopplerFactor returns sqrt((1 + beta)/(1 - beta)), the frequency ratio for
// a source approaching at v; a receding source has v < 0
func (e *Engine) DopplerFactor(velocity any) (mathx.Decimal, error) {
	k := e.Constants()
	v, err := k.checkVelocity(velocity, "")
	if err != nil {
		return mathx.Decimal{}, err
	}
	return k.doppler(v)
}

func (k *Constants) doppler(v mathx.Decimal) (mathx.Decimal, error) {
	ratio, err := k.C.Add(v).Divide(k.C.Subtract(v))
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "doppler")
	}
	return ratio.Sqrt()
}

// DopplerShift returns the observed frequency of light emitted at
// frequency by a source moving at speed |v|, towards the observer when
// approaching is true
func (e *Engine) DopplerShift(frequency, velocity any, approaching bool) (mathx.Decimal, error) {
	k := e.Constants()
	f, err := k.ensure(frequency)
	if err != nil {
		return mathx.Decimal{}, err
	}
	v, err := k.checkVelocity(velocity, "")
	if err != nil {
		return mathx.Decimal{}, err
	}
	v = v.Abs()
	if !approaching {
		v = v.Neg()
	}
	factor, err := k.doppler(v)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return f.Multiply(factor), nil
}
