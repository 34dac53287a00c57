package relativity

import (
	"strconv"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
)

// IntervalKind classifies a spacetime interval
type IntervalKind int

const (
	Timelike IntervalKind = iota
	Lightlike
	Spacelike
)

// String returns the conventional name of the interval class
func (k IntervalKind) String() string {
	switch k {
	case Timelike:
		return "timelike"
	case Lightlike:
		return "lightlike"
	case Spacelike:
		return "spacelike"
	default:
		return "unknown"
	}
}

// lightlikeSlack is how many trailing digits of the working precision may
// be rounding noise before an interval counts as non-null
const lightlikeSlack = 5

// Interval is the squared invariant interval between two events together
// with its classification
type Interval struct {
	Squared mathx.Decimal // (c dt)^2 - dx^2 - dy^2 - dz^2, m^2
	Kind    IntervalKind
}

// Separation is the invariant separation implied by an interval: proper
// time for timelike pairs, proper distance for spacelike pairs
type Separation struct {
	Kind           IntervalKind
	ProperTime     mathx.Decimal // s, zero unless timelike
	ProperDistance mathx.Decimal // m, zero unless spacelike
}

// SpacetimeInterval1D returns (c*dt)^2 - dx^2
func (e *Engine) SpacetimeInterval1D(dt, dx any) (mathx.Decimal, error) {
	iv, err := e.Interval3D(dt, dx, 0, 0)
	return iv.Squared, err
}

// SpacetimeInterval3D returns (c*dt)^2 - dx^2 - dy^2 - dz^2
func (e *Engine) SpacetimeInterval3D(dt, dx, dy, dz any) (mathx.Decimal, error) {
	iv, err := e.Interval3D(dt, dx, dy, dz)
	return iv.Squared, err
}

// Interval1D returns the classified interval for separations dt and dx
func (e *Engine) Interval1D(dt, dx any) (Interval, error) {
	return e.Interval3D(dt, dx, 0, 0)
}

// Interval3D returns the classified interval for separations dt, dx, dy, dz.
// The interval is lightlike when its magnitude is within rounding noise of
// the summed squares it was computed from.
func (e *Engine) Interval3D(dt, dx, dy, dz any) (Interval, error) {
	k := e.Constants()
	v, err := k.ensureAll(dt, dx, dy, dz)
	if err != nil {
		return Interval{}, err
	}
	timePart := k.C.Multiply(v[0]).Square()
	space := v[1].Square().Add(v[2].Square()).Add(v[3].Square())
	s2 := timePart.Subtract(space)
	return Interval{Squared: s2, Kind: k.classify(s2, timePart.Add(space))}, nil
}

// ClassifyInterval classifies a squared interval whose operands summed to
// scale in magnitude. A zero scale classifies exact zero as lightlike.
func (e *Engine) ClassifyInterval(squared, scale any) (IntervalKind, error) {
	k := e.Constants()
	v, err := k.ensureAll(squared, scale)
	if err != nil {
		return Timelike, err
	}
	return k.classify(v[0], v[1].Abs()), nil
}

func (k *Constants) classify(s2, scale mathx.Decimal) IntervalKind {
	exp := int64(lightlikeSlack - k.Digits)
	tolerance := scale.Multiply(k.Ctx.MustNew("1e" + strconv.FormatInt(exp, 10)))
	switch {
	case s2.Abs().LessThanOrEqual(tolerance):
		return Lightlike
	case s2.Sign() > 0:
		return Timelike
	default:
		return Spacelike
	}
}

// MinSeparation converts an interval into proper time or proper distance
func (e *Engine) MinSeparation(iv Interval) (Separation, error) {
	k := e.Constants()
	sep := Separation{Kind: iv.Kind, ProperTime: k.Zero, ProperDistance: k.Zero}
	switch iv.Kind {
	case Timelike:
		root, err := iv.Squared.In(k.Ctx).Sqrt()
		if err != nil {
			return Separation{}, rerr.Wrap(err, "proper time")
		}
		if sep.ProperTime, err = root.Divide(k.C); err != nil {
			return Separation{}, rerr.Wrap(err, "proper time")
		}
	case Spacelike:
		root, err := iv.Squared.In(k.Ctx).Neg().Sqrt()
		if err != nil {
			return Separation{}, rerr.Wrap(err, "proper distance")
		}
		sep.ProperDistance = root
	}
	return sep, nil
}

// Event is a point in spacetime
type Event struct {
	T, X, Y, Z mathx.Decimal
}

// LorentzTransform1D boosts the event (t, x) into a frame moving at v
// along x: t' = gamma(t - v x/c^2), x' = gamma(x - v t)
func (e *Engine) LorentzTransform1D(t, x, velocity any) (Event, error) {
	return e.LorentzTransform3D(t, x, 0, 0, velocity)
}

// LorentzTransform3D boosts (t, x, y, z) along x; y and z are unchanged
func (e *Engine) LorentzTransform3D(t, x, y, z, velocity any) (Event, error) {
	k := e.Constants()
	coords, err := k.ensureAll(t, x, y, z)
	if err != nil {
		return Event{}, err
	}
	v, err := k.checkVelocity(velocity, "")
	if err != nil {
		return Event{}, err
	}
	gamma, err := k.lorentz(v)
	if err != nil {
		return Event{}, err
	}
	shift, err := v.Multiply(coords[1]).Divide(k.CSquared)
	if err != nil {
		return Event{}, rerr.Wrap(err, "lorentz transform")
	}
	return Event{
		T: gamma.Multiply(coords[0].Subtract(shift)),
		X: gamma.Multiply(coords[1].Subtract(v.Multiply(coords[0]))),
		Y: coords[2],
		Z: coords[3],
	}, nil
}
