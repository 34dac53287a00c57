package relativity

import (
	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
)

// FlipAndBurnResult describes accelerating to the midpoint and decelerating
// at the same proper acceleration to arrive at rest
type FlipAndBurnResult struct {
	ProperTime   mathx.Decimal // s, whole trip, traveller clock
	PeakVelocity mathx.Decimal // m/s, at the flip
	PeakLorentz  mathx.Decimal
	CoordTime    mathx.Decimal // s, whole trip, launch frame
}

// FallResult describes constant proper acceleration from rest over a
// coordinate distance
type FallResult struct {
	ProperTime mathx.Decimal // s
	CoordTime  mathx.Decimal // s
	Velocity   mathx.Decimal // m/s at arrival
}

// TwinParadoxResult describes a round trip at constant cruise velocity with
// an instantaneous turnaround
type TwinParadoxResult struct {
	EarthTime     mathx.Decimal // s
	TravelerTime  mathx.Decimal // s
	AgeDifference mathx.Decimal // s, EarthTime - TravelerTime
	Lorentz       mathx.Decimal
}

// WarpDriveResult describes the time displacement of an FTL round trip
// combined with a velocity boost. All times are in years and distances in
// light years (c = 1).
type WarpDriveResult struct {
	Lorentz            mathx.Decimal
	SimultaneityShift  mathx.Decimal // v*d/c^2
	EarthTime          mathx.Decimal // both legs + gamma*boost
	TravelerTime       mathx.Decimal // both legs + boost
	EarthClockAtReturn mathx.Decimal // EarthTime - SimultaneityShift
	TimeDisplacement   mathx.Decimal // EarthClockAtReturn - TravelerTime, negative is the past
}

// accelerated holds the hyperbolic quantities of one accelerated leg
type accelerated struct {
	scale mathx.Decimal // c/a
	phi   mathx.Decimal // rapidity reached
}

// legForDistance solves the rapidity reached after covering dist from rest
func (k *Constants) legForDistance(a, dist mathx.Decimal) (accelerated, error) {
	acc := a.Abs()
	if acc.IsZero() {
		return accelerated{}, outOfRange("acceleration", "must be non-zero", a.Text('f'))
	}
	excess, err := dist.Abs().Multiply(acc).Divide(k.CSquared)
	if err != nil {
		return accelerated{}, err
	}
	phi, err := excess.Acosh1p()
	if err != nil {
		return accelerated{}, err
	}
	scale, err := k.C.Divide(acc)
	if err != nil {
		return accelerated{}, err
	}
	return accelerated{scale: scale, phi: phi}, nil
}

// FlipAndBurn plans a flip-and-burn trip over distance at 1 g
func (e *Engine) FlipAndBurn(distance any) (FlipAndBurnResult, error) {
	return e.FlipAndBurnAccel(e.Constants().G, distance)
}

// FlipAndBurnAccel plans a flip-and-burn trip at proper acceleration a
func (e *Engine) FlipAndBurnAccel(a, distance any) (FlipAndBurnResult, error) {
	k := e.Constants()
	v, err := k.ensureAll(a, distance)
	if err != nil {
		return FlipAndBurnResult{}, err
	}
	leg, err := k.legForDistance(v[0], v[1].Half())
	if err != nil {
		return FlipAndBurnResult{}, rerr.Wrap(err, "flip and burn")
	}

	sinh, err := leg.phi.Sinh()
	if err != nil {
		return FlipAndBurnResult{}, rerr.Wrap(err, "flip and burn")
	}
	cosh, err := leg.phi.Cosh()
	if err != nil {
		return FlipAndBurnResult{}, rerr.Wrap(err, "flip and burn")
	}
	tanh, err := leg.phi.Tanh()
	if err != nil {
		return FlipAndBurnResult{}, rerr.Wrap(err, "flip and burn")
	}

	peak, err := k.belowC("flip and burn peak velocity", k.C.Multiply(tanh))
	if err != nil {
		return FlipAndBurnResult{}, err
	}

	two := k.Ctx.FromInt(2)
	return FlipAndBurnResult{
		ProperTime:   two.Multiply(leg.scale).Multiply(leg.phi),
		PeakVelocity: peak,
		PeakLorentz:  cosh,
		CoordTime:    two.Multiply(leg.scale).Multiply(sinh),
	}, nil
}

// Fall returns the times and arrival velocity for accelerating from rest
// over distance at constant proper acceleration a. Gravity gradients and
// drag are ignored.
func (e *Engine) Fall(a, distance any) (FallResult, error) {
	k := e.Constants()
	v, err := k.ensureAll(a, distance)
	if err != nil {
		return FallResult{}, err
	}
	leg, err := k.legForDistance(v[0], v[1])
	if err != nil {
		return FallResult{}, rerr.Wrap(err, "fall")
	}
	sinh, err := leg.phi.Sinh()
	if err != nil {
		return FallResult{}, rerr.Wrap(err, "fall")
	}
	tanh, err := leg.phi.Tanh()
	if err != nil {
		return FallResult{}, rerr.Wrap(err, "fall")
	}
	arrival, err := k.belowC("fall arrival velocity", k.C.Multiply(tanh))
	if err != nil {
		return FallResult{}, err
	}
	return FallResult{
		ProperTime: leg.scale.Multiply(leg.phi),
		CoordTime:  leg.scale.Multiply(sinh),
		Velocity:   arrival,
	}, nil
}

// TwinParadox returns the elapsed times of a trip to distance and back at
// constant velocity. The velocity must be positive and below c.
func (e *Engine) TwinParadox(distance, velocity any) (TwinParadoxResult, error) {
	k := e.Constants()
	d, err := k.ensure(distance)
	if err != nil {
		return TwinParadoxResult{}, err
	}
	v, err := k.checkVelocity(velocity, "")
	if err != nil {
		return TwinParadoxResult{}, err
	}
	if v.Sign() <= 0 {
		return TwinParadoxResult{}, outOfRange("velocity", "must be positive", v.Text('f'))
	}
	if d.Sign() < 0 {
		return TwinParadoxResult{}, outOfRange("distance", "must not be negative", d.Text('f'))
	}

	gamma, err := k.lorentz(v)
	if err != nil {
		return TwinParadoxResult{}, err
	}
	earth, err := d.Add(d).Divide(v)
	if err != nil {
		return TwinParadoxResult{}, rerr.Wrap(err, "twin paradox")
	}
	traveler, err := earth.Divide(gamma)
	if err != nil {
		return TwinParadoxResult{}, rerr.Wrap(err, "twin paradox")
	}
	return TwinParadoxResult{
		EarthTime:     earth,
		TravelerTime:  traveler,
		AgeDifference: earth.Subtract(traveler),
		Lorentz:       gamma,
	}, nil
}

// WarpDriveTimeTravel models an FTL outbound leg, a boost to
// boostVelocityC (fraction of c) held for boostDuration of proper time, and
// an FTL return leg. Transit times are one-way and both legs are counted.
func (e *Engine) WarpDriveTimeTravel(distanceLy, boostVelocityC, outboundYears, returnYears, boostYears any) (WarpDriveResult, error) {
	k := e.Constants()
	v, err := k.ensureAll(distanceLy, boostVelocityC, outboundYears, returnYears, boostYears)
	if err != nil {
		return WarpDriveResult{}, err
	}
	d, beta, out, ret, boost := v[0], v[1], v[2], v[3], v[4]

	if beta.Abs().GreaterThanOrEqual(k.One) {
		return WarpDriveResult{}, rerr.New("boost velocity must be less than c").
			WithCode(rerr.CodeVelocityExceedsC).
			WithDetail("boost_velocity_c", beta.Text('f'))
	}
	durations := []struct {
		name string
		t    mathx.Decimal
	}{
		{"outbound transit", out},
		{"return transit", ret},
		{"boost duration", boost},
	}
	for _, dur := range durations {
		if dur.t.Sign() < 0 {
			return WarpDriveResult{}, outOfRange(dur.name, "must not be negative", dur.t.Text('f'))
		}
	}

	root, err := k.One.Subtract(beta).Multiply(k.One.Add(beta)).Sqrt()
	if err != nil {
		return WarpDriveResult{}, rerr.Wrap(err, "warp drive")
	}
	gamma, err := k.One.Divide(root)
	if err != nil {
		return WarpDriveResult{}, rerr.Wrap(err, "warp drive")
	}

	transit := out.Add(ret)
	shift := beta.Multiply(d)
	earth := transit.Add(gamma.Multiply(boost))
	traveler := transit.Add(boost)
	atReturn := earth.Subtract(shift)

	return WarpDriveResult{
		Lorentz:            gamma,
		SimultaneityShift:  shift,
		EarthTime:          earth,
		TravelerTime:       traveler,
		EarthClockAtReturn: atReturn,
		TimeDisplacement:   atReturn.Subtract(traveler),
	}, nil
}
