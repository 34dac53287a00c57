package handler

import (
	"encoding/json"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
	"github.com/msto63/relativity/internal/relativity"
)

// Frames selecting the clock a time argument is read on
const (
	FrameProper     = "proper"
	FrameCoordinate = "coordinate"
)

// MotionRequest describes constant proper acceleration from rest for a
// time read on the traveller's clock or in the launch frame
type MotionRequest struct {
	Options
	Acceleration json.Number `json:"acceleration,omitempty"` // m/s^2, default 1 g
	Time         json.Number `json:"time"`                   // s
	Frame        string      `json:"frame,omitempty"`        // proper (default) or coordinate
}

func frame(f string) (string, error) {
	switch f {
	case "", FrameProper:
		return FrameProper, nil
	case FrameCoordinate:
		return FrameCoordinate, nil
	default:
		return "", rerr.Newf("unknown frame %q", f).
			WithCode(rerr.CodeValueOutOfRange).
			WithDetail("frame", f)
	}
}

func velocity(c *call, req MotionRequest) (any, error) {
	fr, err := frame(req.Frame)
	if err != nil {
		return nil, err
	}
	a := accelOrG(c, req.Acceleration)

	var v mathx.Decimal
	if fr == FrameProper {
		v, err = c.engine.RelativisticVelocity(a, num(req.Time))
	} else {
		v, err = c.engine.RelativisticVelocityCoord(a, num(req.Time))
	}
	if err != nil {
		return nil, err
	}
	gamma, err := c.engine.LorentzFactor(v)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"frame":    fr,
		"velocity": c.q(v, "m/s"),
		"beta":     c.beta(v),
		"lorentz":  c.q(gamma, ""),
	}, nil
}

func distance(c *call, req MotionRequest) (any, error) {
	fr, err := frame(req.Frame)
	if err != nil {
		return nil, err
	}
	a := accelOrG(c, req.Acceleration)

	resp := map[string]any{"frame": fr}
	var d mathx.Decimal
	if fr == FrameProper {
		if d, err = c.engine.RelativisticDistance(a, num(req.Time)); err != nil {
			return nil, err
		}
		t, err := c.engine.CoordinateTime(a, num(req.Time))
		if err != nil {
			return nil, err
		}
		resp["coordinate_time"] = c.q(t, "s")
	} else {
		if d, err = c.engine.RelativisticDistanceCoord(a, num(req.Time)); err != nil {
			return nil, err
		}
		newton, err := c.engine.SimpleDistance(a, num(req.Time))
		if err != nil {
			return nil, err
		}
		resp["newtonian_distance"] = c.q(newton, "m")
	}
	k := c.engine.Constants()
	ly, err := d.Divide(k.LightYear)
	if err != nil {
		return nil, err
	}
	resp["distance"] = c.q(d, "m")
	resp["light_years"] = c.q(ly, "ly")
	return resp, nil
}

// TimeForDistanceRequest asks for the proper time to cover a distance
type TimeForDistanceRequest struct {
	Options
	Acceleration json.Number `json:"acceleration,omitempty"`
	Distance     json.Number `json:"distance"` // m
}

func timeForDistance(c *call, req TimeForDistanceRequest) (any, error) {
	a := accelOrG(c, req.Acceleration)
	tau, err := c.engine.RelativisticTimeForDistance(a, num(req.Distance))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"proper_time": c.q(tau, "s"),
		"years":       c.years(tau),
	}, nil
}

// LorentzRequest asks for the quantities derived from one velocity. Length
// and Frequency are optional.
type LorentzRequest struct {
	Options
	Velocity    json.Number `json:"velocity"`         // m/s
	Length      json.Number `json:"length,omitempty"` // rest length, m
	Frequency   json.Number `json:"frequency,omitempty"`
	Approaching bool        `json:"approaching,omitempty"`
}

func lorentz(c *call, req LorentzRequest) (any, error) {
	gamma, err := c.engine.LorentzFactor(num(req.Velocity))
	if err != nil {
		return nil, err
	}
	phi, err := c.engine.RapidityFromVelocity(num(req.Velocity))
	if err != nil {
		return nil, err
	}
	doppler, err := c.engine.DopplerFactor(num(req.Velocity))
	if err != nil {
		return nil, err
	}
	resp := map[string]any{
		"lorentz":        c.q(gamma, ""),
		"rapidity":       c.q(phi, ""),
		"doppler_factor": c.q(doppler, ""),
	}
	if req.Length != "" {
		l, err := c.engine.LengthContractionVelocity(req.Length, num(req.Velocity))
		if err != nil {
			return nil, err
		}
		resp["contracted_length"] = c.q(l, "m")
	}
	if req.Frequency != "" {
		f, err := c.engine.DopplerShift(req.Frequency, num(req.Velocity), req.Approaching)
		if err != nil {
			return nil, err
		}
		resp["observed_frequency"] = c.q(f, "Hz")
	}
	return resp, nil
}

// AddVelocitiesRequest composes two collinear velocities
type AddVelocitiesRequest struct {
	Options
	V1 json.Number `json:"v1"`
	V2 json.Number `json:"v2"`
}

func addVelocities(c *call, req AddVelocitiesRequest) (any, error) {
	v, err := c.engine.AddVelocities(num(req.V1), num(req.V2))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"velocity": c.q(v, "m/s"),
		"beta":     c.beta(v),
	}, nil
}

// RapidityRequest converts in either direction; exactly one field is set
type RapidityRequest struct {
	Options
	Velocity json.Number `json:"velocity,omitempty"`
	Rapidity json.Number `json:"rapidity,omitempty"`
}

func rapidity(c *call, req RapidityRequest) (any, error) {
	var v, phi mathx.Decimal
	var err error
	switch {
	case req.Velocity != "" && req.Rapidity == "":
		v, err = c.engine.Ensure(req.Velocity)
		if err == nil {
			phi, err = c.engine.RapidityFromVelocity(v)
		}
	case req.Rapidity != "" && req.Velocity == "":
		phi, err = c.engine.Ensure(req.Rapidity)
		if err == nil {
			v, err = c.engine.VelocityFromRapidity(phi)
		}
	default:
		return nil, exactlyOne("velocity", "rapidity")
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"velocity": c.q(v, "m/s"),
		"beta":     c.beta(v),
		"rapidity": c.q(phi, ""),
	}, nil
}

// FourMomentumRequest goes forward from mass and velocity, or back from
// energy and momentum to the invariant mass
type FourMomentumRequest struct {
	Options
	Mass     json.Number `json:"mass,omitempty"`     // kg
	Velocity json.Number `json:"velocity,omitempty"` // m/s
	Energy   json.Number `json:"energy,omitempty"`   // J
	Momentum json.Number `json:"momentum,omitempty"` // kg m/s
}

func fourMomentum(c *call, req FourMomentumRequest) (any, error) {
	forward := req.Mass != "" || req.Velocity != ""
	inverse := req.Energy != "" || req.Momentum != ""
	switch {
	case forward && !inverse:
		fm, err := c.engine.FourMomentum(num(req.Mass), num(req.Velocity))
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"energy":   c.q(fm.Energy, "J"),
			"momentum": c.q(fm.Momentum, "kg m/s"),
			"lorentz":  c.q(fm.Lorentz, ""),
		}, nil
	case inverse && !forward:
		m, err := c.engine.InvariantMassFromEnergyMomentum(num(req.Energy), num(req.Momentum))
		if err != nil {
			return nil, err
		}
		return map[string]any{"invariant_mass": c.q(m, "kg")}, nil
	default:
		return nil, exactlyOne("mass+velocity", "energy+momentum")
	}
}

// IntervalRequest classifies the separation of two events and optionally
// boosts the displacement into a frame moving at BoostVelocity along x
type IntervalRequest struct {
	Options
	DT            json.Number `json:"dt"` // s
	DX            json.Number `json:"dx"` // m
	DY            json.Number `json:"dy,omitempty"`
	DZ            json.Number `json:"dz,omitempty"`
	BoostVelocity json.Number `json:"boost_velocity,omitempty"` // m/s
}

func interval(c *call, req IntervalRequest) (any, error) {
	dy, dz := zeroIfEmpty(req.DY), zeroIfEmpty(req.DZ)
	iv, err := c.engine.Interval3D(num(req.DT), num(req.DX), dy, dz)
	if err != nil {
		return nil, err
	}
	sep, err := c.engine.MinSeparation(iv)
	if err != nil {
		return nil, err
	}
	resp := map[string]any{
		"squared": c.q(iv.Squared, "m^2"),
		"kind":    iv.Kind.String(),
	}
	switch sep.Kind {
	case relativity.Timelike:
		resp["proper_time"] = c.q(sep.ProperTime, "s")
	case relativity.Spacelike:
		resp["proper_distance"] = c.q(sep.ProperDistance, "m")
	}
	if req.BoostVelocity != "" {
		ev, err := c.engine.LorentzTransform3D(num(req.DT), num(req.DX), dy, dz, req.BoostVelocity)
		if err != nil {
			return nil, err
		}
		resp["boosted"] = map[string]Quantity{
			"t": c.q(ev.T, "s"),
			"x": c.q(ev.X, "m"),
			"y": c.q(ev.Y, "m"),
			"z": c.q(ev.Z, "m"),
		}
	}
	return resp, nil
}

func accelOrG(c *call, a json.Number) any {
	if a == "" {
		return c.engine.Constants().G
	}
	return a
}

func zeroIfEmpty(n json.Number) any {
	if n == "" {
		return 0
	}
	return n
}

func exactlyOne(a, b string) error {
	return rerr.Newf("set exactly one of %s or %s", a, b).
		WithCode(rerr.CodeValueOutOfRange)
}
