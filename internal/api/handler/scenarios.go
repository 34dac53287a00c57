package handler

import (
	"encoding/json"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
	"github.com/msto63/relativity/internal/propulsion"
)

// Distance units accepted by the trip endpoints
const (
	UnitMetre            = "m"
	UnitLightYear        = "ly"
	UnitAstronomicalUnit = "au"
)

// TripRequest describes a trip over Distance given in Unit (m by default)
type TripRequest struct {
	Options
	Distance     json.Number `json:"distance"`
	Unit         string      `json:"unit,omitempty"`
	Acceleration json.Number `json:"acceleration,omitempty"` // m/s^2, default 1 g
	Velocity     json.Number `json:"velocity,omitempty"`     // m/s, twin paradox only
}

// metres converts n in unit to metres
func (c *call) metres(n json.Number, unit string) (mathx.Decimal, error) {
	switch unit {
	case "", UnitMetre:
		return c.engine.Ensure(num(n))
	case UnitLightYear:
		return c.engine.LightYears(num(n))
	case UnitAstronomicalUnit:
		return c.engine.AstronomicalUnits(num(n))
	default:
		return mathx.Decimal{}, rerr.Newf("unknown distance unit %q", unit).
			WithCode(rerr.CodeValueOutOfRange).
			WithDetail("unit", unit)
	}
}

func flipAndBurn(c *call, req TripRequest) (any, error) {
	d, err := c.metres(req.Distance, req.Unit)
	if err != nil {
		return nil, err
	}
	res, err := c.engine.FlipAndBurnAccel(accelOrG(c, req.Acceleration), d)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"proper_time":     c.q(res.ProperTime, "s"),
		"proper_years":    c.years(res.ProperTime),
		"coordinate_time": c.q(res.CoordTime, "s"),
		"earth_years":     c.years(res.CoordTime),
		"peak_velocity":   c.q(res.PeakVelocity, "m/s"),
		"peak_beta":       c.beta(res.PeakVelocity),
		"peak_lorentz":    c.q(res.PeakLorentz, ""),
	}, nil
}

func fall(c *call, req TripRequest) (any, error) {
	d, err := c.metres(req.Distance, req.Unit)
	if err != nil {
		return nil, err
	}
	res, err := c.engine.Fall(accelOrG(c, req.Acceleration), d)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"proper_time":     c.q(res.ProperTime, "s"),
		"coordinate_time": c.q(res.CoordTime, "s"),
		"velocity":        c.q(res.Velocity, "m/s"),
		"beta":            c.beta(res.Velocity),
	}, nil
}

// FreeFallRequest describes a drop from Altitude metres above a body of
// Mass kg and Radius m. Mass and radius default to Earth.
type FreeFallRequest struct {
	Options
	Mass     json.Number `json:"mass,omitempty"`
	Radius   json.Number `json:"radius,omitempty"`
	Altitude json.Number `json:"altitude"`
}

func freeFall(c *call, req FreeFallRequest) (any, error) {
	k := c.engine.Constants()
	mass, radius := num(req.Mass), num(req.Radius)
	if mass == nil {
		mass = k.EarthMass
	}
	if radius == nil {
		radius = k.EarthRadius
	}
	res, err := c.engine.FreeFall(mass, radius, num(req.Altitude))
	if err != nil {
		return nil, err
	}
	v, err := k.EnsureAll(radius, num(req.Altitude))
	if err != nil {
		return nil, err
	}
	g, err := c.engine.GravityForRadius(mass, v[0].Add(v[1]))
	if err != nil {
		return nil, err
	}

	out := map[string]any{
		"gravity":         c.q(g, "m/s^2"),
		"fall_time":       c.q(res.Time, "s"),
		"impact_velocity": c.q(res.Velocity, "m/s"),
	}
	rel, err := c.engine.RelativisticFreeFall(mass, radius, num(req.Altitude))
	if err != nil {
		return nil, err
	}
	out["proper_time"] = c.q(rel.ProperTime, "s")
	out["coordinate_time"] = c.q(rel.CoordTime, "s")
	out["beta"] = c.beta(rel.Velocity)
	return out, nil
}

func twinParadox(c *call, req TripRequest) (any, error) {
	d, err := c.metres(req.Distance, req.Unit)
	if err != nil {
		return nil, err
	}
	res, err := c.engine.TwinParadox(d, num(req.Velocity))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"earth_time":     c.q(res.EarthTime, "s"),
		"earth_years":    c.years(res.EarthTime),
		"traveler_time":  c.q(res.TravelerTime, "s"),
		"traveler_years": c.years(res.TravelerTime),
		"age_difference": c.years(res.AgeDifference),
		"lorentz":        c.q(res.Lorentz, ""),
	}, nil
}

// WarpDriveRequest uses light years, years and fractions of c throughout
type WarpDriveRequest struct {
	Options
	DistanceLy     json.Number `json:"distance_ly"`
	BoostVelocityC json.Number `json:"boost_velocity_c"`
	OutboundYears  json.Number `json:"outbound_years"`
	ReturnYears    json.Number `json:"return_years"`
	BoostYears     json.Number `json:"boost_years"`
}

func warpDrive(c *call, req WarpDriveRequest) (any, error) {
	res, err := c.engine.WarpDriveTimeTravel(num(req.DistanceLy), num(req.BoostVelocityC),
		num(req.OutboundYears), num(req.ReturnYears), num(req.BoostYears))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"lorentz":               c.q(res.Lorentz, ""),
		"simultaneity_shift":    c.q(res.SimultaneityShift, "yr"),
		"earth_time":            c.q(res.EarthTime, "yr"),
		"traveler_time":         c.q(res.TravelerTime, "yr"),
		"earth_clock_at_return": c.q(res.EarthClockAtReturn, "yr"),
		"time_displacement":     c.q(res.TimeDisplacement, "yr"),
		"reaches_past":          res.TimeDisplacement.Sign() < 0,
	}, nil
}

// Drives accepted by the rocket endpoints
const (
	DrivePion   = "pion"
	DrivePhoton = "photon"
)

// RocketRequest drives both rocket endpoints. Accel time reads the masses,
// fuel fraction reads ThrustTime and optionally a list of efficiencies.
type RocketRequest struct {
	Options
	Drive           string        `json:"drive,omitempty"` // pion (default) or photon
	FuelMass        json.Number   `json:"fuel_mass,omitempty"`
	DryMass         json.Number   `json:"dry_mass,omitempty"`
	ThrustTime      json.Number   `json:"thrust_time,omitempty"` // s
	Acceleration    json.Number   `json:"acceleration,omitempty"`
	Efficiency      json.Number   `json:"efficiency,omitempty"`
	Efficiencies    []json.Number `json:"efficiencies,omitempty"`
	ExhaustFraction json.Number   `json:"exhaust_fraction,omitempty"`
}

func (r RocketRequest) drive() (string, error) {
	switch r.Drive {
	case "", DrivePion:
		return DrivePion, nil
	case DrivePhoton:
		if r.ExhaustFraction != "" || len(r.Efficiencies) > 0 {
			return "", rerr.New("exhaust_fraction and efficiencies apply to the pion drive only").
				WithCode(rerr.CodeValueOutOfRange)
		}
		return DrivePhoton, nil
	default:
		return "", rerr.Newf("unknown drive %q", r.Drive).
			WithCode(rerr.CodeValueOutOfRange).
			WithDetail("drive", r.Drive)
	}
}

// pionOptions maps the optional pion drive fields. The fuel fraction
// methods take the acceleration as an argument instead.
func (r RocketRequest) pionOptions(withAccel bool) []propulsion.Option {
	var opts []propulsion.Option
	if r.ExhaustFraction != "" {
		opts = append(opts, propulsion.WithExhaustFraction(r.ExhaustFraction))
	}
	if withAccel && r.Acceleration != "" {
		opts = append(opts, propulsion.WithAcceleration(r.Acceleration))
	}
	return opts
}

func rocketAccelTime(c *call, req RocketRequest) (any, error) {
	drive, err := req.drive()
	if err != nil {
		return nil, err
	}
	var secs mathx.Decimal
	if drive == DrivePion {
		secs, err = c.rocket.PionRocketAccelTime(num(req.FuelMass), num(req.DryMass), num(req.Efficiency), req.pionOptions(true)...)
	} else {
		secs, err = c.rocket.PhotonRocketAccelTime(num(req.FuelMass), num(req.DryMass), num(req.Efficiency), num(req.Acceleration))
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"drive":       drive,
		"accel_time":  c.q(secs, "s"),
		"accel_years": c.years(secs),
	}, nil
}

func rocketFuelFraction(c *call, req RocketRequest) (any, error) {
	drive, err := req.drive()
	if err != nil {
		return nil, err
	}
	if len(req.Efficiencies) > 0 {
		if req.Efficiency != "" {
			return nil, exactlyOne("efficiency", "efficiencies")
		}
		effs := make([]any, len(req.Efficiencies))
		for i, e := range req.Efficiencies {
			effs[i] = num(e)
		}
		fs, err := c.rocket.PionRocketFuelFractionsMultiple(num(req.ThrustTime), num(req.Acceleration), effs, req.pionOptions(false)...)
		if err != nil {
			return nil, err
		}
		out := make([]Quantity, len(fs))
		for i, f := range fs {
			out[i] = c.q(f, "")
		}
		return map[string]any{"drive": drive, "fuel_fractions": out}, nil
	}

	var f mathx.Decimal
	if drive == DrivePion {
		f, err = c.rocket.PionRocketFuelFraction(num(req.ThrustTime), num(req.Acceleration), num(req.Efficiency), req.pionOptions(false)...)
	} else {
		f, err = c.rocket.PhotonRocketFuelFraction(num(req.ThrustTime), num(req.Acceleration), num(req.Efficiency))
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"drive": drive, "fuel_fraction": c.q(f, "")}, nil
}
