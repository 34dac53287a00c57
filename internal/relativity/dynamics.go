package relativity

import (
	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
)

// FourMomentum is the energy-momentum pair of a massive particle,
// satisfying E^2 = (pc)^2 + (mc^2)^2
type FourMomentum struct {
	Energy   mathx.Decimal // J
	Momentum mathx.Decimal // kg m/s
	Lorentz  mathx.Decimal
}

// RelativisticMomentum returns m*v*gamma
func (e *Engine) RelativisticMomentum(mass, velocity any) (mathx.Decimal, error) {
	fm, err := e.FourMomentum(mass, velocity)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return fm.Momentum, nil
}

// RelativisticEnergy returns the total energy m*c^2*gamma
func (e *Engine) RelativisticEnergy(mass, velocity any) (mathx.Decimal, error) {
	fm, err := e.FourMomentum(mass, velocity)
	if err != nil {
		return mathx.Decimal{}, err
	}
	return fm.Energy, nil
}

// FourMomentum returns energy and momentum computed from one Lorentz factor
func (e *Engine) FourMomentum(mass, velocity any) (FourMomentum, error) {
	k := e.Constants()
	m, err := k.ensure(mass)
	if err != nil {
		return FourMomentum{}, err
	}
	v, err := k.checkVelocity(velocity, "")
	if err != nil {
		return FourMomentum{}, err
	}
	gamma, err := k.lorentz(v)
	if err != nil {
		return FourMomentum{}, err
	}
	mg := m.Multiply(gamma)
	return FourMomentum{
		Energy:   mg.Multiply(k.CSquared),
		Momentum: mg.Multiply(v),
		Lorentz:  gamma,
	}, nil
}

// InvariantMassFromEnergyMomentum returns sqrt((E/c^2)^2 - (p/c)^2), the
// rest mass of a system with total energy E and momentum p. A spacelike
// pair (|p|c > E) fails with ErrDomain.
func (e *Engine) InvariantMassFromEnergyMomentum(energy, momentum any) (mathx.Decimal, error) {
	k := e.Constants()
	v, err := k.ensureAll(energy, momentum)
	if err != nil {
		return mathx.Decimal{}, err
	}
	w := k.Ctx.WithExtraDigits(mathx.GuardDigits)
	restEnergy, err := v[0].In(w).Divide(k.CSquared.In(w))
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "invariant mass")
	}
	p, err := v[1].Abs().In(w).Divide(k.C.In(w))
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "invariant mass")
	}
	// difference of squares factored so that E/c^2 close to p/c stays accurate
	m2 := restEnergy.Subtract(p).Multiply(restEnergy.Add(p))
	if m2.Sign() < 0 {
		return mathx.Decimal{}, rerr.New("momentum exceeds energy/c: no real invariant mass").
			WithCode(rerr.CodeDomainError).
			WithDetail("energy", v[0].Text('e')).
			WithDetail("momentum", v[1].Text('e'))
	}
	m, err := m2.Sqrt()
	if err != nil {
		return mathx.Decimal{}, rerr.Wrap(err, "invariant mass")
	}
	return m.In(k.Ctx), nil
}
