package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
	"github.com/msto63/relativity/internal/propulsion"
	"github.com/msto63/relativity/internal/relativity"
	"github.com/msto63/relativity/internal/report"
)

// optional maps an unset string flag to nil so the callee applies its default
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func newFlipCmd(a *app) *cobra.Command {
	var unit, accel string
	cmd := &cobra.Command{
		Use:   "flip <distance>",
		Short: "Flip-and-burn trip: accelerate to the midpoint, then decelerate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.metres(args[0], unit)
			if err != nil {
				return err
			}
			res, err := a.engine.FlipAndBurnAccel(a.accel(accel), d)
			if err != nil {
				return err
			}
			proper, err := a.years(res.ProperTime)
			if err != nil {
				return err
			}
			earth, err := a.years(res.CoordTime)
			if err != nil {
				return err
			}

			b := report.Block{Title: "Flip and burn"}
			b.Add("ship time", proper, "yr").
				Add("earth time", earth, "yr").
				Add("peak velocity", a.show(res.PeakVelocity), "m/s")
			if err := a.addBeta(&b, "peak beta", res.PeakVelocity); err != nil {
				return err
			}
			b.Add("peak lorentz", a.show(res.PeakLorentz), "")
			a.print(cmd, b)
			return nil
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "ly", "distance unit: m, ly or au")
	cmd.Flags().StringVar(&accel, "accel", "", "proper acceleration in m/s^2 (default 1 g)")
	return cmd
}

func newTwinCmd(a *app) *cobra.Command {
	var (
		unit   string
		asBeta bool
	)
	cmd := &cobra.Command{
		Use:   "twin <distance> <velocity>",
		Short: "Twin paradox round trip at constant cruise velocity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.metres(args[0], unit)
			if err != nil {
				return err
			}
			v, err := a.velocity(args[1], asBeta)
			if err != nil {
				return err
			}
			res, err := a.engine.TwinParadox(d, v)
			if err != nil {
				return err
			}

			b := report.Block{Title: "Twin paradox"}
			for _, row := range []struct {
				label string
				secs  mathx.Decimal
			}{
				{"earth twin", res.EarthTime},
				{"traveling twin", res.TravelerTime},
				{"age difference", res.AgeDifference},
			} {
				y, err := a.years(row.secs)
				if err != nil {
					return err
				}
				b.Add(row.label, y, "yr")
			}
			b.Add("lorentz", a.show(res.Lorentz), "")
			a.print(cmd, b)
			return nil
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "ly", "distance unit: m, ly or au")
	cmd.Flags().BoolVarP(&asBeta, "beta", "b", true, "velocity is a fraction of c")
	return cmd
}

func newWarpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "warp <distance_ly> <boost_beta> <outbound_yr> <return_yr> <boost_yr>",
		Short: "Time displacement of a faster-than-light round trip with a boost",
		Long: `Models an FTL outbound leg, a boost to boost_beta held for boost_yr of
ship time, and an FTL return leg. A negative displacement means the
ship returns before it left.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.engine.WarpDriveTimeTravel(args[0], args[1], args[2], args[3], args[4])
			if err != nil {
				return err
			}

			b := report.Block{Title: "Warp drive"}
			b.Add("lorentz", a.show(res.Lorentz), "").
				Add("simultaneity shift", a.show(res.SimultaneityShift), "yr").
				Add("earth time", a.show(res.EarthTime), "yr").
				Add("ship time", a.show(res.TravelerTime), "yr").
				Add("earth clock at return", a.show(res.EarthClockAtReturn), "yr").
				Add("time displacement", a.show(res.TimeDisplacement), "yr")
			if res.TimeDisplacement.Sign() < 0 {
				b.Note("The ship returns before it departed.")
			}
			a.print(cmd, b)
			return nil
		},
	}
}

func newFallCmd(a *app) *cobra.Command {
	var mass, radius string
	cmd := &cobra.Command{
		Use:   "fall <altitude_m>",
		Short: "Drop from rest under inverse-square gravity, without drag",
		Long: `Falls from altitude above a body of the given mass and radius (Earth by
default). The proper time rows are omitted when the Newtonian impact
velocity reaches c.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k := a.engine.Constants()
			m, r := optional(mass), optional(radius)
			if m == nil {
				m = k.EarthMass
			}
			if r == nil {
				r = k.EarthRadius
			}
			res, err := a.engine.FreeFall(m, r, args[0])
			if err != nil {
				return err
			}
			vals, err := k.EnsureAll(r, args[0])
			if err != nil {
				return err
			}
			g, err := a.engine.GravityForRadius(m, vals[0].Add(vals[1]))
			if err != nil {
				return err
			}

			b := report.Block{Title: "Free fall"}
			b.Add("gravity at altitude", a.show(g), "m/s^2").
				Add("fall time", a.show(res.Time), "s").
				Add("impact velocity", a.show(res.Velocity), "m/s")

			rel, err := a.engine.RelativisticFreeFall(m, r, args[0])
			switch {
			case errors.Is(err, relativity.ErrVelocityExceedsC):
				b.Note("The Newtonian impact velocity reaches the speed of light.")
			case err != nil:
				return err
			default:
				b.Add("proper time", a.show(rel.ProperTime), "s").
					Add("clock lag", a.show(rel.CoordTime.Subtract(rel.ProperTime)), "s")
			}
			a.print(cmd, b)
			return nil
		},
	}
	cmd.Flags().StringVar(&mass, "mass", "", "mass of the attracting body in kg (default Earth)")
	cmd.Flags().StringVar(&radius, "radius", "", "surface radius in m (default Earth)")
	return cmd
}

type rocketFlags struct {
	drive           string
	accel           string
	efficiency      []string
	exhaustFraction string
}

func (f *rocketFlags) bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.drive, "drive", "pion", "drive: pion or photon")
	cmd.PersistentFlags().StringVar(&f.accel, "accel", "", "proper acceleration in m/s^2 (default 1 g)")
	cmd.PersistentFlags().StringSliceVar(&f.efficiency, "efficiency", nil, "drive efficiency; several values compare pion nozzles")
	cmd.PersistentFlags().StringVar(&f.exhaustFraction, "exhaust-fraction", "", "fraction of annihilation energy in charged pions (pion drive)")
}

// validate rejects flag combinations the chosen drive cannot use
func (f *rocketFlags) validate() error {
	switch strings.ToLower(f.drive) {
	case "pion":
		return nil
	case "photon":
		if f.exhaustFraction != "" || len(f.efficiency) > 1 {
			return rerr.New("--exhaust-fraction and multiple efficiencies apply to the pion drive only").
				WithCode(rerr.CodeValueOutOfRange)
		}
		return nil
	default:
		return rerr.Newf("unknown drive %q (want pion or photon)", f.drive).
			WithCode(rerr.CodeValueOutOfRange)
	}
}

func (f *rocketFlags) photon() bool {
	return strings.ToLower(f.drive) == "photon"
}

func (f *rocketFlags) efficiencyOrNil() any {
	if len(f.efficiency) == 0 {
		return nil
	}
	return f.efficiency[0]
}

func (f *rocketFlags) pionOptions(withAccel bool) []propulsion.Option {
	var opts []propulsion.Option
	if f.exhaustFraction != "" {
		opts = append(opts, propulsion.WithExhaustFraction(f.exhaustFraction))
	}
	if withAccel && f.accel != "" {
		opts = append(opts, propulsion.WithAcceleration(f.accel))
	}
	return opts
}

func newRocketCmd(a *app) *cobra.Command {
	var f rocketFlags
	cmd := &cobra.Command{
		Use:   "rocket",
		Short: "Antimatter rocket fuel model",
	}
	f.bind(cmd)

	accelTime := &cobra.Command{
		Use:   "accel-time <fuel_kg> <dry_kg>",
		Short: "Proper time a rocket can sustain its acceleration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			if len(f.efficiency) > 1 {
				return rerr.New("accel-time takes a single --efficiency").WithCode(rerr.CodeValueOutOfRange)
			}
			rocket := propulsion.New(a.engine)
			var (
				secs mathx.Decimal
				err  error
			)
			if f.photon() {
				secs, err = rocket.PhotonRocketAccelTime(args[0], args[1], f.efficiencyOrNil(), optional(f.accel))
			} else {
				secs, err = rocket.PionRocketAccelTime(args[0], args[1], f.efficiencyOrNil(), f.pionOptions(true)...)
			}
			if err != nil {
				return err
			}
			years, err := a.years(secs)
			if err != nil {
				return err
			}

			b := report.Block{Title: "Acceleration time (" + strings.ToLower(f.drive) + ")"}
			b.Add("ship time", a.show(secs), "s").
				Add("ship years", years, "yr")
			a.print(cmd, b)
			return nil
		},
	}

	var unit string
	fuelFraction := &cobra.Command{
		Use:   "fuel-fraction <thrust_time>",
		Short: "Fraction of the initial mass that must be fuel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			t, err := a.seconds(args[0], unit)
			if err != nil {
				return err
			}
			rocket := propulsion.New(a.engine)
			b := report.Block{Title: "Fuel fraction (" + strings.ToLower(f.drive) + ")"}

			switch {
			case f.photon():
				frac, err := rocket.PhotonRocketFuelFraction(t, optional(f.accel), f.efficiencyOrNil())
				if err != nil {
					return err
				}
				b.Add("fuel fraction", a.show(frac), "")
			case len(f.efficiency) > 1:
				effs := make([]any, len(f.efficiency))
				for i, e := range f.efficiency {
					effs[i] = e
				}
				fracs, err := rocket.PionRocketFuelFractionsMultiple(t, optional(f.accel), effs, f.pionOptions(false)...)
				if err != nil {
					return err
				}
				for i, frac := range fracs {
					b.Add("efficiency "+f.efficiency[i], a.show(frac), "")
				}
			default:
				frac, err := rocket.PionRocketFuelFraction(t, optional(f.accel), f.efficiencyOrNil(), f.pionOptions(false)...)
				if err != nil {
					return err
				}
				b.Add("fuel fraction", a.show(frac), "")
			}
			a.print(cmd, b)
			return nil
		},
	}
	fuelFraction.Flags().StringVar(&unit, "unit", "yr", "time unit: s or yr")

	cmd.AddCommand(accelTime, fuelFraction)
	return cmd
}
