package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/relativity/internal/relativity"
	"github.com/msto63/relativity/internal/report"
)

type motionFlags struct {
	unit  string
	accel string
	coord bool
}

func (f *motionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.unit, "unit", "s", "time unit: s or yr")
	cmd.Flags().StringVar(&f.accel, "accel", "", "proper acceleration in m/s^2 (default 1 g)")
	cmd.Flags().BoolVar(&f.coord, "coordinate", false, "time is coordinate time of the launch frame")
}

func newVelocityCmd(a *app) *cobra.Command {
	var f motionFlags
	cmd := &cobra.Command{
		Use:   "velocity <time>",
		Short: "Velocity after accelerating from rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.seconds(args[0], f.unit)
			if err != nil {
				return err
			}
			accel := a.accel(f.accel)
			velocity := a.engine.RelativisticVelocity
			frame := "proper"
			if f.coord {
				velocity = a.engine.RelativisticVelocityCoord
				frame = "coordinate"
			}
			v, err := velocity(accel, t)
			if err != nil {
				return err
			}
			gamma, err := a.engine.LorentzFactor(v)
			if err != nil {
				return err
			}

			b := report.Block{Title: "Velocity (" + frame + " time)"}
			b.Add("velocity", a.show(v), "m/s")
			if err := a.addBeta(&b, "beta", v); err != nil {
				return err
			}
			b.Add("lorentz", a.show(gamma), "")
			a.print(cmd, b)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newDistanceCmd(a *app) *cobra.Command {
	var f motionFlags
	cmd := &cobra.Command{
		Use:   "distance <time>",
		Short: "Distance covered accelerating from rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.seconds(args[0], f.unit)
			if err != nil {
				return err
			}
			accel := a.accel(f.accel)

			b := report.Block{Title: "Distance"}
			if f.coord {
				d, err := a.engine.RelativisticDistanceCoord(accel, t)
				if err != nil {
					return err
				}
				newton, err := a.engine.SimpleDistance(accel, t)
				if err != nil {
					return err
				}
				ly, err := d.Divide(a.engine.Constants().LightYear)
				if err != nil {
					return err
				}
				b.Add("distance", a.show(d), "m").
					Add("light years", a.show(ly), "ly").
					Add("newtonian", a.show(newton), "m")
			} else {
				d, err := a.engine.RelativisticDistance(accel, t)
				if err != nil {
					return err
				}
				coord, err := a.engine.CoordinateTime(accel, t)
				if err != nil {
					return err
				}
				ly, err := d.Divide(a.engine.Constants().LightYear)
				if err != nil {
					return err
				}
				years, err := a.years(coord)
				if err != nil {
					return err
				}
				b.Add("distance", a.show(d), "m").
					Add("light years", a.show(ly), "ly").
					Add("earth time", years, "yr")
			}
			a.print(cmd, b)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newLorentzCmd(a *app) *cobra.Command {
	var (
		asBeta bool
		length string
	)
	cmd := &cobra.Command{
		Use:   "lorentz <velocity>",
		Short: "Lorentz factor, rapidity and Doppler factor of a velocity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.velocity(args[0], asBeta)
			if err != nil {
				return err
			}
			gamma, err := a.engine.LorentzFactor(v)
			if err != nil {
				return err
			}
			phi, err := a.engine.RapidityFromVelocity(v)
			if err != nil {
				return err
			}
			doppler, err := a.engine.DopplerFactor(v)
			if err != nil {
				return err
			}

			b := report.Block{Title: "Lorentz"}
			b.Add("lorentz", a.show(gamma), "").
				Add("rapidity", a.show(phi), "").
				Add("doppler", a.show(doppler), "")
			if length != "" {
				l, err := a.engine.LengthContractionVelocity(length, v)
				if err != nil {
					return err
				}
				b.Add("contracted", a.show(l), "m")
			}
			a.print(cmd, b)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asBeta, "beta", "b", false, "velocity is a fraction of c")
	cmd.Flags().StringVar(&length, "length", "", "proper length to contract, in m")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var asBeta bool
	cmd := &cobra.Command{
		Use:   "add <v1> <v2>",
		Short: "Relativistic velocity addition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v1, err := a.velocity(args[0], asBeta)
			if err != nil {
				return err
			}
			v2, err := a.velocity(args[1], asBeta)
			if err != nil {
				return err
			}
			sum, err := a.engine.AddVelocities(v1, v2)
			if err != nil {
				return err
			}

			b := report.Block{Title: "Velocity addition"}
			b.Add("velocity", a.show(sum), "m/s")
			if err := a.addBeta(&b, "beta", sum); err != nil {
				return err
			}
			a.print(cmd, b)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asBeta, "beta", "b", false, "velocities are fractions of c")
	return cmd
}

func newIntervalCmd(a *app) *cobra.Command {
	var boost string
	cmd := &cobra.Command{
		Use:   "interval <dt> <dx> [dy dz]",
		Short: "Spacetime interval between two events",
		Long:  "Classifies the interval between two events separated by dt seconds and dx (dy, dz) metres and optionally boosts the separation along x.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 && len(args) != 4 {
				return cobra.ExactArgs(2)(cmd, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dy, dz := "0", "0"
			if len(args) == 4 {
				dy, dz = args[2], args[3]
			}
			iv, err := a.engine.Interval3D(args[0], args[1], dy, dz)
			if err != nil {
				return err
			}
			sep, err := a.engine.MinSeparation(iv)
			if err != nil {
				return err
			}

			b := report.Block{Title: "Interval"}
			b.Add("s^2", a.show(iv.Squared), "m^2").
				Add("kind", iv.Kind.String(), "")
			switch iv.Kind {
			case relativity.Timelike:
				b.Add("proper time", a.show(sep.ProperTime), "s")
			case relativity.Spacelike:
				b.Add("proper distance", a.show(sep.ProperDistance), "m")
			}
			if boost != "" {
				ev, err := a.engine.LorentzTransform3D(args[0], args[1], dy, dz, boost)
				if err != nil {
					return err
				}
				b.Add("boosted t", a.show(ev.T), "s").
					Add("boosted x", a.show(ev.X), "m")
			}
			a.print(cmd, b)
			return nil
		},
	}
	cmd.Flags().StringVar(&boost, "boost", "", "boost velocity along x in m/s")
	return cmd
}
