package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/msto63/relativity/internal/display"
	"github.com/msto63/relativity/internal/report"
	"github.com/msto63/relativity/internal/series"
)

func newFormatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "format <value>",
		Short: "Round a decimal to counted significant places",
		Long: `Rounds value with the display flags. --ignore-char names a digit whose
leading run after the decimal point is kept without counting against
--places, so "--ignore-char 0 --places 3" shows 0.0000123456 as
0.0000123 (r).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.engine.Ensure(args[0])
			if err != nil {
				return err
			}
			r := a.format
			r.Value = v
			s, err := display.Format(r)
			if err != nil {
				return err
			}
			fixed, err := display.FormatFixed(v, r.Places)
			if err != nil {
				return err
			}

			b := report.Block{}
			b.Add("formatted", s, "").
				Add("fixed", fixed, "").
				Add("exact", v.Text('f'), "")
			a.print(cmd, b)
			return nil
		},
	}
}

func newMassCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mass <kg>",
		Short: "Describe a mass on the astronomical ladder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.engine.Ensure(args[0])
			if err != nil {
				return err
			}
			b := report.Block{}
			b.Add("mass", display.FormatMassWithUnit(m), "")
			a.print(cmd, b)
			return nil
		},
	}
}

func newSeriesCmd(a *app) *cobra.Command {
	var (
		unit    string
		accel   string
		points  int
		asJSON  bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "series <duration>",
		Short: "Sample a constant acceleration burn from rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.seconds(args[0], unit)
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = a.cfg.Series.Workers
			}
			timer := a.logger.StartTimer("series")
			pts, err := series.Trajectory(cmd.Context(), a.engine, series.Request{
				Acceleration: optional(accel),
				Duration:     d,
				Points:       points,
				Workers:      workers,
			})
			timer.Stop()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(pts)
			}

			b := report.Block{Title: "Trajectory (ship years: beta, lorentz)"}
			for _, p := range pts {
				years, err := a.years(p.ProperTime)
				if err != nil {
					return err
				}
				beta, err := a.engine.VelocityAsC(p.Velocity)
				if err != nil {
					return err
				}
				b.Add(years, a.show(beta)+"  "+a.show(p.Lorentz), "")
			}
			a.print(cmd, b)
			return nil
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "yr", "time unit: s or yr")
	cmd.Flags().StringVar(&accel, "accel", "", "proper acceleration in m/s^2 (default 1 g)")
	cmd.Flags().IntVarP(&points, "points", "n", 11, "samples including both end points")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent evaluations (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the points as JSON with full precision")
	return cmd
}
