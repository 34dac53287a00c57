package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	rlog "github.com/msto63/relativity/foundation/core/log"
	"github.com/msto63/relativity/foundation/utils/mathx"
	"github.com/msto63/relativity/internal/display"
	"github.com/msto63/relativity/internal/relativity"
	"github.com/msto63/relativity/internal/report"
	"github.com/msto63/relativity/pkg/core/config"
	"github.com/msto63/relativity/pkg/core/logging"
)

// rootOptions holds the persistent flags
type rootOptions struct {
	cfgFile     string
	verbose     bool
	precision   int
	places      int
	ignoreChar  string
	keepZeros   bool
	noIndicator bool
	plain       bool
}

// app is the state shared by all commands once flags are parsed
type app struct {
	cfg      *config.Config
	engine   *relativity.Engine
	logger   *rlog.Logger
	renderer *report.Renderer
	format   display.Request
}

// show renders d with the configured display settings
func (a *app) show(d mathx.Decimal) string {
	r := a.format
	r.Value = d
	s, err := display.Format(r)
	if err != nil {
		return d.Text('f')
	}
	return s
}

// years renders seconds as years
func (a *app) years(seconds mathx.Decimal) (string, error) {
	y, err := a.engine.SecondsToYears(seconds)
	if err != nil {
		return "", err
	}
	return a.show(y), nil
}

func (a *app) print(cmd *cobra.Command, b report.Block) {
	fmt.Fprint(cmd.OutOrStdout(), a.renderer.Render(b))
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	root := &cobra.Command{
		Use:   "relativity",
		Short: "Arbitrary-precision special relativity calculator",
		Long: `relativity computes special-relativistic kinematics at a configurable
number of significant digits: constant proper acceleration, velocity
addition, rapidity, spacetime intervals, round trips, antimatter
rockets and more.

Results print at full working precision, rounded for display to a
number of counted decimal places. "(r)" marks a rounded value.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, opts)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.cfgFile, "config", "", "config file (default: $RELATIVITY_CONFIG or ./configs/relativity.toml)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	f.IntVarP(&opts.precision, "precision", "p", 0, "significant digits of the working precision")
	f.IntVar(&opts.places, "places", 0, "counted decimal places shown")
	f.StringVar(&opts.ignoreChar, "ignore-char", "", "digit whose leading run in the fraction is not counted")
	f.BoolVar(&opts.keepZeros, "keep-zeros", false, "pad results with trailing zeros")
	f.BoolVar(&opts.noIndicator, "no-indicator", false, "omit the (r) rounding marker")
	f.BoolVar(&opts.plain, "plain", false, "plain output without styling")

	root.AddCommand(
		newVelocityCmd(a),
		newDistanceCmd(a),
		newLorentzCmd(a),
		newAddCmd(a),
		newIntervalCmd(a),
		newFlipCmd(a),
		newFallCmd(a),
		newTwinCmd(a),
		newWarpCmd(a),
		newRocketCmd(a),
		newFormatCmd(a),
		newMassCmd(a),
		newSeriesCmd(a),
		newServeCmd(a),
		newStatusCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and prints a failure to stderr
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		renderer := report.NewRenderer(!isTerminal(os.Stderr))
		fmt.Fprint(os.Stderr, renderer.RenderError(err))
		return err
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// setup loads the configuration, applies flag overrides and builds the
// engine shared by the subcommands
func (a *app) setup(cmd *cobra.Command, opts *rootOptions) error {
	var (
		cfg *config.Config
		err error
	)
	if opts.cfgFile != "" {
		cfg, err = config.Load(opts.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("precision") {
		cfg.Precision.Digits = opts.precision
	}
	if flags.Changed("places") {
		places := opts.places
		cfg.Display.SignificantPlaces = &places
	}
	if flags.Changed("ignore-char") {
		cfg.Display.IgnoreChar = opts.ignoreChar
	}
	if flags.Changed("keep-zeros") {
		cfg.Display.PreserveTrailingZeros = opts.keepZeros
	}
	if flags.Changed("no-indicator") {
		on := !opts.noIndicator
		cfg.Display.ShowRoundingIndicator = &on
	}
	if err := display.ValidateIgnoreChar(cfg.Display.IgnoreChar); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	engine, err := relativity.New(cfg.Precision.Digits)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.engine = engine
	a.logger = logging.FromConfig(cfg.General, "cli", opts.verbose)
	a.renderer = report.NewRenderer(opts.plain || !isTerminal(os.Stdout))
	a.format = display.Request{
		IgnoreChar:            cfg.Display.IgnoreChar,
		Places:                cfg.Display.Places(),
		PreserveTrailingZeros: cfg.Display.PreserveTrailingZeros,
		ShowRoundingIndicator: cfg.Display.RoundingIndicator(),
	}
	a.logger.Debug("engine ready", rlog.Fields{"digits": cfg.Precision.Digits, "command": cmd.Name()})
	return nil
}
