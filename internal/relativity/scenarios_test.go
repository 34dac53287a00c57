package relativity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipAndBurn_Consistency(t *testing.T) {
	e := newEngine(t, 50)
	k := e.Constants()

	for _, ly := range []string{"0.001", "4.24", "100", "2500000"} {
		t.Run(ly, func(t *testing.T) {
			d, err := e.LightYears(ly)
			require.NoError(t, err)

			res, err := e.FlipAndBurn(d)
			require.NoError(t, err)

			// half the trip is an accelerated leg over half the distance
			half := res.ProperTime.Half()
			legDist, err := e.RelativisticDistance(k.G, half)
			require.NoError(t, err)
			requireClose(t, d.Half(), legDist, "-35")

			peak, err := e.RelativisticVelocity(k.G, half)
			require.NoError(t, err)
			requireClose(t, res.PeakVelocity, peak, "-35")

			gamma, err := e.LorentzFactor(res.PeakVelocity)
			require.NoError(t, err)
			requireClose(t, res.PeakLorentz, gamma, "-30")

			assert.True(t, res.CoordTime.GreaterThan(res.ProperTime))
			assert.True(t, res.PeakVelocity.LessThan(k.C))
		})
	}
}

func TestFlipAndBurn_ZeroAcceleration(t *testing.T) {
	e := newEngine(t, 30)
	_, err := e.FlipAndBurnAccel(0, 1000)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestScenarios_ArrivalAtCIsPrecisionFailure(t *testing.T) {
	e := newEngine(t, 50)
	k := e.Constants()

	_, err := e.Fall(k.G, "1e60")
	require.ErrorIs(t, err, ErrPrecisionFailure)
	assert.NotErrorIs(t, err, ErrVelocityExceedsC)

	_, err = e.FlipAndBurnAccel(k.G, "2e60")
	require.ErrorIs(t, err, ErrPrecisionFailure)
	assert.NotErrorIs(t, err, ErrVelocityExceedsC)
}

func TestFall_MatchesCoordinateFormulas(t *testing.T) {
	e := newEngine(t, 50)
	k := e.Constants()
	d, err := e.AstronomicalUnits(1)
	require.NoError(t, err)

	res, err := e.Fall(k.G, d)
	require.NoError(t, err)

	dist, err := e.RelativisticDistanceCoord(k.G, res.CoordTime)
	require.NoError(t, err)
	requireClose(t, d, dist, "-35")

	v, err := e.RelativisticVelocity(k.G, res.ProperTime)
	require.NoError(t, err)
	requireClose(t, res.Velocity, v, "-35")
}

func TestTwinParadox(t *testing.T) {
	e := newEngine(t, 50)
	k := e.Constants()

	d, err := e.LightYears(4)
	require.NoError(t, err)
	v, err := e.VelocityFromC("0.8")
	require.NoError(t, err)

	res, err := e.TwinParadox(d, v)
	require.NoError(t, err)

	earthYears, err := e.SecondsToYears(res.EarthTime)
	require.NoError(t, err)
	travelerYears, err := e.SecondsToYears(res.TravelerTime)
	require.NoError(t, err)

	requireClose(t, k.Ctx.FromInt(10), earthYears, "-45")
	requireClose(t, k.Ctx.FromInt(6), travelerYears, "-45")
	requireClose(t, res.EarthTime.Subtract(res.TravelerTime), res.AgeDifference, "-45")
}

func TestTwinParadox_InvalidInput(t *testing.T) {
	e := newEngine(t, 30)

	tests := []struct {
		name     string
		distance any
		velocity any
		want     error
	}{
		{"zero velocity", 1000, 0, ErrValueOutOfRange},
		{"negative velocity", 1000, -5, ErrValueOutOfRange},
		{"negative distance", -1, 1000, ErrValueOutOfRange},
		{"light speed", 1000, "299792458", ErrVelocityExceedsC},
		{"bad type", []int{1}, 1000, ErrInvalidInputType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.TwinParadox(tt.distance, tt.velocity)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWarpDrive_ZeroBoostIsNeutral(t *testing.T) {
	e := newEngine(t, 50)

	res, err := e.WarpDriveTimeTravel(10, 0, "0.01", "0.01", 3)
	require.NoError(t, err)
	assert.True(t, res.TimeDisplacement.IsZero(), "got %s", res.TimeDisplacement)
	assert.True(t, res.Lorentz.Equal(e.Constants().One))
}

func TestWarpDrive_CountsBothLegs(t *testing.T) {
	e := newEngine(t, 50)

	res, err := e.WarpDriveTimeTravel(10, 0, "0.25", "0.5", 0)
	require.NoError(t, err)
	assert.True(t, res.TravelerTime.Equal(dec(t, e, "0.75")), "got %s", res.TravelerTime)
	assert.True(t, res.EarthTime.Equal(dec(t, e, "0.75")), "got %s", res.EarthTime)
}

func TestWarpDrive_SimultaneityShift(t *testing.T) {
	e := newEngine(t, 50)

	res, err := e.WarpDriveTimeTravel(10, "0.5", 0, 0, 0)
	require.NoError(t, err)
	assert.True(t, res.SimultaneityShift.Equal(dec(t, e, 5)))
	assert.True(t, res.TimeDisplacement.Equal(dec(t, e, -5)), "got %s", res.TimeDisplacement)
	assert.True(t, res.EarthClockAtReturn.Equal(dec(t, e, -5)))
}

func TestWarpDrive_BoostDilatesEarthTime(t *testing.T) {
	e := newEngine(t, 50)

	res, err := e.WarpDriveTimeTravel(0, "0.6", 0, 0, 4)
	require.NoError(t, err)
	// gamma(0.6) = 1.25, so Earth ages 5 years while the traveller ages 4
	assert.True(t, res.EarthTime.Equal(dec(t, e, 5)), "got %s", res.EarthTime)
	assert.True(t, res.TimeDisplacement.Equal(dec(t, e, 1)), "got %s", res.TimeDisplacement)
}

func TestWarpDrive_InvalidInput(t *testing.T) {
	e := newEngine(t, 30)

	_, err := e.WarpDriveTimeTravel(10, 1, 0, 0, 0)
	assert.ErrorIs(t, err, ErrVelocityExceedsC)

	_, err = e.WarpDriveTimeTravel(10, "0.5", -1, 0, 0)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	_, err = e.WarpDriveTimeTravel(10, "0.5", 0, 0, "x")
	assert.ErrorIs(t, err, ErrInvalidInputType)
}

func TestWarpDrive_NegativeDurationsReportedInOrder(t *testing.T) {
	e := newEngine(t, 30)

	tests := []struct {
		name                 string
		outbound, ret, boost any
		want                 string
	}{
		{"all negative", -1, -1, -1, "outbound transit"},
		{"return and boost", 0, -1, -1, "return transit"},
		{"boost only", 0, 0, -1, "boost duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 10; i++ {
				_, err := e.WarpDriveTimeTravel(10, "0.5", tt.outbound, tt.ret, tt.boost)
				require.ErrorIs(t, err, ErrValueOutOfRange)
				assert.True(t, strings.HasPrefix(err.Error(), tt.want), "got %v", err)
			}
		})
	}
}

func TestWarpDrive_EarthClockAtReturnIsEarthTimeLessShift(t *testing.T) {
	e := newEngine(t, 50)

	res, err := e.WarpDriveTimeTravel(4, "0.8", "0.3", "0.2", 2)
	require.NoError(t, err)
	assert.True(t, res.EarthClockAtReturn.Equal(res.EarthTime.Subtract(res.SimultaneityShift)),
		"at return %s, earth %s, shift %s", res.EarthClockAtReturn, res.EarthTime, res.SimultaneityShift)
	assert.True(t, res.TimeDisplacement.Equal(res.EarthClockAtReturn.Subtract(res.TravelerTime)))
	// gamma(0.8) = 5/3: earth 0.5 + 10/3, shift 3.2
	requireClose(t, dec(t, e, "0.633333333333333333333333333333333333333333333333"), res.EarthClockAtReturn, "-40")
}
