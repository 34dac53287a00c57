package relativity

import (
	"encoding/json"
	"math"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/relativity/foundation/utils/mathx"
)

func TestNew_DefaultsAndValidation(t *testing.T) {
	e, err := New(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDigits, e.Digits())

	_, err = New(-3)
	assert.Error(t, err)
}

func TestConstants(t *testing.T) {
	k := newEngine(t, 50).Constants()

	assert.Equal(t, "299792458", k.C.Text('f'))
	assert.Equal(t, "9.80665", k.G.Text('f'))
	assert.Equal(t, "31557600", k.SecondsPerYear.Text('f'))
	assert.True(t, k.CSquared.Equal(k.Ctx.MustNew("89875517873681764")))
	// one light year is exactly c times one Julian year
	ly, err := k.LightYear.Divide(k.C)
	require.NoError(t, err)
	assert.True(t, ly.Equal(k.SecondsPerYear))
}

func TestConfigure_ReplacesSnapshot(t *testing.T) {
	e := newEngine(t, 20)
	before := e.Constants()
	third, err := before.One.Divide(before.Ctx.FromInt(3))
	require.NoError(t, err)

	require.NoError(t, e.Configure(40))

	after := e.Constants()
	assert.NotSame(t, before, after)
	assert.Equal(t, 20, before.Digits, "old snapshot must not change")
	assert.Equal(t, 40, after.Digits)
	assert.Equal(t, 20, third.Context().Digits(), "existing values keep their precision")

	assert.Error(t, e.Configure(0))
	assert.Equal(t, 40, e.Digits(), "failed reconfiguration keeps the snapshot")
}

func TestEngines_AreIndependent(t *testing.T) {
	low := newEngine(t, 10)
	high := newEngine(t, 60)

	a, err := low.LorentzFactor("100000000")
	require.NoError(t, err)
	b, err := high.LorentzFactor("100000000")
	require.NoError(t, err)

	assert.Equal(t, 10, a.Context().Digits())
	assert.Equal(t, 60, b.Context().Digits())
	requireClose(t, b, a, "-8")
}

func TestEnsure(t *testing.T) {
	e := newEngine(t, 50)

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"float64 uses shortest repr", 0.1, "0.1"},
		{"float32 uses shortest repr", float32(0.1), "0.1"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"uint64", uint64(18446744073709551615), "18446744073709551615"},
		{"string", "0.999999999999999999999999999999", "0.999999999999999999999999999999"},
		{"json number", json.Number("1.5e3"), "1500"},
		{"big int", new(big.Int).Lsh(big.NewInt(1), 70), "1180591620717411303424"},
		{"decimal", e.Constants().Half, "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Ensure(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(e.Constants().Ctx.MustNew(tt.want)), "got %s", got.Text('f'))
		})
	}
}

func TestEnsure_RejectsUnsupportedInput(t *testing.T) {
	e := newEngine(t, 30)

	inputs := map[string]any{
		"nil":        nil,
		"bool":       true,
		"slice":      []int{1},
		"struct":     struct{}{},
		"nan":        math.NaN(),
		"inf":        math.Inf(1),
		"garbage":    "12abc",
		"empty":      "",
		"nil bigint": (*big.Int)(nil),
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := e.Ensure(in)
			assert.ErrorIs(t, err, ErrInvalidInputType)
		})
	}
}

func TestEnsure_RoundsForeignPrecision(t *testing.T) {
	wide := newEngine(t, 40)
	narrow := newEngine(t, 5)
	third, err := wide.Constants().One.Divide(wide.Constants().Ctx.FromInt(3))
	require.NoError(t, err)

	got, err := narrow.Ensure(third)
	require.NoError(t, err)
	assert.Equal(t, "0.33333", got.Text('f'))
	assert.Equal(t, 5, got.Context().Digits())
}

func TestCheckVelocity(t *testing.T) {
	e := newEngine(t, 50)

	_, err := e.CheckVelocity("299792458", "")
	assert.ErrorIs(t, err, ErrVelocityExceedsC)

	_, err = e.CheckVelocity("-299792458", "")
	assert.ErrorIs(t, err, ErrVelocityExceedsC)

	_, err = e.CheckVelocity("3e8", "probe is too fast")
	require.ErrorIs(t, err, ErrVelocityExceedsC)
	assert.Contains(t, err.Error(), "probe is too fast")

	v, err := e.CheckVelocity("299792457", "")
	require.NoError(t, err)
	assert.Equal(t, "299792457", v.Text('f'))

	v, err = e.CheckVelocity("299792457.999999999999999999999", "")
	require.NoError(t, err, "a velocity just below c is valid at 50 digits")
	assert.True(t, v.LessThan(e.Constants().C))
}

func TestEngine_ConcurrentReaders(t *testing.T) {
	e := newEngine(t, 40)
	want, err := e.LorentzFactor("150000000")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]mathx.Decimal, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.LorentzFactor("150000000")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.True(t, got.Equal(want))
	}
}
