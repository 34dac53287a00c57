package relativity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msto63/relativity/foundation/utils/mathx"
)

func newEngine(t *testing.T, digits int) *Engine {
	t.Helper()
	e, err := New(digits)
	require.NoError(t, err)
	return e
}

func dec(t *testing.T, e *Engine, v any) mathx.Decimal {
	t.Helper()
	d, err := e.Ensure(v)
	require.NoError(t, err)
	return d
}

// requireClose asserts |got - want| <= |want| * 10^exp, or <= 10^exp when
// want is zero
func requireClose(t *testing.T, want, got mathx.Decimal, exp string) {
	t.Helper()
	ctx := want.Context()
	tol := ctx.MustNew("1e" + exp)
	bound := want.Abs().Multiply(tol)
	if want.IsZero() {
		bound = tol
	}
	diff := got.In(ctx).Subtract(want).Abs()
	require.Truef(t, diff.LessThanOrEqual(bound),
		"got %s, want %s (relative tolerance 1e%s)", got.Text('e'), want.Text('e'), exp)
}
