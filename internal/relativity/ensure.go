package relativity

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
)

// Ensure converts v to a decimal at the engine's current precision
func (e *Engine) Ensure(v any) (mathx.Decimal, error) {
	return e.Constants().ensure(v)
}

// CheckVelocity normalizes v and fails with ErrVelocityExceedsC when
// |v| >= c. An empty message selects a default description.
func (e *Engine) CheckVelocity(v any, message string) (mathx.Decimal, error) {
	return e.Constants().checkVelocity(v, message)
}

// Ensure converts v to a decimal at the snapshot's precision
func (k *Constants) Ensure(v any) (mathx.Decimal, error) {
	return k.ensure(v)
}

// EnsureAll normalizes values in order, stopping at the first failure
func (k *Constants) EnsureAll(values ...any) ([]mathx.Decimal, error) {
	return k.ensureAll(values...)
}

func (k *Constants) ensure(v any) (mathx.Decimal, error) {
	switch x := v.(type) {
	case mathx.Decimal:
		if x.Context() == k.Ctx {
			return x, nil
		}
		return x.In(k.Ctx), nil
	case *mathx.Decimal:
		if x == nil {
			return mathx.Decimal{}, nilInput()
		}
		return k.ensure(*x)
	case float64:
		return k.Ctx.FromFloat(x)
	case float32:
		// shortest representation of the float32, not of its float64 widening
		return k.Ctx.New(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case int:
		return k.Ctx.FromInt(int64(x)), nil
	case int32:
		return k.Ctx.FromInt(int64(x)), nil
	case int64:
		return k.Ctx.FromInt(x), nil
	case uint:
		return k.Ctx.New(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return k.Ctx.FromInt(int64(x)), nil
	case uint64:
		return k.Ctx.New(strconv.FormatUint(x, 10))
	case string:
		return k.Ctx.New(x)
	case json.Number:
		return k.Ctx.New(x.String())
	case *big.Int:
		if x == nil {
			return mathx.Decimal{}, nilInput()
		}
		return k.Ctx.New(x.String())
	case nil:
		return mathx.Decimal{}, nilInput()
	default:
		return mathx.Decimal{}, rerr.Newf("unsupported numeric type %T", v).
			WithCode(rerr.CodeInvalidInputType).
			WithDetail("type", fmt.Sprintf("%T", v))
	}
}

func nilInput() *rerr.Error {
	return rerr.New("nil numeric input").WithCode(rerr.CodeInvalidInputType)
}

func (k *Constants) checkVelocity(v any, message string) (mathx.Decimal, error) {
	d, err := k.ensure(v)
	if err != nil {
		return mathx.Decimal{}, err
	}
	if d.Abs().GreaterThanOrEqual(k.C) {
		if message == "" {
			message = defaultVelocityMessage
		}
		return mathx.Decimal{}, rerr.New(message).
			WithCode(rerr.CodeVelocityExceedsC).
			WithDetail("velocity", d.Text('f'))
	}
	return d, nil
}

// ensureAll normalizes a list of inputs, stopping at the first failure
func (k *Constants) ensureAll(values ...any) ([]mathx.Decimal, error) {
	out := make([]mathx.Decimal, len(values))
	for i, v := range values {
		d, err := k.ensure(v)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}
