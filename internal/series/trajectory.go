// Package series samples accelerated trajectories for charts. Every point
// carries exact decimals; the float64 copies in Chart exist only for
// plotting and lose precision by construction.
package series

import (
	"context"

	"golang.org/x/sync/errgroup"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
	"github.com/msto63/relativity/internal/relativity"
)

const (
	DefaultWorkers = 4
	MinPoints      = 2

	// batchPerWorker sets how many points Stream computes per worker
	// before emitting
	batchPerWorker = 8
)

// Request describes a constant proper acceleration burn from rest
type Request struct {
	Acceleration any // m/s^2, nil for standard gravity
	Duration     any // s of proper time
	Points       int // samples including both end points
	Workers      int // concurrent evaluations, DefaultWorkers when <= 0
}

// Point is one sample of the trajectory
type Point struct {
	Index      int           `json:"index"`
	ProperTime mathx.Decimal `json:"proper_time"`
	CoordTime  mathx.Decimal `json:"coord_time"`
	Velocity   mathx.Decimal `json:"velocity"`
	Distance   mathx.Decimal `json:"distance"`
	Lorentz    mathx.Decimal `json:"lorentz"`
	Chart      Chart         `json:"chart"`
}

// Chart is the float64 narrowing of a Point
type Chart struct {
	ProperTime float64 `json:"proper_time"`
	CoordTime  float64 `json:"coord_time"`
	Velocity   float64 `json:"velocity"`
	Distance   float64 `json:"distance"`
	Lorentz    float64 `json:"lorentz"`
}

// plan is a validated request
type plan struct {
	engine  *relativity.Engine
	accel   mathx.Decimal
	step    mathx.Decimal
	points  int
	workers int
}

func newPlan(engine *relativity.Engine, req Request) (plan, error) {
	k := engine.Constants()
	if req.Points < MinPoints {
		return plan{}, rerr.Newf("points must be at least %d", MinPoints).
			WithCode(rerr.CodeValueOutOfRange).
			WithDetail("points", req.Points)
	}

	accel := k.G
	if req.Acceleration != nil {
		a, err := k.Ensure(req.Acceleration)
		if err != nil {
			return plan{}, err
		}
		if a.Sign() <= 0 {
			return plan{}, rerr.New("acceleration must be positive").
				WithCode(rerr.CodeValueOutOfRange).
				WithDetail("acceleration", a.Text('f'))
		}
		accel = a
	}
	dur, err := k.Ensure(req.Duration)
	if err != nil {
		return plan{}, err
	}
	if dur.Sign() < 0 {
		return plan{}, rerr.New("duration must not be negative").
			WithCode(rerr.CodeValueOutOfRange).
			WithDetail("duration", dur.Text('f'))
	}
	step, err := dur.Divide(k.Ctx.FromInt(int64(req.Points - 1)))
	if err != nil {
		return plan{}, err
	}

	workers := req.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return plan{engine: engine, accel: accel, step: step, points: req.Points, workers: workers}, nil
}

// Trajectory samples req.Points proper times evenly over req.Duration and
// evaluates them on at most req.Workers goroutines. Points are returned in
// time order.
func Trajectory(ctx context.Context, engine *relativity.Engine, req Request) ([]Point, error) {
	p, err := newPlan(engine, req)
	if err != nil {
		return nil, err
	}
	out := make([]Point, p.points)
	if err := p.fill(ctx, out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// Stream evaluates the same samples as Trajectory in batches and hands them
// to emit in time order. It stops at the first error from emit or the
// calculation, or when ctx is done.
func Stream(ctx context.Context, engine *relativity.Engine, req Request, emit func(Point) error) error {
	p, err := newPlan(engine, req)
	if err != nil {
		return err
	}
	batch := make([]Point, p.workers*batchPerWorker)
	for start := 0; start < p.points; start += len(batch) {
		n := min(len(batch), p.points-start)
		if err := p.fill(ctx, batch[:n], start); err != nil {
			return err
		}
		for _, pt := range batch[:n] {
			if err := emit(pt); err != nil {
				return err
			}
		}
	}
	return nil
}

// fill evaluates len(out) samples starting at index first
func (p plan) fill(ctx context.Context, out []Point, first int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range out {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pt, err := p.sample(first + i)
			if err != nil {
				return err
			}
			out[i] = pt
			return nil
		})
	}
	return g.Wait()
}

func (p plan) sample(index int) (Point, error) {
	tau := p.step.Multiply(p.step.Context().FromInt(int64(index)))

	v, err := p.engine.RelativisticVelocity(p.accel, tau)
	if err != nil {
		return Point{}, rerr.Wrap(err, "trajectory sample").
			WithDetail("index", index).
			WithDetail("proper_time", tau.Text('e'))
	}
	d, err := p.engine.RelativisticDistance(p.accel, tau)
	if err != nil {
		return Point{}, err
	}
	t, err := p.engine.CoordinateTime(p.accel, tau)
	if err != nil {
		return Point{}, err
	}
	gamma, err := p.engine.LorentzFactor(v)
	if err != nil {
		return Point{}, err
	}

	return Point{
		Index:      index,
		ProperTime: tau,
		CoordTime:  t,
		Velocity:   v,
		Distance:   d,
		Lorentz:    gamma,
		Chart: Chart{
			ProperTime: tau.Float64(),
			CoordTime:  t.Float64(),
			Velocity:   v.Float64(),
			Distance:   d.Float64(),
			Lorentz:    gamma.Float64(),
		},
	}, nil
}
