package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	rerr "github.com/msto63/relativity/foundation/core/error"
	rlog "github.com/msto63/relativity/foundation/core/log"
	"github.com/msto63/relativity/foundation/utils/mathx"
	"github.com/msto63/relativity/internal/api/metrics"
	"github.com/msto63/relativity/internal/api/middleware"
	"github.com/msto63/relativity/internal/display"
	"github.com/msto63/relativity/internal/propulsion"
	"github.com/msto63/relativity/internal/relativity"
	"github.com/msto63/relativity/pkg/core/cache"
	"github.com/msto63/relativity/pkg/core/config"
	"github.com/msto63/relativity/pkg/core/version"
)

// maxBodyBytes bounds a request body
const maxBodyBytes = 1 << 20

// Config holds the defaults a Handler applies to requests
type Config struct {
	Display   config.DisplayConfig
	Series    config.SeriesConfig
	MaxDigits int
}

// Handler serves the calculation endpoints
type Handler struct {
	engine   *relativity.Engine
	engines  *cache.Cache[int, *relativity.Engine] // per-request precision overrides
	cfg      Config
	logger   *rlog.Logger
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader
}

// New creates a Handler computing with engine
func New(engine *relativity.Engine, cfg Config, logger *rlog.Logger, m *metrics.Metrics) *Handler {
	if cfg.MaxDigits <= 0 {
		cfg.MaxDigits = config.Default().Precision.MaxDigits
	}
	return &Handler{
		engine:  engine,
		engines: cache.New[int, *relativity.Engine](cache.DefaultConfig()),
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Close releases the engine cache
func (h *Handler) Close() {
	h.engines.Close()
}

// Register mounts the endpoints under /api/v1
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/info", h.handleInfo)

		r.Post("/velocity", handle(h, "velocity", velocity))
		r.Post("/distance", handle(h, "distance", distance))
		r.Post("/time-for-distance", handle(h, "time-for-distance", timeForDistance))
		r.Post("/lorentz", handle(h, "lorentz", lorentz))
		r.Post("/add-velocities", handle(h, "add-velocities", addVelocities))
		r.Post("/rapidity", handle(h, "rapidity", rapidity))
		r.Post("/four-momentum", handle(h, "four-momentum", fourMomentum))
		r.Post("/interval", handle(h, "interval", interval))

		r.Post("/flip-and-burn", handle(h, "flip-and-burn", flipAndBurn))
		r.Post("/fall", handle(h, "fall", fall))
		r.Post("/free-fall", handle(h, "free-fall", freeFall))
		r.Post("/twin-paradox", handle(h, "twin-paradox", twinParadox))
		r.Post("/warp-drive", handle(h, "warp-drive", warpDrive))

		r.Post("/rocket/accel-time", handle(h, "rocket/accel-time", rocketAccelTime))
		r.Post("/rocket/fuel-fraction", handle(h, "rocket/fuel-fraction", rocketFuelFraction))

		r.Post("/format", handle(h, "format", format))
		r.Post("/mass", handle(h, "mass", mass))

		r.Post("/series", handle(h, "series", h.series))
		r.Get("/series/ws", h.handleSeriesStream)
	})
}

// Options are the per-request overrides every endpoint accepts
type Options struct {
	Precision int             `json:"precision,omitempty"`
	Display   *DisplayOptions `json:"display,omitempty"`
}

func (o Options) options() Options { return o }

// DisplayOptions override the configured formatting of result quantities
type DisplayOptions struct {
	Places                *int    `json:"places,omitempty"`
	IgnoreChar            *string `json:"ignore_char,omitempty"`
	PreserveTrailingZeros *bool   `json:"preserve_trailing_zeros,omitempty"`
	ShowRoundingIndicator *bool   `json:"show_rounding_indicator,omitempty"`
}

type optioned interface {
	options() Options
}

// Quantity is a decimal result: the exact value at working precision, its
// human rendering and its unit
type Quantity struct {
	Value   string `json:"value"`
	Display string `json:"display"`
	Unit    string `json:"unit,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// call carries the engine and display settings of one request
type call struct {
	ctx    context.Context
	engine *relativity.Engine
	rocket *propulsion.Rocket
	format display.Request
	err    error
}

func (h *Handler) newCall(ctx context.Context, o Options) (*call, error) {
	engine := h.engine
	if o.Precision != 0 && o.Precision != engine.Digits() {
		if o.Precision < 0 || o.Precision > h.cfg.MaxDigits {
			return nil, rerr.Newf("precision must be between 1 and %d", h.cfg.MaxDigits).
				WithCode(rerr.CodeInvalidPrecision).
				WithDetail("precision", o.Precision)
		}
		e, err := h.engines.GetOrSet(o.Precision, func() (*relativity.Engine, error) {
			return relativity.New(o.Precision)
		})
		if err != nil {
			return nil, err
		}
		engine = e
	}

	f := display.Request{
		IgnoreChar:            h.cfg.Display.IgnoreChar,
		Places:                h.cfg.Display.Places(),
		PreserveTrailingZeros: h.cfg.Display.PreserveTrailingZeros,
		ShowRoundingIndicator: h.cfg.Display.RoundingIndicator(),
	}
	if d := o.Display; d != nil {
		if d.Places != nil {
			f.Places = *d.Places
		}
		if d.IgnoreChar != nil {
			f.IgnoreChar = *d.IgnoreChar
		}
		if d.PreserveTrailingZeros != nil {
			f.PreserveTrailingZeros = *d.PreserveTrailingZeros
		}
		if d.ShowRoundingIndicator != nil {
			f.ShowRoundingIndicator = *d.ShowRoundingIndicator
		}
	}
	if err := display.ValidateIgnoreChar(f.IgnoreChar); err != nil {
		return nil, err
	}
	if f.Places > h.cfg.MaxDigits {
		return nil, rerr.Newf("display places must not exceed %d", h.cfg.MaxDigits).
			WithCode(rerr.CodeValueOutOfRange).
			WithDetail("places", f.Places)
	}
	return &call{ctx: ctx, engine: engine, rocket: propulsion.New(engine), format: f}, nil
}

// q renders d as a Quantity. The first formatting failure is kept in c.err.
func (c *call) q(d mathx.Decimal, unit string) Quantity {
	r := c.format
	r.Value = d
	s, err := display.Format(r)
	if err != nil {
		c.fail(err)
	}
	return Quantity{Value: d.Text('f'), Display: s, Unit: unit}
}

// years renders seconds as a Quantity in years
func (c *call) years(seconds mathx.Decimal) Quantity {
	y, err := c.engine.SecondsToYears(seconds)
	if err != nil {
		c.fail(err)
		return Quantity{}
	}
	return c.q(y, "yr")
}

// beta renders a velocity as a fraction of c
func (c *call) beta(v mathx.Decimal) Quantity {
	b, err := c.engine.VelocityAsC(v)
	if err != nil {
		c.fail(err)
		return Quantity{}
	}
	return c.q(b, "c")
}

func (c *call) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// handle decodes a T, runs fn with a call built from the request options
// and writes its result as JSON
func handle[T optioned](h *Handler, op string, fn func(c *call, req T) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req T
		if err := decode(w, r, &req); err != nil {
			h.writeError(w, r, op, err)
			return
		}
		c, err := h.newCall(r.Context(), req.options())
		if err != nil {
			h.writeError(w, r, op, err)
			return
		}
		resp, err := fn(c, req)
		if err == nil {
			err = c.err
		}
		if err != nil {
			h.writeError(w, r, op, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return rerr.Wrap(err, "invalid request body").WithCode(rerr.CodeInvalidInputType)
	}
	return nil
}

// num maps an absent JSON number to nil so callees apply their defaults
func num(n json.Number) any {
	if n == "" {
		return nil
	}
	return n
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	k := h.engine.Constants()
	writeJSON(w, http.StatusOK, map[string]any{
		"version":    version.API,
		"build":      version.Info(),
		"precision":  k.Digits,
		"max_digits": h.cfg.MaxDigits,
		"constants": map[string]string{
			"c":                k.C.Text('f'),
			"g":                k.G.Text('f'),
			"light_year":       k.LightYear.Text('f'),
			"au":               k.AU.Text('f'),
			"seconds_per_year": k.SecondsPerYear.Text('f'),
		},
	})
}

// StatusFor maps an error code to its HTTP status
func StatusFor(code rerr.Code) int {
	switch code {
	case rerr.CodeInvalidInputType, rerr.CodeInvalidIgnoreChar, rerr.CodeValueOutOfRange,
		rerr.CodeInvalidPrecision:
		return http.StatusBadRequest
	case rerr.CodeVelocityExceedsC, rerr.CodePrecisionFailure, rerr.CodeDomainError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := rerr.GetCode(err)
	status := StatusFor(code)
	requestID := middleware.GetRequestID(r.Context())
	h.metrics.IncrementFailure(code.String())

	resp := ErrorResponse{Code: code.String(), Message: err.Error(), RequestID: requestID}
	var e *rerr.Error
	if errors.As(err, &e) && len(e.Details()) > 0 {
		resp.Details = e.Details()
	}

	fields := rlog.Fields{"operation": op, "code": code.String(), "status": status}
	if status >= http.StatusInternalServerError {
		h.logger.WithRequestID(requestID).ErrorWithErr("calculation failed", err, fields)
		resp.Message = "internal error"
		resp.Details = nil
	} else {
		h.logger.WithRequestID(requestID).Debug("calculation rejected", fields.Merge(rlog.Err(err)))
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
