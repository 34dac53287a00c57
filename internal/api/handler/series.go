package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	rerr "github.com/msto63/relativity/foundation/core/error"
	rlog "github.com/msto63/relativity/foundation/core/log"
	"github.com/msto63/relativity/internal/series"
)

const (
	wsReadTimeout  = 120 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// SeriesRequest samples a burn from rest. Duration is proper time in
// seconds, or in years when DurationUnit is "yr".
type SeriesRequest struct {
	Options
	Acceleration json.Number `json:"acceleration,omitempty"`
	Duration     json.Number `json:"duration"`
	DurationUnit string      `json:"duration_unit,omitempty"`
	Points       int         `json:"points"`
	Workers      int         `json:"workers,omitempty"`
}

func (h *Handler) seriesRequest(c *call, req SeriesRequest) (series.Request, error) {
	if limit := h.cfg.Series.MaxPoints; limit > 0 && req.Points > limit {
		return series.Request{}, rerr.Newf("points must not exceed %d", limit).
			WithCode(rerr.CodeValueOutOfRange).
			WithDetail("points", req.Points)
	}

	var dur any = num(req.Duration)
	switch req.DurationUnit {
	case "", "s":
	case "yr":
		secs, err := c.engine.YearsToSeconds(dur)
		if err != nil {
			return series.Request{}, err
		}
		dur = secs
	default:
		return series.Request{}, rerr.Newf("unknown duration unit %q", req.DurationUnit).
			WithCode(rerr.CodeValueOutOfRange).
			WithDetail("duration_unit", req.DurationUnit)
	}

	workers := req.Workers
	if limit := h.cfg.Series.Workers; limit > 0 && (workers <= 0 || workers > limit) {
		workers = limit
	}
	return series.Request{
		Acceleration: num(req.Acceleration),
		Duration:     dur,
		Points:       req.Points,
		Workers:      workers,
	}, nil
}

func (h *Handler) series(c *call, req SeriesRequest) (any, error) {
	sreq, err := h.seriesRequest(c, req)
	if err != nil {
		return nil, err
	}
	points, err := series.Trajectory(c.ctx, c.engine, sreq)
	if err != nil {
		return nil, err
	}
	h.metrics.AddSeriesPoints(len(points))
	return map[string]any{"count": len(points), "points": points}, nil
}

// WSMessage is a client message on the series stream
type WSMessage struct {
	Type    string          `json:"type"` // "series", "cancel", "ping"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse is a server message on the series stream
type WSResponse struct {
	Type    string      `json:"type"` // "point", "done", "cancelled", "error", "pong"
	Payload interface{} `json:"payload,omitempty"`
}

// WSErrorPayload is the payload of an "error" response
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// wsConn serializes writes to a websocket
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(resp WSResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(resp)
}

func (c *wsConn) sendError(err error) error {
	return c.send(WSResponse{Type: "error", Payload: WSErrorPayload{
		Code:    rerr.GetCode(err).String(),
		Message: err.Error(),
	}})
}

// handleSeriesStream upgrades to a websocket and streams trajectory points
// for every "series" message. A new request or a "cancel" message stops
// the running stream.
func (h *Handler) handleSeriesStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnWithErr("WebSocket upgrade failed", err)
		return
	}
	defer conn.Close()
	defer h.metrics.StreamOpened()()

	logger := h.logger.WithField("remote", conn.RemoteAddr().String())
	logger.Info("WebSocket connection established")

	ws := &wsConn{conn: conn}
	ctx, cancel := context.WithCancel(context.Background())
	stop := func() {}
	var running sync.WaitGroup
	defer func() {
		stop()
		cancel()
		running.Wait()
	}()

	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WarnWithErr("WebSocket read error", err)
			} else {
				logger.Info("WebSocket connection closed")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		switch msg.Type {
		case "ping":
			_ = ws.send(WSResponse{Type: "pong"})

		case "cancel":
			stop()

		case "series":
			var req SeriesRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				_ = ws.sendError(rerr.Wrap(err, "invalid series payload").WithCode(rerr.CodeInvalidInputType))
				continue
			}
			stop()
			running.Wait()

			var sctx context.Context
			sctx, stop = context.WithCancel(ctx)
			running.Add(1)
			go func() {
				defer running.Done()
				h.stream(sctx, ws, req, logger)
			}()

		default:
			_ = ws.sendError(rerr.Newf("unknown message type %q", msg.Type).WithCode(rerr.CodeInvalidInputType))
		}
	}
}

// stream runs one series request to completion, cancellation or failure
func (h *Handler) stream(ctx context.Context, ws *wsConn, req SeriesRequest, logger *rlog.Logger) {
	timer := logger.StartTimer("series stream")
	count, err := h.emitSeries(ctx, ws, req)
	timer.Stop()
	h.metrics.AddSeriesPoints(count)

	switch {
	case err == nil:
		_ = ws.send(WSResponse{Type: "done", Payload: map[string]int{"count": count}})
	case errors.Is(err, context.Canceled):
		_ = ws.send(WSResponse{Type: "cancelled", Payload: map[string]int{"count": count}})
	default:
		h.metrics.IncrementFailure(rerr.GetCode(err).String())
		_ = ws.sendError(err)
	}
}

func (h *Handler) emitSeries(ctx context.Context, ws *wsConn, req SeriesRequest) (int, error) {
	c, err := h.newCall(ctx, req.Options)
	if err != nil {
		return 0, err
	}
	sreq, err := h.seriesRequest(c, req)
	if err != nil {
		return 0, err
	}
	count := 0
	err = series.Stream(ctx, c.engine, sreq, func(p series.Point) error {
		count++
		return ws.send(WSResponse{Type: "point", Payload: p})
	})
	return count, err
}
