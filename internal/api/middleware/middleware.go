// Package middleware holds the HTTP middleware shared by the API routes:
// request IDs, request logging and request metrics.
package middleware

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	rlog "github.com/msto63/relativity/foundation/core/log"
	"github.com/msto63/relativity/internal/api/metrics"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestID reuses an incoming X-Request-ID or assigns a fresh UUID and
// echoes it on the response
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// GetRequestID returns the request ID stored by RequestID, or ""
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Logger logs every finished request with its status and duration
func Logger(logger *rlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := Wrap(w)

			next.ServeHTTP(wrapper, r)

			fields := rlog.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      wrapper.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			l := logger.WithRequestID(GetRequestID(r.Context()))
			if wrapper.Status() >= http.StatusInternalServerError {
				l.Error("HTTP request", fields)
				return
			}
			l.Info("HTTP request", fields)
		})
	}
}

// Metrics records request counts and latency per chi route pattern
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := Wrap(w)

			next.ServeHTTP(wrapper, r)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(route, r.Method, wrapper.Status(), time.Since(start))
		})
	}
}

// ResponseWrapper captures the status code written by a handler
type ResponseWrapper struct {
	http.ResponseWriter
	statusCode int
}

// Wrap returns w as a ResponseWrapper, reusing an existing one
func Wrap(w http.ResponseWriter) *ResponseWrapper {
	if rw, ok := w.(*ResponseWrapper); ok {
		return rw
	}
	return &ResponseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
}

// Status returns the written status code
func (w *ResponseWrapper) Status() int {
	return w.statusCode
}

func (w *ResponseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Flush implements http.Flusher
func (w *ResponseWrapper) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements http.Hijacker for websocket upgrades
func (w *ResponseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hj.Hijack()
}
