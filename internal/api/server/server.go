package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	rerr "github.com/msto63/relativity/foundation/core/error"
	rlog "github.com/msto63/relativity/foundation/core/log"
	"github.com/msto63/relativity/internal/api/handler"
	"github.com/msto63/relativity/internal/api/metrics"
	"github.com/msto63/relativity/internal/api/middleware"
	"github.com/msto63/relativity/internal/relativity"
	"github.com/msto63/relativity/pkg/core/config"
	"github.com/msto63/relativity/pkg/core/health"
	"github.com/msto63/relativity/pkg/core/version"
)

// Server is the relativity HTTP API server
type Server struct {
	httpServer *http.Server
	router     chi.Router
	handler    *handler.Handler
	health     *health.Registry
	metrics    *metrics.Metrics
	logger     *rlog.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Server  config.ServerConfig
	Handler handler.Config
	Version string
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return FromConfig(config.Default())
}

// FromConfig derives the server configuration from the application config
func FromConfig(cfg *config.Config) Config {
	return Config{
		Server: cfg.Server,
		Handler: handler.Config{
			Display:   cfg.Display,
			Series:    cfg.Series,
			MaxDigits: cfg.Precision.MaxDigits,
		},
		Version: version.API,
	}
}

// New creates a server computing with engine
func New(engine *relativity.Engine, cfg Config, logger *rlog.Logger) (*Server, error) {
	if engine == nil {
		return nil, rerr.New("server: engine is required").WithCode(rerr.CodeInvalidConfig)
	}
	if logger == nil {
		logger = rlog.New().WithName("api")
	}
	m := metrics.New()
	h := handler.New(engine, cfg.Handler, logger, m)

	healthRegistry := health.NewRegistry("relativity", cfg.Version)
	healthRegistry.RegisterFunc("http", func(ctx context.Context) health.CheckResult {
		return health.CheckResult{
			Name:    "http",
			Status:  health.StatusHealthy,
			Message: "HTTP server is running",
		}
	})
	healthRegistry.Register(health.ProbeCheck("engine", 2*time.Second, func(ctx context.Context) error {
		return probeEngine(engine)
	}))

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		report := healthRegistry.Check(req.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(report.Status.HTTPStatus())
		_ = json.NewEncoder(w).Encode(report)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	h.Register(r)

	s := &Server{
		router:  r,
		handler: h,
		health:  healthRegistry,
		metrics: m,
		logger:  logger,
		config:  cfg,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}
	return s, nil
}

// probeEngine checks that the engine still reproduces a known boost:
// 0.6c gives a Lorentz factor of 1.25 up to the last few digits
func probeEngine(engine *relativity.Engine) error {
	k := engine.Constants()
	v := k.Ctx.MustNew("0.6").Multiply(k.C)
	gamma, err := engine.LorentzFactor(v)
	if err != nil {
		return err
	}
	want := k.Ctx.MustNew("1.25")
	tolerance := k.Ctx.MustNew(fmt.Sprintf("1e%d", 3-k.Digits))
	if gamma.Subtract(want).Abs().GreaterThan(tolerance) {
		return fmt.Errorf("lorentz factor of 0.6c is %s", gamma.Text('f'))
	}
	return nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting relativity API", rlog.Fields{"address": s.Address()})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() {
	s.logger.Info("Starting relativity API (async)", rlog.Fields{"address": s.Address()})

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorWithErr("HTTP server error", err)
		}
	}()
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping relativity API")
	defer s.handler.Close()
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address
func (s *Server) Address() string {
	return s.config.Server.Address()
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// Metrics returns the server's Prometheus collectors
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}
