// Package server exposes collesort over HTTP.
//
// Endpoints:
//
//	POST /v1/sort   - partition values into balanced teams
//	GET  /v1/health - liveness and in-flight solves
//	GET  /metrics   - Prometheus metrics
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hupe1980/collesort"
	"github.com/hupe1980/collesort/resource"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end of the solver.
type Server struct {
	cfg        Config
	logger     *collesort.Logger
	controller *resource.Controller
	metrics    *PrometheusCollector
	registry   *prometheus.Registry
	router     *gin.Engine
	handler    http.Handler
}

// New creates a server. A nil logger disables logging.
func New(cfg Config, logger *collesort.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = collesort.NoopLogger()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	s := &Server{
		cfg:    cfg,
		logger: logger,
		controller: resource.NewController(resource.Config{
			MaxConcurrentSolves: cfg.MaxConcurrentSolves,
			RequestsPerSecond:   cfg.RequestsPerSecond,
			Burst:               cfg.Burst,
		}),
		metrics:  NewPrometheusCollector(reg),
		registry: reg,
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes(router)
	s.router = router
	s.handler = gzhttp.GzipHandler(router)

	return s, nil
}

func (s *Server) registerRoutes(router *gin.Engine) {
	v1 := router.Group("/v1")
	{
		v1.POST("/sort", s.handleSort)
		v1.GET("/health", s.handleHealth)
	}
	// Compression is done by gzhttp around the whole router.
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		DisableCompression: true,
	})))
}

// Handler returns the HTTP handler. Responses are gzip-compressed for
// clients that accept it.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.DebugContext(c.Request.Context(), "request completed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
