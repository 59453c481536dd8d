// Package server exposes the planning engine over HTTP using gin.
//
// Every request runs its own independent search bounded by the request
// context and the configured search timeout. Inputs are JSON; failures are
// reported as {"error": "..."} with 400 for invalid input and 500 otherwise.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/piwi3910/ModuPlan/internal/engine"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// shutdownGrace bounds how long Run waits for in-flight requests.
const shutdownGrace = 5 * time.Second

// Server serves the planning endpoints.
type Server struct {
	settings model.Settings
	logger   *log.Logger
	router   *gin.Engine
}

// New builds a server whose requests start from settings. A nil logger
// falls back to log.Default().
func New(settings model.Settings, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{settings: settings, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.GET("/health", s.handleHealth)
	r.POST("/combinations", s.handleCombinations)
	r.POST("/arrangements", s.handleArrangements)
	r.POST("/perimeter", s.handlePerimeter)
	s.router = r
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start).Round(time.Millisecond))
	}
}

// searchContext bounds a request by the configured search timeout.
func (s *Server) searchContext(c *gin.Context, settings model.Settings) (context.Context, context.CancelFunc) {
	ctx := c.Request.Context()
	if settings.SearchTimeout > 0 {
		return context.WithTimeout(ctx, time.Duration(settings.SearchTimeout)*time.Second)
	}
	return context.WithCancel(ctx)
}

// fail writes err with a status derived from its sentinel.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, model.ErrInvalidSite),
		errors.Is(err, model.ErrInvalidModule),
		errors.Is(err, model.ErrTypeIndexOutOfRange),
		errors.Is(err, model.ErrInvalidCount),
		errors.Is(err, engine.ErrNoModules),
		errors.Is(err, engine.ErrInvalidBounds),
		errors.Is(err, engine.ErrInvalidModuleCap),
		errors.Is(err, engine.ErrModuleDoesNotFit),
		errors.Is(err, engine.ErrNoSuchCombination):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
