// Package web exposes the scanner runner over an HTTP API.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/buemura/reconbox/internal/scanner"
	"github.com/buemura/reconbox/internal/web/jobs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP server for the reconbox API.
type Server struct {
	router   chi.Router
	addr     string
	runner   *scanner.Runner
	manager  *jobs.Manager
	defaults scanner.Options
	logger   zerolog.Logger
}

// NewServer builds a new Server with middleware and routes configured.
// defaults seed the options of every scan submitted through the API.
func NewServer(addr string, runner *scanner.Runner, defaults scanner.Options, logger zerolog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		addr:     addr,
		runner:   runner,
		manager:  jobs.NewManager(runner, logger),
		defaults: defaults,
		logger:   logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.registerRoutes()

	return s
}

// Start listens on the configured address until ctx is cancelled, then shuts
// down gracefully and cancels running scans.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("web server listening")
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

	s.logger.Info().Msg("web server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return s.manager.Shutdown(shutdownCtx)
}

// Router exposes the chi.Router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
