// Package server exposes the precomputed dataset over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"playstore-dashboard/services"
	"playstore-dashboard/utils"
)

// Config holds configuration for the dashboard server.
type Config struct {
	Dataset    *services.Dataset
	Logger     *utils.Logger
	Addr       string
	SampleSize int
}

// Server is the dashboard HTTP server.
type Server struct {
	handler http.Handler
	addr    string
	logger  *utils.Logger
}

// New builds the router for the given dataset. The dataset must be fully
// loaded; the server never recomputes it.
func New(cfg Config) *Server {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		requestLogger(cfg.Logger),
		middleware.Recoverer,
		middleware.Compress(5),
	)
	SetupRoutes(r, NewHandlers(cfg.Dataset, cfg.Logger, cfg.SampleSize))

	return &Server{handler: r, addr: cfg.Addr, logger: cfg.Logger}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve listens on the configured address and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on an existing listener until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("[http] Dashboard listening on http://%s", ln.Addr())

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("[http] Shutting down...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
