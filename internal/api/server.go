// Package api serves markdown conversion and page publishing over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yaklabco/gomd2notion/internal/logging"
	"github.com/yaklabco/gomd2notion/pkg/publish"
)

const (
	maxBodyBytes    = 4 << 20
	shutdownTimeout = 10 * time.Second
)

// Server is the HTTP API server.
type Server struct {
	router    chi.Router
	converter *publish.Converter
	publisher *publish.Publisher
	log       *log.Logger
}

// NewServer creates and configures the HTTP server. publisher may be nil,
// in which case page creation answers 503.
func NewServer(converter *publish.Converter, publisher *publish.Publisher, logger *log.Logger) *Server {
	if converter == nil {
		converter = publish.NewConverter()
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Server{
		converter: converter,
		publisher: publisher,
		log:       logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(limitBody(maxBodyBytes))
		r.Post("/blocks", s.handleBlocks)
		r.Post("/pages", s.handlePages)
	})

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", logging.FieldAddr, addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
