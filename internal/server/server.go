// Package server exposes a Studio over HTTP.
//
// Routes:
//
//	GET    /health/live                          liveness
//	GET    /health/ready                         readiness
//	GET    /api/materials                        material catalog
//	POST   /api/cabinets                         lay out a cabinet (spec, prompt or Lisp source)
//	GET    /api/cabinets/current                 installed layout, ?meshes=true adds meshes
//	DELETE /api/cabinets/current                 clear the workspace
//	POST   /api/cabinets/current/measurements    toggle the measurement overlay
//	GET    /api/cabinets/current/properties      property sheet
//	GET    /api/cabinets/current/export          design document as text
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chazu/casework/internal/studio"
)

// shutdownTimeout bounds graceful shutdown once the serve context ends.
const shutdownTimeout = 5 * time.Second

// maxBodyBytes caps request bodies; Lisp sources are small.
const maxBodyBytes = 1 << 20

// Server is an http.Handler serving the cabinet API.
type Server struct {
	studio *studio.Studio
	logger *log.Logger
	router chi.Router
}

// New returns a server for st. A nil logger means log.Default().
func New(st *studio.Studio, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{studio: st, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", s.handleHealth)
	r.Get("/health/ready", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/materials", s.handleMaterials)
		r.Route("/cabinets", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Route("/current", func(r chi.Router) {
				r.Get("/", s.handleCurrent)
				r.Delete("/", s.handleClear)
				r.Post("/measurements", s.handleToggleMeasurements)
				r.Get("/properties", s.handleProperties)
				r.Get("/export", s.handleExport)
			})
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
// A shutdown caused by ctx is not an error.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// logRequests logs one line per request with status and latency.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"latency", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
