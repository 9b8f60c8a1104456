// Package api exposes fold jobs over HTTP.
//
// Routes, all under /api/v1:
//
//	GET  /health          liveness and version
//	POST /fold            run a fold job
//	GET  /result/{jobID}  the job's S.json document
//	GET  /jobs/{jobID}    the job record
//	GET  /jobs?limit=N    recent job records, newest first
//
// Errors are returned as {"code": ..., "detail": ...} with the status given
// by [github.com/nuss3d/foldserver/pkg/errors.HTTPStatus].
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nuss3d/foldserver/pkg/config"
	"github.com/nuss3d/foldserver/pkg/job"
)

const (
	// Prefix is the path prefix of every route.
	Prefix = "/api/v1"

	shutdownGrace     = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 120 * time.Second

	// bodySlack is added to max_n to bound request bodies.
	bodySlack = 4 << 10
)

// Server serves the fold API.
type Server struct {
	cfg    *config.Config
	orch   *job.Orchestrator
	logger *log.Logger
	router chi.Router
}

// NewServer builds the router for orch.
func NewServer(cfg *config.Config, orch *job.Orchestrator, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, orch: orch, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.NotFound(s.handleNotFound)

	r.Route(Prefix, func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/fold", s.handleFold)
		r.Get("/result/{jobID}", s.handleResult)
		r.Get("/jobs", s.handleJobs)
		r.Get("/jobs/{jobID}", s.handleJob)
	})
	return r
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. In-flight requests get
// a grace period to finish before the server closes.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		// a fold request blocks for the whole solver run
		WriteTimeout: s.cfg.SolverTimeout.Duration + time.Minute,
		IdleTimeout:  idleTimeout,
		// requests outlive ctx so that shutdown can drain running folds
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down api", "grace", shutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// requestLogger logs one line per request.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
