// Package server exposes the model client over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/config"
	"github.com/yildizm/HumanizePro/internal/logger"
)

// Detector is the model client the handlers call
type Detector interface {
	Analyze(ctx context.Context, text string) (common.AnalysisResult, error)
	Humanize(ctx context.Context, text string, language common.Language, tone common.Tone) (string, error)
}

// Options configures a Server
type Options struct {
	Config   config.ServerConfig
	Provider string
	Model    string

	// Health checks the model backend; nil reports healthy
	Health func(ctx context.Context) error

	Logger *logger.Logger
}

// Server serves the HTTP API. Requests share nothing but the detector and
// the rate limiter.
type Server struct {
	detector Detector
	opts     Options
	log      *logger.Logger
	limiter  *clientLimiter
	handler  http.Handler
}

// New builds the router for d
func New(d Detector, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	s := &Server{
		detector: d,
		opts:     opts,
		log:      opts.Logger.WithComponent("server"),
	}
	if rl := opts.Config.RateLimit; rl.Enabled {
		s.limiter = newClientLimiter(rl.RequestsPerMinute, rl.Burst)
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.RealIP)
	mux.Use(s.requestLogger)
	mux.Use(middleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.Config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	mux.Get("/health", s.handleHealth)

	mux.Route("/api", func(rt chi.Router) {
		rt.Get("/options", s.handleOptions)

		rt.Group(func(limited chi.Router) {
			if s.limiter != nil {
				limited.Use(s.rateLimit)
			}
			limited.Use(s.limitBody)
			limited.Post("/analyze", s.wrap(s.handleAnalyze))
			limited.Post("/humanize", s.wrap(s.handleHumanize))
		})
	})

	return mux
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to the configured shutdown timeout
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	cfg := s.opts.Config
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoWithFields("listening", []logger.Field{
			logger.F("address", ln.Addr().String()),
			logger.Provider(s.opts.Provider),
		})
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

	s.log.Info("shutting down")
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
