package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Pinger reports store reachability; satisfied by repository.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the ops surface: health check and Prometheus scrape endpoint.
type Server struct {
	port     int
	store    Pinger
	gatherer prometheus.Gatherer
	onScrape []func()
	log      *zerolog.Logger
	server   *http.Server
}

// NewServer builds the ops server. Each onScrape hook runs before /metrics is served.
func NewServer(port int, store Pinger, gatherer prometheus.Gatherer, logger *zerolog.Logger, onScrape ...func()) *Server {
	compLog := logger.With().Str("component", "ops-http").Logger()
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		port:     port,
		store:    store,
		gatherer: gatherer,
		onScrape: onScrape,
		log:      &compLog,
	}
}

// Router returns the chi mux with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealthCheck)
	metricsHandler := promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		for _, hook := range s.onScrape {
			hook()
		}
		metricsHandler.ServeHTTP(w, r)
	})
	return r
}

// Start blocks until the server stops. A graceful Shutdown yields nil.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info().Int("port", s.port).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.log.Warn().Err(err).Msg("health check failed")
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
