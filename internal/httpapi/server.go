// Package httpapi exposes the conversion methods and county reference data
// over HTTP. Handlers adapt transport to the pure components and hold no
// business logic; the route set is fixed at construction.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/wasteworks/wte-api/internal/observability"
	"github.com/wasteworks/wte-api/internal/pathway"
	"github.com/wasteworks/wte-api/internal/refdata"
)

// Converters bundles one converter per supported method. All fields are
// required; the router registers a fixed route pair for each.
type Converters struct {
	Fermentation pathway.Converter
	HTL          pathway.Converter
	Combustion   pathway.Converter
	Digestion    pathway.Converter
}

// Server exposes the conversion and reference endpoints together with
// health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
	startedAt  time.Time
	store      refdata.ReferenceStore
	converters Converters
}

// NewServer creates the API server with its full route set registered.
func NewServer(
	addr string,
	cors CORSConfig,
	store refdata.ReferenceStore,
	converters Converters,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	logger zerolog.Logger,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:     logger,
		metrics:    metrics,
		clock:      clock,
		startedAt:  clock.Now(),
		store:      store,
		converters: converters,
	}

	s.route(mux, "GET /api/v1/fermentation/county/{county}", s.handleFermentationCounty)
	s.route(mux, "GET /api/v1/fermentation/counties", s.countiesHandler("fermentation"))
	s.route(mux, "GET /api/v1/fermentation/mass", s.calcHandler(converters.Fermentation, "mass"))
	s.route(mux, "GET /api/v1/htl/county/{county}", s.handleHTLCounty)
	s.route(mux, "GET /api/v1/htl/counties", s.countiesHandler("htl"))
	s.route(mux, "GET /api/v1/htl/sludge", s.calcHandler(converters.HTL, "sludge"))
	s.route(mux, "GET /api/v1/combustion/county/{county}", s.handleCombustionCounty)
	s.route(mux, "GET /api/v1/combustion/counties", s.countiesHandler("combustion"))
	s.route(mux, "GET /api/v1/combustion/mass", s.calcHandler(converters.Combustion, "mass"))
	s.route(mux, "GET /api/v1/digestion/county/{county}", s.handleDigestionCounty)
	s.route(mux, "GET /api/v1/digestion/counties", s.countiesHandler("digestion"))
	s.route(mux, "GET /api/v1/digestion/mass", s.calcHandler(converters.Digestion, "mass"))
	s.route(mux, "GET /api/v1/methods", s.handleMethods)
	s.route(mux, "GET /healthz", s.handleHealth)
	s.route(mux, "GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", metrics.Handler())

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      requestIDMiddleware(corsMiddleware(cors, s.accessLog(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// route registers a handler with request metrics labeled by route pattern.
func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	label := strings.TrimPrefix(pattern, "GET ")
	mux.Handle(pattern, s.instrument(label, h))
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server starting")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
