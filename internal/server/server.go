package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/metrics"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/narrative"
)

// Server holds the HTTP interface and the underlying query engine.
type Server struct {
	engine    *kg.Engine
	generator *narrative.Generator // nil when no chat model is configured

	httpServer *http.Server
	authToken  string
}

// NewServer wires the engine behind the HTTP API. generator may be nil; the
// /question endpoint then ignores narrative requests.
//
// Middleware order matters: Recovery must be outermost to catch everything,
// auth innermost so rejected requests still get logged and counted.
func NewServer(engine *kg.Engine, generator *narrative.Generator, httpAddr, authToken string) *Server {
	s := &Server{
		engine:    engine,
		generator: generator,
		authToken: authToken,
	}

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)

	var handler http.Handler = mux
	handler = s.authMiddleware(handler)
	handler = s.LoggingMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	// Health and metrics stay outside the auth chain so probes and
	// scrapers need no token.
	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", s.handleHealthz)
	rootMux.Handle("GET /metrics", promhttp.Handler())
	rootMux.Handle("/", handler)

	s.httpServer = &http.Server{
		Addr:    httpAddr,
		Handler: rootMux,
	}

	s.publishGraphGauges()
	return s
}

// publishGraphGauges exports the loaded graph's size once; the graph is
// immutable at request time so there is nothing to update later.
func (s *Server) publishGraphGauges() {
	stats := s.engine.Graph().Stats()
	for typ, count := range stats.NodesByType {
		metrics.GraphNodes.WithLabelValues(string(typ)).Set(float64(count))
	}
	for label, count := range stats.EdgesByType {
		metrics.GraphEdges.WithLabelValues(string(label)).Set(float64(count))
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests with a short deadline.
func (s *Server) Shutdown() {
	slog.Info("starting graceful shutdown of HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "err", err)
	}
}
