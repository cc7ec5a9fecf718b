package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"threatscape/data_engine"
	"threatscape/internal/config"
	"threatscape/internal/enhancer"
	"threatscape/internal/errors"
	"threatscape/internal/websocket"
	"threatscape/types"
)

// Server represents the HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
}

// Engine represents the main application instance wired into the HTTP layer.
type Engine struct {
	Config       *config.Config
	Orchestrator *enhancer.Orchestrator
	WSManager    *websocket.WebSocketManager
	Producer     *data_engine.EventProducer

	mutex     sync.RWMutex
	lastGraph *types.EnhancedGraph
	lastRun   time.Time
	startedAt time.Time
}

// NewEngine creates the application instance around its collaborators.
func NewEngine(cfg *config.Config, orch *enhancer.Orchestrator, wsm *websocket.WebSocketManager, producer *data_engine.EventProducer) *Engine {
	return &Engine{
		Config:       cfg,
		Orchestrator: orch,
		WSManager:    wsm,
		Producer:     producer,
		startedAt:    time.Now(),
	}
}

// setLastGraph records the most recent enhancement result for the dashboard.
func (e *Engine) setLastGraph(graph types.EnhancedGraph) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.lastGraph = &graph
	e.lastRun = time.Now()
}

// LastGraph returns the most recent enhancement result, if any.
func (e *Engine) LastGraph() (*types.EnhancedGraph, time.Time) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.lastGraph, e.lastRun
}

// NewServer creates a new HTTP server
func NewServer(port int) *Server {
	router := mux.NewRouter()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		router: router,
		server: server,
	}
}

// Start starts the server and blocks until it exits.
func Start(ctx context.Context, engine *Engine) error {
	port := engine.Config.ServerPort
	server := NewServer(port)

	rateLimiter := errors.NewRateLimiter(engine.Config.RateLimitWindow, engine.Config.RateLimitRequests)
	server.router.Use(errors.CORSMiddleware)
	server.router.Use(errors.SecurityHeadersMiddleware)
	server.router.Use(errors.RateLimitMiddleware(rateLimiter))
	server.router.Use(errors.ValidationMiddleware)
	server.router.Use(metricsMiddleware)

	setupRoutes(server.router, engine)

	log.Printf("🌐 Starting Threatscape server on port %d...", port)
	log.Printf("📊 API endpoints available on http://localhost:%d/api/v1/", port)
	log.Printf("🔗 WebSocket available on ws://localhost:%d/ws", port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.server.Shutdown(shutdownCtx)
	}()

	err := server.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// setupRoutes configures all the HTTP routes
func setupRoutes(router *mux.Router, engine *Engine) {
	api := router.PathPrefix("/api/v1").Subrouter()

	// WebSocket endpoint for dashboard updates
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		engine.WSManager.HandleConnection(w, r)
	})

	// Health check and Prometheus metrics
	router.HandleFunc("/health", handleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Graph enhancement endpoints
	api.HandleFunc("/graph/enhance", func(w http.ResponseWriter, r *http.Request) {
		handleEnhanceGraph(w, r, engine)
	}).Methods("POST")

	api.HandleFunc("/graph", func(w http.ResponseWriter, r *http.Request) {
		handleGetGraph(w, r, engine)
	}).Methods("GET")

	// Synthetic catalog inspection
	api.HandleFunc("/catalogs", func(w http.ResponseWriter, r *http.Request) {
		handleGetCatalogs(w, r)
	}).Methods("GET")

	// Threat path endpoints
	api.HandleFunc("/scenarios/flatten", func(w http.ResponseWriter, r *http.Request) {
		handleFlattenScenarios(w, r, engine)
	}).Methods("POST")

	api.HandleFunc("/paths/analytics", func(w http.ResponseWriter, r *http.Request) {
		handlePathAnalytics(w, r, engine)
	}).Methods("POST")

	api.HandleFunc("/paths/query", func(w http.ResponseWriter, r *http.Request) {
		handleQueryPaths(w, r)
	}).Methods("POST")

	// System status endpoint
	api.HandleFunc("/system/status", func(w http.ResponseWriter, r *http.Request) {
		handleSystemStatus(w, r, engine)
	}).Methods("GET")
}

// handleHealth returns health check status
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `","version":"1.0.0"}`))
}
