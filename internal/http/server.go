// Package http provides the HTTP server, routing and shared middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/linkseal/linkseal/internal/config"
	"github.com/linkseal/linkseal/internal/metrics"
	vaultHTTP "github.com/linkseal/linkseal/internal/vault/http"
)

// Store is the subset of the secret store the server needs for readiness checks.
type Store interface {
	Len() int
}

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	store  Store
	logger *slog.Logger
}

// NewServer creates the API server with routing and middleware configured.
func NewServer(
	cfg *config.Config,
	vaultHandler *vaultHTTP.VaultHandler,
	metricsProvider *metrics.Provider,
	store Store,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:  store,
		logger: logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if cfg.CORSEnabled {
		router.Use(createCORSMiddleware(logger))
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Secret lifecycle endpoints
	api := router.Group("/api")
	{
		createHandlers := []gin.HandlerFunc{}
		if cfg.RateLimitEnabled {
			createHandlers = append(createHandlers, CreateRateLimitMiddleware(
				cfg.RateLimitRequestsPerSec,
				cfg.RateLimitBurst,
				logger,
			))
		}
		createHandlers = append(createHandlers, vaultHandler.CreateHandler)

		api.POST("/create", createHandlers...)
		api.GET("/view/:id", vaultHandler.ViewHandler)
		api.POST("/reveal/:id", vaultHandler.RevealHandler)
		api.POST("/attempt/:id", vaultHandler.AttemptHandler)
		api.DELETE("/destroy/:id", vaultHandler.DestroyHandler)
	}

	s.router = router
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can accept traffic.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"components": gin.H{
				"store": "error",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"components": gin.H{
			"store":          "ok",
			"active_secrets": s.store.Len(),
		},
	})
}
