package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jirapatw/powerview/services/api/config"
	"github.com/jirapatw/powerview/services/api/db"
	"github.com/jirapatw/powerview/services/api/meter"
	"github.com/jirapatw/powerview/services/api/tariff"
)

// ReadingStore is the slice of the database layer the handlers need; tests
// substitute an in-memory fake.
type ReadingStore interface {
	FetchReadings(ctx context.Context, q db.RangeQuery) ([]meter.Reading, error)
	ListMeters(ctx context.Context) ([]meter.Info, error)
}

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg    config.Config
	store  ReadingStore
	rates  tariff.Tariff
	engine *gin.Engine
	now    func() time.Time
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, store ReadingStore, rates tariff.Tariff) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(corsMiddleware())
	engine.Use(metricsMiddleware())

	if cfg.BearerToken != "" {
		engine.Use(bearerAuthMiddleware(cfg.BearerToken))
	}

	server := &Server{cfg: cfg, store: store, rates: rates, engine: engine, now: time.Now}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.engine.GET("/meters", s.handleListMeters)
	s.engine.GET("/dashboard", s.handleDashboard)
	s.engine.GET("/charge", s.handleCharge)
}

// respondError writes the {success:false, error:{code,message}} envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

// storeError maps a failed store call onto the envelope. Deadline hits get
// their own status so operators can tell a slow database from a broken one.
func storeError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		respondError(c, http.StatusGatewayTimeout, "STORE_TIMEOUT", "reading store query timed out")
		return
	}
	respondError(c, http.StatusInternalServerError, "STORE_ERROR", err.Error())
}

func (s *Server) handleListMeters(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.QueryTimeout)
	defer cancel()

	meters, err := s.store.ListMeters(ctx)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": meters})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
