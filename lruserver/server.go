// Package lruserver serves a single LRU cache over HTTP.
package lruserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"gitlab.com/slon/lrucache/lrucache"
)

// Ключ для хранения logger в gin.Context
const loggerKey = "logger"

// Stats is the body of GET /v1/stats.
type Stats struct {
	Size     int `json:"size"`
	Capacity int `json:"capacity"`
}

// Server owns the cache, its metrics and the HTTP router.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	cache    *lrucache.SyncCache[string, string]
	registry *prometheus.Registry
	metrics  *metrics
	router   *gin.Engine
}

// New validates cfg and builds a server with an empty cache.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	cache, err := lrucache.NewSyncWithEvict[string, string](cfg.Capacity, s.onEvict)
	if err != nil {
		return nil, err
	}
	s.cache = cache
	s.metrics = newMetrics(s.registry, func() float64 { return float64(s.cache.Len()) }, cfg.Capacity)
	s.router = s.newRouter()
	return s, nil
}

// Handler returns the HTTP handler with all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting server", "addr", ln.Addr().String(), "capacity", s.cfg.Capacity)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()

		s.logger.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	// Ключ может содержать '/', клиент передаёт его как %2F.
	router.UseRawPath = true
	router.UnescapePathValues = true

	// Recovery middleware должен быть первым
	router.Use(recoveryMiddleware(s.logger))
	router.Use(slogMiddleware(s.logger))

	router.GET("/ping", pongHandler)
	router.GET(s.cfg.MetricsPath, gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	v1.GET("/keys/:key", s.getHandler)
	v1.HEAD("/keys/:key", s.containsHandler)
	v1.PUT("/keys/:key", s.putHandler)
	v1.DELETE("/keys/:key", s.removeHandler)
	v1.GET("/stats", s.statsHandler)

	return router
}

func (s *Server) onEvict(key, _ string) {
	s.metrics.evictions.Inc()
	s.logger.Debug("evicted", "key", key)
}

// slogMiddleware логирует запросы через slog и кладёт logger в контекст
func slogMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(loggerKey, logger)

		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("request processed",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// recoveryMiddleware обрабатывает паники и возвращает 500
func recoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		getLogger(c, logger).Error("panic recovered",
			"error", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// getLogger извлекает logger из gin.Context
func getLogger(c *gin.Context, fallback *slog.Logger) *slog.Logger {
	if logger, exists := c.Get(loggerKey); exists {
		if l, ok := logger.(*slog.Logger); ok {
			return l
		}
	}
	return fallback
}

func pongHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (s *Server) getHandler(c *gin.Context) {
	key := c.Param("key")

	value, ok := s.cache.Get(key)
	if !ok {
		s.metrics.misses.Inc()
		getLogger(c, s.logger).Debug("cache miss", "key", key)
		c.JSON(http.StatusNotFound, gin.H{"error": "key not found"})
		return
	}

	s.metrics.hits.Inc()
	c.Data(http.StatusOK, "application/octet-stream", []byte(value))
}

// containsHandler answers HEAD without promoting the key.
func (s *Server) containsHandler(c *gin.Context) {
	if s.cache.Contains(c.Param("key")) {
		c.Status(http.StatusOK)
		return
	}
	c.Status(http.StatusNotFound)
}

func (s *Server) putHandler(c *gin.Context) {
	logger := getLogger(c, s.logger)
	key := c.Param("key")

	body := http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxValueBytes)
	value, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("value too large", "key", key, "limit", tooLarge.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "value too large"})
			return
		}
		logger.Warn("failed to read body", "key", key, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s.cache.Put(key, string(value))
	logger.Debug("stored", "key", key, "bytes", len(value))
	c.Status(http.StatusNoContent)
}

func (s *Server) removeHandler(c *gin.Context) {
	if !s.cache.Remove(c.Param("key")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "key not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) statsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, Stats{Size: s.cache.Len(), Capacity: s.cache.Cap()})
}
