package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"presentation-service-go/internal/api/middleware"
	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/tracing"
)

// Options параметры HTTP сервера
type Options struct {
	Debug           bool
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	// CreateRate запросов create в секунду, 0 без ограничения
	CreateRate  float64
	CreateBurst int
	CORSOrigins []string
	// Tracker учитывает запросы к API презентаций, может быть nil
	Tracker middleware.RequestTracker
}

type Server struct {
	Router   *gin.Engine
	Handlers *Handlers
	opts     Options

	mu     sync.Mutex
	server *http.Server
}

func NewServer(handlers *Handlers, opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 30 * time.Second
	}

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20 // 8 MiB

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.GinTracingMiddleware())
	router.Use(corsMiddleware(opts.CORSOrigins))
	router.Use(middleware.PrometheusMiddleware())
	router.Use(middleware.StatisticsMiddleware(opts.Tracker, "/api/v1/pdf/"))

	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), opts.RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	return &Server{
		Router:   router,
		Handlers: handlers,
		opts:     opts,
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader, "Content-Disposition"}
	return cors.New(cfg)
}

func (s *Server) SetupRoutes() {
	s.Router.GET("/health", s.Handlers.Health)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	static := s.Router.Group("/static")
	{
		static.GET("/icons/:name", s.Handlers.Assets.Icon)
		static.GET("/patterns/:name", s.Handlers.Assets.Pattern)
		static.GET("/fonts/:name", s.Handlers.Assets.Font)
	}

	v1 := s.Router.Group("/api/v1")
	{
		presentations := v1.Group("/pdf")
		presentations.POST("/get-templates", s.Handlers.PDF.GetTemplates)
		presentations.POST("/get-blocks", s.Handlers.PDF.GetBlocks)
		presentations.POST("/create", middleware.RateLimit(s.opts.CreateRate, s.opts.CreateBurst), s.Handlers.PDF.Create)
		presentations.POST("/preview", s.Handlers.PDF.Preview)
		presentations.GET("/file/:fileId", s.Handlers.PDF.GetFile)

		v1.GET("/statistics", s.Handlers.Statistics.GetStatistics)
	}
}

// Start запускает сервер и блокируется до ошибки или до Stop
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.opts.RequestTimeout + 10*time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	logger.Info("Starting server", zap.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.ShutdownTimeout)
	defer cancel()

	logger.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
