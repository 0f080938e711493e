package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"presentation-service-go/internal/api"
	"presentation-service-go/internal/config"
	"presentation-service-go/internal/domain/pdf"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/cache"
	"presentation-service-go/internal/pkg/callback"
	"presentation-service-go/internal/pkg/gotenberg"
	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/media"
	"presentation-service-go/internal/pkg/statistics"
	"presentation-service-go/internal/pkg/storage"
	"presentation-service-go/internal/pkg/tracing"
)

var version = "dev"

func main() {
	// .env нужен только при локальном запуске
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracingCfg := tracing.Config{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Tracing.Environment,
		SamplingRate:   cfg.Tracing.SamplingRate,
	}
	if cfg.Tracing.Enabled {
		tracingCfg.CollectorURL = cfg.Tracing.Endpoint
	}
	shutdownTracer, err := tracing.InitTracer(tracingCfg)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}

	lib := assets.New(cfg.Assets.Dir)
	checkers := map[string]api.HealthChecker{}

	// Медиа
	var store cache.Store
	if cfg.Redis.Addr != "" {
		redisStore, err := cache.NewRedis(ctx, "media", cache.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.Prefix,
			TTL:       cfg.Media.CacheTTL,
		})
		if err != nil {
			logger.Warn("Redis is unavailable, using in-memory media cache", zap.Error(err))
		} else {
			store = redisStore
		}
	}
	if store == nil {
		store = cache.NewCache("media", cfg.Media.CacheTTL)
	}
	defer store.Close()
	fetcher := media.NewFetcher(media.NewClient(cfg.Media.Timeout), store, media.FetcherConfig{
		Timeout:      cfg.Media.Timeout,
		MaxAttempts:  cfg.Media.MaxAttempts,
		InitialDelay: cfg.Media.InitialDelay,
		MaxDelay:     cfg.Media.MaxDelay,
	})
	checkers["media"] = fetcher
	images := media.NewService(fetcher, cfg.Maps.URL, cfg.Maps.APIKey)

	// Статистика
	var statsDB statistics.DB
	if cfg.Database.URL != "" {
		pg, err := statistics.NewPostgresDB(ctx, cfg.Database.URL)
		if err != nil {
			logger.Warn("Statistics database is unavailable, keeping statistics in memory", zap.Error(err))
		} else {
			defer pg.Close()
			statsDB = pg
		}
	}
	stats := statistics.New(statsDB)

	// Конвертер HTML в PDF нужен только для html-отрисовки
	var converter gotenberg.Converter
	if cfg.Generation.Renderer == config.RendererHTML {
		client := gotenberg.NewClientWithRetryAndCircuitBreaker(gotenberg.Config{
			URL:     cfg.Gotenberg.URL,
			Timeout: cfg.Gotenberg.Timeout,
			Retry: gotenberg.RetryConfig{
				MaxAttempts:   cfg.Gotenberg.Retry.MaxAttempts,
				InitialDelay:  cfg.Gotenberg.Retry.InitialDelay,
				MaxDelay:      cfg.Gotenberg.Retry.MaxDelay,
				BackoffFactor: cfg.Gotenberg.Retry.BackoffFactor,
			},
			Breaker: gotenberg.BreakerConfig{
				FailureThreshold: cfg.Gotenberg.Breaker.FailureThreshold,
				ResetTimeout:     cfg.Gotenberg.Breaker.ResetTimeout,
				HalfOpenMaxCalls: cfg.Gotenberg.Breaker.HalfOpenMaxCalls,
				SuccessThreshold: cfg.Gotenberg.Breaker.SuccessThreshold,
			},
		})
		client.SetHandler(stats)
		converter = client
		checkers["gotenberg"] = client
		logger.Info("HTML renderer enabled", zap.String("gotenberg_url", cfg.Gotenberg.URL))
	}

	// Хранилище результатов
	files, err := storage.New(ctx, storage.Config{
		Type: cfg.Storage.Type,
		Dir:  cfg.Storage.Dir,
		S3: storage.S3Config{
			Region:         cfg.Storage.S3.Region,
			Bucket:         cfg.Storage.S3.Bucket,
			Endpoint:       cfg.Storage.S3.Endpoint,
			AccessKey:      cfg.Storage.S3.AccessKey,
			SecretKey:      cfg.Storage.S3.SecretKey,
			Prefix:         cfg.Storage.S3.Prefix,
			ForcePathStyle: cfg.Storage.S3.ForcePathStyle,
		},
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	if local, ok := files.(*storage.Local); ok && cfg.Storage.MaxAge > 0 && cfg.Storage.CleanupPeriod > 0 {
		go local.RunCleanup(ctx, cfg.Storage.MaxAge, cfg.Storage.CleanupPeriod)
	}

	// Отправка готовых файлов
	var sender pdf.Sender
	cb, err := callback.NewSender(callback.Config{
		URL:             cfg.Callback.URL,
		Port:            cfg.Callback.Port,
		ClientID:        cfg.Callback.ClientID,
		ClientKey:       cfg.Callback.ClientKey,
		ClientIDHeader:  cfg.Callback.ClientIDHeader,
		ClientKeyHeader: cfg.Callback.ClientKeyHeader,
		Timeout:         cfg.Callback.Timeout,
	})
	switch {
	case errors.Is(err, callback.ErrNotConfigured):
		logger.Warn("Callback url is not set, files are kept for download")
	case err != nil:
		logger.Fatal("Failed to initialize callback sender", zap.Error(err))
	default:
		sender = cb
	}

	registry := pdf.NewRegistry()
	assembler, err := pdf.NewAssembler(registry, pdf.Resources{
		Images:    images,
		Assets:    lib,
		MediaBase: cfg.Media.URL,
		AssetBase: cfg.Assets.BaseURL,
	}, converter, cfg.Generation.Renderer)
	if err != nil {
		logger.Fatal("Failed to create assembler", zap.Error(err))
	}
	service := pdf.NewService(registry, assembler, files, sender, stats, pdf.Options{
		Workers: int64(cfg.Generation.Workers),
		Timeout: cfg.Generation.Timeout,
	})
	logger.Info("Presentation service created",
		zap.String("renderer", cfg.Generation.Renderer),
		zap.String("storage", cfg.Storage.Type),
		zap.Int("workers", cfg.Generation.Workers),
	)

	handlers := api.NewHandlers(service, stats, lib, checkers)
	server := api.NewServer(handlers, api.Options{
		Debug:           cfg.Server.Debug,
		RequestTimeout:  cfg.Server.RequestTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CreateRate:      cfg.Server.CreateRate,
		CreateBurst:     cfg.Server.CreateBurst,
		CORSOrigins:     cfg.Server.CORSOrigins,
		Tracker:         stats,
	})
	server.SetupRoutes()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(cfg.Addr())
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	// Контекст сигналов уже отменен, завершение идет со своим таймаутом
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("Failed to stop server", zap.Error(err))
	}
	if err := service.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Background generations interrupted", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown tracer", zap.Error(err))
	}
	logger.Info("Server stopped")
}
