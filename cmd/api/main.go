package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plastinin/bizreport/internal/adapter/csvio"
	"github.com/plastinin/bizreport/internal/adapter/http/handler"
	"github.com/plastinin/bizreport/internal/adapter/llm"
	"github.com/plastinin/bizreport/internal/adapter/storage"
	"github.com/plastinin/bizreport/internal/config"
	"github.com/plastinin/bizreport/internal/usecase"
	"github.com/plastinin/bizreport/internal/web"
	"github.com/plastinin/bizreport/pkg/logger"
	"go.uber.org/zap"

	apphttp "github.com/plastinin/bizreport/internal/adapter/http"
)

const startupCheckTimeout = 10 * time.Second

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Инициализируем логгер
	log := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	log.Info("Starting business report API",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("provider", cfg.Summarizer.Provider),
		zap.String("staging", cfg.Staging.Backend),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Временное хранилище загрузок
	fileStorage, err := newFileStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize staging storage", zap.Error(err))
	}

	// Провайдер суммаризации
	summarizer := newSummarizer(ctx, cfg, log)

	// Инициализируем use cases
	reportUC := usecase.NewReportUseCase(fileStorage, csvio.NewCodec(), summarizer, log)

	// Инициализируем handlers
	reportHandler := handler.NewReportHandler(reportUC, cfg.Server.MaxUploadSize, log)
	healthHandler := handler.NewHealthHandler(cfg.Summarizer.Provider, cfg.Staging.Backend)

	opts := apphttp.RouterOptions{AllowedOrigins: cfg.Server.AllowedOrigins}
	if cfg.Frontend.Enabled {
		frontend, err := web.Handler()
		if err != nil {
			log.Fatal("Failed to load embedded frontend", zap.Error(err))
		}
		opts.Frontend = frontend
	}

	// Создаём роутер
	router := apphttp.NewRouter(reportHandler, healthHandler, opts, log)

	// Создаём HTTP сервер
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", cfg.Server.Addr()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}

func newFileStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (usecase.FileStorage, error) {
	if cfg.Staging.Backend == config.StagingS3 {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to S3 staging",
			zap.String("endpoint", cfg.S3.Endpoint),
			zap.String("bucket", cfg.S3.Bucket),
		)
		return s3Storage, nil
	}

	localStorage, err := storage.NewLocalStorage(cfg.Staging.Dir)
	if err != nil {
		return nil, err
	}
	log.Info("Using local staging", zap.String("dir", localStorage.Dir()))
	return localStorage, nil
}

func newSummarizer(ctx context.Context, cfg *config.Config, log *zap.Logger) usecase.Summarizer {
	if cfg.Summarizer.Provider == config.ProviderOpenAI {
		log.Info("Using OpenAI summarizer", zap.String("model", cfg.Summarizer.OpenAIModel))
		return llm.NewOpenAIClient(cfg.Summarizer, log)
	}

	hfClient := llm.NewHuggingFaceClient(cfg.Summarizer, log)
	if cfg.Summarizer.APIKey == "" {
		// Ключ не обязателен при старте, запросы упадут с 401
		log.Warn("HF_API_KEY is not set, summarization requests will fail")
	}

	// Проверяем доступность модели, только предупреждение
	checkCtx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
	defer cancel()
	if err := hfClient.CheckHealth(checkCtx); err != nil {
		log.Warn("Hugging Face health check failed", zap.Error(err))
	} else {
		log.Info("Hugging Face model is reachable", zap.String("model", cfg.Summarizer.Model))
	}

	return hfClient
}
