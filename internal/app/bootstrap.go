package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/rushbuy/config"
	"github.com/Gunvolt24/rushbuy/internal/notify"
	"github.com/Gunvolt24/rushbuy/internal/ports"
	"github.com/Gunvolt24/rushbuy/internal/remote"
	storemem "github.com/Gunvolt24/rushbuy/internal/store/memory"
	storepg "github.com/Gunvolt24/rushbuy/internal/store/postgres"
	rest "github.com/Gunvolt24/rushbuy/internal/transport/http"
	"github.com/Gunvolt24/rushbuy/internal/usecase"
	"github.com/Gunvolt24/rushbuy/pkg/logger"
	"github.com/Gunvolt24/rushbuy/pkg/metrics"
	"github.com/Gunvolt24/rushbuy/pkg/telemetry"
	"github.com/Gunvolt24/rushbuy/pkg/validate"
)

// App — собранное приложение и его внешние интерфейсы.
type App struct {
	Logger          ports.Logger // логгер
	HTTPServer      *http.Server // HTTP-сервер
	gracefulTimeout time.Duration
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Хранилище кэша: Postgres при заданном DSN, иначе in-memory.
	var (
		store     ports.ProductStore
		closePool = func() {}
	)
	if cfg.Postgres.DSN != "" {
		pool, pErr := storepg.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if pErr != nil {
			if cErr := cleanupLogger(); cErr != nil {
				logg.Warnf(ctx, "cleanup logger: %v", cErr)
			}
			return nil, func() {}, pErr
		}
		store = storepg.NewProductStore(pool)
		closePool = pool.Close
		logg.Infof(ctx, "product store: postgres")
	} else {
		store = storemem.NewProductStore()
		logg.Infof(ctx, "product store: in-memory (no DSN configured)")
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Издатель событий: Kafka при включённой конфигурации, иначе заглушка.
	var notifier ports.Notifier = notify.NoopNotifier{}
	if cfg.Kafka.Enabled {
		notifier = notify.NewKafkaNotifier(&notify.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			BatchTimeout: cfg.Kafka.BatchTimeout,
		}, logg)
		logg.Infof(ctx, "kafka notifier enabled topic=%s brokers=%v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	// Сборка зависимостей доменного слоя.
	catalogClient := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout)
	productValidator := validate.NewProductValidator()
	catalogService := usecase.NewCatalogService(store, catalogClient, productValidator, notifier, logg, usecase.Config{
		PageSize:             cfg.Paging.PageSize,
		SearchDebounce:       cfg.Paging.SearchDebounce,
		CategoryRefreshLimit: cfg.Paging.CategoryRefreshLimit,
	})

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(catalogService, logg, cfg.Paging.PageSize)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if nerr := notifier.Close(); nerr != nil {
			logg.Warnf(ctx, "notifier close error: %v", nerr)
		}
		closePool()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер; ждёт отмены контекста или ошибки и останавливает его.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		a.Logger.Warnf(ctx, "background error: %v", err)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
