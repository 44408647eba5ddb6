package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"kos-portal/internal/adapters/kosapi"
	logger_adapter "kos-portal/internal/adapters/logger"
	"kos-portal/internal/adapters/rest"
	"kos-portal/internal/adapters/session"
	"kos-portal/internal/configs"
	"kos-portal/internal/core/controller"
	"kos-portal/internal/core/port"
	"kos-portal/pkg/fluentlogger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// App - основная структура приложения
type App struct {
	httpServer   *http.Server
	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

// NewApp создает и настраивает все компоненты приложения
func NewApp() (*App, error) {

	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// инициализация логеров
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// базовый логер приложения с контекстом
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Debug("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// Один http-клиент на все сеансы: общий пул соединений и общий
	// фиксированный таймаут исходящих запросов.
	httpClient := &http.Client{Timeout: appConfig.RequestTimeout}

	makerIDs := kosapi.MakerIDs{
		Login:    appConfig.MakerIDs.Login,
		Register: appConfig.MakerIDs.Register,
		List:     appConfig.MakerIDs.List,
		Detail:   appConfig.MakerIDs.Detail,
		Booking:  appConfig.MakerIDs.Booking,
		Reviews:  appConfig.MakerIDs.Reviews,
	}

	// Каждый браузерный сеанс получает свое хранилище токена, свой шлюз
	// поверх общего http-клиента и свои контроллеры экранов.
	hub := session.NewHub(func(id string) *session.Session {
		store := session.NewStore()
		apiClient := kosapi.NewClient(appConfig.KosAPIBaseURL, makerIDs, httpClient, store)

		return &session.Session{
			ID:         id,
			Credential: store,
			Auth:       controller.NewAuthController(apiClient, store),
			Listings:   controller.NewListingsController(apiClient, store, appConfig.StorageBaseURL),
			Booking:    controller.NewBookingController(apiClient, store, appConfig.StorageBaseURL),
			Reviews:    controller.NewReviewsController(apiClient, store, appConfig.StorageBaseURL),
		}
	})
	appLogger.Debug("Session hub initialized", port.Fields{"kos_api_url": appConfig.KosAPIBaseURL})

	views, err := rest.NewViews(baseLogger.WithFields(port.Fields{"component": "views"}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Инициализация входящего адаптера (веб-сервера)
	httpServer := rest.NewServer(appConfig.Port, hub, views, appConfig.TokenCookieTTL, baseLogger)

	return &App{
		httpServer:   httpServer,
		logger:       appLogger,
		fluentClient: fluentClient,
	}, nil
}

// Run запускает приложение и управляет его жизненным циклом
func (a *App) Run() error {
	// Запускаем HTTP-сервер в отдельной горутине
	go func() {
		a.logger.Info("Kos portal is listening", port.Fields{"port": a.httpServer.Addr})
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("Failed to start kos portal", err, nil)
			os.Exit(1) // Если сервер не может запуститься, это фатально
		}
	}()

	// Настройка Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	a.logger.Debug("Kos portal is shutting down...", port.Fields{"signal": sig.String()})

	// Создаем контекст с таймаутом для завершения
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Корректно останавливаем сервер
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Kos portal shutdown failed", err, nil)
		os.Exit(1)
	}

	a.logger.Info("Application shut down gracefully.", nil)
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
