package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	httpapi "github.com/weshockley/rest-service/internal/api/http"
	"github.com/weshockley/rest-service/internal/config"
	"github.com/weshockley/rest-service/internal/service"
	platformhealth "github.com/weshockley/rest-service/platform/health/http"
	platformlogging "github.com/weshockley/rest-service/platform/logging"
	platformobservability "github.com/weshockley/rest-service/platform/observability"
	platformshutdown "github.com/weshockley/rest-service/platform/shutdown"
	"github.com/weshockley/rest-service/platform/telemetry"
)

const metricsNamespace = "rest_service"

// App содержит все зависимости для запуска и корректного shutdown сервиса
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *platformshutdown.Manager
	ready       *atomic.Bool
	wg          sync.WaitGroup
}

// Build собирает граф зависимостей: logger -> OTel -> синки телеметрии -> service -> HTTP
func Build(cfg config.Config) (*App, error) {
	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: cfg.Observability.ServiceName,
		Env:         string(cfg.AppEnv),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	cfg.Log(logger)

	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)

	providers, err := platformobservability.Init(context.Background(), cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("observability: %w", err)
	}
	shutdownMgr.Add("otel_providers", providers.Shutdown)

	sink, err := buildTelemetry(cfg, providers, logger, shutdownMgr)
	if err != nil {
		_ = shutdownMgr.Shutdown(context.Background())
		return nil, err
	}

	greetingService := service.NewGreetingService(service.NewSequence(), sink, logger)
	handler := httpapi.NewHandler(greetingService, logger)

	ready := &atomic.Bool{}
	ready.Store(true)
	health := platformhealth.Handler(ready.Load,
		platformhealth.WithStartTime(time.Now()),
		platformhealth.WithComponent("otel", enabledState(providers.Enabled)),
		platformhealth.WithComponent("kafka", enabledState(cfg.Kafka.Enabled)),
	)

	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		ServiceName: cfg.Observability.ServiceName,
		Logger:      logger,
		Metrics:     platformobservability.NewHTTPMetrics(metricsNamespace),
		Health:      health,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// выполняются в обратном порядке: сначала health -> 503, потом сервер, потом телеметрия
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))
	shutdownMgr.Add("health_not_serving", func(context.Context) error {
		ready.Store(false)
		return nil
	})

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
		ready:       ready,
	}, nil
}

// buildTelemetry собирает синк из включённых бэкендов.
// Ни одного бэкенда - nil: GreetingService работает без телеметрии.
func buildTelemetry(cfg config.Config, providers *platformobservability.Providers, logger *zap.Logger, shutdownMgr *platformshutdown.Manager) (service.TelemetrySink, error) {
	var sinks []telemetry.Sink

	if providers.Enabled {
		otelSink, err := telemetry.NewOTelSink(providers.MeterProvider)
		if err != nil {
			return nil, fmt.Errorf("otel telemetry sink: %w", err)
		}
		sinks = append(sinks, otelSink)
		logger.Info("OTel telemetry enabled", zap.String("endpoint", cfg.Observability.OTLPEndpoint))
	}

	if cfg.Kafka.Enabled {
		kafkaSink := telemetry.NewKafkaSink(logger, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		shutdownMgr.Add("kafka_writer", platformshutdown.CloseFunc(kafkaSink))
		sinks = append(sinks, kafkaSink)
		logger.Info("Kafka telemetry enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	if len(sinks) == 0 {
		logger.Info("Telemetry sink not configured, greetings are served without telemetry")
		return nil, nil
	}

	async := telemetry.NewAsyncSink(telemetry.Fanout(sinks...), cfg.TelemetryBufferSize, logger)
	shutdownMgr.Add("telemetry_queue", func(ctx context.Context) error {
		err := async.Close(ctx)
		if dropped := async.Dropped(); dropped > 0 {
			logger.Warn("Telemetry records dropped", zap.Int64("dropped", dropped))
		}
		return err
	})
	return async, nil
}

func enabledState(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// Run запускает HTTP сервер и блокируется до сигнала shutdown, отмены ctx или ошибки сервера
func (a *App) Run(ctx context.Context) error {
	defer platformlogging.Sync(a.logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.Info("Starting greeting service", zap.String("addr", a.httpServer.Addr))
	a.logger.Info("Health check available", zap.String("url", "http://"+a.httpServer.Addr+"/health"))

	var serveErr error
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", zap.Error(err))
			serveErr = err
			cancel()
		}
	}()

	shutdownErr := a.shutdownMgr.Wait(ctx)

	a.wg.Wait()
	a.logger.Info("Greeting service stopped")
	return errors.Join(serveErr, shutdownErr)
}
