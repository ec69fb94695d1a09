package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"

	"github.com/weshockley/rest-service/platform/kafka"
	"github.com/weshockley/rest-service/platform/logging"
	"github.com/weshockley/rest-service/platform/observability"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение (для разработки на хосте)
	EnvLocal Env = "local"
	// EnvDocker - Docker окружение (для запуска в контейнерах)
	EnvDocker Env = "docker"
)

// Config содержит конфигурацию greeting сервиса
type Config struct {
	AppEnv          Env           `env:"APP_ENV" envDefault:"local"`
	HTTPAddr        string        `env:"HTTP_ADDR"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`

	// TelemetryBufferSize размер очереди асинхронной отправки телеметрии
	TelemetryBufferSize int `env:"TELEMETRY_BUFFER_SIZE" envDefault:"1024"`

	Observability observability.Config
	Kafka         kafka.Config
}

// Load загружает конфигурацию из переменных окружения
// Дефолты HTTP_ADDR и LOG_FORMAT зависят от APP_ENV
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AppEnv != EnvLocal && cfg.AppEnv != EnvDocker {
		return Config{}, fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", cfg.AppEnv)
	}

	if cfg.HTTPAddr == "" {
		if cfg.AppEnv == EnvLocal {
			cfg.HTTPAddr = "127.0.0.1:8080"
		} else {
			cfg.HTTPAddr = "0.0.0.0:8080"
		}
	}
	if cfg.LogFormat == "" {
		if cfg.AppEnv == EnvLocal {
			cfg.LogFormat = "console"
		} else {
			cfg.LogFormat = "json"
		}
	}

	// endpoint телеметрии: переменная окружения, иначе telemetry.json
	cfg.Observability.DeploymentEnvironment = string(cfg.AppEnv)
	if err := cfg.Observability.Resolve(); err != nil {
		return Config{}, fmt.Errorf("resolve telemetry config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.TelemetryBufferSize <= 0 {
		return fmt.Errorf("TELEMETRY_BUFFER_SIZE must be positive")
	}
	return c.Kafka.Validate()
}

// Log выводит конфигурацию в лог
func (c Config) Log(logger *zap.Logger) {
	logger.Info("Config loaded",
		zap.String("app_env", string(c.AppEnv)),
		zap.String("http_addr", c.HTTPAddr),
		zap.Duration("shutdown_timeout", c.ShutdownTimeout),
		zap.String("log_level", c.LogLevel),
		zap.String("log_format", c.LogFormat),
		zap.Int("telemetry_buffer_size", c.TelemetryBufferSize),
		zap.Bool("otel_enabled", c.Observability.Enabled),
		zap.String("otel_endpoint", c.Observability.OTLPEndpoint),
		zap.Float64("otel_sampling_ratio", c.Observability.SamplingRatio),
		zap.Bool("kafka_enabled", c.Kafka.Enabled),
		zap.Strings("kafka_brokers", c.Kafka.Brokers),
		zap.String("kafka_topic", c.Kafka.Topic),
	)
}
