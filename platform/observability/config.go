package observability

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Config конфигурация OpenTelemetry (traces + metrics + propagator)
type Config struct {
	// Disabled выключает экспорт независимо от остальных настроек
	Disabled bool `env:"OTEL_SDK_DISABLED"`
	// OTLPEndpoint адрес OTLP gRPC (traces + metrics), например "127.0.0.1:4317" или "otel-collector:4317"
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// SamplingRatio доля трасс для семплирования (0..1), 1.0 = все
	SamplingRatio float64 `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1.0"`
	// ServiceName имя сервиса
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"rest-service"`
	// DeploymentEnvironment окружение (local, docker), заполняется из APP_ENV
	DeploymentEnvironment string
	// ServiceVersion опционально, например из build
	ServiceVersion string `env:"SERVICE_VERSION"`
	// ConfigFile JSON файл, из которого берётся endpoint, если он не задан в окружении
	ConfigFile string `env:"TELEMETRY_CONFIG_FILE" envDefault:"telemetry.json"`

	// Enabled вычисляется в Resolve: есть endpoint и экспорт не выключен
	Enabled bool
}

// fileConfig формат telemetry.json
type fileConfig struct {
	Endpoint      string   `json:"endpoint"`
	SamplingRatio *float64 `json:"samplingRatio"`
	ServiceName   string   `json:"serviceName"`
}

// Resolve дополняет конфигурацию из ConfigFile и вычисляет Enabled.
// Переменные окружения имеют приоритет над файлом. Отсутствие файла - не ошибка.
func (c *Config) Resolve() error {
	if c.OTLPEndpoint == "" && c.ConfigFile != "" {
		fc, err := readFileConfig(c.ConfigFile)
		if err != nil {
			return err
		}
		if fc != nil {
			c.OTLPEndpoint = fc.Endpoint
			if fc.SamplingRatio != nil {
				c.SamplingRatio = *fc.SamplingRatio
			}
			if fc.ServiceName != "" {
				c.ServiceName = fc.ServiceName
			}
		}
	}

	if c.SamplingRatio < 0 || c.SamplingRatio > 1 {
		return fmt.Errorf("sampling ratio must be within [0, 1], got %v", c.SamplingRatio)
	}

	c.Enabled = !c.Disabled && c.OTLPEndpoint != ""
	return nil
}

func readFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read telemetry config %s: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse telemetry config %s: %w", path, err)
	}
	return &fc, nil
}
