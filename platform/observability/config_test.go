package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "telemetry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfig_Resolve(t *testing.T) {
	t.Run("no endpoint and no file disables telemetry", func(t *testing.T) {
		cfg := Config{SamplingRatio: 1, ConfigFile: filepath.Join(t.TempDir(), "missing.json")}

		require.NoError(t, cfg.Resolve())
		require.False(t, cfg.Enabled)
	})

	t.Run("endpoint from env enables telemetry", func(t *testing.T) {
		cfg := Config{OTLPEndpoint: "collector:4317", SamplingRatio: 1}

		require.NoError(t, cfg.Resolve())
		require.True(t, cfg.Enabled)
	})

	t.Run("env endpoint wins over file", func(t *testing.T) {
		path := writeFile(t, `{"endpoint":"from-file:4317","samplingRatio":0.1}`)
		cfg := Config{OTLPEndpoint: "from-env:4317", SamplingRatio: 1, ConfigFile: path}

		require.NoError(t, cfg.Resolve())
		require.Equal(t, "from-env:4317", cfg.OTLPEndpoint)
		require.Equal(t, 1.0, cfg.SamplingRatio)
	})

	t.Run("file fills endpoint, ratio and service name", func(t *testing.T) {
		path := writeFile(t, `{"endpoint":"from-file:4317","samplingRatio":0.25,"serviceName":"greeter"}`)
		cfg := Config{SamplingRatio: 1, ServiceName: "rest-service", ConfigFile: path}

		require.NoError(t, cfg.Resolve())
		require.True(t, cfg.Enabled)
		require.Equal(t, "from-file:4317", cfg.OTLPEndpoint)
		require.Equal(t, 0.25, cfg.SamplingRatio)
		require.Equal(t, "greeter", cfg.ServiceName)
	})

	t.Run("disabled wins over endpoint", func(t *testing.T) {
		cfg := Config{Disabled: true, OTLPEndpoint: "collector:4317", SamplingRatio: 1}

		require.NoError(t, cfg.Resolve())
		require.False(t, cfg.Enabled)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		cfg := Config{SamplingRatio: 1, ConfigFile: writeFile(t, `{"endpoint":`)}

		require.Error(t, cfg.Resolve())
	})

	t.Run("ratio out of range is an error", func(t *testing.T) {
		cfg := Config{OTLPEndpoint: "collector:4317", SamplingRatio: 1.5}

		require.Error(t, cfg.Resolve())
	})
}
