package kafka

import (
	"testing"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/require"
)

func TestConfig_EnvDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}))

	require.False(t, cfg.Enabled)
	require.Equal(t, []string{"localhost:19092"}, cfg.Brokers)
	require.Equal(t, "greeting.telemetry", cfg.Topic)
}

func TestConfig_EnvBrokers(t *testing.T) {
	var cfg Config
	require.NoError(t, env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{
		"KAFKA_TELEMETRY_ENABLED": "true",
		"KAFKA_BROKERS":           "kafka-1:9092,kafka-2:9092",
		"KAFKA_TELEMETRY_TOPIC":   "telemetry",
	}}))

	require.True(t, cfg.Enabled)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	require.Equal(t, "telemetry", cfg.Topic)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, Config{}.Validate())
	require.Error(t, Config{Enabled: true, Topic: "t"}.Validate())
	require.Error(t, Config{Enabled: true, Brokers: []string{"b:9092"}}.Validate())
}
