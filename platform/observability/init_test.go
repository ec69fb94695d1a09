package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestInit_DisabledInstallsNoopProviders(t *testing.T) {
	p, err := Init(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	require.False(t, p.Enabled)
	require.IsType(t, noop.MeterProvider{}, p.MeterProvider)
	require.Equal(t, p.MeterProvider, otel.GetMeterProvider())
	require.NoError(t, p.Shutdown(context.Background()))
}
