package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestKafkaSink(w *fakeWriter) *KafkaSink {
	s := newKafkaSink(zap.NewNop(), w, "greeting.telemetry")
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestKafkaSink_TrackEvent(t *testing.T) {
	w := &fakeWriter{}
	s := newTestKafkaSink(w)

	require.NoError(t, s.TrackEvent(context.Background(), "GreetingRequested"))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	require.Equal(t, "GreetingRequested", string(msg.Key))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	require.Equal(t, "event", payload["kind"])
	require.Equal(t, "GreetingRequested", payload["name"])
	require.Equal(t, "2026-01-02T03:04:05Z", payload["occurred_at"])
	require.NotContains(t, payload, "value")

	_, err := uuid.Parse(payload["event_id"].(string))
	require.NoError(t, err)
}

func TestKafkaSink_TrackMetric(t *testing.T) {
	w := &fakeWriter{}
	s := newTestKafkaSink(w)

	require.NoError(t, s.TrackMetric(context.Background(), "GreetingCounter", 42))
	require.NoError(t, s.TrackMetric(context.Background(), "GreetingCounter", 0))
	require.Len(t, w.messages, 2)

	var first, second kafkaMessage
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &first))
	require.NoError(t, json.Unmarshal(w.messages[1].Value, &second))

	require.Equal(t, "metric", first.Kind)
	require.NotNil(t, first.Value)
	require.Equal(t, float64(42), *first.Value)
	// нулевое значение метрики не должно теряться
	require.NotNil(t, second.Value)
	require.Equal(t, float64(0), *second.Value)
	require.NotEqual(t, first.EventID, second.EventID)
}

func TestKafkaSink_WriterErrorIsReturned(t *testing.T) {
	boom := errors.New("broker unavailable")
	s := newTestKafkaSink(&fakeWriter{err: boom})

	require.ErrorIs(t, s.TrackEvent(context.Background(), "e"), boom)
}

func TestKafkaSink_Close(t *testing.T) {
	w := &fakeWriter{}
	s := newTestKafkaSink(w)

	require.NoError(t, s.Close())
	require.True(t, w.closed)
}
