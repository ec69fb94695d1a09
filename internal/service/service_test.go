package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/weshockley/rest-service/internal/service/mocks"
)

// panicSink паникует на любой вызов
type panicSink struct{}

func (panicSink) TrackEvent(context.Context, string) error {
	panic("event backend exploded")
}

func (panicSink) TrackMetric(context.Context, string, float64) error {
	panic("metric backend exploded")
}

func TestGreetingService_Greet(t *testing.T) {
	ctx := context.Background()

	t.Run("name is substituted verbatim", func(t *testing.T) {
		svc := NewGreetingService(NewSequence(), nil, zap.NewNop())

		greeting := svc.Greet(ctx, "Ada")

		require.Equal(t, "Hello, Ada!", greeting.Content)
		require.Equal(t, int64(1), greeting.ID)
	})

	t.Run("empty name defaults to World", func(t *testing.T) {
		svc := NewGreetingService(NewSequence(), nil, zap.NewNop())

		greeting := svc.Greet(ctx, "")

		require.Equal(t, "Hello, World!", greeting.Content)
	})

	t.Run("name is not escaped or trimmed", func(t *testing.T) {
		svc := NewGreetingService(NewSequence(), nil, zap.NewNop())

		greeting := svc.Greet(ctx, "  <b>%s</b> ")

		require.Equal(t, "Hello,   <b>%s</b> !", greeting.Content)
	})

	t.Run("sequential calls increment id by one", func(t *testing.T) {
		svc := NewGreetingService(NewSequence(), nil, zap.NewNop())

		first := svc.Greet(ctx, "Ada")
		second := svc.Greet(ctx, "Ada")

		require.Equal(t, first.ID+1, second.ID)
	})

	t.Run("three World greetings on a fresh sequence", func(t *testing.T) {
		svc := NewGreetingService(NewSequence(), nil, zap.NewNop())

		for want := int64(1); want <= 3; want++ {
			greeting := svc.Greet(ctx, "World")
			require.Equal(t, Greeting{ID: want, Content: "Hello, World!"}, greeting)
		}
	})

	t.Run("injected sequence is shared", func(t *testing.T) {
		seq := NewSequence()
		seq.Next()
		svc := NewGreetingService(seq, nil, zap.NewNop())

		greeting := svc.Greet(ctx, "Ada")

		require.Equal(t, int64(2), greeting.ID)
		require.Equal(t, int64(2), seq.Current())
	})

	t.Run("nil dependencies are tolerated", func(t *testing.T) {
		svc := NewGreetingService(nil, nil, nil)

		greeting := svc.Greet(ctx, "")

		require.Equal(t, Greeting{ID: 1, Content: "Hello, World!"}, greeting)
	})
}

func TestGreetingService_Telemetry(t *testing.T) {
	ctx := context.Background()

	t.Run("event and metric are emitted with the id", func(t *testing.T) {
		sink := mocks.NewTelemetrySink(t)
		svc := NewGreetingService(NewSequence(), sink, zap.NewNop())

		sink.On("TrackEvent", ctx, EventGreetingRequested).Return(nil).Once()
		sink.On("TrackMetric", ctx, MetricGreetingCounter, float64(1)).Return(nil).Once()

		greeting := svc.Greet(ctx, "Ada")

		require.Equal(t, int64(1), greeting.ID)
		sink.AssertExpectations(t)
	})

	t.Run("TrackEvent error does not break the greeting", func(t *testing.T) {
		sink := mocks.NewTelemetrySink(t)
		svc := NewGreetingService(NewSequence(), sink, zap.NewNop())

		sink.On("TrackEvent", ctx, EventGreetingRequested).Return(errors.New("backend unavailable")).Once()
		sink.On("TrackMetric", ctx, MetricGreetingCounter, mock.AnythingOfType("float64")).Return(nil).Once()

		greeting := svc.Greet(ctx, "Ada")

		require.Equal(t, Greeting{ID: 1, Content: "Hello, Ada!"}, greeting)
	})

	t.Run("TrackMetric error does not break the greeting", func(t *testing.T) {
		sink := mocks.NewTelemetrySink(t)
		svc := NewGreetingService(NewSequence(), sink, zap.NewNop())

		sink.On("TrackEvent", ctx, EventGreetingRequested).Return(nil).Once()
		sink.On("TrackMetric", ctx, MetricGreetingCounter, float64(1)).Return(errors.New("quota exceeded")).Once()

		greeting := svc.Greet(ctx, "Ada")

		require.Equal(t, "Hello, Ada!", greeting.Content)
	})

	t.Run("panicking sink is isolated", func(t *testing.T) {
		svc := NewGreetingService(NewSequence(), panicSink{}, zap.NewNop())

		var greeting Greeting
		require.NotPanics(t, func() {
			greeting = svc.Greet(ctx, "Ada")
		})
		require.Equal(t, Greeting{ID: 1, Content: "Hello, Ada!"}, greeting)
	})

	t.Run("sink failures are logged at debug, never as errors", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		svc := NewGreetingService(NewSequence(), panicSink{}, zap.New(core))

		svc.Greet(ctx, "Ada")

		require.Equal(t, 0, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
		require.Equal(t, 0, logs.FilterLevelExact(zapcore.WarnLevel).Len())
		require.Equal(t, 2, logs.FilterMessageSnippet("telemetry").Len())
	})
}

func TestGreetingService_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewGreetingService(NewSequence(), nil, zap.New(core))

	svc.Greet(context.Background(), "Ada")

	info := logs.FilterMessage("Processing greeting request").All()
	require.Len(t, info, 1)
	require.Equal(t, zapcore.InfoLevel, info[0].Level)
	require.Equal(t, int64(1), info[0].ContextMap()["id"])
	require.Equal(t, "Ada", info[0].ContextMap()["name"])

	debug := logs.FilterMessage("Generated greeting response").All()
	require.Len(t, debug, 1)
	require.Equal(t, zapcore.DebugLevel, debug[0].Level)
	require.Equal(t, "Greeting{id=1, content='Hello, Ada!'}", debug[0].ContextMap()["greeting"])
}
