package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/weshockley/rest-service/platform/telemetry"
)

const (
	// DefaultName подставляется, если имя не передано или пустое
	DefaultName = "World"
	// EventGreetingRequested событие на каждый запрос приветствия
	EventGreetingRequested = "GreetingRequested"
	// MetricGreetingCounter метрика с id запроса
	MetricGreetingCounter = "GreetingCounter"

	greetingTemplate = "Hello, %s!"
)

// Greeting - результат обработки запроса приветствия
type Greeting struct {
	ID      int64
	Content string
}

func (g Greeting) String() string {
	return fmt.Sprintf("Greeting{id=%d, content='%s'}", g.ID, g.Content)
}

// GreetingService содержит логику формирования приветствия
// Зависит от интерфейса TelemetrySink, а не от конкретного бэкенда телеметрии
type GreetingService struct {
	seq    *Sequence
	sink   TelemetrySink
	logger *zap.Logger
}

// NewGreetingService создаёт новый экземпляр GreetingService.
// sink может быть nil - тогда телеметрия не отправляется.
func NewGreetingService(seq *Sequence, sink TelemetrySink, logger *zap.Logger) *GreetingService {
	if seq == nil {
		seq = NewSequence()
	}
	if sink == nil {
		sink = telemetry.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GreetingService{
		seq:    seq,
		sink:   sink,
		logger: logger,
	}
}

// Greet формирует приветствие для name и отправляет телеметрию.
// Ошибок не возвращает: сбой телеметрии не влияет на результат.
func (s *GreetingService) Greet(ctx context.Context, name string) Greeting {
	if name == "" {
		name = DefaultName
	}

	id := s.seq.Next()
	s.logger.Info("Processing greeting request",
		zap.Int64("id", id),
		zap.String("name", name),
	)

	s.track(ctx, id)

	greeting := Greeting{
		ID:      id,
		Content: fmt.Sprintf(greetingTemplate, name),
	}

	s.logger.Debug("Generated greeting response", zap.Stringer("greeting", greeting))
	return greeting
}

// track отправляет событие и метрику, изолируя ошибки и паники синка
func (s *GreetingService) track(ctx context.Context, id int64) {
	if err := telemetry.Safe(func() error {
		return s.sink.TrackEvent(ctx, EventGreetingRequested)
	}); err != nil {
		s.logger.Debug("telemetry event not recorded",
			zap.String("event", EventGreetingRequested),
			zap.Error(err),
		)
	}

	if err := telemetry.Safe(func() error {
		return s.sink.TrackMetric(ctx, MetricGreetingCounter, float64(id))
	}); err != nil {
		s.logger.Debug("telemetry metric not recorded",
			zap.String("metric", MetricGreetingCounter),
			zap.Error(err),
		)
	}
}
