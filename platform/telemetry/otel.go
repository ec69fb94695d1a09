package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/weshockley/rest-service/platform/telemetry"

	// EventsCounterName счётчик всех событий, имя события - в атрибуте event.name
	EventsCounterName = "telemetry.events"
	// EventNameKey атрибут с именем события
	EventNameKey = attribute.Key("event.name")
)

// OTelSink пишет события и метрики через OpenTelemetry MeterProvider.
// События - счётчик telemetry.events + span event в текущем span,
// метрики - гистограмма с именем метрики (создаётся лениво).
type OTelSink struct {
	meter      metric.Meter
	events     metric.Int64Counter
	histograms sync.Map // name -> metric.Float64Histogram
}

// NewOTelSink создаёт синк поверх mp
func NewOTelSink(mp metric.MeterProvider) (*OTelSink, error) {
	meter := mp.Meter(instrumentationName)
	events, err := meter.Int64Counter(EventsCounterName,
		metric.WithDescription("Custom telemetry events by name"),
	)
	if err != nil {
		return nil, fmt.Errorf("otel events counter: %w", err)
	}
	return &OTelSink{
		meter:  meter,
		events: events,
	}, nil
}

// TrackEvent увеличивает счётчик событий и добавляет событие в span из ctx
func (s *OTelSink) TrackEvent(ctx context.Context, name string) error {
	s.events.Add(ctx, 1, metric.WithAttributes(EventNameKey.String(name)))
	// no-op, если span в контексте нет
	trace.SpanFromContext(ctx).AddEvent(name)
	return nil
}

// TrackMetric записывает value в гистограмму name
func (s *OTelSink) TrackMetric(ctx context.Context, name string, value float64) error {
	h, err := s.histogram(name)
	if err != nil {
		return err
	}
	h.Record(ctx, value)
	return nil
}

func (s *OTelSink) histogram(name string) (metric.Float64Histogram, error) {
	if h, ok := s.histograms.Load(name); ok {
		return h.(metric.Float64Histogram), nil
	}
	h, err := s.meter.Float64Histogram(name,
		metric.WithDescription("Custom metric "+name),
	)
	if err != nil {
		return nil, fmt.Errorf("otel histogram %q: %w", name, err)
	}
	actual, _ := s.histograms.LoadOrStore(name, h)
	return actual.(metric.Float64Histogram), nil
}
