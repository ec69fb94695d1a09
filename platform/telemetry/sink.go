// Package telemetry содержит реализации синка телеметрии (события + метрики):
// OpenTelemetry, Kafka, асинхронную обёртку и fan-out.
package telemetry

import (
	"context"
	"fmt"
)

// Sink принимает события и метрики.
// Реализации должны быть безопасны для конкурентного использования.
type Sink interface {
	TrackEvent(ctx context.Context, name string) error
	TrackMetric(ctx context.Context, name string, value float64) error
}

// Nop - синк, который ничего не делает
type Nop struct{}

func (Nop) TrackEvent(context.Context, string) error { return nil }

func (Nop) TrackMetric(context.Context, string, float64) error { return nil }

// Safe выполняет fn и превращает панику в ошибку
func Safe(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("telemetry sink panic: %v", r)
		}
	}()
	return fn()
}
