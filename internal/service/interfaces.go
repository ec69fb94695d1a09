package service

import "context"

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TelemetrySink --dir=. --output=./mocks --outpkg=mocks

// TelemetrySink определяет интерфейс для отправки телеметрии (события + метрики).
// Может отсутствовать: GreetingService подставляет no-op реализацию.
// Ошибки синка никогда не пробрасываются вызывающему коду.
type TelemetrySink interface {
	// TrackEvent фиксирует именованное событие
	TrackEvent(ctx context.Context, name string) error
	// TrackMetric фиксирует значение именованной метрики
	TrackMetric(ctx context.Context, name string, value float64) error
}
