package telemetry

import (
	"context"
	"errors"
)

type fanout []Sink

// Fanout возвращает синк, пересылающий каждое событие во все переданные синки.
// nil-синки пропускаются. Если синков нет - возвращает Nop, если один - его же.
func Fanout(sinks ...Sink) Sink {
	out := make(fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return Nop{}
	case 1:
		return out[0]
	}
	return out
}

func (f fanout) TrackEvent(ctx context.Context, name string) error {
	var errs []error
	for _, s := range f {
		if err := Safe(func() error { return s.TrackEvent(ctx, name) }); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) TrackMetric(ctx context.Context, name string, value float64) error {
	var errs []error
	for _, s := range f {
		if err := Safe(func() error { return s.TrackMetric(ctx, name, value) }); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
