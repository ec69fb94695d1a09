package telemetry

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultBufferSize размер очереди AsyncSink по умолчанию
const DefaultBufferSize = 1024

type recordKind int

const (
	kindEvent recordKind = iota
	kindMetric
)

type record struct {
	ctx   context.Context
	kind  recordKind
	name  string
	value float64
}

// AsyncSink отправляет телеметрию в фоне (fire-and-forget).
// TrackEvent/TrackMetric только кладут запись в ограниченную очередь и сразу возвращают nil.
// Если очередь заполнена или синк закрыт - запись отбрасывается (at-most-once).
type AsyncSink struct {
	next   Sink
	logger *zap.Logger

	queue chan record
	quit  chan struct{}
	done  chan struct{}

	closed    atomic.Bool
	dropped   atomic.Int64
	closeOnce sync.Once
}

// NewAsyncSink запускает воркер, доставляющий записи в next
func NewAsyncSink(next Sink, bufferSize int, logger *zap.Logger) *AsyncSink {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AsyncSink{
		next:   next,
		logger: logger,
		queue:  make(chan record, bufferSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *AsyncSink) TrackEvent(ctx context.Context, name string) error {
	s.enqueue(record{ctx: ctx, kind: kindEvent, name: name})
	return nil
}

func (s *AsyncSink) TrackMetric(ctx context.Context, name string, value float64) error {
	s.enqueue(record{ctx: ctx, kind: kindMetric, name: name, value: value})
	return nil
}

// Dropped возвращает количество отброшенных записей
func (s *AsyncSink) Dropped() int64 {
	return s.dropped.Load()
}

// Close прекращает приём записей, дожидается доставки уже поставленных в очередь
// или истечения ctx
func (s *AsyncSink) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.quit)
	})
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AsyncSink) enqueue(r record) {
	if s.closed.Load() {
		s.dropped.Add(1)
		return
	}
	// значения контекста (trace) сохраняем, отмену запроса - нет
	if r.ctx == nil {
		r.ctx = context.Background()
	} else {
		r.ctx = context.WithoutCancel(r.ctx)
	}
	select {
	case s.queue <- r:
	default:
		s.dropped.Add(1)
	}
}

func (s *AsyncSink) run() {
	defer close(s.done)
	for {
		select {
		case r := <-s.queue:
			s.deliver(r)
		case <-s.quit:
			s.drain()
			return
		}
	}
}

func (s *AsyncSink) drain() {
	for {
		select {
		case r := <-s.queue:
			s.deliver(r)
		default:
			return
		}
	}
}

func (s *AsyncSink) deliver(r record) {
	err := Safe(func() error {
		if r.kind == kindMetric {
			return s.next.TrackMetric(r.ctx, r.name, r.value)
		}
		return s.next.TrackEvent(r.ctx, r.name)
	})
	if err != nil {
		s.logger.Debug("telemetry delivery failed",
			zap.String("name", r.name),
			zap.Error(err),
		)
	}
}
