package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	kindEventName  = "event"
	kindMetricName = "metric"
)

// kafkaMessage - JSON payload сообщения телеметрии
type kafkaMessage struct {
	EventID    string   `json:"event_id"`
	Kind       string   `json:"kind"`
	Name       string   `json:"name"`
	Value      *float64 `json:"value,omitempty"`
	OccurredAt string   `json:"occurred_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink публикует события и метрики в Kafka топик.
// Writer работает в асинхронном режиме: WriteMessages не ждёт подтверждения брокера,
// ошибки доставки только логируются.
type KafkaSink struct {
	logger *zap.Logger
	writer messageWriter
	topic  string
	now    func() time.Time
}

// NewKafkaSink создаёт синк с асинхронным kafka.Writer
func NewKafkaSink(logger *zap.Logger, brokers []string, topic string) *KafkaSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("failed to deliver telemetry to kafka",
					zap.Error(err),
					zap.String("topic", topic),
					zap.Int("messages", len(messages)),
				)
			}
		},
	}
	return newKafkaSink(logger, writer, topic)
}

func newKafkaSink(logger *zap.Logger, writer messageWriter, topic string) *KafkaSink {
	return &KafkaSink{
		logger: logger,
		writer: writer,
		topic:  topic,
		now:    time.Now,
	}
}

func (s *KafkaSink) TrackEvent(ctx context.Context, name string) error {
	return s.publish(ctx, kafkaMessage{Kind: kindEventName, Name: name})
}

func (s *KafkaSink) TrackMetric(ctx context.Context, name string, value float64) error {
	return s.publish(ctx, kafkaMessage{Kind: kindMetricName, Name: name, Value: &value})
}

// Close сбрасывает буфер writer и закрывает соединения
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

func (s *KafkaSink) publish(ctx context.Context, msg kafkaMessage) error {
	msg.EventID = uuid.New().String()
	msg.OccurredAt = s.now().UTC().Format(time.RFC3339)

	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Name),
		Value: value,
	})
}
