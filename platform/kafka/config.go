package kafka

import "fmt"

// Config содержит конфигурацию Kafka синка телеметрии
type Config struct {
	// Enabled включает публикацию телеметрии в Kafka
	Enabled bool `env:"KAFKA_TELEMETRY_ENABLED"`
	// Brokers - список брокеров Kafka:
	//   - локальная разработка (go run): localhost:19092
	//   - запуск в Docker: kafka:9092
	// Можно указать несколько брокеров через запятую: "broker1:9092,broker2:9092"
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:19092"`
	// Topic - топик для событий и метрик
	Topic string `env:"KAFKA_TELEMETRY_TOPIC" envDefault:"greeting.telemetry"`
}

// Validate проверяет конфигурацию, если Kafka включена
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_TELEMETRY_ENABLED=true")
	}
	if c.Topic == "" {
		return fmt.Errorf("KAFKA_TELEMETRY_TOPIC is required when KAFKA_TELEMETRY_ENABLED=true")
	}
	return nil
}
