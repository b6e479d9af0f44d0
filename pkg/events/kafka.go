package events

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"docportal/pkg/logger"
)

// KafkaPublisher writes events to a single topic, hash-balanced by key with
// full acks.
type KafkaPublisher struct {
	writer *kafka.Writer
	source string
}

func NewKafkaPublisher(brokers []string, topic string, source string, log *logger.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		MaxAttempts:  3,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf(msg, args...))
		}),
	}

	return &KafkaPublisher{
		writer: writer,
		source: source,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.Key == "" {
		return fmt.Errorf("event key cannot be empty")
	}
	if len(event.Payload) == 0 {
		return fmt.Errorf("event payload cannot be empty")
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: event.Payload,
		Time:  event.Time,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.ID)},
			{Key: HeaderEventType, Value: []byte(event.Type)},
			{Key: HeaderSchemaVersion, Value: []byte(schemaVersion)},
			{Key: HeaderSource, Value: []byte(p.source)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
