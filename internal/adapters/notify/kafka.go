// Package notify delivers operator notifications.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes notifications as JSON to a Kafka topic, keyed by transaction ID.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewKafkaPublisher creates an async producer for topic.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Compression:  kafka.Snappy,
		BatchTimeout: 10 * time.Millisecond,
	}
	logger.Info("Kafka notification producer initialized", slog.String("topic", topic))
	return &KafkaPublisher{writer: writer, topic: topic, logger: logger}
}

var _ repositories.NotificationPublisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) Publish(ctx context.Context, n domain.Notification) error {
	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	key := n.Data.TransactionID
	if key == "" {
		key = n.Tag
	}
	msg := kafka.Message{Key: []byte(key), Value: value, Time: n.CreatedAt}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send notification to kafka topic %s: %w", p.topic, err)
	}
	p.logger.Debug("Sent notification to Kafka", slog.String("key", key), slog.String("event", string(n.Event)))
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	p.logger.Info("Closing Kafka notification producer")
	return p.writer.Close()
}
