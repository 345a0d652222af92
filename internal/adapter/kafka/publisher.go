// Package kafka publishes created notifications to an event stream for
// downstream consumers (dashboards, SMS gateways). The database remains the
// source of truth; publishing is best-effort on top of it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
)

// Publisher produces notification events to a Kafka topic.
// It implements service.NotificationPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the notification topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishNotification serializes and publishes one notification event.
func (p *Publisher) PublishNotification(ctx context.Context, n domain.Notification) error {
	msg, err := serializeNotification(n)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeNotification marshals a notification into a Kafka message. The key
// is a fresh event id rather than the row id, which is local to this
// service's database.
func serializeNotification(n domain.Notification) (kafkago.Message, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize notification: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(uuid.NewString()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "type", Value: []byte(n.Type)},
			{Key: "created_at", Value: []byte(n.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
