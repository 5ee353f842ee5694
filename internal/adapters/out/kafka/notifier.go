// Package kafka publishes order state-change events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"dispatch/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// OrderNotifier implements ports.Notifier over a Kafka writer. Events are
// keyed by order ID so all transitions of one order land in one partition,
// in order.
type OrderNotifier struct {
	w      *kafka.Writer
	logger *slog.Logger
}

// NewOrderNotifier creates a notifier writing to the given brokers and topic.
func NewOrderNotifier(brokers []string, topic string, logger *slog.Logger) *OrderNotifier {
	return &OrderNotifier{
		w: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger.With("component", "order_notifier"),
	}
}

// PublishOrderChanged sends one event. Failures are logged and returned;
// callers treat them as fire-and-forget and never roll back the transition.
func (n *OrderNotifier) PublishOrderChanged(ctx context.Context, event ports.OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = n.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to publish order event",
			"order_id", event.OrderID,
			"to_status", event.ToStatus,
			"error", err,
		)
		return fmt.Errorf("kafka publish: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (n *OrderNotifier) Close() error {
	return n.w.Close()
}
