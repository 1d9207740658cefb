// Package events publishes order lifecycle events to RabbitMQ. The broker
// is optional: when no URL is configured the service runs with a nop
// publisher.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/brandforge/printshop/internal/config"
	"github.com/brandforge/printshop/internal/order"
)

// orderEvent is the wire shape of a published event.
type orderEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewRabbitMQ(cfg config.RabbitMQConfig) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info().Str("exchange", cfg.Exchange).Msg("Connected to RabbitMQ")
	return &RabbitMQ{conn: conn, channel: ch, exchange: cfg.Exchange}, nil
}

func (r *RabbitMQ) PublishOrderEvent(ctx context.Context, eventType string, ord *order.Order) error {
	event := orderEvent{
		Type:        eventType,
		OrderID:     ord.ID.Hex(),
		UserID:      ord.UserID,
		Status:      ord.Status.String(),
		TotalAmount: ord.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Body:         body,
	}

	if err := r.channel.PublishWithContext(ctx, r.exchange, eventType, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	return nil
}

func (r *RabbitMQ) Close() {
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func NewNop() NopPublisher {
	return NopPublisher{}
}

func (NopPublisher) PublishOrderEvent(ctx context.Context, eventType string, ord *order.Order) error {
	return nil
}
