package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Moulipolnati/Anika/internal/domain"
)

const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
)

// OrderPublisher emits order lifecycle events for downstream consumers
// (notification mails, the admin dashboard feed). Publishing is best-effort
// from the caller's point of view: the order row is the source of truth.
type OrderPublisher interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) OrderPlaced(ctx context.Context, order *domain.Order) error {
	payload := map[string]interface{}{
		"order_id":    order.ID,
		"shopper_id":  order.ShopperID,
		"items":       order.Items,
		"total_paise": order.TotalPaise,
		"currency":    order.Currency,
		"status":      order.Status,
		"placed_at":   order.CreatedAt,
	}
	return p.publish(ctx, order.ID.String(), EventOrderPlaced, payload)
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	payload := map[string]interface{}{
		"order_id":        order.ID,
		"shopper_id":      order.ShopperID,
		"previous_status": previous,
		"status":          order.Status,
		"changed_at":      time.Now(),
	}
	return p.publish(ctx, order.ID.String(), EventOrderStatusChanged, payload)
}

func (p *KafkaPublisher) publish(ctx context.Context, key, eventType string, payload map[string]interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(key), // order id for per-order ordering
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events; used when no broker is configured and in tests.
type NopPublisher struct{}

func (NopPublisher) OrderPlaced(context.Context, *domain.Order) error { return nil }
func (NopPublisher) OrderStatusChanged(context.Context, *domain.Order, domain.OrderStatus) error {
	return nil
}
